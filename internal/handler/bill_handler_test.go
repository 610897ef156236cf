package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"splittab/internal/config"
	"splittab/internal/domain"
	"splittab/internal/handler"
	"splittab/internal/service"
	"splittab/mocks"
)

type billTestDeps struct {
	billRepo        *mocks.MockBillRepo
	participantRepo *mocks.MockParticipantRepo
	snapshotRepo    *mocks.MockSnapshotRepo
}

func billTestRouter() (*gin.Engine, *billTestDeps) {
	gin.SetMode(gin.TestMode)
	d := &billTestDeps{
		billRepo:        new(mocks.MockBillRepo),
		participantRepo: new(mocks.MockParticipantRepo),
		snapshotRepo:    new(mocks.MockSnapshotRepo),
	}
	tokens := service.NewTokenService(config.TokenConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "splittab-test",
	})
	svc := service.NewBillService(
		d.billRepo, new(mocks.MockReceiptRepo), new(mocks.MockItemRepo),
		d.participantRepo, new(mocks.MockPaymentRepo), d.snapshotRepo,
		tokens, config.BillConfig{ExpiryDays: 7, DefaultCurrency: "$"})
	h := handler.NewBillHandler(svc)

	r := gin.New()
	r.POST("/bills", h.Create)
	r.GET("/bills/:id", h.Get)
	return r, d
}

func TestCreateBillHandler(t *testing.T) {
	r, d := billTestRouter()
	d.billRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.participantRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	body := `{"title": "road trip", "participants": ["Ana", "Bea"]}`
	req := httptest.NewRequest(http.MethodPost, "/bills", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"edit_token"`)
	assert.Contains(t, w.Body.String(), `"road trip"`)
}

func TestCreateBillHandler_MissingParticipants(t *testing.T) {
	r, _ := billTestRouter()

	body := `{"title": "road trip"}`
	req := httptest.NewRequest(http.MethodPost, "/bills", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestGetBillHandler_Expired(t *testing.T) {
	r, d := billTestRouter()

	billID := uuid.New()
	d.snapshotRepo.On("GetBillSnapshot", mock.Anything, billID).Return(&domain.BillSnapshot{
		Bill: domain.Bill{ID: billID, ExpiresAt: time.Now().Add(-time.Hour)},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/bills/"+billID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGone, w.Code)
	assert.Contains(t, w.Body.String(), "BILL_EXPIRED")
}

func TestGetBillHandler_NotFound(t *testing.T) {
	r, d := billTestRouter()

	billID := uuid.New()
	d.snapshotRepo.On("GetBillSnapshot", mock.Anything, billID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/bills/"+billID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
