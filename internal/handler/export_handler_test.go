package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"splittab/internal/config"
	"splittab/internal/csvexport"
	"splittab/internal/domain"
	"splittab/internal/handler"
	"splittab/internal/port"
	"splittab/internal/service"
	"splittab/mocks"
)

func exportTestRouter(snapshotRepo *mocks.MockSnapshotRepo, storage *mocks.MockObjectStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewExportService(snapshotRepo, storage, config.ExportConfig{
		Bucket:        "splittab-exports",
		PresignExpiry: 900,
	})
	h := handler.NewExportHandler(svc)

	r := gin.New()
	r.GET("/bills/:id/export/csv", h.CSV)
	r.GET("/bills/:id/export/xlsx", h.XLSX)
	r.POST("/bills/:id/export/archive", h.Archive)
	return r
}

func exportTestSnapshot() *domain.BillSnapshot {
	billID := uuid.New()
	ana := domain.Participant{ID: uuid.New(), BillID: billID, Name: "Ana"}
	return &domain.BillSnapshot{
		Bill:         domain.Bill{ID: billID, Title: "team lunch", CurrencySymbol: "$", Mode: domain.BillModeSingle},
		Participants: []domain.Participant{ana},
		Payments:     []domain.Payment{{ID: uuid.New(), BillID: billID, PayerID: ana.ID, Amount: 10}},
	}
}

func TestExportCSVHandler(t *testing.T) {
	snapshotRepo := new(mocks.MockSnapshotRepo)
	r := exportTestRouter(snapshotRepo, new(mocks.MockObjectStorage))

	snap := exportTestSnapshot()
	snapshotRepo.On("GetBillSnapshot", mock.Anything, snap.Bill.ID).Return(snap, nil)

	req := httptest.NewRequest(http.MethodGet, "/bills/"+snap.Bill.ID.String()+"/export/csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="team_lunch_`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.csv"`)

	body := w.Body.Bytes()
	require.Greater(t, len(body), 3)
	assert.Equal(t, csvexport.BOM, body[:3])
	assert.Contains(t, string(body), "Ana")
}

func TestExportCSVHandler_InvalidID(t *testing.T) {
	r := exportTestRouter(new(mocks.MockSnapshotRepo), new(mocks.MockObjectStorage))

	req := httptest.NewRequest(http.MethodGet, "/bills/not-a-uuid/export/csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}

func TestExportCSVHandler_BillMissing(t *testing.T) {
	snapshotRepo := new(mocks.MockSnapshotRepo)
	r := exportTestRouter(snapshotRepo, new(mocks.MockObjectStorage))

	billID := uuid.New()
	snapshotRepo.On("GetBillSnapshot", mock.Anything, billID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/bills/"+billID.String()+"/export/csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestExportXLSXHandler(t *testing.T) {
	snapshotRepo := new(mocks.MockSnapshotRepo)
	r := exportTestRouter(snapshotRepo, new(mocks.MockObjectStorage))

	snap := exportTestSnapshot()
	snapshotRepo.On("GetBillSnapshot", mock.Anything, snap.Bill.ID).Return(snap, nil)

	req := httptest.NewRequest(http.MethodGet, "/bills/"+snap.Bill.ID.String()+"/export/xlsx", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.xlsx"`)
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestExportArchiveHandler(t *testing.T) {
	snapshotRepo := new(mocks.MockSnapshotRepo)
	storage := new(mocks.MockObjectStorage)
	r := exportTestRouter(snapshotRepo, storage)

	snap := exportTestSnapshot()
	snapshotRepo.On("GetBillSnapshot", mock.Anything, snap.Bill.ID).Return(snap, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, "splittab-exports", mock.AnythingOfType("string"), mock.Anything).
		Return("https://example.com/presigned", nil)

	req := httptest.NewRequest(http.MethodPost, "/bills/"+snap.Bill.ID.String()+"/export/archive?format=csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://example.com/presigned")
	assert.Contains(t, w.Body.String(), `"success":true`)
}
