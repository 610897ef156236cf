package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splittab/internal/config"
	"splittab/internal/middleware"
	"splittab/internal/service"
)

func newEditTokenRouter(tokens service.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bills/:id/receipts", middleware.EditToken(tokens), func(c *gin.Context) {
		billID := c.MustGet(middleware.ContextKeyBillID).(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"bill_id": billID.String()})
	})
	return r
}

func newTestTokens() service.TokenService {
	return service.NewTokenService(config.TokenConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "splittab-test",
	})
}

func TestEditToken_ValidTokenPasses(t *testing.T) {
	tokens := newTestTokens()
	r := newEditTokenRouter(tokens)

	billID := uuid.New()
	token, err := tokens.IssueEditToken(billID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/bills/"+billID.String()+"/receipts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), billID.String())
}

func TestEditToken_MissingHeader(t *testing.T) {
	r := newEditTokenRouter(newTestTokens())

	req := httptest.NewRequest(http.MethodPost, "/bills/"+uuid.NewString()+"/receipts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestEditToken_WrongBill(t *testing.T) {
	tokens := newTestTokens()
	r := newEditTokenRouter(tokens)

	token, err := tokens.IssueEditToken(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/bills/"+uuid.NewString()+"/receipts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "does not match this bill")
}

func TestEditToken_MalformedToken(t *testing.T) {
	r := newEditTokenRouter(newTestTokens())

	req := httptest.NewRequest(http.MethodPost, "/bills/"+uuid.NewString()+"/receipts", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired edit token")
}

func TestEditToken_NonBearerScheme(t *testing.T) {
	tokens := newTestTokens()
	r := newEditTokenRouter(tokens)

	billID := uuid.New()
	token, err := tokens.IssueEditToken(billID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/bills/"+billID.String()+"/receipts", nil)
	req.Header.Set("Authorization", "Basic "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
