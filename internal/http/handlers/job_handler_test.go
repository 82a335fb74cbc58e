package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobledger/jobledger-backend/internal/ledger"
	"github.com/jobledger/jobledger-backend/internal/models"
)

var (
	testVault = uuid.MustParse("00000000-0000-0000-0000-0000000000e5")
	testAdmin = uuid.MustParse("00000000-0000-0000-0000-00000000ad01")
)

func newTestLedger() (*ledger.Ledger, *ledger.MemoryBank) {
	clock := ledger.NewHeightClock(time.Now().Add(-time.Hour), time.Second)
	bank := ledger.NewMemoryBank()
	return ledger.New(clock, bank, testVault, testAdmin, 720), bank
}

// authAs подставляет идентичность вызывающего так же, как auth middleware.
func authAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func TestJobHandler_CreateJob_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, _ := newTestLedger()
	clientID := uuid.New()

	r := gin.New()
	r.Use(authAs(clientID))
	handler := NewJobHandler(core, nil)
	r.POST("/jobs", handler.CreateJob)

	body, _ := json.Marshal(gin.H{
		"title":       "Сайт-визитка",
		"description": "Нужен простой сайт-визитка на три страницы",
		"budget":      1000,
		"deadline":    100_000,
	})
	req, _ := http.NewRequest("POST", "/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var job models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, clientID, job.ClientID)
	assert.Equal(t, models.JobStatusOpen, job.Status)
}

func TestJobHandler_CreateJob_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, _ := newTestLedger()

	r := gin.New()
	handler := NewJobHandler(core, nil)
	r.POST("/jobs", handler.CreateJob)

	req, _ := http.NewRequest("POST", "/jobs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJobHandler_CreateJob_ShortTitle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, _ := newTestLedger()

	r := gin.New()
	r.Use(authAs(uuid.New()))
	handler := NewJobHandler(core, nil)
	r.POST("/jobs", handler.CreateJob)

	body, _ := json.Marshal(gin.H{
		"title":       "ab",
		"description": "Описание достаточно длинное для проверки",
		"budget":      1000,
		"deadline":    100_000,
	})
	req, _ := http.NewRequest("POST", "/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandler_GetJob_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, _ := newTestLedger()

	r := gin.New()
	handler := NewJobHandler(core, nil)
	r.GET("/jobs/:id", handler.GetJob)

	req, _ := http.NewRequest("GET", "/jobs/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJobHandler_GetJob_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, _ := newTestLedger()

	r := gin.New()
	handler := NewJobHandler(core, nil)
	r.GET("/jobs/:id", handler.GetJob)

	req, _ := http.NewRequest("GET", "/jobs/not-a-number", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandler_CancelJob_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, bank := newTestLedger()
	clientID := uuid.New()
	freelancerID := uuid.New()
	bank.Deposit(clientID, 10_000)

	ctx := context.Background()
	job, err := core.PostJob(ctx, clientID, "Сайт-визитка", "Нужен простой сайт-визитка на три страницы", 1000, 100_000)
	require.NoError(t, err)
	_, err = core.SubmitBid(ctx, freelancerID, job.ID, 800, "Сделаю быстро и аккуратно")
	require.NoError(t, err)
	_, err = core.AcceptBid(ctx, clientID, job.ID, freelancerID)
	require.NoError(t, err)

	r := gin.New()
	r.Use(authAs(clientID))
	handler := NewJobHandler(core, nil)
	r.POST("/jobs/:id/cancel", handler.CancelJob)

	req, _ := http.NewRequest("POST", "/jobs/1/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Заказ в работе: отмена конфликтует с текущим статусом.
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDisputeHandler_GetDispute_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, _ := newTestLedger()

	r := gin.New()
	handler := NewDisputeHandler(core)
	r.GET("/disputes/:id", handler.GetDispute)

	req, _ := http.NewRequest("GET", "/disputes/7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBankHandler_DepositAndBalance(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, bank := newTestLedger()
	userID := uuid.New()

	r := gin.New()
	r.Use(authAs(userID))
	handler := NewBankHandler(bank)
	r.POST("/bank/deposit", handler.Deposit)
	r.GET("/bank/balance", handler.Balance)

	body, _ := json.Marshal(gin.H{"amount": 500})
	req, _ := http.NewRequest("POST", "/bank/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/bank/balance", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Balance uint64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(500), resp.Balance)
}
