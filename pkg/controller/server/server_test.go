package server_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/branchsite/pkg/controller/server"
	"github.com/m-mizutani/branchsite/pkg/domain/mock"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/infra"
	"github.com/m-mizutani/branchsite/pkg/infra/metrics"
	"github.com/m-mizutani/branchsite/pkg/usecase"
)

func newUseCaseMock() *mock.UseCaseMock {
	return &mock.UseCaseMock{
		RequestPollFunc: func(ctx context.Context, reason string) bool { return true },
		ListBranchesFunc: func(ctx context.Context) []*model.BranchStatus {
			return []*model.BranchStatus{
				{
					BranchRecord: model.BranchRecord{ID: "dev", Name: "dev", State: types.StateDeployed},
					Domains:      []string{"dev.example.com"},
				},
			}
		},
	}
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestRouterSmokeTests(t *testing.T) {
	t.Run("GET /health returns 200", func(t *testing.T) {
		clients := infra.New()
		uc := usecase.New(clients)
		srv := server.New(uc)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("ok")
	})

	t.Run("GET /api/branches returns records", func(t *testing.T) {
		mockUC := newUseCaseMock()
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodGet, "/api/branches", nil)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Header().Get("Content-Type")).Equal("application/json")

		var resp []model.BranchStatus
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.Equal(t, len(resp), 1)
		gt.V(t, resp[0].ID).Equal(types.BranchID("dev"))
		gt.V(t, resp[0].Domains).Equal([]string{"dev.example.com"})
	})

	t.Run("POST /webhook/trigger requests poll", func(t *testing.T) {
		mockUC := newUseCaseMock()
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodPost, "/webhook/trigger", nil)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusAccepted)
		gt.Equal(t, len(mockUC.RequestPollCalls()), 1)
		gt.Equal(t, mockUC.RequestPollCalls()[0].Reason, "trigger")
	})

	t.Run("pending poll is still accepted", func(t *testing.T) {
		mockUC := newUseCaseMock()
		mockUC.RequestPollFunc = func(ctx context.Context, reason string) bool { return false }
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodPost, "/webhook/trigger", nil)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusAccepted)
		gt.S(t, rec.Body.String()).Contains("already pending")
	})

	t.Run("GET /metrics", func(t *testing.T) {
		recorder := metrics.New()
		srv := server.New(newUseCaseMock(), server.WithMetricsHandler(recorder.Handler()))

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.S(t, rec.Body.String()).Contains("go_goroutines")
	})

	t.Run("GET /metrics is not served without handler", func(t *testing.T) {
		srv := server.New(newUseCaseMock())

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestGitHubWebhook(t *testing.T) {
	pushBody := []byte(`{"ref":"refs/heads/feature/x","after":"abc"}`)

	newRequest := func(event string, body []byte) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/webhook/github", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-GitHub-Event", event)
		return req
	}

	t.Run("push without secret", func(t *testing.T) {
		mockUC := newUseCaseMock()
		srv := server.New(mockUC)

		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, newRequest("push", pushBody))

		gt.V(t, rec.Code).Equal(http.StatusAccepted)
		gt.Equal(t, len(mockUC.RequestPollCalls()), 1)
		gt.Equal(t, mockUC.RequestPollCalls()[0].Reason, "push feature/x")
	})

	t.Run("signed push", func(t *testing.T) {
		mockUC := newUseCaseMock()
		srv := server.New(mockUC, server.WithWebhookSecret("test-secret"))

		req := newRequest("push", pushBody)
		req.Header.Set("X-Hub-Signature-256", sign("test-secret", pushBody))
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusAccepted)
		gt.Equal(t, len(mockUC.RequestPollCalls()), 1)
	})

	t.Run("invalid signature", func(t *testing.T) {
		mockUC := newUseCaseMock()
		srv := server.New(mockUC, server.WithWebhookSecret("test-secret"))

		req := newRequest("push", pushBody)
		req.Header.Set("X-Hub-Signature-256", sign("other-secret", pushBody))
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
		gt.Equal(t, len(mockUC.RequestPollCalls()), 0)
	})

	t.Run("missing signature", func(t *testing.T) {
		mockUC := newUseCaseMock()
		srv := server.New(mockUC, server.WithWebhookSecret("test-secret"))

		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, newRequest("push", pushBody))

		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
		gt.Equal(t, len(mockUC.RequestPollCalls()), 0)
	})

	t.Run("tag push does not poll", func(t *testing.T) {
		mockUC := newUseCaseMock()
		srv := server.New(mockUC)

		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, newRequest("push", []byte(`{"ref":"refs/tags/v1.0.0"}`)))

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.Equal(t, len(mockUC.RequestPollCalls()), 0)
	})

	t.Run("ping", func(t *testing.T) {
		mockUC := newUseCaseMock()
		srv := server.New(mockUC)

		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, newRequest("ping", []byte(`{"zen":"Keep it logically awesome."}`)))

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.Equal(t, len(mockUC.RequestPollCalls()), 0)
	})
}
