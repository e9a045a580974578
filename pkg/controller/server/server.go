package server

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/utils/errutil"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, raw)
}

type config struct {
	webhookSecret  types.WebhookSecret
	metricsHandler http.Handler
}

type Option func(*config)

// WithWebhookSecret enables signature validation of GitHub webhooks.
func WithWebhookSecret(secret types.WebhookSecret) Option {
	return func(cfg *config) {
		cfg.webhookSecret = secret
	}
}

// WithMetricsHandler serves handler on /metrics.
func WithMetricsHandler(handler http.Handler) Option {
	return func(cfg *config) {
		cfg.metricsHandler = handler
	}
}

type pollResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	if cfg.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/branches", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, uc.ListBranches(r.Context()))
		})
	})

	r.Route("/webhook", func(r chi.Router) {
		r.Post("/github", func(w http.ResponseWriter, r *http.Request) {
			reason, err := validateGitHubEvent(r, cfg.webhookSecret)
			if err != nil {
				errutil.HandleError(r.Context(), "fail to validate GitHub event", err)
				writeJSON(w, http.StatusBadRequest, pollResponse{Status: "error", Message: err.Error()})
				return
			}

			if reason == "" {
				writeJSON(w, http.StatusOK, pollResponse{Status: "ok", Message: "no poll required"})
				return
			}

			requestPoll(w, r, uc, reason)
		})

		r.Post("/trigger", func(w http.ResponseWriter, r *http.Request) {
			requestPoll(w, r, uc, "trigger")
		})
	})

	return &Server{
		mux: r,
	}
}

func requestPoll(w http.ResponseWriter, r *http.Request, uc interfaces.UseCase, reason string) {
	msg := "poll scheduled"
	if !uc.RequestPoll(r.Context(), reason) {
		msg = "poll already pending"
	}
	writeJSON(w, http.StatusAccepted, pollResponse{Status: "accepted", Message: msg})
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
