package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

// probePaths are polled by load balancers and Prometheus; their access logs
// are emitted at debug level.
var probePaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

func preProcess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, ctx := logging.CtxRequestID(r.Context())
		logger := logging.Default().With(slog.String("request_id", reqID.String()))
		if delivery := r.Header.Get("X-GitHub-Delivery"); delivery != "" {
			logger = logger.With(slog.String("github_delivery", delivery))
		}
		ctx = logging.With(ctx, logger)

		lw := &statusCodeLogger{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		requestedAt := time.Now()
		next.ServeHTTP(lw, r.WithContext(ctx))

		level := slog.LevelInfo
		if _, ok := probePaths[r.URL.Path]; ok && lw.statusCode < http.StatusBadRequest {
			level = slog.LevelDebug
		}

		logger.Log(ctx, level, "http access",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("status_code", lw.statusCode),
			slog.Int64("content_length", r.ContentLength),
			slog.String("user_agent", r.UserAgent()),
			slog.Duration("elapsed", time.Since(requestedAt)),
		)
	})
}

type statusCodeLogger struct {
	http.ResponseWriter
	statusCode int
}

func (x *statusCodeLogger) WriteHeader(code int) {
	x.statusCode = code
	x.ResponseWriter.WriteHeader(code)
}
