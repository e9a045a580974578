package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/branchsite/pkg/controller/server"
	"github.com/m-mizutani/branchsite/pkg/domain/mock"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

func TestMiddlewareInjectsRequestLogger(t *testing.T) {
	var logger, defaultLogger = logging.Default(), logging.Default()
	var pollCtx context.Context

	uc := &mock.UseCaseMock{
		RequestPollFunc: func(ctx context.Context, reason string) bool {
			pollCtx = ctx
			logger = logging.From(ctx)
			return true
		},
	}
	mux := server.New(uc).Mux()

	req := httptest.NewRequest(http.MethodPost, "/webhook/trigger", nil)
	req.Header.Set("X-GitHub-Delivery", "72d3162e-cc78-11e3-81ab-4c9367dc0958")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	gt.V(t, w.Code).Equal(http.StatusAccepted)
	gt.True(t, pollCtx != nil)
	gt.False(t, logger == defaultLogger)

	reqID, _ := logging.CtxRequestID(pollCtx)
	gt.True(t, reqID != "")
}

func TestMiddlewareKeepsStatusCode(t *testing.T) {
	testCases := map[string]struct {
		path string
		uc   *mock.UseCaseMock
		code int
	}{
		"health probe": {
			path: "/health",
			uc:   &mock.UseCaseMock{},
			code: http.StatusOK,
		},
		"metrics disabled": {
			path: "/metrics",
			uc:   &mock.UseCaseMock{},
			code: http.StatusNotFound,
		},
		"unknown route": {
			path: "/site/preview",
			uc:   &mock.UseCaseMock{},
			code: http.StatusNotFound,
		},
		"webhook wrong method": {
			path: "/webhook/github",
			uc:   &mock.UseCaseMock{},
			code: http.StatusMethodNotAllowed,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			mux := server.New(tc.uc).Mux()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			gt.V(t, w.Code).Equal(tc.code)
		})
	}
}
