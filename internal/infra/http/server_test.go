package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tg-feedback-relay/internal/usecase/feedback"
)

type recordingRelay struct {
	method    string
	userAgent string
	body      string
}

func (r *recordingRelay) Handle(_ context.Context, req feedback.Request) feedback.Response {
	r.method = req.Method
	r.userAgent = req.Headers.Get("User-Agent")
	raw, _ := io.ReadAll(req.Body)
	r.body = string(raw)
	if req.Method != http.MethodPost {
		return feedback.Response{StatusCode: http.StatusMethodNotAllowed, Body: feedback.BodyMethodNotAllowed}
	}
	return feedback.Response{StatusCode: http.StatusOK, Body: feedback.BodySuccess}
}

func TestFeedbackRoutePassesRequestToRelay(t *testing.T) {
	relay := &recordingRelay{}
	s := NewServer("127.0.0.1:0", zerolog.Nop(), false)
	s.MountFeedback("/feedback", relay)

	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(`{"message":"hello","rating":4}`))
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != feedback.BodySuccess {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if relay.userAgent != "test-agent" || relay.body != `{"message":"hello","rating":4}` {
		t.Fatalf("relay got unexpected request: %+v", relay)
	}
}

func TestFeedbackRouteLetsRelayRejectMethods(t *testing.T) {
	relay := &recordingRelay{}
	s := NewServer("127.0.0.1:0", zerolog.Nop(), false)
	s.MountFeedback("/feedback", relay)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		s.Router.ServeHTTP(rec, httptest.NewRequest(method, "/feedback", nil))
		if rec.Code != http.StatusMethodNotAllowed || rec.Body.String() != feedback.BodyMethodNotAllowed {
			t.Fatalf("%s: unexpected response %d %q", method, rec.Code, rec.Body.String())
		}
		if relay.method != method {
			t.Fatalf("%s: relay was not called", method)
		}
	}
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	s := NewServer("127.0.0.1:0", zerolog.Nop(), true)

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: unexpected status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: unexpected status %d", rec.Code)
	}
}

func TestShutdownBeforeStart(t *testing.T) {
	s := NewServer("127.0.0.1:0", zerolog.Nop(), false)
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestShutdownStopsConcurrentStart(t *testing.T) {
	s := NewServer("127.0.0.1:0", zerolog.Nop(), false)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("unexpected start error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server still running after Shutdown returned")
	}
}
