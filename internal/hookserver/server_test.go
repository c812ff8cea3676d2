package hookserver

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dailybot/dailybot-cli/pkg/webhook"
)

const sampleDelivery = `{
	"event": "message.created",
	"agent_name": "reviewer",
	"message": {
		"id": "msg-1",
		"content": "build finished",
		"message_type": "notification",
		"sender_type": "agent",
		"sender_name": "builder"
	}
}`

func newTestServer(t *testing.T, opts Options) (*Server, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	opts.Out = out
	return New(opts), out
}

func performDelivery(t *testing.T, srv *Server, secret, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, DeliveryPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(webhook.SecretHeader, secret)
	}
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestDeliveryRendered(t *testing.T) {
	srv, out := newTestServer(t, Options{Secret: "s3cret"})

	rec := performDelivery(t, srv, "s3cret", sampleDelivery)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"received":true`) {
		t.Fatalf("body = %q, expected received ack", rec.Body.String())
	}
	if !strings.Contains(out.String(), "builder (agent) -> reviewer: build finished") {
		t.Fatalf("rendered output = %q, expected sender -> agent line", out.String())
	}
}

func TestDeliveryWrongSecret(t *testing.T) {
	srv, out := newTestServer(t, Options{Secret: "s3cret"})

	rec := performDelivery(t, srv, "wrong", sampleDelivery)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "unauthorized") {
		t.Fatalf("body = %q, expected unauthorized message", rec.Body.String())
	}
	if out.Len() != 0 {
		t.Fatalf("rejected delivery was rendered: %q", out.String())
	}
}

func TestDeliveryNoSecretConfigured(t *testing.T) {
	srv, out := newTestServer(t, Options{})

	rec := performDelivery(t, srv, "", sampleDelivery)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if out.Len() == 0 {
		t.Fatal("delivery was not rendered")
	}
}

func TestDeliveryInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t, Options{Secret: "s3cret"})

	rec := performDelivery(t, srv, "s3cret", "not json at all")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "invalid delivery") {
		t.Fatalf("body = %q, expected invalid delivery message", rec.Body.String())
	}
}

func TestDeliveryMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, Options{Secret: "s3cret"})

	req := httptest.NewRequest(http.MethodGet, DeliveryPath, nil)
	req.Header.Set(webhook.SecretHeader, "s3cret")
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestOnDeliveryCallback(t *testing.T) {
	var got webhook.Delivery
	srv, _ := newTestServer(t, Options{
		Secret:     "s3cret",
		OnDelivery: func(d webhook.Delivery) { got = d },
	})

	performDelivery(t, srv, "s3cret", sampleDelivery)

	if got.AgentName != "reviewer" {
		t.Fatalf("AgentName = %q, want %q", got.AgentName, "reviewer")
	}
	if got.Message.Content != "build finished" {
		t.Fatalf("Message.Content = %q, want %q", got.Message.Content, "build finished")
	}
}

func TestHealthzSkipsSecret(t *testing.T) {
	srv, _ := newTestServer(t, Options{Secret: "s3cret"})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestStartShutdown(t *testing.T) {
	srv, _ := newTestServer(t, Options{Port: 0})

	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			t.Fatalf("Shutdown: %v", err)
		}
	}()

	if strings.HasSuffix(srv.Addr(), ":0") {
		t.Fatalf("Addr = %q, expected bound port", srv.Addr())
	}

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestURLIncludesDeliveryPath(t *testing.T) {
	srv, _ := newTestServer(t, Options{Host: "0.0.0.0", Port: 9921})

	want := "http://0.0.0.0:9921" + DeliveryPath
	if srv.URL() != want {
		t.Fatalf("URL() = %q, want %q", srv.URL(), want)
	}
}
