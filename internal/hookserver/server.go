// Package hookserver runs a local HTTP listener that receives webhook
// deliveries from DailyBot and prints them as they arrive. It backs the
// `dailybot agent webhook listen` command: register a webhook pointing at
// this listener, then watch messages stream in without polling.
package hookserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dailybot/dailybot-cli/internal/debug"
	"github.com/dailybot/dailybot-cli/pkg/webhook"
)

// DeliveryPath is the route deliveries must be POSTed to.
const DeliveryPath = "/hooks/dailybot"

const maxDeliveryBody = 1 << 20 // 1 MiB

// Options configures the delivery listener.
type Options struct {
	Host   string
	Port   int
	Secret string

	// Out receives rendered deliveries. Defaults to os.Stdout.
	Out io.Writer

	// OnDelivery, when set, is called for every accepted delivery after
	// it has been rendered to Out.
	OnDelivery func(webhook.Delivery)
}

// Server hosts the webhook delivery endpoint.
type Server struct {
	host       string
	port       int
	secret     string
	out        io.Writer
	onDelivery func(webhook.Delivery)
	httpServer *http.Server
}

// New constructs a delivery listener. Port 0 asks the kernel for a free
// port; the bound port is available from Addr after Start.
func New(opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "127.0.0.1"
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	srv := &Server{
		host:       host,
		port:       opts.Port,
		secret:     strings.TrimSpace(opts.Secret),
		out:        out,
		onDelivery: opts.OnDelivery,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+DeliveryPath, srv.handleDelivery)
	mux.HandleFunc("GET /healthz", srv.handleHealthz)

	handler := logMiddleware(secretMiddleware(srv.secret, mux))
	srv.httpServer = &http.Server{
		Addr:              srv.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv
}

// Start begins serving in a background goroutine and returns immediately.
func (srv *Server) Start() error {
	if srv.httpServer == nil {
		return fmt.Errorf("hookserver not initialized")
	}

	ln, err := net.Listen("tcp", srv.Addr())
	if err != nil {
		return err
	}

	if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
		srv.port = tcpAddr.Port
		srv.httpServer.Addr = srv.Addr()
	}

	go func() {
		if err := srv.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debug.LogKV("hookserver", "server stopped with error", "error", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the listener.
func (srv *Server) Shutdown(ctx context.Context) error {
	if srv.httpServer == nil {
		return nil
	}
	return srv.httpServer.Shutdown(ctx)
}

// Addr returns the bound host:port address.
func (srv *Server) Addr() string {
	return net.JoinHostPort(srv.host, strconv.Itoa(srv.port))
}

// URL returns the full delivery URL for registering the webhook.
func (srv *Server) URL() string {
	return "http://" + srv.Addr() + DeliveryPath
}

func (srv *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (srv *Server) handleDelivery(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxDeliveryBody)
	defer body.Close()

	delivery, err := webhook.Decode(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid delivery: %v", err))
		return
	}

	srv.render(*delivery)
	if srv.onDelivery != nil {
		srv.onDelivery(*delivery)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// render prints one delivery in the same shape `agent message list` uses,
// prefixed with an arrival timestamp.
func (srv *Server) render(d webhook.Delivery) {
	stamp := time.Now().Format("15:04:05")
	msg := d.Message

	sender := msg.SenderName
	if sender == "" {
		sender = "unknown"
	}
	if msg.SenderType != "" {
		sender = fmt.Sprintf("%s (%s)", sender, msg.SenderType)
	}

	fmt.Fprintf(srv.out, "[%s] %s -> %s: %s\n", stamp, sender, d.AgentName, msg.Content)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		debug.LogKV("hookserver", "failed to encode json response", "status", status, "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
