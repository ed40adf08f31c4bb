package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mattjoyce/wabridge/internal/envelope"
	"github.com/mattjoyce/wabridge/internal/events"
	"github.com/mattjoyce/wabridge/internal/relay"
)

// Server is the webhook HTTP server.
type Server struct {
	config  Config
	handler DeliveryHandler
	hub     *events.Hub
	status  StatusReporter
	probers map[string]Prober
	logger  *slog.Logger
	server  *http.Server
}

// New creates a webhook server. probers maps test endpoint provider names
// (e.g. "chat", "transact") to their clients; hub and status may be nil.
func New(config Config, handler DeliveryHandler, hub *events.Hub, status StatusReporter, probers map[string]Prober, logger *slog.Logger) *Server {
	if config.MaxBodySize == 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}
	if config.SignatureHeader == "" {
		config.SignatureHeader = DefaultSignatureHeader
	}
	if probers == nil {
		probers = make(map[string]Prober)
	}

	return &Server{
		config:  config,
		handler: handler,
		hub:     hub,
		status:  status,
		probers: probers,
		logger:  logger,
	}
}

// Start starts the webhook HTTP server (blocking).
func (s *Server) Start(ctx context.Context) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("webhook server starting", "listen", s.config.Listen)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webhook server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("webhook server error: %w", err)
	}
}

// setupRoutes configures the HTTP router.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/webhook", s.handleHandshake)
	r.Post("/webhook", s.handleDelivery)
	r.Get("/health", s.handleHealth)

	r.Post("/test/echo", s.handleEcho)
	r.Get("/test/{provider}", s.handleProbe)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/events", s.handleEvents)
		r.Get("/status", s.handleStatus)
	})

	return r
}

// loggingMiddleware logs HTTP requests (excludes sensitive payloads).
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// authMiddleware gates operator endpoints behind a bearer token.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.AuthToken == "" {
			s.respondError(w, http.StatusNotFound, "not found")
			return
		}

		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			s.respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if len(token) != len(s.config.AuthToken) ||
			subtle.ConstantTimeCompare([]byte(token), []byte(s.config.AuthToken)) != 1 {
			s.respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleHandshake answers the platform's GET subscription handshake.
func (s *Server) handleHandshake(w http.ResponseWriter, r *http.Request) {
	challenge, err := validateHandshake(r.URL.Query(), s.config.VerifyToken)
	if err != nil {
		s.logger.Warn("handshake rejected",
			"mode", r.URL.Query().Get("hub.mode"),
			"remote_addr", r.RemoteAddr,
		)
		s.respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	s.logger.Info("handshake verified")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, challenge)
}

// handleDelivery handles incoming webhook POST requests.
func (s *Server) handleDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Enforce body size limit
	limitedReader := io.LimitReader(r.Body, s.config.MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read request body")
		return
	}
	if int64(len(body)) > s.config.MaxBodySize {
		s.respondError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	// Verify the signature over the raw body before any parsing.
	signature := r.Header.Get(s.config.SignatureHeader)
	if err := verifySignature(body, signature, s.config.AppSecret); err != nil {
		s.logger.Warn("webhook signature verification failed",
			"remote_addr", r.RemoteAddr,
		)
		s.publish(events.TypeDeliveryRejected, map[string]string{"reason": "signature"})
		s.respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	var delivery envelope.Delivery
	if err := json.Unmarshal(body, &delivery); err != nil {
		s.publish(events.TypeDeliveryRejected, map[string]string{"reason": "malformed"})
		s.respondError(w, http.StatusBadRequest, "malformed payload")
		return
	}
	if delivery.Object != envelope.ObjectWhatsAppBusinessAccount {
		s.publish(events.TypeDeliveryRejected, map[string]string{
			"reason": "object",
			"object": delivery.Object,
		})
		s.respondError(w, http.StatusBadRequest, "unrecognized object")
		return
	}

	handled, err := s.handler.HandleDelivery(ctx, delivery)
	if err != nil {
		s.logger.Error("delivery handling failed",
			"error", err,
			"request_id", middleware.GetReqID(ctx),
		)
		s.respondError(w, http.StatusInternalServerError, "delivery handling failed")
		return
	}

	s.logger.Info("delivery acknowledged",
		"messages", handled,
		"request_id", middleware.GetReqID(ctx),
	)
	s.respondJSON(w, http.StatusOK, AckResponse{Status: "received"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleEcho runs the offline echo relay so the reply shape can be inspected
// without downstream services.
func (s *Server) handleEcho(w http.ResponseWriter, r *http.Request) {
	var req EchoRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64*1024)).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed payload")
		return
	}

	reply := relay.Echo(req.Message)
	s.respondJSON(w, http.StatusOK, EchoResponse{
		Status:          "success",
		UserInput:       req.Message,
		BotReply:        reply.BotReply,
		ResponseDetails: reply,
	})
}

// handleProbe checks one downstream service by name.
func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	prober, ok := s.probers[provider]
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown provider")
		return
	}

	status := "success"
	connected := true
	code := http.StatusOK
	if err := prober.Probe(r.Context()); err != nil {
		status = "error"
		connected = false
		code = http.StatusBadGateway
	}

	s.respondJSON(w, code, map[string]any{
		"status":                 status,
		provider + "_connected": connected,
		"timestamp":             time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	counters := map[string]int64{}
	if s.status != nil {
		counters = s.status.Snapshot()
	}
	s.respondJSON(w, http.StatusOK, counters)
}

// handleEvents streams the event hub over SSE with Last-Event-ID replay.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		s.respondError(w, http.StatusNotFound, "not found")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	lastID := parseLastEventID(r.Header.Get("Last-Event-ID"))
	// Send buffered events first for late clients.
	for _, ev := range s.hub.SnapshotSince(lastID) {
		if err := writeSSE(w, ev); err != nil {
			return
		}
	}
	flusher.Flush()

	ch, cancel := s.hub.Subscribe()
	defer cancel()

	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := writeSSE(w, ev); err != nil {
				return
			}
			flusher.Flush()
		case <-keepAlive.C:
			// SSE comment line as keep-alive.
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func parseLastEventID(v string) int64 {
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func writeSSE(w http.ResponseWriter, ev events.Event) error {
	if _, err := fmt.Fprintf(w, "id: %d\n", ev.ID); err != nil {
		return err
	}
	if ev.Type != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", ev.Type); err != nil {
			return err
		}
	}
	// Data must be on "data:" lines; our payload is single-line JSON.
	if _, err := fmt.Fprintf(w, "data: %s\n\n", ev.Data); err != nil {
		return err
	}
	return nil
}

func (s *Server) publish(eventType string, data any) {
	if s.hub != nil {
		s.hub.Publish(eventType, data)
	}
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends a JSON error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
