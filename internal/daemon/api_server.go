package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"slate/internal/api"
	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/discovery"
	"slate/internal/logging"
	"slate/internal/publish"
)

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil || d == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, nil
	}

	srv := &apiServer{
		bind:   bind,
		logger: logging.NewComponentLogger(logger, "api-server"),
		daemon: d,
	}

	mux := http.NewServeMux()
	token := strings.TrimSpace(cfg.Paths.APIToken)
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/api/status", authMiddleware(token, srv.handleStatus))
	mux.HandleFunc("/api/roles", authMiddleware(token, srv.handleRoles))
	mux.HandleFunc("/api/titles", authMiddleware(token, srv.handleTitles))
	mux.HandleFunc("/api/titles/", authMiddleware(token, srv.handleTitle))

	srv.server = &http.Server{
		Handler:           requestIDMiddleware(srv.logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status, err := s.daemon.Status(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *apiServer) handleRoles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.daemon.Roles())
}

// handleTitles serves the listing. Malformed paging and filter parameters are
// coerced, not rejected, so a sloppy client still gets a sensible page.
func (s *apiServer) handleTitles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))
	req := discovery.ListRequest{
		Role:             query.Get("role"),
		Search:           query.Get("search"),
		Sort:             query.Get("sort"),
		Page:             page,
		PageSize:         pageSize,
		HasAssets:        query.Get("hasAssets") == "true",
		HasOpportunities: query.Get("hasOpportunities") == "true",
	}

	response, err := s.daemon.ListTitles(r.Context(), req)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *apiServer) handleTitle(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/titles/")
	titleID, action, _ := strings.Cut(rest, "/")
	if titleID == "" || strings.Contains(action, "/") {
		s.writeError(w, http.StatusNotFound, "Title not found")
		return
	}

	switch action {
	case "":
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.serveDetail(w, r, titleID)
	case "publish":
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.servePublish(w, r, titleID)
	case "unpublish":
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.serveUnpublish(w, r, titleID)
	default:
		s.writeError(w, http.StatusNotFound, "Title not found")
	}
}

func (s *apiServer) serveDetail(w http.ResponseWriter, r *http.Request, titleID string) {
	detail, err := s.daemon.DescribeTitle(r.Context(), titleID, r.URL.Query().Get("role"))
	if err != nil {
		s.writeDomainError(w, err, "publish")
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *apiServer) servePublish(w http.ResponseWriter, r *http.Request, titleID string) {
	response, err := s.daemon.PublishTitle(r.Context(), titleID, r.URL.Query().Get("role"))
	if err != nil {
		s.writeDomainError(w, err, "publish")
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *apiServer) serveUnpublish(w http.ResponseWriter, r *http.Request, titleID string) {
	response, err := s.daemon.UnpublishTitle(r.Context(), titleID, r.URL.Query().Get("role"))
	if err != nil {
		s.writeDomainError(w, err, "unpublish")
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *apiServer) writeDomainError(w http.ResponseWriter, err error, verb string) {
	switch {
	case errors.Is(err, publish.ErrPermission):
		s.writeError(w, http.StatusForbidden, fmt.Sprintf("You do not have permission to %s titles", verb))
	case errors.Is(err, catalog.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "Title not found")
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
