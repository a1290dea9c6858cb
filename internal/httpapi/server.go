// Package httpapi serves the questionnaire, scoring and report delivery over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/core/catalog"
	"github.com/huangsam/readiness/internal/answers"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/delivery"
	"github.com/huangsam/readiness/internal/report"
	"github.com/huangsam/readiness/schema"
	"github.com/sirupsen/logrus"
)

// Server limits.
const (
	maxBodyBytes    = 1 << 20
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server handles the HTTP API. It shares only the immutable catalog and
// the deliverer between requests.
type Server struct {
	cfg       *contract.Config
	mgr       contract.StoreManager
	catalog   *catalog.Catalog
	renderer  contract.Renderer
	deliverer contract.Deliverer
}

// NewServer creates an API server around a renderer and a deliverer.
func NewServer(cfg *contract.Config, mgr contract.StoreManager, renderer contract.Renderer, deliverer contract.Deliverer) *Server {
	return &Server{
		cfg:       cfg,
		mgr:       mgr,
		catalog:   catalog.Default(),
		renderer:  renderer,
		deliverer: deliverer,
	}
}

// Routes returns a chi.Router with every endpoint mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealthz)
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", s.handleCatalog)
		r.Get("/{section}", s.handleSection)
	})
	r.Route("/assessments", func(r chi.Router) {
		r.Post("/score", s.handleScore)
		r.Post("/report", s.handleReport)
		r.Post("/send", s.handleSend)
	})
	return r
}

// ListenAndServe runs the API until ctx is canceled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	deliverer, err := delivery.New(cfg.Delivery)
	if err != nil {
		return err
	}
	limited := delivery.NewLimited(deliverer, cfg.SendRatePerMinute)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           NewServer(cfg, mgr, report.NewRenderer(), limited).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	contract.Log.WithField("addr", cfg.ListenAddr).Info("readiness API listening")

	select {
	case <-ctx.Done():
		contract.Log.Info("shutting down readiness API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		contract.Log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request served")
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Sections())
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "section")
	section, ok := s.catalog.Section(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown section '%s'", id))
		return
	}
	writeJSON(w, http.StatusOK, section)
}

// scoreResponse is the body of a successful score request.
type scoreResponse struct {
	Respondent schema.Respondent            `json:"respondent"`
	Domains    []schema.EnrichedDomainScore `json:"domains"`
	Assessment schema.Assessment            `json:"assessment"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	respondent, assessment, ok := s.scoreRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		Respondent: respondent,
		Domains:    schema.EnrichDomains(assessment.DomainScores),
		Assessment: assessment,
	})
}

// handleReport returns the PDF report, or the HTML page with ?format=html.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	respondent, payload, ok := s.renderRequest(w, r)
	if !ok {
		return
	}
	name := report.BaseName(respondent.Company, payload.GeneratedAt)
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(payload.HTML))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload.PDF)
}

// handleSend renders the report and delivers it to the respondent of the sheet.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	respondent, payload, ok := s.renderRequest(w, r)
	if !ok {
		return
	}
	ack, err := s.deliverer.Deliver(r.Context(), payload, respondent)
	writeJSON(w, deliveryStatus(err), delivery.Outcome(ack, err))
}

func deliveryStatus(err error) int {
	var de *delivery.DeliveryError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, delivery.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, delivery.ErrDeliveryDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, delivery.ErrInvalidRecipient):
		return http.StatusUnprocessableEntity
	case errors.As(err, &de), errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// scoreRequest decodes and scores the answer sheet of a request.
// It writes the error response itself and reports whether scoring succeeded.
func (s *Server) scoreRequest(w http.ResponseWriter, r *http.Request) (schema.Respondent, schema.Assessment, bool) {
	sheet, err := answers.Read(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return schema.Respondent{}, schema.Assessment{}, false
	}

	cfg := s.cfg.Clone()
	if v := r.URL.Query().Get("exclude_unscored"); v != "" {
		exclude, err := contract.ParseBoolString(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid exclude_unscored: %w", err))
			return schema.Respondent{}, schema.Assessment{}, false
		}
		cfg.ExcludeUnscoredDomains = exclude
	}

	respondent, assessment, err := core.GetSheetResults(cfg, s.mgr, sheet)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return schema.Respondent{}, schema.Assessment{}, false
	}
	return respondent, assessment, true
}

func (s *Server) renderRequest(w http.ResponseWriter, r *http.Request) (schema.Respondent, schema.ReportPayload, bool) {
	respondent, assessment, ok := s.scoreRequest(w, r)
	if !ok {
		return schema.Respondent{}, schema.ReportPayload{}, false
	}
	payload, err := s.renderer.Render(r.Context(), assessment, respondent)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return schema.Respondent{}, schema.ReportPayload{}, false
	}
	return respondent, payload, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contract.LogWarn("Failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
