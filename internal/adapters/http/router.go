package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kirillkom/chemical-safety-registry/internal/config"
	"github.com/kirillkom/chemical-safety-registry/internal/core/ports"
)

const backpressureWait = 250 * time.Millisecond

// Recorder receives HTTP and hazard-domain observations.
type Recorder interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
	RecordRejected(reason string)
	RecordExtraction(source string, statements int, err error)
	RecordTranslation(category string, classified bool)
}

type Services struct {
	Chemicals ports.ChemicalStore
	Hazards   ports.HazardExtractionService
	NFPA      ports.NFPAService
	SDS       ports.SDSIngestor
	Reports   ports.HazardReporter
}

type Router struct {
	cfg     config.Config
	svc     Services
	metrics Recorder
	logger  *slog.Logger
}

func NewRouter(cfg config.Config, svc Services, metrics Recorder, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		cfg:     cfg,
		svc:     svc,
		metrics: metrics,
		logger:  logger,
	}
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware(rt.logger))
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
	}

	r.Get("/healthz", rt.healthz)
	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			limited := rateLimitMiddleware(next, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, rt.rejected("rate_limit"))
			return backpressureMiddleware(limited, rt.cfg.APIMaxInFlight, backpressureWait, rt.rejected("overload"))
		})

		r.Route("/chemicals/{cas}", func(r chi.Router) {
			r.Get("/", rt.getChemical)
			r.Put("/", rt.putChemical)
			r.Post("/sds", rt.uploadSDS)
			r.Post("/extract-ghs", rt.extractChemicalGHS)
			r.Get("/ghs", rt.getChemicalGHS)
			r.Put("/ghs", rt.putChemicalGHS)
			r.Get("/nfpa", rt.getChemicalNFPA)
		})

		r.Post("/ghs/extract", rt.previewGHS)
		r.Get("/nfpa/categories", rt.nfpaCategories)
		r.Post("/nfpa/translate", rt.nfpaTranslate)
		r.Get("/reports/hazard-register.xlsx", rt.hazardRegister)
	})

	return r
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) rejected(reason string) func() {
	if rt.metrics == nil {
		return nil
	}
	return func() { rt.metrics.RecordRejected(reason) }
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
