package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/phenrril/kiddocorner/internal/domain"
	"github.com/phenrril/kiddocorner/internal/i18n"
	"github.com/phenrril/kiddocorner/internal/usecase"
)

// Deps is everything the HTTP layer calls into.
type Deps struct {
	Products   *usecase.ProductUC
	Attributes *usecase.AttributesUC
	Orders     *usecase.OrderUC
	Content    *usecase.ContentUC
	Dashboard  *usecase.DashboardUC
	Auth       *usecase.AuthUC
	Storage    domain.FileStorage
	OAuth      *oauth2.Config
	Metrics    *Metrics

	// PublicRPS limits checkout and review submissions per client IP.
	PublicRPS     float64
	SecureCookies bool
	// UploadsDir is served under UploadsURL when the local store is used.
	UploadsDir string
	UploadsURL string
}

type Server struct {
	Deps
	router chi.Router
}

func New(d Deps) http.Handler {
	if d.Metrics == nil {
		d.Metrics = NewMetrics()
	}
	if d.PublicRPS <= 0 {
		d.PublicRPS = 2
	}
	s := &Server{Deps: d, router: chi.NewRouter()}
	s.routes()
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID, middleware.RealIP, AccessLog, s.Metrics.Middleware, middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	if s.UploadsDir != "" && strings.HasPrefix(s.UploadsURL, "/") {
		prefix := strings.TrimRight(s.UploadsURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(s.UploadsDir))))
	}

	r.Post("/admin/login", s.handleAdminLogin)
	r.Post("/admin/logout", s.handleAdminLogout)
	r.Get("/admin/google/login", s.handleGoogleLogin)
	r.Get("/admin/google/callback", s.handleGoogleCallback)

	limit := RateLimit(s.PublicRPS, 5)
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.apiProducts)
		r.Get("/products/{slug}", s.apiProduct)
		r.Get("/products/{slug}/options", s.apiProductOptions)
		r.Get("/products/{slug}/variation", s.apiResolveVariation)
		r.Get("/categories", s.apiCategories)
		r.Get("/featured", s.apiFeatured)

		r.Get("/shipping", s.apiShipping)
		r.Get("/payment-methods", s.apiPaymentMethods)
		r.With(limit).Post("/checkout", s.apiCheckout)

		r.Get("/reviews", s.apiReviews)
		r.With(limit).Post("/reviews", s.apiSubmitReview)
		r.Get("/testimonials", s.apiTestimonials)
		r.Get("/footer", s.apiFooter)
		r.Get("/settings", s.apiSettings)
		r.Get("/translations", s.apiTranslations)

		r.Route("/admin", s.adminRoutes)
	})
}

func (s *Server) adminRoutes(r chi.Router) {
	r.Use(s.requireAdmin)

	r.Get("/dashboard", s.adminDashboard)
	r.Post("/uploads", s.adminUpload)
	r.Post("/description", s.adminDescription)

	r.Get("/products", s.adminProducts)
	r.Post("/products", s.adminCreateProduct)
	r.Route("/products/{id}", func(r chi.Router) {
		r.Get("/", s.adminProduct)
		r.Put("/", s.adminUpdateProduct)
		r.Delete("/", s.adminDeleteProduct)
		r.Post("/images", s.adminProductImages)
		r.Get("/stats", s.adminAttributeStats)

		r.Get("/attributes", s.adminLoadAttributes)
		r.Put("/attributes", s.adminSaveAttributes)
		r.Post("/attributes/generate", s.adminGenerateVariations)
		r.Post("/attributes/variations", s.adminAddVariation)
		r.Put("/attributes/colors", s.adminReplaceColors)
		r.Put("/attributes/sizes", s.adminReplaceSizes)
		r.Get("/attributes/stock", s.adminExportStock)
		r.Post("/attributes/stock", s.adminImportStock)
	})
	r.Get("/featured", s.adminFeatured)
	r.Put("/featured", s.adminSetFeatured)

	r.Get("/orders", s.adminOrders)
	r.Get("/orders/export", s.adminExportOrders)
	r.Get("/orders/{id}", s.adminOrder)
	r.Put("/orders/{id}/status", s.adminOrderStatus)

	r.Get("/payment-methods", s.adminPaymentMethods)
	r.Post("/payment-methods", s.adminSavePaymentMethod)
	r.Put("/payment-methods/{id}", s.adminSavePaymentMethod)
	r.Delete("/payment-methods/{id}", s.adminDeletePaymentMethod)
	r.Put("/shipping/{key}", s.adminUpdateShipping)

	r.Get("/reviews", s.adminReviews)
	r.Patch("/reviews/{id}", s.adminModerateReview)
	r.Delete("/reviews/{id}", s.adminDeleteReview)

	r.Get("/testimonials", s.adminTestimonials)
	r.Post("/testimonials", s.adminSaveTestimonial)
	r.Put("/testimonials/{id}", s.adminSaveTestimonial)
	r.Delete("/testimonials/{id}", s.adminDeleteTestimonial)

	r.Get("/footer", s.adminFooter)
	r.Post("/footer", s.adminSaveFooter)
	r.Put("/footer/order", s.adminReorderFooter)
	r.Put("/footer/{id}", s.adminSaveFooter)
	r.Delete("/footer/{id}", s.adminDeleteFooter)

	r.Get("/messages", s.adminMessages)
	r.Put("/messages/{key}", s.adminUpdateMessage)
	r.Get("/settings", s.adminSettings)
	r.Put("/settings", s.adminUpdateSettings)
	r.Put("/theme", s.adminUpdateTheme)
	r.Get("/translations", s.adminTranslations)
	r.Put("/translations", s.adminUpsertTranslation)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps usecase errors to status codes. Only validation messages
// reach the client verbatim.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	var pe *domain.PersistenceError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{ve.Message})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{"not found"})
	case errors.Is(err, usecase.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{"unauthorized"})
	case errors.As(err, &pe):
		log.Error().Err(err).Str("path", r.URL.Path).Str("req_id", middleware.GetReqID(r.Context())).Msg("persistence")
		writeJSON(w, http.StatusInternalServerError, errorBody{"failed to " + pe.Op})
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("req_id", middleware.GetReqID(r.Context())).Msg("request")
		writeJSON(w, http.StatusInternalServerError, errorBody{"internal error"})
	}
}

const maxJSONBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return domain.Invalid("invalid JSON body")
	}
	return nil
}

func idParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.Invalid("invalid %s", name)
	}
	return id, nil
}

// queryID parses an optional uuid query value; empty is uuid.Nil.
func queryID(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.Invalid("invalid %s", name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

// lang picks ?lang=, then the lang cookie, then Accept-Language, then the
// store default.
func (s *Server) lang(r *http.Request) i18n.Lang {
	explicit := r.URL.Query().Get("lang")
	if explicit == "" {
		if c, err := r.Cookie("lang"); err == nil {
			explicit = c.Value
		}
	}
	return i18n.Negotiate(explicit, r.Header.Get("Accept-Language"), s.Content.DefaultLanguage(r.Context()))
}

type page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
}
