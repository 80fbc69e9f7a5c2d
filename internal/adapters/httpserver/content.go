package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phenrril/kiddocorner/internal/domain"
	"github.com/phenrril/kiddocorner/internal/usecase"
)

// --- storefront ---

func (s *Server) apiReviews(w http.ResponseWriter, r *http.Request) {
	list, err := s.Content.Reviews(r.Context(), true, queryBool(r, "featured"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) apiSubmitReview(w http.ResponseWriter, r *http.Request) {
	var in usecase.ReviewInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	rev, err := s.Content.SubmitReview(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

func (s *Server) apiTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := s.Content.Testimonials(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) apiFooter(w http.ResponseWriter, r *http.Request) {
	list, err := s.Content.Footer(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// apiSettings is what the storefront needs on first paint.
func (s *Server) apiSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	messages := map[string]string{}
	if list, err := s.Content.Messages(ctx); err == nil {
		for _, m := range list {
			messages[m.Key] = m.Content
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"settings": s.Content.SiteSettings(ctx),
		"theme":    s.Content.Theme(ctx),
		"messages": messages,
		"language": s.lang(r),
	})
}

func (s *Server) apiTranslations(w http.ResponseWriter, r *http.Request) {
	lang := s.lang(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"lang":    lang,
		"strings": s.Content.Translator.Table(lang),
	})
}

// --- admin ---

func (s *Server) adminDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.Dashboard.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) adminDescription(w http.ResponseWriter, r *http.Request) {
	var o usecase.DescriptionOptions
	if err := decodeJSON(w, r, &o); err != nil {
		writeError(w, r, err)
		return
	}
	if o.ProductName == "" {
		writeError(w, r, domain.Invalid("Product name is required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"description": usecase.GenerateDescription(o)})
}

func (s *Server) adminReviews(w http.ResponseWriter, r *http.Request) {
	list, err := s.Content.Reviews(r.Context(), queryBool(r, "approved"), queryBool(r, "featured"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) adminModerateReview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Approved *bool `json:"approved"`
		Featured *bool `json:"featured"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rev, err := s.Content.ModerateReview(r.Context(), id, req.Approved, req.Featured)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (s *Server) adminDeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Content.DeleteReview(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := s.Content.Testimonials(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// optionalID reads the {id} route param; routes without one yield uuid.Nil.
func optionalID(r *http.Request) (uuid.UUID, error) {
	if chi.URLParam(r, "id") == "" {
		return uuid.Nil, nil
	}
	return idParam(r, "id")
}

func (s *Server) adminSaveTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := optionalID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var t domain.Testimonial
	if err := decodeJSON(w, r, &t); err != nil {
		writeError(w, r, err)
		return
	}
	t.ID = id
	if err := s.Content.SaveTestimonial(r.Context(), &t); err != nil {
		writeError(w, r, err)
		return
	}
	code := http.StatusOK
	if id == uuid.Nil {
		code = http.StatusCreated
	}
	writeJSON(w, code, t)
}

func (s *Server) adminDeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Content.DeleteTestimonial(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminFooter(w http.ResponseWriter, r *http.Request) {
	list, err := s.Content.Footer(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// footerRequest carries the kind next to raw content so the content can be
// decoded into that kind's type.
type footerRequest struct {
	Kind         domain.FooterKind `json:"kind"`
	Title        string            `json:"title"`
	Active       bool              `json:"active"`
	DisplayOrder int               `json:"display_order"`
	Content      json.RawMessage   `json:"content"`
}

func (s *Server) adminSaveFooter(w http.ResponseWriter, r *http.Request) {
	id, err := optionalID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req footerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	body, err := domain.DecodeFooterContent(req.Kind, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sec, err := s.Content.SaveFooter(r.Context(), id, usecase.FooterInput{
		Title:        req.Title,
		Active:       req.Active,
		DisplayOrder: req.DisplayOrder,
		Content:      body,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	code := http.StatusOK
	if id == uuid.Nil {
		code = http.StatusCreated
	}
	writeJSON(w, code, domain.FooterView{FooterSection: *sec, Body: body})
}

func (s *Server) adminDeleteFooter(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Content.DeleteFooter(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminReorderFooter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Content.ReorderFooter(r.Context(), req.IDs); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminMessages(w http.ResponseWriter, r *http.Request) {
	list, err := s.Content.Messages(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) adminUpdateMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Content.UpdateMessage(r.Context(), chi.URLParam(r, "key"), req.Content); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"settings": s.Content.SiteSettings(r.Context()),
		"theme":    s.Content.Theme(r.Context()),
	})
}

func (s *Server) adminUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeJSON(w, r, &values); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Content.UpdateSettings(r.Context(), values); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Content.SiteSettings(r.Context()))
}

func (s *Server) adminUpdateTheme(w http.ResponseWriter, r *http.Request) {
	var t domain.Theme
	if err := decodeJSON(w, r, &t); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Content.UpdateTheme(r.Context(), t); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Content.Theme(r.Context()))
}

func (s *Server) adminTranslations(w http.ResponseWriter, r *http.Request) {
	list, err := s.Content.Translations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) adminUpsertTranslation(w http.ResponseWriter, r *http.Request) {
	var t domain.Translation
	if err := decodeJSON(w, r, &t); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Content.UpsertTranslation(r.Context(), &t); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
