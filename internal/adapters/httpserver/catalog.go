package httpserver

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/kiddocorner/internal/domain"
)

const maxMultipart = 25 << 20

func productFilter(r *http.Request) domain.ProductFilter {
	q := r.URL.Query()
	f := domain.ProductFilter{
		Query:    strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
		Sort:     q.Get("sort"),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "page_size"),
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	return f
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	f := productFilter(r)
	f.ActiveOnly = true
	list, total, err := s.Products.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page[domain.Product]{Items: list, Total: total, Page: f.Page})
}

// activeBySlug hides inactive products from the storefront.
func (s *Server) activeBySlug(r *http.Request) (*domain.Product, error) {
	p, err := s.Products.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Server) apiProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.activeBySlug(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) apiProductOptions(w http.ResponseWriter, r *http.Request) {
	p, err := s.activeBySlug(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	colorID, err := queryID(r, "color")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sizeID, err := queryID(r, "size")
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := s.Products.Options(r.Context(), p, colorID, sizeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) apiResolveVariation(w http.ResponseWriter, r *http.Request) {
	p, err := s.activeBySlug(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	colorID, err := queryID(r, "color")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sizeID, err := queryID(r, "size")
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := s.Products.Resolve(r.Context(), p.ID, colorID, sizeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.Products.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) apiFeatured(w http.ResponseWriter, r *http.Request) {
	list, err := s.Products.FeaturedProducts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// --- admin ---

type productInput struct {
	Name          string   `json:"name"`
	NameBN        string   `json:"name_bn"`
	Description   string   `json:"description"`
	DescriptionBN string   `json:"description_bn"`
	Price         float64  `json:"price"`
	SalePrice     *float64 `json:"sale_price"`
	Category      string   `json:"category"`
	Active        *bool    `json:"active"`
}

func (in productInput) apply(p *domain.Product) {
	p.Name = in.Name
	p.NameBN = strings.TrimSpace(in.NameBN)
	p.Description = in.Description
	p.DescriptionBN = in.DescriptionBN
	p.Price = in.Price
	p.SalePrice = in.SalePrice
	if p.SalePrice != nil && *p.SalePrice <= 0 {
		p.SalePrice = nil
	}
	p.Category = strings.TrimSpace(in.Category)
	if in.Active != nil {
		p.Active = *in.Active
	}
}

func (s *Server) adminProducts(w http.ResponseWriter, r *http.Request) {
	f := productFilter(r)
	list, total, err := s.Products.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page[domain.Product]{Items: list, Total: total, Page: f.Page})
}

func (s *Server) adminProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.Products.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) adminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p := &domain.Product{Active: true}
	in.apply(p)
	if err := s.Products.Create(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) adminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.Products.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in.apply(p)
	if err := s.Products.Update(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) adminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	urls, err := s.Products.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(urls) > 0 {
		log.Info().Str("product", id.String()).Strs("images", urls).Msg("product deleted, images left in storage")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminProductImages(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.Products.GetByID(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(maxMultipart); err != nil {
		writeError(w, r, domain.Invalid("invalid multipart form"))
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, r, domain.Invalid("no files"))
		return
	}
	imgs := make([]domain.Image, 0, len(files))
	for _, fh := range files {
		url, err := s.store(r, fh)
		if err != nil {
			writeError(w, r, err)
			return
		}
		imgs = append(imgs, domain.Image{ID: uuid.New(), URL: url, Alt: r.FormValue("alt")})
	}
	if err := s.Products.AddImages(r.Context(), id, imgs); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, imgs)
}

func (s *Server) adminAttributeStats(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Attributes.Stats(r.Context(), id))
}

func (s *Server) adminFeatured(w http.ResponseWriter, r *http.Request) {
	list, err := s.Products.FeaturedEntries(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) adminSetFeatured(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductIDs []uuid.UUID `json:"product_ids"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Products.SetFeatured(r.Context(), req.ProductIDs); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- uploads ---

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) store(r *http.Request, fh *multipart.FileHeader) (string, error) {
	data, err := readPart(fh)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", domain.Invalid("file %s is empty", fh.Filename)
	}
	url, err := s.Storage.SaveImage(r.Context(), fh.Filename, data)
	if err != nil {
		return "", domain.Persistence("upload media", err)
	}
	return url, nil
}

// adminUpload stores a single file and returns its public URL. Used for
// testimonial avatars, logos and media added by URL later.
func (s *Server) adminUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipart); err != nil {
		writeError(w, r, domain.Invalid("invalid multipart form"))
		return
	}
	f, fh, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		writeError(w, r, domain.Invalid("no file"))
		return
	}
	if err != nil {
		writeError(w, r, domain.Invalid("invalid file"))
		return
	}
	f.Close()
	start := time.Now()
	url, err := s.store(r, fh)
	s.Metrics.ObserveUpload(time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
