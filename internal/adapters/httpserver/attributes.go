package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/kiddocorner/internal/adapters/sheet"
	"github.com/phenrril/kiddocorner/internal/adapters/storage"
	"github.com/phenrril/kiddocorner/internal/domain"
)

type attributesView struct {
	Form  *domain.AttributeForm         `json:"form"`
	Tabs  []domain.VariationTab         `json:"tabs"`
	Stats *domain.AttributeStats        `json:"stats,omitempty"`
	IDs   map[domain.DraftKey]uuid.UUID `json:"ids,omitempty"`
}

func viewOf(f *domain.AttributeForm) attributesView {
	return attributesView{Form: f, Tabs: f.Tabs()}
}

func (s *Server) adminLoadAttributes(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess, err := s.Attributes.Open(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	v := viewOf(sess.Form)
	st := s.Attributes.Stats(r.Context(), id)
	v.Stats = &st
	writeJSON(w, http.StatusOK, v)
}

// adminGenerateVariations replaces the form's variations with every
// color/size combination. Nothing is stored.
func (s *Server) adminGenerateVariations(w http.ResponseWriter, r *http.Request) {
	var f domain.AttributeForm
	if err := decodeJSON(w, r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	f.GenerateAll()
	writeJSON(w, http.StatusOK, viewOf(&f))
}

func (s *Server) adminAddVariation(w http.ResponseWriter, r *http.Request) {
	var f domain.AttributeForm
	if err := decodeJSON(w, r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	f.AddVariation()
	writeJSON(w, http.StatusOK, viewOf(&f))
}

// adminSaveAttributes takes the form as a JSON body, or as a multipart
// "payload" field with media files in the parts named by each image's
// file_field.
func (s *Server) adminSaveAttributes(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	f, err := readAttributeForm(w, r)
	if err != nil {
		s.Metrics.ObserveSave("invalid")
		writeError(w, r, err)
		return
	}
	ids, err := s.Attributes.Session(id, f).Save(r.Context())
	switch {
	case err == nil:
		s.Metrics.ObserveSave("ok")
	case domain.IsValidation(err) || errors.Is(err, domain.ErrNotFound):
		s.Metrics.ObserveSave("invalid")
	default:
		s.Metrics.ObserveSave("error")
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	v := viewOf(f)
	v.IDs = ids
	writeJSON(w, http.StatusOK, v)
}

func readAttributeForm(w http.ResponseWriter, r *http.Request) (*domain.AttributeForm, error) {
	var f domain.AttributeForm
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "multipart/form-data" {
		if err := decodeJSON(w, r, &f); err != nil {
			return nil, err
		}
		return &f, nil
	}
	if err := r.ParseMultipartForm(maxMultipart); err != nil {
		return nil, domain.Invalid("invalid multipart form")
	}
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &f); err != nil {
		return nil, domain.Invalid("invalid payload")
	}
	for vi := range f.Variations {
		for ii := range f.Variations[vi].Images {
			im := &f.Variations[vi].Images[ii]
			if im.FileField == "" || im.URL != "" {
				continue
			}
			parts := r.MultipartForm.File[im.FileField]
			if len(parts) == 0 {
				return nil, domain.Invalid("Variation #%d: file %q is missing", vi+1, im.FileField)
			}
			data, err := readPart(parts[0])
			if err != nil {
				return nil, domain.Invalid("Variation #%d: file %q could not be read", vi+1, im.FileField)
			}
			ctype := parts[0].Header.Get("Content-Type")
			if ctype == "" || ctype == "application/octet-stream" {
				ctype = storage.ContentType(parts[0].Filename, data)
			}
			im.Upload = &domain.Upload{Filename: parts[0].Filename, ContentType: ctype, Data: data}
			if im.MediaType == "" {
				im.MediaType = domain.MediaTypeFor(ctype)
			}
		}
	}
	return &f, nil
}

func (s *Server) adminReplaceColors(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in []domain.ColorInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	colors, err := s.Attributes.ReplaceColors(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, colors)
}

func (s *Server) adminReplaceSizes(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in []domain.SizeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	sizes, err := s.Attributes.ReplaceSizes(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sizes)
}

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) adminExportStock(w http.ResponseWriter, r *http.Request) {
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
	attrs, err := s.Products.Attributes(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeWorkbook(w, r, sheet.Filename("stock-"+p.Slug, time.Now().Format("20060102")), func(out io.Writer) error {
		return sheet.WriteVariationStock(out, attrs)
	})
}

// writeWorkbook renders the whole file before any header is sent.
func writeWorkbook(w http.ResponseWriter, r *http.Request, filename string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("send workbook")
	}
}

func (s *Server) adminImportStock(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(maxMultipart); err != nil {
		writeError(w, r, domain.Invalid("invalid multipart form"))
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, domain.Invalid("no file"))
		return
	}
	defer f.Close()
	stock, err := sheet.ReadVariationStock(f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := s.Attributes.ImportStock(r.Context(), id, stock)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": n})
}
