package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/phenrril/kiddocorner/internal/domain"
)

type FormState string

const (
	FormLoading FormState = "loading"
	FormReady   FormState = "ready"
	FormSaving  FormState = "saving"
	FormError   FormState = "error"
)

// AttributesUC loads and saves the attribute graph edited in the admin.
type AttributesUC struct {
	Attrs       domain.AttributeRepo
	Products    domain.ProductRepo
	Storage     domain.FileStorage
	Concurrency int

	// OnSaved runs after a successful save.
	OnSaved func(productID uuid.UUID)
	// OnUpload observes every blob upload.
	OnUpload func(elapsed time.Duration, err error)
}

// AttributesSession is one admin editing a product's attributes.
type AttributesSession struct {
	ProductID uuid.UUID
	Form      *domain.AttributeForm

	mu    sync.Mutex
	state FormState
	err   error
	uc    *AttributesUC
}

func (s *AttributesSession) State() (FormState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.err
}

func (s *AttributesSession) set(st FormState, err error) {
	s.mu.Lock()
	s.state, s.err = st, err
	s.mu.Unlock()
}

// Open loads the product's attributes into an editable form.
func (uc *AttributesUC) Open(ctx context.Context, productID uuid.UUID) (*AttributesSession, error) {
	s := &AttributesSession{ProductID: productID, state: FormLoading, uc: uc}
	p, err := uc.Products.FindByID(ctx, productID)
	if err != nil {
		s.set(FormError, err)
		return s, err
	}
	attrs, err := uc.load(ctx, productID)
	if err != nil {
		log.Error().Err(err).Str("product", productID.String()).Msg("load attributes")
		s.set(FormError, err)
		return s, err
	}
	s.Form = domain.FormFromAttributes(p.Price, attrs)
	s.set(FormReady, nil)
	return s, nil
}

// Session wraps a form that arrived already edited, e.g. from an HTTP client.
func (uc *AttributesUC) Session(productID uuid.UUID, f *domain.AttributeForm) *AttributesSession {
	return &AttributesSession{ProductID: productID, Form: f, state: FormReady, uc: uc}
}

// Save validates the form, uploads pending media and swaps the stored graph.
// On success the form's keys are rewritten to the persistent ids. A failed
// save leaves the session in FormError and can be retried; media already
// uploaded is not sent again.
func (s *AttributesSession) Save(ctx context.Context) (map[domain.DraftKey]uuid.UUID, error) {
	s.mu.Lock()
	switch s.state {
	case FormLoading:
		s.mu.Unlock()
		return nil, errors.New("attributes are still loading")
	case FormSaving:
		s.mu.Unlock()
		return nil, errors.New("save already in progress")
	}
	s.state, s.err = FormSaving, nil
	s.mu.Unlock()

	ids, err := s.uc.Save(ctx, s.ProductID, s.Form)
	if err != nil {
		s.set(FormError, err)
		return nil, err
	}
	rekey(s.Form, ids)
	s.set(FormReady, nil)
	return ids, nil
}

// Save is the stateless form of AttributesSession.Save.
func (uc *AttributesUC) Save(ctx context.Context, productID uuid.UUID, f *domain.AttributeForm) (map[domain.DraftKey]uuid.UUID, error) {
	if f == nil {
		return nil, domain.Invalid("empty form")
	}
	if _, err := uc.Products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := uc.upload(ctx, f); err != nil {
		log.Error().Err(err).Str("product", productID.String()).Msg("upload variation media")
		return nil, domain.Persistence("upload media", err)
	}
	ids, err := uc.Attrs.SaveAttributes(ctx, productID, f)
	if err != nil {
		log.Error().Err(err).Str("product", productID.String()).Msg("save attributes")
		return nil, err
	}
	if uc.OnSaved != nil {
		uc.OnSaved(productID)
	}
	return ids, nil
}

type pendingUpload struct {
	v, i int
	up   *domain.Upload
}

// upload sends every image that still has raw data to the blob store. Each
// result lands in its own slot so display order is kept.
func (uc *AttributesUC) upload(ctx context.Context, f *domain.AttributeForm) error {
	var pending []pendingUpload
	for vi := range f.Variations {
		for ii, im := range f.Variations[vi].Images {
			if im.Upload != nil && im.URL == "" {
				pending = append(pending, pendingUpload{v: vi, i: ii, up: im.Upload})
			}
		}
	}
	if len(pending) == 0 {
		return nil
	}
	if uc.Storage == nil {
		return errors.New("no file storage configured")
	}
	urls := make([]string, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	limit := uc.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)
	for n, p := range pending {
		g.Go(func() error {
			start := time.Now()
			url, err := uc.Storage.SaveImage(gctx, p.up.Filename, p.up.Data)
			if uc.OnUpload != nil {
				uc.OnUpload(time.Since(start), err)
			}
			if err != nil {
				return err
			}
			urls[n] = url
			return nil
		})
	}
	err := g.Wait()
	for n, p := range pending {
		if urls[n] == "" {
			continue
		}
		im := &f.Variations[p.v].Images[p.i]
		im.URL = urls[n]
		im.Upload = nil
		im.FileField = ""
	}
	return err
}

func (uc *AttributesUC) load(ctx context.Context, productID uuid.UUID) (domain.ProductAttributes, error) {
	var a domain.ProductAttributes
	var err error
	if a.Colors, err = uc.Attrs.ListColors(ctx, productID); err != nil {
		return a, err
	}
	if a.Sizes, err = uc.Attrs.ListSizes(ctx, productID); err != nil {
		return a, err
	}
	a.Variations, err = uc.Attrs.ListVariations(ctx, productID)
	return a, err
}

// Stats never fails; on a read error the counts stay at zero.
func (uc *AttributesUC) Stats(ctx context.Context, productID uuid.UUID) domain.AttributeStats {
	st, err := uc.Attrs.Stats(ctx, productID)
	if err != nil {
		log.Warn().Err(err).Str("product", productID.String()).Msg("attribute stats")
		return domain.AttributeStats{}
	}
	return st
}

func (uc *AttributesUC) ReplaceColors(ctx context.Context, productID uuid.UUID, in []domain.ColorInput) ([]domain.Color, error) {
	if _, err := uc.Products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return uc.Attrs.ReplaceColors(ctx, productID, in)
}

func (uc *AttributesUC) ReplaceSizes(ctx context.Context, productID uuid.UUID, in []domain.SizeInput) ([]domain.Size, error) {
	if _, err := uc.Products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return uc.Attrs.ReplaceSizes(ctx, productID, in)
}

// ImportStock sets the stock of the listed variations and saves. Ids that do
// not belong to the product are ignored; the number applied is returned.
func (uc *AttributesUC) ImportStock(ctx context.Context, productID uuid.UUID, stock map[uuid.UUID]int) (int, error) {
	s, err := uc.Open(ctx, productID)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range s.Form.Variations {
		id, err := uuid.Parse(string(s.Form.Variations[i].Key))
		if err != nil {
			continue
		}
		if v, ok := stock[id]; ok {
			s.Form.Variations[i].Stock = v
			n++
		}
	}
	if n == 0 {
		return 0, domain.Invalid("no variation of this product in the file")
	}
	if _, err := s.Save(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

// rekey swaps draft keys for the ids assigned by the save.
func rekey(f *domain.AttributeForm, ids map[domain.DraftKey]uuid.UUID) {
	key := func(k domain.DraftKey) domain.DraftKey {
		if id, ok := ids[k]; ok {
			return domain.KeyOf(id)
		}
		return k
	}
	for i := range f.Colors {
		f.Colors[i].Key = key(f.Colors[i].Key)
	}
	for i := range f.Sizes {
		f.Sizes[i].Key = key(f.Sizes[i].Key)
	}
	for i := range f.Variations {
		v := &f.Variations[i]
		v.Key = key(v.Key)
		if v.ColorKey != nil {
			k := key(*v.ColorKey)
			v.ColorKey = &k
		}
		if v.SizeKey != nil {
			k := key(*v.SizeKey)
			v.SizeKey = &k
		}
		for j := range v.Images {
			v.Images[j].Key = key(v.Images[j].Key)
		}
	}
}
