package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/kiddocorner/internal/domain"
	"github.com/phenrril/kiddocorner/internal/i18n"
)

type ContentUC struct {
	Content     domain.ContentRepo
	Settings    domain.SettingsRepo
	Translator  *i18n.Translator
	Products    domain.ProductRepo
	DefaultLang i18n.Lang
}

// --- reviews ---

type ReviewInput struct {
	ProductID *uuid.UUID `json:"product_id"`
	Name      string     `json:"name"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
}

// SubmitReview stores a shopper review; it stays hidden until approved.
func (uc *ContentUC) SubmitReview(ctx context.Context, in ReviewInput) (*domain.Review, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("Please enter your name")
	}
	if !domain.ValidRating(in.Rating) {
		return nil, domain.Invalid("Rating must be between 1 and 5")
	}
	if in.ProductID != nil && uc.Products != nil {
		if _, err := uc.Products.FindByID(ctx, *in.ProductID); err != nil {
			return nil, err
		}
	}
	r := &domain.Review{
		ID:        uuid.New(),
		ProductID: in.ProductID,
		Name:      name,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: time.Now(),
	}
	if err := uc.Content.SaveReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *ContentUC) Reviews(ctx context.Context, approvedOnly, featuredOnly bool) ([]domain.Review, error) {
	return uc.Content.ListReviews(ctx, approvedOnly, featuredOnly)
}

// ModerateReview sets the flags that are not nil.
func (uc *ContentUC) ModerateReview(ctx context.Context, id uuid.UUID, approved, featured *bool) (*domain.Review, error) {
	r, err := uc.Content.FindReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if approved != nil {
		r.Approved = *approved
	}
	if featured != nil {
		r.Featured = *featured
	}
	if err := uc.Content.SaveReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *ContentUC) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return uc.Content.DeleteReview(ctx, id)
}

// --- testimonials ---

func (uc *ContentUC) Testimonials(ctx context.Context, featuredOnly bool) ([]domain.Testimonial, error) {
	return uc.Content.ListTestimonials(ctx, featuredOnly)
}

func (uc *ContentUC) SaveTestimonial(ctx context.Context, t *domain.Testimonial) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Content = strings.TrimSpace(t.Content)
	if t.Name == "" {
		return domain.Invalid("Testimonial needs a name")
	}
	if t.Content == "" {
		return domain.Invalid("Testimonial needs some content")
	}
	if t.Rating == 0 {
		t.Rating = 5
	}
	if !domain.ValidRating(t.Rating) {
		return domain.Invalid("Rating must be between 1 and 5")
	}
	if t.AvatarURL != "" && !domain.ValidMediaURL(t.AvatarURL) {
		return domain.Invalid("Avatar URL is not valid")
	}
	now := time.Now()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
		t.CreatedAt = now
	} else {
		cur, err := uc.Content.FindTestimonial(ctx, t.ID)
		if err != nil {
			return err
		}
		t.CreatedAt = cur.CreatedAt
	}
	t.UpdatedAt = now
	return uc.Content.SaveTestimonial(ctx, t)
}

func (uc *ContentUC) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return uc.Content.DeleteTestimonial(ctx, id)
}

// --- footer ---

// Footer decodes the stored sections. A section whose content cannot be
// decoded is skipped.
func (uc *ContentUC) Footer(ctx context.Context, activeOnly bool) ([]domain.FooterView, error) {
	rows, err := uc.Content.ListFooter(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]domain.FooterView, 0, len(rows))
	for _, s := range rows {
		body, err := s.Decode()
		if err != nil {
			log.Warn().Err(err).Str("section", s.ID.String()).Msg("footer section")
			continue
		}
		out = append(out, domain.FooterView{FooterSection: s, Body: body})
	}
	return out, nil
}

type FooterInput struct {
	Title        string
	Active       bool
	DisplayOrder int
	Content      domain.FooterContent
}

func validateFooter(c domain.FooterContent) error {
	checkLinks := func(links []domain.FooterLink) error {
		for i, l := range links {
			if strings.TrimSpace(l.Title) == "" {
				return domain.Invalid("Link #%d needs a title", i+1)
			}
			if !domain.ValidMediaURL(l.URL) && !strings.HasPrefix(l.URL, "mailto:") && !strings.HasPrefix(l.URL, "tel:") {
				return domain.Invalid("Link #%d has an invalid URL", i+1)
			}
		}
		return nil
	}
	switch v := c.(type) {
	case domain.AboutSection:
		if strings.TrimSpace(v.Text) == "" {
			return domain.Invalid("About section needs some text")
		}
	case domain.ContactSection:
		if v.Address == "" && v.Email == "" && v.Phone == "" {
			return domain.Invalid("Contact section needs an address, email or phone")
		}
	case domain.LinksSection:
		return checkLinks(v.Links)
	case domain.SocialSection:
		return checkLinks(v.Links)
	case domain.NewsletterSection:
		if strings.TrimSpace(v.ButtonText) == "" {
			return domain.Invalid("Newsletter section needs a button text")
		}
	case nil:
		return domain.Invalid("Footer section needs content")
	}
	return nil
}

// SaveFooter creates the section when id is uuid.Nil.
func (uc *ContentUC) SaveFooter(ctx context.Context, id uuid.UUID, in FooterInput) (*domain.FooterSection, error) {
	if err := validateFooter(in.Content); err != nil {
		return nil, err
	}
	s := &domain.FooterSection{ID: id, CreatedAt: time.Now()}
	if id == uuid.Nil {
		s.ID = uuid.New()
	} else {
		cur, err := uc.Content.FindFooter(ctx, id)
		if err != nil {
			return nil, err
		}
		s = cur
	}
	s.Title = strings.TrimSpace(in.Title)
	s.Active = in.Active
	s.DisplayOrder = in.DisplayOrder
	s.UpdatedAt = time.Now()
	if err := s.SetContent(in.Content); err != nil {
		return nil, err
	}
	if err := uc.Content.SaveFooter(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *ContentUC) DeleteFooter(ctx context.Context, id uuid.UUID) error {
	return uc.Content.DeleteFooter(ctx, id)
}

func (uc *ContentUC) ReorderFooter(ctx context.Context, ids []uuid.UUID) error {
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		if seen[id] {
			return domain.Invalid("section %s listed twice", id)
		}
		seen[id] = true
	}
	return uc.Content.ReorderFooter(ctx, ids)
}

// --- system messages ---

func (uc *ContentUC) Messages(ctx context.Context) ([]domain.SystemMessage, error) {
	return uc.Content.ListMessages(ctx)
}

func (uc *ContentUC) UpdateMessage(ctx context.Context, key, content string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Invalid("Message needs a key")
	}
	return uc.Content.UpsertMessage(ctx, key, content)
}

// --- settings, theme, translations ---

// SiteSettings are the defaults overlaid with stored values. Theme keys are
// left out. Storage errors fall back to the defaults.
func (uc *ContentUC) SiteSettings(ctx context.Context) domain.SiteSettings {
	out := domain.DefaultSiteSettings()
	stored, err := uc.Settings.All(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("site settings, using defaults")
		return out
	}
	for k, v := range stored {
		if domain.ThemeSlot(k) == "" {
			out[k] = v
		}
	}
	return out
}

func (uc *ContentUC) UpdateSettings(ctx context.Context, values map[string]string) error {
	known := domain.DefaultSiteSettings()
	for k, v := range values {
		if _, ok := known[k]; !ok {
			return domain.Invalid("unknown setting %q", k)
		}
		if k == domain.SettingDefaultLanguage {
			if _, ok := i18n.Parse(v); !ok {
				return domain.Invalid("default language must be en or bn")
			}
		}
	}
	return uc.Settings.Set(ctx, values)
}

func (uc *ContentUC) Theme(ctx context.Context) domain.Theme {
	out := domain.DefaultTheme()
	stored, err := uc.Settings.All(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("theme, using defaults")
		return out
	}
	for k, v := range stored {
		if slot := domain.ThemeSlot(k); slot != "" && domain.ValidHex(v) {
			out[slot] = v
		}
	}
	return out
}

func (uc *ContentUC) UpdateTheme(ctx context.Context, t domain.Theme) error {
	if err := t.Validate(); err != nil {
		return err
	}
	values := make(map[string]string, len(t))
	for slot, hex := range t {
		values[domain.ThemeSettingKey(slot)] = hex
	}
	return uc.Settings.Set(ctx, values)
}

// DefaultLanguage is the stored storefront default, else the configured one.
func (uc *ContentUC) DefaultLanguage(ctx context.Context) i18n.Lang {
	v, err := uc.Settings.Get(ctx, domain.SettingDefaultLanguage)
	if err == nil {
		if l, ok := i18n.Parse(v); ok {
			return l
		}
	}
	if uc.DefaultLang == "" {
		return i18n.EN
	}
	return uc.DefaultLang
}

func (uc *ContentUC) ReloadTranslations(ctx context.Context) error {
	rows, err := uc.Settings.Translations(ctx)
	if err != nil {
		return err
	}
	uc.Translator.Load(rows)
	return nil
}

func (uc *ContentUC) Translations(ctx context.Context) ([]domain.Translation, error) {
	return uc.Settings.Translations(ctx)
}

func (uc *ContentUC) UpsertTranslation(ctx context.Context, t *domain.Translation) error {
	t.Key = strings.TrimSpace(t.Key)
	if t.Key == "" {
		return domain.Invalid("Translation needs a key")
	}
	if err := uc.Settings.UpsertTranslation(ctx, t); err != nil {
		return err
	}
	return uc.ReloadTranslations(ctx)
}

// --- dashboard ---

type DashboardUC struct {
	Products domain.ProductRepo
	Orders   domain.OrderRepo
	Content  domain.ContentRepo
}

func (uc *DashboardUC) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	var d domain.Dashboard
	var err error
	if d.Products, err = uc.Products.Count(ctx); err != nil {
		return d, err
	}
	if d.OrdersByStatus, err = uc.Orders.CountByStatus(ctx); err != nil {
		return d, err
	}
	if d.PendingReviews, err = uc.Content.CountPendingReviews(ctx); err != nil {
		return d, err
	}
	ts, err := uc.Content.ListTestimonials(ctx, false)
	if err != nil {
		return d, err
	}
	d.Testimonials = int64(len(ts))
	return d, nil
}
