package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID *uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Name      string     `gorm:"size:140" json:"name"`
	Rating    int        `gorm:"not null" json:"rating"`
	Comment   string     `gorm:"type:text" json:"comment"`
	Approved  bool       `gorm:"default:false;index" json:"approved"`
	Featured  bool       `gorm:"default:false" json:"featured"`
	CreatedAt time.Time  `json:"created_at"`
}

type Testimonial struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:140" json:"name"`
	Role      string    `gorm:"size:140" json:"role"`
	Content   string    `gorm:"type:text" json:"content"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url"`
	Rating    int       `gorm:"default:5" json:"rating"`
	Featured  bool      `gorm:"default:false;index" json:"featured"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidRating(r int) bool { return r >= 1 && r <= 5 }

// --- footer ---

type FooterKind string

const (
	FooterAbout      FooterKind = "about"
	FooterContact    FooterKind = "contact"
	FooterLinks      FooterKind = "links"
	FooterSocial     FooterKind = "social"
	FooterNewsletter FooterKind = "newsletter"
)

// FooterContent is implemented only by the section types below.
type FooterContent interface {
	Kind() FooterKind
	footer()
}

type AboutSection struct {
	Text string `json:"text"`
}

type ContactSection struct {
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type FooterLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

type LinksSection struct {
	Links []FooterLink `json:"links"`
}

type SocialSection struct {
	Links []FooterLink `json:"links"`
}

type NewsletterSection struct {
	Text        string `json:"text"`
	Placeholder string `json:"placeholder"`
	ButtonText  string `json:"button_text"`
}

func (AboutSection) Kind() FooterKind      { return FooterAbout }
func (ContactSection) Kind() FooterKind    { return FooterContact }
func (LinksSection) Kind() FooterKind      { return FooterLinks }
func (SocialSection) Kind() FooterKind     { return FooterSocial }
func (NewsletterSection) Kind() FooterKind { return FooterNewsletter }

func (AboutSection) footer()      {}
func (ContactSection) footer()    {}
func (LinksSection) footer()      {}
func (SocialSection) footer()     {}
func (NewsletterSection) footer() {}

// DecodeFooterContent parses the stored JSON for a section kind.
func DecodeFooterContent(kind FooterKind, raw []byte) (FooterContent, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	var c FooterContent
	var err error
	switch kind {
	case FooterAbout:
		var v AboutSection
		err = json.Unmarshal(raw, &v)
		c = v
	case FooterContact:
		var v ContactSection
		err = json.Unmarshal(raw, &v)
		c = v
	case FooterLinks:
		var v LinksSection
		err = json.Unmarshal(raw, &v)
		c = v
	case FooterSocial:
		var v SocialSection
		err = json.Unmarshal(raw, &v)
		c = v
	case FooterNewsletter:
		var v NewsletterSection
		err = json.Unmarshal(raw, &v)
		c = v
	default:
		return nil, Invalid("unknown footer section %q", kind)
	}
	if err != nil {
		return nil, Invalid("footer %s: %v", kind, err)
	}
	return c, nil
}

// FooterSection is the stored row. Content holds the JSON of the kind's type.
type FooterSection struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Kind         FooterKind `gorm:"type:varchar(20);index" json:"kind"`
	Title        string     `gorm:"size:140" json:"title"`
	Content      string     `gorm:"type:text" json:"-"`
	Active       bool       `json:"active"`
	DisplayOrder int        `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (FooterSection) TableName() string { return "footer_settings" }

func (s FooterSection) Decode() (FooterContent, error) {
	return DecodeFooterContent(s.Kind, []byte(s.Content))
}

func (s *FooterSection) SetContent(c FooterContent) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.Kind = c.Kind()
	s.Content = string(b)
	return nil
}

// FooterView is a section with its decoded content, as served to clients.
type FooterView struct {
	FooterSection
	Body FooterContent `json:"content"`
}

// --- messages, settings, translations ---

type SystemMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"size:120;uniqueIndex" json:"key"`
	Content   string    `gorm:"type:text" json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SiteSetting struct {
	Key       string    `gorm:"size:120;primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Translation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"size:160;uniqueIndex" json:"key"`
	English   string    `gorm:"type:text" json:"english"`
	Bangla    string    `gorm:"type:text" json:"bangla"`
	UpdatedAt time.Time `json:"updated_at"`
}

const SettingDefaultLanguage = "default_language"

// ThemeKeys lists the theme slots in display order.
var ThemeKeys = []string{"primary", "secondary", "accent", "background", "foreground", "muted", "muted_foreground", "border"}

type Theme map[string]string

func DefaultTheme() Theme {
	return Theme{
		"primary":          "#e91e63",
		"secondary":        "#f3f4f6",
		"accent":           "#f3f4f6",
		"background":       "#ffffff",
		"foreground":       "#0f172a",
		"muted":            "#f3f4f6",
		"muted_foreground": "#6b7280",
		"border":           "#e5e7eb",
	}
}

func ThemeSettingKey(slot string) string { return "theme_" + slot + "_color" }

// ThemeSlot maps a settings key back to its slot, "" when it is not a theme key.
func ThemeSlot(settingKey string) string {
	if !strings.HasPrefix(settingKey, "theme_") || !strings.HasSuffix(settingKey, "_color") {
		return ""
	}
	slot := strings.TrimSuffix(strings.TrimPrefix(settingKey, "theme_"), "_color")
	for _, k := range ThemeKeys {
		if k == slot {
			return slot
		}
	}
	return ""
}

func (t Theme) Validate() error {
	for slot, hex := range t {
		if ThemeSlot(ThemeSettingKey(slot)) == "" {
			return Invalid("unknown theme color %q", slot)
		}
		if !ValidHex(hex) {
			return Invalid("theme color %s needs a valid hex color code", slot)
		}
	}
	return nil
}

// SiteSettings are the storefront identity values kept in site_settings.
type SiteSettings map[string]string

func DefaultSiteSettings() SiteSettings {
	s := SiteSettings{
		"site_name":        "Kiddo Corner",
		"site_description": "Adorable Products for Your Little One",
		"contact_email":    "contact@kiddocorner.com",
		"contact_phone":    "+880 1234 567890",
		"contact_address":  "123 Baby Street, Dhaka, Bangladesh",
		"logo_type":        "text",
		"logo_text":        "KC",
		"logo_image":       "",
		"banner_enabled":   "false",
		"banner_text":      "Free shipping on orders over ৳1000",
	}
	s[SettingDefaultLanguage] = "en"
	return s
}

type Dashboard struct {
	Products       int64                 `json:"products"`
	OrdersByStatus map[OrderStatus]int64 `json:"orders_by_status"`
	PendingReviews int64                 `json:"pending_reviews"`
	Testimonials   int64                 `json:"testimonials"`
}
