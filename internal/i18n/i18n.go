// Package i18n resolves storefront strings in English and Bangla. Built-in
// tables are overridden by rows from the translations table.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/phenrril/kiddocorner/internal/domain"
)

type Lang string

const (
	EN Lang = "en"
	BN Lang = "bn"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.Bengali})

// Parse accepts "en"/"bn" and any BCP 47 tag that matches one of them.
func Parse(s string) (Lang, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	if idx == 1 {
		return BN, true
	}
	return EN, true
}

// Negotiate picks the language from an explicit choice, then the
// Accept-Language header, then the site default.
func Negotiate(explicit, acceptLanguage string, def Lang) Lang {
	if l, ok := Parse(explicit); ok {
		return l
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				if idx == 1 {
					return BN
				}
				return EN
			}
		}
	}
	if def == BN {
		return BN
	}
	return EN
}

type Translator struct {
	mu        sync.RWMutex
	overrides map[Lang]map[string]string
}

func New() *Translator {
	return &Translator{overrides: map[Lang]map[string]string{EN: {}, BN: {}}}
}

// Load replaces the overrides. Empty cells keep the built-in text.
func (t *Translator) Load(rows []domain.Translation) {
	next := map[Lang]map[string]string{EN: {}, BN: {}}
	for _, r := range rows {
		if r.English != "" {
			next[EN][r.Key] = r.English
		}
		if r.Bangla != "" {
			next[BN][r.Key] = r.Bangla
		}
	}
	t.mu.Lock()
	t.overrides = next
	t.mu.Unlock()
}

func (t *Translator) lookup(lang Lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if v, ok := t.overrides[lang][key]; ok {
		return v, true
	}
	v, ok := builtin[lang][key]
	return v, ok
}

// T returns the text for key in lang, else fallback, else the key itself.
// {name} placeholders are filled from values.
func (t *Translator) T(lang Lang, key, fallback string, values map[string]any) string {
	s, ok := t.lookup(lang, key)
	if !ok || s == "" {
		s = fallback
	}
	if s == "" {
		s = key
	}
	for k, v := range values {
		s = strings.ReplaceAll(s, "{"+k+"}", fmt.Sprint(v))
	}
	return s
}

// Table is every known key for lang with overrides applied.
func (t *Translator) Table(lang Lang) map[string]string {
	out := map[string]string{}
	for k, v := range builtin[lang] {
		out[k] = v
	}
	t.mu.RLock()
	for k, v := range t.overrides[lang] {
		out[k] = v
	}
	t.mu.RUnlock()
	return out
}
