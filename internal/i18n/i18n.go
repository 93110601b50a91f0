// Package i18n holds the UI dictionaries and the persisted language choice.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/youruser/cardapp/internal/prefs"
)

const (
	EN = "en"
	ZH = "zh"

	Fallback = EN
	// StorageKey is the preference key the selection is persisted under.
	StorageKey = "language"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

//go:embed locales/*.yaml
var localeFS embed.FS

var dicts = mustLoad(EN, ZH)

// Dictionary maps flat keys such as "placeholder.name" to UI strings.
type Dictionary map[string]string

// T returns the string for key, or the key itself when it is missing.
func (d Dictionary) T(key string) string {
	if v, ok := d[key]; ok {
		return v
	}
	return key
}

// Supported lists the language tags with a dictionary.
func Supported() []string {
	return []string{EN, ZH}
}

// IsSupported reports whether lang names a dictionary exactly.
func IsSupported(lang string) bool {
	_, ok := dicts[lang]
	return ok
}

// Get returns a copy of the dictionary for lang; unknown tags get English.
func Get(lang string) Dictionary {
	d, ok := dicts[lang]
	if !ok {
		d = dicts[Fallback]
	}
	out := make(Dictionary, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Normalize maps a BCP 47 tag onto a supported language, so "ZH",
// "zh-Hans" and "en-GB" are accepted.
func Normalize(tag string) (string, error) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil || tag == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
	}
	base, _ := t.Base()
	if !IsSupported(base.String()) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
	}
	return base.String(), nil
}

// Selection is the process-wide language choice, written through to a
// preference store on every switch.
type Selection struct {
	store prefs.Store

	mu   sync.RWMutex
	lang string
}

// NewSelection restores the persisted language. A missing or unrecognized
// value selects English. The returned Selection is usable even when the
// store could not be read; the error is reported so callers can log it.
func NewSelection(store prefs.Store) (*Selection, error) {
	s := &Selection{store: store, lang: Fallback}
	v, ok, err := store.Get(StorageKey)
	if err != nil {
		return s, fmt.Errorf("read %s preference: %w", StorageKey, err)
	}
	if ok && IsSupported(v) {
		s.lang = v
	}
	return s, nil
}

func (s *Selection) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// Dictionary returns the dictionary of the current language.
func (s *Selection) Dictionary() Dictionary {
	return Get(s.Current())
}

// Switch persists and selects tag. The selection is unchanged on error.
func (s *Selection) Switch(tag string) (string, error) {
	lang, err := Normalize(tag)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(StorageKey, lang); err != nil {
		return "", fmt.Errorf("persist %s preference: %w", StorageKey, err)
	}
	s.lang = lang
	return lang, nil
}

// Toggle flips between Chinese and English.
func (s *Selection) Toggle() (string, error) {
	next := ZH
	if s.Current() == ZH {
		next = EN
	}
	return s.Switch(next)
}

func mustLoad(langs ...string) map[string]Dictionary {
	out := map[string]Dictionary{}
	for _, l := range langs {
		raw, err := localeFS.ReadFile("locales/" + l + ".yaml")
		if err != nil {
			panic(fmt.Sprintf("load locale %s: %v", l, err))
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			panic(fmt.Sprintf("unmarshal locale %s: %v", l, err))
		}
		d := Dictionary{}
		flatten("", tree, d)
		out[l] = d
	}
	return out
}

func flatten(prefix string, tree map[string]any, out Dictionary) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(key, v, out)
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}
