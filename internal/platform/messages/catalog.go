// Package messages provides the localized message catalog.
//
// The catalog maps taxonomy codes (e.g. "A0002") to a stable message key
// and localized text per supported language. It is loaded once at startup
// from an embedded TOML file and is immutable afterwards, so it is safe
// for unsynchronized concurrent reads.
package messages

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var catalogTOML []byte

// LanguageEN is the default language.
const LanguageEN = "en"

// LanguageFR is the secondary supported language.
const LanguageFR = "fr"

// fallbackCode is the entry used when a code is unknown.
const fallbackCode = "S9001"

// Entry is a resolved catalog entry for one code and language.
type Entry struct {
	// Key is the stable, language-independent message key (e.g. "auth.token_expired").
	Key string
	// Text is the localized message text.
	Text string
}

type record struct {
	Key string `toml:"key"`
	EN  string `toml:"en"`
	FR  string `toml:"fr"`
}

type catalogFile struct {
	Codes map[string]record `toml:"codes"`
}

// Catalog is the immutable code -> localized message table.
type Catalog struct {
	codes       map[string]record
	defaultLang string
}

// Load parses the embedded catalog file.
func Load() (*Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(catalogTOML, &file); err != nil {
		return nil, fmt.Errorf("parse message catalog: %w", err)
	}
	if _, ok := file.Codes[fallbackCode]; !ok {
		return nil, fmt.Errorf("message catalog missing fallback entry %s", fallbackCode)
	}
	return &Catalog{
		codes:       file.Codes,
		defaultLang: LanguageEN,
	}, nil
}

// MustLoad parses the embedded catalog file, panicking on error.
// The catalog ships with the binary, so a parse failure is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup resolves a code to its entry in the requested language.
//
// Fallback is deterministic: an unsupported language falls back to the
// default language, and an unknown code falls back to the generic
// system-error entry.
func (c *Catalog) Lookup(code, lang string) Entry {
	rec, ok := c.codes[code]
	if !ok {
		rec = c.codes[fallbackCode]
	}
	return Entry{
		Key:  rec.Key,
		Text: rec.text(lang),
	}
}

// Has reports whether the catalog knows the given code.
func (c *Catalog) Has(code string) bool {
	_, ok := c.codes[code]
	return ok
}

// DefaultLanguage returns the language used when a requested language
// is not supported.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

func (r record) text(lang string) string {
	switch lang {
	case LanguageFR:
		if r.FR != "" {
			return r.FR
		}
	}
	return r.EN
}
