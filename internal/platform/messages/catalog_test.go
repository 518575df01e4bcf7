package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.NotNil(t, c)

	// Every taxonomy code used by the pipeline must be present.
	for _, code := range []string{
		"A0001", "A0002", "A0003", "A0004", "A0005",
		"V1001", "V1002", "V1003", "V1004", "V1005",
		"S9001",
		"M2001", "M2002", "M2003", "M2004",
	} {
		assert.True(t, c.Has(code), "catalog missing %s", code)
	}
}

func TestLookup(t *testing.T) {
	c := MustLoad()

	entry := c.Lookup("A0002", LanguageEN)
	assert.Equal(t, "auth.token_expired", entry.Key)
	assert.NotEmpty(t, entry.Text)

	frEntry := c.Lookup("A0002", LanguageFR)
	assert.Equal(t, "auth.token_expired", frEntry.Key)
	assert.NotEqual(t, entry.Text, frEntry.Text)
}

func TestLookupFallbackLanguage(t *testing.T) {
	c := MustLoad()

	// Unsupported language falls back to the default language text.
	en := c.Lookup("V1001", LanguageEN)
	de := c.Lookup("V1001", "de")
	assert.Equal(t, en, de)
}

func TestLookupFallbackCode(t *testing.T) {
	c := MustLoad()

	// Unknown codes resolve to the generic system-error entry, deterministically.
	first := c.Lookup("X9999", LanguageEN)
	second := c.Lookup("X9999", LanguageEN)
	assert.Equal(t, "system.error", first.Key)
	assert.Equal(t, first, second)
}
