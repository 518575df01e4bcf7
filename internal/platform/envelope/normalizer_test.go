package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.storegate.dev/internal/platform/messages"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	return NewNormalizer(messages.MustLoad())
}

func TestNormalizePassthrough(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"slice", []string{"a", "b"}},
		{"empty slice", []any{}},
		{"number", 42},
		{"string", "hello"},
		{"bool", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Normalize(tt.raw, messages.LanguageEN)
			require.True(t, result.IsSuccess())
			// Idempotent and lossless: the value comes back untouched.
			assert.Equal(t, tt.raw, result.Value())

			again := n.Normalize(result.Value(), messages.LanguageEN)
			assert.Equal(t, result.Value(), again.Value())
		})
	}
}

func TestNormalizeMarked(t *testing.T) {
	n := newTestNormalizer(t)

	result := n.Normalize(Marked{
		Code:   CodeStaffCreated,
		Fields: map[string]any{"staffId": "stf-1"},
	}, messages.LanguageEN)

	require.True(t, result.IsSuccess())
	out, ok := result.Value().(map[string]any)
	require.True(t, ok)

	assert.Equal(t, true, out["success"])
	assert.Equal(t, CodeStaffCreated, out["code"]) // marker retained
	assert.Equal(t, "staff.created", out["messageKey"])
	assert.NotEmpty(t, out["message"])
	assert.Equal(t, "stf-1", out["staffId"])
}

func TestNormalizeMarkedLocalized(t *testing.T) {
	n := newTestNormalizer(t)

	en := n.Normalize(Marked{Code: CodeStaffCreated}, messages.LanguageEN)
	fr := n.Normalize(Marked{Code: CodeStaffCreated}, messages.LanguageFR)

	enMsg := en.Value().(map[string]any)["message"]
	frMsg := fr.Value().(map[string]any)["message"]
	assert.NotEqual(t, enMsg, frMsg)
}

func TestNormalizePreShaped(t *testing.T) {
	n := newTestNormalizer(t)

	shaped := map[string]any{"success": false, "custom": "envelope"}
	result := n.Normalize(PreShaped{Value: shaped}, messages.LanguageEN)

	require.True(t, result.IsSuccess())
	assert.Equal(t, shaped, result.Value())
}

func TestNormalizeLegacyMap(t *testing.T) {
	n := newTestNormalizer(t)

	t.Run("marker field", func(t *testing.T) {
		result := n.Normalize(map[string]any{
			"code":    CodeProfileUpdated,
			"staffId": "stf-2",
		}, messages.LanguageEN)

		out := result.Value().(map[string]any)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, CodeProfileUpdated, out["code"])
		assert.Equal(t, "staff.profile_updated", out["messageKey"])
		assert.Equal(t, "stf-2", out["staffId"])
	})

	t.Run("existing success field passes through", func(t *testing.T) {
		legacy := map[string]any{"success": true, "count": 3}
		result := n.Normalize(legacy, messages.LanguageEN)
		assert.Equal(t, legacy, result.Value())
	})

	t.Run("plain map gets wrapped", func(t *testing.T) {
		result := n.Normalize(map[string]any{"name": "Ada"}, messages.LanguageEN)
		out := result.Value().(map[string]any)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, "Ada", out["name"])
	})

	t.Run("non-marker code field is not treated as marker", func(t *testing.T) {
		result := n.Normalize(map[string]any{"code": "ABC"}, messages.LanguageEN)
		out := result.Value().(map[string]any)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, "ABC", out["code"])
		assert.NotContains(t, out, "messageKey")
	})
}
