package envelope

import (
	"go.storegate.dev/internal/platform/messages"
)

// Normalizer shapes raw handler results into the standard success envelope.
type Normalizer struct {
	catalog *messages.Catalog
}

// NewNormalizer creates a response normalizer backed by the message catalog.
func NewNormalizer(catalog *messages.Catalog) *Normalizer {
	return &Normalizer{catalog: catalog}
}

// Normalize applies the normalization rules in order:
//
//  1. nil passes through as-is.
//  2. Marked results resolve their marker to a localized success message and
//     merge their fields into the envelope (the marker is retained).
//  3. PreShaped results pass through unchanged.
//  4. A plain map is the legacy handler boundary: a map carrying a marker
//     "code" field is treated like Marked; a map that already declares
//     "success" passes through unchanged; any other map is wrapped with
//     success: true.
//  5. Everything else (slices, scalars, structs) passes through unchanged,
//     never wrapped.
//
// Normalization is idempotent and lossless for passthrough values.
func (n *Normalizer) Normalize(raw any, lang string) Result {
	switch v := raw.(type) {
	case nil:
		return newSuccess(nil)
	case Marked:
		return newSuccess(n.envelope(v.Code, v.Fields, lang))
	case *Marked:
		return newSuccess(n.envelope(v.Code, v.Fields, lang))
	case PreShaped:
		return newSuccess(v.Value)
	case map[string]any:
		if code, ok := markerCode(v); ok {
			return newSuccess(n.envelope(code, v, lang))
		}
		if _, ok := v["success"]; ok {
			return newSuccess(v)
		}
		out := make(map[string]any, len(v)+1)
		for k, val := range v {
			out[k] = val
		}
		out["success"] = true
		return newSuccess(out)
	default:
		return newSuccess(raw)
	}
}

// envelope builds the marked success shape: success flag, marker code,
// localized message and key, plus all payload fields.
func (n *Normalizer) envelope(code string, fields map[string]any, lang string) map[string]any {
	entry := n.catalog.Lookup(code, lang)
	out := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		out[k] = v
	}
	out["success"] = true
	out["code"] = code
	out["message"] = entry.Text
	out["messageKey"] = entry.Key
	return out
}

// markerCode reports whether a legacy map result carries a success-marker
// "code" field. Only marker (M-prefixed) taxonomy codes qualify, so error
// envelopes echoed back through a handler are not re-wrapped.
func markerCode(m map[string]any) (string, bool) {
	v, ok := m["code"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	code, _, ok := ParseSentinel(s)
	if !ok || code[0] != 'M' {
		return "", false
	}
	return code, true
}
