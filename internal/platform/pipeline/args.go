package pipeline

import "fmt"

// Argument keys with pipeline-level meaning.
const (
	// ArgInput holds the caller-supplied input payload.
	ArgInput = "input"
	// ArgAccountID names the target account for ownership checks.
	ArgAccountID = "accountId"
	// ArgStoreID names the target store for tenant-scope checks.
	ArgStoreID = "storeId"
)

// Args is the caller-supplied argument bag for one invocation.
type Args map[string]any

// Input returns the input payload: the nested "input" map when present,
// otherwise the arguments themselves.
func (a Args) Input() map[string]any {
	if in, ok := a[ArgInput].(map[string]any); ok {
		return in
	}
	return a
}

// String returns the string value for a top-level key, or "" when the key
// is absent or not a string.
func (a Args) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// AccountID returns the target account id named by the arguments, if any.
// Non-string ids are normalized to their string form.
func (a Args) AccountID() string {
	return stringify(a[ArgAccountID])
}

// StoreID returns the target store id named by the arguments, if any.
// Non-string ids are normalized to their string form.
func (a Args) StoreID() string {
	return stringify(a[ArgStoreID])
}

// stringify normalizes an id value to its string representation, so that
// comparisons between argument ids and principal ids always happen in the
// same representation.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int, int32, int64, float32, float64:
		return fmt.Sprint(t)
	case interface{ String() string }:
		return t.String()
	default:
		return ""
	}
}

// present reports whether a required field value counts as supplied:
// nil and the empty string do not.
func present(v any, ok bool) bool {
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}
