package pipeline

import (
	"go.storegate.dev/internal/platform/envelope"
)

// validateRequired checks that every declared required field is present in
// the caller-supplied input. Fields are checked in the nested input payload
// when one exists, otherwise at the top level of the arguments. A field is
// missing when it is absent, nil, or an empty string.
//
// Short-circuits on the first missing field. Runs before authorization and
// before any transaction is opened; it has no side effects.
func validateRequired(action Action, args Args) *envelope.Sentinel {
	if len(action.RequiredFields) == 0 {
		return nil
	}

	input := args.Input()
	for _, field := range action.RequiredFields {
		v, ok := input[field]
		if !present(v, ok) {
			return envelope.NewSentinelf(envelope.CodeMissingRequiredField, "%s is required", field).
				WithExt("field", field)
		}
	}
	return nil
}
