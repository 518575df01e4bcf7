package api

import (
	"encoding/json"
	"net/http"

	"go.storegate.dev/internal/platform/envelope"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// WriteResult writes a pipeline result, mapping the envelope's taxonomy code
// to the HTTP status. successStatus applies to successful results.
func WriteResult(w http.ResponseWriter, result envelope.Result, successStatus int) {
	if result.IsFailure() {
		e := result.Err()
		WriteJSON(w, statusForCode(e.ErrorCode), e)
		return
	}
	WriteJSON(w, successStatus, result.Value())
}

// statusForCode maps a taxonomy code to an HTTP status. The mapping is by
// code class: authentication failures are 401, authorization failures 403,
// input defects 400, duplicates 409, unknown targets 404, and everything
// unclassified is a 500.
func statusForCode(code string) int {
	switch code {
	case envelope.CodeUnauthenticated, envelope.CodeTokenExpired:
		return http.StatusUnauthorized
	case envelope.CodeUnauthorized, envelope.CodeInsufficientPermission, envelope.CodeTenantAccessDenied:
		return http.StatusForbidden
	case envelope.CodeMissingRequiredField, envelope.CodeValidationFailed:
		return http.StatusBadRequest
	case envelope.CodeDuplicateRecord, envelope.CodeDuplicateStaffEmail:
		return http.StatusConflict
	case envelope.CodeStaffNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes JSON from a request body
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
