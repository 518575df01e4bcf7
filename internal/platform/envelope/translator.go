package envelope

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"go.storegate.dev/internal/common/repository"
	"go.storegate.dev/internal/platform/messages"
)

// mongoDocValidationFailure is the MongoDB server code for a document
// failing collection schema validation.
const mongoDocValidationFailure = 121

// staffEmailIndex is the composite unique index guarding one-email-per-store.
const staffEmailIndex = "storeId_1_email_1"

// dupIndexPattern extracts the index name from a duplicate-key write error
// message ("... duplicate key error ... index: storeId_1_email_1 dup key: ...").
var dupIndexPattern = regexp.MustCompile(`index: (\S+)`)

// Translator maps any failure into a structured, localized error envelope.
// Known taxonomy-coded errors keep their code; storage-layer constraint
// failures are remapped onto validation codes; everything else collapses to
// the generic system-error code so internal detail never reaches clients.
type Translator struct {
	catalog *messages.Catalog
	devMode bool
	logger  *slog.Logger
}

// NewTranslator creates an error translator. In dev mode the raw text of
// unrecognized errors is attached as diagnostic detail; in production it is
// only logged.
func NewTranslator(catalog *messages.Catalog, devMode bool, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{catalog: catalog, devMode: devMode, logger: logger}
}

// Translate builds the error envelope for a failure.
func (t *Translator) Translate(err error, lang string) *Error {
	// Already shaped by a previous layer: pass through unchanged.
	var shaped *Error
	if errors.As(err, &shaped) {
		return shaped
	}

	// Storage-layer constraint failures are remapped onto taxonomy codes
	// before pattern matching.
	if s := remapStorageError(err); s != nil {
		return t.fromSentinel(s, lang)
	}

	var sentinel *Sentinel
	if errors.As(err, &sentinel) {
		return t.fromSentinel(sentinel, lang)
	}

	// Legacy boundary: external handlers may still return plain errors whose
	// message encodes the code.
	if code, details, ok := ParseSentinel(err.Error()); ok {
		return t.fromSentinel(&Sentinel{Code: code, Details: details}, lang)
	}

	// Unrecognized failure: generic system error. The raw message is logged
	// and, outside production, attached as diagnostic detail; clients never
	// see internal error text by default.
	t.logger.Error("Unrecognized error translated to system error", "error", err)
	entry := t.catalog.Lookup(CodeSystemError, lang)
	e := &Error{
		Code:      entry.Key,
		ErrorCode: CodeSystemError,
		Message:   entry.Text,
		Timestamp: time.Now().UTC(),
	}
	if t.devMode {
		e.Details = err.Error()
	}
	return e
}

func (t *Translator) fromSentinel(s *Sentinel, lang string) *Error {
	entry := t.catalog.Lookup(s.Code, lang)
	return &Error{
		Code:      entry.Key,
		ErrorCode: s.Code,
		Message:   entry.Text,
		Details:   s.Details,
		Timestamp: time.Now().UTC(),
		Ext:       s.Ext,
	}
}

// remapStorageError maps MongoDB constraint failures onto taxonomy codes.
// Returns nil when the error is not a storage validation or uniqueness failure.
func remapStorageError(err error) *Sentinel {
	if err == nil {
		return nil
	}

	if mongo.IsDuplicateKeyError(err) {
		if idx := duplicateIndexName(err); strings.Contains(idx, staffEmailIndex) {
			return NewSentinel(CodeDuplicateStaffEmail).WithExt("field", "email")
		} else if idx != "" {
			return NewSentinel(CodeDuplicateRecord).WithExt("index", idx)
		}
		return NewSentinel(CodeDuplicateRecord)
	}
	if errors.Is(err, repository.ErrDuplicateKey) {
		return NewSentinel(CodeDuplicateRecord)
	}

	// Document schema validation failures keep their field-level messages as
	// diagnostic detail under the generic validation code.
	var we mongo.WriteException
	if errors.As(err, &we) {
		var msgs []string
		for _, e := range we.WriteErrors {
			if e.Code == mongoDocValidationFailure {
				msgs = append(msgs, e.Message)
			}
		}
		if len(msgs) > 0 {
			return NewSentinel(CodeValidationFailed).WithDetail(strings.Join(msgs, "; "))
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == mongoDocValidationFailure {
		return NewSentinel(CodeValidationFailed).WithDetail(ce.Message)
	}

	return nil
}

// duplicateIndexName extracts the violated index name from a duplicate-key error.
func duplicateIndexName(err error) string {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if m := dupIndexPattern.FindStringSubmatch(e.Message); m != nil {
				return m[1]
			}
		}
	}
	if m := dupIndexPattern.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}
	return ""
}
