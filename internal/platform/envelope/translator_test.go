package envelope

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"go.storegate.dev/internal/common/repository"
	"go.storegate.dev/internal/platform/messages"
)

func newTestTranslator(t *testing.T, devMode bool) *Translator {
	t.Helper()
	return NewTranslator(messages.MustLoad(), devMode, nil)
}

func TestTranslateSentinel(t *testing.T) {
	tr := newTestTranslator(t, false)

	e := tr.Translate(NewSentinel(CodeTokenExpired), messages.LanguageEN)
	assert.Equal(t, "auth.token_expired", e.Code)
	assert.Equal(t, CodeTokenExpired, e.ErrorCode)
	assert.NotEmpty(t, e.Message)
	assert.Empty(t, e.Details)
	assert.False(t, e.Timestamp.IsZero())
}

func TestTranslateCodedString(t *testing.T) {
	tr := newTestTranslator(t, false)

	t.Run("with details", func(t *testing.T) {
		e := tr.Translate(errors.New("X1234:extra detail"), messages.LanguageEN)
		assert.Equal(t, "X1234", e.ErrorCode)
		assert.Equal(t, "extra detail", e.Details)
		// Unknown code resolves to the generic system-error entry,
		// but the raw code is preserved for clients.
		assert.Equal(t, "system.error", e.Code)
	})

	t.Run("without details", func(t *testing.T) {
		e := tr.Translate(errors.New("X1234"), messages.LanguageEN)
		assert.Equal(t, "X1234", e.ErrorCode)
		assert.Empty(t, e.Details)
	})

	t.Run("known code", func(t *testing.T) {
		e := tr.Translate(fmt.Errorf("%s:name", CodeMissingRequiredField), messages.LanguageEN)
		assert.Equal(t, "validation.missing_required_field", e.Code)
		assert.Equal(t, CodeMissingRequiredField, e.ErrorCode)
		assert.Equal(t, "name", e.Details)
	})
}

func TestTranslateShapedPassthrough(t *testing.T) {
	tr := newTestTranslator(t, false)

	original := &Error{
		Code:      "auth.unauthorized",
		ErrorCode: CodeUnauthorized,
		Message:   "no",
		Timestamp: time.Now().UTC(),
	}
	e := tr.Translate(original, messages.LanguageEN)
	assert.Same(t, original, e)
}

func TestTranslateDuplicateKey(t *testing.T) {
	tr := newTestTranslator(t, false)

	t.Run("staff email composite index", func(t *testing.T) {
		err := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
			Code:    11000,
			Message: `E11000 duplicate key error collection: storegate.staff_members index: storeId_1_email_1 dup key: { storeId: "st-1", email: "a@b.c" }`,
		}}}
		e := tr.Translate(err, messages.LanguageEN)
		assert.Equal(t, CodeDuplicateStaffEmail, e.ErrorCode)
		assert.Equal(t, "validation.duplicate_staff_email", e.Code)
		assert.Equal(t, "email", e.Ext["field"])
	})

	t.Run("other unique index", func(t *testing.T) {
		err := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
			Code:    11000,
			Message: `E11000 duplicate key error collection: storegate.principals index: email_1 dup key: { email: "a@b.c" }`,
		}}}
		e := tr.Translate(err, messages.LanguageEN)
		assert.Equal(t, CodeDuplicateRecord, e.ErrorCode)
		assert.Equal(t, "email_1", e.Ext["index"])
	})

	t.Run("repository sentinel", func(t *testing.T) {
		e := tr.Translate(fmt.Errorf("insert staff: %w", repository.ErrDuplicateKey), messages.LanguageEN)
		assert.Equal(t, CodeDuplicateRecord, e.ErrorCode)
	})
}

func TestTranslateDocumentValidation(t *testing.T) {
	tr := newTestTranslator(t, false)

	err := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    121,
		Message: "Document failed validation: email must be a string",
	}}}
	e := tr.Translate(err, messages.LanguageEN)
	assert.Equal(t, CodeValidationFailed, e.ErrorCode)
	assert.Contains(t, e.Details, "email must be a string")
}

func TestTranslateUnknownError(t *testing.T) {
	raw := errors.New("pq: connection reset by peer")

	t.Run("production hides raw detail", func(t *testing.T) {
		tr := newTestTranslator(t, false)
		e := tr.Translate(raw, messages.LanguageEN)
		assert.Equal(t, CodeSystemError, e.ErrorCode)
		assert.Equal(t, "system.error", e.Code)
		assert.Empty(t, e.Details)
		assert.NotContains(t, e.Message, "connection reset")
	})

	t.Run("dev mode attaches raw detail", func(t *testing.T) {
		tr := newTestTranslator(t, true)
		e := tr.Translate(raw, messages.LanguageEN)
		assert.Equal(t, CodeSystemError, e.ErrorCode)
		assert.Equal(t, raw.Error(), e.Details)
	})
}

func TestErrorMarshalJSON(t *testing.T) {
	e := &Error{
		Code:      "validation.duplicate_staff_email",
		ErrorCode: CodeDuplicateStaffEmail,
		Message:   "dup",
		Details:   "email taken",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Ext:       map[string]any{"field": "email"},
	}

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "validation.duplicate_staff_email", out["code"])
	assert.Equal(t, CodeDuplicateStaffEmail, out["errorCode"])
	assert.Equal(t, "email taken", out["details"])
	assert.Equal(t, "2025-06-01T12:00:00Z", out["timestamp"])
	assert.Equal(t, "email", out["field"]) // ext flattened into the envelope
}
