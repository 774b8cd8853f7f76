package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
)

// Field messages follow the wording API clients of the original service already handle.
const (
	msgRequired     = "This field is required."
	msgBlank        = "This field may not be blank."
	msgInvalidURL   = "Enter a valid URL."
	msgInvalidEmail = "Enter a valid email address."
	msgInvalidDate  = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
)

// maxCharLength bounds VARCHAR columns.
const maxCharLength = 255

func msgTooLong(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}

func msgDoesNotExist(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

// Nullable distinguishes an absent JSON field from an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only invoked when the key is present.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// writeMode says whether a write must carry every required field.
type writeMode int

const (
	// fullWrite is create or PUT: required fields must be present.
	fullWrite writeMode = iota
	// partialWrite is PATCH: absent fields keep their stored value.
	partialWrite
)

func modeFor(partial bool) writeMode {
	if partial {
		return partialWrite
	}
	return fullWrite
}

func checkLength(ve *apperrors.ValidationError, field, value string, maxLen int) {
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		ve.Add(field, msgTooLong(maxLen))
	}
}

// setRequiredText assigns the trimmed value of v to dst. Blank values are rejected,
// absent values only on a full write.
func setRequiredText(ve *apperrors.ValidationError, field string, dst, v *string, mode writeMode, maxLen int) {
	if v == nil {
		if mode == fullWrite {
			ve.Add(field, msgRequired)
		}
		return
	}
	text := models.NormalizeText(*v)
	if text == "" {
		ve.Add(field, msgBlank)
		return
	}
	checkLength(ve, field, text, maxLen)
	*dst = text
}

// setOptionalText assigns the trimmed value of v to dst when present.
func setOptionalText(ve *apperrors.ValidationError, field string, dst, v *string, maxLen int) {
	if v == nil {
		return
	}
	text := models.NormalizeText(*v)
	checkLength(ve, field, text, maxLen)
	*dst = text
}

// setURL assigns an optional absolute http(s) URL. An empty string clears it.
func setURL(ve *apperrors.ValidationError, field string, dst, v *string) {
	if v == nil {
		return
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed != "" && !models.IsValidURL(trimmed) {
		ve.Add(field, msgInvalidURL)
		return
	}
	checkLength(ve, field, trimmed, maxCharLength)
	*dst = trimmed
}

// requireRef reports the referenced id, recording a problem when a full write omits it.
func requireRef(ve *apperrors.ValidationError, field string, v *int64, mode writeMode) (int64, bool) {
	if v == nil {
		if mode == fullWrite {
			ve.Add(field, msgRequired)
		}
		return 0, false
	}
	if *v <= 0 {
		ve.Add(field, msgDoesNotExist(*v))
		return 0, false
	}
	return *v, true
}

// parseOptionalDate parses a YYYY-MM-DD date. An explicit null clears the date.
func parseOptionalDate(ve *apperrors.ValidationError, field string, v Nullable[string]) (*time.Time, bool) {
	if !v.Set {
		return nil, false
	}
	if v.Value == nil || strings.TrimSpace(*v.Value) == "" {
		return nil, true
	}
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(*v.Value))
	if err != nil {
		ve.Add(field, msgInvalidDate)
		return nil, false
	}
	return &d, true
}
