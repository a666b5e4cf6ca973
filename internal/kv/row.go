package kv

import (
	"fmt"
	"strings"
)

// EncodingBase64 marks a row whose value is kept base64 encoded because it is not text.
const EncodingBase64 = "base64"

// Row is one editable key/value pair. Encoding is empty for plain text values.
type Row struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Encoding string `json:"encoding,omitempty"`
}

// Rows is the ordered list backing a key/value form array.
type Rows []Row

// ErrorCode tags a row validation failure
type ErrorCode string

const (
	MissingKey   ErrorCode = "keyIsMissing"
	DuplicateKey ErrorCode = "duplicateKey"
)

// RowError describes a validation failure for the row at Index.
type RowError struct {
	Index int       `json:"index"`
	Code  ErrorCode `json:"code"`
	Key   string    `json:"key,omitempty"`
}

func (e RowError) Error() string {
	if e.Code == DuplicateKey {
		return fmt.Sprintf("row %d: duplicate key %q", e.Index, e.Key)
	}
	return fmt.Sprintf("row %d: key is missing", e.Index)
}

// ValidationErrors collects all row errors of a list. They block submission, never editing.
type ValidationErrors []RowError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any error carries the given code.
func (v ValidationErrors) Has(code ErrorCode) bool {
	for _, e := range v {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Filter returns the errors carrying the given code.
func (v ValidationErrors) Filter(code ErrorCode) ValidationErrors {
	var out ValidationErrors
	for _, e := range v {
		if e.Code == code {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks every row against the rows before it. A later duplicate is flagged, not the earlier one.
func Validate(rows Rows) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		if row.Value != "" && row.Key == "" {
			errs = append(errs, RowError{Index: i, Code: MissingKey})
		}
		if row.Key == "" {
			continue
		}
		if _, dup := seen[row.Key]; dup {
			errs = append(errs, RowError{Index: i, Code: DuplicateKey, Key: row.Key})
			continue
		}
		seen[row.Key] = struct{}{}
	}

	return errs
}
