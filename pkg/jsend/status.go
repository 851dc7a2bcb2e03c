package jsend

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the response discriminator. The zero value means no status was set.
type Status uint8

const (
	StatusUnset Status = iota
	StatusSuccess
	StatusFail
	StatusError
)

// ErrUnknownStatus is returned by ParseStatus for values outside success, fail and error.
var ErrUnknownStatus = errors.New("jsend: unknown status")

var statusNames = [...]string{
	StatusUnset:   "",
	StatusSuccess: "success",
	StatusFail:    "fail",
	StatusError:   "error",
}

// String returns the wire value of the status.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return ""
}

// Valid reports whether s is one of success, fail or error.
func (s Status) Valid() bool {
	return s >= StatusSuccess && s <= StatusError
}

// ParseStatus maps a wire value back to a Status.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "success":
		return StatusSuccess, nil
	case "fail":
		return StatusFail, nil
	case "error":
		return StatusError, nil
	default:
		return StatusUnset, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
}

// Field names one of the fixed envelope indexes.
type Field uint8

const (
	FieldStatus Field = iota
	FieldMessage
	FieldData
	FieldCode
)

// fieldOrder is the order in which indexes are checked and written.
var fieldOrder = [...]Field{FieldStatus, FieldMessage, FieldData, FieldCode}

var fieldNames = [...]string{
	FieldStatus:  "status",
	FieldMessage: "message",
	FieldData:    "data",
	FieldCode:    "code",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "unknown"
}

// Title is the capitalised index name used in internal error messages.
func (f Field) Title() string {
	name := f.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// RequiredFields returns the indexes that must be present for status, status included.
// It returns nil when status is not one of success, fail or error.
func RequiredFields(status Status) []Field {
	switch status {
	case StatusSuccess:
		return []Field{FieldStatus, FieldData}
	case StatusFail, StatusError:
		return []Field{FieldStatus, FieldMessage}
	default:
		return nil
	}
}

// MissingFieldError reports a required index that was absent when the response was built.
type MissingFieldError struct {
	Field Field
}

func (e *MissingFieldError) Error() string {
	return e.Field.Title() + " index is missing from built response message"
}

// IsMissingField reports whether err carries a MissingFieldError for field.
func IsMissingField(err error, field Field) bool {
	var mErr *MissingFieldError
	if errors.As(err, &mErr) {
		return mErr.Field == field
	}
	return false
}
