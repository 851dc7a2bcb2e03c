// Package jsend builds response envelopes following the JSend convention:
// a status discriminator (success, fail or error) plus the fields that
// status requires.
//
// A Builder is mutated through chained setters and rendered with ToJSON or
// ToJSONP. Rendering never fails: a builder missing a required index renders
// as an error envelope describing the missing index instead.
//
//	out := jsend.New().
//		SetStatus(jsend.StatusSuccess).
//		AddData("id", 1).
//		ToJSON()
//	// {"status":"success","data":{"id":1}}
//
// A Builder is not safe for concurrent use; give each response its own.
package jsend

import (
	"encoding/json"
	"errors"
	"maps"
	"slices"

	"go.uber.org/zap"
)

// ErrDataEncoding is reported by Render when the data mapping holds values
// encoding/json rejects, such as channels or NaN.
var ErrDataEncoding = errors.New("Data index could not be encoded in built response message")

// Builder accumulates the state of one response envelope.
type Builder struct {
	status   Status
	data     map[string]any
	message  *string
	code     *int
	callback string
	logger   *zap.Logger
}

// envelope is the wire shape. Field order here is the output key order.
type envelope struct {
	Status  string  `json:"status"`
	Message *string `json:"message,omitempty"`
	Data    any     `json:"data,omitempty"`
	Code    *int    `json:"code,omitempty"`
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// NewResponse returns a builder with the given initial state. A nil data
// mapping, nil message or empty callback leave those fields unset; a
// pointer to "" is a set, empty message.
func NewResponse(status Status, data map[string]any, message *string, callback string) *Builder {
	b := New().SetStatus(status).SetData(data).SetJSONPCallback(callback)
	if message != nil {
		b.SetMessage(*message)
	}
	return b
}

// Success returns a success builder carrying data.
func Success(data map[string]any) *Builder {
	return New().SetStatus(StatusSuccess).SetData(data)
}

// Fail returns a fail builder carrying message.
func Fail(message string) *Builder {
	return New().SetStatus(StatusFail).SetMessage(message)
}

// Error returns an error builder carrying message.
func Error(message string) *Builder {
	return New().SetStatus(StatusError).SetMessage(message)
}

// WithLogger attaches a logger that reports internal error fallbacks.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// SetStatus overwrites the status. Validity is checked when rendering.
func (b *Builder) SetStatus(status Status) *Builder {
	b.status = status
	return b
}

// SetData replaces the data mapping with a shallow copy of data, so later
// AddData calls never write into the caller's map. A nil mapping unsets data.
func (b *Builder) SetData(data map[string]any) *Builder {
	b.data = maps.Clone(data)
	return b
}

// AddData sets data[key] to value, creating the mapping if needed.
// An empty key is ignored.
func (b *Builder) AddData(key string, value any) *Builder {
	if key == "" {
		return b
	}
	if b.data == nil {
		b.data = make(map[string]any)
	}
	b.data[key] = value
	return b
}

// SetMessage overwrites the message. The empty string counts as set.
func (b *Builder) SetMessage(message string) *Builder {
	b.message = &message
	return b
}

// ClearMessage unsets the message.
func (b *Builder) ClearMessage() *Builder {
	b.message = nil
	return b
}

// SetErrorCode sets the numeric code rendered under the "code" index.
func (b *Builder) SetErrorCode(code int) *Builder {
	b.code = &code
	return b
}

// ClearErrorCode unsets the error code.
func (b *Builder) ClearErrorCode() *Builder {
	b.code = nil
	return b
}

// SetJSONPCallback sets the function name used by ToJSONP. The name is not
// escaped or validated. An empty name unsets the callback.
func (b *Builder) SetJSONPCallback(name string) *Builder {
	b.callback = name
	return b
}

func (b *Builder) Status() Status {
	return b.status
}

// Data returns a shallow copy of the data mapping, or nil if unset.
func (b *Builder) Data() map[string]any {
	return maps.Clone(b.data)
}

func (b *Builder) Message() (string, bool) {
	if b.message == nil {
		return "", false
	}
	return *b.message, true
}

func (b *Builder) ErrorCode() (int, bool) {
	if b.code == nil {
		return 0, false
	}
	return *b.code, true
}

func (b *Builder) JSONPCallback() (string, bool) {
	return b.callback, b.callback != ""
}

// Validate returns a *MissingFieldError for the first required index that
// is absent, checking status, message, data and code in that order.
func (b *Builder) Validate() error {
	required := RequiredFields(b.status)
	if required == nil {
		return &MissingFieldError{Field: FieldStatus}
	}
	for _, f := range fieldOrder {
		if !b.has(f) && slices.Contains(required, f) {
			return &MissingFieldError{Field: f}
		}
	}
	return nil
}

func (b *Builder) has(f Field) bool {
	switch f {
	case FieldStatus:
		return b.status.Valid()
	case FieldMessage:
		return b.message != nil
	case FieldData:
		return b.data != nil
	case FieldCode:
		return b.code != nil
	}
	return false
}

// ToJSON renders the envelope. Set indexes are always written; a missing
// required index replaces the whole output with an internal error envelope.
func (b *Builder) ToJSON() string {
	out, _ := b.Render()
	return out
}

// Render is ToJSON that also reports why the output is an internal error
// envelope: a *MissingFieldError, ErrDataEncoding, or nil when the
// envelope rendered as built.
func (b *Builder) Render() (string, error) {
	if err := b.Validate(); err != nil {
		b.log().Warn("built response is missing a required index",
			zap.String("status", b.status.String()),
			zap.Error(err),
		)
		return internalError(err.Error()), err
	}

	env := envelope{
		Status:  b.status.String(),
		Message: b.message,
		Code:    b.code,
	}
	if b.data != nil {
		env.Data = b.data
	}

	out, err := json.Marshal(env)
	if err != nil {
		b.log().Warn("failed to encode response data", zap.Error(err))
		return internalError(ErrDataEncoding.Error()), ErrDataEncoding
	}
	return string(out), nil
}

// ToJSONP wraps ToJSON in a call to the JSONP callback, if one is set.
func (b *Builder) ToJSONP() string {
	return b.wrap(b.ToJSON())
}

// RenderJSONP is ToJSONP with the fallback reason of Render.
func (b *Builder) RenderJSONP() (string, error) {
	out, err := b.Render()
	return b.wrap(out), err
}

func (b *Builder) wrap(out string) string {
	if b.callback == "" {
		return out
	}
	return b.callback + "(" + out + ")"
}

// Bytes is ToJSON as a byte slice.
func (b *Builder) Bytes() []byte {
	return []byte(b.ToJSON())
}

// MarshalJSON implements json.Marshaler. It never returns an error.
func (b *Builder) MarshalJSON() ([]byte, error) {
	return b.Bytes(), nil
}

// String returns the JSON rendering for logging purposes.
func (b *Builder) String() string {
	return b.ToJSON()
}

func (b *Builder) log() *zap.Logger {
	if b.logger == nil {
		return zap.NewNop()
	}
	return b.logger
}

func internalError(message string) string {
	// both fields are plain strings, so encoding cannot fail
	out, _ := json.Marshal(envelope{
		Status:  StatusError.String(),
		Message: &message,
	})
	return string(out)
}
