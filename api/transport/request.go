package transport

import "encoding/json"

// EnvelopeRequest describes an envelope to build. Pointer fields
// distinguish "absent" from zero values.
type EnvelopeRequest struct {
	Status  string          `json:"status"`
	Message *string         `json:"message"`
	Code    *int            `json:"code"`
	Data    json.RawMessage `json:"data"`
}
