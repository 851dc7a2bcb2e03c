package transport

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fastygo/jsend/pkg/jsend"
)

// HealthPayload is the data of a health check envelope.
type HealthPayload struct {
	App           string `json:"app"`
	Environment   string `json:"environment"`
	Timestamp     string `json:"timestamp"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Map converts the payload into envelope data.
func (p HealthPayload) Map() map[string]any {
	return map[string]any{
		"app":            p.App,
		"environment":    p.Environment,
		"timestamp":      p.Timestamp,
		"uptime_seconds": p.UptimeSeconds,
	}
}

// ValidationPayload reports whether a requested envelope would render
// without falling back to an internal error.
type ValidationPayload struct {
	Valid   bool
	Missing string
}

func (p ValidationPayload) Map() map[string]any {
	out := map[string]any{"valid": p.Valid}
	if p.Missing != "" {
		out["missing"] = p.Missing
	}
	return out
}

// Builder turns the request into a jsend builder. An unknown status is left
// unset so the builder reports it. Data must be a JSON object or null.
func (r EnvelopeRequest) Builder() (*jsend.Builder, error) {
	b := jsend.New()
	if status, err := jsend.ParseStatus(r.Status); err == nil {
		b.SetStatus(status)
	}
	if r.Message != nil {
		b.SetMessage(*r.Message)
	}
	if r.Code != nil {
		b.SetErrorCode(*r.Code)
	}

	raw := bytes.TrimSpace(r.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return b, nil
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("data must be a JSON object: %w", err)
	}
	return b.SetData(data), nil
}
