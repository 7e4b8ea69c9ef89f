// Package apierror provides the error envelope for every 4xx/5xx response.
// Handlers never put storage errors or stack traces in it; those go to the log.
package apierror

// APIError is the canonical error envelope: {"detail": "..."}.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field failures alongside the detail message.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}

// NewCampo reports a single invalid field with a readable reason.
func NewCampo(campo, motivo string) *ValidationError {
	detail := motivo
	if campo != "" {
		detail = campo + ": " + motivo
	}
	v := &ValidationError{Detail: detail}
	if campo != "" {
		v.Fields = map[string]string{campo: motivo}
	}
	return v
}
