package models

// RequestInfo carries contextual information about an inbound HTTP request
// for structured logging.
type RequestInfo struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	RemoteAddr string `json:"remote_addr"`
	UserAgent  string `json:"user_agent"`
}

// ErrorInfo carries structured information about an error.
type ErrorInfo struct {
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`        // e.g. "store_error", "validation_error"
	StatusCode int    `json:"status_code,omitempty"` // Related HTTP status code, if any
}
