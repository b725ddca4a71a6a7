package responses

// requestIDHeader mirrors the header set by the request id middleware.
const requestIDHeader = "X-Request-Id"

// Envelope wraps every successful /api/v1 payload.
type Envelope struct {
	Data any `json:"data"`
}

// ErrorBody is the public view of a typed error. RequestID lets a shopper
// quote the failing request to support.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}
