package errors

import "fmt"

// Error kind constants
const (
	TransportError    = "TRANSPORT_ERROR"
	HTTPStatusError   = "HTTP_STATUS_ERROR"
	ParseError        = "PARSE_ERROR"
	ContractViolation = "CONTRACT_VIOLATION"
)

// CheckError is a structured error describing why an endpoint check failed.
type CheckError struct {
	Kind     string `json:"kind"`
	Endpoint string `json:"endpoint,omitempty"`
	Status   int    `json:"status,omitempty"`
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
}

func (e *CheckError) Error() string {
	switch {
	case e.Endpoint != "" && e.Status != 0:
		return fmt.Sprintf("[%s] %s (%d): %s", e.Kind, e.Endpoint, e.Status, e.Message)
	case e.Endpoint != "":
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Fatal reports whether an error of this kind aborts the run when it
// happens on a mandatory endpoint.
func (e *CheckError) Fatal() bool {
	return e.Kind != ContractViolation
}

func NewTransportError(endpoint, msg string) *CheckError {
	return &CheckError{Kind: TransportError, Endpoint: endpoint, Message: msg, Hint: "Check the base URL and network connectivity"}
}

func NewStatusError(endpoint string, status int, msg string) *CheckError {
	return &CheckError{Kind: HTTPStatusError, Endpoint: endpoint, Status: status, Message: msg}
}

func NewParseError(endpoint string, status int) *CheckError {
	return &CheckError{Kind: ParseError, Endpoint: endpoint, Status: status, Message: "Invalid JSON response"}
}

// NewShapeError reports a well-formed JSON body of the wrong shape.
func NewShapeError(endpoint string, status int, msg string) *CheckError {
	return &CheckError{Kind: ParseError, Endpoint: endpoint, Status: status, Message: msg}
}

func NewContractViolation(msg string) *CheckError {
	return &CheckError{Kind: ContractViolation, Message: msg}
}
