package api

import "net/http"

// Kind classifies an API failure. Every kind maps to its own process exit
// code so scripts can branch on failures without parsing stderr.
type Kind string

const (
	KindUnauthenticated  Kind = "unauthenticated"
	KindInvalidPayload   Kind = "invalid-payload"
	KindMissingAgentName Kind = "missing-agent-name"
	KindNotFound         Kind = "not-found"
	KindRateLimited      Kind = "rate-limited"
	KindService          Kind = "service-error"
	KindTimeout          Kind = "timeout"
)

// Error is a classified API failure with a one-line human message.
type Error struct {
	Kind       Kind
	StatusCode int    // HTTP status, 0 for failures before any response
	Detail     string
}

func (e *Error) Error() string {
	return e.Detail
}

// NewError builds a client-side error that never touched the network.
func NewError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// ExitCode returns the process exit code for this failure.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindUnauthenticated:
		return 2
	case KindInvalidPayload:
		return 3
	case KindMissingAgentName:
		return 4
	case KindNotFound:
		return 5
	case KindRateLimited:
		return 6
	case KindService:
		return 7
	case KindTimeout:
		return 8
	}
	return 1
}

// classifyStatus maps an HTTP status to an error kind.
func classifyStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthenticated
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 400 && status < 500:
		return KindInvalidPayload
	default:
		return KindService
	}
}
