package core

import "fmt"

// UpstreamError is the error marker for a failed external call. Callers check
// for it before touching snapshot fields; Message is safe to show the user.
type UpstreamError struct {
	Source  string // "weather", "wikipedia", "llm"
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(source, message string, err error) *UpstreamError {
	return &UpstreamError{Source: source, Message: message, Err: err}
}
