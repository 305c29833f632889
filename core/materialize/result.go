// Package materialize writes content to a post folder: remote binaries are
// downloaded next to the document and text fragments are appended to it.
package materialize

import "fmt"

type Status int

const (
	StatusSuccess Status = iota
	StatusSkipped
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the outcome of one materialization attempt.
type Result struct {
	Status  Status
	Message string
}

func Success() Result {
	return Result{Status: StatusSuccess}
}

func Skipped() Result {
	return Result{Status: StatusSkipped}
}

func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

func (r Result) IsError() bool {
	return r.Status == StatusError
}

func (r Result) String() string {
	if r.Status == StatusError {
		return "error: " + r.Message
	}
	return r.Status.String()
}
