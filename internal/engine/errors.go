package engine

import (
	"errors"
	"fmt"
)

// TransportError indicates the remote call never completed: connectivity
// failure, timeout, or an unreadable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("engine %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError indicates the call completed but the engine reported failure.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("engine %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("engine %s: %s", e.Op, e.Message)
}

// Message extracts the user-facing failure message from an engine error.
// Transport failures collapse to a generic connectivity message since the
// underlying error text is diagnostic, not presentational.
func Message(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return "تعذر الاتصال بخدمة التدقيق"
}
