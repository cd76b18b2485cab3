// Package window discovers top-level windows, resolves their owning process and
// moves input focus to them in spite of the foreground lock.
package window

import "errors"

var (
	// ErrWindowNotFound is returned when no window matches a query or no window has focus.
	ErrWindowNotFound = errors.New("window not found")
	// ErrUnsupported is returned by every OS-facing call on platforms other than Windows.
	ErrUnsupported = errors.New("window management is only supported on Windows")

	errClosed = errors.New("handle already closed")
)

// DefaultBufferSize is the UTF-16 buffer capacity used for titles and process names.
const DefaultBufferSize = 256

// Window is a top-level window resolved to its owning process.
type Window interface {
	FocusTarget
	Title(capacity int) (string, error)
	ProcessName(capacity int) (string, error)
	Close() error
}
