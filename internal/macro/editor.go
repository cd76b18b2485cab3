// Package macro types Helix command-mode sequences into the focused editor.
package macro

import (
	"fmt"
	"log/slog"

	"github.com/joncrangle/helix-runner/internal/input"
)

// Injector is the subset of *input.Injector the macros drive.
type Injector interface {
	Tap(keys ...input.Key) error
	Type(text string) error
	TypeQuoted(text string) error
	Paste(text string) error
}

// Editor drives a Helix instance that already has keyboard focus.
type Editor struct {
	in     Injector
	logger *slog.Logger
}

func NewEditor(in Injector, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Editor{in: in, logger: logger}
}

// ChangeDirectory runs `:cd "<path>"`.
func (e *Editor) ChangeDirectory(path string, useClipboard bool) error {
	e.logger.Debug("Changing directory", slog.String("path", path), slog.Bool("clipboard", useClipboard))

	if err := e.command(); err != nil {
		return err
	}

	if useClipboard {
		if err := e.in.Paste(fmt.Sprintf(`cd "%s"`, path)); err != nil {
			return fmt.Errorf("paste cd command: %w", err)
		}
	} else {
		if err := e.in.Type("cd "); err != nil {
			return err
		}
		if err := e.in.TypeQuoted(path); err != nil {
			return err
		}
	}

	return e.in.Tap(input.KeyReturn)
}

// OpenFile runs `:o <path>` and moves the cursor to line and column. Both
// are 1-based; no horizontal motion is sent for the first column. No Return
// follows the `gg` and `l` motions.
func (e *Editor) OpenFile(path string, line, column int, useClipboard bool) error {
	e.logger.Debug("Opening file",
		slog.String("path", path),
		slog.Int("line", line),
		slog.Int("column", column),
		slog.Bool("clipboard", useClipboard))

	if err := e.command(); err != nil {
		return err
	}

	if useClipboard {
		if err := e.in.Paste("o " + path); err != nil {
			return fmt.Errorf("paste open command: %w", err)
		}
	} else {
		if err := e.in.Type("o "); err != nil {
			return err
		}
		if err := e.in.TypeQuoted(path); err != nil {
			return err
		}
	}

	if err := e.in.Tap(input.KeyReturn); err != nil {
		return err
	}

	if err := e.in.Type(fmt.Sprintf("%dgg", line)); err != nil {
		return err
	}
	if column > 1 {
		return e.in.Type(fmt.Sprintf("%dl", column))
	}
	return nil
}

// command leaves any pending mode and opens the command line.
func (e *Editor) command() error {
	if err := e.in.Tap(input.KeyEscape); err != nil {
		return err
	}
	return e.in.Type(":")
}
