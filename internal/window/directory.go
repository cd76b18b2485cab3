package window

import (
	"errors"
	"log/slog"
	"strings"
)

// Titles of input-method-editor helper windows hidden from discovery by default.
var imeHelperTitles = []string{"Default IME", "MSCTFIME UI"}

// Entry is one discovered window.
type Entry struct {
	ProcessName string
	Title       string
	Window      Window
}

// Entries is the result of one discovery pass. Close releases every handle.
type Entries []Entry

func (e Entries) Close() error {
	var errs []error
	for _, entry := range e {
		if entry.Window == nil {
			continue
		}
		if err := entry.Window.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type source interface {
	enumerate() ([]uintptr, error)
	open(raw uintptr) (Window, error)
}

// Directory lists the top-level windows of the current desktop.
type Directory struct {
	src        source
	logger     *slog.Logger
	BufferSize int
}

func NewDirectory(logger *slog.Logger) *Directory {
	return newDirectory(systemSource{}, logger)
}

func newDirectory(src source, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Directory{src: src, logger: logger, BufferSize: DefaultBufferSize}
}

// Discover enumerates top-level windows and resolves each one's process name
// and title. Windows that close or deny access while being resolved are
// skipped, as are untitled windows. IME helper windows are dropped unless
// includeIME is set. The result is unordered and never cached.
func (d *Directory) Discover(includeIME bool) (Entries, error) {
	raws, err := d.src.enumerate()
	if err != nil {
		return nil, err
	}

	size := d.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}

	entries := make(Entries, 0, len(raws))
	for _, raw := range raws {
		w, err := d.src.open(raw)
		if err != nil {
			d.logger.Debug("Skipping window",
				slog.Uint64("hwnd", uint64(raw)),
				slog.String("error", err.Error()))
			continue
		}

		name, err := w.ProcessName(size)
		if err != nil {
			d.logger.Debug("Failed to get process name",
				slog.Uint64("hwnd", uint64(raw)),
				slog.String("error", err.Error()))
			_ = w.Close()
			continue
		}

		title, err := w.Title(size)
		if err != nil || title == "" {
			_ = w.Close()
			continue
		}

		if !includeIME && isIMEHelper(title) {
			_ = w.Close()
			continue
		}

		entries = append(entries, Entry{ProcessName: name, Title: title, Window: w})
	}

	d.logger.Debug("Discovered windows",
		slog.Int("enumerated", len(raws)),
		slog.Int("resolved", len(entries)),
		slog.Bool("include_ime", includeIME))

	return entries, nil
}

func isIMEHelper(title string) bool {
	for _, helper := range imeHelperTitles {
		if strings.Contains(title, helper) {
			return true
		}
	}
	return false
}
