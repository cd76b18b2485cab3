package input

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultClipboardAttempts = 10
	DefaultRetryDelay        = 10 * time.Millisecond
	DefaultPasteDelay        = 50 * time.Millisecond
)

var (
	// ErrClipboardBusy is returned when another process held the clipboard for every open attempt.
	ErrClipboardBusy = errors.New("clipboard is held by another process")
	// ErrClipboardNotRestored wraps any failure to put the original clipboard content back.
	ErrClipboardNotRestored = errors.New("clipboard not restored")
)

// Snapshot is the raw content of one clipboard format. The zero Snapshot
// stands for an empty clipboard.
type Snapshot struct {
	Format uint32
	Data   []byte
}

func (s Snapshot) Empty() bool {
	return s.Format == 0
}

// Clipboard is the system clipboard. Every method except Open must be
// called between a successful Open and Close.
type Clipboard interface {
	Open() error
	Close() error
	// Snapshot captures the first available format.
	Snapshot() (Snapshot, error)
	// SetText replaces the content with text as Unicode text.
	SetText(text string) error
	// Restore replaces the content with s, or empties the clipboard for an empty s.
	Restore(s Snapshot) error
}

// Swapper delivers text by pasting it through the clipboard, then puts the
// previous clipboard content back.
type Swapper struct {
	clip   Clipboard
	kb     Keyboard
	logger *slog.Logger
	sleep  func(time.Duration)

	Attempts   int
	RetryDelay time.Duration
	PasteDelay time.Duration
}

func NewSwapper(clip Clipboard, kb Keyboard, logger *slog.Logger) *Swapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Swapper{
		clip:       clip,
		kb:         kb,
		logger:     logger,
		sleep:      time.Sleep,
		Attempts:   DefaultClipboardAttempts,
		RetryDelay: DefaultRetryDelay,
		PasteDelay: DefaultPasteDelay,
	}
}

// PasteRestore snapshots the clipboard, writes payload, sends Ctrl+V and
// restores the snapshot. Once the snapshot is taken the restore runs on
// every exit path; a failed restore is reported as ErrClipboardNotRestored.
// An empty snapshot is restored by emptying the clipboard.
func (s *Swapper) PasteRestore(payload string) (err error) {
	if err := s.open(); err != nil {
		return err
	}

	snap, err := s.clip.Snapshot()
	if err != nil {
		return errors.Join(fmt.Errorf("snapshot clipboard: %w", err), s.close())
	}

	s.logger.Debug("Captured clipboard",
		slog.Uint64("format", uint64(snap.Format)),
		slog.Int("bytes", len(snap.Data)))

	defer func() {
		if restoreErr := s.restore(snap); restoreErr != nil {
			s.logger.Debug("Failed to restore clipboard",
				slog.Uint64("format", uint64(snap.Format)),
				slog.String("error", restoreErr.Error()))
			err = errors.Join(err, fmt.Errorf("%w: %w", ErrClipboardNotRestored, restoreErr))
		}
	}()

	if err := errors.Join(s.clip.SetText(payload), s.close()); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}

	s.sleep(s.PasteDelay)
	if err := chord(s.kb, KeyControl, KeyV); err != nil {
		return fmt.Errorf("send paste: %w", err)
	}
	s.sleep(s.PasteDelay)
	return nil
}

func (s *Swapper) restore(snap Snapshot) error {
	if err := s.open(); err != nil {
		return err
	}
	return errors.Join(s.clip.Restore(snap), s.close())
}

// open retries because any process may hold the clipboard for a moment.
func (s *Swapper) open() error {
	attempts := max(s.Attempts, 1)

	var lastErr error
	for attempt := range attempts {
		lastErr = s.clip.Open()
		if lastErr == nil {
			return nil
		}
		s.logger.Debug("Clipboard busy",
			slog.Int("attempt", attempt+1),
			slog.String("error", lastErr.Error()))
		if attempt < attempts-1 {
			s.sleep(s.RetryDelay)
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrClipboardBusy, attempts, lastErr)
}

func (s *Swapper) close() error {
	if err := s.clip.Close(); err != nil {
		return fmt.Errorf("close clipboard: %w", err)
	}
	return nil
}
