package window

import (
	"errors"
	"fmt"
	"log/slog"
)

// ZOrder selects the window a SetPosition call inserts after.
type ZOrder int

const (
	ZTop ZOrder = iota
	ZTopmost
	ZNoTopmost
)

func (z ZOrder) String() string {
	switch z {
	case ZTop:
		return "top"
	case ZTopmost:
		return "topmost"
	case ZNoTopmost:
		return "notopmost"
	default:
		return fmt.Sprintf("zorder(%d)", int(z))
	}
}

// SetWindowPos flags, same values as the Win32 SWP_* constants.
const (
	SwpNoSize     uint32 = 0x0001
	SwpNoMove     uint32 = 0x0002
	SwpShowWindow uint32 = 0x0040
)

// DefaultFocusAttempts is how many times Focus runs the pop sequence while linked.
const DefaultFocusAttempts = 3

// Focusable exposes the focus primitives PopFocus combines.
type Focusable interface {
	SetPosition(after ZOrder, x, y, cx, cy int32, flags uint32) error
	SetForeground() bool
	SetFocus() error
	SetActive() error
}

// FocusTarget is a Focusable window together with the thread that created it.
type FocusTarget interface {
	Focusable
	ThreadID() uint32
}

// PopFocus forces w to the top of the z-order and gives it keyboard focus.
//
// The topmost/notopmost pulse gets past the window system's refusal to raise
// background windows; the three focus calls each work in different states so
// all of them are issued. SetForeground failing is tolerated, SetFocus and
// SetActive failing aborts. Nothing already applied is rolled back.
// Minimized windows are not restored.
func PopFocus(w Focusable) error {
	if err := w.SetPosition(ZTopmost, 0, 0, 0, 0, SwpNoSize|SwpNoMove); err != nil {
		return err
	}
	if err := w.SetPosition(ZNoTopmost, 0, 0, 0, 0, SwpShowWindow|SwpNoSize|SwpNoMove); err != nil {
		return err
	}
	_ = w.SetForeground()
	if err := w.SetFocus(); err != nil {
		return err
	}
	return w.SetActive()
}

// ThreadLinker links and unlinks the input state of two threads.
type ThreadLinker interface {
	AttachThreadInput(target, caller uint32, attach bool) error
	CurrentThreadID() uint32
}

// Focuser steals focus for a window by borrowing its thread's input state.
type Focuser struct {
	linker   ThreadLinker
	logger   *slog.Logger
	Attempts int
}

// NewFocuser returns a Focuser bound to the calling OS thread. Callers must
// keep the goroutine locked to its thread between NewFocuser and Focus.
func NewFocuser(logger *slog.Logger, attempts int) *Focuser {
	return newFocuser(systemLinker{}, logger, attempts)
}

func newFocuser(linker ThreadLinker, logger *slog.Logger, attempts int) *Focuser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if attempts < 1 {
		attempts = DefaultFocusAttempts
	}
	return &Focuser{linker: linker, logger: logger, Attempts: attempts}
}

// Focus links the caller's input state to w's thread, runs PopFocus and
// always unlinks again, including when PopFocus fails. A failed link aborts
// without retry; a failed unlink is joined to the returned error.
func (f *Focuser) Focus(w FocusTarget) (err error) {
	caller := f.linker.CurrentThreadID()
	target := w.ThreadID()

	// Attaching a thread to itself is rejected by the window system.
	if target != caller {
		if err := f.linker.AttachThreadInput(target, caller, true); err != nil {
			return fmt.Errorf("attach thread input %d->%d: %w", caller, target, err)
		}
		f.logger.Debug("Attached thread input",
			slog.Uint64("target_thread", uint64(target)),
			slog.Uint64("current_thread", uint64(caller)))

		defer func() {
			if detachErr := f.linker.AttachThreadInput(target, caller, false); detachErr != nil {
				f.logger.Debug("Failed to detach thread input",
					slog.Uint64("target_thread", uint64(target)),
					slog.Uint64("current_thread", uint64(caller)),
					slog.String("error", detachErr.Error()))
				err = errors.Join(err, fmt.Errorf("detach thread input %d->%d: %w", caller, target, detachErr))
			}
		}()
	}

	for attempt := range max(f.Attempts, 1) {
		if err := PopFocus(w); err != nil {
			f.logger.Debug("Pop focus failed",
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}
