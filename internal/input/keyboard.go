// Package input synthesizes keystrokes and clipboard pastes into whichever
// window currently has keyboard focus.
package input

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by the OS-backed keyboard and clipboard on platforms other than Windows.
var ErrUnsupported = errors.New("input injection is only supported on Windows")

// Key is a Win32 virtual-key code.
type Key uint16

const (
	KeyReturn  Key = 0x0D
	KeyShift   Key = 0x10
	KeyControl Key = 0x11
	KeyEscape  Key = 0x1B
	KeyV       Key = 0x56
	// KeyQuote is VK_OEM_7, the '" key on a US layout.
	KeyQuote Key = 0xDE
)

func (k Key) String() string {
	switch k {
	case KeyReturn:
		return "return"
	case KeyShift:
		return "shift"
	case KeyControl:
		return "control"
	case KeyEscape:
		return "escape"
	case KeyV:
		return "v"
	case KeyQuote:
		return "quote"
	default:
		return fmt.Sprintf("vk(%#x)", uint16(k))
	}
}

// Keyboard delivers key events to the focused window.
type Keyboard interface {
	Press(key Key) error
	Release(key Key) error
	Tap(key Key) error
	// Type enters text literally, independent of the keyboard layout.
	Type(text string) error
}

// chord holds mod while tapping key. mod is released even if the tap fails
// so no modifier is left stuck down.
func chord(kb Keyboard, mod, key Key) (err error) {
	if err := kb.Press(mod); err != nil {
		return err
	}
	defer func() {
		if releaseErr := kb.Release(mod); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()
	return kb.Tap(key)
}
