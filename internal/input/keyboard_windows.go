package input

import (
	"fmt"
	"time"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	kernel32      = windows.NewLazySystemDLL("kernel32.dll")
	procSendInput = user32.NewProc("SendInput")
)

type keyboardInput struct {
	Type      uint32
	_         [4]byte // padding to align to 8-byte boundary like C INPUT union
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
	_         [8]byte // tail padding so total size is 40 bytes on amd64 (matches Win32 INPUT)
}

const expectedKeyboardInputSize = 40

const (
	inputKeyboard    = 1
	keyeventfKeyup   = 0x0002
	keyeventfUnicode = 0x0004
)

// Small delay between key down and up to mimic a natural key press.
const keyPressDelay = time.Millisecond

type sendInputKeyboard struct{}

// NewKeyboard returns a Keyboard backed by SendInput.
func NewKeyboard() Keyboard {
	return sendInputKeyboard{}
}

func (sendInputKeyboard) Press(key Key) error {
	return sendInput(keyboardInput{Type: inputKeyboard, Vk: uint16(key)})
}

func (sendInputKeyboard) Release(key Key) error {
	return sendInput(keyboardInput{Type: inputKeyboard, Vk: uint16(key), Flags: keyeventfKeyup})
}

func (kb sendInputKeyboard) Tap(key Key) error {
	if err := kb.Press(key); err != nil {
		return err
	}
	time.Sleep(keyPressDelay)
	return kb.Release(key)
}

// Type sends each UTF-16 unit of text as a Unicode key press, so the result
// does not depend on the active keyboard layout.
func (sendInputKeyboard) Type(text string) error {
	for _, unit := range utf16.Encode([]rune(text)) {
		err := sendInput(
			keyboardInput{Type: inputKeyboard, Scan: unit, Flags: keyeventfUnicode},
			keyboardInput{Type: inputKeyboard, Scan: unit, Flags: keyeventfUnicode | keyeventfKeyup},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func sendInput(inputs ...keyboardInput) error {
	// A size mismatch makes SendInput fail with ERROR_INVALID_PARAMETER.
	if size := unsafe.Sizeof(keyboardInput{}); size != expectedKeyboardInputSize {
		return fmt.Errorf("keyboardInput struct size=%d expected=%d", size, expectedKeyboardInputSize)
	}

	n, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(n) != len(inputs) {
		return fmt.Errorf("SendInput failed: %v (sent=%d of %d)", err, n, len(inputs))
	}
	return nil
}
