package input

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	procEnumClipboardFormats = user32.NewProc("EnumClipboardFormats")
	procGlobalSize           = kernel32.NewProc("GlobalSize")
)

type systemClipboard struct{}

// NewClipboard returns the Win32 system clipboard.
func NewClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) Open() error {
	if !win.OpenClipboard(0) {
		return lastError("OpenClipboard")
	}
	return nil
}

func (systemClipboard) Close() error {
	if !win.CloseClipboard() {
		return lastError("CloseClipboard")
	}
	return nil
}

func (systemClipboard) Snapshot() (Snapshot, error) {
	format, _, err := procEnumClipboardFormats.Call(0)
	if format == 0 {
		// Zero with ERROR_SUCCESS means no format is available.
		if errno, ok := err.(syscall.Errno); ok && errno != 0 {
			return Snapshot{}, fmt.Errorf("EnumClipboardFormats failed: %w", errno)
		}
		return Snapshot{}, nil
	}

	handle := win.GetClipboardData(uint32(format))
	if handle == 0 {
		return Snapshot{}, lastError(fmt.Sprintf("GetClipboardData(%d)", format))
	}

	mem := win.HGLOBAL(handle)
	ptr := win.GlobalLock(mem)
	if ptr == nil {
		// GDI-handle formats such as CF_BITMAP are not global memory.
		return Snapshot{}, fmt.Errorf("clipboard format %d cannot be captured: %w", format, lastError("GlobalLock"))
	}
	defer win.GlobalUnlock(mem)

	// The allocation size, which may exceed what the owner wrote.
	size, _, _ := procGlobalSize.Call(uintptr(mem))
	data := make([]byte, size)
	if size > 0 {
		copy(data, unsafe.Slice((*byte)(ptr), size))
	}
	return Snapshot{Format: uint32(format), Data: data}, nil
}

func (c systemClipboard) SetText(text string) error {
	units, err := windows.UTF16FromString(text)
	if err != nil {
		return err
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&units[0])), len(units)*2)
	return c.set(win.CF_UNICODETEXT, data)
}

func (c systemClipboard) Restore(s Snapshot) error {
	if s.Empty() {
		if !win.EmptyClipboard() {
			return lastError("EmptyClipboard")
		}
		return nil
	}
	return c.set(s.Format, s.Data)
}

func (systemClipboard) set(format uint32, data []byte) error {
	if !win.EmptyClipboard() {
		return lastError("EmptyClipboard")
	}

	mem := win.GlobalAlloc(win.GMEM_MOVEABLE, uintptr(max(len(data), 1)))
	if mem == 0 {
		return lastError("GlobalAlloc")
	}

	ptr := win.GlobalLock(mem)
	if ptr == nil {
		win.GlobalFree(mem)
		return lastError("GlobalLock")
	}
	copy(unsafe.Slice((*byte)(ptr), len(data)), data)
	win.GlobalUnlock(mem)

	// The clipboard owns mem once SetClipboardData succeeds.
	if win.SetClipboardData(format, win.HANDLE(mem)) == 0 {
		err := lastError(fmt.Sprintf("SetClipboardData(%d)", format))
		win.GlobalFree(mem)
		return err
	}
	return nil
}

func lastError(call string) error {
	if err := windows.GetLastError(); err != nil {
		return fmt.Errorf("%s failed: %w", call, err)
	}
	return fmt.Errorf("%s failed", call)
}
