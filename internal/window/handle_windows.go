package window

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows         = user32.NewProc("EnumWindows")
	procGetWindowText       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLength = user32.NewProc("GetWindowTextLengthW")
	procAttachThreadInput   = user32.NewProc("AttachThreadInput")
	procSetFocus            = user32.NewProc("SetFocus")
	procSetActiveWindow     = user32.NewProc("SetActiveWindow")
)

// Handle is a validated top-level window handle that owns a handle to its
// process. Handles are never reopened: hwnd and thread id are fixed.
type Handle struct {
	hwnd     win.HWND
	threadID uint32
	process  *Process
}

// Open resolves hwnd to its creating thread and owning process.
func Open(hwnd win.HWND) (*Handle, error) {
	if hwnd == 0 {
		return nil, errors.New("null window handle")
	}

	var pid uint32
	threadID := win.GetWindowThreadProcessId(hwnd, &pid)
	if threadID == 0 || pid == 0 {
		return nil, lastError("GetWindowThreadProcessId")
	}

	process, err := OpenProcess(pid)
	if err != nil {
		return nil, err
	}

	return &Handle{hwnd: hwnd, threadID: threadID, process: process}, nil
}

// OpenForeground opens the window that currently has focus.
func OpenForeground() (*Handle, error) {
	hwnd := win.GetForegroundWindow()
	if hwnd == 0 {
		return nil, fmt.Errorf("no foreground window: %w", ErrWindowNotFound)
	}
	return Open(hwnd)
}

func (h *Handle) HWND() win.HWND {
	return h.hwnd
}

func (h *Handle) ThreadID() uint32 {
	return h.threadID
}

func (h *Handle) Process() *Process {
	return h.process
}

func (h *Handle) ProcessName(capacity int) (string, error) {
	return h.process.Name(capacity)
}

// Title reads the window caption into a buffer of capacity UTF-16 units.
// A window whose caption is empty yields "" with a nil error; only a failed
// read is an error.
func (h *Handle) Title(capacity int) (string, error) {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}

	length, _, _ := procGetWindowTextLength.Call(uintptr(h.hwnd))
	if length == 0 {
		return "", nil
	}

	buf := make([]uint16, capacity)
	n, _, err := procGetWindowText.Call(uintptr(h.hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return "", fmt.Errorf("GetWindowTextW failed: %w", err)
	}
	return string(utf16.Decode(buf[:n])), nil
}

// Show changes the visibility state and reports whether the window was
// previously hidden.
func (h *Handle) Show(cmd int32) bool {
	return !win.ShowWindow(h.hwnd, cmd)
}

// SetFocus gives the window keyboard focus. It only succeeds for windows of
// a thread attached to the caller's input state.
func (h *Handle) SetFocus() error {
	return nullResultError("SetFocus", procSetFocus, uintptr(h.hwnd))
}

// SetForeground reports whether the window was brought to the foreground.
func (h *Handle) SetForeground() bool {
	return win.SetForegroundWindow(h.hwnd)
}

func (h *Handle) SetActive() error {
	return nullResultError("SetActiveWindow", procSetActiveWindow, uintptr(h.hwnd))
}

func (h *Handle) SetPosition(after ZOrder, x, y, cx, cy int32, flags uint32) error {
	var insertAfter win.HWND
	switch after {
	case ZTop:
		insertAfter = win.HWND_TOP
	case ZTopmost:
		insertAfter = win.HWND_TOPMOST
	case ZNoTopmost:
		insertAfter = win.HWND_NOTOPMOST
	default:
		return fmt.Errorf("unknown z-order %v", after)
	}

	if !win.SetWindowPos(h.hwnd, insertAfter, x, y, cx, cy, flags) {
		return lastError("SetWindowPos(" + after.String() + ")")
	}
	return nil
}

// Close releases the owned process handle.
func (h *Handle) Close() error {
	return h.process.Close()
}

func lastError(call string) error {
	if err := windows.GetLastError(); err != nil {
		return fmt.Errorf("%s failed: %w", call, err)
	}
	return fmt.Errorf("%s failed", call)
}

// nullResultError calls proc and treats a zero result as a failure only when
// the call set the thread's last error. A NULL previous window is a normal
// result for SetFocus and SetActiveWindow. The error is the one captured
// right after proc returns; windows.GetLastError would issue a second
// syscall, and the runtime resets the last error before each one.
func nullResultError(name string, proc *windows.LazyProc, args ...uintptr) error {
	r, _, err := proc.Call(args...)
	if r != 0 {
		return nil
	}
	if errno, ok := err.(windows.Errno); ok && errno != windows.ERROR_SUCCESS {
		return fmt.Errorf("%s failed: %w", name, errno)
	}
	return nil
}
