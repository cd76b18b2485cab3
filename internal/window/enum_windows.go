package window

import (
	"fmt"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// Callbacks created by NewCallback are never released, so one is shared.
var enumWindowsCallback = windows.NewCallback(enumWindowsProc)

func enumWindowsProc(hwnd uintptr, lParam uintptr) uintptr {
	if lParam == 0 {
		return 1
	}

	//nolint:govet // EnumWindows hands our own pointer back through lParam
	hwnds := (*[]win.HWND)(unsafe.Pointer(lParam))
	if hwnd != 0 {
		*hwnds = append(*hwnds, win.HWND(hwnd))
	}
	return 1
}

// Enumerate returns every top-level window currently known to the window system.
func Enumerate() ([]win.HWND, error) {
	var hwnds []win.HWND
	ret, _, err := procEnumWindows.Call(enumWindowsCallback, uintptr(unsafe.Pointer(&hwnds)))
	if ret == 0 {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}
	return hwnds, nil
}

type systemSource struct{}

func (systemSource) enumerate() ([]uintptr, error) {
	hwnds, err := Enumerate()
	if err != nil {
		return nil, err
	}
	raws := make([]uintptr, len(hwnds))
	for i, hwnd := range hwnds {
		raws[i] = uintptr(hwnd)
	}
	return raws, nil
}

func (systemSource) open(raw uintptr) (Window, error) {
	return Open(win.HWND(raw))
}
