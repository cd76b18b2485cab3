package window

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type systemLinker struct{}

func (systemLinker) AttachThreadInput(target, caller uint32, attach bool) error {
	var flag uintptr
	if attach {
		flag = 1
	}
	ret, _, err := procAttachThreadInput.Call(uintptr(target), uintptr(caller), flag)
	if ret == 0 {
		return fmt.Errorf("AttachThreadInput failed: %w", err)
	}
	return nil
}

func (systemLinker) CurrentThreadID() uint32 {
	return windows.GetCurrentThreadId()
}
