package window

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Process is a query-only handle to another process.
type Process struct {
	pid    uint32
	handle windows.Handle
}

// OpenProcess opens pid with query and memory-read rights only; the process is
// never written to or terminated.
func OpenProcess(pid uint32) (*Process, error) {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
	if err != nil {
		return nil, fmt.Errorf("OpenProcess(%d) failed: %w", pid, err)
	}
	if handle == 0 {
		return nil, fmt.Errorf("OpenProcess(%d) returned a null handle", pid)
	}

	p := &Process{pid: pid, handle: handle}
	runtime.SetFinalizer(p, (*Process).Close)
	return p, nil
}

func (p *Process) ID() uint32 {
	return p.pid
}

// Name returns the base file name of the process's first loaded module,
// truncated to capacity UTF-16 units. Invalid UTF-16 is replaced, not rejected.
func (p *Process) Name(capacity int) (string, error) {
	if p.handle == 0 {
		return "", errClosed
	}
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}

	// The first module of a process is its executable.
	var module windows.Handle
	var needed uint32
	if err := windows.EnumProcessModules(p.handle, &module, uint32(unsafe.Sizeof(module)), &needed); err != nil {
		return "", fmt.Errorf("EnumProcessModules(%d) failed: %w", p.pid, err)
	}

	buf := make([]uint16, capacity)
	if err := windows.GetModuleBaseName(p.handle, module, &buf[0], uint32(len(buf))); err != nil {
		return "", fmt.Errorf("GetModuleBaseName(%d) failed: %w", p.pid, err)
	}
	return windows.UTF16ToString(buf), nil
}

// Close releases the process handle. Calling it again is a no-op.
func (p *Process) Close() error {
	if p == nil || p.handle == 0 {
		return nil
	}
	runtime.SetFinalizer(p, nil)

	handle := p.handle
	p.handle = 0
	if err := windows.CloseHandle(handle); err != nil {
		return fmt.Errorf("CloseHandle(process %d) failed: %w", p.pid, err)
	}
	return nil
}
