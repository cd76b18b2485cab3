package window

import (
	"fmt"
	"strings"
)

type recorder struct {
	calls []string
}

func (r *recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) String() string {
	return strings.Join(r.calls, ", ")
}

type fakeWindow struct {
	rec *recorder

	name     string
	title    string
	nameErr  error
	titleErr error
	thread   uint32

	positionErr map[ZOrder]error
	foreground  bool
	focusErr    error
	activeErr   error

	closed int
}

func (w *fakeWindow) SetPosition(after ZOrder, _, _, _, _ int32, flags uint32) error {
	w.rec.record("position:%s:%#x", after, flags)
	return w.positionErr[after]
}

func (w *fakeWindow) SetForeground() bool {
	w.rec.record("foreground")
	return w.foreground
}

func (w *fakeWindow) SetFocus() error {
	w.rec.record("focus")
	return w.focusErr
}

func (w *fakeWindow) SetActive() error {
	w.rec.record("active")
	return w.activeErr
}

func (w *fakeWindow) ThreadID() uint32 {
	return w.thread
}

func (w *fakeWindow) Title(int) (string, error) {
	return w.title, w.titleErr
}

func (w *fakeWindow) ProcessName(int) (string, error) {
	return w.name, w.nameErr
}

func (w *fakeWindow) Close() error {
	w.closed++
	return nil
}

type fakeLinker struct {
	rec       *recorder
	current   uint32
	attachErr error
	detachErr error
}

func (l *fakeLinker) AttachThreadInput(target, caller uint32, attach bool) error {
	if attach {
		l.rec.record("attach:%d:%d", target, caller)
		return l.attachErr
	}
	l.rec.record("detach:%d:%d", target, caller)
	return l.detachErr
}

func (l *fakeLinker) CurrentThreadID() uint32 {
	return l.current
}

type fakeSource struct {
	raws    []uintptr
	enumErr error
	windows map[uintptr]*fakeWindow
}

func (s *fakeSource) enumerate() ([]uintptr, error) {
	return s.raws, s.enumErr
}

func (s *fakeSource) open(raw uintptr) (Window, error) {
	w, ok := s.windows[raw]
	if !ok {
		return nil, fmt.Errorf("window %#x closed", raw)
	}
	return w, nil
}
