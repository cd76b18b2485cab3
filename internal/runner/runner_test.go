package runner

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/joncrangle/helix-runner/internal/window"
)

type stubWindow struct {
	name, title string
	closed      *int
}

func (w stubWindow) SetPosition(window.ZOrder, int32, int32, int32, int32, uint32) error {
	return nil
}
func (w stubWindow) SetForeground() bool             { return true }
func (w stubWindow) SetFocus() error                 { return nil }
func (w stubWindow) SetActive() error                { return nil }
func (w stubWindow) ThreadID() uint32                { return 1 }
func (w stubWindow) Title(int) (string, error)       { return w.title, nil }
func (w stubWindow) ProcessName(int) (string, error) { return w.name, nil }
func (w stubWindow) Close() error                    { *w.closed++; return nil }

// fakeDesktop serves a window list that grows once the launcher runs.
type fakeDesktop struct {
	windows  [][2]string
	launched [][2]string
	closed   int
	events   *[]string
	discErr  error
}

func (d *fakeDesktop) Discover(bool) (window.Entries, error) {
	if d.discErr != nil {
		return nil, d.discErr
	}
	var entries window.Entries
	for _, w := range d.windows {
		entries = append(entries, window.Entry{
			ProcessName: w[0],
			Title:       w[1],
			Window:      stubWindow{name: w[0], title: w[1], closed: &d.closed},
		})
	}
	return entries, nil
}

func (d *fakeDesktop) Launch(command string) (int, error) {
	*d.events = append(*d.events, "launch:"+command)
	d.windows = append(d.windows, d.launched...)
	return 4242, nil
}

type fakeFocuser struct {
	events *[]string
}

func (f fakeFocuser) Focus(w window.FocusTarget) error {
	title, _ := w.(window.Window).Title(0)
	*f.events = append(*f.events, "focus:"+title)
	return nil
}

type fakeEditor struct {
	events *[]string
}

func (e fakeEditor) ChangeDirectory(path string, _ bool) error {
	*e.events = append(*e.events, "cd:"+path)
	return nil
}

func (e fakeEditor) OpenFile(path string, line, column int, _ bool) error {
	*e.events = append(*e.events, "open:"+path+":"+strconv.Itoa(line)+":"+strconv.Itoa(column))
	return nil
}

type harness struct {
	runner  *Runner
	desktop *fakeDesktop
	out     *bytes.Buffer
	events  []string
}

func newHarness(windows ...[2]string) *harness {
	h := &harness{out: &bytes.Buffer{}}
	h.desktop = &fakeDesktop{windows: windows, events: &h.events}
	h.runner = New(h.desktop, fakeFocuser{&h.events}, h.desktop, fakeEditor{&h.events}, h.out, nil)
	h.runner.sleep = func(_ context.Context, d time.Duration) error {
		h.events = append(h.events, "sleep:"+d.String())
		return nil
	}
	return h
}

func TestRunListOnly(t *testing.T) {
	h := newHarness(
		[2]string{"WindowsTerminal.exe", "hx"},
		[2]string{"explorer.exe", "Downloads"},
	)

	if err := h.runner.Run(context.Background(), Options{List: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "[WindowsTerminal.exe] hx\n[explorer.exe] Downloads\n"
	if h.out.String() != want {
		t.Errorf("output = %q, want %q", h.out.String(), want)
	}
	if len(h.events) != 0 {
		t.Errorf("list-only run had side effects: %q", h.events)
	}
	if h.desktop.closed != 2 {
		t.Errorf("closed %d handles, want 2", h.desktop.closed)
	}
}

func TestRunIncompleteSearchArgument(t *testing.T) {
	h := newHarness([2]string{"WindowsTerminal.exe", "hx"})

	err := h.runner.Run(context.Background(), Options{File: "a.txt"})
	if !errors.Is(err, ErrIncompleteSearchArgument) {
		t.Fatalf("Run() error = %v, want ErrIncompleteSearchArgument", err)
	}
	if err.Error() != "at least one of window title or process name must be provided" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRunNotFoundWithoutExecute(t *testing.T) {
	h := newHarness([2]string{"explorer.exe", "Downloads"})

	err := h.runner.Run(context.Background(), Options{Query: window.Query{Title: "hx"}})
	if !errors.Is(err, window.ErrWindowNotFound) {
		t.Fatalf("Run() error = %v, want ErrWindowNotFound", err)
	}
}

func TestRunFocusesExistingWindow(t *testing.T) {
	h := newHarness(
		[2]string{"explorer.exe", "hx notes"},
		[2]string{"WindowsTerminal.exe", "hx"},
	)

	opts := Options{
		Query:       window.Query{ProcessName: "Terminal"},
		Execute:     "wt hx",
		Project:     "/home/u/proj",
		File:        "a.txt",
		Line:        4,
		SettleDelay: DefaultSettleDelay,
	}
	if err := h.runner.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// No launch so no cd and no cd delay.
	want := []string{"focus:hx", "sleep:300ms", "open:a.txt:5:1"}
	if !slices.Equal(h.events, want) {
		t.Errorf("events = %q, want %q", h.events, want)
	}
	if got := h.out.String(); got != "Focusing [WindowsTerminal.exe] hx\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunLaunchesWhenNotFound(t *testing.T) {
	h := newHarness([2]string{"explorer.exe", "Downloads"})
	h.desktop.launched = [][2]string{{"WindowsTerminal.exe", "hx"}}

	opts := Options{
		Query:          window.Query{Title: "hx"},
		Execute:        "wt hx",
		ExecuteWait:    time.Second,
		Project:        "/home/u/proj",
		File:           "/home/u/proj/src/main.rs",
		Line:           9,
		Column:         3,
		Relative:       true,
		SettleDelay:    DefaultSettleDelay,
		ChangeDirDelay: DefaultChangeDirDelay,
	}
	if err := h.runner.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{
		"launch:wt hx",
		"sleep:1s",
		"focus:hx",
		"cd:/home/u/proj",
		"sleep:300ms",
		"sleep:100ms",
		"open:src/main.rs:10:4",
	}
	if !slices.Equal(h.events, want) {
		t.Errorf("events = %q, want %q", h.events, want)
	}
}

func TestRunLaunchedWindowStillMissing(t *testing.T) {
	h := newHarness()

	err := h.runner.Run(context.Background(), Options{Query: window.Query{Title: "hx"}, Execute: "wt hx"})
	if !errors.Is(err, window.ErrWindowNotFound) {
		t.Fatalf("Run() error = %v, want ErrWindowNotFound", err)
	}
}

func TestRunTranslatesPathsForWSL(t *testing.T) {
	h := newHarness()
	h.desktop.launched = [][2]string{{"WindowsTerminal.exe", "hx"}}

	opts := Options{
		Query:    window.Query{Title: "hx"},
		Execute:  "wsl hx",
		Project:  `C:\src\proj`,
		File:     `C:\src\proj\lib\mod.rs`,
		Relative: true,
		WSL:      true,
	}
	if err := h.runner.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !slices.Contains(h.events, "cd:/mnt/c/src/proj") {
		t.Errorf("cd not translated: %q", h.events)
	}
	if !slices.Contains(h.events, "open:lib/mod.rs:1:1") {
		t.Errorf("file not stripped and translated: %q", h.events)
	}
}

func TestRunDiscoveryError(t *testing.T) {
	errEnum := errors.New("EnumWindows failed")
	h := newHarness()
	h.desktop.discErr = errEnum

	err := h.runner.Run(context.Background(), Options{Query: window.Query{Title: "hx"}, Execute: "wt"})
	if !errors.Is(err, errEnum) {
		t.Fatalf("Run() error = %v, want %v", err, errEnum)
	}
	if slices.Contains(h.events, "launch:wt") {
		t.Error("launched although discovery failed")
	}
}

func TestRunCancelledDuringWait(t *testing.T) {
	h := newHarness()
	h.desktop.launched = [][2]string{{"WindowsTerminal.exe", "hx"}}
	h.runner.sleep = sleepContext

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.runner.Run(ctx, Options{Query: window.Query{Title: "hx"}, Execute: "wt", ExecuteWait: time.Hour})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		project, file, want string
	}{
		{"/home/u/proj", "/home/u/proj/src/main.rs", "src/main.rs"},
		{"/home/u/proj/", "/home/u/proj/src/main.rs", "src/main.rs"},
		{`C:\src\proj`, `C:\src\proj\lib\mod.rs`, `lib\mod.rs`},
		{"/home/u/proj", "/home/u/project/a.rs", "/home/u/project/a.rs"},
		{"/home/u/proj", "/other/a.rs", "/other/a.rs"},
		{"/home/u/proj", "/home", "/home"},
		{"/home/u/proj", "/home/u/proj", "/home/u/proj"},
		{"", "a.rs", "a.rs"},
	}

	for _, tt := range tests {
		if got := RelativePath(tt.project, tt.file); got != tt.want {
			t.Errorf("RelativePath(%q, %q) = %q, want %q", tt.project, tt.file, got, tt.want)
		}
	}
}
