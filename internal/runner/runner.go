// Package runner ties window discovery, focus and the editor macros into the
// single pass helix-runner performs per invocation.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/joncrangle/helix-runner/internal/window"
	"github.com/joncrangle/helix-runner/internal/wslpath"
)

// ErrIncompleteSearchArgument is returned when neither a title nor a process name was supplied.
var ErrIncompleteSearchArgument = errors.New("at least one of window title or process name must be provided")

const (
	DefaultSettleDelay    = 300 * time.Millisecond
	DefaultChangeDirDelay = 100 * time.Millisecond
)

// Options describes one invocation. Line and Column are 0-based.
type Options struct {
	Query      window.Query
	IncludeIME bool
	List       bool

	Execute     string
	ExecuteWait time.Duration

	Project  string
	File     string
	Line     int
	Column   int
	Relative bool

	WSL       bool
	Clipboard bool

	SettleDelay    time.Duration
	ChangeDirDelay time.Duration
}

type Discoverer interface {
	Discover(includeIME bool) (window.Entries, error)
}

type Focuser interface {
	Focus(w window.FocusTarget) error
}

type Launcher interface {
	Launch(command string) (int, error)
}

type Editor interface {
	ChangeDirectory(path string, useClipboard bool) error
	OpenFile(path string, line, column int, useClipboard bool) error
}

type Runner struct {
	dir      Discoverer
	focuser  Focuser
	launcher Launcher
	editor   Editor
	out      io.Writer
	logger   *slog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

func New(dir Discoverer, focuser Focuser, launcher Launcher, editor Editor, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		dir:      dir,
		focuser:  focuser,
		launcher: launcher,
		editor:   editor,
		out:      out,
		logger:   logger,
		sleep:    sleepContext,
	}
}

// Run lists windows, focuses the matching one (launching it first if
// needed) and opens the requested file in it.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	// Thread input attachment is keyed by OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if opts.List {
		if err := r.list(opts.IncludeIME); err != nil {
			return err
		}
		if opts.Query.Empty() {
			return nil
		}
	}

	if opts.Query.Empty() {
		return ErrIncompleteSearchArgument
	}

	changedDir := false
	err := r.focus(opts)
	switch {
	case errors.Is(err, window.ErrWindowNotFound) && opts.Execute != "":
		r.logger.Info("No matching window, launching", slog.String("command", opts.Execute))
		if _, err := r.launcher.Launch(opts.Execute); err != nil {
			return err
		}
		if err := r.sleep(ctx, opts.ExecuteWait); err != nil {
			return err
		}
		if err := r.focus(opts); err != nil {
			return err
		}
		if opts.Project != "" {
			if err := r.editor.ChangeDirectory(r.hostPath(opts, opts.Project), opts.Clipboard); err != nil {
				return fmt.Errorf("change directory: %w", err)
			}
			changedDir = true
		}
	case err != nil:
		return err
	}

	if err := r.sleep(ctx, opts.SettleDelay); err != nil {
		return err
	}

	if opts.File == "" {
		return nil
	}

	if changedDir {
		if err := r.sleep(ctx, opts.ChangeDirDelay); err != nil {
			return err
		}
	}

	file := opts.File
	if opts.Relative && opts.Project != "" {
		file = RelativePath(opts.Project, file)
	}
	file = r.hostPath(opts, file)

	if err := r.editor.OpenFile(file, opts.Line+1, opts.Column+1, opts.Clipboard); err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	return nil
}

func (r *Runner) list(includeIME bool) error {
	entries, err := r.dir.Discover(includeIME)
	if err != nil {
		return err
	}
	defer entries.Close()

	for _, e := range entries {
		fmt.Fprintf(r.out, "[%s] %s\n", e.ProcessName, e.Title)
	}
	return nil
}

func (r *Runner) focus(opts Options) error {
	entries, err := r.dir.Discover(opts.IncludeIME)
	if err != nil {
		return err
	}
	defer entries.Close()

	entry, err := window.Select(entries, opts.Query)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Focusing [%s] %s\n", entry.ProcessName, entry.Title)
	return r.focuser.Focus(entry.Window)
}

func (r *Runner) hostPath(opts Options, path string) string {
	if opts.WSL {
		return wslpath.ToWSL(path)
	}
	return path
}

// RelativePath strips project and the separator after it from file. A file
// outside project is returned unchanged.
func RelativePath(project, file string) string {
	if project == "" || !strings.HasPrefix(file, project) {
		return file
	}
	rest := file[len(project):]
	if rest == "" {
		return file
	}
	if !strings.HasSuffix(project, "/") && !strings.HasSuffix(project, `\`) {
		// "/home/u/proj" must not match "/home/u/project/a".
		if rest[0] != '/' && rest[0] != '\\' {
			return file
		}
		rest = rest[1:]
	}
	return rest
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
