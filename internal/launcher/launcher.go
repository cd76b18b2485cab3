// Package launcher starts the editor's host command when no window matches.
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var ErrEmptyCommand = errors.New("launch command is empty")

// Launcher runs shell commands without waiting for them.
type Launcher struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Launcher{logger: logger}
}

// Launch hands command to the platform shell in a new process group with
// no console window and returns the shell's pid. The child is released;
// its exit status is never collected.
func (l *Launcher) Launch(command string) (int, error) {
	if strings.TrimSpace(command) == "" {
		return 0, ErrEmptyCommand
	}

	cmd := shellCommand(command)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %q: %w", command, err)
	}

	pid := cmd.Process.Pid
	l.logger.Debug("Launched command", slog.String("command", command), slog.Int("pid", pid))

	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("failed to release process %d: %w", pid, err)
	}
	return pid, nil
}
