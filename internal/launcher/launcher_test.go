package launcher

import (
	"errors"
	"testing"
)

func TestLaunch(t *testing.T) {
	pid, err := New(nil).Launch("exit 0")
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if pid <= 0 {
		t.Errorf("Launch() pid = %d, want a positive pid", pid)
	}
}

func TestLaunchEmptyCommand(t *testing.T) {
	for _, command := range []string{"", "   ", "\t"} {
		if _, err := New(nil).Launch(command); !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("Launch(%q) error = %v, want ErrEmptyCommand", command, err)
		}
	}
}
