package launcher

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// shellCommand passes command to cmd.exe verbatim; cmd.exe does its own
// quote parsing, so the usual argv escaping must not be applied.
func shellCommand(command string) *exec.Cmd {
	cmd := exec.Command("cmd")
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       "cmd /C " + command,
		HideWindow:    true,
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
	}
	return cmd
}
