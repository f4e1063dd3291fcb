//go:build !windows

package supervisor

import (
	"os/exec"
	"syscall"
	"time"
)

// configureProcess starts the program as the leader of its own process group
// so the whole tree can be signalled at once.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// groupPollInterval is how often a terminated group is checked for exit
// during the kill grace period.
const groupPollInterval = 10 * time.Millisecond

// terminateProcess signals the process group led by cmd. Errors are ignored:
// the group may already be gone.
func terminateProcess(cmd *exec.Cmd, grace time.Duration) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	pgid := cmd.Process.Pid
	if pgid <= 0 {
		return
	}
	if grace > 0 {
		if err := syscall.Kill(-pgid, syscall.SIGTERM); err == nil {
			awaitGroupExit(pgid, grace)
		}
	}
	if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil {
		_ = cmd.Process.Kill()
	}
}

// awaitGroupExit returns once no process of group pgid is left or grace elapsed.
func awaitGroupExit(pgid int, grace time.Duration) {
	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		if err := syscall.Kill(-pgid, 0); err != nil {
			return
		}
		time.Sleep(groupPollInterval)
	}
}
