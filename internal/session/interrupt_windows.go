//go:build windows

package session

import "golang.org/x/sys/windows"

// Interrupt sends a console Ctrl+C control event to the child's process
// group. The child's actual termination becomes observable through the
// next tick's IsBusy() check, not synchronously here.
func (s *Session) Interrupt() error {
	if s.state != Running || s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	return windows.GenerateConsoleCtrlEvent(windows.CTRL_C_EVENT, uint32(s.cmd.Process.Pid))
}
