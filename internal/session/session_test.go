package session

import (
	"runtime"
	"testing"
	"time"
)

func echoCommand() (cmd string, args []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/c", "echo hello"}
	}
	return "sh", []string{"-c", "echo hello"}
}

func TestExecuteThenIsBusyTransitionsToIdleOnExit(t *testing.T) {
	s := New()
	cmd, args := echoCommand()
	if err := s.Execute(cmd, args, "."); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if s.State() != Running {
		t.Fatalf("state after Execute = %v, want Running", s.State())
	}

	deadline := time.Now().Add(5 * time.Second)
	for s.IsBusy() {
		if time.Now().After(deadline) {
			t.Fatalf("child never reported exit within deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if s.State() != Idle {
		t.Fatalf("state after exit = %v, want Idle", s.State())
	}
}

func TestExecuteFailsWhileAlreadyRunning(t *testing.T) {
	s := New()
	cmd, args := sleepCommand()
	if err := s.Execute(cmd, args, "."); err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	defer s.Close()

	if err := s.Execute(cmd, args, "."); err == nil {
		t.Fatalf("second Execute() on a Running session did not fail")
	}
}

func sleepCommand() (cmd string, args []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/c", "ping -n 3 127.0.0.1 >nul"}
	}
	return "sh", []string{"-c", "sleep 2"}
}

func TestPollOutputIsNonBlockingAndBounded(t *testing.T) {
	s := New()
	cmd, args := echoCommand()
	if err := s.Execute(cmd, args, "."); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	defer s.Close()

	start := time.Now()
	_ = s.PollOutput()
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("PollOutput blocked for %v, want near-instant", elapsed)
	}
}

func TestPollOutputEventuallyReturnsChildBytes(t *testing.T) {
	s := New()
	cmd, args := echoCommand()
	if err := s.Execute(cmd, args, "."); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	defer s.Close()

	deadline := time.Now().Add(5 * time.Second)
	var collected []byte
	for time.Now().Before(deadline) {
		collected = append(collected, s.PollOutput()...)
		if len(collected) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(collected) == 0 {
		t.Fatalf("never observed any output from echo child")
	}
}
