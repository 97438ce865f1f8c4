//go:build !windows
// +build !windows

package hostexec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"
)

// HostRunner runs diagnostic commands directly on the host. Commands
// get their own process group so a timeout kills children too (pagers,
// pipelines spawned by systemctl and friends).
type HostRunner struct {
	Timeout time.Duration // default per-command timeout when the caller passes none
}

// NewHostRunner creates a runner with the default timeout.
func NewHostRunner() *HostRunner {
	return &HostRunner{Timeout: defaultCmdTimeout}
}

// Run executes one command with a timeout.
func (r *HostRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (Result, error) {
	if timeout <= 0 {
		timeout = r.Timeout
		if timeout <= 0 {
			timeout = defaultCmdTimeout
		}
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Start(); err != nil {
		return Result{}, err
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-cctx.Done():
			// Kill the whole process group (negative PID).
			if cmd.Process != nil {
				syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
			}
		case <-done:
		}
	}()

	waitErr := cmd.Wait()
	close(done)

	res := Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if errors.Is(cctx.Err(), context.DeadlineExceeded) || errors.Is(cctx.Err(), context.Canceled) {
		res.TimedOut = true
	}

	if waitErr != nil {
		res.Code = 1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			res.Code = exitErr.ExitCode()
		}
		return res, waitErr
	}

	return res, nil
}
