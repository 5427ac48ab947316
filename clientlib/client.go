package clientlib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ExitError reports a simulator that ran but did not succeed.
type ExitError struct {
	Args []string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("simulator %v failed with exit code %d: %v", e.Args, e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Process starts and waits for an external simulator process.
type Process struct {
	Args   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer

	cmd *exec.Cmd
}

// NewProcess runs args[0] with the remaining arguments, forwarding its
// output to ours.
func NewProcess(args ...string) *Process {
	return &Process{Args: args, Stdout: os.Stdout, Stderr: os.Stderr}
}

// ProcessID is valid once Run has started the process.
func (p *Process) ProcessID() int {
	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Run starts the process and blocks until it exits or ctx is done. A
// non-zero exit is returned as *ExitError.
func (p *Process) Run(ctx context.Context) (err error) {
	if len(p.Args) == 0 {
		return errors.New("no simulator command")
	}
	p.cmd = exec.CommandContext(ctx, p.Args[0], p.Args[1:]...)
	p.cmd.Dir = p.Dir
	p.cmd.Stdout = p.Stdout
	p.cmd.Stderr = p.Stderr

	var perr *exec.ExitError
	if err = p.cmd.Start(); err != nil {
		err = fmt.Errorf("could not start simulator: %w", err)
	} else if err = p.cmd.Wait(); err == nil {
		// Success
	} else if !errors.As(err, &perr) {
		err = fmt.Errorf("could not await simulator: %w", err)
	} else if ctx.Err() != nil {
		err = fmt.Errorf("simulator interrupted: %w", ctx.Err())
	} else {
		err = &ExitError{Args: p.Args, Code: perr.ExitCode(), Err: err}
	}
	return
}

// ExitCode maps the result of Run to a process exit status.
func ExitCode(err error) int {
	var eerr *ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &eerr):
		return eerr.Code
	}
	return -1
}
