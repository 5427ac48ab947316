package clientlib

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestProcessSuccess(t *testing.T) {
	var out bytes.Buffer
	p := NewProcess("sh", "-c", "echo telemetry written")
	p.Stdout = &out
	if err := p.Run(context.Background()); err != nil {
		t.Fatal("Should not have errored: ", err)
	}
	if out.String() != "telemetry written\n" {
		t.Error("Incorrect output: ", out.String())
	}
	if p.ProcessID() == 0 {
		t.Error("Should have a process id")
	}
}

func TestProcessExitCode(t *testing.T) {
	err := NewProcess("sh", "-c", "exit 3").Run(context.Background())
	var eerr *ExitError
	if !errors.As(err, &eerr) {
		t.Fatal("Should have returned an ExitError: ", err)
	}
	if eerr.Code != 3 || ExitCode(err) != 3 {
		t.Error("Incorrect exit code: ", eerr.Code)
	}
}

func TestProcessStartFailure(t *testing.T) {
	err := NewProcess("./definitely-not-a-simulator").Run(context.Background())
	if err == nil {
		t.Fatal("Should have errored")
	}
	if ExitCode(err) != -1 {
		t.Error("Incorrect exit code for start failure: ", ExitCode(err))
	}
	if err := (&Process{}).Run(context.Background()); err == nil {
		t.Error("Empty command should error")
	}
}

func TestProcessCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := NewProcess("sleep", "5").Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("Should report the interruption: ", err)
	}
}

func TestSimulatorArgs(t *testing.T) {
	args := SimulatorArgs("./bin/bufferbloater", "c.yaml", "output/x", "-v")
	want := []string{"./bin/bufferbloater", "-config", "c.yaml", "-data_dir", "output/x", "-v"}
	if len(args) != len(want) {
		t.Fatal("Incorrect args: ", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Error("Incorrect arg ", i, ": ", args[i])
		}
	}
	if ExitCode(nil) != 0 {
		t.Error("Nil error should exit 0")
	}
}
