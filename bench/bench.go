// Package bench records where and how a simulation run was produced.
package bench

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// ProvenanceFile is the name Provenance is archived under.
const ProvenanceFile = "machine.json"

// Provenance is archived in a run's output directory by the driver.
type Provenance struct {
	Host      string       `json:"host"`
	OS        string       `json:"os"`
	Arch      string       `json:"arch"`
	Machine   *MachineInfo `json:"machine"`
	Simulator []string     `json:"simulator"`
	Started   time.Time    `json:"started"`
	Finished  time.Time    `json:"finished"`
	ExitCode  int          `json:"exit_code"`
}

// NewProvenance captures the current host. Started is set to now.
func NewProvenance(simulator []string) *Provenance {
	host, _ := os.Hostname()
	return &Provenance{
		Host:      host,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Machine:   ReadMachineInfo(),
		Simulator: simulator,
		Started:   time.Now().UTC(),
	}
}

// Finish records the simulator's exit.
func (p *Provenance) Finish(exitCode int) {
	p.Finished = time.Now().UTC()
	p.ExitCode = exitCode
}

func (p *Provenance) Elapsed() time.Duration {
	if p.Finished.IsZero() {
		return 0
	}
	return p.Finished.Sub(p.Started)
}

// WriteFile stores p as JSON in dir and returns the file path.
func (p *Provenance) WriteFile(dir string) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ProvenanceFile)
	return path, os.WriteFile(path, append(data, '\n'), 0644)
}
