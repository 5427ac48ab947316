package bench

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const (
	sampleProcCpuInfo = `processor       : 0
vendor_id       : GenuineIntel
model name      : Intel(R) Xeon(R) CPU @ 2.20GHz
cpu MHz         : 2200.000
cpu cores       : 2

processor       : 1
vendor_id       : GenuineIntel
model name      : Intel(R) Xeon(R) CPU @ 2.20GHz
cpu MHz         : 2200.000
cpu cores       : 2
bogus line without a separator
`

	sampleProcMemInfo = `MemTotal:       15400564 kB
MemFree:        11059192 kB
HugePages_Total:       0
`
)

func TestParseProcRecords(t *testing.T) {
	cpus, err := parseProcRecords(bytes.NewBufferString(sampleProcCpuInfo))
	if err != nil {
		t.Fatal(err)
	}
	if len(cpus) != 2 {
		t.Fatal("Incorrect cpu records: ", cpus)
	}
	if cpus[1]["model name"] != "Intel(R) Xeon(R) CPU @ 2.20GHz" {
		t.Error("Incorrect model: ", cpus[1])
	}
	if cpus[0]["cpu MHz"] != "2200.000" {
		t.Error("Incorrect MHz: ", cpus[0])
	}

	mem, err := parseProcRecords(bytes.NewBufferString(sampleProcMemInfo))
	if err != nil {
		t.Fatal(err)
	}
	if got := parseKB(mem[0]["MemTotal"]); got != 15770177536 {
		t.Error("Incorrect memory bytes: ", got)
	}
	if got := parseKB(mem[0]["HugePages_Total"]); got != 0 {
		t.Error("Unitless value should not parse: ", got)
	}
}

func TestReadMachineInfoFromRoot(t *testing.T) {
	root := t.TempDir()
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(os.MkdirAll(filepath.Join(root, "sys/net/core"), 0755))
	must(os.WriteFile(filepath.Join(root, "cpuinfo"), []byte(sampleProcCpuInfo), 0644))
	must(os.WriteFile(filepath.Join(root, "meminfo"), []byte(sampleProcMemInfo), 0644))
	must(os.WriteFile(filepath.Join(root, "sys/net/core/somaxconn"), []byte("4096\n"), 0644))

	mi := readMachineInfo(root)
	if mi.CPUs != 2 || mi.CPUMHz != 2200.0 {
		t.Error("Incorrect cpus: ", mi)
	}
	if mi.MemBytes != 15770177536 {
		t.Error("Incorrect memory bytes: ", mi)
	}
	if mi.Somaxconn != 4096 {
		t.Error("Incorrect somaxconn: ", mi)
	}
	if mi.SynBacklog != 0 {
		t.Error("Missing files should leave zero values: ", mi)
	}
}

func TestProvenanceWriteFile(t *testing.T) {
	p := NewProvenance([]string{"./bin/bufferbloater", "-config", "c.yaml"})
	if p.Elapsed() != 0 {
		t.Error("Unfinished provenance should have no elapsed time")
	}
	p.Finish(3)

	dir := t.TempDir()
	path, err := p.WriteFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back Provenance
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.ExitCode != 3 || len(back.Simulator) != 3 {
		t.Error("Incorrect provenance: ", string(data))
	}
	if back.Finished.Before(back.Started) {
		t.Error("Finished before started: ", back)
	}
}
