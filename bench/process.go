package bench

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gangmuk/bufferbloater/env"
)

// MachineInfo is the part of the host that shapes queueing in a simulation:
// how fast requests are served and how deep the kernel's accept queues are.
type MachineInfo struct {
	CPUModel string  `json:"cpu_model"`
	CPUMHz   float64 `json:"cpu_mhz"`
	CPUs     int     `json:"cpus"`
	MemBytes uint64  `json:"mem_bytes"`

	// Listen backlog limits.
	SynBacklog uint64 `json:"tcp_max_syn_backlog"`
	Somaxconn  uint64 `json:"somaxconn"`
}

// ReadMachineInfo reads what it can from /proc. Fields whose files are
// unreadable stay zero.
func ReadMachineInfo() *MachineInfo {
	return readMachineInfo("/proc")
}

func readMachineInfo(root string) *MachineInfo {
	mi := &MachineInfo{}
	for _, cpu := range readProcRecords(filepath.Join(root, "cpuinfo")) {
		mi.CPUs++
		mi.CPUModel = cpu["model name"]
		if mhz, err := strconv.ParseFloat(cpu["cpu MHz"], 64); err == nil {
			mi.CPUMHz = mhz
		}
	}
	if mem := readProcRecords(filepath.Join(root, "meminfo")); len(mem) > 0 {
		mi.MemBytes = parseKB(mem[0]["MemTotal"])
	}
	mi.SynBacklog = readProcUint(filepath.Join(root, "sys/net/ipv4/tcp_max_syn_backlog"))
	mi.Somaxconn = readProcUint(filepath.Join(root, "sys/net/core/somaxconn"))
	return mi
}

func readProcRecords(path string) []map[string]string {
	f, err := os.Open(path)
	if err != nil {
		env.Print("Could not read ", path, ": ", err)
		return nil
	}
	defer f.Close()
	recs, err := parseProcRecords(f)
	if err != nil {
		env.Print("Could not read ", path, ": ", err)
	}
	return recs
}

// parseProcRecords splits "key : value" text into records separated by
// blank lines, the layout of /proc/cpuinfo. Lines without a colon are
// ignored.
func parseProcRecords(r io.Reader) ([]map[string]string, error) {
	var recs []map[string]string
	var cur map[string]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			cur = nil
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if cur == nil {
			cur = map[string]string{}
			recs = append(recs, cur)
		}
		cur[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return recs, scanner.Err()
}

// parseKB converts a meminfo "<n> kB" value to bytes, 0 if malformed.
func parseKB(v string) uint64 {
	n, ok := strings.CutSuffix(v, " kB")
	if !ok {
		return 0
	}
	kb, err := strconv.ParseUint(strings.TrimSpace(n), 10, 64)
	if err != nil {
		return 0
	}
	return kb * 1024
}

func readProcUint(path string) uint64 {
	b, err := os.ReadFile(path)
	if err != nil {
		env.Print("Could not read ", path, ": ", err)
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		env.Print("Could not parse in ", path, ": '", string(b), "': ", err)
		return 0
	}
	return v
}
