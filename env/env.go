package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	ReportFormat     = GetEnv("BLOAT_FORMAT", "pdf")
	ReportInterval   = GetEnvFloat("BLOAT_INTERVAL", 1.0)
	ReportResolution = GetEnvFloat("BLOAT_RESOLUTION", 0.1)
	ReportStrict     = GetEnvBool("BLOAT_STRICT", false)
	StorageBucket    = GetEnv("BLOAT_BUCKET", "")
	SimulatorBinary  = GetEnv("BLOAT_SIMULATOR", "./bin/bufferbloater")
	OutputRoot       = GetEnv("BLOAT_OUTPUT_ROOT", "output")
	Verbose          = GetEnv("BLOAT_VERBOSE", "")
)

func GetEnv(name, defval string) string {
	if r := os.Getenv(name); r != "" {
		return r
	}
	return defval
}

// GetEnvFloat falls back to defval when the variable is unset or is not a
// number.
func GetEnvFloat(name string, defval float64) float64 {
	r := os.Getenv(name)
	if r == "" {
		return defval
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
	if err != nil {
		return defval
	}
	return f
}

func GetEnvBool(name string, defval bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defval
}

func Fatal(x ...interface{}) {
	panic(fmt.Sprintln(x...))
}

func Print(x ...interface{}) {
	if Verbose == "true" {
		fmt.Println(x...)
	}
}
