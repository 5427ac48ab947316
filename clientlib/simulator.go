package clientlib

// SimulatorArgs is the command line for one bufferbloater run writing its
// telemetry into dataDir.
func SimulatorArgs(binary, configPath, dataDir string, extra ...string) []string {
	args := []string{binary, "-config", configPath, "-data_dir", dataDir}
	return append(args, extra...)
}
