package paths

import (
	"os"
	"path/filepath"
)

// DataDirEnv names the environment variable searched first by Find.
const DataDirEnv = "SLP_DATA_DIR"

func getPossiblePathDirsFSImp() []string {
	var dirs []string
	if d := os.Getenv(DataDirEnv); d != "" {
		dirs = append(dirs, d)
	}
	dirs = append(dirs, "datafiles", ".")
	if d := os.Getenv("TEST_SRCDIR"); d != "" {
		dirs = append(dirs, filepath.Join(d, "go_slp", "datafiles"))
	}
	dirs = append(dirs, os.Args[0]+".runfiles/go_slp/datafiles")
	return dirs
}

// getPossiblePathsFSImp returns the candidate locations of fileName, most
// preferred first.
func getPossiblePathsFSImp(fileName string) []string {
	if filepath.IsAbs(fileName) {
		return []string{fileName}
	}
	var paths []string
	for _, d := range getPossiblePathDirsFSImp() {
		paths = append(paths, filepath.Join(d, fileName))
	}
	return paths
}
