package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display the Vesper compiler version, Git commit, build date, and Go version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionString())
	},
}

// versionString renders the build metadata injected through -ldflags, falling
// back to the running toolchain for the Go version.
func versionString() string {
	goVer := GoVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}
	return fmt.Sprintf("vesperc %s (commit %s, built %s, %s)",
		Version, GitCommit, BuildDate, goVer)
}
