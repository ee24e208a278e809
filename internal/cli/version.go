package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// currentVersion falls back to module build info for `go install` builds.
func currentVersion() versionInfo {
	v := versionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if v.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && v.Commit == "unknown":
			v.Commit = s.Value
		case s.Key == "vcs.time" && v.BuildDate == "unknown":
			v.BuildDate = s.Value
		}
	}
	return v
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := currentVersion()
		if JSONOutput() {
			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("termspot %s\n", v.Version)
		if Verbose() {
			NewFields().
				Add("commit", v.Commit).
				Add("built", v.BuildDate).
				Add("go version", v.GoVersion).
				Add("platform", v.Platform).
				Print()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
