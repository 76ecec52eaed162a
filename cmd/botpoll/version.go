package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Build information variables (set with -ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var versionJSON bool

// VersionOutput represents the version output structure
type VersionOutput struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display version number, build time and commit ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion(cmd.OutOrStdout(), versionJSON)
	},
}

func printVersion(w io.Writer, asJSON bool) error {
	version := VersionOutput{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}

	if asJSON {
		output, err := json.MarshalIndent(version, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	}

	_, err := fmt.Fprintf(w, "botpoll %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	return err
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output in JSON format")
}
