package cmd

import (
	"fmt"
	"runtime"

	"github.com/postsaver/postsaver/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Print the version number of postsaver",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("postsaver version: %s %s/%s\nBuildTime: %s, Commit: %s\n", config.Version, runtime.GOOS, runtime.GOARCH, config.BuildTime, config.GitCommit)
	},
}
