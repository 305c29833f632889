package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/postsaver/postsaver/common/i18n"
	"github.com/postsaver/postsaver/config"
	"github.com/postsaver/postsaver/logger"
	"github.com/spf13/cobra"
)

var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:           "postsaver",
	Short:         "Save blog posts, their media and comments as local markdown folders",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		ctx := cmd.Context()
		if err := config.Init(ctx, config.GetConfigFile(cmd)); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		l, closer, err := logger.New(config.C().Log.Level, config.C().Log.File)
		if err != nil {
			return err
		}
		logCloser = closer
		i18n.Init(config.C().Lang)
		cmd.SetContext(log.WithContext(ctx, l))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.AddCommand(archiveCmd, normalizeCmd, renderCmd, versionCmd)
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.FromContext(ctx).Error(err)
		os.Exit(1)
	}
}
