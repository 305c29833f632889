package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/postsaver/postsaver/core/materialize"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <folder> <title>",
	Short: "clean up blank lines and trailing spaces of a saved document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := materialize.Normalize(args[0], args[1]); err != nil {
			return err
		}
		log.FromContext(cmd.Context()).Info("Document normalized", "document", materialize.DocumentPath(args[0], args[1]))
		return nil
	},
}
