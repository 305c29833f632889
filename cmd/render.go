package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/postsaver/postsaver/core/render"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <folder> <title>",
	Short: "write an HTML page for a saved document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := render.RenderFile(args[0], args[1]); err != nil {
			return err
		}
		log.FromContext(cmd.Context()).Info("Document rendered", "page", render.HTMLPath(args[0], args[1]))
		return nil
	},
}
