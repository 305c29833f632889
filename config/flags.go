package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "config file path")
	flags.StringP("lang", "l", "", "language (e.g., en, ru)")
	flags.IntP("workers", "w", 0, "number of posts saved in parallel")
	flags.StringP("output", "o", "", "folder that receives one subfolder per blog")
	flags.Bool("render-html", false, "write an HTML page next to every document")
	flags.Bool("comments", true, "save comment threads")
	flags.Bool("no-progress", false, "disable the progress bar")

	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write logs to this file")

	flags.Duration("connect-timeout", 0, "connection timeout for downloads")
	flags.String("proxy", "", "proxy URL (http, https, socks5, socks5h)")

	bindFlags(cmd)
}

func bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	viper.BindPFlag("lang", flags.Lookup("lang"))
	viper.BindPFlag("workers", flags.Lookup("workers"))
	viper.BindPFlag("output", flags.Lookup("output"))
	viper.BindPFlag("render_html", flags.Lookup("render-html"))
	viper.BindPFlag("comments", flags.Lookup("comments"))
	viper.BindPFlag("no_progress", flags.Lookup("no-progress"))

	// log
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.file", flags.Lookup("log-file"))

	// download
	viper.BindPFlag("download.connect_timeout", flags.Lookup("connect-timeout"))
	viper.BindPFlag("download.proxy", flags.Lookup("proxy"))
}

func GetConfigFile(cmd *cobra.Command) string {
	configFile, _ := cmd.Flags().GetString("config")
	return configFile
}
