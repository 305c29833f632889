package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/postsaver/postsaver/cmd/progress"
	"github.com/postsaver/postsaver/common/i18n"
	"github.com/postsaver/postsaver/common/i18n/i18nk"
	"github.com/postsaver/postsaver/common/utils/netutil"
	"github.com/postsaver/postsaver/config"
	"github.com/postsaver/postsaver/core/archive"
	"github.com/postsaver/postsaver/core/materialize"
	"github.com/postsaver/postsaver/core/walker"
	"github.com/postsaver/postsaver/pkg/content"
	"github.com/postsaver/postsaver/source"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const logProgressInterval = 2 * time.Second

var archiveCmd = &cobra.Command{
	Use:   "archive [dump...]",
	Short: "save the posts stored in JSON or YAML dumps",
	RunE:  Archive,
}

func init() {
	archiveCmd.Flags().String("list", "", "file with one dump path per line")
}

func Archive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := log.FromContext(ctx)
	cfg := config.C()

	dumps := args
	listFile, err := cmd.Flags().GetString("list")
	if err != nil {
		return err
	}
	if listFile != "" {
		links, err := source.ReadLinks(listFile)
		if err != nil {
			return err
		}
		logger.Info(i18n.T(i18nk.LinksRead, map[string]any{"Count": len(links)}))
		dumps = append(dumps, links...)
	}
	if len(dumps) == 0 {
		return errors.New(i18n.T(i18nk.NoDumpsGiven))
	}

	var posts []content.Post
	for _, dump := range dumps {
		loaded, err := source.LoadFile(dump)
		if err != nil {
			return err
		}
		posts = append(posts, loaded...)
	}

	client, err := netutil.NewHTTPClient(cfg.Download.ConnectTimeout, cfg.Download.Proxy)
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %w", err)
	}

	var (
		tracker materialize.ProgressTracker = materialize.NewLogProgress(logProgressInterval)
		bar     *progress.Bar
	)
	if !cfg.NoProgress && cfg.Workers == 1 && term.IsTerminal(int(os.Stdout.Fd())) {
		bar = progress.New(ctx)
		bar.Start()
		tracker = bar
	}

	archiver := &archive.Archiver{
		Walker:   walker.New(materialize.NewEngine(materialize.WithHTTPClient(client), materialize.WithProgress(tracker))),
		Root:     cfg.Output,
		Render:   cfg.RenderHTML,
		Comments: cfg.Comments,
	}

	logger.Info(i18n.T(i18nk.ArchiveStarted, map[string]any{"Count": len(posts), "Workers": cfg.Workers}))
	start := time.Now()
	reports, err := archiver.ArchiveAll(ctx, posts, cfg.Workers)
	if bar != nil {
		bar.Stop()
	}
	if err != nil {
		logger.Warn(i18n.T(i18nk.Exiting), "error", err)
	}
	logger.Info(i18n.T(i18nk.ArchiveFinished, map[string]any{"Elapsed": time.Since(start).Round(time.Millisecond)}))
	printReports(reports)
	return err
}

func printReports(reports []archive.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{
		i18n.T(i18nk.TablePost),
		i18n.T(i18nk.TableFolder),
		i18n.T(i18nk.TableSuccess),
		i18n.T(i18nk.TableSkipped),
		i18n.T(i18nk.TableFailed),
		i18n.T(i18nk.TableError),
	})
	var total walker.Summary
	for _, r := range reports {
		sum := r.Total()
		total.Add(sum)
		errText := ""
		switch {
		case r.Err != nil:
			errText = r.Err.Error()
		case r.Unavailable:
			errText = i18n.T(i18nk.PostUnavailable, map[string]any{"Title": r.Title})
		}
		t.AppendRow(table.Row{r.Title, r.Folder, sum.Success, sum.Skipped, sum.Failed, errText})
	}
	t.AppendFooter(table.Row{"", "", total.Success, total.Skipped, total.Failed, ""})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
