package main

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"classboard/internal/api"
	"classboard/internal/dashboard"
	"classboard/internal/format"
	"classboard/internal/htmlview"
)

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Load once and print the dashboard as an HTML fragment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog, err := setup()
		if err != nil {
			return err
		}
		defer closeLog.Close()

		return renderHTML(cmd.Context(), cmd.OutOrStdout(), newClient(cfg), location(cfg), time.Now)
	},
}

func init() {
	rootCmd.AddCommand(htmlCmd)
}

type loader interface {
	LoadAll(ctx context.Context) (api.Payload, error)
	Configured() bool
}

// renderHTML always writes a board; the load error, if any, is returned
// after the error board has been written.
func renderHTML(ctx context.Context, w io.Writer, l loader, loc *time.Location, now func() time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.Configured() {
		if err := htmlview.Render(w, dashboard.Unconfigured()); err != nil {
			return err
		}
		return api.ErrNotConfigured
	}
	p, loadErr := l.LoadAll(ctx)
	board := dashboard.Failed(loadErr)
	if loadErr == nil {
		board = dashboard.Build(p, format.ShortWeekday(now().In(loc)), loc)
	}
	if err := htmlview.Render(w, board); err != nil {
		return err
	}
	return loadErr
}
