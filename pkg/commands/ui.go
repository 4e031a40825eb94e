package commands

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/tui"
)

func addUI(topLevel *cobra.Command, dbo *options.DBOptions) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the text-based user interface.",
		Example: `
diary ui
diary ui --db ~/health/diary.db
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, dbo)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command, dbo *options.DBOptions) error {
	cmd.SilenceUsage = true
	e, err := openEnv(dbo, true)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := e.store.Watch(ctx)
	if err != nil {
		// The UI works without live refresh.
		log.WithError(err).Warn("watching database file")
		events = nil
	}

	return tui.Run(ctx, tui.Options{
		Service: e.svc,
		Items:   e.store,
		Events:  events,
	})
}
