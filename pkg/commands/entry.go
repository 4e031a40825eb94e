package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/forms"
)

func addEntry(topLevel *cobra.Command, dbo *options.DBOptions) {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Show, create and edit the entry for a day.",
	}

	addEntryShow(cmd, dbo)
	addEntryCreate(cmd, dbo)
	addEntryEdit(cmd, dbo)
	addEntryLink(cmd, dbo, true)
	addEntryLink(cmd, dbo, false)

	topLevel.AddCommand(cmd)
}

func addEntryShow(parent *cobra.Command, dbo *options.DBOptions) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the entry for a day.",
		Example: `
diary entry show
diary entry show --on 2014-06-03
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(dbo, false)
			if err != nil {
				return err
			}
			defer e.Close()

			date, err := on.GetOn(time.Now())
			if err != nil {
				return err
			}
			e.pp.ShowID = ido.ShowID
			if oo.JSON {
				r, err := e.svc.FindEntryByDate(context.Background(), date)
				if err != nil || r == nil {
					return e.report(oo, notFoundOr(err, date))
				}
				return oo.Print(r)
			}
			_, err = e.svc.DisplayEntryByDate(context.Background(), date)
			return e.report(oo, err)
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addEntryCreate(parent *cobra.Command, dbo *options.DBOptions) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}
	var notes, at string

	cmd := &cobra.Command{
		Use:   "create",
		Short: base.Wrap80("Create the entry for a day. A day has at most one entry; use edit to change it."),
		Example: `
diary entry create --notes "stiff knee after the walk"
diary entry create --on 2014-06-03 --time 21:15
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(dbo, false)
			if err != nil {
				return err
			}
			defer e.Close()

			now := time.Now()
			date, err := on.GetOn(now)
			if err != nil {
				return err
			}
			tod := entry.TimeOf(now)
			if at != "" {
				if tod, err = entry.ParseTimeOfDay(at); err != nil {
					return err
				}
			}
			ctx := context.Background()
			r, err := e.svc.CreateEntryByDate(ctx, date, tod, notes)
			if err != nil {
				return e.report(oo, err)
			}
			if oo.JSON {
				return oo.Print(r)
			}
			_, err = e.svc.DisplayEntryByDate(ctx, date)
			return e.report(oo, err)
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the entry.")
	cmd.Flags().StringVar(&at, "time", "", "Time of day, HH:MM. Defaults to now.")

	parent.AddCommand(cmd)
}

func addEntryEdit(parent *cobra.Command, dbo *options.DBOptions) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}
	var notes, at string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change the notes or time of an existing entry.",
		Example: `
diary entry edit --on 2014-06-03 --notes "better by the evening"
diary entry edit --time 08:15
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(dbo, false)
			if err != nil {
				return err
			}
			defer e.Close()

			date, err := on.GetOn(time.Now())
			if err != nil {
				return err
			}
			ctx := context.Background()
			form := forms.NewEntryForm()
			w, err := e.svc.EditEntry(ctx, date, form)
			if err != nil {
				return e.report(oo, err)
			}
			if cmd.Flags().Changed("notes") {
				form.Notes = notes
			}
			if cmd.Flags().Changed("time") {
				form.Time = at
			}
			if err := w.AttemptSave(ctx); err != nil {
				_ = w.Cancel(ctx)
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(w.Record())
			}
			_, err = e.svc.DisplayEntryByDate(ctx, date)
			return e.report(oo, err)
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().StringVar(&notes, "notes", "", "Replace the notes.")
	cmd.Flags().StringVar(&at, "time", "", "Replace the time of day, HH:MM.")

	parent.AddCommand(cmd)
}

func addEntryLink(parent *cobra.Command, dbo *options.DBOptions, attach bool) {
	on := &options.OnOptions{}
	ko := &options.KindOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	use, short := "link", "Record a symptom or activity on a day's entry."
	if !attach {
		use, short = "unlink", "Remove a symptom or activity from a day's entry."
	}

	cmd := &cobra.Command{
		Use:   use + " [name or id]",
		Short: short,
		Example: fmt.Sprintf(`
diary entry %[1]s "Leg cramp"
diary entry %[1]s --on 2014-06-03 --kind activity Walk
diary entry %[1]s --id 5f0c1e2a-0d4e-4a7b-9c1d-2b3e4f5a6b7c
`, use),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(dbo, false)
			if err != nil {
				return err
			}
			defer e.Close()

			kind, err := ko.Kind()
			if err != nil {
				return err
			}
			date, err := on.GetOn(time.Now())
			if err != nil {
				return err
			}
			ctx := context.Background()
			r, err := e.svc.FindEntryByDate(ctx, date)
			if err != nil || r == nil {
				return e.report(oo, notFoundOr(err, date))
			}
			items, err := e.store.ListItems(ctx, kind)
			if err != nil {
				return err
			}
			i, rest, err := itemIndex(items, ido, args)
			if err == nil && len(rest) > 0 {
				err = errors.New("pass either a name or --id")
			}
			if err != nil {
				return oo.HandleError(err)
			}
			if attach {
				err = e.svc.AttachItem(ctx, r, items[i])
			} else {
				err = e.svc.DetachItem(ctx, r, items[i])
			}
			if err != nil {
				return oo.HandleError(err)
			}
			_, err = e.svc.DisplayEntryByDate(ctx, date)
			return e.report(oo, err)
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddKindArgs(cmd, ko)
	options.AddIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}
