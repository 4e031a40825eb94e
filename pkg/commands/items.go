package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/edit"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/forms"
	"tableflip.dev/diary/pkg/listing"
)

func addItems(topLevel *cobra.Command, dbo *options.DBOptions) {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item", "list"},
		Short:   base.Wrap80("Manage the symptom and activity lists. Items are never deleted, only deactivated."),
	}

	addItemsList(cmd, dbo)
	addItemsAdd(cmd, dbo)
	addItemsEdit(cmd, dbo)
	addItemsToggle(cmd, dbo)

	topLevel.AddCommand(cmd)
}

func newItemForm() edit.Form[*entry.Item] { return forms.NewItemForm() }

// openManager opens the list workflow for the --kind flag.
func openManager(ctx context.Context, e *env, ko *options.KindOptions) (*listing.Manager, error) {
	kind, err := ko.Kind()
	if err != nil {
		return nil, err
	}
	m := listing.New(kind, e.store, newItemForm)
	if err := m.Open(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// saveItem runs an item workflow to completion and commits the list, or
// cancels everything on failure.
func saveItem(ctx context.Context, m *listing.Manager, w *edit.Workflow[*entry.Item]) error {
	if err := w.AttemptSave(ctx); err != nil {
		if w.State() == edit.Editing {
			_ = w.Cancel(ctx)
		}
		_ = m.CancelEdits(ctx)
		return err
	}
	return m.SaveEdits(ctx)
}

func addItemsList(parent *cobra.Command, dbo *options.DBOptions) {
	ko := &options.KindOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the items of a kind, inactive ones included.",
		Example: `
diary items list
diary items list --kind activity --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(dbo, false)
			if err != nil {
				return err
			}
			defer e.Close()

			m, err := openManager(context.Background(), e, ko)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(m.Items())
			}
			e.pp.ShowID = ido.ShowID
			e.pp.Title(m.Kind().Plural())
			e.pp.Items(m.Items()...)
			return nil
		},
	}
	options.AddKindArgs(cmd, ko)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addItemsAdd(parent *cobra.Command, dbo *options.DBOptions) {
	ko := &options.KindOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: base.Wrap80("Add an item. Names may contain letters, numbers, spaces and hyphens."),
		Example: `
diary items add "Leg cramp"
diary items add --kind activity Swimming
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(dbo, false)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := context.Background()
			m, err := openManager(ctx, e, ko)
			if err != nil {
				return oo.HandleError(err)
			}
			w, err := m.NewItem()
			if err != nil {
				return oo.HandleError(err)
			}
			w.Form().(*forms.ItemForm).Name = args[0]
			if err := saveItem(ctx, m, w); err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(w.Record())
			}
			e.pp.Items(m.Items()...)
			return nil
		},
	}
	options.AddKindArgs(cmd, ko)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addItemsEdit(parent *cobra.Command, dbo *options.DBOptions) {
	ko := &options.KindOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit [name or id] <new name>",
		Short: "Rename an item.",
		Example: `
diary items edit "Leg cramp" "Calf cramp"
diary items edit --id 5f0c1e2a-0d4e-4a7b-9c1d-2b3e4f5a6b7c "Calf cramp"
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(dbo, false)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := context.Background()
			m, err := openManager(ctx, e, ko)
			if err != nil {
				return oo.HandleError(err)
			}
			i, rest, err := itemIndex(m.Items(), ido, args)
			if err != nil {
				return oo.HandleError(err)
			}
			if len(rest) != 1 {
				return oo.HandleError(errors.New("expected exactly one new name"))
			}
			w, err := m.EditSelected(i)
			if err != nil {
				return oo.HandleError(err)
			}
			w.Form().(*forms.ItemForm).Name = rest[0]
			if err := saveItem(ctx, m, w); err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(w.Record())
			}
			e.pp.Items(m.Items()...)
			return nil
		},
	}
	options.AddKindArgs(cmd, ko)
	options.AddIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addItemsToggle(parent *cobra.Command, dbo *options.DBOptions) {
	ko := &options.KindOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "toggle [name or id]",
		Aliases: []string{"deactivate", "activate"},
		Short:   "Flip an item between active and inactive.",
		Example: `
diary items toggle "Leg cramp"
diary items toggle --kind activity --id 5f0c1e2a-0d4e-4a7b-9c1d-2b3e4f5a6b7c
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(dbo, false)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := context.Background()
			m, err := openManager(ctx, e, ko)
			if err != nil {
				return oo.HandleError(err)
			}
			i, rest, err := itemIndex(m.Items(), ido, args)
			if err == nil && len(rest) > 0 {
				err = errors.New("pass either a name or --id")
			}
			if err != nil {
				return oo.HandleError(err)
			}
			it, err := m.ToggleActive(ctx, i)
			if err == nil {
				err = m.SaveEdits(ctx)
			}
			if err != nil {
				_ = m.CancelEdits(ctx)
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(it)
			}
			e.pp.Items(m.Items()...)
			return nil
		},
	}
	options.AddKindArgs(cmd, ko)
	options.AddIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}
