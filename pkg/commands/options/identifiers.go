package options

import (
	"github.com/spf13/cobra"
)

// IDOptions selects items by id and controls whether ids are printed.
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVar(&o.ShowID, "show-id", false,
		"Show the ID of the entry or item.")
}

func AddIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().StringVar(&o.ID, "id", "",
		"Select the item by id instead of by name.")
}
