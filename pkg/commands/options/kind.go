package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/entry"
)

// KindOptions
type KindOptions struct {
	KindString string
}

func AddKindArgs(cmd *cobra.Command, o *KindOptions) {
	cmd.Flags().StringVarP(&o.KindString, "kind", "k", "symptom",
		"Item kind: symptom or activity.")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		kinds := make([]string, 0, 2)
		for _, k := range entry.Kinds() {
			kinds = append(kinds, string(k))
		}
		return kinds, cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *KindOptions) Kind() (entry.Kind, error) {
	return entry.ParseKind(o.KindString)
}
