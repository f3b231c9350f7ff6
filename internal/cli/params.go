package cli

import (
	"github.com/spf13/cobra"
)

func newParamsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "params",
		Short:             "Print the resolved configuration.",
		Long:              `params seeds a session from the configuration and prints every value it runs with.`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := o.world(cmd.Flags())
			if err != nil {
				return err
			}
			for _, g := range w.Parameters().Groups {
				if g.Summary != "" {
					cmd.Printf("[%s] %s\n", g.Name, g.Summary)
				} else {
					cmd.Printf("[%s]\n", g.Name)
				}
				for _, p := range g.Params {
					cmd.Printf("  %-14s %s\n", p.Key, p.Value)
				}
			}
			return nil
		},
	}
	bindConfigFlags(cmd.Flags())
	return cmd
}
