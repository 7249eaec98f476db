package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPruneCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove ended sessions from the store",
		Long: `Remove every session whose end time has passed. Listing the board already does this;
prune is for shared redis boards that nobody has listed in a while.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configFile)
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.prune(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d sessions\n", n)
			return nil
		},
	}
}
