package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoutesCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the configured routing table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			routes := state.app.routes.Routes()
			if len(routes) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No routes configured.")
				return err
			}

			for _, route := range routes {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", route.Source, route.Destination); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
