package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	state := &appState{}

	rootCmd := &cobra.Command{
		Use:           "relay",
		Short:         "Technician request relay: route, track and escalate field requests",
		Long:          "relay validates technician requests posted in source conversations, forwards them to their destination conversation, tracks each forwarded request until somebody acknowledges it, and sends bounded reminders when nobody does.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.load()
		},
	}
	rootCmd.PersistentFlags().StringVar(&state.configFile, "config", "", "Config file (default: $HOME/.techrelay/relay.toml or ./relay.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(state),
		newRecordsCmd(state),
		newRoutesCmd(state),
	)

	return rootCmd
}
