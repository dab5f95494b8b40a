package cli

import (
	"github.com/ether/etherpad-go-client/lib/settings"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the client configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print every key with its current value and default",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				settings.ConfigShow(cmd.OutOrStdout(), a.v)
			},
		},
		&cobra.Command{
			Use:   "env",
			Short: "Print the environment variable of every key",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				settings.ConfigEnv(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Print a config file holding the defaults",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return settings.ConfigInit(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print the current value of one key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return settings.ConfigGet(cmd.OutOrStdout(), a.v, args[0])
			},
		},
	)
	return cmd
}
