package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ether/etherpad-go-client/lib/settings"
	"github.com/spf13/cobra"
)

type versionOutput struct {
	Client        string `json:"client"`
	APIVersion    string `json:"apiVersion"`
	ServerVersion string `json:"serverVersion"`
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client build and the API versions in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			current, err := client.CurrentVersion(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), versionOutput{
				Client:        settings.BuildVersion(),
				APIVersion:    client.Version(),
				ServerVersion: current,
			})
		},
	}
}

var errUnhealthy = errors.New("instance is unhealthy")

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the API key, the pad statistics and the server health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			health, err := instance.Health(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), health); err != nil {
				return err
			}
			if failed := health.Failed(); len(failed) > 0 {
				return fmt.Errorf("%w: %s", errUnhealthy, strings.Join(failed, ", "))
			}
			return nil
		},
	}
}
