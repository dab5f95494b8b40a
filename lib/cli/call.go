package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ether/etherpad-go-client/lib/api"
	"github.com/spf13/cobra"
)

// parseParams turns key=value arguments into request parameters.
func parseParams(args []string) (api.Params, error) {
	params := api.Params{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		params.Set(key, value)
	}
	return params, nil
}

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <operation> [key=value...]",
		Short: "Call any API operation and print its data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			data, err := client.Do(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			if len(data) == 0 {
				data = json.RawMessage("null")
			}
			var out bytes.Buffer
			if err := json.Indent(&out, data, "", "  "); err != nil {
				return err
			}
			out.WriteByte('\n')
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
