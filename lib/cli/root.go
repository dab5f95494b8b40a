package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ether/etherpad-go-client/lib/api"
	"github.com/ether/etherpad-go-client/lib/models"
	"github.com/ether/etherpad-go-client/lib/settings"
	"github.com/ether/etherpad-go-client/lib/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	v          *viper.Viper
	configFile string
	logger     *zap.SugaredLogger
}

// NewRootCmd builds the etherpad-client command tree. Flags override the
// environment, which overrides the config file.
func NewRootCmd() *cobra.Command {
	a := &app{v: settings.NewViper(), logger: zap.NewNop().Sugar()}

	root := &cobra.Command{
		Use:           "etherpad-client",
		Short:         "Work with an Etherpad instance through its HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.Load(a.v, a.configFile); err != nil {
				return err
			}
			a.logger = utils.SetupLogger(a.v.GetString(settings.LogLevel))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./etherpad-client.json or ~/.config/etherpad/etherpad-client.json)")
	flags.String("url", "", "Etherpad base URL, \"local\", \"public\" or a port")
	flags.String("apikey", "", "API key")
	flags.String("apikey-file", "", "file holding the API key, e.g. APIKEY.txt")
	flags.String("api-version", "", "API version, \"auto\" negotiates with the server")

	for flag, key := range map[string]string{
		"url":         settings.URL,
		"apikey":      settings.APIKey,
		"apikey-file": settings.APIKeyFile,
		"api-version": settings.APIVersion,
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newPadCmd(a),
		newGroupCmd(a),
		newAuthorCmd(a),
		newSessionCmd(a),
		newCallCmd(a),
		newVersionCmd(a),
		newHealthCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) client(ctx context.Context) (*api.Client, error) {
	return settings.Decode(a.v).NewClient(ctx, a.logger)
}

func (a *app) instance(ctx context.Context) (*models.Instance, error) {
	client, err := a.client(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewInstance(client), nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
