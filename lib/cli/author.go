package cli

import (
	"io"

	"github.com/ether/etherpad-go-client/lib/models"
	"github.com/spf13/cobra"
)

func newAuthorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "author",
		Short: "Manage authors",
	}
	cmd.AddCommand(newAuthorCreateCmd(a))
	return cmd
}

func newAuthorCreateCmd(a *app) *cobra.Command {
	var mapper, name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an author, or look it up by --mapper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			var opts []models.CreateOption
			if mapper != "" {
				opts = append(opts, models.WithMapper(mapper))
			}
			if name != "" {
				opts = append(opts, models.WithName(name))
			}
			author, err := instance.CreateAuthor(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), author.ID()+"\n")
			return err
		},
	}
	cmd.Flags().StringVar(&mapper, "mapper", "", "external identifier the author is mapped to")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}
