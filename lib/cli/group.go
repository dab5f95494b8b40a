package cli

import (
	"io"

	"github.com/ether/etherpad-go-client/lib/models"
	"github.com/spf13/cobra"
)

func newGroupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups",
	}
	cmd.AddCommand(newGroupCreateCmd(a), newGroupPadsCmd(a))
	return cmd
}

func newGroupCreateCmd(a *app) *cobra.Command {
	var mapper string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group, or look it up by --mapper",
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
			group, err := instance.CreateGroup(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), group.ID()+"\n")
			return err
		},
	}
	cmd.Flags().StringVar(&mapper, "mapper", "", "external identifier the group is mapped to")
	return cmd
}

func newGroupPadsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pads <groupID>",
		Short: "List the pads of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			ids, err := instance.GetGroup(args[0]).PadIDs(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ids)
		},
	}
}
