package cli

import (
	"fmt"
	"strconv"

	"github.com/ether/etherpad-go-client/lib/api"
	"github.com/spf13/cobra"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage sessions",
	}
	cmd.AddCommand(newSessionCreateCmd(a), newSessionInfoCmd(a))
	return cmd
}

type sessionOutput struct {
	SessionID string `json:"sessionID"`
	api.SessionInfo
}

func newSessionCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <groupID> <authorID> <minutes>",
		Short: "Give an author access to a group's pads",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[2])
			if err != nil || minutes <= 0 {
				return fmt.Errorf("minutes must be a positive number, got %q", args[2])
			}
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			group := instance.GetGroup(args[0])
			session, err := group.CreateSession(cmd.Context(), instance.GetAuthor(args[1]), minutes)
			if err != nil {
				return err
			}
			info, err := session.Info(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), sessionOutput{SessionID: session.ID(), SessionInfo: info})
		},
	}
}

func newSessionInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <sessionID>",
		Short: "Print the group, author and expiry of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			info, err := instance.GetSession(args[0]).Info(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), sessionOutput{SessionID: args[0], SessionInfo: info})
		},
	}
}
