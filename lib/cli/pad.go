package cli

import (
	"io"
	"time"

	"github.com/ether/etherpad-go-client/lib/models"
	"github.com/ether/etherpad-go-client/lib/utils"
	"github.com/spf13/cobra"
)

func newPadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pad",
		Short: "Read and edit pads",
	}
	cmd.AddCommand(
		newPadGetCmd(a),
		newPadHTMLCmd(a),
		newPadSetCmd(a),
		newPadAppendCmd(a),
		newPadCreateCmd(a),
		newPadDeleteCmd(a),
		newPadExistsCmd(a),
		newPadRevisionsCmd(a),
		newPadReadOnlyCmd(a),
		newPadInfoCmd(a),
	)
	return cmd
}

// pinnedPad wraps padID, pinned to rev when the flag was given.
func pinnedPad(instance *models.Instance, padID, rev string) (*models.Pad, error) {
	if rev == "" {
		return instance.GetPad(padID), nil
	}
	revNum, err := utils.CheckValidRev(rev)
	if err != nil {
		return nil, err
	}
	return instance.GetPad(padID, models.AtRevision(*revNum)), nil
}

// textArg reads the text from stdin when it is "-".
func textArg(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func newPadGetCmd(a *app) *cobra.Command {
	var rev string
	cmd := &cobra.Command{
		Use:   "get <padID>",
		Short: "Print the text of a pad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			pad, err := pinnedPad(instance, args[0], rev)
			if err != nil {
				return err
			}
			text, err := pad.Text(cmd.Context())
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&rev, "rev", "", "revision to read instead of the head")
	return cmd
}

func newPadHTMLCmd(a *app) *cobra.Command {
	var rev string
	cmd := &cobra.Command{
		Use:   "html <padID>",
		Short: "Print the HTML of a pad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			pad, err := pinnedPad(instance, args[0], rev)
			if err != nil {
				return err
			}
			html, err := pad.HTML(cmd.Context())
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), html+"\n")
			return err
		},
	}
	cmd.Flags().StringVar(&rev, "rev", "", "revision to read instead of the head")
	return cmd
}

func newPadSetCmd(a *app) *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:   "set <padID> <text|->",
		Short: "Replace the text of a pad",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			text, err := textArg(cmd, args[1])
			if err != nil {
				return err
			}
			pad := instance.GetPad(args[0])
			if html {
				return pad.SetHTML(cmd.Context(), text)
			}
			return pad.SetText(cmd.Context(), text)
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "treat the input as HTML")
	return cmd
}

func newPadAppendCmd(a *app) *cobra.Command {
	var authorID string
	cmd := &cobra.Command{
		Use:   "append <padID> <text|->",
		Short: "Append text to a pad",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			text, err := textArg(cmd, args[1])
			if err != nil {
				return err
			}
			var author *models.Author
			if authorID != "" {
				author = instance.GetAuthor(authorID)
			}
			return instance.GetPad(args[0]).AppendText(cmd.Context(), text, author)
		},
	}
	cmd.Flags().StringVar(&authorID, "author", "", "author the text is attributed to")
	return cmd
}

func newPadCreateCmd(a *app) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "create <padID>",
		Short: "Create a pad, \"g.xxx$name\" creates a group pad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			var opts []models.PadOption
			if cmd.Flags().Changed("text") {
				opts = append(opts, models.WithText(text))
			}
			pad, err := instance.CreatePad(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), pad.ID()+"\n")
			return err
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "initial text instead of the server default")
	return cmd
}

func newPadDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <padID>",
		Short: "Delete a pad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			return instance.GetPad(args[0]).Delete(cmd.Context())
		},
	}
}

func newPadExistsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <padID>",
		Short: "Print whether a pad exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			exists, err := instance.GetPad(args[0]).Exists(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), exists)
		},
	}
}

func newPadRevisionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "revisions <padID>",
		Short: "Print the revision numbers of a pad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			revs, err := instance.GetPad(args[0]).RevisionNumbers(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), revs)
		},
	}
}

func newPadReadOnlyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "readonly <padID>",
		Short: "Print the read-only ID of a pad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := a.instance(cmd.Context())
			if err != nil {
				return err
			}
			roID, err := instance.GetPad(args[0]).ReadOnlyID(cmd.Context())
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), roID+"\n")
			return err
		},
	}
}

type padInfo struct {
	PadID             string   `json:"padID"`
	GroupID           string   `json:"groupID,omitempty"`
	ReadOnlyID        string   `json:"readOnlyID"`
	HeadRevision      int      `json:"headRevision"`
	Users             int      `json:"users"`
	Authors           []string `json:"authors"`
	LastEdited        string   `json:"lastEdited"`
	Public            *bool    `json:"public,omitempty"`
	PasswordProtected *bool    `json:"passwordProtected,omitempty"`
}

func newPadInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <padID>",
		Short: "Print a summary of a pad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			instance, err := a.instance(ctx)
			if err != nil {
				return err
			}
			pad := instance.GetPad(args[0])
			info := padInfo{PadID: pad.ID(), GroupID: pad.GroupID()}

			revs, err := pad.RevisionNumbers(ctx)
			if err != nil {
				return err
			}
			info.HeadRevision = revs[len(revs)-1]
			if info.ReadOnlyID, err = pad.ReadOnlyID(ctx); err != nil {
				return err
			}
			if info.Users, err = pad.UserCount(ctx); err != nil {
				return err
			}
			if info.Authors, err = pad.AuthorIDs(ctx); err != nil {
				return err
			}
			edited, err := pad.LastEdited(ctx)
			if err != nil {
				return err
			}
			info.LastEdited = edited.UTC().Format(time.RFC3339)

			if info.GroupID != "" {
				public, err := pad.Public(ctx)
				if err != nil {
					return err
				}
				protected, err := pad.PasswordProtected(ctx)
				if err != nil {
					return err
				}
				info.Public, info.PasswordProtected = &public, &protected
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}
