package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/richtext"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var folderFlag string
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages in a folder",
		Long:  "List messages in a folder or label (defaults to the configured folder).",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, done, err := setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			if folderFlag != "" {
				sess.SelectFolder(domain.Folder(folderFlag))
			}
			msgs, err := sess.Messages(cmd.Context(), "")
			if err != nil {
				return err
			}
			return printMessages(cmd, limit(msgs, limitFlag), "No messages found.")
		},
	}

	cmd.Flags().StringVar(&folderFlag, "folder", "", "folder to list (inbox, desired, sent, drafts, spam, or a label id)")
	cmd.Flags().IntVar(&limitFlag, "limit", 25, "max messages to show")
	return cmd
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <message-id>",
		Short: "Read a message and its replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, done, err := setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			m, replies, err := sess.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				return fprintJSON(out, toJSONMessageDetail(m, replies))
			}

			body, err := richtext.PlainText(m.Content)
			if err != nil {
				body = m.Content
			}

			fmt.Fprintf(out, "Subject: %s\n", m.Subject)
			fmt.Fprintf(out, "From: %s\n", formatSender(m))
			if c, ok := m.Composed(); ok {
				if c.To != "" {
					fmt.Fprintf(out, "To: %s\n", c.To)
				}
				if c.CC != "" {
					fmt.Fprintf(out, "CC: %s\n", c.CC)
				}
			}
			fmt.Fprintf(out, "Date: %s\n", m.Timestamp)
			fmt.Fprintf(out, "Folder: %s\n", m.Folder.DisplayName())
			if len(m.Labels) > 0 {
				fmt.Fprintf(out, "Labels: %s\n", strings.Join(m.Labels, ", "))
			}
			fmt.Fprintf(out, "Message ID: %s\n", m.ID)
			fmt.Fprintln(out)
			fmt.Fprintln(out, body)

			for _, r := range replies {
				fmt.Fprintln(out)
				fmt.Fprintln(out, strings.Repeat("─", 60))
				star := ""
				if r.IsStarred {
					star = " ★"
				}
				fmt.Fprintf(out, "%s · %s%s\n", r.Sender, r.Timestamp, star)
				if r.InReplyTo != "" {
					fmt.Fprintf(out, "Replying to %s\n", r.InReplyTo)
				}
				fmt.Fprintln(out, r.Content)
			}
			return nil
		},
	}
	return cmd
}

func newSearchCmd() *cobra.Command {
	var folderFlag string
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search messages in a folder",
		Long:  "Case-insensitive search across sender, subject, preview, content and labels.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			sess, _, done, err := setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			if folderFlag != "" {
				sess.SelectFolder(domain.Folder(folderFlag))
			}
			msgs, err := sess.Messages(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("failed to search: %w", err)
			}
			return printMessages(cmd, limit(msgs, limitFlag), "No results found.")
		},
	}

	cmd.Flags().StringVar(&folderFlag, "folder", "", "folder to search (defaults to the configured folder)")
	cmd.Flags().IntVar(&limitFlag, "limit", 25, "max results to show")
	return cmd
}

func newLabelsCmd() *cobra.Command {
	var addFlags []string
	var colorFlag string

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List folders and labels with unread counts",
		Long: "List folders and labels with unread counts.\n" +
			"--add creates labels for this run only, which is useful to check names.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, done, err := setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			for _, name := range addFlags {
				if _, err := sess.AddLabel(cmd.Context(), name, colorFlag); err != nil {
					return err
				}
			}

			folders, err := sess.Folders(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				return fprintJSON(out, toJSONFolders(folders))
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND\tCOLOR\tUNREAD")
			for _, f := range folders {
				kind := "folder"
				if f.Label {
					kind = "label"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", f.Folder, f.Name, kind, f.Color, f.Unread)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringArrayVar(&addFlags, "add", nil, "label name to add (repeatable)")
	cmd.Flags().StringVar(&colorFlag, "color", "gray", "color for added labels")
	return cmd
}

func printMessages(cmd *cobra.Command, msgs []domain.Message, empty string) error {
	out := cmd.OutOrStdout()
	if jsonFlag {
		return fprintJSON(out, toJSONMessages(msgs))
	}
	if len(msgs) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UNREAD\tSTAR\tFROM\tSUBJECT\tDATE\tID")
	for _, m := range msgs {
		unread := " "
		if !m.IsRead {
			unread = "*"
		}
		star := " "
		if m.IsStarred {
			star = "★"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			unread, star,
			truncate(m.Sender, 30),
			truncate(m.Subject, 50),
			m.Timestamp, m.ID,
		)
	}
	return w.Flush()
}

func formatSender(m *domain.Message) string {
	if email := m.SenderEmail(); email != "" {
		return fmt.Sprintf("%s <%s>", m.Sender, email)
	}
	return m.Sender
}

func limit(msgs []domain.Message, n int) []domain.Message {
	if n > 0 && len(msgs) > n {
		return msgs[:n]
	}
	return msgs
}
