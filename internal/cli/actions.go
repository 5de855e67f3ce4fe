package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/lu-zhengda/mailbox/internal/app"
	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/spf13/cobra"
)

func newComposeCmd() *cobra.Command {
	var toFlag, ccFlag, bccFlag, subjectFlag, bodyFlag string
	var labelFlags []string
	var draftFlag bool

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a message and file it under sent or drafts",
		Long: "Compose a message and file it under sent (or drafts with --draft).\n" +
			"The body is markdown. Nothing is delivered and nothing outlives this run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := bodyFlag
			if body == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read body from stdin: %w", err)
				}
				body = string(b)
			}

			sess, _, done, err := setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			in := app.ComposeInput{
				To:      toFlag,
				CC:      ccFlag,
				BCC:     bccFlag,
				Subject: subjectFlag,
				Body:    body,
				Labels:  labelFlags,
			}

			var (
				m      domain.Message
				action string
			)
			if draftFlag {
				m, err = sess.SaveDraft(cmd.Context(), in)
				action = "draft"
			} else {
				m, err = sess.Send(cmd.Context(), in)
				action = "send"
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				return fprintJSON(out, jsonAction{
					OK:        true,
					Action:    action,
					MessageID: m.ID,
					Folder:    string(m.Folder),
				})
			}
			fmt.Fprintf(out, "Filed under %s as %s.\n", m.Folder.DisplayName(), m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&toFlag, "to", "", "recipient addresses (comma-separated)")
	cmd.Flags().StringVar(&ccFlag, "cc", "", "CC addresses (comma-separated)")
	cmd.Flags().StringVar(&bccFlag, "bcc", "", "BCC addresses (comma-separated)")
	cmd.Flags().StringVar(&subjectFlag, "subject", "", "message subject")
	cmd.Flags().StringVar(&bodyFlag, "body", "", "markdown body (use '-' to read from stdin)")
	cmd.Flags().StringArrayVar(&labelFlags, "label", nil, "label name to tag the message with (repeatable)")
	cmd.Flags().BoolVar(&draftFlag, "draft", false, "save as a draft instead of sending")
	return cmd
}

func newExportCmd() *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "export <message-id>",
		Short: "Write a message as an .eml document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, done, err := setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			if outputFlag == "" || outputFlag == "-" {
				return sess.Export(cmd.Context(), args[0], cmd.OutOrStdout())
			}

			f, err := os.Create(outputFlag)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outputFlag, err)
			}
			if err := sess.Export(cmd.Context(), args[0], f); err != nil {
				f.Close()
				os.Remove(outputFlag)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputFlag, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s.\n", outputFlag)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "file to write (defaults to stdout)")
	return cmd
}
