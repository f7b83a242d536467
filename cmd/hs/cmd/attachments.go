package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var attachmentOutput string

var attachmentsCmd = &cobra.Command{
	Use:   "attachments",
	Short: "Work with thread attachments",
}

var attachmentsDownloadCmd = &cobra.Command{
	Use:   "download <conversation-id> <attachment-id>",
	Short: "Download an attachment",
	Long: `Download an attachment's data. Without --output the raw bytes go to
stdout.

Examples:
  hs attachments download 123 456 --output report.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		convID, err := parseID("conversation", args[0])
		if err != nil {
			return err
		}
		attachmentID, err := parseID("attachment", args[1])
		if err != nil {
			return err
		}

		client, _ := newClient()
		data, err := client.GetAttachmentData(cmd.Context(), convID, attachmentID)
		if err != nil {
			return err
		}

		if attachmentOutput == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(attachmentOutput, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", attachmentOutput, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", len(data), attachmentOutput)
		return nil
	},
}

var attachmentsDeleteCmd = &cobra.Command{
	Use:   "delete <conversation-id> <attachment-id>",
	Short: "Delete an attachment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		convID, err := parseID("conversation", args[0])
		if err != nil {
			return err
		}
		attachmentID, err := parseID("attachment", args[1])
		if err != nil {
			return err
		}

		client, _ := newClient()
		if err := client.DeleteAttachment(cmd.Context(), convID, attachmentID); err != nil {
			return err
		}
		fmt.Println("Attachment deleted.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(attachmentsCmd)
	attachmentsCmd.AddCommand(attachmentsDownloadCmd)
	attachmentsCmd.AddCommand(attachmentsDeleteCmd)

	attachmentsDownloadCmd.Flags().StringVar(&attachmentOutput, "output", "", "write to file instead of stdout")
}
