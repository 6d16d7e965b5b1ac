package cli

import (
	"fmt"

	"github.com/SaiNageswarS/edu-assist/conversation"
	"github.com/spf13/cobra"
)

type channel struct {
	Name        string
	Description string
}

var channels = []channel{
	{Name: "WhatsApp", Description: "Instant AI assistance directly in your chat threads."},
	{Name: "Facebook Messenger", Description: "Connect via Messenger to sync across social accounts."},
	{Name: "Slack", Description: "Add EduAssist to your study group workspace."},
}

func newStartersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "starters",
		Short: "Show conversation starters and other channels",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Try asking about:")
			for _, p := range conversation.StarterPrompts() {
				fmt.Fprintf(out, "  - %s\n", p)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Also available on:")
			for _, c := range channels {
				fmt.Fprintf(out, "  %-20s %s\n", c.Name, c.Description)
			}
		},
	}
}
