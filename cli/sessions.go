package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/SaiNageswarS/edu-assist/schema"
	"github.com/spf13/cobra"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage chat sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List chat sessions, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return listSessions(cmd.Context(), app, cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a chat session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return deleteSession(cmd.Context(), app, args[0], cmd.OutOrStdout())
		},
	})

	return cmd
}

func listSessions(ctx context.Context, app *App, out io.Writer) error {
	sessions, err := app.StoredSessions(ctx)
	if err != nil {
		return err
	}
	printSessions(out, sessions, "")
	return nil
}

func deleteSession(ctx context.Context, app *App, id string, out io.Writer) error {
	if err := app.DeleteStoredSession(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted %s\n", id)
	return nil
}

func printSessions(out io.Writer, sessions []*schema.ChatSession, activeID string) {
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions yet.")
		return
	}

	ordered := make([]*schema.ChatSession, len(sessions))
	copy(ordered, sessions)
	schema.SortByRecency(ordered)

	for _, s := range ordered {
		marker := " "
		if s.ID == activeID {
			marker = "*"
		}
		updated := time.UnixMilli(s.UpdatedAt).Format("Jan 2")
		fmt.Fprintf(out, "%s %s  %-38s  %s  (%d messages)\n", marker, s.ID, s.DisplayTitle(), updated, len(s.Messages))
	}
}
