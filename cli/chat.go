package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/SaiNageswarS/edu-assist/conversation"
	"github.com/SaiNageswarS/edu-assist/schema"
	"github.com/SaiNageswarS/edu-assist/ticket"
	"github.com/spf13/cobra"
)

const chatHelp = `Commands:
  /new          start a new discussion
  /sessions     list discussions
  /select ID    switch to a discussion
  /delete ID    delete a discussion
  /ticket       open a support ticket
  /quit         exit`

func newChatCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the helpdesk assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return runChat(cmd.Context(), app, sessionID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "session to resume")
	return cmd
}

// runChat drives the interactive loop until /quit or end of input.
func runChat(ctx context.Context, app *App, sessionID string, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	app.EnsureSessions(ctx)
	if sessionID != "" && !app.Sessions.SelectSession(sessionID) {
		return fmt.Errorf("session %s not found", sessionID)
	}

	reporter := conversation.TurnReporterFunc(func(event *conversation.TurnEvent) error {
		if event.Stage == conversation.StagePending {
			fmt.Fprintln(out, "... thinking")
		}
		return nil
	})
	engine, err := app.Engine(ctx, reporter)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, chatHelp)
	showActive(out, app)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := runCommand(ctx, app, line, scanner, out)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		active, ok := app.Sessions.Active()
		if !ok {
			active = app.Sessions.CreateSession(ctx)
		}

		updated, err := engine.SubmitUserMessage(ctx, active, line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		last := updated.Messages[len(updated.Messages)-1]
		fmt.Fprintf(out, "%s\n\n", last.Content)
	}
}

func runCommand(ctx context.Context, app *App, line string, scanner *bufio.Scanner, out io.Writer) (bool, error) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Fprintln(out, chatHelp)
	case "/new":
		app.Sessions.CreateSession(ctx)
		showActive(out, app)
	case "/sessions":
		printSessions(out, app.Sessions.Sessions(), app.Sessions.ActiveID())
	case "/select":
		if len(args) != 1 {
			return false, errors.New("usage: /select ID")
		}
		if !app.Sessions.SelectSession(args[0]) {
			return false, fmt.Errorf("session %s not found", args[0])
		}
		showActive(out, app)
	case "/delete":
		if len(args) != 1 {
			return false, errors.New("usage: /delete ID")
		}
		if _, ok := app.Sessions.Get(args[0]); !ok {
			return false, fmt.Errorf("session %s not found", args[0])
		}
		app.Sessions.DeleteSession(ctx, args[0])
		fmt.Fprintf(out, "Deleted %s\n", args[0])
		showActive(out, app)
	case "/ticket":
		return false, promptTicket(ctx, app.Tickets, scanner, out)
	default:
		return false, fmt.Errorf("unknown command %s", name)
	}
	return false, nil
}

func promptTicket(ctx context.Context, intake *ticket.Intake, scanner *bufio.Scanner, out io.Writer) error {
	var fields ticket.QueryFields
	targets := []struct {
		label string
		value *string
	}{
		{"Student ID", &fields.StudentID},
		{"Subject", &fields.Subject},
		{"Description", &fields.Description},
	}
	for _, t := range targets {
		fmt.Fprintf(out, "%s: ", t.label)
		if !scanner.Scan() {
			return errors.New("ticket cancelled")
		}
		*t.value = strings.TrimSpace(scanner.Text())
	}

	query, err := intake.SubmitQuery(ctx, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Ticket Submitted (%s)\n%s\n", query.ID, ticketConfirmation)
	return nil
}

func showActive(out io.Writer, app *App) {
	active, ok := app.Sessions.Active()
	if !ok {
		fmt.Fprintln(out, "No active discussion. Type a message to start one.")
		return
	}

	fmt.Fprintf(out, "[%s] %s\n", active.ID, active.DisplayTitle())
	if len(active.Messages) == 0 {
		fmt.Fprintln(out, "Try asking about:")
		for _, p := range conversation.StarterPrompts() {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		return
	}
	for _, m := range active.Messages {
		fmt.Fprintf(out, "%s: %s\n", speaker(m), m.Content)
	}
}

func speaker(m schema.Message) string {
	if m.IsUser() {
		return "you"
	}
	return "assistant"
}
