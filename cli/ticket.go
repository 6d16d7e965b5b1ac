package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/SaiNageswarS/edu-assist/schema"
	"github.com/SaiNageswarS/edu-assist/ticket"
	"github.com/spf13/cobra"
)

const ticketConfirmation = "Our administrative team will review your query and respond via email within 24 hours."

func newTicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Open or list support tickets",
	}

	var fields ticket.QueryFields
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Open a support ticket for the administrative team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return submitTicket(cmd, app.Tickets, fields)
		},
	}
	submit.Flags().StringVar(&fields.StudentID, "student-id", "", "student ID")
	submit.Flags().StringVar(&fields.Subject, "subject", "", "short subject line")
	submit.Flags().StringVar(&fields.Description, "description", "", "what you need help with")
	cmd.AddCommand(submit)

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List submitted tickets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkStatus(status); err != nil {
				return err
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return listTickets(cmd.Context(), app.Tickets, status, cmd.OutOrStdout())
		},
	}
	list.Flags().StringVar(&status, "status", "", "only show tickets with this status (pending, resolved, escalated)")
	cmd.AddCommand(list)

	return cmd
}

func submitTicket(cmd *cobra.Command, intake *ticket.Intake, fields ticket.QueryFields) error {
	query, err := intake.SubmitQuery(cmd.Context(), fields)
	var validationErr *ticket.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("ticket not submitted: %w", err)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Ticket Submitted (%s)\n", query.ID)
	fmt.Fprintln(out, ticketConfirmation)
	return nil
}

// checkStatus accepts an empty filter or one of the known ticket statuses.
func checkStatus(status string) error {
	if status == "" || schema.QueryStatus(status).Valid() {
		return nil
	}
	return fmt.Errorf("invalid status %q: must be one of %s, %s, %s",
		status, schema.QueryPending, schema.QueryResolved, schema.QueryEscalated)
}

func listTickets(ctx context.Context, intake *ticket.Intake, status string, out io.Writer) error {
	if err := checkStatus(status); err != nil {
		return err
	}

	queries, err := intake.ListQueriesByStatus(ctx, schema.QueryStatus(status))
	if err != nil {
		return err
	}
	printTickets(out, queries)
	return nil
}

func printTickets(out io.Writer, queries []*schema.StudentQuery) {
	if len(queries) == 0 {
		fmt.Fprintln(out, "No tickets yet.")
		return
	}
	for _, q := range queries {
		created := time.UnixMilli(q.CreatedAt).Format("2006-01-02 15:04")
		fmt.Fprintf(out, "%s  [%s]  %s  %s  %s\n", q.ID, q.Status, created, q.StudentID, q.Subject)
	}
}
