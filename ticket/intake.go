package ticket

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SaiNageswarS/edu-assist/schema"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"go.uber.org/zap"
)

// Store is where tickets are kept. memory.Gateway satisfies it.
type Store interface {
	SaveQuery(ctx context.Context, query *schema.StudentQuery) error
	ListQueries(ctx context.Context) ([]*schema.StudentQuery, error)
}

type QueryFields struct {
	StudentID   string
	Subject     string
	Description string
}

// ValidationError lists the required fields that were left blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

type Intake struct {
	store Store
	now   func() time.Time
	newID func() string
}

func NewIntake(store Store) *Intake {
	return &Intake{
		store: store,
		now:   time.Now,
		newID: schema.NewID,
	}
}

// SubmitQuery validates fields and stores a new pending ticket. Nothing is
// written when validation fails. Storage errors are returned as-is, there is
// no retry.
func (i *Intake) SubmitQuery(ctx context.Context, fields QueryFields) (*schema.StudentQuery, error) {
	if err := validate(fields); err != nil {
		return nil, err
	}

	query := &schema.StudentQuery{
		ID:          i.newID(),
		StudentID:   fields.StudentID,
		Subject:     fields.Subject,
		Description: fields.Description,
		Status:      schema.QueryPending,
		CreatedAt:   i.now().UnixMilli(),
	}

	if err := i.store.SaveQuery(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to save ticket: %w", err)
	}

	logger.Info("Support ticket submitted", zap.String("ticketId", query.ID), zap.String("subject", query.Subject))
	return query, nil
}

func (i *Intake) ListQueries(ctx context.Context) ([]*schema.StudentQuery, error) {
	return i.store.ListQueries(ctx)
}

// ListQueriesByStatus returns stored tickets with the given status, newest
// first. An empty status matches every ticket.
func (i *Intake) ListQueriesByStatus(ctx context.Context, status schema.QueryStatus) ([]*schema.StudentQuery, error) {
	queries, err := i.store.ListQueries(ctx)
	if err != nil || status == "" {
		return queries, err
	}

	return linq.Pipe2(
		linq.FromSlice(ctx, queries),

		linq.Where(func(q *schema.StudentQuery) bool {
			return q.Status == status
		}),

		linq.ToSlice[*schema.StudentQuery](),
	)
}

func validate(fields QueryFields) error {
	var missing []string
	if strings.TrimSpace(fields.StudentID) == "" {
		missing = append(missing, "studentId")
	}
	if strings.TrimSpace(fields.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(fields.Description) == "" {
		missing = append(missing, "description")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
