package schema

type QueryStatus string

const (
	QueryPending   QueryStatus = "pending"
	QueryResolved  QueryStatus = "resolved"
	QueryEscalated QueryStatus = "escalated"
)

func (s QueryStatus) Valid() bool {
	switch s {
	case QueryPending, QueryResolved, QueryEscalated:
		return true
	}
	return false
}

// StudentQuery is a support ticket raised outside the chat flow. Status
// changes after creation belong to the back office.
type StudentQuery struct {
	ID          string      `json:"id"`
	StudentID   string      `json:"studentId"`
	Subject     string      `json:"subject"`
	Description string      `json:"description"`
	Status      QueryStatus `json:"status"`
	CreatedAt   int64       `json:"createdAt"` // unix millis
}

func (q StudentQuery) Id() string {
	return q.ID
}
