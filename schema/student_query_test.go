package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryStatus_Valid(t *testing.T) {
	for _, s := range []QueryStatus{QueryPending, QueryResolved, QueryEscalated} {
		assert.True(t, s.Valid(), string(s))
	}
	for _, s := range []QueryStatus{"", "Pending", "closed"} {
		assert.False(t, s.Valid(), string(s))
	}
}
