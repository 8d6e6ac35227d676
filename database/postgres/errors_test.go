package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestViolations(t *testing.T) {
	unique := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	foreign := fmt.Errorf("wrapped: %w", &pq.Error{Code: "23503", Constraint: "transactions_category_id_fkey"})

	constraint, ok := UniqueViolation(unique)
	assert.True(t, ok)
	assert.Equal(t, "users_email_key", constraint)

	_, ok = UniqueViolation(foreign)
	assert.False(t, ok)

	constraint, ok = ForeignKeyViolation(foreign)
	assert.True(t, ok)
	assert.Equal(t, "transactions_category_id_fkey", constraint)

	_, ok = ForeignKeyViolation(errors.New("plain"))
	assert.False(t, ok)
}
