package db

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNoOverlapConstraintMatchesColumnType(t *testing.T) {
	// appointment_time is stored as timestamptz; tsrange would make the
	// ALTER TABLE fail with an undefined-function error and leave the
	// overlap guard missing.
	assert.Contains(t, appointmentsNoOverlapDDL, "tstzrange(")
	assert.NotContains(t, strings.ReplaceAll(appointmentsNoOverlapDDL, "tstzrange", ""), "tsrange(")

	assert.Contains(t, appointmentsNoOverlapDDL, "EXCLUDE USING gist")
	assert.Contains(t, appointmentsNoOverlapDDL, "WHERE (status = 'scheduled')")
}

func TestIsDuplicateObject(t *testing.T) {
	assert.True(t, isDuplicateObject(&pgconn.PgError{Code: "42710"}))
	assert.True(t, isDuplicateObject(fmt.Errorf("exec: %w", &pgconn.PgError{Code: "42710"})))

	assert.False(t, isDuplicateObject(&pgconn.PgError{Code: "42883"}), "undefined function must stay fatal")
	assert.False(t, isDuplicateObject(errors.New("connection refused")))
	assert.False(t, isDuplicateObject(nil))
}
