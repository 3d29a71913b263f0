package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestAddMonths(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		start    time.Time
		months   int
		expected time.Time
	}{
		{day(2024, time.March, 10), 1, day(2024, time.April, 10)},
		{day(2024, time.January, 31), 1, day(2024, time.February, 29)},
		{day(2023, time.January, 31), 1, day(2023, time.February, 28)},
		{day(2024, time.November, 30), 3, day(2025, time.February, 28)},
		{day(2024, time.February, 29), 12, day(2025, time.February, 28)},
		{day(2024, time.May, 31), 12, day(2025, time.May, 31)},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s+%d", tt.start.Format("2006-01-02"), tt.months), func(t *testing.T) {
			assert.Equal(t, tt.expected, addMonths(tt.start, tt.months))
		})
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	assert.True(t, isDuplicateKeyError(err, "email"))
	assert.True(t, isDuplicateKeyError(err, ""))
	assert.False(t, isDuplicateKeyError(err, "license"))
	assert.False(t, isDuplicateKeyError(errors.New("boom"), ""))
	assert.False(t, isForeignKeyError(err, ""))
}

func TestMissing(t *testing.T) {
	assert.Equal(t, []string{"b", "d"}, missing("a", "x", "b", " ", "c", "y", "d", ""))
	assert.Nil(t, missing("a", "x"))
}
