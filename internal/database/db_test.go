package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	got := dsn("ledger", "s3cret", "127.0.0.1", "3306", "finance")
	assert.Equal(t, "ledger:s3cret@tcp(127.0.0.1:3306)/finance?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true", got)
}

func TestDSNWithoutPassword(t *testing.T) {
	got := dsn("ledger", "", "db", "3306", "finance")
	assert.True(t, strings.HasPrefix(got, "ledger@tcp(db:3306)/finance?"), got)
}

// clientFoundRows makes RowsAffected count matched rows, so an update
// that resubmits unchanged values is not mistaken for a missing row.
func TestDSNReportsMatchedRows(t *testing.T) {
	assert.Contains(t, dsn("u", "p", "h", "3306", "d"), "clientFoundRows=true")
}
