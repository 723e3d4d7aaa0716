package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	q := "UPDATE t SET a = ?, b = ? WHERE id = ?"

	pg := &Store{driver: DriverPostgres}
	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", pg.rebind(q))

	lite := &Store{driver: DriverSQLite}
	assert.Equal(t, q, lite.rebind(q))
}
