package bootstrap_test

import (
	"testing"

	"github.com/TG-Note-App/tgauth/internal/bootstrap"
	"github.com/stretchr/testify/assert"
)

func TestHosts(t *testing.T) {
	assert.Equal(t, "a=1", bootstrap.StaticHost("a=1").InitData())

	t.Setenv("TEST_INIT_DATA", "query_id=1")
	assert.Equal(t, "query_id=1", bootstrap.EnvHost{Key: "TEST_INIT_DATA"}.InitData())
	assert.Empty(t, bootstrap.EnvHost{Key: "TEST_INIT_DATA_UNSET"}.InitData())
}
