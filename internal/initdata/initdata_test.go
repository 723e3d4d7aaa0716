package initdata_test

import (
	"testing"

	"github.com/TG-Note-App/tgauth/internal/initdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("flat pairs", func(t *testing.T) {
		values, err := initdata.Parse("a=1&b=2")
		require.NoError(t, err)
		assert.Equal(t, initdata.Values{"a": "1", "b": "2"}, values)
	})

	t.Run("last duplicate wins", func(t *testing.T) {
		values, err := initdata.Parse("a=1&a=2&a=3")
		require.NoError(t, err)
		assert.Equal(t, "3", values["a"])
	})

	t.Run("decodes escapes", func(t *testing.T) {
		values, err := initdata.Parse("user=%7B%22id%22%3A1%7D&q=a+b")
		require.NoError(t, err)
		assert.Equal(t, `{"id":1}`, values["user"])
		assert.Equal(t, "a b", values["q"])
	})

	t.Run("key without value", func(t *testing.T) {
		values, err := initdata.Parse("flag")
		require.NoError(t, err)
		assert.Equal(t, "", values["flag"])
	})

	t.Run("malformed escapes stay literal", func(t *testing.T) {
		values, err := initdata.Parse("a=%zz&b=100%&c=%4")
		require.NoError(t, err)
		assert.Equal(t, initdata.Values{"a": "%zz", "b": "100%", "c": "%4"}, values)
	})

	t.Run("semicolon is not a separator", func(t *testing.T) {
		values, err := initdata.Parse("a=1;b=2")
		require.NoError(t, err)
		assert.Equal(t, initdata.Values{"a": "1;b=2"}, values)
	})

	t.Run("value keeps later equals signs", func(t *testing.T) {
		values, err := initdata.Parse("sig=ab==&x=")
		require.NoError(t, err)
		assert.Equal(t, initdata.Values{"sig": "ab==", "x": ""}, values)
	})

	t.Run("empty pairs skipped", func(t *testing.T) {
		values, err := initdata.Parse("&&a=1&")
		require.NoError(t, err)
		assert.Equal(t, initdata.Values{"a": "1"}, values)
	})

	t.Run("invalid utf8 replaced", func(t *testing.T) {
		values, err := initdata.Parse("a=%FF")
		require.NoError(t, err)
		assert.Equal(t, "\uFFFD", values["a"])
	})
}

func TestDataCheckString(t *testing.T) {
	values := initdata.Values{
		"query_id":  "AAH",
		"hash":      "deadbeef",
		"auth_date": "1700000000",
		"user":      `{"id":1}`,
	}

	assert.Equal(t, "auth_date=1700000000\nquery_id=AAH\nuser={\"id\":1}", values.DataCheckString())
}

func TestEncodeRoundTrip(t *testing.T) {
	values := initdata.Values{"user": `{"id":7,"first_name":"Ann"}`, "auth_date": "1"}

	parsed, err := initdata.Parse(values.Encode())
	require.NoError(t, err)
	assert.Equal(t, values, parsed)
}

func TestUser(t *testing.T) {
	t.Run("decodes user", func(t *testing.T) {
		values := initdata.Values{"user": `{"id":42,"first_name":"Ann","username":"ann1","is_premium":true}`}

		u, err := values.User()
		require.NoError(t, err)
		assert.Equal(t, int64(42), u.ID)
		assert.Equal(t, "Ann", u.FirstName)
		assert.Equal(t, "ann1", u.Username)
		assert.True(t, u.IsPremium)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := initdata.Values{}.User()
		assert.ErrorIs(t, err, initdata.ErrNoUser)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := initdata.Values{"user": "{"}.User()
		assert.Error(t, err)
	})

	t.Run("zero id rejected", func(t *testing.T) {
		_, err := initdata.Values{"user": `{"first_name":"Ann"}`}.User()
		assert.Error(t, err)
	})
}
