package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

func newQueryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/x?"+rawQuery, nil)
	return c
}

func TestParseUintParam(t *testing.T) {
	c := newQueryContext("")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := ParseUintParam(c, "id", "account")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, err := ParseUintParam(c, "id", "account")
		assert.True(t, errors.IsValidationError(err), raw)
	}
}

func TestQueryInt(t *testing.T) {
	n, err := QueryInt(newQueryContext(""), "lead_hours", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = QueryInt(newQueryContext("limit=900"), "limit", 50, 500)
	require.NoError(t, err)
	assert.Equal(t, 500, n)

	_, err = QueryInt(newQueryContext("lead_hours=0"), "lead_hours", 2, 0)
	assert.True(t, errors.IsValidationError(err))
}

func TestQueryBool(t *testing.T) {
	assert.True(t, QueryBool(newQueryContext("expired_only=true"), "expired_only"))
	assert.True(t, QueryBool(newQueryContext("expired_only=1"), "expired_only"))
	assert.False(t, QueryBool(newQueryContext("expired_only=no"), "expired_only"))
	assert.False(t, QueryBool(newQueryContext(""), "expired_only"))
}
