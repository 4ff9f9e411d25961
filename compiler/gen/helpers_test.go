package gen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNaming(t *testing.T) {
	require := require.New(t)

	require.Equal("UserGroup", pascal("user_group"))
	require.Equal("HTTPRequest", pascal("http_request"))
	require.Equal("UserID", pascal("user_id"))
	require.Equal("userGroup", camel("user_group"))
	require.Equal("userName", camel("userName"))
	require.Equal("user_group", snake("UserGroup"))
	require.Equal("http_request", snake("HTTPRequest"))

	require.Equal("user", singular("users"))
	require.Equal("category", singular("categories"))
	require.Equal("users", plural("user"))
}
