package iowarehouse

import (
	"errors"
	"testing"

	"github.com/gnames/dwhetl/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError verifies error structure.
func TestConnectionError(t *testing.T) {
	originalErr := errors.New("dial tcp: i/o timeout")

	err := ConnectionError("awsuser@dwh:5439/dev", originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.Contains(t, gnErr.Msg, "<em>%s</em>")
	require.Len(t, gnErr.Vars, 1)
	assert.Equal(t, "awsuser@dwh:5439/dev", gnErr.Vars[0])
	assert.ErrorIs(t, gnErr.Err, originalErr)
	assert.Contains(t, gnErr.Err.Error(), "failed to connect")
}

// TestCloseError verifies error structure.
func TestCloseError(t *testing.T) {
	originalErr := errors.New("connection reset")

	err := CloseError(originalErr)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)

	assert.Equal(t, errcode.DBCloseError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
