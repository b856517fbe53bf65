package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitGlobalLogger(t *testing.T) {
	logger := InitGlobalLogger("debug")
	require.NotNil(t, logger)

	// The installed logger must survive the lazy default initialization.
	assert.Same(t, logger, GetGlobalLogger())
}

func TestMustSync(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(NewNopLogger())
	MustSync()
}
