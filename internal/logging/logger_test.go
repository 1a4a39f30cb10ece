package logging

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/techrelay/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	_, err := New("loud", FormatConsole)
	assert.ErrorContains(t, err, "parse log level")

	_, err = New("info", "xml")
	assert.ErrorContains(t, err, "unsupported log format")
}

func TestNewBuildsBothFormats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"", FormatConsole, FormatJSON} {
		logger, err := New("debug", format)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(errors.New("send failed")))
	assert.True(t, IsTransient(fmt.Errorf("send: %w", ports.ErrTransient)))
	assert.True(t, IsTransient(errors.New("Cannot read properties of undefined (reading 'markedUnread')")))
}

func TestOrNop(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, OrNop(nil))
}
