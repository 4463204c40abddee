package settings_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/attnlabs/focusd/internal/domain/settings"
)

func TestDefault(t *testing.T) {
	set := settings.Default()
	require.Equal(t, 25, set.WorkMinutes)
	require.Equal(t, 5, set.BreakMinutes)
	require.False(t, set.FocusMode)
}

func TestNormalizedClampsNonPositive(t *testing.T) {
	set := settings.Settings{WorkMinutes: 0, BreakMinutes: -3, FocusMode: true}.Normalized()
	require.Equal(t, 25, set.WorkMinutes)
	require.Equal(t, 5, set.BreakMinutes)
	require.True(t, set.FocusMode)
}

func TestPhaseSeconds(t *testing.T) {
	set := settings.Settings{WorkMinutes: 50, BreakMinutes: 10}
	require.Equal(t, 3000, set.WorkSeconds())
	require.Equal(t, 600, set.BreakSeconds())
}
