package launcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mopack/internal/launcher"
)

func TestDetect_Vanilla(t *testing.T) {
	l, err := launcher.Detect("vanilla")
	require.NoError(t, err)
	assert.Equal(t, launcher.KindVanilla, l.Kind())
}

func TestDetect_Unknown(t *testing.T) {
	_, err := launcher.Detect("gdlauncher")
	assert.ErrorIs(t, err, launcher.ErrUnknownLauncher)
}

func TestDetect_MultiMCMissingDirSegment(t *testing.T) {
	_, err := launcher.Detect("multimc")
	assert.ErrorIs(t, err, launcher.ErrUnknownLauncher)
}

func TestDetect_MultiMCMissingDataDir(t *testing.T) {
	_, err := launcher.Detect("multimc-DefinitelyNotInstalledHere")
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "vanilla", launcher.KindVanilla.String())
	assert.Equal(t, "multimc", launcher.KindMultiMC.String())
}
