package constants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectoryConstants(t *testing.T) {
	t.Run("PandaHome is hidden", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(PandaHome, "."), "home directory should be hidden")
	})

	t.Run("staging and build live under PandaHome by convention", func(t *testing.T) {
		assert.Equal(t, "staging", StagingDir)
		assert.Equal(t, "build", BuildDir)
	})
}

func TestBuildOutputTemplate(t *testing.T) {
	t.Run("default template starts at the workspace root", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(DefaultBuildOutputTemplate, BuildOutputRootToken))
		assert.Contains(t, DefaultBuildOutputTemplate, PandaHome)
	})
}

func TestToolchainConstants(t *testing.T) {
	t.Run("default toolchain is resolved via PATH", func(t *testing.T) {
		assert.Equal(t, "arduino-cli", DefaultToolchainPath)
		assert.NotContains(t, DefaultToolchainPath, "/", "bare binary name, not a path")
	})

	t.Run("sketch extension includes the dot", func(t *testing.T) {
		assert.Equal(t, ".ino", SketchExtension)
	})
}

func TestDefaultCompletionMarkers(t *testing.T) {
	assert.NotEmpty(t, DefaultCompletionMarkers)
	assert.Contains(t, DefaultCompletionMarkers, "Device responded")
	assert.Contains(t, DefaultCompletionMarkers, "avrdude done")
	assert.Contains(t, DefaultCompletionMarkers, "Upload complete")
}

func TestArtifactExtensions(t *testing.T) {
	// Order matters: hex preferred over bin for AVR targets.
	assert.Equal(t, []string{".hex", ".bin"}, ArtifactExtensions)
}
