package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreCommitHook_ShouldHaveConstant(t *testing.T) {
	t.Parallel()
	// When
	hookName := PreCommitHook

	// Then
	assert.Equal(t, "pre-commit", hookName)
}

func TestHookMarker_ShouldBeShellComment(t *testing.T) {
	t.Parallel()
	assert.Equal(t, byte('#'), HookMarker[0])
}
