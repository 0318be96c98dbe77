package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseFilename(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "history.db", DatabaseFilename)
}

func TestLogFilename(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "spotless-apply.log", LogFilename)
}

func TestFormatterCommand(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "gradlew", GradleWrapper)
	assert.Equal(t, "gradle", GradleCommand)
	assert.Equal(t, "spotlessApply", SpotlessTask)
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitFailure)
}
