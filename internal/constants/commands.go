package constants

const (
	// GradleWrapper is the project-local build tool wrapper, relative to the project root.
	GradleWrapper = "gradlew"

	// GradleCommand is the globally installed build tool looked up on PATH.
	GradleCommand = "gradle"

	// SpotlessTask is the build task that rewrites sources in place.
	SpotlessTask = "spotlessApply"

	// GitCommand is the version control CLI.
	GitCommand = "git"
)
