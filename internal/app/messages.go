package app

// Default status message texts. Success and failure variants are
// overridable per invocation via RunConfig.
const (
	startMessageFormat        = "🚀 Starting command: `%s`"
	successMessage            = "✅ Command finished successfully."
	failureMessageFormat      = "❌ Command failed with exit code %d."
	signalMessage             = "❌ Command was terminated by a signal."
	spawnFailureMessageFormat = "❌ Command failed to start: %v."
)
