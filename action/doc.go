// Package action is the thin layer between the installer and the CI runner
// hosting it.
//
// A [Runtime] carries everything the runner provides to a step: the platform
// and architecture, the environment (which includes action inputs as
// INPUT_<NAME> variables), the executable search path and the output streams.
// It also collects the terminal status of the run via [Runtime.SetFailed].
//
// Log lines are written as workflow commands (::debug::, ::warning::,
// ::error::) when GITHUB_ACTIONS=true, and as colored lines otherwise.
package action
