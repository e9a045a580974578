package server

// Export unexported functions for testing
var (
	RefToBranchForTest             = refToBranch
	GitHubEventToPollReasonForTest = githubEventToPollReason
)
