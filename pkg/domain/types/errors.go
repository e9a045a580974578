package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption     = goerr.New("invalid option")
	ErrValidationFailed  = goerr.New("validation failed")
	ErrInvalidGitHubData = goerr.New("invalid GitHub data")

	// ErrRemoteUnavailable is returned by remote watchers on network or auth
	// failure. The poll cycle treats it as transient.
	ErrRemoteUnavailable = goerr.New("remote unavailable")

	// ErrActionFailed wraps a failed transition action. The record keeps its
	// state and is retried on the next cycle.
	ErrActionFailed = goerr.New("transition action failed")

	// ErrPrecondition means an edge was fired for a record whose state is not
	// one of the edge's source states.
	ErrPrecondition = goerr.New("edge precondition not satisfied")

	ErrUnknownState    = goerr.New("unknown state")
	ErrRegistryCorrupt = goerr.New("registry is corrupt")
)
