package types

import "strings"

type (
	// BranchID is the case-normalized branch name. It is used as registry key,
	// workspace directory name and DNS label of the complete domain name.
	BranchID  string
	CommitSHA string
	State     string
	EdgeName  string
)

const (
	StateUncloned  State = "uncloned"
	StateOutOfDate State = "out_of_date"
	StateCloned    State = "cloned"
	StateBuilt     State = "built"
	StateDeployed  State = "deployed"
	StateOrphaned  State = "orphaned"
	StateRemoved   State = "removed"
)

// AllStates returns the states of the branch lifecycle in declaration order.
func AllStates() []State {
	return []State{
		StateUncloned,
		StateOutOfDate,
		StateCloned,
		StateBuilt,
		StateDeployed,
		StateOrphaned,
		StateRemoved,
	}
}

const (
	EdgeClone  EdgeName = "clone"
	EdgePull   EdgeName = "pull"
	EdgeBuild  EdgeName = "build"
	EdgeDeploy EdgeName = "deploy"
	EdgeRemove EdgeName = "remove"
)

func (x BranchID) String() string  { return string(x) }
func (x CommitSHA) String() string { return string(x) }
func (x State) String() string     { return string(x) }
func (x EdgeName) String() string  { return string(x) }

// Short returns the abbreviated commit hash for log output.
func (x CommitSHA) Short() string {
	if len(x) > 8 {
		return string(x[:8])
	}
	return string(x)
}

// NewBranchID normalizes a remote branch name. The name is lowercased and every
// character that is not allowed in a DNS label is replaced with '-'.
func NewBranchID(name string) BranchID {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	return BranchID(strings.Trim(b.String(), "-"))
}
