package model

// BranchStatus is the externally visible view of a branch record.
type BranchStatus struct {
	BranchRecord
	Domains []string `json:"domains"`
}

// ProxySite is the input of a proxy configuration for one complete domain.
type ProxySite struct {
	CompleteDomainName string
	HTMLDir            string
	BranchID           string
}
