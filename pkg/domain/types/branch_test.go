package types_test

import (
	"testing"

	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestNewBranchID(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect types.BranchID
	}{
		{name: "plain name", input: "main", expect: "main"},
		{name: "lowercased", input: "Feature-X", expect: "feature-x"},
		{name: "slash replaced", input: "feature/login", expect: "feature-login"},
		{name: "dots and underscores replaced", input: "release_1.2", expect: "release-1-2"},
		{name: "leading and trailing separators trimmed", input: "/wip/", expect: "wip"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.V(t, types.NewBranchID(tc.input)).Equal(tc.expect)
		})
	}
}

func TestCommitSHAShort(t *testing.T) {
	gt.V(t, types.CommitSHA("f7c8851da7c7fcc46212fccfb6c9c4bda520f1ca").Short()).Equal("f7c8851d")
	gt.V(t, types.CommitSHA("abc").Short()).Equal("abc")
}

func TestSecretTypesAreMasked(t *testing.T) {
	gt.V(t, types.GitHubToken("ghp_secret").String()).Equal("***********")
	gt.V(t, types.WebhookSecret("hook").String()).Equal("***********")
	gt.V(t, types.GitHubAppPrivateKey("pem").LogValue().String()).Equal("***********")
}
