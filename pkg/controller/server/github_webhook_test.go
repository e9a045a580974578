package server_test

import (
	"testing"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/branchsite/pkg/controller/server"
)

func TestRefToBranch(t *testing.T) {
	t.Run("strips refs/heads/ prefix", func(t *testing.T) {
		branch, ok := server.RefToBranchForTest("refs/heads/main")
		gt.True(t, ok)
		gt.V(t, branch).Equal("main")
	})

	t.Run("handles nested branch names", func(t *testing.T) {
		branch, ok := server.RefToBranchForTest("refs/heads/feature/my-branch")
		gt.True(t, ok)
		gt.V(t, branch).Equal("feature/my-branch")
	})

	t.Run("returns original if not refs/heads", func(t *testing.T) {
		branch, ok := server.RefToBranchForTest("refs/tags/v1.0.0")
		gt.False(t, ok)
		gt.V(t, branch).Equal("refs/tags/v1.0.0")
	})
}

func TestGitHubEventToPollReason(t *testing.T) {
	t.Run("push to branch", func(t *testing.T) {
		event := &github.PushEvent{Ref: github.String("refs/heads/dev")}
		gt.V(t, server.GitHubEventToPollReasonForTest(event)).Equal("push dev")
	})

	t.Run("branch created", func(t *testing.T) {
		event := &github.CreateEvent{Ref: github.String("dev"), RefType: github.String("branch")}
		gt.V(t, server.GitHubEventToPollReasonForTest(event)).Equal("create dev")
	})

	t.Run("tag created", func(t *testing.T) {
		event := &github.CreateEvent{Ref: github.String("v1"), RefType: github.String("tag")}
		gt.V(t, server.GitHubEventToPollReasonForTest(event)).Equal("")
	})

	t.Run("branch deleted", func(t *testing.T) {
		event := &github.DeleteEvent{Ref: github.String("dev"), RefType: github.String("branch")}
		gt.V(t, server.GitHubEventToPollReasonForTest(event)).Equal("delete dev")
	})

	t.Run("unsupported event", func(t *testing.T) {
		event := &github.IssuesEvent{}
		gt.V(t, server.GitHubEventToPollReasonForTest(event)).Equal("")
	})
}
