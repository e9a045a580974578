package proxyconf_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/branchsite/pkg/domain/mock"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/infra/proxyconf"
)

func TestWriteAndRemove(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	client := gt.R1(proxyconf.New(dir)).NoError(t)

	site := &model.ProxySite{
		CompleteDomainName: "feature-x.example.com",
		HTMLDir:            "/srv/www/feature-x.example.com/html",
		BranchID:           "feature-x",
	}
	gt.NoError(t, client.Write(ctx, site))

	body := string(gt.R1(os.ReadFile(filepath.Join(dir, "feature-x.example.com.conf"))).NoError(t))
	gt.S(t, body).Contains("server_name feature-x.example.com;")
	gt.S(t, body).Contains("root /srv/www/feature-x.example.com/html;")

	gt.NoError(t, client.Remove(ctx, "feature-x.example.com"))
	_, err := os.Stat(filepath.Join(dir, "feature-x.example.com.conf"))
	gt.True(t, os.IsNotExist(err))

	gt.NoError(t, client.Remove(ctx, "feature-x.example.com"))
}

func TestCustomTemplate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tmplPath := filepath.Join(t.TempDir(), "caddy.tmpl")
	gt.NoError(t, os.WriteFile(tmplPath, []byte("{{ .COMPLETE_DOMAIN_NAME }} { root * {{ .SITE_HTML_DIR }} }\n"), 0644))

	client := gt.R1(proxyconf.New(dir, proxyconf.WithTemplateFile(tmplPath))).NoError(t)
	gt.NoError(t, client.Write(ctx, &model.ProxySite{CompleteDomainName: "example.com", HTMLDir: "/srv/html"}))

	body := gt.R1(os.ReadFile(filepath.Join(dir, "example.com.conf"))).NoError(t)
	gt.Equal(t, string(body), "example.com { root * /srv/html }\n")
}

func TestInvalidTemplate(t *testing.T) {
	tmplPath := filepath.Join(t.TempDir(), "broken.tmpl")
	gt.NoError(t, os.WriteFile(tmplPath, []byte("{{ .COMPLETE_DOMAIN_NAME "), 0644))

	_, err := proxyconf.New(t.TempDir(), proxyconf.WithTemplateFile(tmplPath))
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	runner := &mock.CommandRunnerMock{
		RunFunc: func(ctx context.Context, dir string, commandLine string) error { return nil },
	}

	t.Run("runs configured command", func(t *testing.T) {
		client := gt.R1(proxyconf.New(t.TempDir(), proxyconf.WithReload("nginx -s reload", runner))).NoError(t)
		gt.NoError(t, client.Reload(ctx))
		gt.Equal(t, len(runner.RunCalls()), 1)
		gt.Equal(t, runner.RunCalls()[0].CommandLine, "nginx -s reload")
	})

	t.Run("no command is a no-op", func(t *testing.T) {
		client := gt.R1(proxyconf.New(t.TempDir())).NoError(t)
		gt.NoError(t, client.Reload(ctx))
	})
}
