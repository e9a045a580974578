package proxyconf

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/utils/fsutil"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

//go:embed nginx.conf.tmpl
var defaultTemplate string

// Client writes one reverse proxy configuration file per complete domain into
// a directory and optionally runs a reload command.
type Client struct {
	dir    string
	tmpl   *template.Template
	reload string
	runner interfaces.CommandRunner
}

var _ interfaces.ProxyConfig = (*Client)(nil)

type Option func(*Client) error

// WithTemplateFile replaces the built-in nginx server block template.
func WithTemplateFile(path string) Option {
	return func(x *Client) error {
		raw, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return goerr.Wrap(err, "failed to read proxy template", goerr.V("path", path))
		}
		tmpl, err := template.New(filepath.Base(path)).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return goerr.Wrap(errors.Join(types.ErrInvalidOption, err), "failed to parse proxy template", goerr.V("path", path))
		}
		x.tmpl = tmpl
		return nil
	}
}

// WithReload runs commandLine after configuration changes.
func WithReload(commandLine string, runner interfaces.CommandRunner) Option {
	return func(x *Client) error {
		x.reload = commandLine
		x.runner = runner
		return nil
	}
}

func New(dir string, options ...Option) (*Client, error) {
	if dir == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "proxy config directory is empty")
	}

	client := &Client{
		dir:  dir,
		tmpl: template.Must(template.New("nginx").Option("missingkey=error").Parse(defaultTemplate)),
	}
	for _, opt := range options {
		if err := opt(client); err != nil {
			return nil, err
		}
	}
	if client.reload != "" && client.runner == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "reload command requires a runner")
	}

	return client, nil
}

func (x *Client) path(completeDomain string) string {
	return filepath.Join(x.dir, completeDomain+".conf")
}

func (x *Client) Write(ctx context.Context, site *model.ProxySite) error {
	var buf bytes.Buffer
	data := map[string]string{
		"SITE_HTML_DIR":        site.HTMLDir,
		"COMPLETE_DOMAIN_NAME": site.CompleteDomainName,
		"BRANCH_ID":            site.BranchID,
	}
	if err := x.tmpl.Execute(&buf, data); err != nil {
		return goerr.Wrap(err, "failed to render proxy config", goerr.V("domain", site.CompleteDomainName))
	}

	path := x.path(site.CompleteDomainName)
	if err := fsutil.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}

	logging.From(ctx).Debug("Wrote proxy config",
		slog.String("domain", site.CompleteDomainName),
		slog.String("path", path),
	)
	return nil
}

// Remove deletes the configuration of completeDomain. A missing file is not
// an error.
func (x *Client) Remove(ctx context.Context, completeDomain string) error {
	path := x.path(completeDomain)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goerr.Wrap(err, "failed to remove proxy config", goerr.V("path", path))
	}
	return nil
}

func (x *Client) Reload(ctx context.Context) error {
	if x.reload == "" {
		return nil
	}
	if err := x.runner.Run(ctx, x.dir, x.reload); err != nil {
		return goerr.Wrap(err, "failed to reload proxy", goerr.V("command", x.reload))
	}
	logging.From(ctx).Info("Reloaded proxy", slog.String("command", x.reload))
	return nil
}
