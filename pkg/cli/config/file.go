package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/m-mizutani/branchsite/pkg/domain/types"
)

// File is the site configuration file. Keys are compatible with
// buildConfig.json, and JSON is accepted since it is valid YAML. Values given
// on the command line take precedence.
type File struct {
	DomainNames          []string `yaml:"domain_names"`
	ProductionBranch     string   `yaml:"production_branch"`
	RepoOwner            string   `yaml:"repo_owner_username"`
	RepoName             string   `yaml:"repo_name"`
	SecondsBetweenBuilds int      `yaml:"seconds_between_builds"`

	RemoteURL    string `yaml:"remote_url"`
	BuildCommand string `yaml:"build_command"`
	BuildOutput  string `yaml:"build_output"`
	WorkDir      string `yaml:"work_dir"`
	ServeDir     string `yaml:"serve_dir"`
	ProxyConfDir string `yaml:"proxy_conf_dir"`
}

// LoadFile reads the configuration file at path. An empty path yields an
// empty configuration.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to parse config file",
			goerr.V("path", path),
			goerr.V("error", err.Error()),
		)
	}

	return &file, nil
}

func orString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
