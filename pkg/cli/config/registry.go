package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/repository/file"
	"github.com/m-mizutani/branchsite/pkg/repository/firestore"
)

// Registry selects where branch records are persisted: a local JSON file by
// default, or Firestore when a project ID is given.
type Registry struct {
	path       string
	projectID  string
	databaseID string
	siteID     string
}

func (x *Registry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "registry-file",
			Usage:       "Branch registry file",
			Category:    "Registry",
			Value:       "branchsite.json",
			Sources:     cli.EnvVars("BRANCHSITE_REGISTRY_FILE"),
			Destination: &x.path,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID (optional, replaces the registry file)",
			Category:    "Registry",
			Sources:     cli.EnvVars("BRANCHSITE_FIRESTORE_PROJECT_ID"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Registry",
			Value:       "(default)",
			Sources:     cli.EnvVars("BRANCHSITE_FIRESTORE_DATABASE_ID"),
			Destination: &x.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-site-id",
			Usage:       "Firestore site document ID (default: owner:repo)",
			Category:    "Registry",
			Sources:     cli.EnvVars("BRANCHSITE_FIRESTORE_SITE_ID"),
			Destination: &x.siteID,
		},
	}
}

func (x *Registry) FirestoreEnabled() bool {
	return x.projectID != ""
}

// NewStore creates the branch store. The Firestore site ID defaults to
// owner:repo of the tracked repository.
func (x *Registry) NewStore(ctx context.Context, remote *Remote) (interfaces.BranchStore, error) {
	if !x.FirestoreEnabled() {
		if x.path == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "registry file is empty")
		}
		return file.New(x.path)
	}

	siteID := x.siteID
	if siteID == "" {
		id, err := firestore.ToSiteID(remote.Owner(), remote.Repo())
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "firestore site ID or GitHub owner/repo is required")
		}
		siteID = id
	}

	return firestore.New(ctx, x.projectID, x.databaseID, siteID)
}

func (x *Registry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Path", x.path),
		slog.String("FirestoreProjectID", x.projectID),
		slog.String("FirestoreDatabaseID", x.databaseID),
		slog.String("FirestoreSiteID", x.siteID),
	)
}
