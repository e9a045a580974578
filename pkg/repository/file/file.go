package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/repository"
	"github.com/m-mizutani/branchsite/pkg/utils/fsutil"
)

const formatVersion = 1

type document struct {
	Version  int                   `json:"version"`
	Branches []*model.BranchRecord `json:"branches"`
}

// branchStore keeps the registry in one JSON file that is replaced
// atomically on every Save.
type branchStore struct {
	path string
}

func New(path string) (interfaces.BranchStore, error) {
	if path == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "registry file path is empty")
	}
	return &branchStore{path: filepath.Clean(path)}, nil
}

// Load returns no records when the file does not exist yet.
func (r *branchStore) Load(ctx context.Context) ([]*model.BranchRecord, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*model.BranchRecord{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read registry file", goerr.V("path", r.path))
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, goerr.Wrap(errors.Join(types.ErrRegistryCorrupt, err), "failed to parse registry file",
			goerr.V("path", r.path))
	}
	if doc.Version != formatVersion {
		return nil, goerr.Wrap(types.ErrRegistryCorrupt, "unsupported registry format version",
			goerr.V("path", r.path),
			goerr.V("version", doc.Version),
		)
	}
	if err := repository.ValidateRecords(doc.Branches); err != nil {
		return nil, goerr.Wrap(errors.Join(types.ErrRegistryCorrupt, err), "invalid registry records",
			goerr.V("path", r.path))
	}

	return doc.Branches, nil
}

func (r *branchStore) Save(ctx context.Context, records []*model.BranchRecord) error {
	if err := repository.ValidateRecords(records); err != nil {
		return err
	}

	sorted := make([]*model.BranchRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	raw, err := json.MarshalIndent(document{Version: formatVersion, Branches: sorted}, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal registry")
	}

	return fsutil.WriteFile(r.path, raw, 0644)
}
