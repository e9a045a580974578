package repository

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
)

// ValidateRecords checks records before they are persisted. Stores call it
// at the top of Save.
func ValidateRecords(records []*model.BranchRecord) error {
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		if rec == nil {
			return goerr.Wrap(ErrInvalidInput, "record is nil", goerr.V("index", i))
		}
		if rec.ID == "" {
			return goerr.Wrap(ErrInvalidInput, "record ID is empty", goerr.V("index", i))
		}
		if _, ok := seen[rec.ID.String()]; ok {
			return goerr.Wrap(ErrInvalidInput, "duplicated record ID", goerr.V("id", rec.ID))
		}
		seen[rec.ID.String()] = struct{}{}
	}
	return nil
}
