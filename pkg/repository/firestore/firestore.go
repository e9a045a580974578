package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/repository"
)

const (
	collectionSite   = "site"
	collectionBranch = "branches"
	batchSize        = 500
)

type branchStore struct {
	client *firestore.Client
	siteID string
}

// New creates a Firestore-based branch store. Records are kept under
// site/{siteID}/branches/{branchID}.
func New(ctx context.Context, projectID, databaseID, siteID string) (interfaces.BranchStore, error) {
	if siteID == "" || strings.Contains(siteID, "/") {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid Firestore site ID", goerr.V("siteID", siteID))
	}

	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &branchStore{
		client: client,
		siteID: siteID,
	}, nil
}

// ToSiteID converts owner and repo to a Firestore-safe document ID.
// GitHub owner names cannot contain colons.
func ToSiteID(owner, repo string) (string, error) {
	if owner == "" || repo == "" {
		return "", goerr.Wrap(repository.ErrInvalidInput, "owner or repo is empty",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	if strings.Contains(owner, ":") || strings.Contains(repo, ":") {
		return "", goerr.Wrap(repository.ErrInvalidInput, "owner or repo contains invalid character ':'",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	return owner + ":" + repo, nil
}

func (r *branchStore) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionSite).Doc(r.siteID).Collection(collectionBranch)
}

func (r *branchStore) Load(ctx context.Context) ([]*model.BranchRecord, error) {
	iter := r.collection().Documents(ctx)
	defer iter.Stop()

	records := []*model.BranchRecord{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate branches", goerr.V("siteID", r.siteID))
		}

		var rec model.BranchRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, goerr.Wrap(errors.Join(types.ErrRegistryCorrupt, err), "failed to decode branch",
				goerr.V("siteID", r.siteID),
				goerr.V("docID", doc.Ref.ID),
			)
		}
		if rec.ID.String() != doc.Ref.ID {
			return nil, goerr.Wrap(types.ErrRegistryCorrupt, "branch ID does not match document ID",
				goerr.V("siteID", r.siteID),
				goerr.V("docID", doc.Ref.ID),
				goerr.V("id", rec.ID),
			)
		}
		records = append(records, &rec)
	}

	return records, nil
}

// Save writes every record and deletes documents of records that are gone.
func (r *branchStore) Save(ctx context.Context, records []*model.BranchRecord) error {
	if err := repository.ValidateRecords(records); err != nil {
		return err
	}

	keep := make(map[string]struct{}, len(records))
	for _, rec := range records {
		keep[rec.ID.String()] = struct{}{}
	}

	refs, err := r.collection().DocumentRefs(ctx).GetAll()
	if err != nil {
		return goerr.Wrap(err, "failed to list branch documents", goerr.V("siteID", r.siteID))
	}

	type write struct {
		ref *firestore.DocumentRef
		rec *model.BranchRecord
	}
	var writes []write
	for _, rec := range records {
		writes = append(writes, write{ref: r.collection().Doc(rec.ID.String()), rec: rec})
	}
	for _, ref := range refs {
		if _, ok := keep[ref.ID]; !ok {
			writes = append(writes, write{ref: ref})
		}
	}

	// Process in batches of 500 (Firestore limit)
	for i := 0; i < len(writes); i += batchSize {
		end := min(i+batchSize, len(writes))

		batch := r.client.Batch()
		for _, w := range writes[i:end] {
			if w.rec == nil {
				batch.Delete(w.ref)
			} else {
				batch.Set(w.ref, w.rec)
			}
		}

		if _, err := batch.Commit(ctx); err != nil {
			return goerr.Wrap(err, "failed to save branches",
				goerr.V("siteID", r.siteID),
				goerr.V("batchStart", i),
				goerr.V("batchEnd", end),
			)
		}
	}

	return nil
}
