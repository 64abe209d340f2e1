// Package store defines the canonical score record source and its errors.
package store

import (
	"context"

	"github.com/techSaswata/mentiby-admin/internal/domain/model"
)

// Fetcher provides read access to the full score record set.
//
// The store is an external collaborator: implementations may request an
// ordering, but callers must re-apply ranking locally rather than trust
// the returned order.
type Fetcher interface {
	// FetchAll returns every score record in the store.
	FetchAll(ctx context.Context) ([]model.ScoreRecord, error)
}
