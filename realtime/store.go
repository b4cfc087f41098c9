// Package realtime wraps the backing document store behind a small
// subscribe/get/write surface. Subscriptions deliver the entire current
// value of a collection on every change, not a delta: consumers treat each
// callback as authoritative-as-of-now and recompute derived state wholesale.
package realtime

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned by GetOne when no document has the given id.
var ErrNotFound = errors.New("realtime: document not found")

// Snapshot is the complete current value of a collection, keyed by
// document id. Values are raw BSON documents; consumers decode and skip
// anything malformed rather than failing the whole snapshot.
type Snapshot map[string]bson.Raw

// SnapshotFunc receives a full snapshot on every change.
type SnapshotFunc func(Snapshot)

// ErrorFunc receives subscription transport errors. Connectivity failures
// are surfaced here as a state distinct from an empty snapshot.
type ErrorFunc func(error)

// Unsubscribe cancels a subscription. After it returns no further
// callbacks are started; a callback already in flight may still complete.
type Unsubscribe func()

// Store is the document-store contract. No ordering or transaction
// guarantees exist beyond last-write-wins per document; in particular a
// reader can observe one collection mid-update relative to another.
type Store interface {
	Subscribe(ctx context.Context, collection string, fn SnapshotFunc, onErr ErrorFunc) (Unsubscribe, error)
	Get(ctx context.Context, collection string) (Snapshot, error)
	GetOne(ctx context.Context, collection, id string) (bson.Raw, error)
	Write(ctx context.Context, collection, id string, value interface{}) error
	// Update applies a partial $set; keys may use dotted paths such as
	// "variants.0.stockQty".
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Remove(ctx context.Context, collection, id string) error
}
