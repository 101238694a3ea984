// Package flowstore defines the snapshot slot that keeps an in-progress
// purchase alive across requests. One slot per project id, single writer
// (the purchase service); there is no cross-slot coordination contract.
package flowstore

import (
	"context"

	"github.com/propvest/propvest/pkg/domain/flow"
)

// Key prefixes of the slots this store manages. ClearAll removes both; the
// billing prefix is written by the receipt pipeline and shares the store's
// lifecycle.
const (
	StateKeyPrefix   = "purchaseState_"
	BillingKeyPrefix = "billingInfo_"
)

// Store persists full purchase flow snapshots keyed by project id.
type Store interface {
	// Load returns the snapshot for the project, or nil when none exists.
	Load(ctx context.Context, projectID string) (*flow.State, error)

	// Save writes a full snapshot, replacing any previous one.
	Save(ctx context.Context, state *flow.State) error

	// Delete removes the project's snapshot. Deleting an absent snapshot is
	// not an error.
	Delete(ctx context.Context, projectID string) error

	// ClearAll removes every purchase-state and billing-info slot.
	ClearAll(ctx context.Context) error
}

// StateKey names the slot of one project's snapshot.
func StateKey(projectID string) string {
	return StateKeyPrefix + projectID
}
