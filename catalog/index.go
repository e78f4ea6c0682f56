package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// SizeRef is a frame size reachable from a frame type
type SizeRef struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// FrameTypeEntry is the indexed view of one frame type
type FrameTypeEntry struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Sizes []SizeRef
}

// Index is a read-only snapshot of frame types keyed by id
type Index map[string]FrameTypeEntry

// SizeIDs returns the size ids of a frame type and whether it was found
func (idx Index) SizeIDs(frameTypeID string) ([]string, bool) {
	entry, ok := idx[frameTypeID]
	if !ok {
		return nil, false
	}
	ids := make([]string, 0, len(entry.Sizes))
	for _, s := range entry.Sizes {
		ids = append(ids, s.ID)
	}
	return ids, true
}

// Loader batch-loads frame types together with their sizes in one read
type Loader interface {
	LoadFrameTypesWithSizes(ctx context.Context, ids []string) (Index, error)
}
