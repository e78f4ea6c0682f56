package catalog

import (
	"context"
	"fmt"
	"log"
)

// ResolutionKind tags the outcome of resolving one frame type id
type ResolutionKind int

const (
	Resolved ResolutionKind = iota
	Skipped
)

func (k ResolutionKind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("ResolutionKind(%d)", int(k))
	}
}

// Resolution is the per-id result of size resolution. Sizes is empty when Kind is Skipped.
type Resolution struct {
	Kind        ResolutionKind
	FrameTypeID string
	Sizes       []string
}

// Resolve expands every requested frame type id against the snapshot.
// Repeated ids are resolved once.
func (idx Index) Resolve(frameTypeIDs []string) []Resolution {
	seen := make(map[string]struct{}, len(frameTypeIDs))
	out := make([]Resolution, 0, len(frameTypeIDs))
	for _, id := range frameTypeIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		sizes, ok := idx.SizeIDs(id)
		if !ok {
			out = append(out, Resolution{Kind: Skipped, FrameTypeID: id})
			continue
		}
		out = append(out, Resolution{Kind: Resolved, FrameTypeID: id, Sizes: sizes})
	}
	return out
}

// Union merges resolutions into a set of size ids keyed by identifier,
// preserving first-seen order. Skipped resolutions contribute nothing.
func Union(resolutions []Resolution) []string {
	seen := make(map[string]struct{})
	sizes := []string{}
	for _, r := range resolutions {
		if r.Kind != Resolved {
			continue
		}
		for _, id := range r.Sizes {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			sizes = append(sizes, id)
		}
	}
	return sizes
}

// ResolveSizes returns the deduplicated union of size ids reachable from frameTypeIDs.
// Unknown frame type ids are ignored.
func ResolveSizes(idx Index, frameTypeIDs []string) []string {
	return Union(idx.Resolve(frameTypeIDs))
}

// SizeResolver loads a fresh snapshot per call and resolves derived sizes
type SizeResolver struct {
	loader Loader
}

// NewSizeResolver creates a new SizeResolver
func NewSizeResolver(loader Loader) *SizeResolver {
	return &SizeResolver{loader: loader}
}

// ResolveSizes loads the requested frame types and returns their derived sizes.
// Unknown frame type ids are logged and skipped, never reported as errors.
func (r *SizeResolver) ResolveSizes(ctx context.Context, frameTypeIDs []string) ([]string, error) {
	if len(frameTypeIDs) == 0 {
		return []string{}, nil
	}

	idx, err := r.loader.LoadFrameTypesWithSizes(ctx, frameTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load frame types: %w", err)
	}

	resolutions := idx.Resolve(frameTypeIDs)
	for _, res := range resolutions {
		if res.Kind == Skipped {
			log.Printf("⚠️  ResolveSizes: frame type %s not found, contributes no sizes", res.FrameTypeID)
		}
	}

	return Union(resolutions), nil
}
