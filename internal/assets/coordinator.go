package assets

import (
	"context"
	"log"
)

// Coordinator issues store deletions for assets a record no longer
// references. Deletion is best-effort: a failed store call is logged and
// swallowed, never failing or delaying the database write it accompanies.
// A dangling remote asset is a recoverable leak; a blocked edit is not.
type Coordinator struct {
	store Store
}

func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store}
}

// SupersededRef reports the deletion handle freed when a single-asset field
// is replaced: the new payload carries a non-empty URL different from the
// old record's, and the old record held a handle.
func SupersededRef(oldURL, oldPublicID, newURL string) (string, bool) {
	if newURL != "" && newURL != oldURL && oldPublicID != "" {
		return oldPublicID, true
	}
	return "", false
}

// SupersededHandles returns the handles present in old but not in new,
// compared by identity, not position.
func SupersededHandles(old, new []string) []string {
	keep := make(map[string]struct{}, len(new))
	for _, h := range new {
		keep[h] = struct{}{}
	}

	var superseded []string
	for _, h := range old {
		if _, ok := keep[h]; !ok {
			superseded = append(superseded, h)
		}
	}
	return superseded
}

// Cleanup deletes each handle from the store. Failures are logged and
// swallowed.
func (c *Coordinator) Cleanup(ctx context.Context, kind Kind, publicIDs ...string) {
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		if err := c.store.Delete(ctx, id, kind); err != nil {
			log.Printf("asset cleanup: failed to delete %s %q: %v", kind, id, err)
		}
	}
}
