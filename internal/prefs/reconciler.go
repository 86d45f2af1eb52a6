package prefs

import (
	"context"
	"errors"
	"log"
	"time"
)

// Reconciler merges the local file store with the optional cloud store.
// Policy: cloud wins on load when a document exists, the local copy serves
// otherwise, and writes land locally first with a background sync to the
// cloud. Conflicts resolve last-write-wins on UpdatedAt.
type Reconciler struct {
	local  Store
	remote Store // nil when no cloud store is configured

	// syncTimeout bounds background cloud operations.
	syncTimeout time.Duration

	// synced, when non-nil, is signalled after each background sync. Tests
	// use it to wait for the goroutine.
	synced chan struct{}
}

// NewReconciler creates a Reconciler. remote may be nil.
func NewReconciler(local Store, remote Store) *Reconciler {
	return &Reconciler{
		local:       local,
		remote:      remote,
		syncTimeout: 10 * time.Second,
	}
}

// Load resolves the user's preferences. A cloud document wins and is copied
// back to the local cache; otherwise the local copy is returned and pushed
// to the cloud in the background so the two converge.
func (r *Reconciler) Load(ctx context.Context, userID string) (Preferences, error) {
	if r.remote != nil {
		remote, err := r.remote.Load(ctx, userID)
		switch {
		case err == nil:
			if saveErr := r.local.Save(ctx, userID, remote); saveErr != nil {
				log.Printf("prefs: local write-back failed for %s: %v", userID, saveErr)
			}
			return remote, nil
		case errors.Is(err, ErrNotFound):
			// Fall through to the local copy.
		default:
			// Cloud outage degrades to local-only.
			log.Printf("prefs: cloud load failed for %s: %v", userID, err)
		}
	}

	local, err := r.local.Load(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}

	if r.remote != nil {
		r.syncRemote(userID, local)
	}
	return local, nil
}

// Save persists the preferences locally, stamping UpdatedAt, and syncs the
// cloud copy in the background. The local write is the optimistic one: the
// caller gets its result without waiting on the cloud.
func (r *Reconciler) Save(ctx context.Context, userID string, p Preferences) (Preferences, error) {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	if err := r.local.Save(ctx, userID, p); err != nil {
		return Preferences{}, err
	}

	if r.remote != nil {
		r.syncRemote(userID, p)
	}
	return p, nil
}

// syncRemote pushes p to the cloud store unless the cloud copy is newer.
func (r *Reconciler) syncRemote(userID string, p Preferences) {
	go func() {
		defer func() {
			if r.synced != nil {
				r.synced <- struct{}{}
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.syncTimeout)
		defer cancel()

		current, err := r.remote.Load(ctx, userID)
		if err == nil && current.UpdatedAt.After(p.UpdatedAt) {
			// Cloud copy is newer; last write wins.
			return
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			log.Printf("prefs: cloud read before sync failed for %s: %v", userID, err)
			return
		}

		if err := r.remote.Save(ctx, userID, p); err != nil {
			log.Printf("prefs: cloud sync failed for %s: %v", userID, err)
		}
	}()
}
