package bridge

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/repositories/characters"
)

// pendingWrite is a character write-back captured under the lock
type pendingWrite struct {
	handle      string
	characterID string
	version     uint64
	update      *characters.Update
}

// markDirty queues a write-back for character-backed entities; s.mu must be held.
// With AutoSync the write is dispatched right away.
func (s *service) markDirty(ctx context.Context, handle string) {
	meta, ok := s.meta[handle]
	if !ok || meta.kind != combat.KindCharacter {
		return
	}

	s.version++
	s.pending[handle] = s.version

	if s.autoSync {
		go func() {
			_ = s.syncHandle(context.WithoutCancel(ctx), handle)
		}()
	}
}

// pendingWriteLocked snapshots the fields the character store owns; s.mu must be held
func (s *service) pendingWriteLocked(handle string) *pendingWrite {
	h := s.health[handle]
	names := s.conditionNames(s.meta[handle].ref)

	update := characters.HitPointsUpdate(h.Current, h.Max, h.Temporary)
	update.Conditions = &names

	return &pendingWrite{
		handle:      handle,
		characterID: s.meta[handle].sourceID,
		version:     s.pending[handle],
		update:      update,
	}
}

func (s *service) writeLock(handle string) *sync.Mutex {
	s.writeLocksMu.Lock()
	defer s.writeLocksMu.Unlock()

	lock, ok := s.writeLocks[handle]
	if !ok {
		lock = &sync.Mutex{}
		s.writeLocks[handle] = lock
	}
	return lock
}

func (s *service) dropWriteLock(handle string) {
	s.writeLocksMu.Lock()
	delete(s.writeLocks, handle)
	s.writeLocksMu.Unlock()
}

// syncHandle writes the entity's current state back. Writes for one handle are
// serialized and snapshot when they run, so a later write never carries older state.
// Failures are logged and the entry stays pending.
func (s *service) syncHandle(ctx context.Context, handle string) error {
	lock := s.writeLock(handle)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	_, dirty := s.pending[handle]
	_, exists := s.meta[handle]
	if !dirty || !exists {
		// an earlier write already carried this change, or the entity left
		s.mu.RUnlock()
		return nil
	}
	write := s.pendingWriteLocked(handle)
	s.mu.RUnlock()

	if err := s.store(ctx, write); err != nil {
		return err
	}

	s.mu.Lock()
	// a newer change may have landed while this write was in flight
	if v, ok := s.pending[write.handle]; ok && v == write.version {
		delete(s.pending, write.handle)
	}
	s.mu.Unlock()
	return nil
}

// sendFinal writes the last state of a removed entity after any write still in flight
func (s *service) sendFinal(ctx context.Context, write *pendingWrite) {
	lock := s.writeLock(write.handle)
	lock.Lock()
	_ = s.store(ctx, write)
	lock.Unlock()

	s.dropWriteLock(write.handle)
}

func (s *service) store(ctx context.Context, write *pendingWrite) error {
	_, err := s.characterStore.Update(ctx, write.characterID, s.actorID, write.update)
	if err != nil {
		log.Printf("[SYNC] failed to sync character %s: %v", write.characterID, err)
		return err
	}
	return nil
}

func (s *service) SyncAllToServices(ctx context.Context) error {
	s.mu.RLock()
	handles := make([]string, 0, len(s.pending))
	for handle := range s.pending {
		handles = append(handles, handle)
	}
	s.mu.RUnlock()

	if len(handles) == 0 {
		return nil
	}

	var (
		errMu sync.Mutex
		errs  []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.syncConcurrency)
	for _, handle := range handles {
		g.Go(func() error {
			if err := s.syncHandle(gctx, handle); err != nil {
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
			}
			// keep flushing the rest; errors are joined below
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		log.Printf("[SYNC] %d of %d write-backs failed", len(errs), len(handles))
	}
	return errors.Join(errs...)
}

func (s *service) PendingSyncs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.pending))
	for handle := range s.pending {
		ids = append(ids, s.meta[handle].sourceID)
	}
	sort.Strings(ids)
	return ids
}
