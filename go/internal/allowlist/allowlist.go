package allowlist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/mcdev12/matchclock/go/internal/settings"
	"github.com/rs/zerolog/log"
)

// Allowlist is the set of logins allowed to use the emergency extension.
// Membership lives in memory; mutations go through a read-modify-write of
// the configuration document.
type Allowlist struct {
	store settings.DocumentStore

	mu      sync.RWMutex
	members []string // storage order, used for listing
	index   map[string]struct{}
}

// New creates an allowlist seeded with ids, typically the snapshot's
// whitelist. Call Reload to re-read storage.
func New(store settings.DocumentStore, ids []string) *Allowlist {
	a := &Allowlist{store: store}
	a.replace(ids)
	return a
}

// Contains reports whether id is a member.
func (a *Allowlist) Contains(id string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.index[strings.TrimSpace(id)]
	return ok
}

// Members returns the members in storage order.
func (a *Allowlist) Members() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.members)
}

// Add appends id to the stored whitelist and to the in-memory set.
func (a *Allowlist) Add(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.index[id]; ok {
		return ErrAlreadyPresent
	}

	doc, err := a.loadDocument(ctx)
	if err != nil {
		return err
	}
	stored := doc.Whitelist()
	if !slices.Contains(stored, id) {
		stored = append(stored, id)
	}
	if err := a.saveWhitelist(ctx, doc, stored); err != nil {
		return err
	}

	a.replaceLocked(stored)
	log.Info().Str("login", id).Int("members", len(a.members)).Msg("added login to allowlist")
	return nil
}

// Remove deletes the first stored entry matching id.
func (a *Allowlist) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.index[id]; !ok {
		return ErrNotPresent
	}

	doc, err := a.loadDocument(ctx)
	if err != nil {
		return err
	}
	stored := doc.Whitelist()
	if i := slices.Index(stored, id); i >= 0 {
		stored = slices.Delete(stored, i, i+1)
	}
	if err := a.saveWhitelist(ctx, doc, stored); err != nil {
		return err
	}

	a.replaceLocked(stored)
	log.Info().Str("login", id).Int("members", len(a.members)).Msg("removed login from allowlist")
	return nil
}

// Reload re-reads the stored whitelist, discarding in-memory state.
func (a *Allowlist) Reload(ctx context.Context) error {
	doc, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload allowlist: %w", err)
	}
	ids := doc.Whitelist()

	a.mu.Lock()
	a.replaceLocked(ids)
	a.mu.Unlock()

	log.Info().Int("members", len(ids)).Msg("reloaded allowlist")
	return nil
}

func (a *Allowlist) loadDocument(ctx context.Context) (*settings.Document, error) {
	doc, err := a.store.Load(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		return settings.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load allowlist: %w", err)
	}
	return doc, nil
}

func (a *Allowlist) saveWhitelist(ctx context.Context, doc *settings.Document, ids []string) error {
	if err := doc.SetWhitelist(ids); err != nil {
		return fmt.Errorf("failed to update allowlist: %w", err)
	}
	if err := a.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save allowlist: %w", err)
	}
	return nil
}

func (a *Allowlist) replace(ids []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.replaceLocked(ids)
}

func (a *Allowlist) replaceLocked(ids []string) {
	a.members = slices.Clone(ids)
	a.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := a.index[id]; dup {
			log.Warn().Str("login", id).Msg("duplicate allowlist entry")
		}
		a.index[id] = struct{}{}
	}
}
