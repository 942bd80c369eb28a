// Package vault implements the data model and invariants layer on top of a
// storage backend: well-formed idea construction, single-active enforcement,
// cascade deletes, search/sort, daily review, and settings access.
//
// The service keeps an in-memory read replica of all ideas. The replica is
// never patched in place; it is reloaded from durable storage after every
// mutation, so it is never trusted as source of truth across sessions.
package vault

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// Seeder is implemented by backends that support first-run bootstrap.
type Seeder interface {
	SeedStarterIdea() (bool, error)
}

// SaveOptions control invariant handling in SaveIdea.
type SaveOptions struct {
	// BypassActiveCheck skips single-active enforcement. Used by call sites
	// that already know the invariant holds: demotions and bootstrap.
	// Without it, demoting the previous active idea would recursively
	// re-trigger the check.
	BypassActiveCheck bool

	// DemoteTo is the bucket the previous active idea is moved to when the
	// incoming idea takes the active slot (parked or long_term). When empty
	// and another idea is active, SaveIdea returns ErrActiveConflict so the
	// caller can choose.
	DemoteTo string
}

// Service wraps a Vault with the idea-management invariants.
type Service struct {
	vault types.Vault
	ideas []*types.Idea // read replica, reloaded after every mutation

	// autosave coalesces rapid edits to the same idea into one write.
	autosave *Autosave

	// now is the clock, overridable in tests.
	now func() time.Time
}

// NewService creates a Service over an attached vault and loads the read
// replica.
func NewService(v types.Vault) (*Service, error) {
	s := &Service{
		vault: v,
		now:   time.Now,
	}
	s.autosave = NewAutosave(DefaultAutosaveInterval, func(idea *types.Idea) error {
		_, err := s.SaveIdea(idea, SaveOptions{})
		return err
	})
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// ScheduleSave queues a debounced write of the idea. Successive calls for
// the same idea within the quiet period coalesce into one SaveIdea.
func (s *Service) ScheduleSave(idea *types.Idea) {
	s.autosave.Schedule(idea)
}

// Flush persists every pending debounced edit immediately. Call before the
// process exits so no scheduled write is lost.
func (s *Service) Flush() error {
	return s.autosave.Flush()
}

// Reload refreshes the read replica from durable storage.
func (s *Service) Reload() error {
	table, err := s.vault.GetTable(types.IdeasTable)
	if err != nil {
		return err
	}
	entities, err := table.Fetch(nil)
	if err != nil {
		return fmt.Errorf("loading ideas: %w", err)
	}

	ideas := make([]*types.Idea, 0, len(entities))
	for _, e := range entities {
		idea, ok := e.(*types.Idea)
		if !ok {
			return types.ErrInvalidData
		}
		ideas = append(ideas, idea)
	}
	s.ideas = ideas
	return nil
}

// Ideas returns the read replica, optionally restricted to one bucket.
// An empty bucket returns every idea. The returned slice is a copy; the
// pointed-to records are shared and must not be mutated outside SaveIdea.
func (s *Service) Ideas(bucket string) []*types.Idea {
	result := make([]*types.Idea, 0, len(s.ideas))
	for _, idea := range s.ideas {
		if bucket == "" || idea.Bucket == bucket {
			result = append(result, idea)
		}
	}
	return result
}

// Get retrieves a single idea from durable storage.
func (s *Service) Get(id string) (*types.Idea, error) {
	table, err := s.vault.GetTable(types.IdeasTable)
	if err != nil {
		return nil, err
	}
	entity, err := table.Get(id)
	if err != nil {
		return nil, err
	}
	idea, ok := entity.(*types.Idea)
	if !ok {
		return nil, types.ErrInvalidData
	}
	return idea, nil
}

// ErrAmbiguousID reports an ID prefix matching more than one idea.
var ErrAmbiguousID = errors.New("idea ID prefix is ambiguous")

// Find retrieves an idea by full ID or by a unique ID prefix, so the short
// IDs printed in list output can be pasted back into any command. Returns
// ErrNotFound when nothing matches and ErrAmbiguousID when the prefix
// matches more than one idea.
func (s *Service) Find(ref string) (*types.Idea, error) {
	if ref == "" {
		return nil, types.ErrInvalidID
	}
	idea, err := s.Get(ref)
	if err == nil {
		return idea, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	var match *types.Idea
	for _, candidate := range s.ideas {
		if strings.HasPrefix(candidate.IdeaID, ref) {
			if match != nil {
				return nil, ErrAmbiguousID
			}
			match = candidate
		}
	}
	if match == nil {
		return nil, types.ErrNotFound
	}
	return s.Get(match.IdeaID)
}

// ActiveIdea returns the current active idea, or nil if no idea is active.
func (s *Service) ActiveIdea() (*types.Idea, error) {
	table, err := s.vault.GetTable(types.IdeasTable)
	if err != nil {
		return nil, err
	}
	entities, err := table.Fetch(types.Filter{"bucket": types.BucketActive})
	if err != nil {
		return nil, fmt.Errorf("querying active idea: %w", err)
	}
	if len(entities) == 0 {
		return nil, nil
	}
	idea, ok := entities[0].(*types.Idea)
	if !ok {
		return nil, types.ErrInvalidData
	}
	return idea, nil
}

// SaveIdea persists an idea, enforcing the single-active invariant.
//
// CreatedAt is stamped on first save; UpdatedAt is refreshed on every save.
// When the idea enters the active bucket and another idea already holds it,
// the previous active idea is demoted to opts.DemoteTo first; with no
// DemoteTo the save fails with ErrActiveConflict and nothing is persisted.
// Returns the stored idea.
func (s *Service) SaveIdea(idea *types.Idea, opts SaveOptions) (*types.Idea, error) {
	if idea == nil {
		return nil, types.ErrInvalidData
	}
	table, err := s.vault.GetTable(types.IdeasTable)
	if err != nil {
		return nil, err
	}

	idea.ApplyDefaults()
	if !types.ValidBucket(idea.Bucket) {
		return nil, types.ErrInvalidBucket
	}

	now := s.now().UTC()
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = now
	}
	idea.UpdatedAt = now

	if idea.Bucket == types.BucketActive && !opts.BypassActiveCheck {
		current, err := s.ActiveIdea()
		if err != nil {
			return nil, err
		}
		if current != nil && current.IdeaID != idea.IdeaID {
			if opts.DemoteTo == "" {
				return nil, types.ErrActiveConflict
			}
			if opts.DemoteTo != types.BucketParked && opts.DemoteTo != types.BucketLongTerm {
				return nil, types.ErrInvalidBucket
			}
			current.Bucket = opts.DemoteTo
			if _, err := s.SaveIdea(current, SaveOptions{BypassActiveCheck: true}); err != nil {
				return nil, fmt.Errorf("demoting previous active idea: %w", err)
			}
		}
	}

	id, err := table.Set(idea.IdeaID, idea)
	if err != nil {
		return nil, fmt.Errorf("saving idea: %w", err)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// DeleteIdea removes an idea and all images it owns (cascade). Idempotent:
// deleting an absent idea succeeds.
func (s *Service) DeleteIdea(id string) error {
	table, err := s.vault.GetTable(types.IdeasTable)
	if err != nil {
		return err
	}
	if err := table.Delete(id); err != nil {
		return fmt.Errorf("deleting idea: %w", err)
	}
	return s.Reload()
}

// Bootstrap seeds the starter idea on an empty vault. Returns true when the
// starter idea was created; a vault with any idea is left untouched.
func (s *Service) Bootstrap() (bool, error) {
	seeder, ok := s.vault.(Seeder)
	if !ok {
		return false, nil
	}
	created, err := seeder.SeedStarterIdea()
	if err != nil {
		return false, err
	}
	if created {
		if err := s.Reload(); err != nil {
			return created, err
		}
	}
	return created, nil
}

// Search returns ideas whose title, description, notes, or tags contain the
// query, case-insensitively. An empty query returns every idea.
func (s *Service) Search(query string) []*types.Idea {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Ideas("")
	}

	var result []*types.Idea
	for _, idea := range s.ideas {
		if ideaMatches(idea, q) {
			result = append(result, idea)
		}
	}
	return result
}

// FilterByTag returns ideas carrying the normalized form of tag.
func (s *Service) FilterByTag(tag string) []*types.Idea {
	var result []*types.Idea
	for _, idea := range s.ideas {
		if idea.HasTag(tag) {
			result = append(result, idea)
		}
	}
	return result
}

// ideaMatches reports whether the lowercased query occurs in any searchable
// field of the idea.
func ideaMatches(idea *types.Idea, q string) bool {
	if strings.Contains(strings.ToLower(idea.Title), q) ||
		strings.Contains(strings.ToLower(idea.Description), q) ||
		strings.Contains(strings.ToLower(idea.Notes), q) {
		return true
	}
	for _, t := range idea.Tags {
		if strings.Contains(t, q) {
			return true
		}
	}
	return false
}

// Sort keys accepted by SortIdeas.
const (
	SortByUpdated  = "updated"
	SortByCreated  = "created"
	SortByTitle    = "title"
	SortByPriority = "priority"
)

// priorityRank orders priorities for sorting, highest first.
var priorityRank = map[string]int{
	types.PriorityHigh:   0,
	types.PriorityMedium: 1,
	types.PriorityLow:    2,
}

// SortIdeas sorts ideas in place by the given key: updated/created newest
// first, title ascending, priority highest first. An unrecognized key sorts
// by updated.
func SortIdeas(ideas []*types.Idea, key string) {
	sort.SliceStable(ideas, func(i, j int) bool {
		a, b := ideas[i], ideas[j]
		switch key {
		case SortByCreated:
			return a.CreatedAt.After(b.CreatedAt)
		case SortByTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortByPriority:
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		default:
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	})
}

// ReviewToday returns the ideas last updated during the current local day,
// newest first. This is the listing side of the daily-review flow;
// re-bucketing a reviewed idea goes through SaveIdea.
func (s *Service) ReviewToday() []*types.Idea {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var result []*types.Idea
	for _, idea := range s.ideas {
		if !idea.UpdatedAt.Before(dayStart) {
			result = append(result, idea)
		}
	}
	SortIdeas(result, SortByUpdated)
	return result
}

// Setting returns the stored value for key.
// Well-known keys fall back to their default when never written; unknown
// unwritten keys return ErrNotFound.
func (s *Service) Setting(key string) (string, error) {
	table, err := s.vault.GetTable(types.SettingsTable)
	if err != nil {
		return "", err
	}
	entity, err := table.Get(key)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			if def, ok := types.SettingDefaults[key]; ok {
				return def, nil
			}
		}
		return "", err
	}
	setting, ok := entity.(*types.Setting)
	if !ok {
		return "", types.ErrInvalidData
	}
	return setting.Value, nil
}

// SetSetting persists a preference value under key.
func (s *Service) SetSetting(key, value string) error {
	table, err := s.vault.GetTable(types.SettingsTable)
	if err != nil {
		return err
	}
	if _, err := table.Set(key, &types.Setting{Key: key, Value: value}); err != nil {
		return fmt.Errorf("saving setting %s: %w", key, err)
	}
	return nil
}
