package vault

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brennanjay-74/idea-vault/internal/sqlite"
	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// setupService attaches a fresh SQLite backend and wraps it in a Service.
func setupService(t *testing.T) *Service {
	t.Helper()

	b := sqlite.NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = b.Detach()
	})

	s, err := NewService(b)
	require.NoError(t, err)
	return s
}

// saveNew persists a fresh idea and returns the stored record.
func saveNew(t *testing.T, s *Service, title, bucket string) *types.Idea {
	t.Helper()

	idea := types.NewIdea()
	idea.Title = title
	idea.Bucket = bucket
	stored, err := s.SaveIdea(idea, SaveOptions{})
	require.NoError(t, err)
	return stored
}

func TestSaveIdeaBasics(t *testing.T) {
	s := setupService(t)

	stored := saveNew(t, s, "First", types.BucketParked)
	assert.NotEmpty(t, stored.IdeaID)
	assert.Equal(t, types.BucketParked, stored.Bucket)
	assert.Equal(t, types.PriorityMedium, stored.Priority)
	assert.False(t, stored.CreatedAt.IsZero())

	assert.Len(t, s.Ideas(""), 1)
	assert.Len(t, s.Ideas(types.BucketParked), 1)
	assert.Empty(t, s.Ideas(types.BucketActive))

	_, err := s.SaveIdea(nil, SaveOptions{})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	bad := types.NewIdea()
	bad.Title = "Bad"
	bad.Bucket = "shelved"
	_, err = s.SaveIdea(bad, SaveOptions{})
	assert.ErrorIs(t, err, types.ErrInvalidBucket)
}

func TestSaveIdeaCreatedAtStableAcrossEdits(t *testing.T) {
	s := setupService(t)

	stored := saveNew(t, s, "Stable", types.BucketParked)
	createdAt := stored.CreatedAt

	later := time.Now().Add(48 * time.Hour).UTC()
	s.now = func() time.Time { return later }

	stored.Notes = "edited much later"
	edited, err := s.SaveIdea(stored, SaveOptions{})
	require.NoError(t, err)

	assert.True(t, createdAt.Equal(edited.CreatedAt))
	assert.True(t, later.Equal(edited.UpdatedAt))
}

func TestSaveIdeaFirstSaveUsesServiceClock(t *testing.T) {
	s := setupService(t)

	yesterday := time.Now().Add(-24 * time.Hour).UTC().Truncate(time.Second)
	s.now = func() time.Time { return yesterday }

	idea := types.NewIdea()
	idea.Title = "Backdated"
	stored, err := s.SaveIdea(idea, SaveOptions{})
	require.NoError(t, err)

	// The storage layer must not replace the clock's stamps.
	assert.True(t, yesterday.Equal(stored.CreatedAt))
	assert.True(t, yesterday.Equal(stored.UpdatedAt))
}

func TestFind(t *testing.T) {
	s := setupService(t)

	save := func(id, title string) {
		t.Helper()
		idea := types.NewIdea()
		idea.IdeaID = id
		idea.Title = title
		_, err := s.SaveIdea(idea, SaveOptions{})
		require.NoError(t, err)
	}
	save("aaaa1111-0000-0000-0000-000000000000", "First")
	save("aaaa2222-0000-0000-0000-000000000000", "Second")
	save("bbbb1111-0000-0000-0000-000000000000", "Third")

	// Full ID.
	idea, err := s.Find("bbbb1111-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, "Third", idea.Title)

	// Unique prefix, as printed by list output.
	idea, err = s.Find("aaaa1111")
	require.NoError(t, err)
	assert.Equal(t, "First", idea.Title)

	// Shared prefix must not guess.
	_, err = s.Find("aaaa")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = s.Find("cccc")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = s.Find("")
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestScheduleSaveFlush(t *testing.T) {
	s := setupService(t)

	stored := saveNew(t, s, "Draft", types.BucketParked)

	stored.Title = "Draft v2"
	s.ScheduleSave(stored)
	stored.Notes = "expanded"
	s.ScheduleSave(stored)

	require.NoError(t, s.Flush())

	refreshed, err := s.Get(stored.IdeaID)
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", refreshed.Title)
	assert.Equal(t, "expanded", refreshed.Notes)
}

func TestSingleActiveInvariant(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Service)
	}{
		{
			name: "second active without demote target is refused",
			check: func(t *testing.T, s *Service) {
				saveNew(t, s, "Holder", types.BucketActive)

				challenger := types.NewIdea()
				challenger.Title = "Challenger"
				challenger.Bucket = types.BucketActive
				_, err := s.SaveIdea(challenger, SaveOptions{})
				assert.ErrorIs(t, err, types.ErrActiveConflict)

				// Nothing was persisted and the holder kept the slot.
				assert.Len(t, s.Ideas(""), 1)
				active, err := s.ActiveIdea()
				require.NoError(t, err)
				assert.Equal(t, "Holder", active.Title)
			},
		},
		{
			name: "demote target parks the previous holder",
			check: func(t *testing.T, s *Service) {
				holder := saveNew(t, s, "Holder", types.BucketActive)

				challenger := types.NewIdea()
				challenger.Title = "Challenger"
				challenger.Bucket = types.BucketActive
				stored, err := s.SaveIdea(challenger, SaveOptions{DemoteTo: types.BucketParked})
				require.NoError(t, err)
				assert.Equal(t, types.BucketActive, stored.Bucket)

				demoted, err := s.Get(holder.IdeaID)
				require.NoError(t, err)
				assert.Equal(t, types.BucketParked, demoted.Bucket)

				active, err := s.ActiveIdea()
				require.NoError(t, err)
				assert.Equal(t, "Challenger", active.Title)
			},
		},
		{
			name: "demote to long_term",
			check: func(t *testing.T, s *Service) {
				holder := saveNew(t, s, "Holder", types.BucketActive)
				saveNewActive := types.NewIdea()
				saveNewActive.Title = "Challenger"
				saveNewActive.Bucket = types.BucketActive
				_, err := s.SaveIdea(saveNewActive, SaveOptions{DemoteTo: types.BucketLongTerm})
				require.NoError(t, err)

				demoted, err := s.Get(holder.IdeaID)
				require.NoError(t, err)
				assert.Equal(t, types.BucketLongTerm, demoted.Bucket)
			},
		},
		{
			name: "demote target must be parked or long_term",
			check: func(t *testing.T, s *Service) {
				saveNew(t, s, "Holder", types.BucketActive)
				challenger := types.NewIdea()
				challenger.Title = "Challenger"
				challenger.Bucket = types.BucketActive
				_, err := s.SaveIdea(challenger, SaveOptions{DemoteTo: types.BucketSparks})
				assert.ErrorIs(t, err, types.ErrInvalidBucket)
			},
		},
		{
			name: "re-saving the active idea itself does not conflict",
			check: func(t *testing.T, s *Service) {
				holder := saveNew(t, s, "Holder", types.BucketActive)
				holder.Notes = "still mine"
				_, err := s.SaveIdea(holder, SaveOptions{})
				assert.NoError(t, err)
			},
		},
		{
			name: "no active idea means no conflict",
			check: func(t *testing.T, s *Service) {
				saveNew(t, s, "Parked", types.BucketParked)
				stored := saveNew(t, s, "Promoted", types.BucketActive)
				assert.Equal(t, types.BucketActive, stored.Bucket)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupService(t))
		})
	}
}

func TestActiveIdeaEmpty(t *testing.T) {
	s := setupService(t)
	active, err := s.ActiveIdea()
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestDeleteIdeaCascade(t *testing.T) {
	s := setupService(t)

	stored := saveNew(t, s, "Illustrated", types.BucketParked)
	img, err := s.AttachImage(stored.IdeaID, "shot.png", "image/png", []byte{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, s.DeleteIdea(stored.IdeaID))

	_, err = s.Get(stored.IdeaID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.Image(img.ImageID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Empty(t, s.Ideas(""))

	// Idempotent.
	assert.NoError(t, s.DeleteIdea(stored.IdeaID))
}

func TestAttachImage(t *testing.T) {
	s := setupService(t)

	stored := saveNew(t, s, "Illustrated", types.BucketParked)
	img, err := s.AttachImage(stored.IdeaID, "shot.png", "image/png", []byte{9, 8, 7})
	require.NoError(t, err)
	assert.NotEmpty(t, img.ImageID)
	assert.Equal(t, []byte{9, 8, 7}, img.Data)

	// The replica reflects the new attachment.
	refreshed, err := s.Get(stored.IdeaID)
	require.NoError(t, err)
	assert.Equal(t, []string{img.ImageID}, refreshed.ImageIDs)

	list, err := s.Images(stored.IdeaID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "shot.png", list[0].Filename)

	_, err = s.AttachImage("no-such-idea", "x.png", "image/png", []byte{1})
	assert.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, s.RemoveImage(img.ImageID))
	require.NoError(t, s.RemoveImage(img.ImageID))
	list, err = s.Images(stored.IdeaID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSearch(t *testing.T) {
	s := setupService(t)

	a := types.NewIdea()
	a.Title = "Solar balcony garden"
	a.Tags = []string{"gardening"}
	_, err := s.SaveIdea(a, SaveOptions{})
	require.NoError(t, err)

	b := types.NewIdea()
	b.Title = "Weekend reading list"
	b.Notes = "garden catalogues count as reading"
	_, err = s.SaveIdea(b, SaveOptions{})
	require.NoError(t, err)

	c := types.NewIdea()
	c.Title = "Learn Morse code"
	_, err = s.SaveIdea(c, SaveOptions{})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"matches title case-insensitively", "SOLAR", 1},
		{"matches notes", "catalogues", 1},
		{"matches tags", "gardening", 1},
		{"substring across fields", "garden", 2},
		{"empty query returns all", "  ", 3},
		{"no match", "submarine", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, s.Search(tt.query), tt.want)
		})
	}
}

func TestFilterByTag(t *testing.T) {
	s := setupService(t)

	a := types.NewIdea()
	a.Title = "Tagged"
	a.AddTag("Deep Work")
	_, err := s.SaveIdea(a, SaveOptions{})
	require.NoError(t, err)

	saveNew(t, s, "Untagged", types.BucketParked)

	// Lookup normalizes the queried tag the same way.
	assert.Len(t, s.FilterByTag("deep work"), 1)
	assert.Len(t, s.FilterByTag("DEEP_WORK"), 1)
	assert.Empty(t, s.FilterByTag("shallow work"))
}

func TestSortIdeas(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mk := func(title, priority string, created, updated time.Time) *types.Idea {
		idea := types.NewIdea()
		idea.Title = title
		idea.Priority = priority
		idea.CreatedAt = created
		idea.UpdatedAt = updated
		return idea
	}

	ideas := func() []*types.Idea {
		return []*types.Idea{
			mk("banana", types.PriorityLow, base.Add(2*time.Hour), base),
			mk("Apple", types.PriorityHigh, base, base.Add(2*time.Hour)),
			mk("cherry", types.PriorityMedium, base.Add(time.Hour), base.Add(time.Hour)),
		}
	}

	tests := []struct {
		name string
		key  string
		want []string
	}{
		{"updated newest first", SortByUpdated, []string{"Apple", "cherry", "banana"}},
		{"created newest first", SortByCreated, []string{"banana", "cherry", "Apple"}},
		{"title ascending case-insensitive", SortByTitle, []string{"Apple", "banana", "cherry"}},
		{"priority highest first", SortByPriority, []string{"Apple", "cherry", "banana"}},
		{"unknown key falls back to updated", "zorp", []string{"Apple", "cherry", "banana"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := ideas()
			SortIdeas(list, tt.key)
			var got []string
			for _, idea := range list {
				got = append(got, idea.Title)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReviewToday(t *testing.T) {
	s := setupService(t)

	today := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	yesterday := today.Add(-24 * time.Hour)

	s.now = func() time.Time { return yesterday }
	saveNew(t, s, "Stale", types.BucketParked)

	s.now = func() time.Time { return today }
	saveNew(t, s, "Fresh", types.BucketSparks)

	s.now = func() time.Time { return today.Add(time.Minute) }
	saveNew(t, s, "Fresher", types.BucketParked)

	s.now = func() time.Time { return today.Add(2 * time.Minute) }

	due := s.ReviewToday()
	require.Len(t, due, 2)
	// Newest first.
	assert.Equal(t, "Fresher", due[0].Title)
	assert.Equal(t, "Fresh", due[1].Title)
}

func TestBootstrap(t *testing.T) {
	s := setupService(t)

	created, err := s.Bootstrap()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, s.Ideas(""), 1)

	created, err = s.Bootstrap()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, s.Ideas(""), 1)
}

func TestSettings(t *testing.T) {
	s := setupService(t)

	// Well-known key falls back to its default before any write.
	val, err := s.Setting(types.SettingAutoExportReminder)
	require.NoError(t, err)
	assert.Equal(t, "true", val)

	require.NoError(t, s.SetSetting(types.SettingAutoExportReminder, "false"))
	val, err = s.Setting(types.SettingAutoExportReminder)
	require.NoError(t, err)
	assert.Equal(t, "false", val)

	// Unknown unwritten keys have no default.
	_, err = s.Setting("mystery")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
