package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

func TestIdeasTableSet(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, table types.Table)
	}{
		{
			name: "create with empty id generates uuid and stamps timestamps",
			check: func(t *testing.T, table types.Table) {
				idea := types.NewIdea()
				idea.Title = "Generated"

				id, err := table.Set("", idea)
				require.NoError(t, err)
				assert.NotEmpty(t, id)
				assert.Equal(t, id, idea.IdeaID)
				assert.False(t, idea.CreatedAt.IsZero())
				assert.Equal(t, idea.CreatedAt, idea.UpdatedAt)
			},
		},
		{
			name: "create with empty id keeps caller timestamps",
			check: func(t *testing.T, table types.Table) {
				at := time.Date(2026, 4, 5, 6, 7, 8, 0, time.UTC)
				idea := types.NewIdea()
				idea.Title = "Caller clock"
				idea.CreatedAt = at
				idea.UpdatedAt = at.Add(time.Minute)

				id, err := table.Set("", idea)
				require.NoError(t, err)

				got, err := table.Get(id)
				require.NoError(t, err)
				loaded := got.(*types.Idea)
				assert.True(t, at.Equal(loaded.CreatedAt))
				assert.True(t, at.Add(time.Minute).Equal(loaded.UpdatedAt))
			},
		},
		{
			name: "upsert by id preserves given timestamps",
			check: func(t *testing.T, table types.Table) {
				at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
				idea := testIdea("Pinned time", types.BucketParked, at)

				id, err := table.Set(idea.IdeaID, idea)
				require.NoError(t, err)

				got, err := table.Get(id)
				require.NoError(t, err)
				loaded := got.(*types.Idea)
				assert.True(t, at.Equal(loaded.CreatedAt))
				assert.True(t, at.Equal(loaded.UpdatedAt))
			},
		},
		{
			name: "update overwrites fields",
			check: func(t *testing.T, table types.Table) {
				idea := testIdea("Before", types.BucketParked, time.Now().UTC())
				id, err := table.Set(idea.IdeaID, idea)
				require.NoError(t, err)

				idea.Title = "After"
				idea.Bucket = types.BucketLongTerm
				idea.Tags = []string{"kept"}
				_, err = table.Set(id, idea)
				require.NoError(t, err)

				got, err := table.Get(id)
				require.NoError(t, err)
				loaded := got.(*types.Idea)
				assert.Equal(t, "After", loaded.Title)
				assert.Equal(t, types.BucketLongTerm, loaded.Bucket)
				assert.Equal(t, []string{"kept"}, loaded.Tags)
			},
		},
		{
			name: "empty title is rejected",
			check: func(t *testing.T, table types.Table) {
				idea := types.NewIdea()
				_, err := table.Set("", idea)
				assert.ErrorIs(t, err, types.ErrInvalidTitle)
			},
		},
		{
			name: "invalid bucket is rejected",
			check: func(t *testing.T, table types.Table) {
				idea := types.NewIdea()
				idea.Title = "Bad bucket"
				idea.Bucket = "shelved"
				_, err := table.Set("", idea)
				assert.ErrorIs(t, err, types.ErrInvalidBucket)
			},
		},
		{
			name: "invalid priority is rejected",
			check: func(t *testing.T, table types.Table) {
				idea := types.NewIdea()
				idea.Title = "Bad priority"
				idea.Priority = "critical"
				_, err := table.Set("", idea)
				assert.ErrorIs(t, err, types.ErrInvalidPriority)
			},
		},
		{
			name: "wrong data type is rejected",
			check: func(t *testing.T, table types.Table) {
				_, err := table.Set("", "not an idea")
				assert.ErrorIs(t, err, types.ErrInvalidData)
			},
		},
		{
			name: "links survive a round trip in order",
			check: func(t *testing.T, table types.Table) {
				idea := types.NewIdea()
				idea.Title = "Linked"
				idea.Links = []types.Link{
					{Label: "docs", URL: "https://example.com/docs"},
					{Label: "repo", URL: "https://example.com/repo"},
				}

				id, err := table.Set("", idea)
				require.NoError(t, err)

				got, err := table.Get(id)
				require.NoError(t, err)
				assert.Equal(t, idea.Links, got.(*types.Idea).Links)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, mustIdeasTable(t, b))
		})
	}
}

func TestIdeasTableGet(t *testing.T) {
	b := setupBackend(t)
	table := mustIdeasTable(t, b)

	_, err := table.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = table.Get("no-such-id")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestIdeasTableDelete(t *testing.T) {
	b := setupBackend(t)
	table := mustIdeasTable(t, b)

	idea := testIdea("Doomed", types.BucketParked, time.Now().UTC())
	id, err := table.Set(idea.IdeaID, idea)
	require.NoError(t, err)

	images, err := b.GetTable(types.ImagesTable)
	require.NoError(t, err)
	imgID, err := images.Set("", &types.Image{IdeaID: id, Filename: "a.png", MIMEType: "image/png", Data: []byte{1, 2, 3}})
	require.NoError(t, err)

	require.NoError(t, table.Delete(id))

	_, err = table.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// The cascade removed the owned image too.
	_, err = images.Get(imgID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, table.Delete(id))
	assert.ErrorIs(t, table.Delete(""), types.ErrInvalidID)
}

func TestIdeasTableFetch(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, table types.Table) {
		t.Helper()
		for i, row := range []struct {
			title  string
			bucket string
		}{
			{"Alpha", types.BucketParked},
			{"Charlie", types.BucketSparks},
			{"Bravo", types.BucketParked},
		} {
			idea := testIdea(row.title, row.bucket, base.Add(time.Duration(i)*time.Hour))
			_, err := table.Set(idea.IdeaID, idea)
			require.NoError(t, err)
		}
	}

	titles := func(rows []any) []string {
		var out []string
		for _, row := range rows {
			out = append(out, row.(*types.Idea).Title)
		}
		return out
	}

	tests := []struct {
		name    string
		filter  types.Filter
		want    []string
		wantErr error
	}{
		{
			name: "nil filter returns all newest-updated first",
			want: []string{"Bravo", "Charlie", "Alpha"},
		},
		{
			name:   "bucket filter",
			filter: types.Filter{"bucket": types.BucketParked},
			want:   []string{"Bravo", "Alpha"},
		},
		{
			name:   "order by title ascending",
			filter: types.Filter{"order_by": "title"},
			want:   []string{"Alpha", "Bravo", "Charlie"},
		},
		{
			name:   "order by created_at descending",
			filter: types.Filter{"order_by": "created_at"},
			want:   []string{"Bravo", "Charlie", "Alpha"},
		},
		{
			name:   "limit and offset",
			filter: types.Filter{"limit": 1, "offset": 1},
			want:   []string{"Charlie"},
		},
		{
			name:    "unknown order key is rejected",
			filter:  types.Filter{"order_by": "priority"},
			wantErr: types.ErrInvalidFilter,
		},
		{
			name:    "bucket filter must be a string",
			filter:  types.Filter{"bucket": 7},
			wantErr: types.ErrInvalidFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			table := mustIdeasTable(t, b)
			seed(t, table)

			rows, err := table.Fetch(tt.filter)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(rows))
		})
	}
}

func TestIdeasTableClear(t *testing.T) {
	b := setupBackend(t)
	table := mustIdeasTable(t, b)

	idea := testIdea("Gone soon", types.BucketParked, time.Now().UTC())
	_, err := table.Set(idea.IdeaID, idea)
	require.NoError(t, err)

	require.NoError(t, table.Clear())

	rows, err := table.Fetch(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestIdeasTableHydratesImageIDs(t *testing.T) {
	b := setupBackend(t)
	table := mustIdeasTable(t, b)
	images, err := b.GetTable(types.ImagesTable)
	require.NoError(t, err)

	idea := testIdea("Illustrated", types.BucketParked, time.Now().UTC())
	id, err := table.Set(idea.IdeaID, idea)
	require.NoError(t, err)

	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	first, err := images.Set("", &types.Image{IdeaID: id, Filename: "first.png", MIMEType: "image/png", Data: []byte{1}, CreatedAt: base})
	require.NoError(t, err)
	second, err := images.Set("", &types.Image{IdeaID: id, Filename: "second.png", MIMEType: "image/png", Data: []byte{2}, CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)

	got, err := table.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, got.(*types.Idea).ImageIDs)
}
