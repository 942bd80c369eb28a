package sqlite

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// setupImageOwner creates a backend plus one idea to own image attachments.
func setupImageOwner(t *testing.T) (*Backend, types.Table, string) {
	t.Helper()

	b := setupBackend(t)
	ideas := mustIdeasTable(t, b)
	idea := testIdea("Owner", types.BucketParked, time.Now().UTC())
	ideaID, err := ideas.Set(idea.IdeaID, idea)
	require.NoError(t, err)

	images, err := b.GetTable(types.ImagesTable)
	require.NoError(t, err)
	return b, images, ideaID
}

func TestImagesTableSet(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, images types.Table, ideaID string)
	}{
		{
			name: "binary payload survives a round trip",
			check: func(t *testing.T, images types.Table, ideaID string) {
				payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff, 0x7f}
				id, err := images.Set("", &types.Image{
					IdeaID:   ideaID,
					Filename: "shot.png",
					MIMEType: "image/png",
					Data:     payload,
				})
				require.NoError(t, err)

				got, err := images.Get(id)
				require.NoError(t, err)
				img := got.(*types.Image)
				assert.True(t, bytes.Equal(payload, img.Data))
				assert.Equal(t, "shot.png", img.Filename)
				assert.Equal(t, "image/png", img.MIMEType)
				assert.False(t, img.CreatedAt.IsZero())
			},
		},
		{
			name: "owning idea must exist",
			check: func(t *testing.T, images types.Table, ideaID string) {
				_, err := images.Set("", &types.Image{
					IdeaID:   "no-such-idea",
					Filename: "orphan.png",
					MIMEType: "image/png",
					Data:     []byte{1},
				})
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "missing owner id is invalid",
			check: func(t *testing.T, images types.Table, ideaID string) {
				_, err := images.Set("", &types.Image{Filename: "nowhere.png"})
				assert.ErrorIs(t, err, types.ErrInvalidData)
			},
		},
		{
			name: "wrong data type is rejected",
			check: func(t *testing.T, images types.Table, ideaID string) {
				_, err := images.Set("", 42)
				assert.ErrorIs(t, err, types.ErrInvalidData)
			},
		},
		{
			name: "explicit created_at is preserved",
			check: func(t *testing.T, images types.Table, ideaID string) {
				at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
				id, err := images.Set("", &types.Image{
					IdeaID:    ideaID,
					Filename:  "dated.png",
					MIMEType:  "image/png",
					Data:      []byte{1},
					CreatedAt: at,
				})
				require.NoError(t, err)

				got, err := images.Get(id)
				require.NoError(t, err)
				assert.True(t, at.Equal(got.(*types.Image).CreatedAt))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, images, ideaID := setupImageOwner(t)
			tt.check(t, images, ideaID)
		})
	}
}

func TestImagesTableDelete(t *testing.T) {
	_, images, ideaID := setupImageOwner(t)

	id, err := images.Set("", &types.Image{IdeaID: ideaID, Filename: "x.png", MIMEType: "image/png", Data: []byte{1}})
	require.NoError(t, err)

	require.NoError(t, images.Delete(id))
	_, err = images.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.NoError(t, images.Delete(id))
	assert.ErrorIs(t, images.Delete(""), types.ErrInvalidID)
}

func TestImagesTableFetch(t *testing.T) {
	b, images, ideaID := setupImageOwner(t)

	ideas := mustIdeasTable(t, b)
	other := testIdea("Other owner", types.BucketSparks, time.Now().UTC())
	otherID, err := ideas.Set(other.IdeaID, other)
	require.NoError(t, err)

	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for i, row := range []struct {
		owner string
		name  string
	}{
		{ideaID, "a.png"},
		{otherID, "b.png"},
		{ideaID, "c.png"},
	} {
		_, err := images.Set("", &types.Image{
			IdeaID:    row.owner,
			Filename:  row.name,
			MIMEType:  "image/png",
			Data:      []byte{byte(i)},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	rows, err := images.Fetch(types.Filter{"idea_id": ideaID})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a.png", rows[0].(*types.Image).Filename)
	assert.Equal(t, "c.png", rows[1].(*types.Image).Filename)

	all, err := images.Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = images.Fetch(types.Filter{"idea_id": 9})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}
