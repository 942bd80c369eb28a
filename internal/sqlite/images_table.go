// This file implements the images table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

var _ types.Table = (*imagesTable)(nil)

// imagesTable implements the Table interface for binary image attachments.
type imagesTable struct {
	backend *Backend
}

// Get retrieves an image by ID, including its binary payload.
func (mt *imagesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := mt.backend.db.QueryRow(
		"SELECT image_id, idea_id, filename, mime_type, data, created_at FROM images WHERE image_id = ?",
		id,
	)
	img, err := hydrateImage(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting image %s: %w", id, err)
	}
	return img, nil
}

// Set persists an image. If id is empty, generates a UUID v7. The owning
// idea must exist; an image is never created without a reachable owner.
func (mt *imagesTable) Set(id string, data any) (string, error) {
	img, ok := data.(*types.Image)
	if !ok {
		return "", types.ErrInvalidData
	}
	if img.IdeaID == "" {
		return "", types.ErrInvalidData
	}

	var ideaExists bool
	err := mt.backend.db.QueryRow(
		"SELECT 1 FROM ideas WHERE idea_id = ?", img.IdeaID,
	).Scan(&ideaExists)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", types.ErrNotFound
		}
		return "", fmt.Errorf("checking owning idea existence: %w", err)
	}

	if id == "" {
		img.ImageID = generateUUID()
		id = img.ImageID
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now().UTC()
	}

	var exists bool
	err = mt.backend.db.QueryRow(
		"SELECT 1 FROM images WHERE image_id = ?", id,
	).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("checking image existence: %w", err)
	}

	if exists {
		_, err = mt.backend.db.Exec(
			"UPDATE images SET idea_id = ?, filename = ?, mime_type = ?, data = ?, created_at = ? WHERE image_id = ?",
			img.IdeaID, img.Filename, img.MIMEType, img.Data, formatTime(img.CreatedAt), id,
		)
	} else {
		_, err = mt.backend.db.Exec(
			"INSERT INTO images (image_id, idea_id, filename, mime_type, data, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			id, img.IdeaID, img.Filename, img.MIMEType, img.Data, formatTime(img.CreatedAt),
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting image: %w", err)
	}

	return id, nil
}

// Delete removes an image. Idempotent: deleting an absent image succeeds.
func (mt *imagesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	if _, err := mt.backend.db.Exec("DELETE FROM images WHERE image_id = ?", id); err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}

// Clear removes every image.
func (mt *imagesTable) Clear() error {
	if _, err := mt.backend.db.Exec("DELETE FROM images"); err != nil {
		return fmt.Errorf("clearing images: %w", err)
	}
	return nil
}

// Fetch queries images matching the filter. Recognized keys:
//
//	idea_id string  restrict to images owned by one idea
//
// Results are ordered by created_at ascending (attachment order).
func (mt *imagesTable) Fetch(filter types.Filter) ([]any, error) {
	query := "SELECT image_id, idea_id, filename, mime_type, data, created_at FROM images"
	var args []any

	if filter != nil {
		if v, ok := filter["idea_id"]; ok {
			ideaID, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			query += " WHERE idea_id = ?"
			args = append(args, ideaID)
		}
	}
	query += " ORDER BY created_at ASC"

	rows, err := mt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying images: %w", err)
	}
	defer rows.Close()

	var result []any
	for rows.Next() {
		img, err := hydrateImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning image row: %w", err)
		}
		result = append(result, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating image rows: %w", err)
	}
	return result, nil
}

// hydrateImage scans one images row into a *types.Image.
func hydrateImage(row rowScanner) (*types.Image, error) {
	var img types.Image
	var createdAt string

	err := row.Scan(&img.ImageID, &img.IdeaID, &img.Filename, &img.MIMEType, &img.Data, &createdAt)
	if err != nil {
		return nil, err
	}
	if img.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &img, nil
}
