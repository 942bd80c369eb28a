// This file implements the ideas table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// Compile-time interface check: ideasTable must implement Table.
var _ types.Table = (*ideasTable)(nil)

// ideasTable implements the Table interface for the idea entity type.
// Each operation hydrates/dehydrates between SQLite rows and *types.Idea
// structs. Links and tags are stored as JSON text columns; owned image IDs
// are derived from the images table on every read.
type ideasTable struct {
	backend *Backend
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ideaColumns is the SELECT column list matching hydrateIdea.
const ideaColumns = "idea_id, bucket, title, description, notes, links, tags, priority, status, next_action, created_at, updated_at"

// Get retrieves an idea by ID, hydrates the row to *types.Idea (including
// its owned image IDs), and returns it.
func (it *ideasTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := it.backend.db.QueryRow(
		"SELECT "+ideaColumns+" FROM ideas WHERE idea_id = ?", id,
	)
	idea, err := hydrateIdea(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting idea %s: %w", id, err)
	}
	if err := it.hydrateImageIDs(idea); err != nil {
		return nil, fmt.Errorf("hydrating image IDs for idea %s: %w", id, err)
	}
	return idea, nil
}

// Set persists an idea. If id is empty, generates a UUID v7. Zero-valued
// timestamps are stamped with the current time; timestamps the caller set
// are stored as given, so the service layer's clock is authoritative.
// Returns the actual ID and any error. Set is mechanical: the single-active
// invariant is enforced by the caller, not here.
func (it *ideasTable) Set(id string, data any) (string, error) {
	idea, ok := data.(*types.Idea)
	if !ok {
		return "", types.ErrInvalidData
	}
	if idea.Title == "" {
		return "", types.ErrInvalidTitle
	}

	idea.ApplyDefaults()
	if !types.ValidBucket(idea.Bucket) {
		return "", types.ErrInvalidBucket
	}
	if !types.ValidPriority(idea.Priority) {
		return "", types.ErrInvalidPriority
	}

	if id == "" {
		idea.IdeaID = generateUUID()
		id = idea.IdeaID
	}

	now := time.Now().UTC()
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = now
	}
	if idea.UpdatedAt.IsZero() {
		idea.UpdatedAt = now
	}

	linksJSON, err := json.Marshal(idea.Links)
	if err != nil {
		return "", fmt.Errorf("marshaling links: %w", err)
	}
	tagsJSON, err := json.Marshal(idea.Tags)
	if err != nil {
		return "", fmt.Errorf("marshaling tags: %w", err)
	}

	var exists bool
	err = it.backend.db.QueryRow(
		"SELECT 1 FROM ideas WHERE idea_id = ?", id,
	).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("checking idea existence: %w", err)
	}

	if exists {
		_, err = it.backend.db.Exec(
			`UPDATE ideas SET bucket = ?, title = ?, description = ?, notes = ?, links = ?, tags = ?,
			 priority = ?, status = ?, next_action = ?, created_at = ?, updated_at = ? WHERE idea_id = ?`,
			idea.Bucket, idea.Title, idea.Description, idea.Notes, string(linksJSON), string(tagsJSON),
			idea.Priority, idea.Status, idea.NextAction, formatTime(idea.CreatedAt), formatTime(idea.UpdatedAt), id,
		)
	} else {
		_, err = it.backend.db.Exec(
			`INSERT INTO ideas (idea_id, bucket, title, description, notes, links, tags, priority, status, next_action, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, idea.Bucket, idea.Title, idea.Description, idea.Notes, string(linksJSON), string(tagsJSON),
			idea.Priority, idea.Status, idea.NextAction, formatTime(idea.CreatedAt), formatTime(idea.UpdatedAt),
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting idea: %w", err)
	}

	return id, nil
}

// Delete removes an idea and cascades to its images. The cascade and the
// idea deletion run in one transaction, so a failure leaves the record and
// all of its images intact. Idempotent: deleting an absent idea succeeds.
func (it *ideasTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	tx, err := it.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM images WHERE idea_id = ?", id); err != nil {
		return fmt.Errorf("deleting idea images: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM ideas WHERE idea_id = ?", id); err != nil {
		return fmt.Errorf("deleting idea: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing idea deletion: %w", err)
	}
	return nil
}

// Clear removes every idea. Images are left to the caller; use the images
// table's Clear to wipe attachments too.
func (it *ideasTable) Clear() error {
	if _, err := it.backend.db.Exec("DELETE FROM ideas"); err != nil {
		return fmt.Errorf("clearing ideas: %w", err)
	}
	return nil
}

// Fetch queries ideas matching the filter. Recognized keys:
//
//	bucket   string  restrict to one bucket
//	order_by string  "updated_at" (default), "created_at", or "title"
//	limit    int     maximum rows, after ordering
//	offset   int     rows to skip, after ordering
//
// Timestamp orderings are descending (newest first); title is ascending.
func (it *ideasTable) Fetch(filter types.Filter) ([]any, error) {
	query := "SELECT " + ideaColumns + " FROM ideas"
	var conditions []string
	var args []any

	orderBy := "updated_at DESC"
	if filter != nil {
		if v, ok := filter["bucket"]; ok {
			bucket, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "bucket = ?")
			args = append(args, bucket)
		}
		if v, ok := filter["order_by"]; ok {
			key, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			switch key {
			case "updated_at":
				orderBy = "updated_at DESC"
			case "created_at":
				orderBy = "created_at DESC"
			case "title":
				orderBy = "title ASC"
			default:
				return nil, types.ErrInvalidFilter
			}
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + orderBy

	if filter != nil {
		if v, ok := filter["limit"]; ok {
			limit, ok := v.(int)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			if limit > 0 {
				query += fmt.Sprintf(" LIMIT %d", limit)
			}
		}
		if v, ok := filter["offset"]; ok {
			offset, ok := v.(int)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			if offset > 0 {
				query += fmt.Sprintf(" OFFSET %d", offset)
			}
		}
	}

	rows, err := it.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ideas: %w", err)
	}
	defer rows.Close()

	var result []any
	for rows.Next() {
		idea, err := hydrateIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning idea row: %w", err)
		}
		if err := it.hydrateImageIDs(idea); err != nil {
			return nil, fmt.Errorf("hydrating image IDs for idea %s: %w", idea.IdeaID, err)
		}
		result = append(result, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating idea rows: %w", err)
	}
	return result, nil
}

// hydrateIdea scans one ideas row into a *types.Idea and applies defaults.
func hydrateIdea(row rowScanner) (*types.Idea, error) {
	var idea types.Idea
	var linksJSON, tagsJSON, createdAt, updatedAt string

	err := row.Scan(
		&idea.IdeaID, &idea.Bucket, &idea.Title, &idea.Description, &idea.Notes,
		&linksJSON, &tagsJSON, &idea.Priority, &idea.Status, &idea.NextAction,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(linksJSON), &idea.Links); err != nil {
		return nil, fmt.Errorf("unmarshaling links: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &idea.Tags); err != nil {
		return nil, fmt.Errorf("unmarshaling tags: %w", err)
	}
	if idea.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if idea.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	idea.ApplyDefaults()
	return &idea, nil
}

// hydrateImageIDs loads the IDs of images owned by the idea, oldest first.
func (it *ideasTable) hydrateImageIDs(idea *types.Idea) error {
	rows, err := it.backend.db.Query(
		"SELECT image_id FROM images WHERE idea_id = ? ORDER BY created_at ASC", idea.IdeaID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	idea.ImageIDs = ids
	return rows.Err()
}
