// This file implements first-run starter-data bootstrap.
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// starterIdea is the single idea created on an empty vault so a first-time
// user has something to look at. It lands in the parked bucket, never active.
var starterIdea = types.Idea{
	Bucket:      types.BucketParked,
	Title:       "Welcome to Idea Vault",
	Description: "Capture short-form ideas, sort them into buckets, and promote one at a time to active.",
	Notes:       "Try: ideavault add --title \"My first idea\"",
	Priority:    types.PriorityMedium,
	Status:      types.DefaultStatus,
	NextAction:  "Add your first real idea",
	Tags:        []string{"starter"},
}

// SeedStarterIdea creates the starter idea if the ideas table is empty.
// Returns true when the idea was created. Idempotent: any existing idea
// makes this a no-op.
func (b *Backend) SeedStarterIdea() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return false, types.ErrVaultDetached
	}

	var count int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM ideas").Scan(&count); err != nil {
		return false, fmt.Errorf("counting ideas: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	idea := starterIdea
	idea.ApplyDefaults()
	idea.IdeaID = generateUUID()
	now := time.Now().UTC()
	idea.CreatedAt = now
	idea.UpdatedAt = now

	linksJSON, err := json.Marshal(idea.Links)
	if err != nil {
		return false, fmt.Errorf("marshaling starter links: %w", err)
	}
	tagsJSON, err := json.Marshal(idea.Tags)
	if err != nil {
		return false, fmt.Errorf("marshaling starter tags: %w", err)
	}

	_, err = b.db.Exec(
		`INSERT INTO ideas (idea_id, bucket, title, description, notes, links, tags, priority, status, next_action, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		idea.IdeaID, idea.Bucket, idea.Title, idea.Description, idea.Notes, string(linksJSON), string(tagsJSON),
		idea.Priority, idea.Status, idea.NextAction, formatTime(idea.CreatedAt), formatTime(idea.UpdatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("seeding starter idea: %w", err)
	}
	return true, nil
}
