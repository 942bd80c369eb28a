// Image attachment operations: attach, remove, list.
package vault

import (
	"fmt"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// AttachImage stores a binary payload as an image owned by the given idea.
// Returns the stored image. The owning idea must exist.
func (s *Service) AttachImage(ideaID, filename, mimeType string, data []byte) (*types.Image, error) {
	table, err := s.vault.GetTable(types.ImagesTable)
	if err != nil {
		return nil, err
	}

	img := &types.Image{
		IdeaID:   ideaID,
		Filename: filename,
		MIMEType: mimeType,
		Data:     data,
	}
	id, err := table.Set("", img)
	if err != nil {
		return nil, fmt.Errorf("attaching image: %w", err)
	}
	// The owning idea's ImageIDs changed.
	if err := s.Reload(); err != nil {
		return nil, err
	}

	entity, err := table.Get(id)
	if err != nil {
		return nil, err
	}
	stored, ok := entity.(*types.Image)
	if !ok {
		return nil, types.ErrInvalidData
	}
	return stored, nil
}

// RemoveImage deletes a single image. Idempotent: removing an absent image
// succeeds.
func (s *Service) RemoveImage(imageID string) error {
	table, err := s.vault.GetTable(types.ImagesTable)
	if err != nil {
		return err
	}
	if err := table.Delete(imageID); err != nil {
		return fmt.Errorf("removing image: %w", err)
	}
	return s.Reload()
}

// Image retrieves a single image with its payload.
func (s *Service) Image(imageID string) (*types.Image, error) {
	table, err := s.vault.GetTable(types.ImagesTable)
	if err != nil {
		return nil, err
	}
	entity, err := table.Get(imageID)
	if err != nil {
		return nil, err
	}
	img, ok := entity.(*types.Image)
	if !ok {
		return nil, types.ErrInvalidData
	}
	return img, nil
}

// Images returns all images owned by an idea, in attachment order.
func (s *Service) Images(ideaID string) ([]*types.Image, error) {
	table, err := s.vault.GetTable(types.ImagesTable)
	if err != nil {
		return nil, err
	}
	entities, err := table.Fetch(types.Filter{"idea_id": ideaID})
	if err != nil {
		return nil, fmt.Errorf("listing images for idea %s: %w", ideaID, err)
	}

	images := make([]*types.Image, 0, len(entities))
	for _, e := range entities {
		img, ok := e.(*types.Image)
		if !ok {
			return nil, types.ErrInvalidData
		}
		images = append(images, img)
	}
	return images, nil
}
