// Bundle export: vault contents to a single JSON file.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// ExportOptions configure Export.
type ExportOptions struct {
	// IncludeImages inlines every image payload as a base64 data URL.
	IncludeImages bool

	// MaxBytes caps the estimated encoded size of inlined images.
	// Zero means DefaultMaxExportBytes.
	MaxBytes int64
}

// ExportResult reports the outcome of an export.
type ExportResult struct {
	// TooLarge is set when the estimated encoded size exceeded the limit.
	// The export was aborted and no file was written; the caller can fall
	// back to an ideas-only export or loose image downloads.
	TooLarge bool

	// EstimatedBytes is the running size estimate at completion or abort.
	EstimatedBytes int64

	IdeaCount  int
	ImageCount int
}

// Export reads all ideas (and, when requested, all images) and writes them
// as a bundle to path. The file write is atomic. When the accumulated
// encoded-image size estimate exceeds the limit, Export returns TooLarge
// without writing anything.
func Export(v types.Vault, path string, opts ExportOptions) (*ExportResult, error) {
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxExportBytes
	}

	ideasTable, err := v.GetTable(types.IdeasTable)
	if err != nil {
		return nil, err
	}
	entities, err := ideasTable.Fetch(nil)
	if err != nil {
		return nil, fmt.Errorf("reading ideas: %w", err)
	}

	ideas := make([]*types.Idea, 0, len(entities))
	for _, e := range entities {
		idea, ok := e.(*types.Idea)
		if !ok {
			return nil, types.ErrInvalidData
		}
		ideas = append(ideas, idea)
	}

	result := &ExportResult{IdeaCount: len(ideas)}
	images := []ImageRecord{}

	if opts.IncludeImages {
		imagesTable, err := v.GetTable(types.ImagesTable)
		if err != nil {
			return nil, err
		}
		imgEntities, err := imagesTable.Fetch(nil)
		if err != nil {
			return nil, fmt.Errorf("reading images: %w", err)
		}

		for _, e := range imgEntities {
			img, ok := e.(*types.Image)
			if !ok {
				return nil, types.ErrInvalidData
			}
			dataURL := encodeDataURL(img.MIMEType, img.Data)
			result.EstimatedBytes += int64(len(dataURL))
			if result.EstimatedBytes > maxBytes {
				result.TooLarge = true
				return result, nil
			}
			images = append(images, ImageRecord{
				ID:        img.ImageID,
				IdeaID:    img.IdeaID,
				Filename:  img.Filename,
				Type:      img.MIMEType,
				CreatedAt: img.CreatedAt.UnixMilli(),
				DataURL:   dataURL,
			})
		}
	}
	result.ImageCount = len(images)

	b := Bundle{
		Meta: Meta{
			App:           AppID,
			Version:       FormatVersion,
			ExportedAt:    time.Now().UnixMilli(),
			IncludeImages: opts.IncludeImages,
		},
		Ideas:  ideas,
		Images: images,
	}

	data, err := json.MarshalIndent(&b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling bundle: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return nil, fmt.Errorf("writing bundle: %w", err)
	}
	return result, nil
}

// ExportLooseImages writes each image owned by ideaID to its own file in
// dir, named {ideaId}-{sanitizedOriginalFilename}. An empty ideaID exports
// every image in the vault. Returns the written file paths.
func ExportLooseImages(v types.Vault, ideaID, dir string) ([]string, error) {
	imagesTable, err := v.GetTable(types.ImagesTable)
	if err != nil {
		return nil, err
	}

	var filter types.Filter
	if ideaID != "" {
		filter = types.Filter{"idea_id": ideaID}
	}
	entities, err := imagesTable.Fetch(filter)
	if err != nil {
		return nil, fmt.Errorf("reading images: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	var paths []string
	for _, e := range entities {
		img, ok := e.(*types.Image)
		if !ok {
			return nil, types.ErrInvalidData
		}
		path := filepath.Join(dir, LooseImageName(img))
		if err := writeFileAtomic(path, img.Data); err != nil {
			return paths, fmt.Errorf("writing image %s: %w", img.ImageID, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
