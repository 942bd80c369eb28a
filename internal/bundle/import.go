// Bundle import: merge a bundle into the vault by identifier, then repair
// the single-active invariant.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// ImportResult reports what an import did.
type ImportResult struct {
	// IdeasImported is the number of idea records upserted.
	IdeasImported int

	// ImagesImported is the number of image records decoded and upserted.
	ImagesImported int

	// ImagesSkipped counts image records whose payload failed to decode or
	// whose owning idea is unknown. Skipped records do not abort the merge.
	ImagesSkipped int

	// ActiveDemoted counts ideas demoted to parked by the post-merge
	// invariant repair pass.
	ActiveDemoted int
}

// rawBundle defers idea and image decoding so the list shape of both fields
// can be validated before any mutation.
type rawBundle struct {
	Meta   Meta            `json:"meta"`
	Ideas  json.RawMessage `json:"ideas"`
	Images json.RawMessage `json:"images"`
}

// Import parses the bundle at path and merges it into the vault. Ideas and
// images are upserted by ID; the imported record wins, merged over the
// defaulted shape. Validation failures return ErrInvalidFormat before any
// mutation. Individual image decode failures are skipped and counted. After
// every merge, unconditionally, the single-active invariant is repaired:
// when more than one idea is active, the one with the greatest UpdatedAt
// stays active and the rest are demoted to parked.
func Import(v types.Vault, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle: %w", err)
	}

	var raw rawBundle
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if raw.Ideas == nil || raw.Images == nil {
		return nil, fmt.Errorf("%w: ideas and images must be present", ErrInvalidFormat)
	}

	var rawIdeas, rawImages []json.RawMessage
	if err := json.Unmarshal(raw.Ideas, &rawIdeas); err != nil {
		return nil, fmt.Errorf("%w: ideas is not a list", ErrInvalidFormat)
	}
	if err := json.Unmarshal(raw.Images, &rawImages); err != nil {
		return nil, fmt.Errorf("%w: images is not a list", ErrInvalidFormat)
	}

	ideasTable, err := v.GetTable(types.IdeasTable)
	if err != nil {
		return nil, err
	}
	imagesTable, err := v.GetTable(types.ImagesTable)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	for _, rec := range rawIdeas {
		// Imported fields win, merged over the defaulted shape.
		idea := types.NewIdea()
		if err := json.Unmarshal(rec, idea); err != nil {
			return result, fmt.Errorf("%w: malformed idea record", ErrInvalidFormat)
		}
		if idea.IdeaID == "" {
			continue
		}
		idea.ApplyDefaults()
		if _, err := ideasTable.Set(idea.IdeaID, idea); err != nil {
			return result, fmt.Errorf("importing idea %s: %w", idea.IdeaID, err)
		}
		result.IdeasImported++
	}

	for _, rec := range rawImages {
		var imgRec ImageRecord
		if err := json.Unmarshal(rec, &imgRec); err != nil {
			result.ImagesSkipped++
			continue
		}
		if imgRec.ID == "" || imgRec.IdeaID == "" || imgRec.DataURL == "" {
			result.ImagesSkipped++
			continue
		}
		mimeType, payload, err := decodeDataURL(imgRec.DataURL)
		if err != nil {
			result.ImagesSkipped++
			continue
		}
		if imgRec.Type != "" {
			mimeType = imgRec.Type
		}

		img := &types.Image{
			ImageID:   imgRec.ID,
			IdeaID:    imgRec.IdeaID,
			Filename:  imgRec.Filename,
			MIMEType:  mimeType,
			Data:      payload,
			CreatedAt: time.UnixMilli(imgRec.CreatedAt).UTC(),
		}
		if _, err := imagesTable.Set(img.ImageID, img); err != nil {
			// Unknown owning idea or a per-record storage failure; skip.
			result.ImagesSkipped++
			continue
		}
		result.ImagesImported++
	}

	demoted, err := repairActiveInvariant(ideasTable)
	if err != nil {
		return result, err
	}
	result.ActiveDemoted = demoted

	return result, nil
}

// repairActiveInvariant demotes all but the most recently updated active
// idea to parked. Runs after every import, not only when a collision was
// detected ahead of time. Returns the number of demotions.
func repairActiveInvariant(ideasTable types.Table) (int, error) {
	entities, err := ideasTable.Fetch(types.Filter{"bucket": types.BucketActive})
	if err != nil {
		return 0, fmt.Errorf("querying active ideas: %w", err)
	}
	if len(entities) <= 1 {
		return 0, nil
	}

	// Find the idea with the greatest UpdatedAt; it keeps the active slot.
	var keep *types.Idea
	ideas := make([]*types.Idea, 0, len(entities))
	for _, e := range entities {
		idea, ok := e.(*types.Idea)
		if !ok {
			return 0, types.ErrInvalidData
		}
		ideas = append(ideas, idea)
		if keep == nil || idea.UpdatedAt.After(keep.UpdatedAt) {
			keep = idea
		}
	}

	demoted := 0
	for _, idea := range ideas {
		if idea.IdeaID == keep.IdeaID {
			continue
		}
		idea.Bucket = types.BucketParked
		idea.UpdatedAt = time.Now().UTC()
		if _, err := ideasTable.Set(idea.IdeaID, idea); err != nil {
			return demoted, fmt.Errorf("demoting idea %s: %w", idea.IdeaID, err)
		}
		demoted++
	}
	return demoted, nil
}
