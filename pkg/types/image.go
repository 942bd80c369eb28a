// Image entity for binary attachments owned by ideas.
package types

import "time"

// Image represents a binary attachment. An image belongs to exactly one idea
// and is cascade-deleted with it; no image outlives its owning idea.
type Image struct {
	// ImageID is a UUID v7, generated on creation.
	ImageID string `json:"image_id"`

	// IdeaID is the owning idea. Never empty.
	IdeaID string `json:"idea_id"`

	// Filename is the original filename as attached.
	Filename string `json:"filename"`

	// MIMEType is the declared content type (e.g. image/png).
	MIMEType string `json:"mime_type"`

	// Data is the raw binary payload. Omitted from JSON; bundles carry the
	// payload as a base64 data URL instead.
	Data []byte `json:"-"`

	// CreatedAt is the timestamp of creation.
	CreatedAt time.Time `json:"created_at"`
}
