// Package bundle implements the export/import engine: it serializes the
// vault to a portable JSON bundle (optionally inlining images as base64 data
// URLs) and merges a bundle back into storage by identifier, repairing the
// single-active invariant after every merge.
package bundle

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// Bundle format constants.
const (
	// AppID identifies bundles produced by this tool.
	AppID = "idea-vault"

	// FormatVersion is the bundle schema version.
	FormatVersion = 1

	// DefaultMaxExportBytes is the hard limit on the estimated encoded size
	// of an export that inlines images (25 MiB).
	DefaultMaxExportBytes = 25 << 20
)

// Engine errors.
var (
	// ErrInvalidFormat reports a bundle whose ideas or images fields are
	// missing or not list-shaped. Import performs no mutation in that case.
	ErrInvalidFormat = errors.New("invalid bundle format")

	// errBadDataURL reports an image payload that could not be decoded.
	// Import skips such records and counts them.
	errBadDataURL = errors.New("malformed data URL")
)

// Meta describes a bundle.
type Meta struct {
	App           string `json:"app"`
	Version       int    `json:"version"`
	ExportedAt    int64  `json:"exportedAt"` // epoch milliseconds
	IncludeImages bool   `json:"includeImages"`
}

// ImageRecord is the bundle representation of an image. The binary payload
// travels as a base64 data URL in DataURL, populated only when the bundle
// was exported with images included.
type ImageRecord struct {
	ID        string `json:"id"`
	IdeaID    string `json:"ideaId"`
	Filename  string `json:"filename"`
	Type      string `json:"type"`
	CreatedAt int64  `json:"createdAt"` // epoch milliseconds
	DataURL   string `json:"dataUrl,omitempty"`
}

// Bundle is the export/import payload.
type Bundle struct {
	Meta   Meta          `json:"meta"`
	Ideas  []*types.Idea `json:"ideas"`
	Images []ImageRecord `json:"images"`
}

// encodeDataURL encodes a binary payload as a self-describing data URL.
func encodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// decodeDataURL decodes a data URL back to its MIME type and binary payload.
func decodeDataURL(dataURL string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, errBadDataURL
	}
	mimeType, encoded, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, errBadDataURL
	}
	data, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", errBadDataURL, err)
	}
	return mimeType, data, nil
}

// SanitizeFilename strips path separators and other unsafe characters from
// an original filename so it can be used in a loose export filename.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}

// LooseImageName builds the per-file export filename for an image:
// {ideaId}-{sanitizedOriginalFilename}.
func LooseImageName(img *types.Image) string {
	return img.IdeaID + "-" + SanitizeFilename(img.Filename)
}
