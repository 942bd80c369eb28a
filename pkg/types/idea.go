package types

import (
	"errors"
	"strings"
	"time"
)

// Idea buckets. Every idea lives in exactly one bucket, and at most one idea
// across the whole vault may be in the active bucket at any time.
const (
	BucketActive   = "active"
	BucketParked   = "parked"
	BucketLongTerm = "long_term"
	BucketSparks   = "sparks"
)

// validBuckets is the set of recognized bucket values.
var validBuckets = map[string]bool{
	BucketActive:   true,
	BucketParked:   true,
	BucketLongTerm: true,
	BucketSparks:   true,
}

// Idea priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// validPriorities is the set of recognized priority values.
var validPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// Field defaults applied by ApplyDefaults.
const (
	DefaultBucket   = BucketParked
	DefaultPriority = PriorityMedium
	DefaultStatus   = "draft"
)

// Entity method errors.
var (
	ErrInvalidBucket   = errors.New("invalid bucket value")
	ErrInvalidPriority = errors.New("invalid priority value")
	ErrInvalidTitle    = errors.New("invalid title")
	ErrActiveConflict  = errors.New("another idea is already active")
)

// Link is a labeled URL attached to an idea. Links are ordered.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Idea represents a single short-form idea record.
type Idea struct {
	IdeaID      string    `json:"idea_id"`     // UUID v7, generated on creation.
	Bucket      string    `json:"bucket"`      // One of the Bucket constants.
	Title       string    `json:"title"`       // Human-readable title (required, non-empty).
	Description string    `json:"description"` // Free-text description.
	Notes       string    `json:"notes"`       // Free-text working notes.
	Links       []Link    `json:"links"`       // Ordered labeled URLs.
	Tags        []string  `json:"tags"`        // Normalized, set-like.
	Priority    string    `json:"priority"`    // One of the Priority constants.
	Status      string    `json:"status"`      // Free-text status.
	NextAction  string    `json:"next_action"` // Free-text next action.
	CreatedAt   time.Time `json:"created_at"`  // Timestamp of creation.
	UpdatedAt   time.Time `json:"updated_at"`  // Timestamp of last modification; never decreases.
	ImageIDs    []string  `json:"image_ids"`   // IDs of images owned by this idea.
}

// NewIdea returns an Idea with every defaultable field populated from the
// defaults table: bucket parked, priority medium, status draft, empty slices.
func NewIdea() *Idea {
	return &Idea{
		Bucket:   DefaultBucket,
		Priority: DefaultPriority,
		Status:   DefaultStatus,
		Links:    []Link{},
		Tags:     []string{},
		ImageIDs: []string{},
	}
}

// ApplyDefaults fills absent fields in place from the defaults table. It is
// applied on every read path so records written by older versions (or merged
// from an imported bundle) always present the full shape.
func (i *Idea) ApplyDefaults() {
	if i.Bucket == "" {
		i.Bucket = DefaultBucket
	}
	if i.Priority == "" {
		i.Priority = DefaultPriority
	}
	if i.Status == "" {
		i.Status = DefaultStatus
	}
	if i.Links == nil {
		i.Links = []Link{}
	}
	if i.Tags == nil {
		i.Tags = []string{}
	}
	if i.ImageIDs == nil {
		i.ImageIDs = []string{}
	}
}

// SetBucket moves the idea to the given bucket.
// Returns ErrInvalidBucket if the bucket is not recognized.
// Idempotent: setting the current bucket succeeds without error.
func (i *Idea) SetBucket(bucket string) error {
	if !validBuckets[bucket] {
		return ErrInvalidBucket
	}
	i.Bucket = bucket
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// SetPriority sets the idea priority.
// Returns ErrInvalidPriority if the priority is not recognized.
func (i *Idea) SetPriority(priority string) error {
	if !validPriorities[priority] {
		return ErrInvalidPriority
	}
	i.Priority = priority
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// AddTag normalizes the tag and appends it if not already present.
// Returns true if the tag set changed.
func (i *Idea) AddTag(tag string) bool {
	norm := NormalizeTag(tag)
	if norm == "" || i.HasTag(norm) {
		return false
	}
	i.Tags = append(i.Tags, norm)
	i.UpdatedAt = time.Now().UTC()
	return true
}

// RemoveTag normalizes the tag and removes it if present.
// Returns true if the tag set changed.
func (i *Idea) RemoveTag(tag string) bool {
	norm := NormalizeTag(tag)
	for idx, t := range i.Tags {
		if t == norm {
			i.Tags = append(i.Tags[:idx], i.Tags[idx+1:]...)
			i.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// HasTag reports whether the normalized form of tag is present.
func (i *Idea) HasTag(tag string) bool {
	norm := NormalizeTag(tag)
	for _, t := range i.Tags {
		if t == norm {
			return true
		}
	}
	return false
}

// ValidBucket reports whether bucket is a recognized bucket value.
func ValidBucket(bucket string) bool {
	return validBuckets[bucket]
}

// ValidPriority reports whether priority is a recognized priority value.
func ValidPriority(priority string) bool {
	return validPriorities[priority]
}

// NormalizeTag lowercases the tag and collapses whitespace runs to single
// underscores. Idempotent: normalizing an already-normalized tag returns it
// unchanged. An all-whitespace tag normalizes to the empty string.
func NormalizeTag(tag string) string {
	fields := strings.Fields(tag)
	return strings.ToLower(strings.Join(fields, "_"))
}
