// Shared helpers for ideavault CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/brennanjay-74/idea-vault/internal/sqlite"
	"github.com/brennanjay-74/idea-vault/internal/vault"
	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// validBucketsStr lists the bucket values for flag help and error output.
const validBucketsStr = "active, parked, long_term, sparks"

// openService resolves the data directory, attaches a SQLite backend, and
// wraps it in the invariants service. The caller must defer backend.Detach().
func openService() (*sqlite.Backend, *vault.Service, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, nil, fmt.Errorf("attach backend: %w", err)
	}

	svc, err := vault.NewService(backend)
	if err != nil {
		backend.Detach()
		return nil, nil, fmt.Errorf("load vault: %w", err)
	}
	return backend, svc, nil
}

// lookupIdea resolves an idea reference, full ID or unique prefix, with
// user-facing error messages. Accepts the short IDs printed by list output.
func lookupIdea(svc *vault.Service, ref string) (*types.Idea, error) {
	idea, err := svc.Find(ref)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("idea %s not found", ref)
		}
		if errors.Is(err, vault.ErrAmbiguousID) {
			return nil, fmt.Errorf("idea ID %s matches more than one idea; use more characters", ref)
		}
		return nil, fmt.Errorf("get idea: %w", err)
	}
	return idea, nil
}

// printJSON renders any value as indented JSON on stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// shortID returns the first 8 characters of an entity ID for list output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printIdeaLine prints one idea as a list row.
func printIdeaLine(idea *types.Idea) {
	tags := ""
	if len(idea.Tags) > 0 {
		tags = " [" + strings.Join(idea.Tags, ",") + "]"
	}
	fmt.Printf("%s  %-9s  %-6s  %s%s\n", shortID(idea.IdeaID), idea.Bucket, idea.Priority, idea.Title, tags)
}

// printIdeaDetail prints every field of an idea.
func printIdeaDetail(idea *types.Idea) {
	fmt.Printf("ID:          %s\n", idea.IdeaID)
	fmt.Printf("Title:       %s\n", idea.Title)
	fmt.Printf("Bucket:      %s\n", idea.Bucket)
	fmt.Printf("Priority:    %s\n", idea.Priority)
	fmt.Printf("Status:      %s\n", idea.Status)
	if idea.Description != "" {
		fmt.Printf("Description: %s\n", idea.Description)
	}
	if idea.Notes != "" {
		fmt.Printf("Notes:       %s\n", idea.Notes)
	}
	if idea.NextAction != "" {
		fmt.Printf("Next action: %s\n", idea.NextAction)
	}
	if len(idea.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", strings.Join(idea.Tags, ", "))
	}
	for _, l := range idea.Links {
		fmt.Printf("Link:        %s (%s)\n", l.URL, l.Label)
	}
	if len(idea.ImageIDs) > 0 {
		fmt.Printf("Images:      %s\n", strings.Join(idea.ImageIDs, ", "))
	}
	fmt.Printf("Created:     %s\n", idea.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("Updated:     %s\n", idea.UpdatedAt.Local().Format("2006-01-02 15:04"))
}

// parseLinkFlag parses a label=url flag value into a Link.
func parseLinkFlag(value string) (types.Link, error) {
	label, url, ok := strings.Cut(value, "=")
	if !ok || label == "" || url == "" {
		return types.Link{}, fmt.Errorf("invalid link %q: expected label=url", value)
	}
	return types.Link{Label: label, URL: url}, nil
}
