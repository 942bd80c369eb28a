// Package types defines the Vault and Table interfaces, entity types, and
// standard errors for the idea-vault storage system.
package types
