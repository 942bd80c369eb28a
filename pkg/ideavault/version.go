// Package ideavault holds module-level metadata shared by commands.
package ideavault

// Version is the current release version of the ideavault tool.
const Version = "0.1.0"
