// Package installer copies a BMAD template tree into a target directory.
// Each installation type is a sibling directory of the tool's install root, named after the type's ID.
// Existing files in the target are overwritten, never merged.
package installer
