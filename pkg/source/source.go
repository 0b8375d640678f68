package source

import (
	"path/filepath"
	"strings"
)

// Unit represents one compilation unit: a single source file together with
// its content. Type declarations are owned by the unit they were parsed
// from, and a declaration's identity includes its containing unit.
type Unit struct {
	Name    string   // Display name (e.g., "app.phx", "<eval>")
	Path    string   // Full file path (empty for eval input)
	Content string   // The source text
	lines   []string // Cached split lines (lazy initialization)
}

// NewUnit creates a compilation unit with an explicit display name.
func NewUnit(name, path, content string) *Unit {
	return &Unit{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// FromFile creates a Unit from a file path and its content.
func FromFile(filePath, content string) *Unit {
	return NewUnit(filepath.Base(filePath), filePath, content)
}

// NewEvalUnit creates a unit for eval input that has no backing file.
func NewEvalUnit(content string) *Unit {
	return NewUnit("<eval>", "", content)
}

// Lines returns the source split into lines (cached).
func (u *Unit) Lines() []string {
	if u.lines == nil {
		u.lines = strings.Split(u.Content, "\n")
	}
	return u.lines
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name).
func (u *Unit) DisplayPath() string {
	if u.Path != "" {
		return u.Path
	}
	return u.Name
}

// IsFile reports whether this unit is backed by an actual file.
func (u *Unit) IsFile() bool {
	return u.Path != ""
}
