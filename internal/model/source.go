// Package model defines the data structures shared by the source selection pipeline.
package model

import (
	"slices"
	"strings"
)

// Path represents a file system path.
type Path string

// SourceFile represents a candidate source file of the project.
type SourceFile struct {
	// ShortPath is relative to the project root and always uses forward slashes.
	ShortPath Path
	// FullPath is ShortPath joined onto the project root in OS form.
	FullPath Path
}

// Selection is the ordered, deduplicated set of source files a run operates on.
// The zero value is an empty selection.
type Selection struct {
	files []SourceFile
}

// NewSelection sorts files by ShortPath and drops duplicates.
func NewSelection(files []SourceFile) Selection {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b SourceFile) int {
		return strings.Compare(string(a.ShortPath), string(b.ShortPath))
	})

	sorted = slices.CompactFunc(sorted, func(a, b SourceFile) bool {
		return a.ShortPath == b.ShortPath
	})

	return Selection{files: sorted}
}

// Files returns a copy of the selected files in order.
func (s Selection) Files() []SourceFile {
	return slices.Clone(s.files)
}

// Paths returns the relative path of each selected file in order.
func (s Selection) Paths() []Path {
	paths := make([]Path, 0, len(s.files))
	for _, file := range s.files {
		paths = append(paths, file.ShortPath)
	}

	return paths
}

// Len returns the number of selected files.
func (s Selection) Len() int {
	return len(s.files)
}

// FileCount pairs a selected file with the number of mutants generated for it.
type FileCount struct {
	File    SourceFile
	Mutants int
}
