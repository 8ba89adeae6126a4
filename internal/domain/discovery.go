package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sgodwincs/cargo-mutants/internal/adapter"
	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

// SourceExtension is the extension of files considered for mutation.
const SourceExtension = ".rs"

// skippedDirs never contain sources of the package under test.
var skippedDirs = map[string]struct{}{
	".git":            {},
	".hg":             {},
	".jj":             {},
	".svn":            {},
	"target":          {},
	"mutants.out":     {},
	"mutants.out.old": {},
	"node_modules":    {},
	"vendor":          {},
}

var errNotDirectory = errors.New("not a directory")

// Discoverer enumerates the candidate source files of a project.
type Discoverer interface {
	// Discover returns every source file under root, sorted by relative path.
	Discover(ctx context.Context, root m.Path) ([]m.SourceFile, error)
}

type discoverer struct {
	adapter.SourceFSAdapter
}

// NewDiscoverer creates a Discoverer walking the tree through fsAdapter.
func NewDiscoverer(fsAdapter adapter.SourceFSAdapter) Discoverer {
	return &discoverer{SourceFSAdapter: fsAdapter}
}

func (d *discoverer) Discover(ctx context.Context, root m.Path) ([]m.SourceFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root = m.Path(filepath.Clean(string(root)))

	info, err := d.FileInfo(root)
	if err != nil {
		return nil, &m.DiscoveryError{Path: root, Err: err}
	}

	if !info.IsDir() {
		return nil, &m.DiscoveryError{Path: root, Err: errNotDirectory}
	}

	// Walk does not follow symlinks, the root included, so walk the real
	// directory and report paths under the root as given.
	walkRoot, err := d.ResolvePath(root)
	if err != nil {
		return nil, &m.DiscoveryError{Path: root, Err: err}
	}

	underRoot := func(path string) (m.Path, m.Path, error) {
		rel, err := d.RelPath(walkRoot, m.Path(path))
		if err != nil {
			return "", m.Path(path), err
		}

		return rel, d.JoinPath(string(root), string(rel)), nil
	}

	var files []m.SourceFile

	err = d.Walk(walkRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			_, full, _ := underRoot(path)
			return &m.DiscoveryError{Path: full, Err: err}
		}

		if info.IsDir() {
			if path != string(walkRoot) && isSkippedDir(info.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !info.Mode().IsRegular() || filepath.Ext(path) != SourceExtension {
			return nil
		}

		rel, full, err := underRoot(path)
		if err != nil {
			return &m.DiscoveryError{Path: full, Err: err}
		}

		files = append(files, m.SourceFile{
			ShortPath: m.Path(filepath.ToSlash(string(rel))),
			FullPath:  full,
		})

		return nil
	})
	if err != nil {
		var discoveryErr *m.DiscoveryError
		if errors.As(err, &discoveryErr) {
			return nil, err
		}

		return nil, &m.DiscoveryError{Path: root, Err: err}
	}

	slices.SortFunc(files, func(a, b m.SourceFile) int {
		return strings.Compare(string(a.ShortPath), string(b.ShortPath))
	})

	return files, nil
}

func isSkippedDir(name string) bool {
	_, ok := skippedDirs[name]

	return ok
}
