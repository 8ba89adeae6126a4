package adapter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

// MutantCounter reports how many mutants the mutation engine generates for a
// selected file. It is the only part of `--list` output this tool does not own.
type MutantCounter interface {
	CountMutants(ctx context.Context, file m.SourceFile) (int, error)
}

// fnItemPattern matches the start of a Rust fn item on a trimmed line.
var fnItemPattern = regexp.MustCompile(
	`^(pub(\([^)]*\))?\s+)?(default\s+)?((const|async|unsafe)\s+)*(extern\s+("[^"]*"\s+)?)?fn\s+[A-Za-z_][A-Za-z0-9_]*`,
)

const maxLineBytes = 1 << 20

// FnItemCounter estimates one mutant per function body, which is what the
// engine's "replace body" mutation produces. It scans lines and does not
// parse the language, so fns inside comments or strings are counted too.
type FnItemCounter struct {
	fs SourceFSAdapter
}

// NewFnItemCounter creates a FnItemCounter reading files through fsAdapter.
func NewFnItemCounter(fsAdapter SourceFSAdapter) *FnItemCounter {
	return &FnItemCounter{fs: fsAdapter}
}

// CountMutants returns the number of fn items in file.
func (c *FnItemCounter) CountMutants(ctx context.Context, file m.SourceFile) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	content, err := c.fs.ReadFile(file.FullPath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", file.ShortPath, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	count := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "//") {
			continue
		}

		if fnItemPattern.MatchString(line) {
			count++
		}
	}

	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scan %s: %w", file.ShortPath, err)
	}

	return count, nil
}
