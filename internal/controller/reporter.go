// Package controller provides output adapters for displaying the source selection.
package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

// Reporter defines how the selection and related output reach the user.
type Reporter interface {
	// DisplayFiles prints one relative path per line.
	DisplayFiles(ctx context.Context, selection m.Selection) error
	// DisplayCounts prints each file with its mutant count.
	DisplayCounts(ctx context.Context, counts []m.FileCount) error
	// DisplayConfig prints an encoded configuration document.
	DisplayConfig(ctx context.Context, content []byte) error
}

// SimpleReporter writes plain text to an io.Writer.
type SimpleReporter struct {
	out    io.Writer
	styled bool
}

// NewSimpleReporter creates a SimpleReporter. When styled is true zero counts
// are rendered faint; it should only be set for terminals.
func NewSimpleReporter(out io.Writer, styled bool) *SimpleReporter {
	return &SimpleReporter{out: out, styled: styled}
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// DisplayFiles prints the selected paths in order.
func (s *SimpleReporter) DisplayFiles(ctx context.Context, selection m.Selection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, path := range selection.Paths() {
		buf.WriteString(string(path))
		buf.WriteByte('\n')
	}

	_, err := s.out.Write(buf.Bytes())

	return err
}

// DisplayCounts renders a Path/Mutants table with a totals footer.
func (s *SimpleReporter) DisplayCounts(ctx context.Context, counts []m.FileCount) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := io.WriteString(s.out, renderCountTable(counts, s.styled))

	return err
}

// DisplayConfig writes content as is.
func (s *SimpleReporter) DisplayConfig(ctx context.Context, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.out.Write(content)

	return err
}

var zeroStyle = lipgloss.NewStyle().Faint(true)

func renderCountTable(counts []m.FileCount, styled bool) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Mutants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, count := range counts {
		cell := strconv.Itoa(count.Mutants)
		if styled && count.Mutants == 0 {
			cell = zeroStyle.Render(cell)
		}

		table.Append([]string{string(count.File.ShortPath), cell})

		total += count.Mutants
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total files %d", len(counts)),
		strconv.Itoa(total),
	})

	table.Render()

	return tableBuffer.String()
}
