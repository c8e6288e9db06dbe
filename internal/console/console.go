// Package console provides the reporting surface handed to components that
// render human-facing output. Components receive a *Console rather than
// writing to a process-wide singleton, so tests and embedders can capture or
// silence output.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Alignment selects column alignment for table rendering.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Console writes human-facing output, with ANSI color when the destination
// is a terminal.
type Console struct {
	out   io.Writer
	color bool
}

// New builds a console writing to out. Color is enabled only when out is a
// terminal.
func New(out io.Writer) *Console {
	color := false
	if f, ok := out.(*os.File); ok {
		fd := f.Fd()
		color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &Console{out: out, color: color}
}

// NewPlain builds a console that never emits color.
func NewPlain(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Success prints a line in green when color is enabled.
func (c *Console) Success(format string, args ...any) {
	c.printColored("\x1b[32m", format, args...)
}

// Warn prints a line in yellow when color is enabled.
func (c *Console) Warn(format string, args ...any) {
	c.printColored("\x1b[33m", format, args...)
}

// Errorf prints a line in red when color is enabled.
func (c *Console) Errorf(format string, args ...any) {
	c.printColored("\x1b[31m", format, args...)
}

func (c *Console) printColored(code, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if c.color {
		fmt.Fprintf(c.out, "%s%s\x1b[0m\n", code, line)
	} else {
		fmt.Fprintln(c.out, line)
	}
}

// Table renders headers and rows as a rounded table.
func (c *Console) Table(headers []string, rows [][]string, aligns []Alignment) {
	columns := len(headers)
	if columns == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	fmt.Fprintln(c.out, tw.Render())
}
