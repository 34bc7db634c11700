// Package ui renders terminal output for the hypermedia CLI.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Table is a column aligned table with a colored header
type Table struct {
	writer    io.Writer
	headers   []string
	rows      [][]string
	noColor   bool
	cellColor func(col int, cell string) *color.Color
}

// TableOptions configures table behavior
type TableOptions struct {
	NoColor bool
	// CellColor picks the color of a body cell; nil or a nil result
	// leaves the cell uncolored
	CellColor func(col int, cell string) *color.Color
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, headers []string, opts *TableOptions) *Table {
	t := &Table{
		writer:  w,
		headers: headers,
	}
	if opts != nil {
		t.noColor = opts.NoColor
		t.cellColor = opts.CellColor
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = len(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	header := t.color(color.Bold, color.FgCyan)
	for i, h := range t.headers {
		header.Fprint(t.writer, t.pad(h, widths[i], i))
	}
	fmt.Fprintln(t.writer)

	gray := t.color(color.FgHiBlack)
	for i, width := range widths {
		gray.Fprint(t.writer, strings.Repeat("─", width))
		if i < len(widths)-1 {
			fmt.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			text := t.pad(cell, widths[i], i)
			if c := t.colorFor(i, cell); c != nil {
				c.Fprint(t.writer, text)
			} else {
				fmt.Fprint(t.writer, text)
			}
		}
		fmt.Fprintln(t.writer)
	}
}

// pad right-pads s to width and separates it from the next column
func (t *Table) pad(s string, width, col int) string {
	if len(s) < width {
		s += strings.Repeat(" ", width-len(s))
	}
	if col < len(t.headers)-1 {
		s += "  "
	}
	return s
}

func (t *Table) colorFor(col int, cell string) *color.Color {
	if t.cellColor == nil {
		return nil
	}
	c := t.cellColor(col, cell)
	if c != nil && t.noColor {
		c.DisableColor()
	}
	return c
}

func (t *Table) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.noColor {
		c.DisableColor()
	}
	return c
}

// KeyValueTable renders aligned key: value lines
type KeyValueTable struct {
	writer  io.Writer
	keys    []string
	values  []string
	noColor bool
}

// NewKeyValueTable creates a new key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow adds a key-value pair
func (t *KeyValueTable) AddRow(key, value string) {
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
}

// Render writes the rows
func (t *KeyValueTable) Render() {
	width := 0
	for _, k := range t.keys {
		if len(k)+1 > width {
			width = len(k) + 1
		}
	}

	cyan := color.New(color.FgCyan, color.Bold)
	if t.noColor {
		cyan.DisableColor()
	}
	for i, k := range t.keys {
		key := k + ":"
		cyan.Fprint(t.writer, key+strings.Repeat(" ", width-len(key)))
		fmt.Fprintf(t.writer, " %s\n", t.values[i])
	}
}
