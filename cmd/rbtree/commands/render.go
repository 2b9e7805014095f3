package commands

import (
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable returns a borderless light table writing to out.
func newTable(out io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Format.Footer = text.FormatDefault

	return tbl
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	infoColor = color.New(color.FgCyan)
	warnColor = color.New(color.FgYellow)
)
