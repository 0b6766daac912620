package output

import (
	"io"

	"github.com/dmitrijs2005/hustleadmin/internal/client/models"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Table collects rows and renders them left-aligned without borders.
type Table struct {
	table  *tablewriter.Table
	header []string
	rows   [][]string
}

func NewTable(w io.Writer, headers []string) *Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	return &Table{table: table, header: headers}
}

func (t *Table) AddRow(row []string) {
	t.rows = append(t.rows, row)
}

func (t *Table) Render() error {
	t.table.Header(t.header)
	if err := t.table.Bulk(t.rows); err != nil {
		return err
	}
	return t.table.Render()
}

// RenderRows renders records of one type as a table. Nothing but the
// fallback line is printed for an empty slice.
func RenderRows[T models.Row](w io.Writer, rows []T, empty string) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, empty+"\n")
		return err
	}
	t := NewTable(w, rows[0].TableHeader())
	for _, r := range rows {
		t.AddRow(r.TableRow())
	}
	return t.Render()
}

// RenderFields renders label/value pairs as a two-column table.
func RenderFields(w io.Writer, fields [][2]string) error {
	t := NewTable(w, []string{"Field", "Value"})
	for _, f := range fields {
		t.AddRow([]string{f[0], f[1]})
	}
	return t.Render()
}
