package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nuclio/errors"
	"sigs.k8s.io/yaml"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type renderer struct {
	output io.Writer
}

func newRenderer(output io.Writer) *renderer {
	return &renderer{
		output: output,
	}
}

// render writes items as JSON or YAML, or as a table built from header and records.
func (r *renderer) render(format string, items interface{}, header []interface{}, records [][]interface{}) error {
	switch format {
	case outputJSON:
		return r.renderJSON(items)
	case outputYAML:
		return r.renderYAML(items)
	case outputTable, "":
		r.renderTable(header, records)
		return nil
	}
	return errors.Errorf("Unknown output format: %s", format)
}

func (r *renderer) renderTable(header []interface{}, records [][]interface{}) {
	tw := table.NewWriter()
	tw.SetOutputMirror(r.output)
	tw.SetStyle(table.Style{
		Name: "Huffpack",
		Box: table.BoxStyle{
			MiddleVertical: "|",
			PaddingLeft:    " ",
			PaddingRight:   " ",
		},
		Options: table.Options{
			DoNotColorBordersAndSeparators: true,
			DrawBorder:                     false,
			SeparateColumns:                true,
			SeparateFooter:                 false,
			SeparateHeader:                 false,
			SeparateRows:                   false,
		},
		Color:  table.ColorOptionsDefault,
		Format: table.FormatOptionsDefault,
		HTML:   table.DefaultHTMLOptions,
		Title:  table.TitleOptionsDefault,
	})
	tw.AppendHeader(table.Row(header), table.RowConfig{})
	for _, record := range records {
		tw.AppendRow(table.Row(record), table.RowConfig{})
	}
	tw.Render()
}

func (r *renderer) renderYAML(items interface{}) error {
	body, err := yaml.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "Failed to render YAML")
	}

	fmt.Fprint(r.output, string(body)) // nolint: errcheck

	return nil
}

func (r *renderer) renderJSON(items interface{}) error {
	body, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "Failed to render JSON")
	}

	var pbody bytes.Buffer
	if err := json.Indent(&pbody, body, "", "\t"); err != nil {
		return errors.Wrap(err, "Failed to indent JSON")
	}

	fmt.Fprintln(r.output, pbody.String()) // nolint: errcheck

	return nil
}
