package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/marcus/daygrid/internal/timeline"
)

// StyleDescriptor is the tagged form of a style token.
type StyleDescriptor struct {
	Kind  string              `json:"kind"`
	Value string              `json:"value,omitempty"`
	Spec  *timeline.StyleSpec `json:"spec,omitempty"`
}

// Descriptor is one painted region, addressed by row and columns.
type Descriptor struct {
	RowIndex    int             `json:"rowIndex"`
	Day         int             `json:"day"`
	Date        string          `json:"date"`
	StartColumn int             `json:"startColumn"`
	EndColumn   int             `json:"endColumn"`
	Start       string          `json:"start"`
	End         string          `json:"end"`
	Style       StyleDescriptor `json:"style"`
	Overlap     bool            `json:"overlap"`
	Label       string          `json:"label,omitempty"`
}

// DescribeStyle converts a style token to its tagged form.
func DescribeStyle(s timeline.Style) StyleDescriptor {
	d := StyleDescriptor{Kind: s.Kind.String(), Value: s.Value}
	if s.Kind == timeline.StyleStructured {
		spec := s.Spec
		d.Spec = &spec
	}
	return d
}

// Descriptors lists every region of the grid in row and paint order.
func Descriptors(g *timeline.Grid) []Descriptor {
	out := []Descriptor{}
	for _, row := range g.Rows {
		for _, r := range row.Regions {
			out = append(out, Descriptor{
				RowIndex:    r.Row,
				Day:         row.Day,
				Date:        timeline.DayTime(row.Day).Format("2006-01-02"),
				StartColumn: r.StartColumn,
				EndColumn:   r.EndColumn,
				Start:       timeline.FormatMinute(r.Interval.Start),
				End:         timeline.FormatMinute(r.Interval.End),
				Style:       DescribeStyle(r.Style),
				Overlap:     r.Overlap,
				Label:       r.Label,
			})
		}
	}
	return out
}

// WriteJSON writes the region table as indented JSON, syntax-highlighted
// for a terminal when colour is set.
func WriteJSON(w io.Writer, g *timeline.Grid, colour bool) error {
	data, err := json.MarshalIndent(Descriptors(g), "", "  ")
	if err != nil {
		return fmt.Errorf("encode regions: %w", err)
	}
	data = append(data, '\n')
	if !colour {
		_, err = w.Write(data)
		return err
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(data), "json", "terminal256", "monokai"); err != nil {
		// fall back to plain output
		_, err = w.Write(data)
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}
