package source

import (
	"fmt"
	"os"

	"github.com/marcus/daygrid/internal/timeline"
	"gopkg.in/yaml.v3"
)

type yamlStyle struct {
	Name      string `yaml:"name"`
	Fg        string `yaml:"fg"`
	Bg        string `yaml:"bg"`
	Bold      bool   `yaml:"bold"`
	Italic    bool   `yaml:"italic"`
	Underline bool   `yaml:"underline"`
	Reverse   bool   `yaml:"reverse"`
}

type yamlRecord struct {
	Date     string    `yaml:"date"`
	Time     string    `yaml:"time"`
	Kind     string    `yaml:"kind"`
	Duration string    `yaml:"duration"`
	Label    string    `yaml:"label"`
	Style    yaml.Node `yaml:"style"`
}

// readYAML accepts a top-level list of records or a mapping with an
// "activities" list. JSON documents decode the same way.
func readYAML(path string) ([]rawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil // empty file
	}

	var list []yamlRecord
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var wrapper struct {
			Activities []yamlRecord `yaml:"activities"`
		}
		if err := root.Decode(&wrapper); err != nil {
			return nil, err
		}
		list = wrapper.Activities
	default:
		return nil, fmt.Errorf("line %d: expected a list of activities", root.Line)
	}

	raws := make([]rawRecord, len(list))
	for i, r := range list {
		raws[i] = rawRecord{
			Date:     r.Date,
			Time:     r.Time,
			Kind:     r.Kind,
			Duration: r.Duration,
			Label:    r.Label,
		}
		if st, ok := decodeStyle(&r.Style); ok {
			raws[i].StyleValue = &st
		}
	}
	return raws, nil
}

// decodeStyle handles the mapping forms; scalars fall through to ParseStyle.
func decodeStyle(n *yaml.Node) (timeline.Style, bool) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return timeline.Style{}, true
		}
		return ParseStyle(n.Value), true
	case yaml.MappingNode:
		var ys yamlStyle
		if err := n.Decode(&ys); err != nil {
			return timeline.Style{}, false
		}
		if ys.Name != "" {
			return timeline.NamedStyle(ys.Name), true
		}
		return timeline.StructuredStyle(timeline.StyleSpec{
			Foreground: ys.Fg,
			Background: ys.Bg,
			Bold:       ys.Bold,
			Italic:     ys.Italic,
			Underline:  ys.Underline,
			Reverse:    ys.Reverse,
		}), true
	default:
		return timeline.Style{}, false
	}
}
