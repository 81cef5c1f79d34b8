package schema

import (
	gojson "github.com/goccy/go-json"

	"github.com/apache/arrow-go/v18/arrow"
)

// renderedField is the display shape of one schema column.
type renderedField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

type renderedSchema struct {
	Fields []renderedField `json:"fields"`
}

// Render returns the schema as indented JSON, one entry per column in
// schema order, for the print-schema mode.
func Render(s *arrow.Schema) ([]byte, error) {
	out := renderedSchema{Fields: make([]renderedField, s.NumFields())}
	for i, f := range s.Fields() {
		out.Fields[i] = renderedField{
			Name:     f.Name,
			Type:     f.Type.String(),
			Nullable: f.Nullable,
		}
	}
	return gojson.MarshalIndent(out, "", "  ")
}
