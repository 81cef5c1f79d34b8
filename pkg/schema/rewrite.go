package schema

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// Rewrite applies overrides and defaults onto an inferred schema and
// returns the schema used for writing. An explicit override wins for any
// column it names, whatever the inferred type. Otherwise the generic int64
// and float64 placeholders the inferring reader assigns to numeric columns
// narrow to the category defaults. Every other inferred type passes through
// untouched. Field order, nullability, and metadata are preserved.
func Rewrite(s *arrow.Schema, overrides Overrides, defaults Defaults) *arrow.Schema {
	fields := make([]arrow.Field, s.NumFields())
	for i, field := range s.Fields() {
		if forced, ok := overrides[field.Name]; ok {
			field.Type = forced
		} else if field.Type.ID() == arrow.INT64 {
			field.Type = defaults.Int
		} else if field.Type.ID() == arrow.FLOAT64 {
			field.Type = defaults.Float
		}
		fields[i] = field
	}

	md := s.Metadata()
	return arrow.NewSchema(fields, &md)
}
