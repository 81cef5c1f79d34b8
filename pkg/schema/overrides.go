// Package schema consolidates numeric type directives, applies them to
// inferred Arrow schemas, and renders schemas for display.
package schema

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/csvpq/csvpq/pkg/errors"
)

// Wildcard spellings accepted in any directive list. A wildcard sets the
// category default width instead of naming a column; it never enters the
// override map.
const (
	WildcardStar = "*"
	WildcardAll  = "__all__"
)

// Built-in default widths for inferred numeric columns when no wildcard
// directive changes them.
var (
	DefaultIntType   arrow.DataType = arrow.PrimitiveTypes.Int64
	DefaultFloatType arrow.DataType = arrow.PrimitiveTypes.Float32
)

// Directives carries the raw column lists given to the four width flags,
// in flag order.
type Directives struct {
	Int32   []string
	Int64   []string
	Float32 []string
	Float64 []string
}

// Overrides maps column names to the Arrow type forced for that column.
// Keys are case-sensitive and match header names exactly.
type Overrides map[string]arrow.DataType

// Defaults holds the fallback widths applied to inferred integer and float
// columns that have no explicit override.
type Defaults struct {
	Int   arrow.DataType
	Float arrow.DataType
}

func isWildcard(column string) bool {
	return column == WildcardStar || column == WildcardAll
}

func hasWildcard(columns []string) bool {
	for _, c := range columns {
		if isWildcard(c) {
			return true
		}
	}
	return false
}

func duplicateColumn(column string) error {
	return errors.Newf(errors.ErrorTypeConfig,
		"data type for column `%s' was specified multiple times", column)
}

// Consolidate merges the four directive lists into one override map and the
// pair of category defaults. Wildcard entries set the category default;
// named entries land in the override map.
//
// Lists are scanned in i32, i64, f32, f64 order. The i32 list populates the
// map unchecked, so duplicates within it collapse silently; every later
// list fails on a column that is already mapped. Both wildcard categories
// of the same numeric kind being set is rejected before any scanning.
func Consolidate(d Directives) (Overrides, Defaults, error) {
	defaults := Defaults{Int: DefaultIntType, Float: DefaultFloatType}

	if hasWildcard(d.Int32) && hasWildcard(d.Int64) {
		return nil, defaults, errors.New(errors.ErrorTypeConfig,
			"i32 and i64 can't both be the default data types for integers")
	}
	if hasWildcard(d.Float32) && hasWildcard(d.Float64) {
		return nil, defaults, errors.New(errors.ErrorTypeConfig,
			"f32 and f64 can't both be the default data types for floats")
	}

	overrides := make(Overrides, len(d.Int32)+len(d.Int64)+len(d.Float32)+len(d.Float64))

	for _, column := range d.Int32 {
		if isWildcard(column) {
			defaults.Int = arrow.PrimitiveTypes.Int32
		} else {
			overrides[column] = arrow.PrimitiveTypes.Int32
		}
	}

	for _, column := range d.Int64 {
		if isWildcard(column) {
			defaults.Int = arrow.PrimitiveTypes.Int64
			continue
		}
		if _, dup := overrides[column]; dup {
			return nil, defaults, duplicateColumn(column)
		}
		overrides[column] = arrow.PrimitiveTypes.Int64
	}

	for _, column := range d.Float32 {
		if isWildcard(column) {
			defaults.Float = arrow.PrimitiveTypes.Float32
			continue
		}
		if _, dup := overrides[column]; dup {
			return nil, defaults, duplicateColumn(column)
		}
		overrides[column] = arrow.PrimitiveTypes.Float32
	}

	for _, column := range d.Float64 {
		if isWildcard(column) {
			defaults.Float = arrow.PrimitiveTypes.Float64
			continue
		}
		if _, dup := overrides[column]; dup {
			return nil, defaults, duplicateColumn(column)
		}
		overrides[column] = arrow.PrimitiveTypes.Float64
	}

	return overrides, defaults, nil
}
