package formskema

import "github.com/reoring/formskema/codec"

// ScalarParser overrides coercion for a single string. name is the full
// dotted key. Returning ok=false defers to the built-in coercion.
type ScalarParser func(name, value string) (v any, ok bool)

// NumberMode dictates how numeric strings are represented.
type NumberMode = codec.NumberMode

const (
	NumberFloat64    = codec.NumberFloat64    // Fast mode (with potential precision loss).
	NumberJSONNumber = codec.NumberJSONNumber // Preserve json.Number.
)

// ConflictPolicy controls what happens when a key disagrees with a container
// created by an earlier key.
type ConflictPolicy int

const (
	ConflictError     ConflictPolicy = iota // Report container_conflict and skip the entry.
	ConflictOverwrite                       // Replace the existing slot (last writer wins).
)

// DefaultMaxArrayIndex bounds index segments unless Options.MaxArrayIndex is set.
const DefaultMaxArrayIndex = 10000

// Options configures Expand and the form decoders. The zero value is the
// default behaviour: all coercions on, empty strings dropped, conflicts
// reported.
type Options struct {
	CustomParser ScalarParser

	KeepEmptyScalarString     bool // Store "" instead of deleting the key.
	KeepEmptyStringInSequence bool // Keep "" elements in multi-valued fields.

	DisableNumbers  bool
	DisableBooleans bool
	DisableDates    bool
	NumberMode      NumberMode

	OnConflict    ConflictPolicy
	MaxArrayIndex int // <= 0 means DefaultMaxArrayIndex.
}

func (o Options) scalar() codec.Scalar {
	return codec.Scalar{
		Numbers:    !o.DisableNumbers,
		Booleans:   !o.DisableBooleans,
		Dates:      !o.DisableDates,
		NumberMode: o.NumberMode,
	}
}

func (o Options) maxIndex() int {
	if o.MaxArrayIndex <= 0 {
		return DefaultMaxArrayIndex
	}
	return o.MaxArrayIndex
}
