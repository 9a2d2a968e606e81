package metis

import (
	"fmt"
	"reflect"
	"time"
)

// validateValue enforces the closed value domain at the compile boundary.
// Anything outside it would otherwise rely on driver-specific coercion.
func validateValue(value any) error {
	switch value.(type) {
	case nil,
		string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, []byte:
		return nil
	}

	return ValidationError{
		Subject: fmt.Sprintf("%T", value),
		Reason:  "value type outside the supported domain",
	}
}

// asValueSlice normalizes the value given to an IN / NOT IN condition into a
// []any, accepting any slice or array type except []byte.
func asValueSlice(value any) ([]any, bool) {
	if values, ok := value.([]any); ok {
		return values, true
	}

	if _, ok := value.([]byte); ok {
		return nil, false
	}

	reflected := reflect.ValueOf(value)
	if reflected.Kind() != reflect.Slice && reflected.Kind() != reflect.Array {
		return nil, false
	}

	values := make([]any, 0, reflected.Len())
	for i := 0; i < reflected.Len(); i++ {
		values = append(values, reflected.Index(i).Interface())
	}

	return values, true
}
