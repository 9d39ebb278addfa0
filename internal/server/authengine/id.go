package authengine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidID is returned when a value cannot serve as an identifier.
var ErrInvalidID = errors.New("invalid identifier")

// CoerceID converts an engine identifier (string, integer, integral float
// as decoded from JSON/protobuf, or fmt.Stringer such as uuid.UUID) to its
// opaque string form. Strings are not normalized: " u-1 " stays " u-1 ".
func CoerceID(v any) (string, error) {
	var s string
	switch id := v.(type) {
	case nil:
		return "", ErrInvalidID
	case string:
		s = id
	case int:
		s = strconv.Itoa(id)
	case int32:
		s = strconv.FormatInt(int64(id), 10)
	case int64:
		s = strconv.FormatInt(id, 10)
	case uint:
		s = strconv.FormatUint(uint64(id), 10)
	case uint32:
		s = strconv.FormatUint(uint64(id), 10)
	case uint64:
		s = strconv.FormatUint(id, 10)
	case float64:
		if id != math.Trunc(id) || math.IsInf(id, 0) {
			return "", fmt.Errorf("%w: %v", ErrInvalidID, id)
		}
		s = strconv.FormatFloat(id, 'f', -1, 64)
	case []byte:
		s = string(id)
	case fmt.Stringer:
		s = id.String()
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidID, v)
	}

	if s == "" {
		return "", ErrInvalidID
	}
	return s, nil
}

// DisplayID renders v for messages without failing; unusable values print
// as-is.
func DisplayID(v any) string {
	if s, err := CoerceID(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
