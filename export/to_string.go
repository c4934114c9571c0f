package export

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// toString converts a decoded cell value to its CSV representation.
//
// Decoded scalars cover the codec package's result types: primitives are
// formatted with strconv, time.Time as RFC3339Nano, blobs as hex, and
// anything with a String method (uuid, netip.Addr, decimal) through it.
// Decoded collections fall through to JSON.
func toString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return hex.EncodeToString(v)
	case bool:
		return strconv.FormatBool(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", v)
}
