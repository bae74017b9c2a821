package fragment

import (
	"fmt"
	"strconv"
)

// attrValue converts a dynamic attribute result to its serialized form.
// The second return is false when the attribute should be absent: nil and
// false both remove, true renders as a bare boolean attribute.
func attrValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case bool:
		return "", t
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}
