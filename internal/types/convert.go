package types

import (
	"fmt"
	"unicode/utf8"
)

// ValueLength measures a field value in characters, the way it would print.
// Null values measure zero. Non-string values are measured on their default
// string form, so numbers keep their digit count.
func ValueLength(v interface{}) int {
	switch s := v.(type) {
	case nil:
		return 0
	case string:
		return utf8.RuneCountInString(s)
	default:
		return utf8.RuneCountInString(fmt.Sprint(s))
	}
}
