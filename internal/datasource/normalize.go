package datasource

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseLineValue normalizes a book-quoted line that may arrive as a JSON
// number or a formatted string like "+3.5" or "-110". Returns nil when the
// value is absent or unparseable.
func ParseLineValue(v interface{}) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "+"))
		if s == "" {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil
		}
		f, _ := d.Float64()
		return &f
	default:
		return nil
	}
}
