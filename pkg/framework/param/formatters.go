package param

import (
	"strconv"
	"strings"
)

// Common parameter formatters and parsers

// FixedFormatter returns a formatter with a fixed number of decimals.
func FixedFormatter(decimals int) func(float32) string {
	return func(value float32) string {
		return strconv.FormatFloat(float64(value), 'f', decimals, 32)
	}
}

// FloatParser parses a plain decimal number
func FloatParser(str string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}
