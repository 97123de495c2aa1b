package camsettings

import (
	"strconv"
)

// Conversions between logical values and their canonical storage encoding.
// Every bool and int has exactly one string representation: booleans encode
// as "0"/"1", integers as their decimal form.

// convertInt returns the storage encoding of an int.
func convertInt(value int) string {
	return strconv.Itoa(value)
}

// parseInt decodes the storage encoding back to an int.
func parseInt(value string) (int, error) {
	return strconv.Atoi(value)
}

// convertBool returns the storage encoding of a bool.
func convertBool(value bool) string {
	if value {
		return "1"
	}
	return "0"
}

// parseBool decodes the storage encoding back to a bool. Any non-zero
// integer is true, so values written as ints read back as bools.
func parseBool(value string) (bool, error) {
	n, err := parseInt(value)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
