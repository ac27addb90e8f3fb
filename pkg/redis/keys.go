package redis

import "fmt"

// RGBStateKey returns the key for the last published color of a location (hash)
// Pattern: light:rgb:{location}
func RGBStateKey(location string) string {
	return fmt.Sprintf("light:rgb:%s", location)
}
