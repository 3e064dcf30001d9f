package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips all markup from free-text input (app names, award
// reasons) before it reaches storage or a dashboard.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
