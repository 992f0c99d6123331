// Package utils provides small helpers shared by the normalizers and reports.
package utils

import "strings"

// StringPtr returns a pointer to the string s.
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to the int i.
func IntPtr(i int) *int {
	return &i
}

// NonEmpty returns a pointer to the trimmed s, or nil when s is blank.
func NonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns *s, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
