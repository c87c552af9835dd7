package common

import (
	"net/url"
	"strings"
)

// Form is an ordered application/x-www-form-urlencoded body.
// url.Values sorts keys on Encode; the wallet server logs parameters as sent.
type Form struct {
	keys   []string
	values []string
}

// Add appends a key/value pair
func (f *Form) Add(key, value string) {
	f.keys = append(f.keys, key)
	f.values = append(f.values, value)
}

// Get returns the first value stored under key
func (f *Form) Get(key string) (string, bool) {
	for i, k := range f.keys {
		if k == key {
			return f.values[i], true
		}
	}
	return "", false
}

// Len returns the number of pairs
func (f *Form) Len() int {
	return len(f.keys)
}

// Encode renders the form with every key and value query-escaped
func (f *Form) Encode() string {
	var sb strings.Builder
	for i, k := range f.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(f.values[i]))
	}
	return sb.String()
}

// SplitWords splits a phrase on any run of whitespace
func SplitWords(phrase string) []string {
	return strings.Fields(phrase)
}
