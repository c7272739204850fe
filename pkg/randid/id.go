// Package randid provides random ID generation utilities.
package randid

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const chars = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate creates a random alphanumeric ID of the specified length.
func Generate(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = chars[rand.IntN(len(chars))]
	}
	return string(b)
}

// Session returns an ID for one shell run: the start time in base 36
// followed by a random suffix, so IDs sort roughly by start time.
func Session() string {
	return strconv.FormatInt(time.Now().Unix(), 36) + "-" + Generate(6)
}
