package invites

import (
	"strings"
	"time"
)

// CodeLength is the fixed length of an invite code.
const CodeLength = 6

// codeAlphabet is the set of characters a generated code is drawn from.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCode maps a short human-enterable code to its issuing owner.
// An owner holds at most one active code; rotation replaces it in place.
type InviteCode struct {
	OwnerID   string
	Code      string
	CreatedAt time.Time
}

// Normalize canonicalizes user input before lookup.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidFormat reports whether a normalized code has the expected shape.
func ValidFormat(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			return false
		}
	}
	return true
}
