package application

import (
	"strings"

	"github.com/google/uuid"
)

// canonicalIDLen is the hyphenated 8-4-4-4-12 form. uuid.Parse also accepts
// urn, braced and bare-hex spellings; those are rejected here.
const canonicalIDLen = 36

// ValidateID fails with ErrInvalidArgument unless id is a hyphenated UUID and
// returns it in canonical lower-case form.
func ValidateID(kind, id string) (string, error) {
	if len(id) != canonicalIDLen {
		return "", invalidArg("invalid " + kind + " id")
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return "", invalidArg("invalid " + kind + " id")
	}
	return u.String(), nil
}

// sameID compares two ids regardless of letter case.
func sameID(a, b string) bool { return strings.EqualFold(a, b) }

func blank(s string) bool { return strings.TrimSpace(s) == "" }
