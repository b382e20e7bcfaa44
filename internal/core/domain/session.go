package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Session is the client-held projection of an authenticated identity. RoleName
// carries the resolved internal role name so authorization decisions never
// need a further lookup.
type Session struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	RoleName  string `json:"role_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Initials  string `json:"initials"`
}

// Initials derives up to two uppercase initials from a display name, for
// avatar fallbacks in the console.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	first := firstRuneUpper(fields[0])
	if len(fields) == 1 {
		return first
	}
	return first + firstRuneUpper(fields[len(fields)-1])
}

func firstRuneUpper(word string) string {
	r, _ := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
