// Package phone canonicalizes Argentine phone numbers so the client
// directory and the WhatsApp gateway agree on a single representation.
package phone

import "strings"

const mobilePrefix = "549"

// Normalize reduces a phone number to bare digits and canonicalizes
// Argentine numbers to the 549-prefixed mobile form WhatsApp uses
// (54 9 area number). Non-Argentine numbers are left as digits only.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if strings.HasPrefix(digits, mobilePrefix) {
		return digits
	}
	if strings.HasPrefix(digits, "54") {
		return mobilePrefix + digits[2:]
	}
	return digits
}

// FromWhatsApp strips the gateway's JID suffix ("5493512345678@c.us")
// and normalizes the remainder.
func FromWhatsApp(jid string) string {
	if i := strings.IndexByte(jid, '@'); i >= 0 {
		jid = jid[:i]
	}
	return Normalize(jid)
}

// Matches reports whether two numbers refer to the same line after
// normalization, tolerating a missing country code on either side.
func Matches(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.HasSuffix(na, nb) || strings.HasSuffix(nb, na)
}
