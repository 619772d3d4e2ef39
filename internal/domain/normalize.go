package domain

import (
	"strings"
	"unicode"
)

// TransportSuffix is the address suffix the chat transport appends to identities.
const TransportSuffix = "@s.whatsapp.net"

// minFragmentDigits is the shortest digit run accepted for substring identity matching.
const minFragmentDigits = 8

// NormalizeText prepares free text for menu matching:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of whitespace into one space
//
// Diacritics are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalIdentity returns the digits-only form of a contact address,
// dropping any transport suffix ("+55 41 9820-0712@s.whatsapp.net" -> "554198200712").
func CanonicalIdentity(identity string) string {
	if i := strings.IndexByte(identity, '@'); i >= 0 {
		identity = identity[:i]
	}
	return DigitsOnly(identity)
}

// TransportAddress returns the address the chat transport expects for identity.
func TransportAddress(identity string) string {
	if strings.Contains(identity, "@") {
		return identity
	}
	return CanonicalIdentity(identity) + TransportSuffix
}

// IdentityQuery describes how to locate an identity in the store.
// Variants are compared for equality against the canonical stored identity;
// Fragment, when non-empty, is a substring fallback.
type IdentityQuery struct {
	Variants []string
	Fragment string
}

// IsEmpty reports whether the query can match nothing.
func (q IdentityQuery) IsEmpty() bool {
	return len(q.Variants) == 0 && q.Fragment == ""
}

// ExactIdentity builds a query that matches the canonical identity with and
// without the country prefix.
func ExactIdentity(identity, countryCode string) IdentityQuery {
	return IdentityQuery{Variants: IdentityVariants(identity, countryCode)}
}

// LooseIdentity is ExactIdentity plus a substring fallback. Used by operator
// commands where the typed number may be partial or oddly formatted.
func LooseIdentity(identity, countryCode string) IdentityQuery {
	q := ExactIdentity(identity, countryCode)
	if digits := CanonicalIdentity(identity); len(digits) >= minFragmentDigits {
		q.Fragment = digits
	}
	return q
}

// IdentityVariants lists the canonical forms an identity may be stored under:
// as given, without the country prefix, and with it. Duplicates are removed and
// order is preserved.
func IdentityVariants(identity, countryCode string) []string {
	digits := CanonicalIdentity(identity)
	if digits == "" {
		return nil
	}

	candidates := []string{digits}
	if countryCode != "" {
		local := strings.TrimPrefix(digits, countryCode)
		candidates = append(candidates, local, countryCode+local)
	}

	seen := make(map[string]struct{}, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		variants = append(variants, c)
	}
	return variants
}
