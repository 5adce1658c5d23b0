package pipeline

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var entitySuffixes = regexp.MustCompile(
	`(?i)(?:\s*,\s*|\s+)(INC\.?|LLC\.?|LTD\.?|LIMITED|CORP\.?|CORPORATION|` +
		`CO\.?|COMPANY|GMBH|S\.A\.?|AG|PLC)\s*\.?\s*$`)

var (
	nameNoise  = regexp.MustCompile(`[^\w\s\-.,!?()&]`)
	multiSpace = regexp.MustCompile(`\s{2,}`)
)

// diacriticFold strips combining marks after NFKD decomposition, so
// "Café Société" compares equal to "Cafe Societe".
var diacriticFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeName canonicalizes a company name for fuzzy comparison: fold
// diacritics, strip trailing entity suffixes (repeatedly, so "X Co., Ltd."
// loses both), drop punctuation noise, collapse whitespace, lowercase.
func NormalizeName(name string) string {
	n := strings.TrimSpace(name)
	if folded, _, err := transform.String(diacriticFold, n); err == nil {
		n = folded
	}
	for {
		stripped := entitySuffixes.ReplaceAllString(n, "")
		if stripped == n {
			break
		}
		n = stripped
	}
	n = nameNoise.ReplaceAllString(n, "")
	n = multiSpace.ReplaceAllString(n, " ")
	return strings.ToLower(strings.TrimSpace(n))
}

// NormalizeDomain canonicalizes a bare domain: lowercase, no scheme, no
// leading www, no trailing slash or path.
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimPrefix(d, "www.")
	return d
}

// DomainOf resolves a record's identity domain: the explicit domain when set,
// otherwise the host of its website URL. Returns "" when neither yields one.
func DomainOf(domain, website string) string {
	if d := NormalizeDomain(domain); d != "" {
		return d
	}
	w := strings.TrimSpace(website)
	if w == "" {
		return ""
	}
	if !strings.Contains(w, "://") {
		w = "https://" + w
	}
	u, err := url.Parse(w)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return NormalizeDomain(u.Hostname())
}

// Similarity returns the Ratcliff-Obershelp ratio of two strings in [0,1]:
// twice the number of matching characters over the total length, where
// matches are found by recursing around the longest common substring.
// Two empty strings are identical (1.0).
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingChars(ra, rb)) / float64(total)
}

func matchingChars(a, b []rune) int {
	aStart, bStart, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	matched := size
	matched += matchingChars(a[:aStart], b[:bStart])
	matched += matchingChars(a[aStart+size:], b[bStart+size:])
	return matched
}

func longestCommonSubstring(a, b []rune) (aStart, bStart, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	// Single-row DP over suffix lengths.
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					aStart = i - size
					bStart = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return aStart, bStart, size
}
