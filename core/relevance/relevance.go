// ABOUTME: Kenya-relevance heuristic and host allow-list for domestic feeds
// ABOUTME: Rule-ordered keyword matcher, first match wins, default keep

package relevance

import (
	"net/url"
	"regexp"
	"strings"
)

// AllowedHosts is the explicit allow-list for domestic feed links. Items
// whose link hostname is not on it (exact or subdomain) are rejected.
var AllowedHosts = []string{
	"capitalfm.co.ke",
	"citizen.digital",
	"kbc.co.ke",
	"kenyans.co.ke",
	"ktnnews.co.ke",
	"nation.africa",
	"ntvkenya.co.ke",
	"pd.co.ke",
	"standardmedia.co.ke",
	"the-star.co.ke",
	"tuko.co.ke",
}

// Rule 1: explicit country/demonym mention.
var countryPattern = regexp.MustCompile(`(?i)\bkenyans?\b|\bkenya\b`)

// Rule 2: first-level administrative regions (the 47 counties).
var counties = []string{
	"Baringo", "Bomet", "Bungoma", "Busia", "Elgeyo Marakwet", "Embu",
	"Garissa", "Homa Bay", "Isiolo", "Kajiado", "Kakamega", "Kericho",
	"Kiambu", "Kilifi", "Kirinyaga", "Kisii", "Kisumu", "Kitui", "Kwale",
	"Laikipia", "Lamu", "Machakos", "Makueni", "Mandera", "Marsabit",
	"Meru", "Migori", "Mombasa", "Murang'a", "Nairobi", "Nakuru", "Nandi",
	"Narok", "Nyamira", "Nyandarua", "Nyeri", "Samburu", "Siaya",
	"Taita Taveta", "Tana River", "Tharaka Nithi", "Trans Nzoia",
	"Turkana", "Uasin Gishu", "Vihiga", "Wajir", "West Pokot",
}

// Rule 3: local institutions, currency terms and entities.
var vocabulary = []string{
	"boda boda", "bunge", "county assembly", "eacc", "harambee", "iebc",
	"kdf", "kenya power", "kplc", "kra", "ksh", "matatu", "mpesa",
	"m-pesa", "nhif", "nssf", "raila odinga", "safaricom", "shilling",
	"state house", "william ruto",
}

// Rule 4: feed-supplied tags that look like a country/region marker.
var tagPattern = regexp.MustCompile(`(?i)kenya|nairobi|east africa`)

// Rule 5: globally-salient but non-domestic terms. Only consulted when no
// positive rule matched.
var foreignTerms = []string{
	"america", "beijing", "biden", "brazil", "britain", "china",
	"ethiopia", "france", "gaza", "germany", "india", "iran", "israel",
	"japan", "london", "moscow", "nigeria", "pakistan", "putin", "russia",
	"south africa", "tanzania", "trump", "uganda", "ukraine",
	"united states", "washington", "white house", "zelensky",
}

var (
	countyPatterns  = wordPatterns(counties)
	vocabPatterns   = wordPatterns(vocabulary)
	foreignPatterns = wordPatterns(foreignTerms)
)

// wordPatterns compiles case-insensitive word-boundary matchers for a
// curated term list.
func wordPatterns(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return out
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// IsRelevant decides domestic applicability of a story. The rules run in
// a fixed order and the first match wins; a story with no signal either
// way is kept, because false negatives are worse than false positives for
// a local-news product.
func IsRelevant(title string, tags []string) bool {
	// 1. explicit country/demonym mention
	if countryPattern.MatchString(title) {
		return true
	}

	// 2. county names
	if anyMatch(countyPatterns, title) {
		return true
	}

	// 3. local vocabulary
	if anyMatch(vocabPatterns, title) {
		return true
	}

	// 4. country/region tags
	for _, tag := range tags {
		if tagPattern.MatchString(tag) {
			return true
		}
	}

	// 5. foreign signal with no domestic signal above
	if anyMatch(foreignPatterns, title) {
		return false
	}

	// 6. no signal either way
	return true
}

// IsAllowedHost reports whether the link's hostname is on the domestic
// allow-list, exact match or subdomain.
func IsAllowedHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, allowed := range AllowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}
