package trades

import "strings"

// strategyMapping maps lower-cased verbose strategy names (and common
// abbreviations) to the short codes used in the tracker spreadsheet.
var strategyMapping = map[string]string{
	// Covered Call
	"covered call": "CC",
	"cc":           "CC",

	// Naked Put
	"naked put": "NP",
	"np":        "NP",

	// Cash-Secured Put
	"cash-secured put": "CSP",
	"cash secured put": "CSP",
	"csp":              "CSP",

	// Iron Condor
	"iron condor": "IC",
	"ic":          "IC",
	"condor":      "IC",

	// Iron Butterfly
	"iron butterfly": "IB",
	"ib":             "IB",
	"butterfly":      "IB",

	// Vertical Put Credit Spread
	"vertical put credit spread": "VPCS",
	"put credit spread":          "VPCS",
	"vertical put credit":        "VPCS",
	"vertical put spread":        "VPCS",
	"put vertical credit":        "VPCS",
	"put vertical":               "VPCS",
	"vertical put":               "VPCS",
	"pcs":                        "VPCS",
	"vpcs":                       "VPCS",

	// Vertical Put Debit Spread
	"vertical put debit spread": "VPDS",
	"put debit spread":          "VPDS",
	"vertical put debit":        "VPDS",
	"pds":                       "VPDS",
	"vpds":                      "VPDS",

	// Vertical Call Credit Spread
	"vertical call credit spread": "VCCS",
	"call credit spread":          "VCCS",
	"vertical call credit":        "VCCS",
	"vertical call spread":        "VCCS",
	"call vertical credit":        "VCCS",
	"call vertical":               "VCCS",
	"vertical call":               "VCCS",
	"ccs":                         "VCCS",
	"vccs":                        "VCCS",

	// Straddle
	"short straddle": "Straddle",
	"straddle":       "Straddle",

	// Strangle
	"short strangle": "Strangle",
	"strangle":       "Strangle",

	// Jade Lizard
	"jade lizard": "JadeLizard",
	"jadelizard":  "JadeLizard",
	"jade":        "JadeLizard",

	// Reverse Jade Lizard
	"reverse jade lizard": "RJade",
	"reverse jade":        "RJade",
	"rjade":               "RJade",

	// Zebra
	"zero extrinsic back ratio": "Zebra",
	"zebra":                     "Zebra",

	// 1-1-1
	"lt1-1-1": "1-1-1",
	"1-1-1":   "1-1-1",
	"111":     "1-1-1",

	// 1-1-2
	"lt1-1-2": "1-1-2",
	"1-1-2":   "1-1-2",
	"112":     "1-1-2",

	// Rolling Diagonal Puts
	"rolling diagonal puts": "RDP",
	"rolling diagonal":      "RDP",
	"diagonal puts":         "RDP",
	"rdp":                   "RDP",

	// Short LEAPS
	"short leaps": "LEAPPut",
	"leap put":    "LEAPPut",
	"leaps put":   "LEAPPut",
	"leapput":     "LEAPPut",

	// LEAPS Call Spread
	"leaps call spread": "LeapCS",
	"leap call spread":  "LeapCS",
	"leapcs":            "LeapCS",

	// Put Butterfly
	"put butterfly": "PButterfly",
	"pbutterfly":    "PButterfly",

	// Call Butterfly
	"call butterfly": "CButterfly",
	"cbutterfly":     "CButterfly",

	// VIX
	"vix uptrend": "VIX",
	"vix":         "VIX",
}

type keywordRule struct {
	keywords []string
	code     string
}

// strategyKeywords holds the keyword-conjunction fallback rules. A rule
// matches when every keyword is a substring of the input. Order matters:
// three-keyword rules come before two-keyword rules before the single-keyword
// catch-alls, so "put credit spread" never falls through to "strangle".
var strategyKeywords = []keywordRule{
	{[]string{"put", "credit", "spread"}, "VPCS"},
	{[]string{"put", "debit", "spread"}, "VPDS"},
	{[]string{"call", "credit", "spread"}, "VCCS"},
	{[]string{"call", "debit", "spread"}, "VCDS"},
	{[]string{"iron", "condor"}, "IC"},
	{[]string{"iron", "butterfly"}, "IB"},
	{[]string{"put", "butterfly"}, "PButterfly"},
	{[]string{"call", "butterfly"}, "CButterfly"},
	{[]string{"jade", "lizard"}, "JadeLizard"},
	{[]string{"reverse", "jade"}, "RJade"},
	{[]string{"rolling", "diagonal"}, "RDP"},
	{[]string{"diagonal", "put"}, "RDP"},
	{[]string{"cash", "secured"}, "CSP"},
	{[]string{"covered", "call"}, "CC"},
	{[]string{"naked", "put"}, "NP"},
	{[]string{"leap", "call"}, "LeapCS"},
	{[]string{"leap", "put"}, "LEAPPut"},
	{[]string{"put", "vertical"}, "VPCS"},
	{[]string{"vertical", "put"}, "VPCS"},
	{[]string{"call", "vertical"}, "VCCS"},
	{[]string{"vertical", "call"}, "VCCS"},
	{[]string{"straddle"}, "Straddle"},
	{[]string{"strangle"}, "Strangle"},
	{[]string{"condor"}, "IC"},
	{[]string{"zebra"}, "Zebra"},
}

// canonicalCodes indexes the short codes by their lower-cased form so an
// already-canonical input returns in canonical casing.
var canonicalCodes = func() map[string]string {
	codes := make(map[string]string)
	for _, code := range strategyMapping {
		codes[strings.ToLower(code)] = code
	}
	return codes
}()

// MapStrategyName resolves a free-text strategy name to its tracker short
// code: canonical codes pass through, then the exact mapping table, then the
// ordered keyword rules. Unrecognized input is returned unchanged; the mapper
// normalizes best-effort and never fails.
func MapStrategyName(strategy string) string {
	if strategy == "" {
		return strategy
	}

	key := strings.ToLower(strings.TrimSpace(strategy))

	if code, ok := canonicalCodes[key]; ok {
		return code
	}
	if code, ok := strategyMapping[key]; ok {
		return code
	}
	for _, rule := range strategyKeywords {
		matched := true
		for _, keyword := range rule.keywords {
			if !strings.Contains(key, keyword) {
				matched = false
				break
			}
		}
		if matched {
			return rule.code
		}
	}

	return strategy
}
