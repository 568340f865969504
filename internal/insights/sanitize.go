package insights

import (
	"regexp"
	"strings"
)

// Gemini occasionally injects the literal token "Null" into role names and
// skill lists instead of omitting the field.
var nullToken = regexp.MustCompile(`(?i)null\s*`)

// Sanitize turns an untrusted model payload into a well-formed Insights
// value. Every field is checked independently and replaced with a safe
// default when missing or invalid, so this never fails regardless of what
// the model returned.
func Sanitize(raw RawInsights, industry string) Insights {
	out := Insights{
		SalaryRange:       SalaryRanges{},
		GrowthRate:        5,
		DemandLevel:       DemandMedium,
		MarketOutlook:     OutlookNeutral,
		TopSkills:         cleanList(raw.TopSkills),
		KeyTrends:         cleanList(raw.KeyTrends),
		RecommendedSkills: cleanList(raw.RecommendedSkills),
	}

	for _, r := range raw.SalaryRange {
		role := strings.TrimSpace(nullToken.ReplaceAllString(r.Role, ""))
		if role == "" {
			role = industry + " Professional"
		}
		out.SalaryRange = append(out.SalaryRange, SalaryRange{
			Role:     role,
			Min:      r.Min,
			Max:      r.Max,
			Median:   r.Median,
			Location: r.Location,
		})
	}

	switch v := raw.GrowthRate.(type) {
	case float64:
		out.GrowthRate = v
	case int:
		out.GrowthRate = float64(v)
	}

	switch DemandLevel(raw.DemandLevel) {
	case DemandHigh, DemandMedium, DemandLow:
		out.DemandLevel = DemandLevel(raw.DemandLevel)
	}

	switch MarketOutlook(raw.MarketOutlook) {
	case OutlookPositive, OutlookNeutral, OutlookNegative:
		out.MarketOutlook = MarketOutlook(raw.MarketOutlook)
	}

	return out
}

// cleanList drops empty entries and anything still carrying a "null" token.
func cleanList(in []string) StringList {
	out := StringList{}
	for _, s := range in {
		if s == "" || strings.Contains(strings.ToLower(s), "null") {
			continue
		}
		out = append(out, s)
	}
	return out
}
