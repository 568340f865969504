package insights

// Fallback builds a complete insight record without touching the network.
// It is a pure function of the industry name: the same industry always
// produces the same record, and different industries vary through a small
// string hash. Used whenever the Gemini client is missing or its call fails.
func Fallback(industry string) Insights {
	hash := industryHash(industry)

	demandLevels := []DemandLevel{DemandLow, DemandMedium, DemandHigh}
	marketOutlooks := []MarketOutlook{OutlookNegative, OutlookNeutral, OutlookPositive}

	topSkills := dedupe([]string{
		industry + " Fundamentals",
		industry + " Tools",
		"Communication",
		"Problem Solving",
		"Data Analysis",
		"Leadership",
	})[:5]

	h := float64(hash)
	return Insights{
		SalaryRange: SalaryRanges{
			{Role: industry + " Analyst", Min: 45000 + h*100, Max: 75000 + h*120, Median: 60000 + h*110, Location: "US"},
			{Role: industry + " Specialist", Min: 55000 + h*110, Max: 90000 + h*130, Median: 72000 + h*120, Location: "US"},
			{Role: industry + " Manager", Min: 70000 + h*120, Max: 120000 + h*140, Median: 95000 + h*130, Location: "US"},
			{Role: industry + " Director", Min: 90000 + h*130, Max: 150000 + h*160, Median: 120000 + h*140, Location: "US"},
			{Role: industry + " Consultant", Min: 80000 + h*115, Max: 130000 + h*145, Median: 105000 + h*135, Location: "US"},
		},
		GrowthRate:    float64(3 + hash%15),
		DemandLevel:   demandLevels[hash%3],
		MarketOutlook: marketOutlooks[(hash>>2)%3],
		TopSkills:     topSkills,
		RecommendedSkills: StringList{
			industry + " Frameworks",
			industry + " Best Practices",
			"Project Management",
			"Collaboration",
			"Testing/QA",
		},
		KeyTrends: StringList{
			industry + " Automation",
			industry + " AI Adoption",
			industry + " Cloud Migration",
			industry + " Security",
			industry + " Sustainability",
		},
	}
}

// industryHash folds the industry string into 0..100.
func industryHash(industry string) int {
	acc := 0
	for _, r := range industry {
		acc = (acc*33 + int(r)) % 101
	}
	return acc
}

func dedupe(in []string) StringList {
	seen := make(map[string]bool, len(in))
	out := StringList{}
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
