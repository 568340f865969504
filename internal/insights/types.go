// Package insights generates and validates industry insight records: the
// salary/demand/trend snapshot shown on the dashboard for a user's industry.
package insights

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type DemandLevel string

const (
	DemandHigh   DemandLevel = "HIGH"
	DemandMedium DemandLevel = "MEDIUM"
	DemandLow    DemandLevel = "LOW"
)

type MarketOutlook string

const (
	OutlookPositive MarketOutlook = "POSITIVE"
	OutlookNeutral  MarketOutlook = "NEUTRAL"
	OutlookNegative MarketOutlook = "NEGATIVE"
)

// SalaryRange is one role's salary band within an industry.
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// SalaryRanges is stored as a single JSON column.
type SalaryRanges []SalaryRange

func (s SalaryRanges) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SalaryRanges) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return fmt.Errorf("unsupported salary range column type %T", src)
}

// StringList is stored as a single JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported string list column type %T", src)
}

// Insights is a fully validated insight payload, minus the bookkeeping
// timestamps the store adds when it persists one.
type Insights struct {
	SalaryRange       SalaryRanges  `json:"salaryRange"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       DemandLevel   `json:"demandLevel"`
	TopSkills         StringList    `json:"topSkills"`
	MarketOutlook     MarketOutlook `json:"marketOutlook"`
	KeyTrends         StringList    `json:"keyTrends"`
	RecommendedSkills StringList    `json:"recommendedSkills"`
}

// RawInsights is the untrusted shape parsed from model output. Field types
// are deliberately loose; Sanitize turns this into a usable Insights value
// no matter what the model sent back.
type RawInsights struct {
	SalaryRange       []RawSalaryRange `json:"salaryRange"`
	GrowthRate        any              `json:"growthRate"`
	DemandLevel       string           `json:"demandLevel"`
	TopSkills         []string         `json:"topSkills"`
	MarketOutlook     string           `json:"marketOutlook"`
	KeyTrends         []string         `json:"keyTrends"`
	RecommendedSkills []string         `json:"recommendedSkills"`
}

type RawSalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}
