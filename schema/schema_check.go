package schema

// CheckResult holds the results of a readiness gate.
type CheckResult struct {
	Passed        bool
	Company       string
	OverallScore  float64
	OverallStatus ReadinessLabel
	MinOverall    float64
	MinByDomain   map[DomainName]float64
	DomainScores  []DomainScore
	Failures      []CheckFailure
}

// CheckFailure represents a score that fell below its required minimum.
type CheckFailure struct {
	Scope     string // "overall" or a domain name
	Score     float64
	Threshold float64
}
