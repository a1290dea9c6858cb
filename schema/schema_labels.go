package schema

// LabelBand is the score range of one readiness label.
type LabelBand struct {
	Label ReadinessLabel `json:"label"`
	Min   float64        `json:"min"`
	Max   float64        `json:"max"`
}

// LexiconEntry is a response label and the score it maps to.
type LexiconEntry struct {
	Response string  `json:"response"`
	Score    float64 `json:"score"`
}

// LabelsRenderModel describes how responses become scores and scores become labels.
type LabelsRenderModel struct {
	Bands             []LabelBand    `json:"bands"`
	Lexicon           []LexiconEntry `json:"lexicon"`
	ScaleMin          int            `json:"scale_min"`
	ScaleMax          int            `json:"scale_max"`
	StrengthThreshold float64        `json:"strength_threshold"`
	GapThreshold      float64        `json:"gap_threshold"`
}
