package factors

// Classification is the qualitative outcome of comparing a factor value
// against its configured normal band.
type Classification struct {
	Label string `json:"label"` // machine-readable case name
	Color string `json:"color"` // color token for rendering
	Text  string `json:"text"`  // display text
}

// bandRegion is the position of a value relative to the configured band.
type bandRegion int

const (
	// regionUndefined: no normal band configured (or unknown key /
	// missing value), so no anomaly can be flagged.
	regionUndefined bandRegion = iota
	regionInBand
	regionBelowBand
	regionAboveBand
	// regionOutOfRange: no normal band, but the value falls outside the
	// absolute [min, max] range.
	regionOutOfRange
)

// classCase keys the classification table on (region, inverse direction).
type classCase struct {
	region  bandRegion
	inverse bool
}

// classificationTable enumerates every classification outcome explicitly,
// so the policy stays auditable and exhaustively testable. Direction only
// matters outside the band: inside the band (and with no band defined)
// standard and inverse factors classify identically.
var classificationTable = map[classCase]Classification{
	{regionInBand, false}: {Label: "in-band", Color: "green", Text: "正常区间"},
	{regionInBand, true}:  {Label: "in-band", Color: "green", Text: "正常区间"},

	{regionBelowBand, false}: {Label: "below-band", Color: "blue", Text: "偏低"},
	{regionBelowBand, true}:  {Label: "below-band-favorable", Color: "green", Text: "偏低（利好）"},

	{regionAboveBand, false}: {Label: "above-band", Color: "orange", Text: "偏高"},
	{regionAboveBand, true}:  {Label: "above-band-risk", Color: "red", Text: "偏高（风险）"},

	{regionUndefined, false}: {Label: "neutral", Color: "gray", Text: "正常区间"},
	{regionUndefined, true}:  {Label: "neutral", Color: "gray", Text: "正常区间"},

	{regionOutOfRange, false}: {Label: "out-of-range", Color: "purple", Text: "超出范围"},
	{regionOutOfRange, true}:  {Label: "out-of-range", Color: "purple", Text: "超出范围"},
}

// classify looks up the classification for a region/direction pair.
func classify(region bandRegion, inverse bool) Classification {
	return classificationTable[classCase{region: region, inverse: inverse}]
}
