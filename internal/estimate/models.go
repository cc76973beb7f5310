package estimate

// Provenance tells callers whether a page count came from index data.
type Provenance string

const (
	ProvenanceMeasured  Provenance = "measured"
	ProvenanceEstimated Provenance = "estimated"
)

// Basis records which decision branch produced a page count.
type Basis string

const (
	// BasisMeasured: converted index blocks met the domain's floor.
	BasisMeasured Basis = "measured"
	// BasisFloor: index data was missing or below the curated floor.
	BasisFloor Basis = "floor"
	// BasisSynthetic: no index data and no floor, so the hash estimate was used.
	BasisSynthetic Basis = "synthetic"
	// BasisFault: the estimate sequence failed and fell back to the hash estimate.
	BasisFault Basis = "fault"
)

// Outcome is the estimator's result. PageCount is always within the
// configured bounds.
type Outcome struct {
	PageCount  int        `json:"pages"`
	Provenance Provenance `json:"provenance"`
	Basis      Basis      `json:"basis"`
}

// IsMeasured reports whether the count came from index data.
func (o Outcome) IsMeasured() bool {
	return o.Provenance == ProvenanceMeasured
}

// indexResult is one index's contribution to the fan-out.
type indexResult struct {
	index  string
	blocks int
}
