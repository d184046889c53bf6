package dupfunc

import "math"

// Similarity scores two signatures in [0, 1]. The score combines
// union-normalized overlap of the operator, call, and flow sets with a
// saturating comparison of the structural counts, weighted per cfg.
// It is symmetric and deterministic, and identical signatures score 1.
func Similarity(a, b Signature, cfg Config) float64 {
	if a.equal(b) {
		return 1.0
	}

	operatorMatch := setOverlap(a.operators, b.operators)
	callMatch := setOverlap(a.calls, b.calls)
	flowMatch := setOverlap(a.flow, b.flow)

	structDiff := absDiff(a.assignments, b.assignments) +
		absDiff(a.loops, b.loops) +
		absDiff(a.conditions, b.conditions) +
		absDiff(a.returns, b.returns)
	structuralMatch := math.Max(0, 1-float64(structDiff)/cfg.StructuralDivisor)

	return cfg.OperatorWeight*operatorMatch +
		cfg.CallWeight*callMatch +
		cfg.FlowWeight*flowMatch +
		cfg.StructureWeight*structuralMatch
}

// equal reports full structural equality. Mismatched fingerprints rule
// out equality immediately; matching ones are confirmed field by field
// so a hash collision can never inflate a score to 1.
func (s Signature) equal(o Signature) bool {
	if s.fingerprint != o.fingerprint {
		return false
	}
	if s.assignments != o.assignments || s.loops != o.loops ||
		s.conditions != o.conditions || s.returns != o.returns {
		return false
	}
	return setsEqual(s.operators, o.operators) &&
		setsEqual(s.calls, o.calls) &&
		setsEqual(s.flow, o.flow)
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// setOverlap is the Jaccard index, with two empty sets counting as a
// full match so functions using no operators, calls, or flow keywords
// are not penalized.
func setOverlap(a, b map[string]struct{}) float64 {
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1
	}
	return float64(intersection) / float64(union)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
