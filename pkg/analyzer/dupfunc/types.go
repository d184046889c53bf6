package dupfunc

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Signature is an immutable structural fingerprint of one function body:
// the distinct binary operators, callee names, and control-flow keywords
// it uses, plus counts of assignments, loops, conditions, and returns.
// Functions that differ only in identifier naming or formatting produce
// identical Signatures.
type Signature struct {
	operators map[string]struct{}
	calls     map[string]struct{}
	flow      map[string]struct{}

	assignments int
	loops       int
	conditions  int
	returns     int

	fingerprint uint64
}

// newSignature seals a builder's state into a comparable value.
func newSignature(b *signatureBuilder) Signature {
	s := Signature{
		operators:   b.operators,
		calls:       b.calls,
		flow:        b.flow,
		assignments: b.assignments,
		loops:       b.loops,
		conditions:  b.conditions,
		returns:     b.returns,
	}
	s.fingerprint = s.computeFingerprint()
	return s
}

// Fingerprint returns a 64-bit hash of the signature's canonical content.
// Equal signatures always share a fingerprint, so it serves as a cheap
// screen before the exact equality check.
func (s Signature) Fingerprint() uint64 {
	return s.fingerprint
}

// Operators returns the distinct binary operator tokens, sorted.
func (s Signature) Operators() []string { return sortedKeys(s.operators) }

// Calls returns the distinct callee names, sorted.
func (s Signature) Calls() []string { return sortedKeys(s.calls) }

// FlowKeywords returns the distinct control-flow keywords, sorted.
func (s Signature) FlowKeywords() []string { return sortedKeys(s.flow) }

// Counts returns the assignment, loop, condition, and return counts.
func (s Signature) Counts() (assignments, loops, conditions, returns int) {
	return s.assignments, s.loops, s.conditions, s.returns
}

func (s Signature) computeFingerprint() uint64 {
	h := xxhash.New()
	for _, set := range [][]string{s.Operators(), s.Calls(), s.FlowKeywords()} {
		for _, tok := range set {
			h.WriteString(tok)
			h.Write([]byte{0})
		}
		h.Write([]byte{0xff})
	}
	var buf [8]byte
	for _, n := range []int{s.assignments, s.loops, s.conditions, s.returns} {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FunctionRecord is one catalogued function: its name, structural
// signature, and location. Records live for the duration of one run.
type FunctionRecord struct {
	Name      string
	Signature Signature
	Line      int
	File      string
}

// Warning reports one suspected duplicate function.
type Warning struct {
	File              string `json:"file" toon:"file"`
	Line              int    `json:"line" toon:"line"`
	Function          string `json:"function" toon:"function"`
	SimilarityPercent int    `json:"similarity_percent" toon:"similarity_percent"`
	ReferenceFile     string `json:"reference_file" toon:"reference_file"`
	ReferenceLine     int    `json:"reference_line" toon:"reference_line"`
}

// String renders the warning in the build-log format consumed by build
// orchestrators and IDE issue parsers.
func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: warning: Duplicate function '%s' detected (similarity: %d%%). Similar logic exists in %s:%d",
		w.File, w.Line, w.Function, w.SimilarityPercent, w.ReferenceFile, w.ReferenceLine)
}

// Analysis is the full result of one detection run.
type Analysis struct {
	Warnings  []Warning `json:"warnings" toon:"warnings"`
	Summary   Summary   `json:"summary" toon:"summary"`
	Threshold float64   `json:"threshold" toon:"threshold"`
}

// Summary provides aggregate statistics for one run.
type Summary struct {
	TemplateFiles       int     `json:"template_files" toon:"template_files"`
	RegularFiles        int     `json:"regular_files" toon:"regular_files"`
	FunctionsCatalogued int     `json:"functions_catalogued" toon:"functions_catalogued"`
	CrossBucketWarnings int     `json:"cross_bucket_warnings" toon:"cross_bucket_warnings"`
	IntraBucketWarnings int     `json:"intra_bucket_warnings" toon:"intra_bucket_warnings"`
	AvgSimilarity       float64 `json:"avg_similarity" toon:"avg_similarity"`
	P50Similarity       float64 `json:"p50_similarity" toon:"p50_similarity"`
	P95Similarity       float64 `json:"p95_similarity" toon:"p95_similarity"`
}

// Config holds the detection tuning surface. The weights and divisor are
// policy constants, not derived values; they are exposed here so every
// boundary can be tuned and tested.
type Config struct {
	// Threshold is the minimum similarity score that produces a warning.
	Threshold float64

	// Sub-score weights. They should sum to 1 so the score stays in [0,1].
	OperatorWeight  float64
	CallWeight      float64
	FlowWeight      float64
	StructureWeight float64

	// StructuralDivisor saturates the structural count difference:
	// a combined difference of this many events scores zero.
	StructuralDivisor float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Threshold:         0.70,
		OperatorWeight:    0.30,
		CallWeight:        0.25,
		FlowWeight:        0.20,
		StructureWeight:   0.25,
		StructuralDivisor: 10,
	}
}
