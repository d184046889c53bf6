package dupfunc

import (
	"math"
	"testing"
)

func TestSimilarity_IdenticalSignatures(t *testing.T) {
	code := `func compact(values: [Int]) -> Int {
    var acc = 0
    for v in values {
        acc += v
    }
    return acc
}
`
	a := extractFirst(t, code)
	b := extractFirst(t, code)

	if score := Similarity(a, b, DefaultConfig()); score != 1.0 {
		t.Errorf("Similarity = %f, want 1.0", score)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := extractFirst(t, `func first(x: Int) -> Int {
    if x > 0 {
        return x + 1
    }
    return 0
}
`)
	b := extractFirst(t, `func second(s: [Int]) -> Int {
    var n = 0
    for v in s {
        n += v * 2
    }
    return n
}
`)

	cfg := DefaultConfig()
	if ab, ba := Similarity(a, b, cfg), Similarity(b, a, cfg); ab != ba {
		t.Errorf("score not symmetric: %f vs %f", ab, ba)
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	snippets := []string{
		"func a() {}\n",
		"func b() -> Int {\n    return 42\n}\n",
		`func c(x: Int) -> Int {
    var t = 0
    t = x + 1
    if t > 10 {
        return t
    }
    return x
}
`,
		`func d(items: [String]) {
    for item in items {
        emit(item)
    }
}
`,
	}

	var sigs []Signature
	for _, s := range snippets {
		sigs = append(sigs, extractFirst(t, s))
	}

	cfg := DefaultConfig()
	for i, a := range sigs {
		for j, b := range sigs {
			score := Similarity(a, b, cfg)
			if score < 0 || score > 1 {
				t.Errorf("score(%d,%d) = %f, out of [0,1]", i, j, score)
			}
		}
	}
}

func TestSimilarity_EmptyBodiesFullyMatch(t *testing.T) {
	a := extractFirst(t, "func left() {}\n")
	b := extractFirst(t, "func right() {}\n")

	if score := Similarity(a, b, DefaultConfig()); score != 1.0 {
		t.Errorf("empty bodies score = %f, want 1.0", score)
	}
}

// Two functions with identical calls, flow, and structural counts but
// fully disjoint operator sets lose exactly the operator weight.
func TestSimilarity_DisjointOperators(t *testing.T) {
	a := extractFirst(t, `func upper(x: Int, y: Int) -> Int {
    if x > y {
        return x + y
    }
    return x
}
`)
	b := extractFirst(t, `func lower(x: Int, y: Int) -> Int {
    if x < y {
        return x * y
    }
    return x
}
`)

	cfg := DefaultConfig()
	score := Similarity(a, b, cfg)
	want := cfg.CallWeight + cfg.FlowWeight + cfg.StructureWeight

	if math.Abs(score-want) > 1e-9 {
		t.Errorf("score = %f, want %f", score, want)
	}
	if score < cfg.Threshold {
		t.Errorf("score %f should clear the default threshold %f", score, cfg.Threshold)
	}
}

// A fingerprint collision between structurally different signatures
// must not short-circuit to a perfect score.
func TestSimilarity_FingerprintCollisionStaysExact(t *testing.T) {
	a := extractFirst(t, `func a(x: Int) -> Int {
    if x > 0 {
        return x + 1
    }
    return 0
}
`)
	b := extractFirst(t, `func b(items: [Int]) {
    for item in items {
        emit(item)
    }
}
`)

	cfg := DefaultConfig()
	honest := Similarity(a, b, cfg)
	if honest == 1.0 {
		t.Fatal("test signatures must not be structurally equal")
	}

	forged := b
	forged.fingerprint = a.fingerprint

	if score := Similarity(a, forged, cfg); score != honest {
		t.Errorf("colliding fingerprints changed the score: %f, want %f", score, honest)
	}
}

func TestSimilarity_StructuralSaturation(t *testing.T) {
	empty := extractFirst(t, "func nothing() {}\n")
	busy := extractFirst(t, `func busy(x: Int) -> Int {
    var a = 0
    a = x
    a = a + 1
    a = a + 2
    emit(a)
    if a > 1 {
        return a
    }
    if a > 2 {
        return a
    }
    if a > 3 {
        return a
    }
    return a
}
`)

	// 3 assignments, 3 conditions, 4 returns: combined difference of 10
	// saturates the structural term, and each nonempty set has zero
	// overlap with the empty signature.
	if score := Similarity(empty, busy, DefaultConfig()); score != 0 {
		t.Errorf("score = %f, want 0", score)
	}
}
