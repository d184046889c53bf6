package dupfunc

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Ashakiran-cell/DuplicateDetector/pkg/parser"
)

// signatureBuilder accumulates structural events during one body walk.
type signatureBuilder struct {
	operators map[string]struct{}
	calls     map[string]struct{}
	flow      map[string]struct{}

	assignments int
	loops       int
	conditions  int
	returns     int
}

func newSignatureBuilder() *signatureBuilder {
	return &signatureBuilder{
		operators: make(map[string]struct{}),
		calls:     make(map[string]struct{}),
		flow:      make(map[string]struct{}),
	}
}

// binaryExprTypes are the tree-sitter Swift node kinds that carry a
// binary operator in their "op" field.
var binaryExprTypes = map[string]struct{}{
	"additive_expression":       {},
	"multiplicative_expression": {},
	"comparison_expression":     {},
	"equality_expression":       {},
	"conjunction_expression":    {},
	"disjunction_expression":    {},
	"nil_coalescing_expression": {},
	"bitwise_operation":         {},
	"infix_expression":          {},
	"range_expression":          {},
}

// ExtractSignature walks a function body subtree once, visiting every
// node, and reduces it to a Signature. Nested closures and local
// functions are traversed as part of the same body. A nil body yields
// the zero Signature.
func ExtractSignature(body *sitter.Node, source []byte) Signature {
	b := newSignatureBuilder()
	if body == nil {
		return newSignature(b)
	}

	parser.WalkTyped(body, source, func(node *sitter.Node, nodeType string, src []byte) bool {
		switch nodeType {
		case "assignment":
			b.assignments++

		case "call_expression":
			if callee := calleeName(node, src); callee != "" {
				b.calls[callee] = struct{}{}
			}

		case "for_statement":
			b.loops++
			b.flow["for"] = struct{}{}

		case "while_statement", "repeat_while_statement":
			b.loops++
			b.flow["while"] = struct{}{}

		case "if_statement":
			b.conditions++
			b.flow["if"] = struct{}{}

		case "switch_statement":
			b.conditions++
			b.flow["switch"] = struct{}{}

		case "control_transfer_statement":
			if transferKeyword(node) == "return" {
				b.returns++
				b.flow["return"] = struct{}{}
			}

		default:
			if _, ok := binaryExprTypes[nodeType]; ok {
				if op := operatorText(node, src); op != "" {
					b.operators[op] = struct{}{}
				}
			}
		}
		return true // full traversal, no early termination
	})

	return newSignature(b)
}

// calleeName resolves the callee of a call expression: a plain
// identifier, or the member name of a navigation (x.y) callee.
// Anything else contributes nothing.
func calleeName(call *sitter.Node, source []byte) string {
	target := call.Child(0)
	if target == nil {
		return ""
	}

	switch target.Type() {
	case "simple_identifier":
		return parser.GetNodeText(target, source)
	case "navigation_expression":
		return navigationMember(target, source)
	default:
		return ""
	}
}

// navigationMember returns the accessed member name of a navigation
// expression, e.g. "reduce" for nums.reduce(...).
func navigationMember(nav *sitter.Node, source []byte) string {
	suffix := nav.ChildByFieldName("suffix")
	if suffix == nil {
		return ""
	}
	// The suffix node wraps "." plus the member identifier; take the
	// last named child so the dot is skipped.
	for i := int(suffix.NamedChildCount()) - 1; i >= 0; i-- {
		child := suffix.NamedChild(i)
		if child.Type() == "simple_identifier" {
			return parser.GetNodeText(child, source)
		}
	}
	return ""
}

// operatorText extracts the operator token of a binary expression node.
func operatorText(node *sitter.Node, source []byte) string {
	if op := node.ChildByFieldName("op"); op != nil {
		return parser.GetNodeText(op, source)
	}
	// Some grammar revisions leave the operator unnamed between the two
	// operands; the middle child is the token in that case.
	if node.ChildCount() == 3 {
		return parser.GetNodeText(node.Child(1), source)
	}
	return ""
}

// transferKeyword returns the leading keyword of a control transfer
// statement (return, break, continue, throw).
func transferKeyword(node *sitter.Node) string {
	first := node.Child(0)
	if first == nil {
		return ""
	}
	return first.Type()
}
