package dupfunc

import (
	"strings"

	"github.com/Ashakiran-cell/DuplicateDetector/pkg/parser"
)

// funcKeywordPrefix begins a function declaration line in source text.
const funcKeywordPrefix = "func "

// declarationLineWindow is the search radius, in lines, for correcting a
// tree-derived declaration line against the raw source.
const declarationLineWindow = 2

// BuildCatalog parses one file and returns a FunctionRecord for every
// top-level function declaration, in source order. The raw source is
// consulted to pin each declaration line: multi-line declarations
// (attributes, generic clauses, wrapped parameter lists) can leave the
// tree position on a line that does not contain the func keyword.
func BuildCatalog(psr *parser.Parser, path string, content []byte) []FunctionRecord {
	result, err := psr.Parse(content, path)
	if err != nil {
		return nil
	}

	lines := strings.Split(string(content), "\n")

	var records []FunctionRecord
	for _, fn := range parser.TopLevelFunctions(result) {
		records = append(records, FunctionRecord{
			Name:      fn.Name,
			Signature: ExtractSignature(fn.Body, content),
			Line:      correctDeclarationLine(lines, int(fn.StartLine)),
			File:      path,
		})
	}
	return records
}

// correctDeclarationLine searches a small window around the tree-derived
// 1-based line for one whose trimmed text begins with the func keyword,
// preferring the corrected line and falling back to the raw estimate.
func correctDeclarationLine(lines []string, rawLine int) int {
	for offset := -declarationLineWindow; offset <= declarationLineWindow; offset++ {
		idx := rawLine - 1 + offset
		if idx < 0 || idx >= len(lines) {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(lines[idx]), funcKeywordPrefix) {
			return idx + 1
		}
	}
	return rawLine
}
