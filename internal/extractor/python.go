package extractor

import (
	"regexp"
	"strings"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

var (
	pyDefRe        = regexp.MustCompile(`^(?P<indent>\s*)(?P<async>async\s+)?def\s+(?P<name>\w+)\s*\((?P<params>[^)]*)\)\s*(?:->\s*(?P<ret>[^:]+))?:`)
	pyClassRe      = regexp.MustCompile(`^(?P<indent>\s*)class\s+(?P<name>\w+)\s*(?:\((?P<bases>[^)]*)\))?\s*:`)
	pyImportRe     = regexp.MustCompile(`^import\s+(?P<path>[\w.]+)`)
	pyFromImportRe = regexp.MustCompile(`^from\s+(?P<path>[\w.]+)\s+import`)
	pyAssignRe     = regexp.MustCompile(`^(?P<name>[A-Za-z_]\w*)\s*(?::[^=]+)?=`)
)

// PythonExtractor extracts symbols from Python source using indentation-aware
// line heuristics.
type PythonExtractor struct{}

// NewPythonExtractor creates a Python symbol extractor.
func NewPythonExtractor() *PythonExtractor {
	return &PythonExtractor{}
}

// Language implements Extractor.
func (e *PythonExtractor) Language() string { return "python" }

// Extract implements Extractor.
func (e *PythonExtractor) Extract(content []byte) (*Result, error) {
	lines := splitLines(content)
	result := &Result{}

	type classSpan struct {
		index int // index into result.Classes
		end   int
	}
	var openClasses []classSpan

	for i, line := range lines {
		lineNo := i + 1

		// Drop classes whose bodies have ended.
		kept := openClasses[:0]
		for _, cs := range openClasses {
			if lineNo <= cs.end {
				kept = append(kept, cs)
			}
		}
		openClasses = kept

		if m := pyImportRe.FindStringSubmatch(line); m != nil {
			result.Imports = appendUnique(result.Imports, m[1])
			continue
		}
		if m := pyFromImportRe.FindStringSubmatch(line); m != nil {
			result.Imports = appendUnique(result.Imports, m[1])
			continue
		}

		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			indent := indentWidth(m[pyClassRe.SubexpIndex("indent")])
			name := m[pyClassRe.SubexpIndex("name")]
			end := indentSpan(lines, lineNo, indent)
			cls := types.ClassInfo{
				Name:       name,
				StartLine:  lineNo,
				EndLine:    end,
				Extends:    strings.TrimSpace(m[pyClassRe.SubexpIndex("bases")]),
				IsExported: !strings.HasPrefix(name, "_"),
			}
			result.Classes = append(result.Classes, cls)
			openClasses = append(openClasses, classSpan{index: len(result.Classes) - 1, end: end})
			if cls.IsExported && indent == 0 {
				result.Exports = appendUnique(result.Exports, name)
			}
			continue
		}

		if m := pyDefRe.FindStringSubmatch(line); m != nil {
			indent := indentWidth(m[pyDefRe.SubexpIndex("indent")])
			name := m[pyDefRe.SubexpIndex("name")]
			end := indentSpan(lines, lineNo, indent)

			if len(openClasses) > 0 {
				// Method: record on the innermost enclosing class.
				cs := openClasses[len(openClasses)-1]
				result.Classes[cs.index].Methods = append(result.Classes[cs.index].Methods, name)
			}

			fn := types.FunctionInfo{
				Name:       name,
				Signature:  strings.TrimSuffix(strings.TrimSpace(line), ":"),
				StartLine:  lineNo,
				EndLine:    end,
				Parameters: splitParams(m[pyDefRe.SubexpIndex("params")]),
				ReturnType: strings.TrimSpace(m[pyDefRe.SubexpIndex("ret")]),
				Complexity: scoreComplexity(lines, lineNo, end),
				IsAsync:    m[pyDefRe.SubexpIndex("async")] != "",
				IsExported: !strings.HasPrefix(name, "_") && indent == 0,
			}
			result.Functions = append(result.Functions, fn)
			if fn.IsExported {
				result.Exports = appendUnique(result.Exports, name)
			}
			continue
		}

		// Module-level assignments count as exports when public.
		if len(openClasses) == 0 && indentWidth(line) == 0 {
			if m := pyAssignRe.FindStringSubmatch(line); m != nil {
				name := m[1]
				if !strings.HasPrefix(name, "_") {
					result.Exports = appendUnique(result.Exports, name)
				}
			}
		}
	}

	result.Complexity = scoreComplexity(lines, 1, len(lines))
	return result, nil
}
