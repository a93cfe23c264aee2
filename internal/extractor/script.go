package extractor

import (
	"regexp"
	"strings"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

var (
	scriptFuncRe   = regexp.MustCompile(`^\s*(?P<export>export\s+)?(?P<async>async\s+)?function\s*\*?\s*(?P<name>\w+)\s*\((?P<params>[^)]*)\)(?:\s*:\s*(?P<ret>[^{]+))?`)
	scriptArrowRe  = regexp.MustCompile(`^\s*(?P<export>export\s+)?(?:const|let|var)\s+(?P<name>\w+)\s*(?::[^=]+)?=\s*(?P<async>async\s+)?(?:\((?P<params>[^)]*)\)|(?P<single>\w+))\s*(?::\s*[^=]+)?=>`)
	scriptClassRe  = regexp.MustCompile(`^\s*(?P<export>export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+(?P<name>\w+)(?:\s+extends\s+(?P<extends>[\w.]+))?`)
	scriptIfaceRe  = regexp.MustCompile(`^\s*(?P<export>export\s+)?interface\s+(?P<name>\w+)`)
	scriptMethodRe = regexp.MustCompile(`^\s+(?:public\s+|private\s+|protected\s+|static\s+|readonly\s+)*(?:async\s+)?(?P<name>\w+)\s*\((?P<params>[^)]*)\)\s*(?::\s*[^{]+)?\{`)
	scriptPropRe   = regexp.MustCompile(`^\s+(?:public\s+|private\s+|protected\s+|static\s+|readonly\s+)*(?P<name>\w+)\s*[:=]`)
	scriptImportRe = regexp.MustCompile(`(?:import\s+[^'"]*from\s+|import\s+|require\s*\()\s*['"](?P<path>[^'"]+)['"]`)
	scriptExportRe = regexp.MustCompile(`^\s*export\s+(?:default\s+)?(?:const|let|var|function|class|interface|type|enum)?\s*\*?\s*(?P<name>\w+)?`)
)

// scriptExtractor covers the TypeScript/JavaScript family; the two languages
// differ only in their tag and whether interface declarations exist.
type scriptExtractor struct {
	language   string
	interfaces bool
}

// NewTypeScriptExtractor creates a TypeScript symbol extractor.
func NewTypeScriptExtractor() Extractor {
	return &scriptExtractor{language: "typescript", interfaces: true}
}

// NewJavaScriptExtractor creates a JavaScript symbol extractor.
func NewJavaScriptExtractor() Extractor {
	return &scriptExtractor{language: "javascript"}
}

// Language implements Extractor.
func (e *scriptExtractor) Language() string { return e.language }

// Extract implements Extractor.
func (e *scriptExtractor) Extract(content []byte) (*Result, error) {
	lines := splitLines(content)
	result := &Result{}

	classEnds := make(map[int]int) // class start line -> end line

	for i, line := range lines {
		lineNo := i + 1

		for _, m := range scriptImportRe.FindAllStringSubmatch(line, -1) {
			result.Imports = appendUnique(result.Imports, m[len(m)-1])
		}

		if m := scriptClassRe.FindStringSubmatch(line); m != nil {
			name := m[scriptClassRe.SubexpIndex("name")]
			end := braceSpan(lines, lineNo)
			classEnds[lineNo] = end
			cls := types.ClassInfo{
				Name:       name,
				StartLine:  lineNo,
				EndLine:    end,
				Extends:    m[scriptClassRe.SubexpIndex("extends")],
				IsExported: m[scriptClassRe.SubexpIndex("export")] != "",
			}
			cls.Methods, cls.Properties = e.classMembers(lines, lineNo, end)
			result.Classes = append(result.Classes, cls)
			if cls.IsExported {
				result.Exports = appendUnique(result.Exports, name)
			}
			continue
		}

		if e.interfaces {
			if m := scriptIfaceRe.FindStringSubmatch(line); m != nil {
				name := m[scriptIfaceRe.SubexpIndex("name")]
				end := braceSpan(lines, lineNo)
				cls := types.ClassInfo{
					Name:       name,
					StartLine:  lineNo,
					EndLine:    end,
					IsExported: m[scriptIfaceRe.SubexpIndex("export")] != "",
				}
				result.Classes = append(result.Classes, cls)
				if cls.IsExported {
					result.Exports = appendUnique(result.Exports, name)
				}
				continue
			}
		}

		if insideAny(classEnds, lineNo) {
			continue // class methods are recorded on the ClassInfo
		}

		if m := scriptFuncRe.FindStringSubmatch(line); m != nil {
			result.Functions = append(result.Functions, e.function(lines, lineNo, line, m, scriptFuncRe))
			if m[scriptFuncRe.SubexpIndex("export")] != "" {
				result.Exports = appendUnique(result.Exports, m[scriptFuncRe.SubexpIndex("name")])
			}
			continue
		}
		if m := scriptArrowRe.FindStringSubmatch(line); m != nil {
			result.Functions = append(result.Functions, e.function(lines, lineNo, line, m, scriptArrowRe))
			if m[scriptArrowRe.SubexpIndex("export")] != "" {
				result.Exports = appendUnique(result.Exports, m[scriptArrowRe.SubexpIndex("name")])
			}
			continue
		}

		if m := scriptExportRe.FindStringSubmatch(line); m != nil {
			if name := m[scriptExportRe.SubexpIndex("name")]; name != "" {
				result.Exports = appendUnique(result.Exports, name)
			}
		}
	}

	result.Complexity = scoreComplexity(lines, 1, len(lines))
	return result, nil
}

func (e *scriptExtractor) function(lines []string, lineNo int, line string, m []string, re *regexp.Regexp) types.FunctionInfo {
	end := braceSpan(lines, lineNo)
	params := m[re.SubexpIndex("params")]
	if idx := re.SubexpIndex("single"); idx >= 0 && m[idx] != "" {
		params = m[idx]
	}
	fn := types.FunctionInfo{
		Name:       m[re.SubexpIndex("name")],
		Signature:  strings.TrimSuffix(strings.TrimSpace(line), "{"),
		StartLine:  lineNo,
		EndLine:    end,
		Parameters: splitParams(params),
		Complexity: scoreComplexity(lines, lineNo, end),
		IsAsync:    m[re.SubexpIndex("async")] != "",
		IsExported: m[re.SubexpIndex("export")] != "",
	}
	if idx := re.SubexpIndex("ret"); idx >= 0 {
		fn.ReturnType = strings.TrimSpace(m[idx])
	}
	return fn
}

// classMembers scans a class body for method and property declarations.
func (e *scriptExtractor) classMembers(lines []string, startLine, endLine int) (methods, props []string) {
	for i := startLine; i < endLine-1 && i < len(lines); i++ {
		line := lines[i]
		if m := scriptMethodRe.FindStringSubmatch(line); m != nil {
			name := m[scriptMethodRe.SubexpIndex("name")]
			if name != "if" && name != "for" && name != "while" && name != "switch" && name != "catch" {
				methods = append(methods, name)
			}
			continue
		}
		if m := scriptPropRe.FindStringSubmatch(line); m != nil {
			props = append(props, m[scriptPropRe.SubexpIndex("name")])
		}
	}
	return methods, props
}

func insideAny(spans map[int]int, lineNo int) bool {
	for start, end := range spans {
		if lineNo > start && lineNo <= end {
			return true
		}
	}
	return false
}
