package extractor

import (
	"regexp"
	"strings"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

var (
	goFuncRe      = regexp.MustCompile(`^func\s+(?:\((?P<recv>[^)]*)\)\s+)?(?P<name>\w+)\s*\((?P<params>[^)]*)\)\s*(?P<ret>[^{]*)\{?`)
	goTypeRe      = regexp.MustCompile(`^type\s+(?P<name>\w+)\s+(?P<kind>struct|interface)\b`)
	goImportRe    = regexp.MustCompile(`^import\s+(?:\w+\s+)?"(?P<path>[^"]+)"`)
	goImportLine  = regexp.MustCompile(`^\s*(?:\w+\s+)?"(?P<path>[^"]+)"`)
	goConstVarRe  = regexp.MustCompile(`^(?:const|var)\s+(?P<name>\w+)\b`)
	goStructField = regexp.MustCompile(`^\s*(?P<name>[A-Za-z_]\w*)\s+[\w\*\[\]\.]+`)
)

// GoExtractor extracts symbols from Go source using line-level heuristics.
type GoExtractor struct{}

// NewGoExtractor creates a Go symbol extractor.
func NewGoExtractor() *GoExtractor {
	return &GoExtractor{}
}

// Language implements Extractor.
func (e *GoExtractor) Language() string { return "go" }

// Extract implements Extractor.
func (e *GoExtractor) Extract(content []byte) (*Result, error) {
	lines := splitLines(content)
	result := &Result{}

	inImportBlock := false
	for i, raw := range lines {
		line := strings.TrimRight(raw, " \t")
		lineNo := i + 1

		if inImportBlock {
			if strings.HasPrefix(strings.TrimSpace(line), ")") {
				inImportBlock = false
				continue
			}
			if m := goImportLine.FindStringSubmatch(line); m != nil {
				result.Imports = appendUnique(result.Imports, m[1])
			}
			continue
		}
		if strings.HasPrefix(line, "import (") {
			inImportBlock = true
			continue
		}
		if m := goImportRe.FindStringSubmatch(line); m != nil {
			result.Imports = appendUnique(result.Imports, m[1])
			continue
		}

		if m := goFuncRe.FindStringSubmatch(line); m != nil {
			name := m[goFuncRe.SubexpIndex("name")]
			end := braceSpan(lines, lineNo)
			fn := types.FunctionInfo{
				Name:       name,
				Signature:  strings.TrimSuffix(strings.TrimSpace(line), "{"),
				StartLine:  lineNo,
				EndLine:    end,
				Parameters: splitParams(m[goFuncRe.SubexpIndex("params")]),
				ReturnType: strings.TrimSpace(m[goFuncRe.SubexpIndex("ret")]),
				Complexity: scoreComplexity(lines, lineNo, end),
				IsExported: isGoExported(name),
			}
			result.Functions = append(result.Functions, fn)
			if fn.IsExported {
				result.Exports = appendUnique(result.Exports, name)
			}
			continue
		}

		if m := goTypeRe.FindStringSubmatch(line); m != nil {
			name := m[goTypeRe.SubexpIndex("name")]
			end := braceSpan(lines, lineNo)
			cls := types.ClassInfo{
				Name:       name,
				StartLine:  lineNo,
				EndLine:    end,
				IsExported: isGoExported(name),
			}
			if m[goTypeRe.SubexpIndex("kind")] == "struct" {
				cls.Properties = goStructFields(lines, lineNo, end)
			}
			result.Classes = append(result.Classes, cls)
			if cls.IsExported {
				result.Exports = appendUnique(result.Exports, name)
			}
			continue
		}

		if m := goConstVarRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			if isGoExported(name) {
				result.Exports = appendUnique(result.Exports, name)
			}
		}
	}

	// Methods belong to their receiver type in the class view.
	attachGoMethods(result)

	result.Complexity = scoreComplexity(lines, 1, len(lines))
	return result, nil
}

// goStructFields collects field names declared inside a struct body.
func goStructFields(lines []string, startLine, endLine int) []string {
	var fields []string
	for i := startLine; i < endLine-1 && i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if m := goStructField.FindStringSubmatch(lines[i]); m != nil {
			fields = append(fields, m[1])
		}
	}
	return fields
}

// attachGoMethods moves receiver methods onto their type's ClassInfo when the
// type was declared in the same file.
func attachGoMethods(result *Result) {
	byName := make(map[string]int, len(result.Classes))
	for i, cls := range result.Classes {
		byName[cls.Name] = i
	}
	for _, fn := range result.Functions {
		recv := receiverType(fn.Signature)
		if recv == "" {
			continue
		}
		if i, ok := byName[recv]; ok {
			result.Classes[i].Methods = append(result.Classes[i].Methods, fn.Name)
		}
	}
}

// receiverType extracts the receiver type name from a method signature, or
// returns "" for plain functions.
func receiverType(signature string) string {
	m := goFuncRe.FindStringSubmatch(signature)
	if m == nil {
		return ""
	}
	recv := m[goFuncRe.SubexpIndex("recv")]
	if recv == "" {
		return ""
	}
	parts := strings.Fields(recv)
	typ := parts[len(parts)-1]
	return strings.TrimPrefix(typ, "*")
}

func isGoExported(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}
