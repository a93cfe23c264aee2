package extractor

import "strings"

// splitLines splits content into lines without the trailing newline bytes.
func splitLines(content []byte) []string {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	return strings.Split(text, "\n")
}

// braceSpan returns the 1-based line on which the brace block opened at
// startLine closes. Heuristic: counts braces per line without tracking string
// or comment state, which matches how the rest of the extraction works. When
// the block never closes it returns the last line.
func braceSpan(lines []string, startLine int) int {
	depth := 0
	opened := false
	for i := startLine - 1; i < len(lines); i++ {
		depth += strings.Count(lines[i], "{")
		depth -= strings.Count(lines[i], "}")
		if depth > 0 {
			opened = true
		}
		if opened && depth <= 0 {
			return i + 1
		}
	}
	return len(lines)
}

// indentSpan returns the 1-based last line of an indentation-delimited block
// (Python). The block body is every subsequent non-blank line indented
// deeper than the definition line.
func indentSpan(lines []string, startLine int, defIndent int) int {
	end := startLine
	for i := startLine; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if indentWidth(line) <= defIndent {
			break
		}
		end = i + 1
	}
	return end
}

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

// complexityTokens are the branch constructs counted toward the
// cyclomatic-complexity-like score. Each occurrence adds one decision point
// on top of the baseline of 1.
var complexityTokens = []string{
	"if ", "if(", "for ", "for(", "while ", "while(",
	"case ", "catch ", "catch(", "&&", "||", "elif ", "except ",
}

// scoreComplexity counts decision points in a region of lines
// [startLine, endLine], 1-based inclusive.
func scoreComplexity(lines []string, startLine, endLine int) int {
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	score := 1
	for i := startLine - 1; i < endLine; i++ {
		line := lines[i]
		for _, tok := range complexityTokens {
			score += strings.Count(line, tok)
		}
	}
	return score
}

// capStrings bounds a list copied into an IndexedFile.
func capStrings(list []string, max int) []string {
	if len(list) > max {
		return list[:max]
	}
	return list
}

// appendUnique appends value unless already present.
func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

// splitParams splits a parameter list on top-level commas, trimming each
// entry and dropping empties.
func splitParams(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var params []string
	depth := 0
	start := 0
	for i, r := range raw {
		switch r {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ',':
			if depth == 0 {
				if p := strings.TrimSpace(raw[start:i]); p != "" {
					params = append(params, p)
				}
				start = i + 1
			}
		}
	}
	if p := strings.TrimSpace(raw[start:]); p != "" {
		params = append(params, p)
	}
	return params
}
