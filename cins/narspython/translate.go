// Package narspython provides the input/output translators and dialect
// parser for the NARS-Python CIN family: round-bracket statement syntax
// "(A --> B)" is rewritten to canonical angle-bracket form "<A --> B>",
// and REG and REM are both suppressed (translated to the empty string).
package narspython

import (
	"strconv"
	"strings"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

// InputTranslator converts a Cmd to NARS-Python's line-protocol text.
func InputTranslator(cmd navm.Cmd) (string, error) {
	switch c := cmd.(type) {
	case navm.NSE:
		return RewriteToDialect(c.Task.String()), nil
	case navm.CYC:
		return strconv.FormatUint(uint64(c.N), 10), nil
	case navm.VOL:
		// NARS-Python has no documented volume knob; treat as unsupported
		// rather than silently dropping a command the caller may expect to
		// observe an effect from.
		return "", navm.ErrUnsupportedInput{Cmd: cmd}
	case navm.REG, navm.REM:
		return "", nil
	case navm.EXI:
		return "", navm.ErrUnsupportedInput{Cmd: cmd}
	default:
		return "", navm.ErrUnsupportedInput{Cmd: cmd}
	}
}

// OutputTranslator parses one line of NARS-Python stdout.
func OutputTranslator(line string) (navm.Output, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return navm.NewOTHER(line), nil
	}

	fields := strings.SplitN(trimmed, ":", 2)
	rawTag := strings.TrimSpace(fields[0])
	var body string
	if len(fields) > 1 {
		body = strings.TrimSpace(fields[1])
	}

	// NARS-Python tags its output "Input:"/"Derived:"/"Answer:", matched
	// case-insensitively.
	switch strings.ToLower(rawTag) {
	case "input":
		return narseseOutput(navm.NewIN, line, body)
	case "derived":
		return narseseOutput(navm.NewOUT, line, body)
	case "answer":
		if body == "None." || body == "" {
			return navm.NewOTHER(line), nil
		}
		return narseseOutput(navm.NewANSWER, line, body)
	case "exe":
		n, err := navm.ParseNarsese(RewriteFromDialect(body))
		if err != nil {
			return navm.NewERROR(line), navm.ErrParse{Raw: body, Cause: err}
		}
		return navm.NewEXE(line, &n, nil), nil
	case "err", "error":
		return navm.NewERROR(line), nil
	default:
		return navm.NewUNCLASSIFIED(rawTag, line), nil
	}
}

func narseseOutput(ctor func(string, *navm.Narsese) navm.Output, raw, body string) (navm.Output, error) {
	n, err := navm.ParseNarsese(RewriteFromDialect(body))
	if err != nil {
		return navm.NewERROR(raw), navm.ErrParse{Raw: body, Cause: err}
	}
	return ctor(raw, &n), nil
}

// RewriteFromDialect rewrites NARS-Python's round-bracket statement form
// "(A --> B)" into canonical angle-bracket form "<A --> B>".
// Compound terms that happen to use round brackets as a connector term
// (e.g. "(*, a, b)") are left untouched: only a bracket pair whose inner
// text contains a top-level copula is treated as a statement. The bracket
// pair is located by depth rather than assumed to span the whole string,
// since callers pass text still carrying trailing punctuation/stamp/truth
// (e.g. "(a --> b)." or "(a --> b). %1.0;0.9%").
func RewriteFromDialect(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "(") {
		return text
	}
	closeIdx := findMatchingParen(trimmed, 0)
	if closeIdx < 0 {
		return text
	}
	inner := trimmed[1:closeIdx]
	if _, _, ok := findTopLevelCopula(inner); !ok {
		return text
	}
	return "<" + inner + ">" + trimmed[closeIdx+1:]
}

// RewriteToDialect is the inverse of RewriteFromDialect, used when sending
// a canonical Narsese statement to a NARS-Python process that only accepts
// the round-bracket dialect. Like RewriteFromDialect, it locates the
// statement's bracket span rather than requiring it to span the whole
// string, since NSE carries a full Narsese (optional "$budget$ " prefix,
// punctuation/stamp/truth suffix), not a bare term.
func RewriteToDialect(text string) string {
	trimmed := strings.TrimSpace(text)
	start := 0
	if strings.HasPrefix(trimmed, "$") {
		if dollarEnd := strings.IndexByte(trimmed[1:], '$'); dollarEnd >= 0 {
			start = dollarEnd + 2
			for start < len(trimmed) && trimmed[start] == ' ' {
				start++
			}
		}
	}
	if start >= len(trimmed) || trimmed[start] != '<' {
		return text
	}
	closeIdx := findMatchingAngle(trimmed, start)
	if closeIdx < 0 {
		return text
	}
	inner := trimmed[start+1 : closeIdx]
	if _, _, ok := findTopLevelCopula(inner); !ok {
		return text
	}
	return trimmed[:start] + "(" + inner + ")" + trimmed[closeIdx+1:]
}

// findMatchingParen returns the index of the ')' matching the '(' at
// openIdx, tracking nesting depth. Narsese copulas never contain '(' or
// ')', so no token-skipping is needed here (contrast findMatchingAngle).
func findMatchingParen(s string, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// findMatchingAngle returns the index of the '>' matching the '<' at
// openIdx. Several copulas ("-->", "<->", "==>", "<=>", "=/>", "=\>",
// "=|>", "</>") contain '<' or '>' as part of the token itself, so those
// are recognized and skipped whole before falling back to plain
// bracket-depth tracking (mirrors findTopLevelCopula's same caveat).
func findMatchingAngle(s string, openIdx int) int {
	depth := 0
	i := openIdx
	for i < len(s) {
		matched := false
		for _, c := range copulas {
			if strings.HasPrefix(s[i:], c) {
				i += len(c)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		switch s[i] {
		case '<':
			depth++
			i++
		case '>':
			depth--
			i++
			if depth == 0 {
				return i - 1
			}
		default:
			i++
		}
	}
	return -1
}

var copulas = []string{"-->", "<->", "==>", "<=>", "=/>", "=\\>", "=|>", "</>"}

// findTopLevelCopula locates a top-level (not inside nested brackets)
// copula token, returning its byte offsets.
func findTopLevelCopula(s string) (start, end int, ok bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		// Checked before updating depth, at every depth: several copulas
		// (-->, <->, <=>, </>, ...) contain '<' or '>', the same bytes used
		// below to track bracket nesting, so a copula is consumed whole
		// before its bracket-like bytes could shift the depth count. Only a
		// depth-0 copula is returned.
		matched := ""
		for _, c := range copulas {
			if strings.HasPrefix(s[i:], c) {
				matched = c
				break
			}
		}
		if matched != "" {
			if depth == 0 {
				return i, i + len(matched), true
			}
			i += len(matched) - 1
			continue
		}
		switch s[i] {
		case '(', '{', '[', '<':
			depth++
		case ')', '}', ']', '>':
			depth--
		}
	}
	return 0, 0, false
}
