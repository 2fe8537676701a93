// Package opennars provides the input/output translators and dialect
// parser for the OpenNARS CIN family: CYC as a bare integer, VOL as
// "*volume=n", REM suppressed, and operator-shorthand output
// "(^op, args...)" rewritten to the canonical statement
// "<(*, args...) --> ^op>".
package opennars

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

// InputTranslator converts a Cmd to OpenNARS's line-protocol text.
func InputTranslator(cmd navm.Cmd) (string, error) {
	switch c := cmd.(type) {
	case navm.NSE:
		return c.Task.String(), nil
	case navm.CYC:
		return strconv.FormatUint(uint64(c.N), 10), nil
	case navm.VOL:
		return "*volume=" + strconv.FormatUint(uint64(c.N), 10), nil
	case navm.REM:
		return "", nil
	case navm.REG:
		// OpenNARS has no operator pre-registration step; operators are
		// declared by use, so REG is a no-op here (unlike ONA below).
		return "", nil
	case navm.EXI:
		return "", navm.ErrUnsupportedInput{Cmd: cmd}
	default:
		return "", navm.ErrUnsupportedInput{Cmd: cmd}
	}
}

// outOfOperatorSlotsBanner is OpenNARS's banner for exhausting its operator
// table, recognized as a TERMINATED condition.
const outOfOperatorSlotsBanner = "more than 2 arguments"

// OutputTranslator parses one line of OpenNARS stdout into a structured
// Output: strip ornament, match the head tag, dialect-parse the residual.
func OutputTranslator(line string) (navm.Output, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return navm.NewOTHER(line), nil
	}
	if strings.Contains(trimmed, outOfOperatorSlotsBanner) {
		return navm.NewTERMINATED(line), nil
	}

	fields := strings.SplitN(trimmed, ":", 2)
	tag := strings.TrimSpace(fields[0])
	var body string
	if len(fields) > 1 {
		body = strings.TrimSpace(fields[1])
	}

	switch tag {
	case "Input", "IN":
		return narseseOutput(navm.NewIN, line, body)
	case "Derived", "OUT":
		return narseseOutput(navm.NewOUT, line, body)
	case "Answer", "ANSWER":
		if body == "None." {
			// A None.-bodied answer is not an ANSWER.
			return navm.NewOTHER(line), nil
		}
		return narseseOutput(navm.NewANSWER, line, body)
	case "EXE":
		return navm.NewEXE(line, nil, parseOperationOpenNARS(body)), nil
	default:
		return navm.NewUNCLASSIFIED(tag, line), nil
	}
}

func narseseOutput(ctor func(string, *navm.Narsese) navm.Output, raw, body string) (navm.Output, error) {
	rewritten := RewriteOperatorShorthand(body)
	n, err := navm.ParseNarsese(rewritten)
	if err != nil {
		return navm.NewERROR(raw), navm.ErrParse{Raw: body, Cause: err}
	}
	return ctor(raw, &n), nil
}

// executedOperation matches OpenNARS's executed-operation line body, e.g.
// "$1.00;0.99;1.00$ ^left([{SELF}])=null", capturing the operator name and
// its bracketed, comma-separated argument list.
var executedOperation = regexp.MustCompile(`\$[0-9.;]+\$\s*\^(\w+)\(\[(.*)\]\)=`)

// parseOperationOpenNARS extracts the Operation carried by an EXE line body.
// Unmatched text (a shape OpenNARS never actually emits for EXE) yields a
// nil Operation rather than an error, so a translator bug upstream degrades
// to an operation-less EXE instead of an ERROR output.
func parseOperationOpenNARS(body string) *navm.Operation {
	m := executedOperation.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	operatorName := m[1]
	paramsStr := strings.TrimSpace(m[2])
	var params []navm.Term
	if paramsStr != "" {
		for _, p := range strings.Split(paramsStr, ", ") {
			n, err := navm.ParseNarsese(strings.TrimSpace(p))
			if err != nil {
				continue
			}
			params = append(params, n.TermOf())
		}
	}
	return &navm.Operation{OperatorName: operatorName, Params: params}
}

// RewriteOperatorShorthand rewrites OpenNARS's operator-shorthand term
// "(^op, args...)" into the canonical statement form
// "<(*, args...) --> ^op>". Text that doesn't match the shorthand is
// returned unchanged.
func RewriteOperatorShorthand(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "(^") {
		return text
	}
	if !strings.HasSuffix(text, ")") {
		return text
	}
	inner := text[1 : len(text)-1]
	parts := strings.SplitN(inner, ",", 2)
	op := strings.TrimSpace(parts[0])
	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}
	if args == "" {
		// A bare "*" immediately followed by ')' doesn't satisfy
		// tryParseConnector's lookahead (it wants ',' or ' ' after the
		// connector token), so the zero-arg product needs an explicit
		// trailing comma to parse as a Compound rather than a bad
		// parenthesized group.
		return "<(*,) --> " + op + ">"
	}
	return "<(*, " + args + ") --> " + op + ">"
}
