// Package pynars provides the input/output translators for the PyNARS CIN
// family: VOL maps to "/volume n", REG to "/register name", and output
// lines lead with an ANSI-colored, space-separated budget triple ahead of
// the head tag.
package pynars

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

// InputTranslator converts a Cmd to PyNARS's line-protocol text.
func InputTranslator(cmd navm.Cmd) (string, error) {
	switch c := cmd.(type) {
	case navm.NSE:
		return c.Task.String(), nil
	case navm.CYC:
		return strconv.FormatUint(uint64(c.N), 10), nil
	case navm.VOL:
		return "/volume " + strconv.FormatUint(uint64(c.N), 10), nil
	case navm.REG:
		return "/register " + c.Name, nil
	case navm.REM:
		return "", nil
	case navm.EXI:
		return "/exit", nil
	default:
		return "", navm.ErrUnsupportedInput{Cmd: cmd}
	}
}

// OutputTranslator parses one line of PyNARS stdout: an optional leading
// budget triple, a head tag, then the Narsese body.
func OutputTranslator(line string) (navm.Output, error) {
	trimmed := stripANSI(strings.TrimSpace(line))
	if trimmed == "" {
		return navm.NewOTHER(line), nil
	}
	if strings.HasPrefix(trimmed, "Unexpected input") || strings.HasPrefix(trimmed, "Fatal error") {
		return navm.NewTERMINATED(line), nil
	}

	tag, body, budget := headAndBudget(trimmed)
	if tag == "" {
		return navm.NewOTHER(line), nil
	}

	switch strings.ToLower(tag) {
	case "in", "input":
		return narseseOutput(navm.NewIN, line, body, budget)
	case "out":
		return narseseOutput(navm.NewOUT, line, body, budget)
	case "answer":
		if body == "None." {
			return navm.NewOTHER(line), nil
		}
		return narseseOutput(navm.NewANSWER, line, body, budget)
	case "achieved":
		return narseseOutput(navm.NewACHIEVED, line, body, budget)
	case "info":
		return navm.NewINFO(line), nil
	case "exe":
		op, err := parseOperationPyNARS(trimmed)
		if err != nil {
			return navm.NewERROR(line), err
		}
		return navm.NewEXE(line, nil, &op), nil
	case "err", "error":
		return navm.NewERROR(line), nil
	default:
		return navm.NewUNCLASSIFIED(tag, line), nil
	}
}

// PyNARS prints the budget as three space-separated decimals before the
// head tag, colored but unbracketed ("0.70  0.25  0.60 OUT   :<...>"),
// with blank columns when a value is absent. The skip class ahead of the
// first capture must exclude digits and dots so a leading "0.98" is not
// eaten down to "8".
var (
	headTagPattern      = regexp.MustCompile(`^[0-9.\s|]*([A-Za-z]+)\s*:\s*`)
	budgetTriplePattern = regexp.MustCompile(`^[^0-9.]*([0-9.]+)[\s|]+([0-9.]+)[\s|]+([0-9.]+)[\s|]+[A-Za-z]+\s*:\s*`)
)

// headAndBudget splits a preprocessed line into its head tag, residual
// body, and the leading budget triple when one is present. A line with no
// recognizable "tag:" head yields tag == "".
func headAndBudget(trimmed string) (tag, body string, budget []string) {
	head := headTagPattern.FindStringSubmatch(trimmed)
	if head == nil {
		return "", trimmed, nil
	}
	if m := budgetTriplePattern.FindStringSubmatch(trimmed); m != nil {
		return head[1], trimmed[len(m[0]):], []string{m[1], m[2], m[3]}
	}
	return head[1], trimmed[len(head[0]):], nil
}

// exeOperationSignature matches PyNARS's EXE line up to the operation
// signature statement that precedes its " = " marker, e.g.
// "EXE   :<(*, 0)-->^left> = $0.022;0.232;0.926$ <(*, 0)-->^left>! ...".
var exeOperationSignature = regexp.MustCompile(`EXE\s*:\s*(.+) = `)

// parseOperationPyNARS extracts the Operation named by an EXE line's
// signature statement: the predicate atom is the operator name, the
// subject's terms (or the bare subject, if it isn't a compound) are the
// parameters.
func parseOperationPyNARS(trimmed string) (navm.Operation, error) {
	m := exeOperationSignature.FindStringSubmatch(trimmed)
	if m == nil {
		return navm.Operation{}, navm.ErrParse{Raw: trimmed, Cause: errors.New("no operation signature found in EXE line")}
	}
	sigText := strings.TrimSpace(m[1])
	n, err := navm.ParseNarsese(sigText)
	if err != nil {
		return navm.Operation{}, navm.ErrParse{Raw: sigText, Cause: err}
	}
	stmt, ok := n.TermOf().(navm.Statement)
	if !ok {
		return navm.Operation{}, navm.ErrParse{Raw: sigText, Cause: errors.New("operation signature is not a statement")}
	}
	opAtom, ok := stmt.Predicate.(navm.Atom)
	if !ok {
		return navm.Operation{}, navm.ErrParse{Raw: sigText, Cause: errors.New("operation predicate is not an atom")}
	}
	return navm.Operation{OperatorName: opAtom.Name, Params: operationParams(stmt.Subject)}, nil
}

// operationParams flattens the subject of an operation-signature statement
// into its positional parameter list: a Compound's children, or the bare
// term itself otherwise.
func operationParams(subject navm.Term) []navm.Term {
	if c, ok := subject.(navm.Compound); ok {
		return c.Terms
	}
	return []navm.Term{subject}
}

func narseseOutput(ctor func(string, *navm.Narsese) navm.Output, raw, body string, budget []string) (navm.Output, error) {
	n, err := navm.ParseNarsese(body)
	if err != nil {
		return navm.NewERROR(raw), navm.ErrParse{Raw: body, Cause: err}
	}
	if len(budget) > 0 {
		if n.Sentence != nil {
			n.Task = &navm.Task{Sentence: *n.Sentence, Budget: budget}
			n.Sentence = nil
		}
	}
	return ctor(raw, &n), nil
}

// stripANSI removes the terminal color escape sequences PyNARS emits by
// default.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			inEscape = true
			continue
		}
		if inEscape {
			if (s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z') {
				inEscape = false
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
