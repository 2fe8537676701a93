// Package ona provides the input/output translators and dialect parser for
// the OpenNARS for Applications (ONA) CIN family: REG maps to
// "*setopname i ^name" against a fixed-size operator table, ONA's
// space-separated product terms and infix binary compounds are rewritten to
// canonical form, and "Test failed." is a TERMINATED banner.
package ona

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

// operatorTableSize is ONA's fixed-size operator table. The exact bound
// varies by build; a conservative default is used here and is not
// load-bearing for correctness, only for when warn-and-drop behavior
// starts.
const operatorTableSize = 32

// operatorTable is the process-global, known-limited counter tracking how
// many operator slots have been issued. It is intentionally the one piece
// of global mutable state in the per-CIN translators; two runtimes driving
// two ONA processes share its numbering.
type operatorTable struct {
	mu       sync.Mutex
	byName   map[string]int
	nextSlot int
}

var globalOperatorTable = &operatorTable{byName: map[string]int{}}

// register assigns name a slot, deduping repeats and refusing once the
// table is full (ok=false rather than aborting the runtime).
func (t *operatorTable) register(name string) (slot int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if slot, exists := t.byName[name]; exists {
		return slot, true
	}
	if t.nextSlot >= operatorTableSize {
		return 0, false
	}
	slot = t.nextSlot
	t.nextSlot++
	t.byName[name] = slot
	return slot, true
}

// InputTranslator converts a Cmd to ONA's line-protocol text.
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
		slot, ok := globalOperatorTable.register(c.Name)
		if !ok {
			// Degrade gracefully: warn-and-drop, never abort the runtime.
			return "", navm.ErrUnsupportedInput{Cmd: cmd}
		}
		return fmt.Sprintf("*setopname %d ^%s", slot, c.Name), nil
	case navm.EXI:
		return "", navm.ErrUnsupportedInput{Cmd: cmd}
	default:
		return "", navm.ErrUnsupportedInput{Cmd: cmd}
	}
}

const testFailedBanner = "Test failed."
const operatorIndexOutOfBoundsBanner = "Operator index out of bounds"

// OutputTranslator parses one line of ONA stdout.
func OutputTranslator(line string) (navm.Output, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == testFailedBanner {
		return navm.NewTERMINATED(line), nil
	}
	if trimmed == "" {
		return navm.NewOTHER(line), nil
	}
	if strings.Contains(trimmed, operatorIndexOutOfBoundsBanner) {
		return navm.NewERROR(line), nil
	}
	// These two signals are recognized by content, not by head tag: ONA
	// prints them as plain sentences with no leading "Tag:" at all, so
	// they must be checked before the tag split below.
	if strings.Contains(trimmed, "executed with args") {
		return executedOutput(line, trimmed)
	}
	if strings.Contains(trimmed, "decision expectation=") {
		return anticipateOutput(line, trimmed)
	}

	fields := strings.SplitN(trimmed, ":", 2)
	rawTag := strings.TrimSpace(fields[0])
	tag := strings.ToLower(rawTag)
	var body string
	if len(fields) > 1 {
		body = strings.TrimSpace(fields[1])
	}

	switch tag {
	case "input":
		return narseseOutput(navm.NewIN, line, body)
	case "derived":
		return narseseOutput(navm.NewOUT, line, body)
	case "answer":
		if body == "None." {
			return navm.NewOTHER(line), nil
		}
		return narseseOutput(navm.NewANSWER, line, body)
	case "err", "error":
		return navm.NewERROR(line), nil
	default:
		if len(fields) > 1 && !strings.ContainsAny(rawTag, " \t") {
			return navm.NewUNCLASSIFIED(rawTag, line), nil
		}
		return navm.NewOTHER(line), nil
	}
}

func narseseOutput(ctor func(string, *navm.Narsese) navm.Output, raw, body string) (navm.Output, error) {
	rewritten := RewriteDialect(reformNarsese(body))
	n, err := navm.ParseNarsese(rewritten)
	if err != nil {
		return navm.NewERROR(raw), navm.ErrParse{Raw: body, Cause: err}
	}
	return ctor(raw, &n), nil
}

var (
	reTruth       = regexp.MustCompile(`Truth:\s*frequency=([0-9.]+),\s*confidence=([0-9.]+)`)
	reCreationT   = regexp.MustCompile(`creationTime=([0-9.]+)\s+`)
	reOccurrenceT = regexp.MustCompile(`occurrenceTime=([0-9.]+)\s+`)
	reDt          = regexp.MustCompile(`dt=([0-9.]+)\s+`)
	rePriority    = regexp.MustCompile(`Priority=([0-9.]+)\s+`)
)

// reformNarsese rewrites ONA's native truth ornament into canonical form:
// "Truth: frequency=1.000000, confidence=0.447514" becomes
// "%1.000000;0.447514%", and the creationTime=/occurrenceTime=/dt=/
// Priority= annotations interleaved with the sentence are stripped, so
// the residual text carries its truth value where the Narsese parser
// expects it instead of as unparseable trailing text.
func reformNarsese(out string) string {
	s := reTruth.ReplaceAllString(out, "%$1;$2%")
	s = reCreationT.ReplaceAllString(s, "")
	s = reOccurrenceT.ReplaceAllString(s, "")
	s = reDt.ReplaceAllString(s, "")
	s = rePriority.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// executedOperation matches ONA's executed-operation sentence, e.g.
// "^left executed with args (* {SELF})".
var executedOperation = regexp.MustCompile(`\^([^\s]+)\s*executed with args\s*(.*)`)

func executedOutput(raw, trimmed string) (navm.Output, error) {
	op, err := parseOperationONA(trimmed)
	if err != nil {
		return navm.NewERROR(raw), err
	}
	return navm.NewEXE(raw, nil, &op), nil
}

// parseOperationONA extracts the Operation named in an "executed with args"
// sentence. A non-matching line (a shape this build of ONA never actually
// emits for the signal this function is only called on) degrades to an
// "UNKNOWN" operator rather than failing the whole translation.
func parseOperationONA(trimmed string) (navm.Operation, error) {
	m := executedOperation.FindStringSubmatch(trimmed)
	if m == nil {
		return navm.Operation{OperatorName: "UNKNOWN"}, nil
	}
	operatorName := m[1]
	argsText := RewriteDialect(strings.TrimSpace(m[2]))
	n, err := navm.ParseNarsese(argsText)
	if err != nil {
		return navm.Operation{OperatorName: operatorName}, navm.ErrParse{Raw: argsText, Cause: err}
	}
	return navm.Operation{OperatorName: operatorName, Params: extractParams(n.TermOf())}, nil
}

// extractParams flattens a term into the positional parameter list an
// Operation carries: a Compound or TermSet's children, a Statement's
// subject/predicate pair, or the bare term itself otherwise.
func extractParams(t navm.Term) []navm.Term {
	switch v := t.(type) {
	case navm.Compound:
		return v.Terms
	case navm.TermSet:
		return v.Terms
	case navm.Statement:
		return []navm.Term{v.Subject, v.Predicate}
	default:
		return []navm.Term{t}
	}
}

// anticipateImplication matches ONA's "decision expectation=" anticipation
// sentence and captures the implication term embedded in it, e.g.
// "...decision expectation=0.52 implication: <a =/> b> dt=20.000000...".
var anticipateImplication = regexp.MustCompile(`implication:\s*(.*)\s*dt=`)

func anticipateOutput(raw, trimmed string) (navm.Output, error) {
	m := anticipateImplication.FindStringSubmatch(trimmed)
	if m == nil {
		return navm.NewERROR(raw), navm.ErrParse{Raw: trimmed, Cause: fmt.Errorf("no implication found in anticipation line")}
	}
	rewritten := RewriteDialect(strings.TrimSpace(m[1]))
	n, err := navm.ParseNarsese(rewritten)
	if err != nil {
		return navm.NewERROR(raw), navm.ErrParse{Raw: m[1], Cause: err}
	}
	return navm.NewANTICIPATE(raw, &n), nil
}

// RewriteDialect rewrites ONA's space-separated product terms
// ("(* {SELF})" -> "(*, {SELF})") and infix binary compounds
// ("(A * B)" -> "(*, A, B)") into the canonical comma-connector form,
// recursing into every top-level "(...)" span wherever it occurs in
// text, not only when the whole string is one such span, so dialect
// compounds nested inside a larger statement (as seen in ONA's
// "decision expectation=" anticipation sentences) are rewritten too.
// Anything not matching either dialect shape passes through unchanged.
func RewriteDialect(text string) string {
	return strings.TrimSpace(rewriteParens(strings.TrimSpace(text)))
}

// rewriteParens walks text left to right, recursively rewriting the
// interior of every top-level "(...)" span it finds (bottom-up) before
// applying rewriteOneParenSpan to the reconstructed span. Everything
// outside a paren span is copied through unchanged.
func rewriteParens(text string) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		if text[i] == '(' {
			end := matchingBracket(text, i)
			if end < 0 {
				out.WriteString(text[i:])
				return out.String()
			}
			inner := rewriteParens(text[i+1 : end])
			out.WriteString(rewriteOneParenSpan("(" + inner + ")"))
			i = end + 1
			continue
		}
		out.WriteByte(text[i])
		i++
	}
	return out.String()
}

// matchingBracket returns the index of the bracket matching the opening
// bracket at position open, treating "(){}[]<>" uniformly as one depth
// counter (the same convention splitTopLevelSpaces/findInfixConnector use),
// or -1 if the span is unbalanced.
func matchingBracket(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(', '{', '[', '<':
			depth++
		case ')', '}', ']', '>':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// rewriteOneParenSpan applies ONA's dialect rewrite to a single top-level
// "(...)" span whose interior has already been recursively rewritten.
func rewriteOneParenSpan(text string) string {
	inner := text[1 : len(text)-1]

	if strings.HasPrefix(inner, "* ") {
		// Space-separated product: "* {SELF}" or "* a b" -> "*, a, b".
		rest := strings.TrimSpace(inner[2:])
		args := splitTopLevelSpaces(rest)
		return "(*, " + strings.Join(args, ", ") + ")"
	}

	if mid, ok := findInfixConnector(inner); ok {
		left := strings.TrimSpace(inner[:mid.start])
		right := strings.TrimSpace(inner[mid.end:])
		return "(" + mid.connector + ", " + left + ", " + right + ")"
	}

	return text
}

type infixMatch struct {
	start, end int
	connector  string
}

var infixConnectors = []string{"&/", "&|", "*", "&&", "||", "&", "|"}

// findInfixConnector locates a top-level (not inside nested
// brackets/angle-brackets) standalone infix connector token surrounded by
// spaces, e.g. "A * B".
func findInfixConnector(s string) (infixMatch, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[', '<':
			depth++
		case ')', '}', ']', '>':
			depth--
		}
		if depth != 0 {
			continue
		}
		for _, c := range infixConnectors {
			if i+1+len(c) < len(s) && s[i] == ' ' && strings.HasPrefix(s[i+1:], c) && s[i+1+len(c)] == ' ' {
				return infixMatch{start: i, end: i + 1 + len(c) + 1, connector: c}, true
			}
		}
	}
	return infixMatch{}, false
}

func splitTopLevelSpaces(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || (s[i] == ' ' && depth == 0) {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
			continue
		}
		switch s[i] {
		case '(', '{', '[', '<':
			depth++
		case ')', '}', ']', '>':
			depth--
		}
	}
	return out
}
