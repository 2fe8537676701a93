package navm

import (
	"encoding/json"
	"strings"
)

// Term is the lexical Narsese term tree: a closed union realized as an
// interface implemented by Atom, Compound, TermSet, and Statement. It is
// purely lexical; no normalization happens at parse time, and canonical forms
// are computed only where comparison demands them.
type Term interface {
	isTerm()
	String() string
}

// Atom is a leaf term: an optional sigil prefix ($, #, ?, ^, or none) and a
// name. Variable atoms use prefix "$" (independent), "#" (dependent), or "?"
// (query).
type Atom struct {
	Prefix string
	Name   string
}

func (Atom) isTerm() {}

func (a Atom) String() string { return a.Prefix + a.Name }

// IsVariable reports whether this atom is one of the three variable kinds.
func (a Atom) IsVariable() bool {
	switch a.Prefix {
	case "$", "#", "?":
		return true
	default:
		return false
	}
}

// Compound is a connector applied to an ordered list of child terms, e.g.
// "(&&, a, b)" or "(*, a, b)".
type Compound struct {
	Connector string
	Terms     []Term
}

func (Compound) isTerm() {}

func (c Compound) String() string {
	parts := make([]string, len(c.Terms))
	for i, t := range c.Terms {
		parts[i] = t.String()
	}
	return "(" + c.Connector + ", " + strings.Join(parts, ", ") + ")"
}

// TermSet is a bracketed extensional/intensional set, e.g. "{a, b}" or
// "[a, b]". LeftBracket/RightBracket carry the literal bracket characters so
// the set kind (extensional vs intensional) survives round-tripping.
type TermSet struct {
	LeftBracket  string
	Terms        []Term
	RightBracket string
}

func (TermSet) isTerm() {}

func (s TermSet) String() string {
	parts := make([]string, len(s.Terms))
	for i, t := range s.Terms {
		parts[i] = t.String()
	}
	return s.LeftBracket + strings.Join(parts, ", ") + s.RightBracket
}

// Statement is a copula relation between a subject and a predicate, e.g.
// "<A --> B>".
type Statement struct {
	Copula    string
	Subject   Term
	Predicate Term
}

func (Statement) isTerm() {}

func (s Statement) String() string {
	return "<" + s.Subject.String() + " " + s.Copula + " " + s.Predicate.String() + ">"
}

// Sentence is a term with a punctuation mark, an optional stamp, and an
// optional truth value. Truth is stored as a verbatim decimal-string
// sequence so serialization round-trips exactly.
type Sentence struct {
	Term        Term
	Punctuation string
	Stamp       string
	Truth       []string
}

// Task is a sentence with an optional budget, again stored as a verbatim
// decimal-string sequence.
type Task struct {
	Sentence Sentence
	Budget   []string
}

// Narsese is the top-level value produced by parsing: either a bare term, a
// sentence, or a task. Exactly one of the three is non-nil.
type Narsese struct {
	Term     Term
	Sentence *Sentence
	Task     *Task
}

// String renders the Narsese value in canonical ASCII form: a bare term, a
// sentence (term + punctuation [+ stamp] [+ truth]), or a task (budget +
// sentence).
func (n Narsese) String() string {
	switch {
	case n.Task != nil:
		budget := "$" + strings.Join(n.Task.Budget, ";") + "$ "
		return budget + sentenceString(n.Task.Sentence)
	case n.Sentence != nil:
		return sentenceString(*n.Sentence)
	default:
		return n.Term.String()
	}
}

func sentenceString(s Sentence) string {
	out := s.Term.String() + s.Punctuation
	if s.Stamp != "" {
		out += " " + s.Stamp
	}
	if len(s.Truth) > 0 {
		out += " %" + strings.Join(s.Truth, ";") + "%"
	}
	return out
}

// MarshalJSON encodes a Narsese value as its canonical ASCII string form.
// Term/Sentence/Task hold Term as a bare interface (Atom/Compound/TermSet/
// Statement), which Go's encoding/json cannot reconstruct on the way back in
// without a discriminator on every node; round-tripping through the same
// ASCII text ParseNarsese already accepts sidesteps that, and stays exact
// because String()/ParseNarsese are required to be inverses anyway.
func (n Narsese) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON decodes a Narsese value from its canonical ASCII string
// form, the inverse of MarshalJSON.
func (n *Narsese) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseNarsese(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// TermOf extracts the term regardless of which Narsese variant was parsed.
func (n Narsese) TermOf() Term {
	switch {
	case n.Task != nil:
		return n.Task.Sentence.Term
	case n.Sentence != nil:
		return n.Sentence.Term
	default:
		return n.Term
	}
}

// Commutative connector and copula constants.
const (
	ConnExtSet          = "{}" // extensional set, matched via TermSet brackets below
	ConnIntSet          = "[]"
	ConnExtIntersection = "&"
	ConnIntIntersection = "|"
	ConnConjunction     = "&&"
	ConnDisjunction     = "||"
	ConnParallelConj    = "&|"

	CopulaSimilarity          = "<->"
	CopulaEquivalence         = "<=>"
	CopulaConcurrentEquivalen = "<|>"
)

// IsCommutativeConnector reports whether child terms of a Compound with this
// connector may be freely reordered during canonicalization.
func IsCommutativeConnector(connector string) bool {
	switch connector {
	case ConnExtIntersection, ConnIntIntersection, ConnConjunction, ConnDisjunction, ConnParallelConj:
		return true
	default:
		return false
	}
}

// IsCommutativeCopula reports whether a Statement's subject/predicate may be
// swapped into canonical order during canonicalization.
func IsCommutativeCopula(copula string) bool {
	switch copula {
	case CopulaSimilarity, CopulaEquivalence, CopulaConcurrentEquivalen:
		return true
	default:
		return false
	}
}

// Operation is a NARS operation invocation: an operator name plus positional
// term parameters.
type Operation struct {
	OperatorName string
	Params       []Term
}

// NoParams reports whether this operation carries no parameters, used by the
// expectation engine's wildcard rule.
func (o Operation) NoParams() bool { return len(o.Params) == 0 }

// operationWire is Operation's JSON shape: Params as term strings rather
// than a bare Term interface, for the same reason Narsese.MarshalJSON
// encodes to a string (see its doc comment).
type operationWire struct {
	OperatorName string   `json:"operator_name"`
	Params       []string `json:"params,omitempty"`
}

func (o Operation) MarshalJSON() ([]byte, error) {
	params := make([]string, len(o.Params))
	for i, p := range o.Params {
		params[i] = p.String()
	}
	return json.Marshal(operationWire{OperatorName: o.OperatorName, Params: params})
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	var wire operationWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	params := make([]Term, len(wire.Params))
	for i, s := range wire.Params {
		n, err := ParseNarsese(s)
		if err != nil {
			return err
		}
		params[i] = n.TermOf()
	}
	o.OperatorName = wire.OperatorName
	o.Params = params
	return nil
}
