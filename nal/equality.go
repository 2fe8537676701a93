package nal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

// maxTriesFormalize bounds the rename/sort iteration; exceeding it proves a
// bug in the canonicalization algorithm, not a user error.
const maxTriesFormalize = 256

// Canonicalize repeatedly renumbers variables (by first occurrence) and
// sorts commutative children until a fixed point is reached, within
// maxTriesFormalize iterations. Iteration is required: a reorder can
// expose a further renaming opportunity, and vice versa.
func Canonicalize(t navm.Term) (navm.Term, error) {
	current := t
	for i := 0; i < maxTriesFormalize; i++ {
		renamed := renameVariables(current)
		sorted, _ := sortCommutative(renamed)
		if termEqualStructurally(sorted, current) {
			return sorted, nil
		}
		current = sorted
	}
	return nil, fmt.Errorf("canonicalization did not converge within %d iterations (this is a bug, not a user error)", maxTriesFormalize)
}

// SemanticEqual reports whether two terms are equal up to variable
// renaming and commutative reordering.
func SemanticEqual(a, b navm.Term) (bool, error) {
	ca, err := Canonicalize(a)
	if err != nil {
		return false, err
	}
	cb, err := Canonicalize(b)
	if err != nil {
		return false, err
	}
	return termEqualStructurally(ca, cb), nil
}

// --- variable renaming, by first occurrence ---

func renameVariables(t navm.Term) navm.Term {
	mapping := map[string]string{}
	return applyRename(t, mapping)
}

func applyRename(t navm.Term, mapping map[string]string) navm.Term {
	switch v := t.(type) {
	case navm.Atom:
		if !v.IsVariable() {
			return v
		}
		key := v.Prefix + v.Name
		name, ok := mapping[key]
		if !ok {
			name = fmt.Sprintf("%d", len(mapping)+1)
			mapping[key] = name
		}
		return navm.Atom{Prefix: v.Prefix, Name: name}
	case navm.Compound:
		terms := make([]navm.Term, len(v.Terms))
		for i, c := range v.Terms {
			terms[i] = applyRename(c, mapping)
		}
		return navm.Compound{Connector: v.Connector, Terms: terms}
	case navm.TermSet:
		terms := make([]navm.Term, len(v.Terms))
		for i, c := range v.Terms {
			terms[i] = applyRename(c, mapping)
		}
		return navm.TermSet{LeftBracket: v.LeftBracket, Terms: terms, RightBracket: v.RightBracket}
	case navm.Statement:
		return navm.Statement{
			Copula:    v.Copula,
			Subject:   applyRename(v.Subject, mapping),
			Predicate: applyRename(v.Predicate, mapping),
		}
	default:
		return t
	}
}

// --- commutative sort ---

// sortCommutative recursively sorts children of commutative
// Compound/TermSet nodes and swaps Statement subject/predicate into
// canonical order where the copula is commutative. It reports whether any
// reordering actually changed the tree.
func sortCommutative(t navm.Term) (navm.Term, bool) {
	switch v := t.(type) {
	case navm.Compound:
		terms := make([]navm.Term, len(v.Terms))
		changed := false
		for i, c := range v.Terms {
			sorted, ch := sortCommutative(c)
			terms[i] = sorted
			changed = changed || ch
		}
		if navm.IsCommutativeConnector(v.Connector) {
			before := make([]navm.Term, len(terms))
			copy(before, terms)
			sort.SliceStable(terms, func(i, j int) bool {
				return termCompare(terms[i], terms[j]) < 0
			})
			if !termsEqualSlice(before, terms) {
				changed = true
			}
		}
		return navm.Compound{Connector: v.Connector, Terms: terms}, changed

	case navm.TermSet:
		terms := make([]navm.Term, len(v.Terms))
		changed := false
		for i, c := range v.Terms {
			sorted, ch := sortCommutative(c)
			terms[i] = sorted
			changed = changed || ch
		}
		before := make([]navm.Term, len(terms))
		copy(before, terms)
		sort.SliceStable(terms, func(i, j int) bool {
			return termCompare(terms[i], terms[j]) < 0
		})
		if !termsEqualSlice(before, terms) {
			changed = true
		}
		return navm.TermSet{LeftBracket: v.LeftBracket, Terms: terms, RightBracket: v.RightBracket}, changed

	case navm.Statement:
		subject, ch1 := sortCommutative(v.Subject)
		predicate, ch2 := sortCommutative(v.Predicate)
		changed := ch1 || ch2
		if navm.IsCommutativeCopula(v.Copula) && termCompare(subject, predicate) > 0 {
			subject, predicate = predicate, subject
			changed = true
		}
		return navm.Statement{Copula: v.Copula, Subject: subject, Predicate: predicate}, changed

	default:
		return t, false
	}
}

// --- total order over terms, used both for sorting and for equality ---
//
// All variable atoms compare Equal to each other regardless of prefix kind
// or numeral: this is what lets variable renaming and commutative sort
// compose toward a convergent canonical form. Equality of the
// *canonicalized* tree is checked
// separately by termEqualStructurally, which does distinguish variable
// kind/number; the sort key only needs a consistent total order, not a
// faithful equality.

func termCompare(a, b navm.Term) int {
	aAtom, aIsAtom := a.(navm.Atom)
	bAtom, bIsAtom := b.(navm.Atom)

	aVar := aIsAtom && aAtom.IsVariable()
	bVar := bIsAtom && bAtom.IsVariable()

	if aVar && bVar {
		return 0
	}
	if aIsAtom && bIsAtom {
		if aAtom.Prefix != bAtom.Prefix {
			return strings.Compare(aAtom.Prefix, bAtom.Prefix)
		}
		return strings.Compare(aAtom.Name, bAtom.Name)
	}
	// Order atoms before compounds, sets, and statements.
	rank := func(t navm.Term) int {
		switch t.(type) {
		case navm.Atom:
			return 0
		case navm.Compound:
			return 1
		case navm.TermSet:
			return 2
		case navm.Statement:
			return 3
		default:
			return 4
		}
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case navm.Compound:
		bv := b.(navm.Compound)
		if av.Connector != bv.Connector {
			return strings.Compare(av.Connector, bv.Connector)
		}
		return compareTermSlices(av.Terms, bv.Terms)
	case navm.TermSet:
		bv := b.(navm.TermSet)
		if av.LeftBracket != bv.LeftBracket {
			return strings.Compare(av.LeftBracket, bv.LeftBracket)
		}
		return compareTermSlices(av.Terms, bv.Terms)
	case navm.Statement:
		bv := b.(navm.Statement)
		if av.Copula != bv.Copula {
			return strings.Compare(av.Copula, bv.Copula)
		}
		if c := termCompare(av.Subject, bv.Subject); c != 0 {
			return c
		}
		return termCompare(av.Predicate, bv.Predicate)
	default:
		return 0
	}
}

func compareTermSlices(a, b []navm.Term) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := termCompare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func termsEqualSlice(a, b []navm.Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !termEqualStructurally(a[i], b[i]) {
			return false
		}
	}
	return true
}

// termEqualStructurally is exact structural equality (same variable
// prefix+name, same connector/bracket/copula, same child order), used
// once both sides have already been through Canonicalize.
func termEqualStructurally(a, b navm.Term) bool {
	switch av := a.(type) {
	case navm.Atom:
		bv, ok := b.(navm.Atom)
		return ok && av.Prefix == bv.Prefix && av.Name == bv.Name
	case navm.Compound:
		bv, ok := b.(navm.Compound)
		if !ok || av.Connector != bv.Connector || len(av.Terms) != len(bv.Terms) {
			return false
		}
		for i := range av.Terms {
			if !termEqualStructurally(av.Terms[i], bv.Terms[i]) {
				return false
			}
		}
		return true
	case navm.TermSet:
		bv, ok := b.(navm.TermSet)
		if !ok || av.LeftBracket != bv.LeftBracket || len(av.Terms) != len(bv.Terms) {
			return false
		}
		for i := range av.Terms {
			if !termEqualStructurally(av.Terms[i], bv.Terms[i]) {
				return false
			}
		}
		return true
	case navm.Statement:
		bv, ok := b.(navm.Statement)
		return ok && av.Copula == bv.Copula &&
			termEqualStructurally(av.Subject, bv.Subject) &&
			termEqualStructurally(av.Predicate, bv.Predicate)
	default:
		return false
	}
}
