package nal

import (
	"math"
	"strconv"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

// Epsilon is a precision epsilon for truth/budget float comparison.
// Zero means exact equality; +Inf means match-any; negative means
// never-match.
type Epsilon float64

func (e Epsilon) floatsMatch(a, b float64) bool {
	eps := float64(e)
	if math.IsInf(eps, 1) {
		return true
	}
	if eps < 0 {
		return false
	}
	return math.Abs(a-b) <= eps
}

// IsExpectedNarsese reports whether out matches the expected Narsese value
// under semantic term equality plus exact punctuation/stamp and
// epsilon-tolerant truth/budget comparison.
func IsExpectedNarsese(expected, out navm.Narsese, eps Epsilon) (bool, error) {
	equal, err := SemanticEqual(expected.TermOf(), out.TermOf())
	if err != nil {
		return false, err
	}
	if !equal {
		return false, nil
	}

	expPunct, expStamp, expTruth, expHasSentence := sentenceFields(expected)
	outPunct, outStamp, outTruth, outHasSentence := sentenceFields(out)

	if expHasSentence != outHasSentence {
		return false, nil
	}
	if !expHasSentence {
		return true, nil
	}
	if expPunct != outPunct {
		return false, nil
	}
	if expStamp != outStamp {
		return false, nil
	}
	if !IsExpectedTruth(expTruth, outTruth, eps) {
		return false, nil
	}

	// An expected value without a budget matches any output budget; an
	// expected budget against an output without one fails in
	// IsExpectedBudget.
	expBudget, outBudget, expHasBudget, _ := budgetFields(expected, out)
	if expHasBudget && !IsExpectedBudget(expBudget, outBudget, eps) {
		return false, nil
	}
	return true, nil
}

func sentenceFields(n navm.Narsese) (punct, stamp string, truth []string, hasSentence bool) {
	switch {
	case n.Task != nil:
		return n.Task.Sentence.Punctuation, n.Task.Sentence.Stamp, n.Task.Sentence.Truth, true
	case n.Sentence != nil:
		return n.Sentence.Punctuation, n.Sentence.Stamp, n.Sentence.Truth, true
	default:
		return "", "", nil, false
	}
}

func budgetFields(expected, out navm.Narsese) (expBudget, outBudget []string, expHas, outHas bool) {
	if expected.Task != nil {
		expBudget, expHas = expected.Task.Budget, true
	}
	if out.Task != nil {
		outBudget, outHas = out.Task.Budget, true
	}
	return
}

// IsExpectedTruth implements the truth wildcard rule: empty expected truth
// matches anything; a single-value expected truth matches the first value
// of a single- or double-valued output; a double-valued expected truth
// requires an exact (within epsilon) double match.
func IsExpectedTruth(expected, out []string, eps Epsilon) bool {
	if len(expected) == 0 {
		return true
	}
	switch len(expected) {
	case 1:
		if len(out) < 1 {
			return false
		}
		return floatFieldsMatch(expected[:1], out[:1], eps)
	case 2:
		if len(out) != 2 {
			return false
		}
		return floatFieldsMatch(expected, out, eps)
	default:
		return false
	}
}

// IsExpectedBudget implements the analogous three-tier wildcard rule for
// budgets (priority[, durability[, quality]]).
func IsExpectedBudget(expected, out []string, eps Epsilon) bool {
	if len(expected) == 0 {
		return true
	}
	switch len(expected) {
	case 1:
		if len(out) < 1 {
			return false
		}
		return floatFieldsMatch(expected[:1], out[:1], eps)
	case 2:
		if len(out) < 2 {
			return false
		}
		return floatFieldsMatch(expected, out[:2], eps)
	case 3:
		if len(out) != 3 {
			return false
		}
		return floatFieldsMatch(expected, out, eps)
	default:
		return false
	}
}

func floatFieldsMatch(expected, out []string, eps Epsilon) bool {
	for i := range expected {
		ef, err1 := strconv.ParseFloat(expected[i], 64)
		of, err2 := strconv.ParseFloat(out[i], 64)
		if err1 != nil || err2 != nil {
			return false
		}
		if !eps.floatsMatch(ef, of) {
			return false
		}
	}
	return true
}

// IsExpectedOperation implements the operator-name-exact,
// empty-params-wildcard rule.
func IsExpectedOperation(expected, out navm.Operation) (bool, error) {
	if expected.OperatorName != out.OperatorName {
		return false, nil
	}
	if expected.NoParams() {
		return true, nil
	}
	if out.NoParams() {
		return false, nil
	}
	if len(expected.Params) != len(out.Params) {
		return false, nil
	}
	for i := range expected.Params {
		equal, err := SemanticEqual(expected.Params[i], out.Params[i])
		if err != nil {
			return false, err
		}
		if !equal {
			return false, nil
		}
	}
	return true, nil
}

// Matches reports whether out satisfies the OutputExpectation e: the
// output-type tag, if present, must equal out's variant tag; Narsese, if
// present, is compared via IsExpectedNarsese; operation, if present, via
// IsExpectedOperation. All present slots must match.
func (e OutputExpectation) Matches(out navm.Output, eps Epsilon) (bool, error) {
	if e.OutputType != nil && *e.OutputType != out.OutputType() {
		return false, nil
	}
	if e.Narsese != nil {
		outNarsese, ok := narseseOf(out)
		if !ok {
			return false, nil
		}
		match, err := IsExpectedNarsese(*e.Narsese, outNarsese, eps)
		if err != nil || !match {
			return false, err
		}
	}
	if e.Operation != nil {
		outOp, ok := operationOf(out)
		if !ok {
			return false, nil
		}
		match, err := IsExpectedOperation(*e.Operation, outOp)
		if err != nil || !match {
			return false, err
		}
	}
	return true, nil
}

// narseseOf/operationOf reach into the structured payload any navm.Output
// variant may carry.
func narseseOf(out navm.Output) (navm.Narsese, bool) {
	type narseseCarrier interface {
		CarriedNarsese() (navm.Narsese, bool)
	}
	if c, ok := out.(narseseCarrier); ok {
		return c.CarriedNarsese()
	}
	return navm.Narsese{}, false
}

func operationOf(out navm.Output) (navm.Operation, bool) {
	type operationCarrier interface {
		CarriedOperation() (navm.Operation, bool)
	}
	if c, ok := out.(operationCarrier); ok {
		return c.CarriedOperation()
	}
	return navm.Operation{}, false
}
