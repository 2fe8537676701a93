package navm

import "encoding/json"

// Output is the tagged union of NAVM outputs produced for an external
// collaborator. Every variant carries a raw content string;
// OutputType returns the variant's JSON "type" tag.
type Output interface {
	OutputType() string
	RawContent() string
}

type outputBase struct {
	Type      string     `json:"type"`
	Raw       string     `json:"raw_content"`
	Narsese   *Narsese   `json:"narsese,omitempty"`
	Operation *Operation `json:"operation,omitempty"`
}

func (o outputBase) OutputType() string { return o.Type }
func (o outputBase) RawContent() string { return o.Raw }

// CarriedNarsese and CarriedOperation expose the optional structured
// payload a variant may carry, used by the expectation engine
// (nal.OutputExpectation.Matches) without it needing to switch on every
// concrete Output type.
func (o outputBase) CarriedNarsese() (Narsese, bool) {
	if o.Narsese == nil {
		return Narsese{}, false
	}
	return *o.Narsese, true
}

func (o outputBase) CarriedOperation() (Operation, bool) {
	if o.Operation == nil {
		return Operation{}, false
	}
	return *o.Operation, true
}

// IN is input echoed back by the CIN.
type IN struct{ outputBase }

// OUT is a derived/output belief or goal.
type OUT struct{ outputBase }

// ANSWER is a response to a question or quest. A `None.` body must never be
// classified as ANSWER by an output translator; it should instead be
// classified OTHER or UNCLASSIFIED, enforced at the translator layer, not
// here.
type ANSWER struct{ outputBase }

// EXE is an executed operation.
type EXE struct{ outputBase }

// ANTICIPATE is an anticipation event (procedural prediction pending).
type ANTICIPATE struct{ outputBase }

// ACHIEVED is a satisfied anticipation/goal.
type ACHIEVED struct{ outputBase }

// INFO is an informational message, including synthetic messages emitted by
// the NAL executor itself (the expect-cycle success marker).
type INFO struct{ outputBase }

// COMMENT is a CIN-emitted comment line.
type COMMENT struct{ outputBase }

// ERROR surfaces a translate or dialect parse failure as observable output.
type ERROR struct{ outputBase }

// TERMINATED marks the CIN subprocess as having ended; fetching this output
// flips the owning Runtime's status.
type TERMINATED struct{ outputBase }

// OTHER is the default-pair catch-all variant.
type OTHER struct{ outputBase }

// UNCLASSIFIED is an output whose head tag was recognized as non-standard;
// it additionally records the literal tag text observed.
type UNCLASSIFIED struct {
	outputBase
	ObservedType string `json:"observed_type"`
}

func newBase(typ, raw string, narsese *Narsese, op *Operation) outputBase {
	return outputBase{Type: typ, Raw: raw, Narsese: narsese, Operation: op}
}

// NewIN, NewOUT, ... are convenience constructors used by per-CIN output
// translators (cins/...) so they don't need to poke at outputBase directly.
func NewIN(raw string, n *Narsese) Output   { return IN{newBase("IN", raw, n, nil)} }
func NewOUT(raw string, n *Narsese) Output  { return OUT{newBase("OUT", raw, n, nil)} }
func NewANSWER(raw string, n *Narsese) Output {
	return ANSWER{newBase("ANSWER", raw, n, nil)}
}
func NewEXE(raw string, n *Narsese, op *Operation) Output {
	return EXE{newBase("EXE", raw, n, op)}
}
func NewANTICIPATE(raw string, n *Narsese) Output {
	return ANTICIPATE{newBase("ANTICIPATE", raw, n, nil)}
}
func NewACHIEVED(raw string, n *Narsese) Output {
	return ACHIEVED{newBase("ACHIEVED", raw, n, nil)}
}
func NewINFO(raw string) Output       { return INFO{newBase("INFO", raw, nil, nil)} }
func NewCOMMENT(raw string) Output    { return COMMENT{newBase("COMMENT", raw, nil, nil)} }
func NewERROR(raw string) Output      { return ERROR{newBase("ERROR", raw, nil, nil)} }
func NewTERMINATED(raw string) Output { return TERMINATED{newBase("TERMINATED", raw, nil, nil)} }
func NewOTHER(raw string) Output      { return OTHER{newBase("OTHER", raw, nil, nil)} }
func NewUNCLASSIFIED(observedType, raw string) Output {
	return UNCLASSIFIED{outputBase: newBase("UNCLASSIFIED", raw, nil, nil), ObservedType: observedType}
}

// MarshalJSON gives each concrete variant its tagged JSON form. Go's
// embedding would otherwise happily marshal outputBase's fields directly,
// which is what we want. This method exists on the few variants that add
// fields beyond outputBase (only UNCLASSIFIED today) so the embedded
// fields and the extra field serialize into one flat object.
func (u UNCLASSIFIED) MarshalJSON() ([]byte, error) {
	type alias struct {
		Type         string     `json:"type"`
		RawContent   string     `json:"raw_content"`
		Narsese      *Narsese   `json:"narsese,omitempty"`
		Operation    *Operation `json:"operation,omitempty"`
		ObservedType string     `json:"observed_type"`
	}
	return json.Marshal(alias{
		Type:         u.Type,
		RawContent:   u.outputBase.Raw,
		Narsese:      u.Narsese,
		Operation:    u.Operation,
		ObservedType: u.ObservedType,
	})
}

// ParseOutputJSON peeks the "type" discriminator field and dispatches to
// the concrete Output variant.
func ParseOutputJSON(data []byte) (Output, error) {
	var peek struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return nil, err
	}
	var base outputBase
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, err
	}
	switch peek.Type {
	case "IN":
		return IN{base}, nil
	case "OUT":
		return OUT{base}, nil
	case "ANSWER":
		return ANSWER{base}, nil
	case "EXE":
		return EXE{base}, nil
	case "ANTICIPATE":
		return ANTICIPATE{base}, nil
	case "ACHIEVED":
		return ACHIEVED{base}, nil
	case "INFO":
		return INFO{base}, nil
	case "COMMENT":
		return COMMENT{base}, nil
	case "ERROR":
		return ERROR{base}, nil
	case "TERMINATED":
		return TERMINATED{base}, nil
	case "OTHER":
		return OTHER{base}, nil
	case "UNCLASSIFIED":
		var u UNCLASSIFIED
		if err := json.Unmarshal(data, &u); err != nil {
			return nil, err
		}
		return u, nil
	default:
		return UNCLASSIFIED{outputBase: base, ObservedType: peek.Type}, nil
	}
}
