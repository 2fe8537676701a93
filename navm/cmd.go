package navm

import (
	"fmt"
	"strconv"
	"strings"
)

// Cmd is the tagged union of NAVM commands consumed from an external
// collaborator. Concrete variants implement Tag and Text; Text
// produces the "<tag> <args...>" textual NAVM form used both on the wire
// and as the fallback key for the default pass-through translator.
type Cmd interface {
	Tag() string
	Text() string
}

// NSE injects a Narsese task into the CIN.
type NSE struct {
	Task Narsese
}

func (NSE) Tag() string    { return "NSE" }
func (c NSE) Text() string { return "NSE " + c.Task.String() }

// CYC advances the reasoner by n inference cycles.
type CYC struct {
	N uint
}

func (CYC) Tag() string    { return "CYC" }
func (c CYC) Text() string { return "CYC " + strconv.FormatUint(uint64(c.N), 10) }

// VOL sets output verbosity, 0-100.
type VOL struct {
	N uint
}

func (VOL) Tag() string    { return "VOL" }
func (c VOL) Text() string { return "VOL " + strconv.FormatUint(uint64(c.N), 10) }

// REG registers an operator name with the CIN.
type REG struct {
	Name string
}

func (REG) Tag() string    { return "REG" }
func (c REG) Text() string { return "REG " + c.Name }

// REM is a non-semantic comment, never forwarded to a CIN: every per-CIN
// input translator maps REM to the empty-string suppression sentinel.
type REM struct {
	Comment string
}

func (REM) Tag() string    { return "REM" }
func (c REM) Text() string { return "REM " + c.Comment }

// EXI requests a graceful or forced shutdown, with an optional reason.
type EXI struct {
	Reason string
}

func (EXI) Tag() string { return "EXI" }
func (c EXI) Text() string {
	if c.Reason == "" {
		return "EXI"
	}
	return "EXI " + c.Reason
}

// NEW resets the CIN's reasoning memory.
type NEW struct{}

func (NEW) Tag() string  { return "NEW" }
func (NEW) Text() string { return "NEW" }

// CUS is a free-form custom command whose tag and body are CIN-defined,
// e.g. ONA's *motorbabbling settings or PyNARS's / namespace.
type CUS struct {
	Name    string
	Content string
}

func (c CUS) Tag() string { return "CUS" }
func (c CUS) Text() string {
	return "CUS " + c.Name + " " + c.Content
}

// ParseCmd parses one line of NAVM textual input ("TAG arg1 arg2 ...") into
// a concrete Cmd, using ParseNarsese for NSE's tail.
func ParseCmd(line string) (Cmd, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
	if len(fields) == 0 || fields[0] == "" {
		return nil, ErrParse{Raw: line}
	}
	tag := strings.ToUpper(fields[0])
	var rest string
	if len(fields) > 1 {
		rest = strings.TrimSpace(fields[1])
	}
	switch tag {
	case "CYC":
		n, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			return nil, ErrParse{Raw: line, Cause: err}
		}
		return CYC{N: uint(n)}, nil
	case "VOL":
		n, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			return nil, ErrParse{Raw: line, Cause: err}
		}
		return VOL{N: uint(n)}, nil
	case "REG":
		return REG{Name: rest}, nil
	case "REM":
		return REM{Comment: rest}, nil
	case "EXI":
		return EXI{Reason: rest}, nil
	case "NEW":
		return NEW{}, nil
	case "NSE":
		n, err := ParseNarsese(rest)
		if err != nil {
			return nil, ErrParse{Raw: line, Cause: err}
		}
		return NSE{Task: n}, nil
	case "CUS":
		parts := strings.SplitN(rest, " ", 2)
		cus := CUS{Name: parts[0]}
		if len(parts) > 1 {
			cus.Content = parts[1]
		}
		return cus, nil
	default:
		return nil, ErrParse{Raw: line, Cause: fmt.Errorf("unknown command tag %q", tag)}
	}
}
