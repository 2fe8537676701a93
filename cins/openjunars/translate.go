// Package openjunars provides the input/output translators for the
// OpenJunars CIN family, launched as a Julia script via cins/common's
// JuliaScript recipe. Less mature than the other CIN integrations: CYC
// uses a ":c n" shell form, and IN/OUT/ANSWER output is not
// Narsese-parsed, only head-matched and carried as raw content.
package openjunars

import (
	"strconv"
	"strings"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

// InputTranslator converts a Cmd to OpenJunars's line-protocol text.
func InputTranslator(cmd navm.Cmd) (string, error) {
	switch c := cmd.(type) {
	case navm.NSE:
		return c.Task.String(), nil
	case navm.CYC:
		return ":c " + strconv.FormatUint(uint64(c.N), 10), nil
	case navm.REM:
		return "", nil
	default:
		return "", navm.ErrUnsupportedInput{Cmd: cmd}
	}
}

// OutputTranslator parses one line of OpenJunars stdout by head tag only.
//
// TODO: parse the Narsese body once OpenJunars's printed form stabilizes;
// IN/OUT/ANSWER/EXE carry only raw content for now.
func OutputTranslator(line string) (navm.Output, error) {
	head, body, _ := strings.Cut(line, ":")
	switch strings.ToLower(strings.TrimSpace(head)) {
	case "answer":
		if strings.TrimSpace(body) == "None." {
			return navm.NewOTHER(line), nil
		}
		return navm.NewANSWER(line, nil), nil
	case "out":
		return navm.NewOUT(line, nil), nil
	case "in":
		return navm.NewIN(line, nil), nil
	case "exe":
		op := navm.Operation{OperatorName: "UNKNOWN"}
		return navm.NewEXE(line, nil, &op), nil
	case "err", "error":
		return navm.NewERROR(line), nil
	default:
		return navm.NewOTHER(line), nil
	}
}
