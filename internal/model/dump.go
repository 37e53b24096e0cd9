package model

import (
	"fmt"
	"io"
	"strings"
)

// DumpHeader is the first line written by the controller dump.
const DumpHeader = "StatusBarWindowManager state:"

// FormatState renders s as a "Window State { ... }" block, one
// "  name: value" line per field in declaration order.
func FormatState(s State) string {
	var b strings.Builder
	b.WriteString("Window State {\n")
	for _, f := range s.Fields() {
		fmt.Fprintf(&b, "  %s: %s\n", f.Name, f.Value)
	}
	b.WriteString("}")
	return b.String()
}

// WriteDump writes the header line followed by FormatState(s).
func WriteDump(w io.Writer, s State) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", DumpHeader, FormatState(s))
	return err
}
