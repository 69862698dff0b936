package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"model-lowering/internal/target"
)

// commentColumn is where field comments start.
const commentColumn = 28

// WriteText writes every record of s in insertion order:
//
//	Zone,
//	  Zone 1,                   !- Name
//	  1;                        !- Multiplier
func WriteText(w io.Writer, s *target.Store) error {
	bw := bufio.NewWriter(w)

	for i, r := range s.All() {
		if i > 0 {
			bw.WriteString("\n")
		}

		writeRecord(bw, r)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	return nil
}

// Text renders s as a string.
func Text(s *target.Store) string {
	var sb strings.Builder
	_ = WriteText(&sb, s)

	return sb.String()
}

func writeRecord(w *bufio.Writer, r *target.Record) {
	if len(r.Fields) == 0 {
		fmt.Fprintf(w, "%s;\n", r.Kind)
		return
	}

	fmt.Fprintf(w, "%s,\n", r.Kind)

	for i, f := range r.Fields {
		sep := ","
		if i == len(r.Fields)-1 {
			sep = ";"
		}

		value := "  " + escape(f.Value.String()) + sep
		fmt.Fprintf(w, "%-*s !- %s\n", commentColumn, value, f.Name)
	}
}

// escape strips the characters that delimit fields.
func escape(s string) string {
	return strings.NewReplacer(",", " ", ";", " ", "!", " ").Replace(s)
}
