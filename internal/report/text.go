package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/lpmtscan/pkg/formats"
)

// writeText renders the human-readable listing.
func writeText(w io.Writer, rep *Report, precision int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s block found at 0x%X\n", formats.Marker, rep.MarkerOffset)
	fmt.Fprintf(bw, "Header entry_count: %d\n", rep.DeclaredCount)
	fmt.Fprintln(bw)

	for _, e := range rep.Entries {
		fmt.Fprintf(bw, "Entry %d @ offset 0x%X\n", e.Index, e.Offset)
		fmt.Fprintf(bw, "  Layout: %s\n", e.Layout)
		if !e.Matched {
			fmt.Fprintln(bw)
			continue
		}
		fmt.Fprintf(bw, "  Pos: %s\n", floatList(e.Position[:], precision))
		fmt.Fprintf(bw, "  Scale: %s\n", floatList(e.Scale[:], precision))
		fmt.Fprintf(bw, "  Quat: %s\n", floatList(e.Rotation[:], precision))
		fmt.Fprintf(bw, "  QuatLen: %.*f\n", precision, float64(e.QuatNorm))
		fmt.Fprintf(bw, "  Valid: %s\n\n", yesNo(e.Valid))
	}

	if rep.Stop == formats.StopBoundaryTag.String() {
		fmt.Fprintf(bw, "Next tag %q at 0x%X, stopping %s parsing\n", rep.BoundaryTag, rep.BoundaryOffset, formats.Marker)
	}
	fmt.Fprintf(bw, "Slots: %d, matched: %d, valid: %d\n", rep.Slots, rep.Matched, rep.Valid)

	return bw.Flush()
}

func floatList(vals []Number, precision int) string {
	s := "["
	for i, v := range vals {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%.*f", precision, float64(v))
	}
	return s + "]"
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
