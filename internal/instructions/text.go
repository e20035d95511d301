package instructions

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteText writes the sheet as plain text: cut counts per angle, piece
// counts per angle and color, then the placement grid row by row.
func WriteText(w io.Writer, s *Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Field %dx%d, %d pieces\n\n", s.Width, s.Height, s.Total())

	fmt.Fprintln(bw, "Angles")
	for i, n := range s.AngleCounts {
		fmt.Fprintf(bw, "  %6.2f°: %d (%s)\n", s.Angles[i], n, AngleLetter(i))
	}

	fmt.Fprintln(bw, "\nPieces")
	for i, counts := range s.AngleColorCounts {
		for j, n := range counts {
			fmt.Fprintf(bw, "  %6.2f° %s: %d (%s%s)\n", s.Angles[i], s.Colors[j].Hex(), n, AngleLetter(i), ColorOrdinal(j))
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, "Grid")
	cells := make([]string, 0, s.Width)
	for _, row := range s.Labels {
		cells = cells[:0]
		for _, l := range row {
			cells = append(cells, l.Piece()+l.Direction())
		}
		fmt.Fprintf(bw, "  %s\n", strings.Join(cells, " "))
	}

	return bw.Flush()
}
