package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/idelchi/dirrank/internal/dirrank"
	"github.com/idelchi/dirrank/internal/volume"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintSummary outputs the topN largest folders in human-readable table format.
// vol is optional and adds the capacity of the scanned filesystem.
//
//nolint:forbidigo // This function prints output to the console.
func PrintSummary(res *dirrank.Result, vol *volume.Stats, topN int, writer io.Writer) error {
	// Styles are resolved against writer so pipes and files get plain text.
	renderer := lipgloss.NewRenderer(writer)
	title := renderer.NewStyle().Bold(true)
	muted := renderer.NewStyle().Faint(true)

	top := res.Top(topN)

	fmt.Fprintln(writer)
	fmt.Fprintln(writer, title.Render(fmt.Sprintf("Top %d largest folders in %s:", len(top), res.Root)))

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	if len(top) == 0 {
		fmt.Fprintln(w, "  (no folders)\t\t")
	}

	for i, f := range top {
		pct := 0.0
		if res.TotalBytes > 0 {
			pct = 100.0 * float64(f.Size) / float64(res.TotalBytes)
		}

		fmt.Fprintf(w, "  %d) '%s'\t%s\t(%.1f%%)\n", i+1, f.Path, HumanBytes(f.Size), pct)
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total folders:\t%d\n", len(res.Folders))
	fmt.Fprintf(w, "Total files:\t%s\n", humanize.Comma(res.FileCount))
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", HumanBytes(res.TotalBytes), res.TotalBytes)

	if res.ErrorCount > 0 {
		fmt.Fprintf(w, "Skipped entries:\t%d\n", res.ErrorCount)
	}

	if vol != nil {
		fmt.Fprintf(w, "Volume:\t%s of %s used (%.1f%%), scan covers %.1f%% of used\n",
			HumanBytes(vol.Used), HumanBytes(vol.Total), vol.UsedPercent, vol.Share(res.TotalBytes))
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", res.Elapsed)

	if err := w.Flush(); err != nil {
		return err
	}

	if len(res.Folders) > len(top) {
		fmt.Fprintln(writer, muted.Render(fmt.Sprintf("(%d more not shown)", len(res.Folders)-len(top))))
	}

	return nil
}
