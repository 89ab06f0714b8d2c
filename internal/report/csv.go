// Package report renders a run's record set into the two tabular output
// files: one detailed row per probe, one summary row per target. Both files
// are written once, at the end of the run.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/multierr"

	"github.com/shariq818/latencymon/internal/domain"
)

// TimestampLayout renders the shared run timestamp,
// e.g. "2025-08-26 14:03:11 UTC".
const TimestampLayout = "2006-01-02 15:04:05 UTC"

var (
	detailedHeader = []string{"checked_at", "url", "sample_index", "status", "latency_ms", "response_bytes", "error"}
	summaryHeader  = []string{"checked_at", "url", "samples", "success_count", "failure_count", "min_ms", "avg_ms", "max_ms", "stdev_ms"}
)

// WriteDetailed writes the per-probe table. Absent fields render as blanks.
func WriteDetailed(w io.Writer, run *domain.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(detailedHeader); err != nil {
		return err
	}
	stamp := run.StartedAt.Format(TimestampLayout)
	for _, d := range run.Details {
		row := []string{
			stamp,
			string(d.Target),
			strconv.Itoa(d.SampleIndex),
			intOrBlank(d.Outcome.Status),
			floatOrBlank(d.Outcome.LatencyMS),
			int64OrBlank(d.Outcome.ResponseBytes),
			d.Outcome.Error,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary writes the per-target table. Min/avg/max are blank when the
// target produced no latency samples; stdev is always present.
func WriteSummary(w io.Writer, run *domain.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	stamp := run.StartedAt.Format(TimestampLayout)
	for _, s := range run.Summaries {
		row := []string{
			stamp,
			string(s.Target),
			strconv.Itoa(s.Count),
			strconv.Itoa(s.SuccessCount),
			strconv.Itoa(s.FailureCount),
			floatOrBlank(s.MinMS),
			floatOrBlank(s.AvgMS),
			floatOrBlank(s.MaxMS),
			formatMS(s.StdevMS),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFiles writes both tables to the given paths, creating or truncating
// them. The two writes are independent and their errors are combined, so a
// failing detailed file never stops the summary file.
func WriteFiles(detailedPath, summaryPath string, run *domain.Run) error {
	return multierr.Append(
		writeFile(detailedPath, run, WriteDetailed),
		writeFile(summaryPath, run, WriteSummary),
	)
}

func writeFile(path string, run *domain.Run, write func(io.Writer, *domain.Run) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return multierr.Append(write(f, run), f.Close())
}

func formatMS(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func intOrBlank(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func int64OrBlank(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func floatOrBlank(v *float64) string {
	if v == nil {
		return ""
	}
	return formatMS(*v)
}
