package gate

import (
	"fmt"
	"strings"

	"cigate/src/provider"
)

// Process exit codes. These are part of the external contract.
const (
	ExitGreen       = 0 // run green, all required jobs succeeded
	ExitNotGreen    = 1 // run completed but not green, or a required job failed
	ExitMissingJobs = 2 // one or more required jobs absent from the run
	ExitTimedOut    = 3 // run did not complete within the timeout
	ExitFailure     = 4 // resolution or transport failure
)

// Report maps an outcome to the report text and process exit code. It is a
// pure mapping; the caller emits the text.
func Report(o Outcome) (string, int) {
	if o.Err != nil {
		return fmt.Sprintf("ERROR: %v", provider.WrapError(o.Err)), ExitFailure
	}

	if o.Verdict.Kind == VerdictTimedOut {
		return fmt.Sprintf("ERROR: timed out waiting for run %d to complete (waited %ds).",
			o.RunID, int(o.Elapsed.Seconds())), ExitTimedOut
	}

	var b strings.Builder
	fmt.Fprintf(&b, "run_id=%d sha=%s status=%s conclusion=%s\n",
		o.RunID, o.Run.ShortSHA(), o.Run.Status, o.Run.Conclusion)
	if o.Run.URL != "" {
		fmt.Fprintf(&b, "url=%s\n", o.Run.URL)
	}

	switch o.Verdict.Kind {
	case VerdictSuccess:
		b.WriteString("OK: CI is green and all required jobs succeeded.")
		return b.String(), ExitGreen

	case VerdictMissingJobs:
		b.WriteString("ERROR: missing required jobs:\n")
		for _, name := range o.Verdict.Missing {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
		b.WriteString("\nJobs seen:\n" + jobSummary(o.Jobs))
		return b.String(), ExitMissingJobs

	case VerdictFailedJobs:
		b.WriteString("ERROR: CI not green.\n")
		b.WriteString("Required jobs not successful:\n")
		for _, f := range o.Verdict.Failed {
			fmt.Fprintf(&b, "  - %s: %s\n", f.Name, f.Conclusion)
		}
		b.WriteString("\nJobs:\n" + jobSummary(o.Jobs))
		return b.String(), ExitNotGreen

	default: // VerdictRunNotSuccessful
		b.WriteString("ERROR: CI not green.\n")
		b.WriteString("\nJobs:\n" + jobSummary(o.Jobs))
		return b.String(), ExitNotGreen
	}
}

// ProgressLine formats one non-terminal poll observation.
func ProgressLine(p Progress) string {
	return fmt.Sprintf("waiting: run_id=%d status=%s conclusion=%s elapsed=%ds",
		p.RunID, p.Status, p.Conclusion, int(p.Elapsed.Seconds()))
}

func jobSummary(jobs []provider.Job) string {
	lines := make([]string, 0, len(jobs))
	for _, j := range jobs {
		lines = append(lines, fmt.Sprintf("- %s | %s | %s", j.Name, j.Status, j.Conclusion))
	}
	return strings.Join(lines, "\n")
}
