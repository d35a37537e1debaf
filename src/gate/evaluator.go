package gate

import "cigate/src/provider"

// Evaluate matches a completed run's job list against the required job
// names and classifies the result. It is a pure function of its inputs.
//
// Missing required jobs dominate every other check: an absent job usually
// means a renamed job silently stopped gating, which is a stronger signal
// of drift than a job that ran and failed. An empty required set is
// vacuously satisfied and defers to the run-level conclusion.
func Evaluate(jobs []provider.Job, required []string, runConclusion string) Verdict {
	// Last occurrence wins on duplicate names; the provider should never
	// report duplicates within one run.
	byName := make(map[string]provider.Job, len(jobs))
	for _, j := range jobs {
		byName[j.Name] = j
	}

	var missing []string
	for _, name := range required {
		if _, ok := byName[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Verdict{Kind: VerdictMissingJobs, Missing: missing}
	}

	var failed []JobFailure
	for _, name := range required {
		if j := byName[name]; j.Conclusion != provider.ConclusionSuccess {
			failed = append(failed, JobFailure{Name: name, Conclusion: j.Conclusion})
		}
	}
	if len(failed) > 0 {
		return Verdict{Kind: VerdictFailedJobs, Failed: failed}
	}

	// Every required job passed, but the provider may still mark the run
	// non-green because a non-required job failed.
	if runConclusion != provider.ConclusionSuccess {
		return Verdict{Kind: VerdictRunNotSuccessful}
	}

	return Verdict{Kind: VerdictSuccess}
}
