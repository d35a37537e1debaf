package gate

import (
	"reflect"
	"testing"

	"cigate/src/provider"
)

func TestEvaluate_AllRequiredGreen(t *testing.T) {
	jobs := []provider.Job{job("build", "success")}

	verdict := Evaluate(jobs, []string{"build"}, provider.ConclusionSuccess)
	if verdict.Kind != VerdictSuccess {
		t.Errorf("Kind = %v, want success", verdict.Kind)
	}
}

func TestEvaluate_MissingJob(t *testing.T) {
	jobs := []provider.Job{job("build", "success")}

	verdict := Evaluate(jobs, []string{"build", "lint"}, provider.ConclusionSuccess)
	if verdict.Kind != VerdictMissingJobs {
		t.Fatalf("Kind = %v, want missing_jobs", verdict.Kind)
	}
	if !reflect.DeepEqual(verdict.Missing, []string{"lint"}) {
		t.Errorf("Missing = %v, want [lint]", verdict.Missing)
	}
}

func TestEvaluate_FailedJob(t *testing.T) {
	jobs := []provider.Job{job("build", "failure")}

	verdict := Evaluate(jobs, []string{"build"}, provider.ConclusionFailure)
	if verdict.Kind != VerdictFailedJobs {
		t.Fatalf("Kind = %v, want failed_jobs", verdict.Kind)
	}
	want := []JobFailure{{Name: "build", Conclusion: "failure"}}
	if !reflect.DeepEqual(verdict.Failed, want) {
		t.Errorf("Failed = %v, want %v", verdict.Failed, want)
	}
}

// Missing dominates failed: an absent job is reported as missing even when
// other required jobs also failed and the run itself is red.
func TestEvaluate_MissingDominatesFailed(t *testing.T) {
	jobs := []provider.Job{
		job("build", "failure"),
		job("audit", "cancelled"),
	}

	verdict := Evaluate(jobs, []string{"build", "lint", "audit"}, provider.ConclusionFailure)
	if verdict.Kind != VerdictMissingJobs {
		t.Fatalf("Kind = %v, want missing_jobs", verdict.Kind)
	}
	if !reflect.DeepEqual(verdict.Missing, []string{"lint"}) {
		t.Errorf("Missing = %v, want [lint]", verdict.Missing)
	}
}

func TestEvaluate_RunNotSuccessful(t *testing.T) {
	// Every required job passed, but a non-required job dragged the run red.
	jobs := []provider.Job{
		job("build", "success"),
		job("flaky-canary", "failure"),
	}

	verdict := Evaluate(jobs, []string{"build"}, provider.ConclusionFailure)
	if verdict.Kind != VerdictRunNotSuccessful {
		t.Errorf("Kind = %v, want run_not_successful", verdict.Kind)
	}
}

func TestEvaluate_EmptyRequiredSet(t *testing.T) {
	jobs := []provider.Job{job("anything", "failure")}

	// Vacuously green up to the run-level conclusion.
	verdict := Evaluate(jobs, nil, provider.ConclusionSuccess)
	if verdict.Kind != VerdictSuccess {
		t.Errorf("Kind = %v, want success", verdict.Kind)
	}

	verdict = Evaluate(jobs, nil, provider.ConclusionFailure)
	if verdict.Kind != VerdictRunNotSuccessful {
		t.Errorf("Kind = %v, want run_not_successful", verdict.Kind)
	}
}

func TestEvaluate_MissingSubsetOfRequired(t *testing.T) {
	jobs := []provider.Job{
		job("a", "success"),
		job("b", "failure"),
	}
	required := []string{"a", "b", "c", "d"}

	verdict := Evaluate(jobs, required, provider.ConclusionFailure)

	seen := map[string]bool{"a": true, "b": true}
	requiredSet := map[string]bool{}
	for _, r := range required {
		requiredSet[r] = true
	}
	for _, m := range verdict.Missing {
		if !requiredSet[m] {
			t.Errorf("missing name %q is not in the required set", m)
		}
		if seen[m] {
			t.Errorf("missing name %q was present in the job list", m)
		}
	}
	if !reflect.DeepEqual(verdict.Missing, []string{"c", "d"}) {
		t.Errorf("Missing = %v, want required-set order [c d]", verdict.Missing)
	}
}

func TestEvaluate_DuplicateJobNamesLastWins(t *testing.T) {
	jobs := []provider.Job{
		job("build", "failure"),
		job("build", "success"),
	}

	verdict := Evaluate(jobs, []string{"build"}, provider.ConclusionSuccess)
	if verdict.Kind != VerdictSuccess {
		t.Errorf("Kind = %v, want success (last occurrence wins)", verdict.Kind)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	jobs := []provider.Job{
		job("build", "success"),
		job("lint", "failure"),
	}
	required := []string{"build", "lint"}

	first := Evaluate(jobs, required, provider.ConclusionFailure)
	second := Evaluate(jobs, required, provider.ConclusionFailure)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("verdicts differ across identical evaluations: %+v vs %+v", first, second)
	}
}
