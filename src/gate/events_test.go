package gate

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cigate/src/broker"
	"cigate/src/contracts"
)

func TestEventPublisher_PollObserved(t *testing.T) {
	b := broker.NewInMemoryBroker()
	defer b.Close()

	ctx := context.Background()
	ch, _ := b.Subscribe(ctx, contracts.TopicPollProgress, "test")

	pub := NewEventPublisher(ctx, b, testRepo)
	pub.PollObserved(Progress{
		RunID:   42,
		Status:  "in_progress",
		Elapsed: 40 * time.Second,
	})

	select {
	case msg := <-ch:
		if msg.Key != "42" {
			t.Errorf("Key = %s, want 42", msg.Key)
		}
		var p contracts.PollProgress
		if err := json.Unmarshal(msg.Value, &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if p.RunID != 42 || p.Status != "in_progress" || p.ElapsedSec != 40 {
			t.Errorf("payload = %+v", p)
		}
		if p.Repo != "o/r" {
			t.Errorf("Repo = %s, want o/r", p.Repo)
		}
	case <-time.After(time.Second):
		t.Fatal("no progress message published")
	}
}

func TestEventPublisher_PublishResult(t *testing.T) {
	b := broker.NewInMemoryBroker()
	defer b.Close()

	ctx := context.Background()
	ch, _ := b.Subscribe(ctx, contracts.TopicResults, "test")

	out := Outcome{
		RunID: 42,
		Run:   completed(42, "failure"),
		Verdict: &Verdict{
			Kind:   VerdictFailedJobs,
			Failed: []JobFailure{{Name: "build", Conclusion: "failure"}},
		},
		Elapsed: 60 * time.Second,
	}

	pub := NewEventPublisher(ctx, b, testRepo)
	if err := pub.PublishResult(out, ExitNotGreen); err != nil {
		t.Fatalf("PublishResult() error = %v", err)
	}

	select {
	case msg := <-ch:
		var r contracts.GateResult
		if err := json.Unmarshal(msg.Value, &r); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if r.Verdict != "failed_jobs" {
			t.Errorf("Verdict = %s, want failed_jobs", r.Verdict)
		}
		if r.ExitCode != ExitNotGreen {
			t.Errorf("ExitCode = %d, want %d", r.ExitCode, ExitNotGreen)
		}
		if len(r.Failed) != 1 || r.Failed[0] != "build=failure" {
			t.Errorf("Failed = %v", r.Failed)
		}
	case <-time.After(time.Second):
		t.Fatal("no result message published")
	}
}
