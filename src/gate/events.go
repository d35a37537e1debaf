package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cigate/src/broker"
	"cigate/src/contracts"
	"cigate/src/provider"
)

// EventPublisher mirrors poll observations and the final verdict onto the
// event plane. Publish failures are reported through the returned error for
// results and swallowed for progress lines: losing a progress event must
// never abort a verification in flight.
type EventPublisher struct {
	broker broker.Broker
	repo   provider.RepoRef
	ctx    context.Context
}

// NewEventPublisher creates a publisher bound to one repository.
func NewEventPublisher(ctx context.Context, b broker.Broker, repo provider.RepoRef) *EventPublisher {
	return &EventPublisher{broker: b, repo: repo, ctx: ctx}
}

// PollObserved implements Observer by publishing a PollProgress message.
func (e *EventPublisher) PollObserved(p Progress) {
	msg := contracts.PollProgress{
		RunID:      p.RunID,
		Repo:       e.repo.String(),
		Status:     p.Status,
		Conclusion: p.Conclusion,
		ElapsedSec: int(p.Elapsed.Seconds()),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	_ = e.broker.Publish(e.ctx, contracts.TopicPollProgress, fmt.Sprintf("%d", p.RunID), data)
}

// PublishResult emits the final GateResult message for an outcome.
func (e *EventPublisher) PublishResult(o Outcome, exitCode int) error {
	msg := contracts.GateResult{
		RunID:      o.RunID,
		Repo:       e.repo.String(),
		ExitCode:   exitCode,
		ElapsedSec: int(o.Elapsed.Seconds()),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	if o.Err != nil {
		msg.Verdict = "error"
	} else {
		msg.Verdict = o.Verdict.Kind.String()
		msg.Missing = o.Verdict.Missing
		for _, f := range o.Verdict.Failed {
			msg.Failed = append(msg.Failed, fmt.Sprintf("%s=%s", f.Name, f.Conclusion))
		}
	}
	if o.Run != nil {
		msg.HeadSHA = o.Run.ShortSHA()
		msg.Status = o.Run.Status
		msg.Conclusion = o.Run.Conclusion
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return e.broker.Publish(e.ctx, contracts.TopicResults, fmt.Sprintf("%d", o.RunID), data)
}
