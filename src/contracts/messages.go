// Package contracts defines the message types published to the event plane.
package contracts

// PollProgress is emitted once per non-terminal poll iteration.
// Published to: cigate.poll.progress
// Key: {run_id}
type PollProgress struct {
	RunID      int64  `json:"run_id"`
	Repo       string `json:"repo"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion,omitempty"`
	ElapsedSec int    `json:"elapsed_sec"`
	Timestamp  string `json:"timestamp"`
}

// GateResult is emitted once per invocation with the final verdict.
// Published to: cigate.results
// Key: {run_id}
type GateResult struct {
	RunID      int64    `json:"run_id"`
	Repo       string   `json:"repo"`
	HeadSHA    string   `json:"head_sha,omitempty"`
	Status     string   `json:"status,omitempty"`
	Conclusion string   `json:"conclusion,omitempty"`
	Verdict    string   `json:"verdict"`
	ExitCode   int      `json:"exit_code"`
	Missing    []string `json:"missing,omitempty"`
	Failed     []string `json:"failed,omitempty"`
	ElapsedSec int      `json:"elapsed_sec"`
	Timestamp  string   `json:"timestamp"`
}

// Topic names used on the event plane
const (
	// TopicPollProgress carries one message per poll iteration
	TopicPollProgress = "cigate.poll.progress"

	// TopicResults carries one message per completed verification
	TopicResults = "cigate.results"
)
