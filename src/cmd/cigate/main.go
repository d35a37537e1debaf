// Package main provides the cigate CLI: a closed-loop gate that verifies a
// CI run completed and that the required jobs concluded success.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cigate/src/broker"
	"cigate/src/config"
	"cigate/src/gate"
	_ "cigate/src/githubactions" // register the github provider
	"cigate/src/logger"
	"cigate/src/mcp"
	"cigate/src/provider"
	"cigate/src/store"
	"cigate/src/tui"
)

var (
	// Application configuration: built-ins, then env, then file, then flags.
	appConfig *config.Config

	cfgFile      string
	flagOwner    string
	flagRepo     string
	flagBranch   string
	flagRunID    int64
	flagRequired []string
	flagTimeout  int
	flagPoll     int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cigate",
	Short: "cigate - a closed-loop CI verification gate",
	Long: `cigate verifies that a GitHub Actions workflow run for a branch (or an
explicit run id) completed AND that required jobs concluded success.

It works without log downloads and without authentication, but supports
higher rate limits via a token (GITHUB_TOKEN or GH_TOKEN).

Exit codes:
  0  run green and all required jobs succeeded
  1  run completed but not green, or a required job did not succeed
  2  one or more required jobs absent from the run entirely
  3  timed out waiting for completion
  4  resolution or transport failure`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appConfig = config.FromEnv()

		if cfgFile != "" {
			if err := appConfig.ApplyFile(cfgFile); err != nil {
				return err
			}
		}

		// Flags win over file values, file values over built-ins.
		flags := cmd.Flags()
		if flags.Changed("owner") {
			appConfig.Owner = flagOwner
		}
		if flags.Changed("repo") {
			appConfig.Repo = flagRepo
		}
		if flags.Changed("branch") {
			appConfig.Branch = flagBranch
		}
		if flags.Changed("run-id") {
			appConfig.RunID = flagRunID
		}
		if flags.Changed("required-job") {
			appConfig.RequiredJobs = flagRequired
		}
		if flags.Changed("timeout-secs") {
			appConfig.TimeoutSecs = flagTimeout
		}
		if flags.Changed("poll-secs") {
			appConfig.PollSecs = flagPoll
		}
		return nil
	},
}

// verifyCmd runs the gate and prints the report to stdout.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a workflow run and exit with the gate's code",
	Long: `Resolves the run to monitor, polls it until it completes or the timeout
elapses, checks the required jobs, and prints the verification report.

Examples:
  cigate verify --owner acme --repo widget --branch main
  GITHUB_TOKEN=... cigate verify --owner acme --repo widget --run-id 20259754260
  cigate verify --owner acme --repo widget --branch main --required-job build --required-job lint`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.NewConsoleLogger()

		session, err := newSession(cmd.Context(), appConfig)
		if err != nil {
			log.Error("ERROR: %v", err)
			os.Exit(gate.ExitFailure)
		}
		defer session.close()

		observers := []gate.Observer{
			gate.ObserverFunc(func(p gate.Progress) {
				log.Info("%s", gate.ProgressLine(p))
			}),
		}
		if session.events != nil {
			observers = append(observers, session.events)
		}

		outcome := session.run(cmd.Context(), gate.MultiObserver(observers...))
		text, code := gate.Report(outcome)
		if code == gate.ExitGreen {
			log.Info("%s", text)
		} else {
			log.Error("%s", text)
		}

		session.record(cmd.Context(), outcome, code, log)
		os.Exit(code)
	},
}

// watchCmd runs the same gate under a live terminal display.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Verify a workflow run with a live terminal display",
	Run: func(cmd *cobra.Command, args []string) {
		// The TUI owns the terminal; everything else stays quiet.
		log := logger.NewSilentLogger()

		session, err := newSession(cmd.Context(), appConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(gate.ExitFailure)
		}
		defer session.close()

		target := fmt.Sprintf("branch %s", appConfig.Branch)
		if appConfig.RunID != 0 {
			target = fmt.Sprintf("run %d", appConfig.RunID)
		}

		model := tui.NewWatchModel(session.repo.String(), target)
		program := tea.NewProgram(model)

		go func() {
			observers := []gate.Observer{
				gate.ObserverFunc(func(p gate.Progress) {
					program.Send(tui.ProgressMsg(p))
				}),
			}
			if session.events != nil {
				observers = append(observers, session.events)
			}

			outcome := session.run(cmd.Context(), gate.MultiObserver(observers...))
			text, code := gate.Report(outcome)
			session.record(cmd.Context(), outcome, code, log)
			program.Send(tui.DoneMsg{Report: text, ExitCode: code})
		}()

		final, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "display error: %v\n", err)
			os.Exit(gate.ExitFailure)
		}
		os.Exit(final.(tui.WatchModel).ExitCode())
	},
}

// historyCmd lists recorded verifications from the audit store.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded verifications for the repository",
	Run: func(cmd *cobra.Command, args []string) {
		if appConfig.AuditDSN == "" {
			fmt.Fprintln(os.Stderr, "ERROR: history requires CIGATE_AUDIT_DSN to be set")
			os.Exit(gate.ExitFailure)
		}
		if err := appConfig.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(gate.ExitFailure)
		}

		auditStore, err := store.NewPostgresStore(appConfig.AuditDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(gate.ExitFailure)
		}
		defer auditStore.Close()

		repo := provider.RepoRef{Owner: appConfig.Owner, Repo: appConfig.Repo}
		records, err := auditStore.ListVerifications(cmd.Context(), repo.String(), 20)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(gate.ExitFailure)
		}

		for _, rec := range records {
			fmt.Printf("%s run_id=%d sha=%s verdict=%s exit=%d\n",
				rec.CreatedAt.Format(time.RFC3339), rec.RunID, rec.HeadSHA, rec.Verdict, rec.ExitCode)
		}
	},
}

// mcpServerCmd serves the gate as an MCP tool over stdio.
var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Serve the verification gate as an MCP tool over stdio",
	Run: func(cmd *cobra.Command, args []string) {
		srv := mcp.NewServer(appConfig.Token)
		if err := srv.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

// session bundles the collaborators one verification needs.
type session struct {
	repo       provider.RepoRef
	prov       provider.Provider
	events     *gate.EventPublisher
	msgBroker  broker.Broker
	auditStore store.Store
	cfg        *config.Config
}

// newSession validates the configuration and wires the provider, optional
// event plane, and optional audit store.
func newSession(ctx context.Context, cfg *config.Config) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sel := gate.Selector{RunID: cfg.RunID, Branch: cfg.Branch}
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	prov, err := provider.Get("github", cfg.Token)
	if err != nil {
		return nil, err
	}

	s := &session{
		repo: provider.RepoRef{Owner: cfg.Owner, Repo: cfg.Repo},
		prov: prov,
		cfg:  cfg,
	}

	if len(cfg.BrokerAddrs) > 0 {
		b, err := broker.NewRedpandaBroker(cfg.BrokerAddrs)
		if err != nil {
			return nil, err
		}
		s.msgBroker = b
		s.events = gate.NewEventPublisher(ctx, b, s.repo)
	}

	if cfg.AuditDSN != "" {
		auditStore, err := store.NewPostgresStore(cfg.AuditDSN)
		if err != nil {
			if s.msgBroker != nil {
				s.msgBroker.Close()
			}
			return nil, err
		}
		s.auditStore = auditStore
	}

	return s, nil
}

// run executes the gate with the given observer sink.
func (s *session) run(ctx context.Context, observer gate.Observer) gate.Outcome {
	runner := gate.NewRunner(s.prov, s.repo,
		gate.Selector{RunID: s.cfg.RunID, Branch: s.cfg.Branch},
		s.cfg.RequiredJobs,
		time.Duration(s.cfg.TimeoutSecs)*time.Second,
		time.Duration(s.cfg.PollSecs)*time.Second,
		gate.WithRunnerObserver(observer))
	return runner.Run(ctx)
}

// record publishes the result event and appends the audit record. Failures
// here are logged but never change the gate's exit code.
func (s *session) record(ctx context.Context, outcome gate.Outcome, exitCode int, log logger.Logger) {
	if s.events != nil {
		if err := s.events.PublishResult(outcome, exitCode); err != nil {
			log.Error("failed to publish result event: %v", err)
		}
	}

	if s.auditStore != nil {
		rec := &store.Record{
			RunID:      outcome.RunID,
			Repo:       s.repo.String(),
			ExitCode:   exitCode,
			ElapsedSec: int(outcome.Elapsed.Seconds()),
		}
		if outcome.Err != nil {
			rec.Verdict = "error"
		} else {
			rec.Verdict = outcome.Verdict.Kind.String()
			rec.Missing = outcome.Verdict.Missing
			for _, f := range outcome.Verdict.Failed {
				rec.Failed = append(rec.Failed, fmt.Sprintf("%s=%s", f.Name, f.Conclusion))
			}
		}
		if outcome.Run != nil {
			rec.HeadSHA = outcome.Run.ShortSHA()
			rec.Conclusion = outcome.Run.Conclusion
		}
		if err := s.auditStore.SaveVerification(ctx, rec); err != nil {
			log.Error("failed to record verification: %v", err)
		}
	}
}

// close releases broker and store connections.
func (s *session) close() {
	if s.msgBroker != nil {
		s.msgBroker.Close()
	}
	if s.auditStore != nil {
		s.auditStore.Close()
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Path to a YAML config file")
	pf.StringVar(&flagOwner, "owner", "", "Repository owner")
	pf.StringVar(&flagRepo, "repo", "", "Repository name")
	pf.StringVar(&flagBranch, "branch", "", "Branch name to check (uses latest run)")
	pf.Int64Var(&flagRunID, "run-id", 0, "Explicit workflow run id")
	pf.StringArrayVar(&flagRequired, "required-job", nil, "Job name that must conclude success (can be repeated)")
	pf.IntVar(&flagTimeout, "timeout-secs", config.DefaultTimeoutSecs, "Max seconds to wait for a run to complete")
	pf.IntVar(&flagPoll, "poll-secs", config.DefaultPollSecs, "Polling interval in seconds")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpServerCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
