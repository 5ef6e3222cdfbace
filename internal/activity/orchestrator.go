package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/bashhack/commitpulse/internal/common"
	"github.com/bashhack/commitpulse/internal/errors"
	"github.com/bashhack/commitpulse/internal/mutation"
	"github.com/bashhack/commitpulse/internal/policy"
	"github.com/bashhack/commitpulse/internal/publish"
	"github.com/bashhack/commitpulse/internal/schedule"
)

// State is a step of the run state machine
type State int

const (
	StateInit State = iota
	StateConfigured
	StateLooping
	StateScheduled
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateConfigured:
		return "CONFIGURED"
	case StateLooping:
		return "LOOPING"
	case StateScheduled:
		return "SCHEDULED"
	case StateDone:
		return "DONE"
	case StateError:
		return "ERROR"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IdentityEnsurer makes sure commits have an author
type IdentityEnsurer interface {
	Ensure(ctx context.Context) error
}

// CounterInitializer creates the counter file when it is missing
type CounterInitializer interface {
	EnsureFile() error
}

// ActionChooser picks the mutation for one cycle
type ActionChooser interface {
	Choose() mutation.Action
}

// Publisher commits and pushes one cycle's changes
type Publisher interface {
	Commit(ctx context.Context, message string) (publish.Result, error)
	Push(ctx context.Context) bool
}

// NextRunScheduler registers the following run
type NextRunScheduler interface {
	ScheduleNext(ctx context.Context) schedule.Outcome
}

// Sleeper blocks for the pacing delay between cycles
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleeperFunc adapts a function to Sleeper
type SleeperFunc func(d time.Duration)

// Sleep implements Sleeper
func (f SleeperFunc) Sleep(d time.Duration) { f(d) }

// WallClock sleeps for real. The sleep cannot be interrupted.
var WallClock Sleeper = SleeperFunc(time.Sleep)

// Deps are the collaborators of a run
type Deps struct {
	Identity  IdentityEnsurer
	Counter   CounterInitializer
	Actions   ActionChooser
	Publisher Publisher

	// Scheduler may be nil, in which case scheduling is skipped
	Scheduler NextRunScheduler

	// CommitCount draws how many cycles the run performs
	CommitCount policy.IntPolicy

	// DelaySeconds draws each pause between cycles
	DelaySeconds policy.IntPolicy

	// Sleeper defaults to WallClock
	Sleeper Sleeper

	Logger common.Logger
}

// Report summarises a run
type Report struct {
	State        State
	Planned      int
	Cycles       int
	Commits      int
	Pushes       int
	PushFailures int
	Delays       []time.Duration
	Actions      []string
	Messages     []string
	Schedule     *schedule.Outcome
}

// Orchestrator performs one run
type Orchestrator struct {
	deps      Deps
	state     State
	startTime time.Time
	report    Report
}

// New creates an Orchestrator. Every collaborator except Scheduler and
// Sleeper is required.
func New(deps Deps) (*Orchestrator, error) {
	switch {
	case deps.Identity == nil:
		return nil, errors.New("activity: identity configurator is required")
	case deps.Counter == nil:
		return nil, errors.New("activity: counter store is required")
	case deps.Actions == nil:
		return nil, errors.New("activity: action chooser is required")
	case deps.Publisher == nil:
		return nil, errors.New("activity: publisher is required")
	case deps.CommitCount == nil || deps.DelaySeconds == nil:
		return nil, errors.New("activity: commit count and delay policies are required")
	case deps.Logger == nil:
		return nil, errors.New("activity: logger is required")
	}
	if deps.Sleeper == nil {
		deps.Sleeper = WallClock
	}
	return &Orchestrator{deps: deps, state: StateInit}, nil
}

// State returns the current state of the run
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes the whole run. The returned report is filled in as far as the
// run got, including on error.
func (o *Orchestrator) Run(ctx context.Context) (Report, error) {
	o.startTime = time.Now()
	report := Report{State: o.state}
	defer func() { o.report = report }()

	if err := o.configure(ctx); err != nil {
		return o.fail(&report, err)
	}

	k := o.deps.CommitCount.Draw()
	if k < 1 {
		return o.fail(&report, errors.Errorf("commit count must be at least 1, drew %d", k))
	}
	report.Planned = k
	o.deps.Logger.InfoToUser("Making %d commit(s) this run", k)

	for i := 1; i <= k; i++ {
		o.transition(&report, StateLooping)
		o.deps.Logger.Info("Cycle %d of %d", i, k)

		if err := o.cycle(ctx, &report); err != nil {
			return o.fail(&report, errors.Wrapf(err, "cycle %d of %d", i, k))
		}
		report.Cycles++

		if i < k {
			delay := time.Duration(o.deps.DelaySeconds.Draw()) * time.Second
			report.Delays = append(report.Delays, delay)
			o.deps.Logger.StatusMessage("⏱️  Waiting %s before the next commit", delay)
			o.deps.Sleeper.Sleep(delay)
		}
	}

	if o.deps.Scheduler != nil {
		outcome := o.deps.Scheduler.ScheduleNext(ctx)
		report.Schedule = &outcome
	} else {
		o.deps.Logger.StatusMessage("Scheduling of the next run is disabled")
	}
	o.transition(&report, StateScheduled)

	o.transition(&report, StateDone)
	return report, nil
}

func (o *Orchestrator) configure(ctx context.Context) error {
	if err := o.deps.Identity.Ensure(ctx); err != nil {
		return errors.Wrap(err, "failed to configure git identity")
	}
	if err := o.deps.Counter.EnsureFile(); err != nil {
		return err
	}
	o.transition(nil, StateConfigured)
	return nil
}

func (o *Orchestrator) cycle(ctx context.Context, report *Report) error {
	action := o.deps.Actions.Choose()
	report.Actions = append(report.Actions, action.Label)
	o.deps.Logger.Info("Applying action: %s", action.Label)

	if err := action.Apply(); err != nil {
		return errors.Wrapf(err, "action %q failed", action.Label)
	}

	result, err := o.deps.Publisher.Commit(ctx, "")
	report.Messages = append(report.Messages, result.Message)
	if err != nil {
		return err
	}
	if result.Committed {
		report.Commits++
	}

	if o.deps.Publisher.Push(ctx) {
		report.Pushes++
	} else {
		report.PushFailures++
	}
	return nil
}

func (o *Orchestrator) transition(report *Report, to State) {
	if o.state != to {
		o.deps.Logger.Info("State %s -> %s", o.state, to)
	}
	o.state = to
	if report != nil {
		report.State = to
	}
}

// PrintSummary shows what the last run did
func (o *Orchestrator) PrintSummary() {
	r := o.report
	duration := time.Since(o.startTime).Round(time.Second)

	o.deps.Logger.StatusMessage("")
	o.deps.Logger.StatusMessage("---------------------------------------------")
	o.deps.Logger.StatusMessage("📊 commitpulse Run Summary")
	o.deps.Logger.StatusMessage("---------------------------------------------")
	o.deps.Logger.StatusMessage("✅ Commits made: %d (%d of %d cycles completed)", r.Commits, r.Cycles, r.Planned)
	o.deps.Logger.StatusMessage("📤 Pushes: %d succeeded, %d failed", r.Pushes, r.PushFailures)
	o.deps.Logger.StatusMessage("⏱️  Run duration: %s", duration)
	o.deps.Logger.StatusMessage("📅 Next run: %s", describeSchedule(r.Schedule))
	o.deps.Logger.StatusMessage("---------------------------------------------")
	o.deps.Logger.StatusMessage("🏁 Finished in state %s", r.State)
}

func describeSchedule(outcome *schedule.Outcome) string {
	switch {
	case outcome == nil:
		return "not scheduled (disabled)"
	case !outcome.Supported:
		return "manual setup required"
	case outcome.Registered:
		return fmt.Sprintf("daily at %s (%s)", outcome.Task.Time(), outcome.Task.Name)
	default:
		return "registration failed"
	}
}

func (o *Orchestrator) fail(report *Report, err error) (Report, error) {
	o.deps.Logger.Info("Run aborted in state %s: %v", o.state, err)
	o.transition(report, StateError)
	return *report, err
}
