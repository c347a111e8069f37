package flappy

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy/sim"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// ErrReplayMismatch means a replay produced different run results than the
// ones recorded with the session.
var ErrReplayMismatch = errors.New("flappy: replay does not match recording")

// recordedActions fixes the order action names are written in.
var recordedActions = []core.Action{
	core.ActionJump,
	core.ActionRestart,
	core.ActionPause,
	core.ActionQuit,
}

// Recorder turns the platform's step stream into a storage.Session.
// Call Record once per Game.Step, in order, then Finish.
type Recorder struct {
	sess      storage.Session
	step      uint64
	lastScore int
	run       *storage.RunResult
}

// NewRecorder starts a journal for one session. The config is snapshotted
// as YAML so a replay uses exactly the values that were played.
func NewRecorder(id, user string, rt core.RuntimeConfig, cfg config.FlappyConfig, started time.Time) (*Recorder, error) {
	snapshot, err := config.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return &Recorder{sess: storage.Session{
		ID:        id,
		GameID:    ID,
		User:      user,
		Seed:      rt.Seed,
		TickRate:  rt.TickRate,
		ScreenW:   rt.ScreenW,
		ScreenH:   rt.ScreenH,
		Config:    snapshot,
		StartedAt: started,
	}}, nil
}

// ID returns the session ID.
func (r *Recorder) ID() string {
	return r.sess.ID
}

// Steps returns how many steps were recorded so far.
func (r *Recorder) Steps() uint64 {
	return r.step
}

// Record logs one step: its input if any, and run boundaries seen in the
// resulting state.
func (r *Recorder) Record(in core.InputFrame, res core.StepResult) {
	if !in.Empty() {
		ev := storage.InputEvent{Step: r.step}
		for _, a := range recordedActions {
			if in.Has(a) {
				ev.Actions = append(ev.Actions, a.String())
			}
		}
		r.sess.Inputs = append(r.sess.Inputs, ev)
	}

	status := res.State.Status
	switch {
	case status == sim.StatusRunning.String() && r.run == nil:
		r.run = &storage.RunResult{Index: len(r.sess.Runs), StartStep: r.step}
	case status == sim.StatusRunning.String() && !res.State.Paused && res.State.Score <= r.lastScore:
		// Every unpaused running tick scores, so a score that did not grow
		// means a reset and a new start happened within this one step
		r.closeRun(r.step, r.lastScore, false)
		r.run = &storage.RunResult{Index: len(r.sess.Runs), StartStep: r.step}
	case status == sim.StatusOver.String() && r.run != nil:
		r.closeRun(r.step, res.State.Score, true)
	case status == sim.StatusIdle.String() && r.run != nil:
		// Reset mid-run; the score was zeroed, keep the last one seen
		r.closeRun(r.step, r.lastScore, false)
	}

	r.lastScore = res.State.Score
	r.step++
}

func (r *Recorder) closeRun(step uint64, meters int, finished bool) {
	r.run.EndStep = step
	r.run.Meters = meters
	r.run.Finished = finished
	r.sess.Runs = append(r.sess.Runs, *r.run)
	r.run = nil
}

// Finish closes any run still in progress and returns the session.
func (r *Recorder) Finish(ended time.Time) storage.Session {
	if r.run != nil {
		r.closeRun(r.step, r.lastScore, false)
	}
	r.sess.Steps = r.step
	r.sess.EndedAt = ended
	return r.sess
}

// Replay re-runs a recorded session headlessly and returns the runs it
// produced.
func Replay(sess *storage.Session) ([]storage.RunResult, error) {
	cfg, err := config.Parse(sess.Config)
	if err != nil {
		return nil, fmt.Errorf("flappy: replay %s: %w", sess.ID, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: replay %s: %w", sess.ID, err)
	}

	rt := core.RuntimeConfig{
		ScreenW:  sess.ScreenW,
		ScreenH:  sess.ScreenH,
		TickRate: sess.TickRate,
		Seed:     sess.Seed,
	}
	g := NewWithConfig(cfg)
	g.Reset(rt)

	rec, err := NewRecorder(sess.ID, sess.User, rt, cfg, sess.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("flappy: replay %s: %w", sess.ID, err)
	}

	next := 0
	for step := uint64(0); step < sess.Steps; step++ {
		in := core.NewInputFrame()
		for next < len(sess.Inputs) && sess.Inputs[next].Step == step {
			for _, name := range sess.Inputs[next].Actions {
				in.Set(core.ParseAction(name))
			}
			next++
		}
		rec.Record(in, g.Step(in))
	}

	return rec.Finish(sess.EndedAt).Runs, nil
}

// Verify replays a session and checks the result against the recording.
func Verify(sess *storage.Session) ([]storage.RunResult, error) {
	runs, err := Replay(sess)
	if err != nil {
		return nil, err
	}
	if len(runs) != len(sess.Runs) {
		return runs, fmt.Errorf("%w: %d runs replayed, %d recorded", ErrReplayMismatch, len(runs), len(sess.Runs))
	}
	for i := range runs {
		if runs[i] != sess.Runs[i] {
			return runs, fmt.Errorf("%w: run %d replayed as %+v, recorded %+v", ErrReplayMismatch, i, runs[i], sess.Runs[i])
		}
	}
	return runs, nil
}
