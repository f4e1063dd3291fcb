package orchestrator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/sweeper/model/sweep"
	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/progress"
	"github.com/viant/sweeper/service/dao"
	"github.com/viant/sweeper/service/dao/outcome/memory"
	"github.com/viant/sweeper/service/gate"
	"github.com/viant/sweeper/service/sink"
)

// stubSupervisor records concurrency and completes after delay.
type stubSupervisor struct {
	delay     time.Duration
	panicOn   string
	nilOn     string
	pendingOn string
	status    map[string]trial.Status
	started   chan string
	running   atomic.Int32
	peak      atomic.Int32
	calls     atomic.Int32
}

func (s *stubSupervisor) Run(ctx context.Context, spec trial.Spec, outputPath string) *trial.Outcome {
	s.calls.Add(1)
	n := s.running.Add(1)
	defer s.running.Add(-1)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	if s.started != nil {
		s.started <- spec.Name()
	}
	switch spec.Name() {
	case s.panicOn:
		panic("boom")
	case s.nilOn:
		return nil
	}
	ret := trial.NewOutcome(spec, outputPath)
	ret.Start(time.Now(), 1)
	if spec.Name() == s.pendingOn {
		return ret
	}
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		ret.Fail(time.Now(), trial.ReasonRuntimeFailure, ctx.Err())
		return ret
	}
	switch s.status[spec.Name()] {
	case trial.StatusTimedOut:
		ret.TimeOut(time.Now(), s.delay)
	case trial.StatusFailed:
		ret.Fail(time.Now(), trial.ReasonRuntimeFailure, errors.New("exit status 1"))
	default:
		ret.Complete(time.Now())
	}
	return ret
}

func facebookSpecs(t *testing.T) []trial.Spec {
	definition := &sweep.Definition{
		Name:       "facebook",
		Datasets:   []string{"facebook"},
		Algorithms: []trial.Algorithm{trial.AlgorithmRandom, trial.AlgorithmSpar},
		Servers:    []int{128},
		Replicas:   []int{2},
		Nodes:      []int{256, 512},
	}
	specs, err := definition.Expand()
	require.NoError(t, err)
	return specs
}

func manySpecs(count int) []trial.Spec {
	var ret []trial.Spec
	for i := 0; i < count; i++ {
		ret = append(ret, trial.Spec{Dataset: "facebook", Algorithm: trial.AlgorithmOnline, Servers: 128, Replicas: 2, Nodes: i + 1})
	}
	return ret
}

func TestNew(t *testing.T) {
	namer := sink.New(t.TempDir(), nil)
	var testCases = []struct {
		description string
		options     []Option
		expectErr   error
	}{
		{description: "missing supervisor", options: []Option{WithNamer(namer)}, expectErr: ErrNoSupervisor},
		{description: "missing namer", options: []Option{WithSupervisor(&stubSupervisor{})}, expectErr: ErrNoNamer},
		{description: "invalid capacity", options: []Option{WithSupervisor(&stubSupervisor{}), WithNamer(namer), WithCapacity(0)}, expectErr: gate.ErrInvalidCapacity},
		{description: "default capacity", options: []Option{WithSupervisor(&stubSupervisor{}), WithNamer(namer)}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			srv, err := New(testCase.options...)
			if testCase.expectErr != nil {
				assert.ErrorIs(t, err, testCase.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultCapacity, srv.Capacity())
		})
	}
}

func TestService_Run(t *testing.T) {
	var testCases = []struct {
		description     string
		capacity        int
		specs           func(t *testing.T) []trial.Spec
		supervisor      *stubSupervisor
		expectCompleted int
		expectTimedOut  int
		expectFailed    int
	}{
		{
			description:     "single slot serialises trials",
			capacity:        1,
			specs:           facebookSpecs,
			supervisor:      &stubSupervisor{delay: 10 * time.Millisecond},
			expectCompleted: 4,
		},
		{
			description:     "instant trials with five slots",
			capacity:        5,
			specs:           func(t *testing.T) []trial.Spec { return manySpecs(20) },
			supervisor:      &stubSupervisor{delay: time.Millisecond},
			expectCompleted: 20,
		},
		{
			description: "mixed statuses do not halt the sweep",
			capacity:    2,
			specs:       facebookSpecs,
			supervisor: &stubSupervisor{delay: time.Millisecond, status: map[string]trial.Status{
				"facebook-random-128-2-512": trial.StatusTimedOut,
				"facebook-spar-128-2-256":   trial.StatusFailed,
			}},
			expectCompleted: 2,
			expectTimedOut:  1,
			expectFailed:    1,
		},
		{
			description:     "supervisor panic releases the slot",
			capacity:        1,
			specs:           facebookSpecs,
			supervisor:      &stubSupervisor{delay: time.Millisecond, panicOn: "facebook-random-128-2-512"},
			expectCompleted: 3,
			expectFailed:    1,
		},
		{
			description:     "outcome without status becomes failure",
			capacity:        2,
			specs:           facebookSpecs,
			supervisor:      &stubSupervisor{delay: time.Millisecond, pendingOn: "facebook-random-128-2-256"},
			expectCompleted: 3,
			expectFailed:    1,
		},
		{
			description:     "missing outcome becomes failure",
			capacity:        3,
			specs:           facebookSpecs,
			supervisor:      &stubSupervisor{delay: time.Millisecond, nilOn: "facebook-spar-128-2-512"},
			expectCompleted: 3,
			expectFailed:    1,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			specs := testCase.specs(t)
			store := memory.New()
			var mux sync.Mutex
			var heard []string
			namer := sink.New(t.TempDir(), nil)
			srv, err := New(
				WithCapacity(testCase.capacity),
				WithSupervisor(testCase.supervisor),
				WithNamer(namer),
				WithOutcomeStore(store),
				WithListener(func(o *trial.Outcome) {
					mux.Lock()
					heard = append(heard, o.ID)
					mux.Unlock()
				}),
			)
			require.NoError(t, err)

			report, err := srv.Run(context.Background(), "test", specs)
			require.NoError(t, err)

			require.Len(t, report.Outcomes, len(specs))
			assert.Equal(t, len(specs), report.Progress.Finished())
			assert.Equal(t, len(specs), report.Progress.Total)
			assert.Zero(t, report.Progress.Running)
			assert.Zero(t, report.Progress.Queued)
			assert.Equal(t, testCase.capacity, report.Available)
			assert.LessOrEqual(t, int(testCase.supervisor.peak.Load()), testCase.capacity)
			assert.Equal(t, testCase.expectCompleted, report.Count(trial.StatusCompleted))
			assert.Equal(t, testCase.expectTimedOut, report.Count(trial.StatusTimedOut))
			assert.Equal(t, testCase.expectFailed, report.Count(trial.StatusFailed))
			assert.Len(t, heard, len(specs))

			sequences := map[int]bool{}
			for i, o := range report.Outcomes {
				assert.Equal(t, specs[i], o.Spec)
				assert.Equal(t, namer.Path(specs[i]), o.OutputPath)
				assert.Equal(t, report.ID, o.RunID)
				assert.Equal(t, trial.StateSlotReleased, o.State)
				assert.True(t, o.Terminal())
				sequences[o.Sequence] = true
			}
			for i := 1; i <= len(specs); i++ {
				assert.True(t, sequences[i], "missing run counter value %d", i)
			}

			stored, err := store.List(context.Background(), dao.NewParameter(dao.RunParameter, report.ID))
			require.NoError(t, err)
			assert.Len(t, stored, len(specs))
		})
	}
}

func TestService_Run_SingleSlotPeak(t *testing.T) {
	supervisor := &stubSupervisor{delay: 20 * time.Millisecond}
	srv, err := New(WithCapacity(1), WithSupervisor(supervisor), WithNamer(sink.New(t.TempDir(), nil)))
	require.NoError(t, err)

	report, err := srv.Run(context.Background(), "facebook", facebookSpecs(t))
	require.NoError(t, err)
	assert.EqualValues(t, 1, supervisor.peak.Load())
	assert.EqualValues(t, 4, supervisor.calls.Load())
	assert.Equal(t, 4, report.Progress.Finished())
}

func TestService_Run_Cancelled(t *testing.T) {
	supervisor := &stubSupervisor{delay: time.Minute, started: make(chan string, 4)}
	srv, err := New(WithCapacity(1), WithSupervisor(supervisor), WithNamer(sink.New(t.TempDir(), nil)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-supervisor.started
		cancel()
	}()
	report, err := srv.Run(ctx, "facebook", facebookSpecs(t))
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, trial.StatusFailed, report.Outcomes[0].Status)
	assert.Equal(t, 1, report.Progress.Finished())
	assert.Equal(t, 3, report.Progress.Queued)
	assert.Equal(t, 1, report.Available)
}

func TestService_Run_InvalidSpecs(t *testing.T) {
	srv, err := New(WithSupervisor(&stubSupervisor{}), WithNamer(sink.New(t.TempDir(), nil)))
	require.NoError(t, err)

	specs := facebookSpecs(t)
	_, err = srv.Run(context.Background(), "dup", append(specs, specs[0]))
	assert.ErrorIs(t, err, ErrDuplicateTrial)

	_, err = srv.Run(context.Background(), "invalid", []trial.Spec{{Dataset: "face-book", Algorithm: trial.AlgorithmRandom, Servers: 1}})
	assert.ErrorIs(t, err, trial.ErrInvalidSpec)
}

func TestService_Run_Empty(t *testing.T) {
	srv, err := New(WithCapacity(3), WithSupervisor(&stubSupervisor{}), WithNamer(sink.New(t.TempDir(), nil)))
	require.NoError(t, err)
	report, err := srv.Run(context.Background(), "empty", nil)
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Equal(t, 3, report.Available)
}

// panickingNamer panics for one trial name.
type panickingNamer struct {
	*sink.Sink
	panicOn string
}

func (n *panickingNamer) Path(spec trial.Spec) string {
	if spec.Name() == n.panicOn {
		panic("no path")
	}
	return n.Sink.Path(spec)
}

func TestService_Run_NamerPanic(t *testing.T) {
	supervisor := &stubSupervisor{delay: time.Millisecond}
	namer := &panickingNamer{Sink: sink.New(t.TempDir(), nil), panicOn: "facebook-spar-128-2-256"}
	srv, err := New(WithCapacity(1), WithSupervisor(supervisor), WithNamer(namer))
	require.NoError(t, err)

	report, err := srv.Run(context.Background(), "facebook", facebookSpecs(t))
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 4)
	assert.Equal(t, 1, report.Available)
	assert.EqualValues(t, 3, supervisor.calls.Load())
	assert.Equal(t, 3, report.Count(trial.StatusCompleted))
	assert.Equal(t, 1, report.Count(trial.StatusFailed))
	for _, o := range report.Outcomes {
		assert.Equal(t, trial.StateSlotReleased, o.State)
		if o.ID == namer.panicOn {
			assert.Equal(t, trial.ReasonRuntimeFailure, o.Reason)
			assert.Contains(t, o.Error, "no path")
		}
	}
}

func TestService_Run_ProgressListener(t *testing.T) {
	var mux sync.Mutex
	var observed []progress.Counters
	srv, err := New(
		WithCapacity(2),
		WithSupervisor(&stubSupervisor{delay: time.Millisecond}),
		WithNamer(sink.New(t.TempDir(), nil)),
		WithProgressListener(func(c progress.Counters) {
			mux.Lock()
			observed = append(observed, c)
			mux.Unlock()
		}),
	)
	require.NoError(t, err)

	report, err := srv.Run(context.Background(), "facebook", facebookSpecs(t))
	require.NoError(t, err)

	mux.Lock()
	defer mux.Unlock()
	// One update for admission of the whole sweep, then start and end per trial.
	require.Len(t, observed, 1+2*4)
	assert.Equal(t, 4, observed[0].Queued)
	assert.Equal(t, report.ID, observed[0].RunID)
	finished := 0
	for _, c := range observed {
		if c.Finished() > finished {
			finished = c.Finished()
		}
	}
	assert.Equal(t, 4, finished)
}
