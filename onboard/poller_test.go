package onboard

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/marketplace"
)

// scriptedValidator replays states per validation id, the last state repeats.
type scriptedValidator struct {
	states map[string][]marketplace.ValidationState
	polls  []string
	err    error
}

func (v *scriptedValidator) IsManifestValid(_ context.Context, validationID string) (*marketplace.ValidationResult, error) {
	v.polls = append(v.polls, validationID)
	if v.err != nil {
		return nil, v.err
	}
	states := v.states[validationID]
	state := states[0]
	if len(states) > 1 {
		v.states[validationID] = states[1:]
	}
	return &marketplace.ValidationResult{
		ID:         validationID,
		Processed:  state != marketplace.ValidationPending,
		Valid:      state == marketplace.ValidationValid,
		Validation: []byte(`{"errors":1}`),
	}, nil
}

// fakeClock advances on every sleep.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) install(p *Poller) {
	p.now = func() time.Time { return c.now }
	p.sleep = func(_ context.Context, d time.Duration) error {
		c.sleeps = append(c.sleeps, d)
		c.now = c.now.Add(d)
		return nil
	}
}

func applications(ids ...string) []*Application {
	var ret []*Application
	for _, id := range ids {
		ret = append(ret, &Application{ValidationID: id, Descriptor: &AppDescriptor{ManifestURL: "https://example.com/" + id}})
	}
	return ret
}

func TestPoller_Wait(t *testing.T) {
	pending := marketplace.ValidationPending
	valid := marketplace.ValidationValid
	invalid := marketplace.ValidationInvalid

	var testCases = []struct {
		description  string
		config       PollConfig
		states       map[string][]marketplace.ValidationState
		expectPolls  []string
		expectSleeps []time.Duration
		expectErr    error
		expectFailed string
	}{
		{
			description:  "valid on first sweep",
			config:       PollConfig{Interval: time.Second},
			states:       map[string][]marketplace.ValidationState{"a": {valid}, "b": {valid}},
			expectPolls:  []string{"a", "b"},
			expectSleeps: nil,
		},
		{
			description: "pending N-1 sweeps",
			config:      PollConfig{Interval: time.Second, MaxInterval: 4 * time.Second, Multiplier: 2},
			states: map[string][]marketplace.ValidationState{
				"a": {pending, pending, pending, valid},
				"b": {pending, valid},
			},
			expectPolls:  []string{"a", "b", "a", "b", "a", "a"},
			expectSleeps: []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		},
		{
			description:  "invalid aborts",
			config:       PollConfig{Interval: time.Second},
			states:       map[string][]marketplace.ValidationState{"a": {pending, invalid}, "b": {valid}},
			expectPolls:  []string{"a", "b", "a"},
			expectSleeps: []time.Duration{time.Second},
			expectFailed: "a",
		},
		{
			description:  "max sweeps",
			config:       PollConfig{Interval: time.Second, MaxInterval: 4 * time.Second, Multiplier: 2, MaxSweeps: 5},
			states:       map[string][]marketplace.ValidationState{"a": {pending}},
			expectPolls:  []string{"a", "a", "a", "a", "a"},
			expectSleeps: []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second},
			expectErr:    ErrPollTimeout,
		},
		{
			description:  "timeout",
			config:       PollConfig{Interval: time.Second, MaxInterval: 8 * time.Second, Multiplier: 2, Timeout: 5 * time.Second},
			states:       map[string][]marketplace.ValidationState{"a": {pending}},
			expectPolls:  []string{"a", "a", "a"},
			expectSleeps: []time.Duration{time.Second, 2 * time.Second},
			expectErr:    ErrPollTimeout,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var ids []string
			for _, id := range []string{"a", "b"} {
				if _, ok := testCase.states[id]; ok {
					ids = append(ids, id)
				}
			}
			validator := &scriptedValidator{states: testCase.states}
			poller := NewPoller(testCase.config, testLogger())
			clock := &fakeClock{now: time.Unix(0, 0)}
			clock.install(poller)

			err := poller.Wait(context.Background(), validator, applications(ids...))
			assert.Equal(t, testCase.expectPolls, validator.polls)
			assert.Equal(t, testCase.expectSleeps, clock.sleeps)
			switch {
			case testCase.expectFailed != "":
				var failed *marketplace.ValidationFailedError
				require.True(t, errors.As(err, &failed), "%v", err)
				assert.Equal(t, testCase.expectFailed, failed.ValidationID)
				assert.Equal(t, "https://example.com/"+testCase.expectFailed, failed.ManifestURL)
				assert.JSONEq(t, `{"errors":1}`, string(failed.Validation))
			case testCase.expectErr != nil:
				assert.True(t, errors.Is(err, testCase.expectErr), "%v", err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestPoller_Wait_UnexpectedStatus(t *testing.T) {
	statusErr := &marketplace.UnexpectedStatusError{Operation: "get_manifest_validation_result", ID: "a", StatusCode: http.StatusInternalServerError}
	validator := &scriptedValidator{err: statusErr}
	poller := NewPoller(PollConfig{Interval: time.Millisecond}, testLogger())
	err := poller.Wait(context.Background(), validator, applications("a"))
	var actual *marketplace.UnexpectedStatusError
	require.True(t, errors.As(err, &actual))
	assert.Equal(t, http.StatusInternalServerError, actual.StatusCode)
}

func TestPoller_Wait_RateLimited(t *testing.T) {
	validator := &scriptedValidator{states: map[string][]marketplace.ValidationState{
		"a": {marketplace.ValidationValid},
		"b": {marketplace.ValidationValid},
		"c": {marketplace.ValidationValid},
	}}
	poller := NewPoller(PollConfig{Interval: time.Millisecond, RequestsPerSecond: 20}, testLogger())
	started := time.Now()
	require.NoError(t, poller.Wait(context.Background(), validator, applications("a", "b", "c")))
	assert.GreaterOrEqual(t, time.Since(started), 90*time.Millisecond, "3 requests at 20/s take at least 2 intervals")
}
