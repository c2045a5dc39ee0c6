package agent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/optimizer"
	"github.com/lab1702/golf-ai/planner"
)

var errLinkClosed = errors.New("link closed")

type poll struct {
	state game.GameState
	err   error
}

type fakeLink struct {
	polls    []poll
	sendErrs []error
	sent     []game.ShotParameters
}

func (l *fakeLink) ReadState(ctx context.Context) (game.GameState, error) {
	if len(l.polls) == 0 {
		return game.GameState{}, errLinkClosed
	}
	p := l.polls[0]
	l.polls = l.polls[1:]
	return p.state, p.err
}

func (l *fakeLink) SendCommand(shot game.ShotParameters) error {
	if len(l.sendErrs) > 0 {
		err := l.sendErrs[0]
		l.sendErrs = l.sendErrs[1:]
		if err != nil {
			return err
		}
	}
	l.sent = append(l.sent, shot)
	return nil
}

type fakePublisher struct {
	reports []game.ShotReport
	holed   []int32
}

func (p *fakePublisher) PublishShot(r game.ShotReport) { p.reports = append(p.reports, r) }
func (p *fakePublisher) PublishHoled(strokes int32)    { p.holed = append(p.holed, strokes) }

var (
	tee  = game.Point2D{X: 320, Y: 600}
	hole = game.Point2D{X: 320, Y: 60}
)

func stoppedAt(ball game.Point2D, strokes int32) game.GameState {
	return game.GameState{Ball: ball, Hole: hole, Strokes: strokes, Stopped: true}
}

func newTestAgent(link Link, pub Publisher, mode game.OptimizerMode, tp *sdktrace.TracerProvider) *Agent {
	cfg := Config{
		Mode:      mode,
		Publisher: pub,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if tp != nil {
		cfg.TracerProvider = tp
	}
	opts := optimizer.Options{Population: 10, Budget: 40}
	return New(link,
		planner.New(nil, game.DefaultBounds()),
		optimizer.New(nil, optimizer.NewRand(1), opts),
		nil, cfg)
}

func TestStep_OneShotPerStop(t *testing.T) {
	link := &fakeLink{}
	pub := &fakePublisher{}
	a := newTestAgent(link, pub, game.ModeQuick, nil)
	ctx := context.Background()

	steps := []struct {
		name      string
		state     game.GameState
		wantSent  int
		wantHoled bool
	}{
		{"first stop shoots", stoppedAt(tee, 0), 1, false},
		{"same stop waits for the ball to move", stoppedAt(tee, 0), 1, false},
		{"ball in flight", game.GameState{Ball: game.Point2D{X: 320, Y: 580}, Hole: hole}, 1, false},
		{"short travel means sand", stoppedAt(game.Point2D{X: 320, Y: 570}, 1), 2, false},
		{"ball moved re-arms without shooting", stoppedAt(game.Point2D{X: 320, Y: 300}, 2), 2, false},
		{"re-armed stop shoots", stoppedAt(game.Point2D{X: 320, Y: 300}, 2), 3, false},
		{"won", game.GameState{Ball: hole, Hole: hole, Strokes: 3, Stopped: true, Won: true}, 3, true},
	}

	for _, s := range steps {
		holed, err := a.Step(ctx, s.state)
		require.NoError(t, err, s.name)
		assert.Equal(t, s.wantHoled, holed, s.name)
		assert.Len(t, link.sent, s.wantSent, s.name)
	}

	require.Len(t, pub.reports, 3)
	assert.Equal(t, []int32{3}, pub.holed)
	assert.Equal(t, 3, a.Shots())

	first := pub.reports[0]
	assert.Equal(t, "fairway", first.Terrain, "first shot never counts as sand")
	assert.Equal(t, game.ShotDrive, first.Category)
	assert.Equal(t, game.ModeQuick, first.Mode)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.Trajectory)

	sand := pub.reports[1]
	assert.Equal(t, "sand", sand.Terrain)
	assert.Equal(t, game.ShotLob, sand.Category)
	assert.Equal(t, hole, sand.Target)
	assert.Zero(t, sand.Detour)
	assert.Equal(t, optimizer.SandAngle, link.sent[1].Angle)
	assert.Equal(t, optimizer.SandPower, link.sent[1].Power)

	assert.Equal(t, "fairway", pub.reports[2].Terrain)
	assert.NotEqual(t, first.ID, pub.reports[2].ID)
}

func TestStep_HazardDropShootsAgain(t *testing.T) {
	tests := []struct {
		name  string
		steps []game.GameState
	}{
		{"flight seen", []game.GameState{
			stoppedAt(tee, 0),
			{Ball: game.Point2D{X: 320, Y: 400}, Hole: hole},
			stoppedAt(tee, 1),
		}},
		{"flight missed", []game.GameState{
			stoppedAt(tee, 0),
			stoppedAt(tee, 1),
			stoppedAt(tee, 1),
		}},
		{"dropped just off the spot", []game.GameState{
			stoppedAt(tee, 0),
			{Ball: game.Point2D{X: 320, Y: 400}, Hole: hole},
			stoppedAt(game.Point2D{X: 320.5, Y: 600}, 1),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := &fakeLink{}
			pub := &fakePublisher{}
			a := newTestAgent(link, pub, game.ModeQuick, nil)
			ctx := context.Background()

			for _, s := range tt.steps {
				_, err := a.Step(ctx, s)
				require.NoError(t, err)
			}

			require.Len(t, link.sent, 2)
			require.Len(t, pub.reports, 2)
			assert.Equal(t, "fairway", pub.reports[1].Terrain)
			assert.Equal(t, game.ShotDrive, pub.reports[1].Category)

			// Same stroke count again waits
			_, err := a.Step(ctx, stoppedAt(tt.steps[len(tt.steps)-1].Ball, 1))
			require.NoError(t, err)
			assert.Len(t, link.sent, 2)
		})
	}
}

func TestStep_QuickModeSendsNoSpin(t *testing.T) {
	link := &fakeLink{}
	a := newTestAgent(link, nil, game.ModeQuick, nil)

	state := stoppedAt(tee, 0)
	state.Wind = game.Wind{Dir: game.Vector2D{X: 1}, Strength: 20}
	_, err := a.Step(context.Background(), state)
	require.NoError(t, err)

	require.Len(t, link.sent, 1)
	assert.Equal(t, game.Vector2D{}, link.sent[0].Spin)
}

func TestStep_FullMode(t *testing.T) {
	link := &fakeLink{}
	pub := &fakePublisher{}
	a := newTestAgent(link, pub, game.ModeFull, nil)

	_, err := a.Step(context.Background(), stoppedAt(game.Point2D{X: 320, Y: 160}, 0))
	require.NoError(t, err)

	require.Len(t, pub.reports, 1)
	assert.Equal(t, game.ModeFull, pub.reports[0].Mode)
	assert.Equal(t, game.ShotChip, pub.reports[0].Category)
}

func TestStep_RetryableSendFailure(t *testing.T) {
	link := &fakeLink{sendErrs: []error{game.NewRetryableError(game.CHANNEL_UNAVAILABLE, "command pipe full")}}
	a := newTestAgent(link, nil, game.ModeQuick, nil)
	ctx := context.Background()

	_, err := a.Step(ctx, stoppedAt(tee, 0))
	require.NoError(t, err)
	assert.Empty(t, link.sent)

	_, err = a.Step(ctx, stoppedAt(tee, 0))
	require.NoError(t, err)
	assert.Len(t, link.sent, 1, "the same stop is retried")
}

func TestStep_FatalSendFailure(t *testing.T) {
	link := &fakeLink{sendErrs: []error{game.NewError(game.CHANNEL_UNAVAILABLE, "broken pipe")}}
	a := newTestAgent(link, nil, game.ModeQuick, nil)

	_, err := a.Step(context.Background(), stoppedAt(tee, 0))
	assert.ErrorIs(t, err, game.ErrChannelUnavailable)
}

func TestLieTerrain(t *testing.T) {
	a := newTestAgent(&fakeLink{}, nil, game.ModeQuick, nil)

	tests := []struct {
		moved float64
		want  game.Terrain
	}{
		{0, game.TerrainFairway},
		{0.5, game.TerrainSand},
		{49.9, game.TerrainSand},
		{50, game.TerrainFairway},
		{200, game.TerrainFairway},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.lieTerrain(tee, tt.moved), "moved %.1f", tt.moved)
	}
}

func TestRun(t *testing.T) {
	t.Run("holes out", func(t *testing.T) {
		link := &fakeLink{polls: []poll{
			{err: game.ErrNoData},
			{err: game.ErrNoData},
			{state: stoppedAt(tee, 0)},
			{state: game.GameState{Ball: hole, Hole: hole, Strokes: 1, Stopped: true, Won: true}},
		}}
		pub := &fakePublisher{}
		a := newTestAgent(link, pub, game.ModeQuick, nil)

		require.NoError(t, a.Run(context.Background()))
		assert.Len(t, link.sent, 1)
		assert.Equal(t, []int32{1}, pub.holed)
	})

	t.Run("link failure", func(t *testing.T) {
		a := newTestAgent(&fakeLink{}, nil, game.ModeQuick, nil)
		err := a.Run(context.Background())
		assert.ErrorIs(t, err, errLinkClosed)
		assert.False(t, IsShutdown(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a := newTestAgent(&fakeLink{polls: []poll{{state: stoppedAt(tee, 0)}}}, nil, game.ModeQuick, nil)

		err := a.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, IsShutdown(err))
	})
}

func TestStrokeSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(context.Background())

	a := newTestAgent(&fakeLink{}, nil, game.ModeQuick, tp)
	_, err := a.Step(context.Background(), stoppedAt(tee, 0))
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 3)

	byName := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range spans {
		byName[s.Name()] = s
	}
	stroke, ok := byName["agent.stroke"]
	require.True(t, ok)
	for _, child := range []string{"planner.plan", "optimizer.optimize"} {
		s, ok := byName[child]
		require.True(t, ok, child)
		assert.Equal(t, stroke.SpanContext().SpanID(), s.Parent().SpanID(), child)
	}

	attrs := map[string]string{}
	for _, kv := range stroke.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "drive", attrs["category"])
	assert.Equal(t, "fairway", attrs["terrain"])
	assert.Equal(t, "1", attrs["stroke"])
}
