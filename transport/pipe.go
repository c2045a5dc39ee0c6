package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/time/rate"

	"github.com/lab1702/golf-ai/game"
)

// Default endpoint locations used by the engine
const (
	DefaultStatePath    = "/tmp/golf_state_pipe" // engine → planner
	DefaultCommandPath  = "/tmp/golf_ai_pipe"    // planner → engine
	DefaultPollInterval = 100 * time.Millisecond
)

// Config locates and paces the pipe endpoints
type Config struct {
	StatePath    string
	CommandPath  string
	PollInterval time.Duration
	Logger       *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.StatePath == "" {
		c.StatePath = DefaultStatePath
	}
	if c.CommandPath == "" {
		c.CommandPath = DefaultCommandPath
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Pipe is an open pair of non-blocking FIFO endpoints. Reads and writes go straight
// to the file descriptors so a missing peer never blocks the caller.
type Pipe struct {
	stateFD   int
	commandFD int
	pending   []byte // Bytes of an incomplete state record
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// CreateFIFOs makes the named pipes if they do not already exist
func CreateFIFOs(paths ...string) error {
	for _, path := range paths {
		if err := unix.Mkfifo(path, 0o666); err != nil && !errors.Is(err, unix.EEXIST) {
			return game.WrapError(game.CHANNEL_UNAVAILABLE, "create fifo "+path, err)
		}
	}
	return nil
}

// Open waits until both FIFOs exist and the engine is reading commands, then opens
// them non-blocking. It polls at the configured interval until ctx is done, in which
// case a CHANNEL_UNAVAILABLE error is returned.
func Open(ctx context.Context, cfg Config) (*Pipe, error) {
	cfg = cfg.withDefaults()
	limiter := rate.NewLimiter(rate.Every(cfg.PollInterval), 1)

	attempts := 0
	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, game.WrapError(game.CHANNEL_UNAVAILABLE, "waiting for engine pipes", err)
		}

		p, err := tryOpen(cfg)
		if err == nil {
			p.limiter = limiter
			p.logger = cfg.Logger
			cfg.Logger.Info("connected to engine pipes", "state", cfg.StatePath, "command", cfg.CommandPath)
			return p, nil
		}

		attempts++
		if attempts%50 == 1 {
			cfg.Logger.Info("waiting for engine pipes", "attempts", attempts, "error", err)
		}
	}
}

// tryOpen makes one attempt at opening both endpoints
func tryOpen(cfg Config) (*Pipe, error) {
	for _, path := range []string{cfg.StatePath, cfg.CommandPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, game.WrapError(game.CHANNEL_UNAVAILABLE, "stat "+path, err)
		}
	}

	stateFD, err := unix.Open(cfg.StatePath, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, game.WrapError(game.CHANNEL_UNAVAILABLE, "open "+cfg.StatePath, err)
	}

	// A non-blocking write open fails with ENXIO until the engine opens its read end
	commandFD, err := unix.Open(cfg.CommandPath, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		unix.Close(stateFD)
		return nil, game.WrapError(game.CHANNEL_UNAVAILABLE, "open "+cfg.CommandPath, err)
	}

	return &Pipe{stateFD: stateFD, commandFD: commandFD}, nil
}

// ReadState waits for the next poll slot, drains the state pipe and returns the most
// recent complete record. Leftover bytes of a partial record are kept for the next call.
// When no complete record is available the error matches game.ErrNoData.
func (p *Pipe) ReadState(ctx context.Context) (game.GameState, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return game.GameState{}, err
	}

	if err := p.drain(); err != nil {
		return game.GameState{}, err
	}

	records := len(p.pending) / StateSize
	if records == 0 {
		return game.GameState{}, game.ErrNoData
	}

	latest := p.pending[(records-1)*StateSize : records*StateSize]
	state, err := DecodeState(latest)
	rest := len(p.pending) - records*StateSize
	copy(p.pending, p.pending[records*StateSize:])
	p.pending = p.pending[:rest]
	return state, err
}

// drain reads everything currently buffered in the state pipe
func (p *Pipe) drain() error {
	buf := make([]byte, 4*StateSize)
	for {
		n, err := unix.Read(p.stateFD, buf)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return nil
		case err != nil:
			return game.WrapError(game.CHANNEL_UNAVAILABLE, "read state pipe", err)
		case n == 0:
			// No writer attached right now
			return nil
		}
		p.pending = append(p.pending, buf[:n]...)
	}
}

// SendCommand writes one command record. Records are smaller than PIPE_BUF so the
// write is atomic; a full pipe reports a retryable error.
func (p *Pipe) SendCommand(shot game.ShotParameters) error {
	record := EncodeCommand(shot)
	for {
		n, err := unix.Write(p.commandFD, record)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return game.NewRetryableError(game.CHANNEL_UNAVAILABLE, "command pipe full")
		case err != nil:
			return game.WrapError(game.CHANNEL_UNAVAILABLE, "write command pipe", err)
		case n != len(record):
			return game.NewError(game.CHANNEL_UNAVAILABLE, fmt.Sprintf("short command write: %d of %d bytes", n, len(record)))
		}
		p.logger.Debug("sent command",
			"dir_x", shot.Direction.X, "dir_y", shot.Direction.Y,
			"angle", shot.Angle, "power", shot.Power)
		return nil
	}
}

// Close releases both endpoints
func (p *Pipe) Close() error {
	err := errors.Join(closeFD(p.stateFD), closeFD(p.commandFD))
	p.stateFD, p.commandFD = -1, -1
	return err
}

func closeFD(fd int) error {
	if fd < 0 {
		return nil
	}
	return unix.Close(fd)
}
