// Package transport carries fixed-size binary records between the planner and the
// game engine over a pair of named pipes.
package transport

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lab1702/golf-ai/game"
)

// Record sizes on the wire
const (
	// CommandSize is six little-endian float32: dir x, dir y, angle, power, spin x, spin y
	CommandSize = 24
	// StateSize is eight little-endian float32 (ball x/y/z, hole x/y, wind x/y/strength),
	// an int32 stroke count, two one-byte booleans and two bytes of padding
	StateSize = 40
)

// State record field offsets
const (
	offBallX        = 0
	offBallY        = 4
	offBallZ        = 8
	offHoleX        = 12
	offHoleY        = 16
	offWindX        = 20
	offWindY        = 24
	offWindStrength = 28
	offStrokes      = 32
	offStopped      = 36
	offWon          = 37
)

var le = binary.LittleEndian

func putFloat(b []byte, off int, v float64) {
	le.PutUint32(b[off:], math.Float32bits(float32(v)))
}

func getFloat(b []byte, off int) float64 {
	return float64(math.Float32frombits(le.Uint32(b[off:])))
}

// EncodeCommand packs a shot into a 24-byte command record
func EncodeCommand(s game.ShotParameters) []byte {
	b := make([]byte, CommandSize)
	putFloat(b, 0, s.Direction.X)
	putFloat(b, 4, s.Direction.Y)
	putFloat(b, 8, s.Angle)
	putFloat(b, 12, s.Power)
	putFloat(b, 16, s.Spin.X)
	putFloat(b, 20, s.Spin.Y)
	return b
}

// DecodeCommand unpacks a 24-byte command record
func DecodeCommand(b []byte) (game.ShotParameters, error) {
	if len(b) != CommandSize {
		return game.ShotParameters{}, game.NewError(game.WIRE_FORMAT_INVALID,
			fmt.Sprintf("command record is %d bytes, want %d", len(b), CommandSize))
	}
	return game.ShotParameters{
		Direction: game.Vector2D{X: getFloat(b, 0), Y: getFloat(b, 4)},
		Angle:     getFloat(b, 8),
		Power:     getFloat(b, 12),
		Spin:      game.Vector2D{X: getFloat(b, 16), Y: getFloat(b, 20)},
	}, nil
}

// EncodeState packs a game state into a 40-byte state record with zeroed padding
func EncodeState(s game.GameState) []byte {
	b := make([]byte, StateSize)
	putFloat(b, offBallX, s.Ball.X)
	putFloat(b, offBallY, s.Ball.Y)
	putFloat(b, offBallZ, s.BallZ)
	putFloat(b, offHoleX, s.Hole.X)
	putFloat(b, offHoleY, s.Hole.Y)
	putFloat(b, offWindX, s.Wind.Dir.X)
	putFloat(b, offWindY, s.Wind.Dir.Y)
	putFloat(b, offWindStrength, s.Wind.Strength)
	le.PutUint32(b[offStrokes:], uint32(s.Strokes))
	if s.Stopped {
		b[offStopped] = 1
	}
	if s.Won {
		b[offWon] = 1
	}
	return b
}

// DecodeState unpacks a 40-byte state record. Padding bytes are ignored and any
// non-zero boolean byte reads as true.
func DecodeState(b []byte) (game.GameState, error) {
	if len(b) != StateSize {
		return game.GameState{}, game.NewError(game.WIRE_FORMAT_INVALID,
			fmt.Sprintf("state record is %d bytes, want %d", len(b), StateSize))
	}
	return game.GameState{
		Ball:  game.Point2D{X: getFloat(b, offBallX), Y: getFloat(b, offBallY)},
		BallZ: getFloat(b, offBallZ),
		Hole:  game.Point2D{X: getFloat(b, offHoleX), Y: getFloat(b, offHoleY)},
		Wind: game.Wind{
			Dir:      game.Vector2D{X: getFloat(b, offWindX), Y: getFloat(b, offWindY)},
			Strength: getFloat(b, offWindStrength),
		},
		Strokes: int32(le.Uint32(b[offStrokes:])),
		Stopped: b[offStopped] != 0,
		Won:     b[offWon] != 0,
	}, nil
}
