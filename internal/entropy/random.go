// Package entropy draws run seeds from crypto/rand when a run is not pinned
// to a configured seed.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"log/slog"
	"time"
)

// Source is read for seed material. Tests replace it.
var Source io.Reader = rand.Reader

// Seed returns a positive seed drawn from Source. Falls back to the wall
// clock if Source fails.
func Seed() int64 {
	var buf [8]byte
	if _, err := io.ReadFull(Source, buf[:]); err != nil {
		slog.Warn("entropy read failed, seeding from clock", "error", err)
		return clampSeed(time.Now().UnixNano())
	}
	return clampSeed(int64(binary.LittleEndian.Uint64(buf[:]) >> 1))
}

// Resolve returns seed unchanged when it is non-zero. Zero means "no fixed
// seed" and draws a fresh one.
func Resolve(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := Seed()
	slog.Debug("drew run seed", "seed", s)
	return s
}

// clampSeed keeps seeds positive so zero stays reserved for "draw one".
func clampSeed(s int64) int64 {
	if s < 0 {
		s = -s
	}
	if s == 0 {
		return 1
	}
	return s
}
