// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package view

import (
	"math/rand/v2"
	"sync"
)

// Jitter bounds for obfuscated coordinates, in decimal degrees.
const (
	jitterMin = 0.001
	jitterMax = 0.300
)

// Obfuscator draws the random positional offsets applied to listing
// coordinates shown to non-privileged viewers. The randomness source is
// injected so tests can seed it; a mutex guards the non-concurrent-safe
// *rand.Rand.
type Obfuscator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewObfuscator creates an Obfuscator over the given source. Pass a seeded
// source for deterministic offsets in tests.
func NewObfuscator(rnd *rand.Rand) *Obfuscator {
	return &Obfuscator{rnd: rnd}
}

// NewDefaultObfuscator creates an Obfuscator with a randomly seeded source.
func NewDefaultObfuscator() *Obfuscator {
	return NewObfuscator(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// Offset returns a fresh uniform draw in [jitterMin, jitterMax]. Latitude
// and longitude each get their own draw, so the displayed point is not
// simply the true point shifted along the diagonal.
func (o *Obfuscator) Offset() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return jitterMin + o.rnd.Float64()*(jitterMax-jitterMin)
}
