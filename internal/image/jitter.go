package imagepkg

import (
	"math"
	"math/rand"
	"sync"
)

// MaxJitter bounds the rotation applied to each rendered text line, in radians.
const MaxJitter = math.Pi / 20

// AngleSource yields the rotation for one line of text. Implementations must
// stay within [-MaxJitter, MaxJitter].
type AngleSource interface {
	Angle() float64
}

// RandomJitter draws angles uniformly from [-MaxJitter, MaxJitter].
// It is safe for concurrent use.
type RandomJitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomJitter returns a jitter source seeded with seed.
func NewRandomJitter(seed int64) *RandomJitter {
	return &RandomJitter{rng: rand.New(rand.NewSource(seed))}
}

func (j *RandomJitter) Angle() float64 {
	j.mu.Lock()
	f := j.rng.Float64()
	j.mu.Unlock()
	return (2*f - 1) * MaxJitter
}

// FixedAngles replays a fixed sequence of angles, cycling when exhausted.
// An empty sequence always yields zero.
type FixedAngles struct {
	mu     sync.Mutex
	angles []float64
	next   int
}

func NewFixedAngles(angles ...float64) *FixedAngles {
	return &FixedAngles{angles: angles}
}

func (f *FixedAngles) Angle() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.angles) == 0 {
		return 0
	}
	a := f.angles[f.next%len(f.angles)]
	f.next++
	return clampAngle(a)
}

func clampAngle(a float64) float64 {
	return math.Max(-MaxJitter, math.Min(MaxJitter, a))
}
