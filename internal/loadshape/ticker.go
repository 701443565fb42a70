package loadshape

import "time"

// Ticker binds a Profile to a start instant so an external scheduler
// can poll it for the current target without tracking elapsed time
// itself. The engine typically calls Tick once per second.
type Ticker struct {
	profile *Profile
	start   time.Time
	now     func() time.Time
}

// NewTicker creates a ticker whose elapsed time starts now.
func NewTicker(p *Profile) *Ticker {
	return NewTickerWithClock(p, time.Now)
}

// NewTickerWithClock creates a ticker using the given clock. The test
// start is the first clock reading.
func NewTickerWithClock(p *Profile, now func() time.Time) *Ticker {
	return &Ticker{profile: p, start: now(), now: now}
}

// Tick samples the profile at the current elapsed time. done reports
// that the schedule is exhausted and the engine should stop spawning;
// the sample taken exactly at the total duration is still valid.
func (t *Ticker) Tick() (users int, spawnRate float64, done bool) {
	elapsed := t.now().Sub(t.start)
	if elapsed > t.profile.TotalDuration() {
		return 0, 0, true
	}
	users, err := t.profile.UsersAt(elapsed)
	if err != nil {
		return 0, 0, true
	}
	spawnRate, _ = t.profile.SpawnRateAt(elapsed)
	return users, spawnRate, false
}

// Elapsed returns the time since the ticker was created.
func (t *Ticker) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}
