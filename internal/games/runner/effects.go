package runner

// EffectKind names a timed state change.
type EffectKind int

const (
	EffectSlide EffectKind = iota
	EffectSlow
	EffectHitFlash
	EffectBoost
)

type effect struct {
	kind      EffectKind
	remaining float64 // seconds
	expire    func()
}

// Effects is a tick-driven list of expiring effects. Nothing here reads the
// wall clock, so effects freeze while the run is paused.
type Effects struct {
	list []effect
}

// Start begins an effect of kind lasting seconds, calling expire when it
// runs out. An effect of the same kind already running is restarted with
// the new duration and expire func; its old expire func is not called.
func (e *Effects) Start(kind EffectKind, seconds float64, expire func()) {
	for i := range e.list {
		if e.list[i].kind == kind {
			e.list[i].remaining = seconds
			e.list[i].expire = expire
			return
		}
	}
	e.list = append(e.list, effect{kind: kind, remaining: seconds, expire: expire})
}

// Tick advances every effect by dt seconds and expires the finished ones in
// start order.
func (e *Effects) Tick(dt float64) {
	kept := e.list[:0]
	var done []func()
	for _, ef := range e.list {
		ef.remaining -= dt
		if ef.remaining <= 0 {
			if ef.expire != nil {
				done = append(done, ef.expire)
			}
			continue
		}
		kept = append(kept, ef)
	}
	e.list = kept
	for _, f := range done {
		f()
	}
}

// Remaining returns the seconds left on kind, or false if it is not running.
func (e *Effects) Remaining(kind EffectKind) (float64, bool) {
	for _, ef := range e.list {
		if ef.kind == kind {
			return ef.remaining, true
		}
	}
	return 0, false
}

// Active reports whether an effect of kind is running.
func (e *Effects) Active(kind EffectKind) bool {
	_, ok := e.Remaining(kind)
	return ok
}

// Clear drops every effect without calling expire funcs.
func (e *Effects) Clear() {
	e.list = e.list[:0]
}
