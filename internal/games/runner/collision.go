package runner

// Outcome is what one collision pass did to the run.
type Outcome struct {
	Hit       bool         // a terminal collision ended the run
	HitKind   ObstacleKind // kind that ended the run, valid when Hit
	Grazed    int          // blocking overlaps absorbed by invulnerability
	Slowed    []ObstacleSpec
	Collected []CollectibleSpec
}

// Resolver tests the player against every live obstacle and collectible.
type Resolver struct {
	collect []Handle
}

// Resolve runs one collision pass. Slow zones and collectibles are applied
// here; the caller reacts to Hit and to the collected specs.
func (r *Resolver) Resolve(p *Player, obstacles *ObstacleSpawner, collectibles *CollectibleSpawner) Outcome {
	var out Outcome
	box := p.Bounds()

	for _, h := range obstacles.Live() {
		o := obstacles.Get(h)
		if !box.Overlaps(obstacles.Bounds(o)) {
			continue
		}
		spec := obstacles.Spec(o.Kind)

		blocking := false
		switch o.Kind {
		case ObstaclePlain:
			blocking = true
		case ObstacleRequiresJump:
			blocking = p.Grounded()
		case ObstacleRequiresSlide:
			blocking = !(p.Sliding() && box.Max.Y <= spec.MinHeight)
		case ObstacleSlowZone:
			if !o.Triggered {
				o.Triggered = true
				p.SetSlow(spec.SlowFactor, spec.SlowDuration.Seconds())
				out.Slowed = append(out.Slowed, spec)
			}
		}
		if !blocking {
			continue
		}
		if p.Hit() {
			out.Hit = true
			out.HitKind = o.Kind
			break
		}
		out.Grazed++
	}

	r.collect = r.collect[:0]
	for _, h := range collectibles.Live() {
		if box.Overlaps(collectibles.Bounds(collectibles.Get(h))) {
			r.collect = append(r.collect, h)
		}
	}
	for _, h := range r.collect {
		if kind, ok := collectibles.Collect(h); ok {
			out.Collected = append(out.Collected, collectibles.Spec(kind))
		}
	}
	return out
}
