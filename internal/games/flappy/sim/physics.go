package sim

import "github.com/vovakirdan/tui-flappy/internal/core"

// Physics integrates dynamic bodies under gravity and linear damping.
type Physics struct {
	Gravity float64 // Downward acceleration, units/s²
	Ceiling float64 // Dynamic bodies never rise above this; zero disables it
	Floor   float64 // Dynamic bodies never sink below this; zero disables it
}

// ApplyImpulse adds an instantaneous velocity change of impulse/mass.
// Static bodies ignore impulses.
func ApplyImpulse(b *Body, impulse core.Vec) {
	if !b.Dynamic || b.Mass <= 0 {
		return
	}
	b.Vel = b.Vel.Add(impulse.Scale(1 / b.Mass))
}

// Integrate advances every dynamic body by dt seconds.
// Damping follows v *= 1/(1 + dt*damping), which stays stable for large dt.
// The floor clamp leaves a body resting on the floor line, where it still
// touches whatever static body sits below, however long the step.
func (p Physics) Integrate(bodies []*Body, dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range bodies {
		if !b.Dynamic {
			continue
		}
		b.Vel.Y -= p.Gravity * dt
		if b.Damping > 0 {
			b.Vel = b.Vel.Scale(1 / (1 + dt*b.Damping))
		}
		b.Translate(b.Vel.Scale(dt))
		p.clamp(b)
	}
}

// clamp keeps b between the floor and the ceiling and stops motion past them.
func (p Physics) clamp(b *Body) {
	if p.Ceiling > 0 && b.Box.MaxY() > p.Ceiling {
		b.Box.Min.Y = p.Ceiling - b.Box.Size.Y
		if b.Vel.Y > 0 {
			b.Vel.Y = 0
		}
	}
	if p.Floor > 0 && b.Box.Min.Y < p.Floor {
		b.Box.Min.Y = p.Floor
		if b.Vel.Y < 0 {
			b.Vel.Y = 0
		}
	}
}

// Separate pushes dynamic bodies out of the static bodies they collide with,
// along the axis of least penetration, and stops motion on that axis.
// A push never leaves a body past the floor or the ceiling.
func (p Physics) Separate(bodies []*Body) {
	for _, b := range bodies {
		if !b.Dynamic || b.CollidesWith == 0 {
			continue
		}
		for _, o := range bodies {
			if o == b || o.Dynamic || !o.Solid() || !b.CollidesWith.Has(o.Category) {
				continue
			}
			separate(b, o)
		}
		p.clamp(b)
	}
}

// Step integrates then separates.
func (p Physics) Step(bodies []*Body, dt float64) {
	p.Integrate(bodies, dt)
	p.Separate(bodies)
}

func separate(b, o *Body) {
	pen := b.Box.Penetration(o.Box)
	if pen.X <= 0 || pen.Y <= 0 {
		return
	}

	if pen.Y <= pen.X {
		// Vertical push: resolve toward the side the body's centre is on
		if b.Box.Min.Y+b.Box.Size.Y/2 >= o.Box.Min.Y+o.Box.Size.Y/2 {
			b.Box.Min.Y = o.Box.MaxY()
			if b.Vel.Y < 0 {
				b.Vel.Y = 0
			}
		} else {
			b.Box.Min.Y = o.Box.Min.Y - b.Box.Size.Y
			if b.Vel.Y > 0 {
				b.Vel.Y = 0
			}
		}
		return
	}

	if b.Box.Min.X+b.Box.Size.X/2 >= o.Box.Min.X+o.Box.Size.X/2 {
		b.Box.Min.X = o.Box.MaxX()
		if b.Vel.X < 0 {
			b.Vel.X = 0
		}
	} else {
		b.Box.Min.X = o.Box.Min.X - b.Box.Size.X
		if b.Vel.X > 0 {
			b.Vel.X = 0
		}
	}
}
