// Package anim smooths the displayed transform of each window towards the
// transform the store holds. It reads the store and never writes to it.
package anim

import (
	"time"

	"github.com/Gaurav-Gosain/spatialwm/internal/wm"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultDuration is the length of a tween started by a store change.
const DefaultDuration = 300 * time.Millisecond

// Transform is the displayed placement of one window.
type Transform struct {
	Position mgl64.Vec3
	Scale    mgl64.Vec3
}

// Tween represents an eased transition for a window.
type Tween struct {
	ID       string
	Start    Transform
	End      Transform
	Elapsed  time.Duration
	Duration time.Duration
	Progress float64
	Complete bool
}

// Animator tracks one displayed transform per window.
type Animator struct {
	duration time.Duration
	fast     time.Duration
	shown    map[string]Transform
	tweens   map[string]*Tween
}

// New returns an animator whose tweens last d. A non-positive d snaps.
func New(d time.Duration) *Animator {
	return &Animator{
		duration: d,
		shown:    make(map[string]Transform),
		tweens:   make(map[string]*Tween),
	}
}

// SetFastDuration sets the tween length used while a window is focused. Zero
// falls back to the normal duration.
func (a *Animator) SetFastDuration(d time.Duration) { a.fast = d }

// Sync retargets every window to the store's current transform, advances
// running tweens by dt and forgets windows that no longer exist. Windows seen
// for the first time appear at their target without animating.
func (a *Animator) Sync(s *wm.Store, dt time.Duration) {
	seen := make(map[string]struct{}, s.Len())
	for _, w := range s.Windows() {
		seen[w.ID] = struct{}{}
		a.retarget(w.ID, Transform{Position: w.Position, Scale: w.Scale}, w.IsFocused)
	}
	for id := range a.shown {
		if _, ok := seen[id]; !ok {
			delete(a.shown, id)
			delete(a.tweens, id)
		}
	}
	a.Step(dt)
}

func (a *Animator) retarget(id string, target Transform, focused bool) {
	current, ok := a.shown[id]
	if !ok || a.duration <= 0 {
		a.shown[id] = target
		delete(a.tweens, id)
		return
	}
	if tw, running := a.tweens[id]; running {
		if tw.End == target {
			return
		}
	} else if current == target {
		return
	}
	d := a.duration
	if focused && a.fast > 0 {
		d = a.fast
	}
	// Mid-flight changes start from what is on screen now.
	a.tweens[id] = &Tween{
		ID:       id,
		Start:    current,
		End:      target,
		Duration: d,
	}
}

// Step advances all tweens by dt and updates the displayed transforms.
func (a *Animator) Step(dt time.Duration) {
	for id, tw := range a.tweens {
		tw.Elapsed += dt

		// Calculate progress (0.0 to 1.0)
		progress := float64(tw.Elapsed) / float64(tw.Duration)
		if progress >= 1.0 {
			progress = 1.0
			tw.Complete = true
		}
		tw.Progress = easeInOutCubic(progress)

		a.shown[id] = Transform{
			Position: lerp(tw.Start.Position, tw.End.Position, tw.Progress),
			Scale:    lerp(tw.Start.Scale, tw.End.Scale, tw.Progress),
		}
		if tw.Complete {
			a.shown[id] = tw.End
			delete(a.tweens, id)
		}
	}
}

// Display returns the transform to draw id with.
func (a *Animator) Display(id string) (Transform, bool) {
	t, ok := a.shown[id]
	return t, ok
}

// Tween returns the running tween for id, if any.
func (a *Animator) Tween(id string) (*Tween, bool) {
	tw, ok := a.tweens[id]
	return tw, ok
}

// HasActiveAnimations returns true if any tween is still running.
func (a *Animator) HasActiveAnimations() bool {
	return len(a.tweens) > 0
}

// Easing function for smooth animation
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := 2*t - 2
	return 1 + p*p*p/2
}

// Linear interpolation
func lerp(start, end mgl64.Vec3, progress float64) mgl64.Vec3 {
	return start.Add(end.Sub(start).Mul(progress))
}
