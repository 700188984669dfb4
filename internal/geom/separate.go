package geom

import "github.com/go-gl/mathgl/mgl64"

// SeparateOverlapping pushes apart every pair of points closer than
// minDistance. Pairs are visited once, in the order given by ids (i < j), and
// each point of a close pair moves half the deficit along the line joining
// them. Coincident points are split along the X axis. Ids missing from
// positions are ignored. The input map is not modified.
func SeparateOverlapping(ids []string, positions map[string]mgl64.Vec3, minDistance float64) map[string]mgl64.Vec3 {
	out := make(map[string]mgl64.Vec3, len(positions))
	for id, p := range positions {
		out[id] = p
	}
	if minDistance <= 0 {
		return out
	}

	for i := 0; i < len(ids); i++ {
		a, ok := out[ids[i]]
		if !ok {
			continue
		}
		for j := i + 1; j < len(ids); j++ {
			b, ok := out[ids[j]]
			if !ok {
				continue
			}
			d := b.Sub(a)
			dist := d.Len()
			if dist >= minDistance {
				continue
			}
			dir := AxisX
			if dist > Epsilon {
				dir = d.Mul(1 / dist)
			}
			push := dir.Mul((minDistance - dist) / 2)
			a = a.Sub(push)
			b = b.Add(push)
			out[ids[j]] = b
		}
		out[ids[i]] = a
	}
	return out
}
