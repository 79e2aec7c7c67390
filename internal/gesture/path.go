package gesture

// Path is an ordered sequence of points captured during one continuous
// pointer gesture, in chronological order.
type Path []Point

// Length returns the total arc length of the path.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i-1].Dist(p[i])
	}
	return total
}

// Translate returns a copy of the path shifted by the vector d.
func (p Path) Translate(d Point) Path {
	out := make(Path, len(p))
	for i, pt := range p {
		out[i] = pt.Add(d)
	}
	return out
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Resample returns a path of exactly n points evenly spaced by arc length
// along p. The first output point is always the original first point.
// Degenerate inputs (a single point, or zero total length) produce n
// copies of the first point. Returns nil for an empty input path.
//
// Algorithm:
// 1. Compute total arc length L and target spacing L/(n-1)
// 2. Walk the polyline accumulating segment length
// 3. Whenever the accumulated length reaches the next spacing multiple,
//    linearly interpolate an output point at that exact arc fraction
// 4. Pad with the last point if floating-point accumulation falls short
func Resample(p Path, n int) Path {
	if len(p) == 0 || n < 1 {
		return nil
	}

	total := p.Length()
	if len(p) == 1 || total == 0 {
		out := make(Path, n)
		for i := range out {
			out[i] = p[0]
		}
		return out
	}

	if n == 1 {
		return Path{p[0]}
	}

	interval := total / float64(n-1)
	out := make(Path, 0, n)
	out = append(out, p[0])

	var accum float64
	prev := p[0]
	for i := 1; i < len(p); i++ {
		next := p[i]
		d := prev.Dist(next)

		// A single input segment can span several output points.
		for d > 0 && accum+d >= interval {
			t := (interval - accum) / d
			q := Point{
				X: prev.X + t*(next.X-prev.X),
				Y: prev.Y + t*(next.Y-prev.Y),
			}
			out = append(out, q)
			if len(out) == n {
				return out
			}
			prev = q
			d = prev.Dist(next)
			accum = 0
		}

		accum += d
		prev = next
	}

	// Accumulated rounding can leave the walk short of n points.
	for len(out) < n {
		out = append(out, p[len(p)-1])
	}

	return out
}

// Normalize translates p so its first point is the origin and resamples
// the result to n points. Two normalized paths are directly comparable
// regardless of gesture size or absolute position.
func Normalize(p Path, n int) Path {
	if len(p) == 0 {
		return nil
	}
	origin := p[0]
	translated := p.Translate(Point{X: -origin.X, Y: -origin.Y})
	return Resample(translated, n)
}
