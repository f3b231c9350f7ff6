package lattice

// The axis walks step |n| cells from i in the direction of n's sign and stop
// at the first step that leaves the allowed range, returning what was reached
// so far. A blocked direction yields a shorter slice, never an error.

// AlongX returns the cells reached walking along the X axis. Going negative a
// step is kept while the row position stays above 1; going positive while it
// has not wrapped to the start of the next row.
func AlongX(i, n, sizeX int) []int { return appendAlongX(nil, i, n, sizeX) }

// AlongY returns the cells reached walking along the Y axis, in strides of
// sizeX. A step is kept while its offset within the level stays inside
// [sizeX, level-sizeX).
func AlongY(i, n, sizeX, level int) []int { return appendAlongY(nil, i, n, sizeX, level) }

// AlongZ returns the cells reached walking along the Z axis, in strides of
// level. A step is kept while its layer stays inside (1, sizeZ).
func AlongZ(i, n, level, sizeZ int) []int { return appendAlongZ(nil, i, n, level, sizeZ) }

func appendAlongX(dst []int, i, n, sizeX int) []int {
	if sizeX < 1 || i < 0 {
		return dst
	}
	if n < 0 {
		x := i % sizeX
		for s := 1; s <= -n; s++ {
			if x-s <= 1 {
				return dst
			}
			dst = append(dst, i-s)
		}
		return dst
	}
	for s := 1; s <= n; s++ {
		ns := i + s
		if ns%sizeX == 0 {
			return dst
		}
		dst = append(dst, ns)
	}
	return dst
}

func appendAlongY(dst []int, i, n, sizeX, level int) []int {
	if sizeX < 1 || level < 1 || i < 0 {
		return dst
	}
	dir := 1
	if n < 0 {
		dir, n = -1, -n
	}
	for s := 1; s <= n; s++ {
		ns := i + dir*s*sizeX
		if ns < 0 {
			return dst
		}
		off := ns % level
		if off < sizeX || off >= level-sizeX {
			return dst
		}
		dst = append(dst, ns)
	}
	return dst
}

func appendAlongZ(dst []int, i, n, level, sizeZ int) []int {
	if level < 1 || i < 0 {
		return dst
	}
	dir := 1
	if n < 0 {
		dir, n = -1, -n
	}
	for s := 1; s <= n; s++ {
		ns := i + dir*s*level
		if ns < 0 {
			return dst
		}
		layer := ns / level
		if layer <= 1 || layer >= sizeZ {
			return dst
		}
		dst = append(dst, ns)
	}
	return dst
}

// Neighborhood returns the cells reachable from i within steps cells along each
// of the six axis directions, in the order X-, X+, Y-, Y+, Z-, Z+.
func (l Lattice) Neighborhood(i, steps int) []int {
	return l.AppendNeighborhood(nil, i, steps)
}

// AppendNeighborhood is Neighborhood appending into dst, so hot loops can
// reuse one buffer.
func (l Lattice) AppendNeighborhood(dst []int, i, steps int) []int {
	if !l.Contains(i) || steps == 0 {
		return dst
	}
	if steps < 0 {
		steps = -steps
	}
	level := l.Level()
	dst = appendAlongX(dst, i, -steps, l.X)
	dst = appendAlongX(dst, i, steps, l.X)
	dst = appendAlongY(dst, i, -steps, l.X, level)
	dst = appendAlongY(dst, i, steps, l.X, level)
	dst = appendAlongZ(dst, i, -steps, level, l.Z)
	dst = appendAlongZ(dst, i, steps, level, l.Z)
	return dst
}
