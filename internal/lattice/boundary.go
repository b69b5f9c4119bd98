package lattice

// absorbEdges applies the first-order Mur condition
//
//	u[edge](n+1) = u[in](n) + k * (u[in](n+1) - u[edge](n)),  k = (c-1)/(c+1)
//
// where in is the cell one step inwards from the edge. It must run after the
// interior update so that u[in](n+1) is already known. Corners take the mean of
// their two edge neighbours.
func (l *Lattice) absorbEdges(next, prev grid) {
	w, h := l.cfg.Width, l.cfg.Height
	k := l.murCoeff
	for j := 1; j < h-1; j++ {
		next.set(0, j, prev.at(1, j)+k*(next.at(1, j)-prev.at(0, j)))
		next.set(w-1, j, prev.at(w-2, j)+k*(next.at(w-2, j)-prev.at(w-1, j)))
	}
	for i := 1; i < w-1; i++ {
		next.set(i, 0, prev.at(i, 1)+k*(next.at(i, 1)-prev.at(i, 0)))
		next.set(i, h-1, prev.at(i, h-2)+k*(next.at(i, h-2)-prev.at(i, h-1)))
	}
	l.fillCorners(next)
}

// reflectEdges mirrors the neighbouring cell with a sign flip so the edge acts
// as a lossy fixed wall.
func (l *Lattice) reflectEdges(next grid) {
	w, h := l.cfg.Width, l.cfg.Height
	r := l.cfg.ReflectCoefficient
	for j := 1; j < h-1; j++ {
		next.set(0, j, -next.at(1, j)*r)
		next.set(w-1, j, -next.at(w-2, j)*r)
	}
	for i := 1; i < w-1; i++ {
		next.set(i, 0, -next.at(i, 1)*r)
		next.set(i, h-1, -next.at(i, h-2)*r)
	}
	l.fillCorners(next)
}

func (l *Lattice) fillCorners(next grid) {
	w, h := l.cfg.Width, l.cfg.Height
	next.set(0, 0, 0.5*(next.at(1, 0)+next.at(0, 1)))
	next.set(w-1, 0, 0.5*(next.at(w-2, 0)+next.at(w-1, 1)))
	next.set(0, h-1, 0.5*(next.at(1, h-1)+next.at(0, h-2)))
	next.set(w-1, h-1, 0.5*(next.at(w-2, h-1)+next.at(w-1, h-2)))
}
