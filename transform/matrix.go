package transform

import "math"

// Matrix44 is a 4x4 matrix stored column-major, matching CSS matrix3d() order.
type Matrix44 [16]float64

// Identity returns the identity matrix.
func Identity() Matrix44 {
	return Matrix44{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// At returns the element at row r, column c.
func (m *Matrix44) At(r, c int) float64 { return m[c*4+r] }

// Set stores v at row r, column c.
func (m *Matrix44) Set(r, c int, v float64) { m[c*4+r] = v }

// Mul returns m * n.
func (m Matrix44) Mul(n Matrix44) Matrix44 {
	var out Matrix44
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.At(r, k) * n.At(k, c)
			}
			out.Set(r, c, sum)
		}
	}
	return out
}

// IsIdentity reports whether m is the identity within a small tolerance.
func (m Matrix44) IsIdentity() bool {
	id := Identity()
	for i := range m {
		if math.Abs(m[i]-id[i]) > 1e-9 {
			return false
		}
	}
	return true
}

// HasPerspective reports whether the bottom row differs from (0, 0, 0, 1).
func (m Matrix44) HasPerspective() bool {
	return m.At(3, 0) != 0 || m.At(3, 1) != 0 || m.At(3, 2) != 0 || m.At(3, 3) != 1
}

func Translate(x, y, z float64) Matrix44 {
	m := Identity()
	m.Set(0, 3, x)
	m.Set(1, 3, y)
	m.Set(2, 3, z)
	return m
}

func Scale(x, y, z float64) Matrix44 {
	m := Identity()
	m.Set(0, 0, x)
	m.Set(1, 1, y)
	m.Set(2, 2, z)
	return m
}

func RotateX(deg float64) Matrix44 {
	s, c := math.Sincos(deg * math.Pi / 180)
	m := Identity()
	m.Set(1, 1, c)
	m.Set(1, 2, -s)
	m.Set(2, 1, s)
	m.Set(2, 2, c)
	return m
}

func RotateY(deg float64) Matrix44 {
	s, c := math.Sincos(deg * math.Pi / 180)
	m := Identity()
	m.Set(0, 0, c)
	m.Set(0, 2, s)
	m.Set(2, 0, -s)
	m.Set(2, 2, c)
	return m
}

func RotateZ(deg float64) Matrix44 {
	s, c := math.Sincos(deg * math.Pi / 180)
	m := Identity()
	m.Set(0, 0, c)
	m.Set(0, 1, -s)
	m.Set(1, 0, s)
	m.Set(1, 1, c)
	return m
}

// Skew builds a 2D skew with angles in degrees.
func Skew(xDeg, yDeg float64) Matrix44 {
	m := Identity()
	m.Set(0, 1, math.Tan(xDeg*math.Pi/180))
	m.Set(1, 0, math.Tan(yDeg*math.Pi/180))
	return m
}

// Quaternion is a unit rotation quaternion.
type Quaternion struct {
	X, Y, Z, W float64
}

// Slerp interpolates spherically from q to o.
func (q Quaternion) Slerp(o Quaternion, t float64) Quaternion {
	dot := q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
	dot = math.Max(-1, math.Min(1, dot))
	if math.Abs(dot) >= 1-1e-12 {
		return q
	}
	theta := math.Acos(dot)
	w := math.Sin(t*theta) / math.Sqrt(1-dot*dot)
	a := math.Cos(t*theta) - dot*w
	return Quaternion{
		X: q.X*a + o.X*w,
		Y: q.Y*a + o.Y*w,
		Z: q.Z*a + o.Z*w,
		W: q.W*a + o.W*w,
	}
}

// Matrix converts the quaternion to a rotation matrix.
func (q Quaternion) Matrix() Matrix44 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	m := Identity()
	m.Set(0, 0, 1-2*(y*y+z*z))
	m.Set(0, 1, 2*(x*y-z*w))
	m.Set(0, 2, 2*(x*z+y*w))
	m.Set(1, 0, 2*(x*y+z*w))
	m.Set(1, 1, 1-2*(x*x+z*z))
	m.Set(1, 2, 2*(y*z-x*w))
	m.Set(2, 0, 2*(x*z-y*w))
	m.Set(2, 1, 2*(y*z+x*w))
	m.Set(2, 2, 1-2*(x*x+y*y))
	return m
}

// Decomposed is a matrix split into independently blendable parts.
// Skew holds the xy, xz and yz shear factors.
type Decomposed struct {
	Translate   [3]float64
	Scale       [3]float64
	Skew        [3]float64
	Perspective [4]float64
	Quaternion  Quaternion
}

// Decompose splits an affine matrix. It fails for singular matrices and for
// matrices carrying perspective.
func Decompose(m Matrix44) (Decomposed, bool) {
	var d Decomposed
	if m.At(3, 3) == 0 || m.HasPerspective() {
		return d, false
	}
	d.Perspective = [4]float64{0, 0, 0, 1}

	w := m.At(3, 3)
	for i := range m {
		m[i] /= w
	}
	d.Translate = [3]float64{m.At(0, 3), m.At(1, 3), m.At(2, 3)}

	var row [3][3]float64
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			row[c][r] = m.At(r, c)
		}
	}
	if det3(row) == 0 {
		return d, false
	}

	d.Scale[0] = length3(row[0])
	row[0] = scale3(row[0], 1/d.Scale[0])

	d.Skew[0] = dot3(row[0], row[1])
	row[1] = combine3(row[1], row[0], 1, -d.Skew[0])
	d.Scale[1] = length3(row[1])
	row[1] = scale3(row[1], 1/d.Scale[1])
	d.Skew[0] /= d.Scale[1]

	d.Skew[1] = dot3(row[0], row[2])
	row[2] = combine3(row[2], row[0], 1, -d.Skew[1])
	d.Skew[2] = dot3(row[1], row[2])
	row[2] = combine3(row[2], row[1], 1, -d.Skew[2])
	d.Scale[2] = length3(row[2])
	row[2] = scale3(row[2], 1/d.Scale[2])
	d.Skew[1] /= d.Scale[2]
	d.Skew[2] /= d.Scale[2]

	if dot3(row[0], cross3(row[1], row[2])) < 0 {
		for i := 0; i < 3; i++ {
			d.Scale[i] = -d.Scale[i]
			row[i] = scale3(row[i], -1)
		}
	}

	d.Quaternion = Quaternion{
		X: 0.5 * math.Sqrt(math.Max(1+row[0][0]-row[1][1]-row[2][2], 0)),
		Y: 0.5 * math.Sqrt(math.Max(1-row[0][0]+row[1][1]-row[2][2], 0)),
		Z: 0.5 * math.Sqrt(math.Max(1-row[0][0]-row[1][1]+row[2][2], 0)),
		W: 0.5 * math.Sqrt(math.Max(1+row[0][0]+row[1][1]+row[2][2], 0)),
	}
	if row[2][1] > row[1][2] {
		d.Quaternion.X = -d.Quaternion.X
	}
	if row[0][2] > row[2][0] {
		d.Quaternion.Y = -d.Quaternion.Y
	}
	if row[1][0] > row[0][1] {
		d.Quaternion.Z = -d.Quaternion.Z
	}
	return d, true
}

// Recompose rebuilds the matrix from its parts.
func Recompose(d Decomposed) Matrix44 {
	m := Identity()
	for i := 0; i < 4; i++ {
		m.Set(3, i, d.Perspective[i])
	}
	m = m.Mul(Translate(d.Translate[0], d.Translate[1], d.Translate[2]))
	m = m.Mul(d.Quaternion.Matrix())
	if d.Skew[2] != 0 {
		s := Identity()
		s.Set(1, 2, d.Skew[2])
		m = m.Mul(s)
	}
	if d.Skew[1] != 0 {
		s := Identity()
		s.Set(0, 2, d.Skew[1])
		m = m.Mul(s)
	}
	if d.Skew[0] != 0 {
		s := Identity()
		s.Set(0, 1, d.Skew[0])
		m = m.Mul(s)
	}
	return m.Mul(Scale(d.Scale[0], d.Scale[1], d.Scale[2]))
}

// BlendDecomposed interpolates two decompositions.
func BlendDecomposed(from, to Decomposed, progress float64) Decomposed {
	var out Decomposed
	for i := 0; i < 3; i++ {
		out.Translate[i] = lerp(from.Translate[i], to.Translate[i], progress)
		out.Scale[i] = lerp(from.Scale[i], to.Scale[i], progress)
		out.Skew[i] = lerp(from.Skew[i], to.Skew[i], progress)
	}
	for i := 0; i < 4; i++ {
		out.Perspective[i] = lerp(from.Perspective[i], to.Perspective[i], progress)
	}
	out.Quaternion = from.Quaternion.Slerp(to.Quaternion, progress)
	return out
}

func lerp(a, b, p float64) float64 { return a + (b-a)*p }

func length3(v [3]float64) float64 { return math.Sqrt(dot3(v, v)) }

func dot3(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func scale3(v [3]float64, s float64) [3]float64 {
	return [3]float64{v[0] * s, v[1] * s, v[2] * s}
}

func combine3(a, b [3]float64, as, bs float64) [3]float64 {
	return [3]float64{a[0]*as + b[0]*bs, a[1]*as + b[1]*bs, a[2]*as + b[2]*bs}
}

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func det3(c [3][3]float64) float64 {
	return dot3(c[0], cross3(c[1], c[2]))
}
