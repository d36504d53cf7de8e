package math

import "math"

// Mat3 is a 3x3 matrix in row-major order.
// Layout: [m0 m1 m2]
//
//	[m3 m4 m5]
//	[m6 m7 m8]
type Mat3 [9]float64

// Identity returns an identity matrix.
func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// FromColumns builds a matrix whose columns are c0, c1 and c2.
func FromColumns(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0.X, c1.X, c2.X,
		c0.Y, c1.Y, c2.Y,
		c0.Z, c1.Z, c2.Z,
	}
}

// Col returns column i (0..2).
func (m Mat3) Col(i int) Vec3 {
	return Vec3{m[i], m[3+i], m[6+i]}
}

// Row returns row i (0..2).
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			result[row*3+col] =
				m[row*3+0]*other[0*3+col] +
					m[row*3+1]*other[1*3+col] +
					m[row*3+2]*other[2*3+col]
		}
	}
	return result
}

// MulVec transforms a column vector by this matrix.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant.
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns the inverse of the matrix.
// ok is false if the matrix is singular.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	det := m.Determinant()
	if det == 0 {
		return Identity(), false
	}
	invDet := 1 / det
	return Mat3{
		(m[4]*m[8] - m[5]*m[7]) * invDet,
		(m[2]*m[7] - m[1]*m[8]) * invDet,
		(m[1]*m[5] - m[2]*m[4]) * invDet,
		(m[5]*m[6] - m[3]*m[8]) * invDet,
		(m[0]*m[8] - m[2]*m[6]) * invDet,
		(m[2]*m[3] - m[0]*m[5]) * invDet,
		(m[3]*m[7] - m[4]*m[6]) * invDet,
		(m[1]*m[6] - m[0]*m[7]) * invDet,
		(m[0]*m[4] - m[1]*m[3]) * invDet,
	}, true
}

// IsOrthonormal reports whether m is a rotation, within tol per entry of m*mᵀ.
func (m Mat3) IsOrthonormal(tol float64) bool {
	p := m.Mul(m.Transpose())
	id := Identity()
	for i := range p {
		if math.Abs(p[i]-id[i]) > tol {
			return false
		}
	}
	return m.Determinant() > 0
}
