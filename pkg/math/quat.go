package math

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// pureVectorTolerance is the largest scalar part a quaternion may carry
// and still be read back as a 3D vector.
const pureVectorTolerance = 1e-7

// ErrNotPureVector is returned when a quaternion with a non-zero scalar
// part is converted to a vector.
var ErrNotPureVector = errors.New("quaternion is not a pure vector")

// Quat represents a quaternion as a scalar part and a vector part.
type Quat struct {
	Scalar float64
	Vector Vec3
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{Scalar: 1}
}

// QuatFromAxisAngle creates a unit rotation quaternion.
// axis is normalized internally, angle is in radians.
// A zero axis has no direction to rotate around and yields the identity.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	unit := axis.Normalize()
	if unit == (Vec3{}) {
		return QuatIdentity()
	}
	halfAngle := angle / 2
	s := math.Sin(halfAngle)
	return Quat{
		Scalar: math.Cos(halfAngle),
		Vector: unit.Scale(s),
	}
}

// QuatFromVector embeds a 3D point as a pure quaternion (scalar 0).
func QuatFromVector(v Vec3) Quat {
	return Quat{Vector: v}
}

func (q Quat) number() quat.Number {
	return quat.Number{Real: q.Scalar, Imag: q.Vector.X, Jmag: q.Vector.Y, Kmag: q.Vector.Z}
}

func fromNumber(n quat.Number) Quat {
	return Quat{Scalar: n.Real, Vector: Vec3{n.Imag, n.Jmag, n.Kmag}}
}

// Conjugate negates the vector part.
func (q Quat) Conjugate() Quat {
	return fromNumber(quat.Conj(q.number()))
}

// Mul returns the Hamilton product q * other.
func (q Quat) Mul(other Quat) Quat {
	return fromNumber(quat.Mul(q.number(), other.number()))
}

// Norm returns the quaternion modulus.
func (q Quat) Norm() float64 {
	return quat.Abs(q.number())
}

// Normalize returns a unit quaternion.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return QuatIdentity()
	}
	return fromNumber(quat.Scale(1/n, q.number()))
}

// ToVector returns the vector part of a pure quaternion.
func (q Quat) ToVector() (Vec3, error) {
	if math.Abs(q.Scalar) >= pureVectorTolerance {
		return Vec3{}, fmt.Errorf("%w: scalar part %g", ErrNotPureVector, q.Scalar)
	}
	return q.Vector, nil
}

// Rotate rotates p by the unit quaternion q (q * p * q̄).
func (q Quat) Rotate(p Vec3) Vec3 {
	return q.Mul(QuatFromVector(p)).Mul(q.Conjugate()).Vector
}

// ToMat3 converts a unit quaternion to a rotation matrix.
func (q Quat) ToMat3() Mat3 {
	q0 := q.Scalar
	q1, q2, q3 := q.Vector.X, q.Vector.Y, q.Vector.Z

	return Mat3{
		q0*q0 + q1*q1 - q2*q2 - q3*q3, 2 * (q1*q2 - q0*q3), 2 * (q1*q3 + q0*q2),
		2 * (q1*q2 + q0*q3), q0*q0 + q2*q2 - q1*q1 - q3*q3, 2 * (q2*q3 - q0*q1),
		2 * (q1*q3 - q0*q2), 2 * (q2*q3 + q0*q1), q0*q0 + q3*q3 - q1*q1 - q2*q2,
	}
}
