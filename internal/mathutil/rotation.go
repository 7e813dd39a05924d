package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// EulerXYZ builds a rotation matrix from Euler XYZ angles (radians):
// X applied first, then Y, then Z, so M = Rz·Ry·Rx.
func EulerXYZ(rx, ry, rz float64) Mat3 {
	return Mat3Mul(Mat3Mul(RotZ(rz), RotY(ry)), RotX(rx))
}

// EulerXYZDeg is EulerXYZ with angles in degrees.
func EulerXYZDeg(v Vec3) Mat3 {
	return EulerXYZ(Deg2Rad(v[0]), Deg2Rad(v[1]), Deg2Rad(v[2]))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}
