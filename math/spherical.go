package math

import "math"

// CartesianToSpherical converts a Cartesian position to physics (r, theta,
// phi) convention: theta is the polar angle from +Z, phi is the azimuthal
// angle in the XY plane. Used by the geodesic integrator's initialization,
// which requires float64 precision even though the renderer's Vec3 is
// float32.
func CartesianToSpherical(x, y, z float64) (r, theta, phi float64) {
	r = math.Sqrt(x*x + y*y + z*z)
	theta = math.Acos(z / r)
	phi = math.Atan2(y, x)
	return
}

// SphericalToCartesian is the inverse of CartesianToSpherical.
func SphericalToCartesian(r, theta, phi float64) (x, y, z float64) {
	sinTheta := math.Sin(theta)
	x = r * sinTheta * math.Cos(phi)
	y = r * sinTheta * math.Sin(phi)
	z = r * math.Cos(theta)
	return
}
