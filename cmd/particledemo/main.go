// Command particledemo is a standalone, non-interacting demo of the
// Newtonian particle engine (physics.GravityParticle/Integrate): a ring of
// test particles orbits a BlackHole under plain inverse-square gravity,
// rendered as billboards by internal/opengl.ParticleRenderer. It shares no
// state with cmd/blackhole's geodesic renderer — it exists only to compare
// Euler/Verlet/RK4 drift and to exercise the GPU buffer-growth policy at a
// second call site (the particle renderer's quad VBO).
package main

import (
	"fmt"
	stdmath "math"
	"math/rand"
	"os"
	"time"

	"github.com/Nate534/black-hole/core"
	"github.com/Nate534/black-hole/internal/opengl"
	reMath "github.com/Nate534/black-hole/math"
	"github.com/Nate534/black-hole/physics"
	"github.com/Nate534/black-hole/scene"
)

const particleCount = 200

func main() {
	os.Exit(run())
}

func run() int {
	windowConfig := core.DefaultWindowConfig()
	windowConfig.Title = "Particle Demo"
	windowConfig.Width = 1024
	windowConfig.Height = 768

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		fmt.Printf("failed to create window: %v\n", err)
		return 1
	}
	defer window.Destroy()

	bh, err := physics.NewBlackHole(scene.SagAMass, reMath.Vec3Zero)
	if err != nil {
		fmt.Printf("failed to build black hole: %v\n", err)
		return 1
	}

	particles := seedOrbitRing(bh, particleCount)
	method := physics.IntegratorRK4
	methodNames := map[physics.IntegratorMethod]string{
		physics.IntegratorEuler:  "Euler",
		physics.IntegratorVerlet: "Verlet",
		physics.IntegratorRK4:    "RK4",
	}

	renderer, err := opengl.NewParticleRenderer()
	if err != nil {
		fmt.Printf("failed to initialize particle renderer: %v\n", err)
		return 1
	}
	defer renderer.Destroy()

	fire := scene.NewParticleEmitter(2048)
	fire.Rate = 300

	fbw, fbh := window.GetFramebufferSize()
	cam := scene.NewOrbitCamera(float32(bh.Rs)*40, stdmath.Pi/3, float32(fbw)/float32(fbh))
	window.SetFramebufferSizeCallback(func(width, height int) {
		cam.UpdateAspect(float32(width), float32(height))
	})
	window.SetScrollCallback(func(xoff, yoff float64) {
		cam.Zoom(float32(yoff))
	})

	var (
		prevMouseX, prevMouseY float64
		cursorInit             bool
		prevMethodKey          bool
	)

	lastTime := time.Now()
	fmt.Println("Particle Demo — left-drag to orbit, scroll to zoom, M to cycle integrator, ESC to quit")

	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(core.KeyEscape) {
			break
		}

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		mx, my := window.GetCursorPos()
		if !cursorInit {
			prevMouseX, prevMouseY = mx, my
			cursorInit = true
		}
		if window.IsMouseButtonPressed(0) {
			cam.Orbit(float32(mx-prevMouseX), float32(my-prevMouseY))
		}
		prevMouseX, prevMouseY = mx, my
		cam.ResetMoving()

		methodKey := window.IsKeyPressed(core.KeyM)
		if methodKey && !prevMethodKey {
			method = (method + 1) % 3
			fmt.Printf("integrator: %s\n", methodNames[method])
		}
		prevMethodKey = methodKey

		// Advance the orbit physics in fixed substeps so a dropped frame
		// doesn't blow up the integrator with a single huge dt.
		const substep = 1.0 / 120.0
		remaining := float64(dt)
		for remaining > 0 {
			step := remaining
			if step > substep {
				step = substep
			}
			physics.Integrate(particles, bh, step, method)
			remaining -= step
		}

		fire.Position = reMath.Vec3{}
		fire.Update(dt)

		view := cam.ViewMatrix()
		proj := cam.ProjectionMatrix()

		renderer.DrawGravityParticles(particles, float32(bh.Rs)*0.3, [4]float32{0.5, 0.8, 1.0, 0.9}, view, proj)
		renderer.Draw(fire, view, proj)

		window.SwapBuffers()
	}

	return 0
}

// seedOrbitRing places n particles on circular Keplerian orbits at
// increasing radii, each with a random inclination, so Euler/Verlet/RK4
// drift is visible as orbits decay or grow at different rates.
func seedOrbitRing(bh *physics.BlackHole, n int) []*physics.GravityParticle {
	rng := rand.New(rand.NewSource(7))
	particles := make([]*physics.GravityParticle, 0, n)
	minR := bh.Rs * 6
	maxR := bh.Rs * 30

	for i := 0; i < n; i++ {
		r := minR + (maxR-minR)*rng.Float64()
		theta := rng.Float64() * 2 * stdmath.Pi
		incl := (rng.Float64() - 0.5) * 0.6

		pos := reMath.Vec3f64{
			X: r * stdmath.Cos(theta),
			Y: r * stdmath.Sin(theta) * stdmath.Sin(incl),
			Z: r * stdmath.Sin(theta) * stdmath.Cos(incl),
		}
		speed := stdmath.Sqrt(physics.G * bh.Mass / r)
		vel := reMath.Vec3f64{
			X: -speed * stdmath.Sin(theta),
			Y: speed * stdmath.Cos(theta) * stdmath.Sin(incl),
			Z: speed * stdmath.Cos(theta) * stdmath.Cos(incl),
		}

		particles = append(particles, &physics.GravityParticle{
			Position: pos,
			Velocity: vel,
			Mass:     1,
			Active:   true,
		})
	}
	return particles
}
