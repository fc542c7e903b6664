// Command blackhole renders a Schwarzschild black hole in real time: a
// compute shader integrates one Schwarzschild null geodesic per pixel, and
// the result is composited with a CPU-rebuilt curvature grid. See
// run() for the frame loop.
package main

import (
	"fmt"
	stdmath "math"
	"os"
	"time"

	"github.com/Nate534/black-hole/core"
	"github.com/Nate534/black-hole/internal/opengl"
	reMath "github.com/Nate534/black-hole/math"
	"github.com/Nate534/black-hole/physics"
	"github.com/Nate534/black-hole/scene"
)

const (
	staticScale  = 1.0
	dynamicScale = 0.5

	horizonR, horizonG, horizonB          = 0.0, 0.0, 0.0
	backgroundR, backgroundG, backgroundB = 0.02, 0.02, 0.05
)

func main() {
	os.Exit(run())
}

// run implements the 8-step frame loop: build grid vertices, derive the
// camera, draw the grid, choose/resize the compute target, upload uniforms,
// dispatch compute + barrier, present, swap + poll. Returns the process
// exit code: 0 on clean shutdown, 1 on initialization failure.
func run() int {
	windowConfig := core.DefaultWindowConfig()
	windowConfig.Title = "Black Hole"
	windowConfig.Width = 1280
	windowConfig.Height = 720

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		fmt.Printf("failed to create window: %v\n", err)
		return 1
	}
	defer window.Destroy()

	sc, err := scene.DefaultScene()
	if err != nil {
		fmt.Printf("failed to build scene: %v\n", err)
		return 1
	}

	grid := scene.NewCurvatureGrid(scene.GridDivisions, scene.GridSpacing)

	pipeline, err := opengl.NewPipeline(grid)
	if err != nil {
		fmt.Printf("failed to initialize GPU pipeline: %v\n", err)
		return 1
	}
	defer pipeline.Destroy()

	fbw, fbh := window.GetFramebufferSize()
	orbitCam := scene.NewOrbitCamera(float32(sc.BlackHole.Rs)*30, stdmath.Pi/3, float32(fbw)/float32(fbh))
	freeCam := scene.NewFreeFlyCamera(reMath.Vec3{X: 0, Y: 0, Z: orbitCam.Radius}, stdmath.Pi/3, orbitCam.Aspect)

	input := &scene.InputState{}
	window.SetScrollCallback(func(xoff, yoff float64) {
		input.OnScroll(xoff, yoff)
	})
	window.SetFramebufferSizeCallback(func(width, height int) {
		fbw, fbh = width, height
		orbitCam.UpdateAspect(float32(width), float32(height))
		if height > 0 {
			freeCam.Aspect = float32(width) / float32(height)
		}
	})

	telemetry := newTelemetryServer()
	if err := telemetry.Start(":8787"); err != nil {
		fmt.Printf("telemetry endpoint disabled: %v\n", err)
	}
	defer telemetry.Stop()

	lastTime := time.Now()
	fpsCounter := 0
	fpsLastTime := time.Now()

	fmt.Println("Black Hole — left-drag to orbit, scroll to zoom, F for free-fly (WASD/QE), ESC to quit")

	for !window.ShouldClose() {
		input.BeginFrame()
		window.PollEvents()

		if window.IsKeyPressed(core.KeyEscape) {
			break
		}

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		mouseX, mouseY := window.GetCursorPos()
		dragging := window.IsMouseButtonPressed(0) || window.IsMouseButtonPressed(2)
		input.UpdateCursor(mouseX, mouseY, dragging)
		input.UpdateToggles(window.IsKeyPressed(core.KeyG) || window.IsMouseButtonPressed(1), window.IsKeyPressed(core.KeyF))

		input.MoveForward, input.MoveRight, input.MoveUp = 0, 0, 0
		if input.FreeFly {
			if window.IsKeyPressed(core.KeyW) {
				input.MoveForward++
			}
			if window.IsKeyPressed(core.KeyS) {
				input.MoveForward--
			}
			if window.IsKeyPressed(core.KeyD) {
				input.MoveRight++
			}
			if window.IsKeyPressed(core.KeyA) {
				input.MoveRight--
			}
			if window.IsKeyPressed(core.KeyE) {
				input.MoveUp++
			}
			if window.IsKeyPressed(core.KeyQ) {
				input.MoveUp--
			}
			if input.Dragging {
				freeCam.Look(input.DragDeltaX*0.003, -input.DragDeltaY*0.003)
			}
			freeCam.Move(input.MoveForward, input.MoveRight, input.MoveUp, dt)
		} else {
			orbitCam.ResetMoving()
			if input.Dragging {
				orbitCam.Orbit(input.DragDeltaX, input.DragDeltaY)
			}
			if input.ScrollDelta != 0 {
				orbitCam.Zoom(input.ScrollDelta)
			}
		}

		// 1. Build grid vertices from the current scene.
		gridVertices := grid.BuildVertices(sc.PhysicsScene())

		// 2. Derive camera position and view/projection matrices.
		var (
			camPos             reMath.Vec3
			forward, right, up reMath.Vec3
			tanHalfFOV, aspect float32
			viewProj           reMath.Mat4
			moving             bool
		)
		if input.FreeFly {
			camPos = freeCam.Position
			forward, right, up = freeCam.Forward(), freeCam.Right(), freeCam.Up()
			tanHalfFOV = float32(stdmath.Tan(float64(freeCam.FOV) / 2))
			aspect = freeCam.Aspect
			viewProj = freeCam.ViewMatrix().Mul(freeCam.ProjectionMatrix())
			moving = input.MoveForward != 0 || input.MoveRight != 0 || input.MoveUp != 0 || input.Dragging
		} else {
			camPos = orbitCam.Position()
			forward, right, up = orbitCam.Basis()
			tanHalfFOV = orbitCam.TanHalfFOV()
			aspect = orbitCam.Aspect
			viewProj = orbitCam.ViewMatrix().Mul(orbitCam.ProjectionMatrix())
			moving = orbitCam.Moving
		}

		// 3. Draw the grid.
		pipeline.DrawGrid(gridVertices, viewProj)

		// 4. Choose compute target size; reallocate only on change.
		cw, ch := computeTargetSize(fbw, fbh, moving)
		reallocated := pipeline.EnsureComputeTarget(cw, ch)

		// 5. Upload camera, disk, and objects uniforms.
		camBlock := opengl.CameraBlock{
			Position:   camPos,
			Right:      right,
			Up:         up,
			Forward:    forward,
			TanHalfFOV: tanHalfFOV,
			Aspect:     aspect,
			Moving:     movingFloat(moving),
		}
		pipeline.UploadCamera(camBlock)
		pipeline.UploadDisk(opengl.DiskBlockFromDisk(sc.Disk))
		pipeline.UploadObjects(opengl.ObjectsBlockFromObjects(sc.Objects))

		// 6. Dispatch compute + barrier.
		pipeline.Dispatch(opengl.DispatchParams{
			Rs:              float32(sc.BlackHole.Rs),
			EscapeR:         float32(physics.EscapeRadius(sc.BlackHole.Rs)),
			StepBudget:      physics.DefaultStepBudget,
			HorizonColor:    [3]float32{horizonR, horizonG, horizonB},
			BackgroundColor: [3]float32{backgroundR, backgroundG, backgroundB},
		})

		// 7. Present.
		pipeline.PresentFullscreen()

		// 8. Swap buffers; input was already polled at loop top.
		window.SwapBuffers()

		gx, gy := pipeline.DispatchGroups()
		telemetry.Publish(frameSnapshot{
			FrameTimeMS:  float64(dt) * 1000,
			DispatchX:    gx,
			DispatchY:    gy,
			ComputeW:     cw,
			ComputeH:     ch,
			Reallocated:  reallocated,
			FenceOK:      opengl.WaitFence(2 * time.Millisecond),
			CameraMoving: moving,
		})

		fpsCounter++
		if now.Sub(fpsLastTime) >= time.Second {
			window.SetTitle(fmt.Sprintf("Black Hole — FPS: %d", fpsCounter))
			fpsCounter = 0
			fpsLastTime = now
		}
	}

	return 0
}

// computeTargetSize picks the compute target resolution: half resolution
// while the camera is moving, full resolution otherwise.
func computeTargetSize(fbw, fbh int, moving bool) (int, int) {
	scale := staticScale
	if moving {
		scale = dynamicScale
	}
	w := int(float64(fbw) * scale)
	h := int(float64(fbh) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func movingFloat(moving bool) float32 {
	if moving {
		return 1
	}
	return 0
}
