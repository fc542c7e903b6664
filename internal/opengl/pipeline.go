package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.6-core/gl"

	"github.com/Nate534/black-hole/core"
	reMath "github.com/Nate534/black-hole/math"
	"github.com/Nate534/black-hole/scene"
)

const (
	cameraBinding  = 1
	diskBinding    = 2
	objectsBinding = 3

	computeImageUnit   = uint32(0)
	presentTextureUnit = int32(0)

	workgroupSize = 16
)

// Pipeline owns every GPU handle the renderer needs: the three shader
// programs, the compute output texture, the three uniform blocks, and the
// curvature grid's VAO/VBO/EBO. Grounded on
// internal/opengl/renderer.go's shader-compile-with-info-log pattern and
// on original_source/python/renderer.py's Engine, which owns the
// equivalent set of handles in one object.
type Pipeline struct {
	computeProgram uint32
	presentProgram uint32
	gridProgram    uint32

	cameraUBO  uint32
	diskUBO    uint32
	objectsUBO uint32

	computeTex         uint32
	computeW, computeH int
	computeResizeCount int // instrumentation for the "reallocates at most once per change" check

	presentVAO uint32 // empty VAO required by core profile for attributeless draws

	gridVAO        uint32
	gridEBO        uint32
	gridVBO        *DynamicBuffer
	gridIndexCount int32

	// compute-program uniform locations
	rsLoc, escapeRLoc, stepBudgetLoc    int32
	horizonColorLoc, backgroundColorLoc int32

	// present-program uniform locations
	computeTexLoc int32

	// grid-program uniform locations
	viewProjLoc int32
}

// NewPipeline compiles all three programs, allocates the three uniform
// buffer objects at their fixed sizes, and builds the grid's static index
// buffer. Any failure releases whatever was already acquired before
// returning.
func NewPipeline(grid *scene.CurvatureGrid) (*Pipeline, error) {
	if err := gl.Init(); err != nil {
		return nil, &InitError{Stage: "gl.Init", Err: err}
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	p := &Pipeline{}

	computeProg, err := newComputeProgram(computeShaderSrc)
	if err != nil {
		return nil, &InitError{Stage: "compute program", Log: err.Error()}
	}
	p.computeProgram = computeProg

	presentProg, err := newProgram(presentVertSrc, presentFragSrc)
	if err != nil {
		p.Destroy()
		return nil, &InitError{Stage: "present program", Log: err.Error()}
	}
	p.presentProgram = presentProg

	gridProg, err := newProgram(gridVertSrc, gridFragSrc)
	if err != nil {
		p.Destroy()
		return nil, &InitError{Stage: "grid program", Log: err.Error()}
	}
	p.gridProgram = gridProg

	if err := p.initUniformBuffers(); err != nil {
		p.Destroy()
		return nil, err
	}

	if err := p.initGrid(grid); err != nil {
		p.Destroy()
		return nil, err
	}

	gl.GenVertexArrays(1, &p.presentVAO)
	if p.presentVAO == 0 {
		p.Destroy()
		return nil, &AllocationError{Resource: "present VAO"}
	}

	p.rsLoc = gl.GetUniformLocation(p.computeProgram, gl.Str("uRs\x00"))
	p.escapeRLoc = gl.GetUniformLocation(p.computeProgram, gl.Str("uEscapeR\x00"))
	p.stepBudgetLoc = gl.GetUniformLocation(p.computeProgram, gl.Str("uStepBudget\x00"))
	p.horizonColorLoc = gl.GetUniformLocation(p.computeProgram, gl.Str("uHorizonColor\x00"))
	p.backgroundColorLoc = gl.GetUniformLocation(p.computeProgram, gl.Str("uBackgroundColor\x00"))
	p.computeTexLoc = gl.GetUniformLocation(p.presentProgram, gl.Str("computeTex\x00"))
	p.viewProjLoc = gl.GetUniformLocation(p.gridProgram, gl.Str("viewProj\x00"))

	return p, nil
}

func (p *Pipeline) initUniformBuffers() error {
	buffers := []struct {
		handle *uint32
		size   int
	}{
		{&p.cameraUBO, CameraBlockSize},
		{&p.diskUBO, DiskBlockSize},
		{&p.objectsUBO, ObjectsBlockSize},
	}
	for _, b := range buffers {
		gl.GenBuffers(1, b.handle)
		if *b.handle == 0 {
			return &AllocationError{Resource: "uniform buffer"}
		}
		gl.BindBuffer(gl.UNIFORM_BUFFER, *b.handle)
		gl.BufferData(gl.UNIFORM_BUFFER, b.size, nil, gl.DYNAMIC_DRAW)
	}
	return nil
}

func (p *Pipeline) initGrid(grid *scene.CurvatureGrid) error {
	gl.GenVertexArrays(1, &p.gridVAO)
	if p.gridVAO == 0 {
		return &AllocationError{Resource: "grid VAO"}
	}

	vbo, err := NewDynamicBuffer(gl.ARRAY_BUFFER, gl.DYNAMIC_DRAW)
	if err != nil {
		return err
	}
	p.gridVBO = vbo

	gl.GenBuffers(1, &p.gridEBO)
	if p.gridEBO == 0 {
		return &AllocationError{Resource: "grid EBO"}
	}

	indexBytes := make([]byte, len(grid.EdgeIndices)*4)
	for i, idx := range grid.EdgeIndices {
		indexBytes[i*4+0] = byte(idx)
		indexBytes[i*4+1] = byte(idx >> 8)
		indexBytes[i*4+2] = byte(idx >> 16)
		indexBytes[i*4+3] = byte(idx >> 24)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.gridEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indexBytes), gl.Ptr(indexBytes), gl.STATIC_DRAW)
	p.gridIndexCount = int32(len(grid.EdgeIndices))

	const stride = int32(7 * 4) // pos(3) + color(4), float32
	gl.BindVertexArray(p.gridVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.gridVBO.Handle())
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(12))
	gl.BindVertexArray(0)

	return nil
}

// UploadCamera sub-data writes the camera uniform block.
func (p *Pipeline) UploadCamera(b CameraBlock) {
	gl.BindBuffer(gl.UNIFORM_BUFFER, p.cameraUBO)
	data := b.Bytes()
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBufferBase(gl.UNIFORM_BUFFER, cameraBinding, p.cameraUBO)
}

// UploadDisk sub-data writes the disk uniform block.
func (p *Pipeline) UploadDisk(b DiskBlock) {
	gl.BindBuffer(gl.UNIFORM_BUFFER, p.diskUBO)
	data := b.Bytes()
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBufferBase(gl.UNIFORM_BUFFER, diskBinding, p.diskUBO)
}

// UploadObjects sub-data writes the objects uniform block.
func (p *Pipeline) UploadObjects(b ObjectsBlock) {
	gl.BindBuffer(gl.UNIFORM_BUFFER, p.objectsUBO)
	data := b.Bytes()
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBufferBase(gl.UNIFORM_BUFFER, objectsBinding, p.objectsUBO)
}

// EnsureComputeTarget (re)allocates the compute output texture only when
// (w, h) differs from the current allocation. Returns true iff a
// reallocation occurred.
func (p *Pipeline) EnsureComputeTarget(w, h int) bool {
	if w == p.computeW && h == p.computeH && p.computeTex != 0 {
		return false
	}

	if p.computeTex != 0 {
		gl.DeleteTextures(1, &p.computeTex)
	}

	gl.GenTextures(1, &p.computeTex)
	gl.BindTexture(gl.TEXTURE_2D, p.computeTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	p.computeW, p.computeH = w, h
	p.computeResizeCount++
	return true
}

// ComputeResizeCount reports how many times EnsureComputeTarget has
// actually reallocated the texture.
func (p *Pipeline) ComputeResizeCount() int { return p.computeResizeCount }

// DispatchParams bundles the scalar compute-shader uniforms that are not
// part of the three fixed uniform blocks.
type DispatchParams struct {
	Rs              float32
	EscapeR         float32
	StepBudget      int32
	HorizonColor    [3]float32
	BackgroundColor [3]float32
}

// Dispatch binds the compute texture as an image-write target, sets the
// scalar uniforms, dispatches ⌈w/16⌉×⌈h/16⌉×1 work groups, and inserts the
// image-access memory barrier required before the present draw reads the
// texture.
func (p *Pipeline) Dispatch(params DispatchParams) {
	gl.UseProgram(p.computeProgram)
	gl.Uniform1f(p.rsLoc, params.Rs)
	gl.Uniform1f(p.escapeRLoc, params.EscapeR)
	gl.Uniform1i(p.stepBudgetLoc, params.StepBudget)
	gl.Uniform3f(p.horizonColorLoc, params.HorizonColor[0], params.HorizonColor[1], params.HorizonColor[2])
	gl.Uniform3f(p.backgroundColorLoc, params.BackgroundColor[0], params.BackgroundColor[1], params.BackgroundColor[2])

	gl.BindImageTexture(computeImageUnit, p.computeTex, 0, false, 0, gl.WRITE_ONLY, gl.RGBA8)

	groupsX := uint32(ceilDiv(p.computeW, workgroupSize))
	groupsY := uint32(ceilDiv(p.computeH, workgroupSize))
	gl.DispatchCompute(groupsX, groupsY, 1)
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT)
}

// DispatchGroups reports the work-group counts the next Dispatch call will
// use.
func (p *Pipeline) DispatchGroups() (x, y int) {
	return ceilDiv(p.computeW, workgroupSize), ceilDiv(p.computeH, workgroupSize)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// PresentFullscreen samples the compute texture into the default
// framebuffer with a three-vertex, attributeless draw, using the
// fullscreen-triangle-via-gl_VertexID trick.
func (p *Pipeline) PresentFullscreen() {
	gl.UseProgram(p.presentProgram)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(presentTextureUnit))
	gl.BindTexture(gl.TEXTURE_2D, p.computeTex)
	gl.Uniform1i(p.computeTexLoc, presentTextureUnit)

	gl.BindVertexArray(p.presentVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

// DrawGrid rebuilds the grid's per-frame vertex buffer through
// DynamicBuffer's growth policy and draws it as translucent lines with
// depth testing disabled.
func (p *Pipeline) DrawGrid(vertices []core.Vertex, viewProj reMath.Mat4) {
	data := encodeGridVertices(vertices)
	gl.BindVertexArray(p.gridVAO)
	p.gridVBO.Upload(data)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(p.gridProgram)
	gl.UniformMatrix4fv(p.viewProjLoc, 1, false, (*float32)(unsafe.Pointer(&viewProj[0][0])))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.gridEBO)
	gl.DrawElements(gl.LINES, p.gridIndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases every GPU handle: the grid buffers and vertex arrays,
// the present vertex array and the compute texture first, then the uniform
// buffers and programs in the reverse of their acquisition order. It
// tolerates partially-constructed Pipelines so NewPipeline can call it on
// any failure path.
func (p *Pipeline) Destroy() {
	if p.gridVBO != nil {
		p.gridVBO.Destroy()
	}
	if p.gridEBO != 0 {
		gl.DeleteBuffers(1, &p.gridEBO)
	}
	if p.gridVAO != 0 {
		gl.DeleteVertexArrays(1, &p.gridVAO)
	}
	if p.presentVAO != 0 {
		gl.DeleteVertexArrays(1, &p.presentVAO)
	}
	if p.computeTex != 0 {
		gl.DeleteTextures(1, &p.computeTex)
	}
	if p.objectsUBO != 0 {
		gl.DeleteBuffers(1, &p.objectsUBO)
	}
	if p.diskUBO != 0 {
		gl.DeleteBuffers(1, &p.diskUBO)
	}
	if p.cameraUBO != 0 {
		gl.DeleteBuffers(1, &p.cameraUBO)
	}
	if p.gridProgram != 0 {
		gl.DeleteProgram(p.gridProgram)
	}
	if p.presentProgram != 0 {
		gl.DeleteProgram(p.presentProgram)
	}
	if p.computeProgram != 0 {
		gl.DeleteProgram(p.computeProgram)
	}
}

func encodeGridVertices(vertices []core.Vertex) []byte {
	buf := make([]byte, len(vertices)*7*4)
	off := 0
	for _, v := range vertices {
		putFloat32(buf[off:off+4], v.Position.X)
		putFloat32(buf[off+4:off+8], v.Position.Y)
		putFloat32(buf[off+8:off+12], v.Position.Z)
		putFloat32(buf[off+12:off+16], v.Color.R)
		putFloat32(buf[off+16:off+20], v.Color.G)
		putFloat32(buf[off+20:off+24], v.Color.B)
		putFloat32(buf[off+24:off+28], v.Color.A)
		off += 28
	}
	return buf
}

// newProgram compiles and links a vertex+fragment program.
func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

// newComputeProgram compiles and links a single-stage compute program.
func newComputeProgram(src string) (uint32, error) {
	shader, err := compileShader(src, gl.COMPUTE_SHADER)
	if err != nil {
		return 0, fmt.Errorf("compute: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, shader)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(shader)
	return prog, nil
}

// compileShader compiles one shader stage, surfacing the raw info log on
// failure. A leading BOM and leading whitespace are trimmed so the source
// starts at its #version line.
func compileShader(src string, shaderType uint32) (uint32, error) {
	src = strings.TrimLeft(src, "\xef\xbb\xbf \t\r\n")
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
