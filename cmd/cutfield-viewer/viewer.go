package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cutfield/internal/config"
	"cutfield/internal/export"
	"cutfield/internal/graphics"
	"cutfield/internal/input"
	"cutfield/internal/layout"
	"cutfield/internal/meshing"
	"cutfield/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const (
	orbitSpeed = 1.5   // radians per second
	dragSpeed  = 0.006 // radians per pixel
	zoomSpeed  = 1.8   // distance factor per second
	exportPath = "cutfield.stl"
)

var (
	background = mgl32.Vec3{0.86, 0.83, 0.77}
	lightDir   = mgl32.Vec3{-0.4, -1, -0.6}
)

type viewer struct {
	window *glfw.Window
	design *config.Design
	log    *slog.Logger

	shader  *graphics.Shader
	camera  *graphics.Camera
	input   *input.Manager
	pool    *meshing.Pool
	buffers map[uuid.UUID]*graphics.FieldBuffers
}

func newViewer(window *glfw.Window, design *config.Design, log *slog.Logger) (*viewer, error) {
	shader, err := graphics.NewShader(graphics.FieldVertexShader, graphics.FieldFragmentShader)
	if err != nil {
		return nil, err
	}

	w, h := window.GetFramebufferSize()
	v := &viewer{
		window:  window,
		design:  design,
		log:     log,
		shader:  shader,
		camera:  graphics.NewCamera(w, h),
		input:   input.NewManager(),
		pool:    meshing.NewPool(design.Workers, log),
		buffers: make(map[uuid.UUID]*graphics.FieldBuffers),
	}

	// Load runs on this thread, so hooks may touch GL.
	v.pool.OnRelease(func(gen *meshing.Generation) {
		if fb, ok := v.buffers[gen.ID]; ok {
			fb.Release()
			delete(v.buffers, gen.ID)
		}
	})

	v.input.Attach(window)
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if width == 0 || height == 0 {
			return
		}
		gl.Viewport(0, 0, int32(width), int32(height))
		v.camera.AspectRatio = float32(width) / float32(height)
	})

	gl.Viewport(0, 0, int32(w), int32(h))
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(background.X(), background.Y(), background.Z(), 1)
	return v, nil
}

// Regenerate lays out a new field and replaces the one on screen. The first
// call uses the configured seed.
func (v *viewer) Regenerate() error {
	defer profiling.Track("viewer.Regenerate")()

	cfg, err := v.design.Layout()
	if err != nil {
		return err
	}
	seed := v.design.ResolveSeed()
	v.design.Seed = nil

	grid, err := layout.Generate(cfg, layout.NewSource(seed))
	if err != nil {
		return err
	}
	gen, err := v.pool.Load(context.Background(), grid)
	if err != nil {
		return err
	}
	v.buffers[gen.ID] = graphics.UploadGeneration(gen)

	lo, hi := fieldBounds(gen)
	v.camera.Frame(lo, hi)
	v.window.SetTitle(fmt.Sprintf("cutfield %dx%d seed %d", grid.Width, grid.Height, seed))
	v.log.Info("field generated", "id", grid.ID, "seed", seed, "blocks", len(gen.Blocks), "triangles", gen.TriangleCount())
	return nil
}

func (v *viewer) export() {
	gen := v.pool.Current()
	if gen == nil {
		return
	}
	path := v.design.Output.STL
	if path == "" {
		path = exportPath
	}
	if err := export.SaveSTL(path, gen.Meshes()...); err != nil {
		v.log.Error("export failed", "path", path, "err", err)
		return
	}
	v.log.Info("field exported", "path", path, "triangles", gen.TriangleCount())
}

// Loop renders until the window closes.
func (v *viewer) Loop() {
	last := time.Now()
	lastReport := last
	for !v.window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		v.update(dt)
		v.render()

		func() { defer profiling.Track("glfw.SwapBuffers")(); v.window.SwapBuffers() }()
		v.input.PostUpdate()
		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

		if now.Sub(lastReport) >= 10*time.Second {
			v.log.Debug("frame timings",
				"render", profiling.SumWithPrefix("viewer."),
				"glfw", profiling.SumWithPrefix("glfw."),
				"meshing", profiling.SumWithPrefix("meshing."),
				"top", profiling.TopN(5))
			profiling.Reset()
			lastReport = now
		}
	}
}

func (v *viewer) update(dt float32) {
	in := v.input
	if in.JustPressed(input.ActionQuit) {
		v.window.SetShouldClose(true)
	}
	if in.JustPressed(input.ActionRegenerate) {
		if err := v.Regenerate(); err != nil {
			v.log.Error("regenerate failed", "err", err)
		}
	}
	if in.JustPressed(input.ActionExport) {
		v.export()
	}

	var yaw, pitch float32
	if in.IsActive(input.ActionOrbitLeft) {
		yaw -= orbitSpeed * dt
	}
	if in.IsActive(input.ActionOrbitRight) {
		yaw += orbitSpeed * dt
	}
	if in.IsActive(input.ActionOrbitUp) {
		pitch += orbitSpeed * dt
	}
	if in.IsActive(input.ActionOrbitDown) {
		pitch -= orbitSpeed * dt
	}
	if in.IsActive(input.ActionDrag) {
		dx, dy := in.CursorDelta()
		yaw -= float32(dx) * dragSpeed
		pitch += float32(dy) * dragSpeed
	}
	v.camera.Orbit(yaw, pitch)

	if in.IsActive(input.ActionZoomIn) {
		v.camera.Zoom(1 / (1 + (zoomSpeed-1)*dt))
	}
	if in.IsActive(input.ActionZoomOut) {
		v.camera.Zoom(1 + (zoomSpeed-1)*dt)
	}
}

func (v *viewer) render() {
	defer profiling.Track("viewer.render")()

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gen := v.pool.Current()
	if gen == nil {
		return
	}
	fb := v.buffers[gen.ID]

	v.shader.Use()
	v.shader.SetMatrix4("view", v.camera.GetViewMatrix())
	v.shader.SetMatrix4("proj", v.camera.GetProjectionMatrix())
	v.shader.SetVector3("lightDir", lightDir)
	fb.Draw()
}

// Close frees the current generation's buffers and the shader.
func (v *viewer) Close() {
	v.pool.Close()
	v.shader.Delete()
}

func fieldBounds(gen *meshing.Generation) (lo, hi mgl32.Vec3) {
	for i, b := range gen.Blocks {
		blo, bhi := b.Mesh.Bounds()
		if i == 0 {
			lo, hi = blo, bhi
			continue
		}
		for k := range 3 {
			lo[k] = min(lo[k], blo[k])
			hi[k] = max(hi[k], bhi[k])
		}
	}
	return lo, hi
}
