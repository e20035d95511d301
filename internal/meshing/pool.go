package meshing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"cutfield/internal/geometry"
	"cutfield/internal/layout"
	"cutfield/internal/profiling"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ErrClosed is returned by Load after Close.
var ErrClosed = errors.New("meshing: pool closed")

// Block is one placed piece in field space.
type Block struct {
	X, Z  int
	Cell  layout.Cell
	Color layout.Color
	Mesh  *geometry.Mesh
}

// Generation holds every mesh derived from one grid. It is valid until the
// pool releases it.
type Generation struct {
	ID     uuid.UUID
	Grid   *layout.Grid
	Blocks []Block // row-major, same order as Grid.Cells

	released atomic.Bool
}

// Released reports whether the generation has been replaced or closed.
func (g *Generation) Released() bool {
	return g.released.Load()
}

// TriangleCount sums the triangles of all blocks.
func (g *Generation) TriangleCount() int {
	n := 0
	for _, b := range g.Blocks {
		n += len(b.Mesh.Triangles)
	}
	return n
}

// Meshes returns the block meshes in cell order.
func (g *Generation) Meshes() []*geometry.Mesh {
	out := make([]*geometry.Mesh, len(g.Blocks))
	for i, b := range g.Blocks {
		out[i] = b.Mesh
	}
	return out
}

// ReleaseFunc frees whatever a consumer derived from a generation, such as
// GPU buffers. It runs exactly once per generation.
type ReleaseFunc func(*Generation)

// Pool builds block meshes for a grid on a worker pool and keeps exactly one
// generation current.
type Pool struct {
	workers pond.Pool
	log     *slog.Logger

	// loadMu serializes Load so each call releases its predecessor.
	loadMu sync.Mutex

	mu      sync.Mutex
	current *Generation
	hooks   []ReleaseFunc
	closed  bool
}

// NewPool creates a pool with the given number of workers; workers <= 0
// uses one per CPU.
func NewPool(workers int, log *slog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pool{
		workers: pond.NewPool(workers),
		log:     log,
	}
}

// OnRelease registers fn to run whenever a generation is released.
func (p *Pool) OnRelease(fn ReleaseFunc) {
	p.mu.Lock()
	p.hooks = append(p.hooks, fn)
	p.mu.Unlock()
}

// Current returns the live generation, or nil.
func (p *Pool) Current() *Generation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Load replaces the current generation with meshes for g.
//
// Every cell is validated first; an invalid grid leaves the current
// generation untouched. Otherwise the current generation is released before
// the new meshes are built. If ctx is cancelled during the build, no
// generation is current afterwards. Concurrent calls run one at a time.
func (p *Pool) Load(ctx context.Context, g *layout.Grid) (*Generation, error) {
	defer profiling.Track("meshing.Load")()

	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	if err := validate(g); err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	prev := p.current
	p.current = nil
	hooks := slices.Clone(p.hooks)
	p.mu.Unlock()

	if prev != nil {
		p.release(prev, hooks)
	}

	gen, err := p.build(ctx, g)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.release(gen, hooks)
		return nil, ErrClosed
	}
	p.current = gen
	p.mu.Unlock()

	p.log.Debug("generation loaded", "id", gen.ID, "blocks", len(gen.Blocks), "triangles", gen.TriangleCount())
	return gen, nil
}

// Close releases the current generation and stops the workers.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	prev := p.current
	p.current = nil
	hooks := slices.Clone(p.hooks)
	p.mu.Unlock()

	if prev != nil {
		p.release(prev, hooks)
	}
	p.workers.StopAndWait()
}

func (p *Pool) release(gen *Generation, hooks []ReleaseFunc) {
	if !gen.released.CompareAndSwap(false, true) {
		return
	}
	for _, fn := range hooks {
		fn(gen)
	}
	p.log.Debug("generation released", "id", gen.ID)
}

// build meshes one row per task. Rows write disjoint slots of Blocks.
func (p *Pool) build(ctx context.Context, g *layout.Grid) (*Generation, error) {
	gen := &Generation{
		ID:     g.ID,
		Grid:   g,
		Blocks: make([]Block, len(g.Cells)),
	}

	tasks := make([]pond.Task, 0, g.Height)
	for z := range g.Height {
		tasks = append(tasks, p.workers.SubmitErr(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := range g.Width {
				m, err := Place(g, x, z)
				if err != nil {
					return err
				}
				c := g.At(x, z)
				gen.Blocks[g.Index(x, z)] = Block{X: x, Z: z, Cell: c, Color: g.Color(c), Mesh: m}
			}
			return nil
		}))
	}

	var errs []error
	for _, t := range tasks {
		if err := t.Wait(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("build generation %s: %w", g.ID, errors.Join(errs...))
	}
	return gen, nil
}

func validate(g *layout.Grid) error {
	if g == nil || g.Width <= 0 || g.Height <= 0 || len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("%w: malformed grid", layout.ErrInvalidParameter)
	}
	for z := range g.Height {
		for x := range g.Width {
			c := g.At(x, z)
			if c.CutAngleBucket < 0 || c.CutAngleBucket >= layout.NumBuckets ||
				c.ColorBucket < 0 || c.ColorBucket >= len(g.ColorBuckets) {
				return fmt.Errorf("%w: cell (%d, %d) buckets out of range", layout.ErrInvalidParameter, x, z)
			}
			if err := g.BlockParams(x, z).Validate(); err != nil {
				return fmt.Errorf("cell (%d, %d): %w", x, z, err)
			}
		}
	}
	return nil
}

// Placement returns the transform of the block at x, z: a quarter turn about
// +Y per Turns, then a move to its slot. Slot centres are spaced BlockSize
// apart and the field's centre sits on the origin.
func Placement(g *layout.Grid, x, z int) mgl32.Mat4 {
	c := g.At(x, z)
	s := float32(g.BlockSize)
	move := mgl32.Translate3D(
		(float32(x)-float32(g.Width-1)/2)*s,
		0,
		(float32(z)-float32(g.Height-1)/2)*s,
	)
	return move.Mul4(mgl32.HomogRotate3DY(float32(c.Turns) * math.Pi / 2))
}

// Place builds the block at x, z and moves it into field space.
func Place(g *layout.Grid, x, z int) (*geometry.Mesh, error) {
	m, err := geometry.Build(g.BlockParams(x, z))
	if err != nil {
		return nil, err
	}
	return m.Transform(Placement(g, x, z)), nil
}
