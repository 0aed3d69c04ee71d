// package scene provides world-geometry intersection queries for the camera
// manipulator. The manipulator only depends on the Intersector interface;
// MeshIntersector is a triangle-soup implementation for hosts that do not
// bring their own spatial index.
package scene

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl64"
)

// Intersector answers nearest-hit queries against rendered geometry.
type Intersector interface {
	// Intersect finds the intersection of the segment start->end with the
	// scene that is closest to start by ray-parameter ordering.
	//
	// Parameters:
	//   - start: segment start in world coordinates
	//   - end: segment end in world coordinates
	//
	// Returns:
	//   - mgl64.Vec3: the closest intersection point
	//   - bool: false when the segment hits nothing
	Intersect(start, end mgl64.Vec3) (mgl64.Vec3, bool)
}

// Mesh is an indexed triangle mesh in world coordinates. Every three indices
// form one triangle.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  []uint32
}

// MeshIntersector is an Intersector over a mutable set of triangle meshes.
type MeshIntersector interface {
	Intersector

	// Add appends a mesh to the intersectable set.
	//
	// Parameters:
	//   - m: the mesh to add
	Add(m Mesh)

	// Count returns the number of meshes in the set.
	//
	// Returns:
	//   - int: mesh count
	Count() int
}

// meshIntersector fans segment tests out over a bounded worker pool, one
// task per mesh. Workers persist across queries, avoiding per-query
// goroutine spawn/teardown overhead.
type meshIntersector struct {
	mu      *sync.RWMutex
	meshes  []Mesh
	pool    worker.DynamicWorkerPool
	workers int
}

var _ MeshIntersector = &meshIntersector{}

// NewMeshIntersector creates a MeshIntersector with an empty mesh set.
//
// Parameters:
//   - options: functional options to configure the intersector
//
// Returns:
//   - MeshIntersector: the newly created intersector
func NewMeshIntersector(options ...MeshIntersectorOption) MeshIntersector {
	mi := &meshIntersector{
		mu:      &sync.RWMutex{},
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(mi)
	}
	// Queue size of 256 accommodates typical mesh counts with headroom.
	mi.pool = worker.NewDynamicWorkerPool(mi.workers, 256, 1*time.Second)
	return mi
}

// MeshIntersectorOption is a functional option for configuring a MeshIntersector.
type MeshIntersectorOption func(*meshIntersector)

// WithWorkers sets the worker pool size used for parallel mesh tests.
//
// Parameters:
//   - n: number of pooled workers (values < 1 are ignored)
//
// Returns:
//   - MeshIntersectorOption: functional option to set the pool size
func WithWorkers(n int) MeshIntersectorOption {
	return func(mi *meshIntersector) {
		if n >= 1 {
			mi.workers = n
		}
	}
}

// WithMeshes seeds the intersector with an initial mesh set.
//
// Parameters:
//   - meshes: meshes to add
//
// Returns:
//   - MeshIntersectorOption: functional option to seed the mesh set
func WithMeshes(meshes ...Mesh) MeshIntersectorOption {
	return func(mi *meshIntersector) {
		mi.meshes = append(mi.meshes, meshes...)
	}
}

func (mi *meshIntersector) Add(m Mesh) {
	mi.mu.Lock()
	defer mi.mu.Unlock()
	mi.meshes = append(mi.meshes, m)
}

func (mi *meshIntersector) Count() int {
	mi.mu.RLock()
	defer mi.mu.RUnlock()
	return len(mi.meshes)
}

func (mi *meshIntersector) Intersect(start, end mgl64.Vec3) (mgl64.Vec3, bool) {
	mi.mu.RLock()
	meshes := mi.meshes
	mi.mu.RUnlock()

	if len(meshes) == 0 {
		return mgl64.Vec3{}, false
	}

	// A WaitGroup provides per-query barrier sync since pool.Wait() blocks
	// until workers idle-exit, which is unsuitable for frame-rate queries.
	var (
		wg      sync.WaitGroup
		hitMu   sync.Mutex
		bestT   = math.Inf(1)
		bestHit mgl64.Vec3
	)
	for i := range meshes {
		wg.Add(1)
		mesh := &meshes[i]
		mi.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				t, ok := intersectMesh(mesh, start, end)
				if !ok {
					return nil, nil
				}
				hitMu.Lock()
				if t < bestT {
					bestT = t
					bestHit = start.Add(end.Sub(start).Mul(t))
				}
				hitMu.Unlock()
				return nil, nil
			},
		})
	}
	wg.Wait()

	if math.IsInf(bestT, 1) {
		return mgl64.Vec3{}, false
	}
	return bestHit, true
}

// intersectMesh returns the smallest segment parameter at which the segment
// hits any triangle of the mesh.
func intersectMesh(m *Mesh, start, end mgl64.Vec3) (float64, bool) {
	dir := end.Sub(start)
	best := math.Inf(1)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]
		if t, ok := intersectTriangle(start, dir, a, b, c); ok && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

// intersectTriangle is the Moller-Trumbore segment/triangle test. The
// returned parameter is relative to dir, so hits are constrained to [0, 1].
func intersectTriangle(orig, dir, a, b, c mgl64.Vec3) (float64, bool) {
	const eps = 1e-12

	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < eps {
		return 0, false // segment parallel to triangle plane
	}
	invDet := 1.0 / det

	s := orig.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * invDet
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}
