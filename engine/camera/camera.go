package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// RenderArea is the pixel rectangle the camera renders into. The manipulator
// uses it to convert pointer positions into normalized device coordinates.
type RenderArea struct {
	X      int
	Y      int
	Width  int
	Height int
}

// cameraImpl is the single implementation of Camera.
type cameraImpl struct {
	mu *sync.Mutex

	viewMatrix mgl64.Mat4
	projection Projection
	renderArea RenderArea
}

// Camera owns the view and projection matrices consumed by a renderer. The
// manipulator writes the view matrix once per frame and may swap the
// projection between perspective and orthographic forms.
type Camera interface {
	// ViewMatrix returns the current world-to-view transform.
	//
	// Returns:
	//   - mgl64.Mat4: the view matrix
	ViewMatrix() mgl64.Mat4

	// SetViewMatrix sets the world-to-view transform.
	//
	// Parameters:
	//   - m: the new view matrix
	SetViewMatrix(m mgl64.Mat4)

	// Projection returns the active projection.
	//
	// Returns:
	//   - Projection: the active perspective or orthographic projection
	Projection() Projection

	// SetProjection replaces the active projection.
	//
	// Parameters:
	//   - p: the new projection
	SetProjection(p Projection)

	// RenderArea returns the pixel rectangle the camera renders into.
	//
	// Returns:
	//   - RenderArea: the render area
	RenderArea() RenderArea

	// SetRenderArea sets the pixel rectangle the camera renders into and, if
	// the active projection is perspective, updates its aspect ratio to match.
	//
	// Parameters:
	//   - area: the new render area
	SetRenderArea(area RenderArea)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with an identity view matrix and a default
// 45-degree perspective projection.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		viewMatrix: mgl64.Ident4(),
		projection: &Perspective{
			FovY:   45.0 * (math.Pi / 180.0),
			Aspect: 1.0,
			Near:   1.0,
			Far:    1e8,
		},
		renderArea: RenderArea{Width: 1, Height: 1},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) SetViewMatrix(m mgl64.Mat4) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMatrix = m
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) SetProjection(p Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = p
}

func (c *cameraImpl) RenderArea() RenderArea {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderArea
}

func (c *cameraImpl) SetRenderArea(area RenderArea) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderArea = area
	if p, ok := c.projection.(*Perspective); ok && area.Height > 0 {
		p.Aspect = float64(area.Width) / float64(area.Height)
	}
}
