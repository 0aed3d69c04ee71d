package camera

import "github.com/go-gl/mathgl/mgl64"

// Projection is the closed set of projection forms the camera can carry.
// The manipulator swaps between the two forms on a projection-toggle action
// and scales orthographic bounds directly when zooming.
type Projection interface {
	// Matrix returns the projection matrix in OpenGL clip-space conventions.
	//
	// Returns:
	//   - mgl64.Mat4: the projection matrix
	Matrix() mgl64.Mat4
}

// Perspective is a symmetric perspective projection.
type Perspective struct {
	// FovY is the vertical field of view in radians.
	FovY float64
	// Aspect is the viewport aspect ratio (width / height).
	Aspect float64
	// Near is the near clipping plane distance.
	Near float64
	// Far is the far clipping plane distance.
	Far float64
}

var _ Projection = &Perspective{}

func (p *Perspective) Matrix() mgl64.Mat4 {
	return mgl64.Perspective(p.FovY, p.Aspect, p.Near, p.Far)
}

// Orthographic is an orthographic projection defined by explicit view-volume
// bounds. Zooming scales the bounds in place instead of moving the camera.
type Orthographic struct {
	Left   float64
	Right  float64
	Bottom float64
	Top    float64
	Near   float64
	Far    float64
}

var _ Projection = &Orthographic{}

func (o *Orthographic) Matrix() mgl64.Mat4 {
	return mgl64.Ortho(o.Left, o.Right, o.Bottom, o.Top, o.Near, o.Far)
}

// Scale multiplies the left/right/top/bottom bounds by factor, widening the
// view volume for factor > 1 and narrowing it for factor < 1.
//
// Parameters:
//   - factor: bound scale factor
func (o *Orthographic) Scale(factor float64) {
	o.Left *= factor
	o.Right *= factor
	o.Top *= factor
	o.Bottom *= factor
}

// projectionBounds recovers the view-volume x/y extents of a projection
// matrix at a given clip-space depth by unprojecting the edge midpoints.
func projectionBounds(proj mgl64.Mat4, zVal float64) (left, right, bottom, top float64) {
	inv := proj.Inv()
	unproject := func(x, y float64) mgl64.Vec4 {
		v := inv.Mul4x1(mgl64.Vec4{x, y, zVal, 1})
		return v.Mul(1.0 / v.W())
	}
	left = unproject(-1, 0).X()
	right = unproject(1, 0).X()
	bottom = unproject(0, -1).Y()
	top = unproject(0, 1).Y()
	return left, right, bottom, top
}

// projectionDepthRange recovers the near and far plane distances of a
// projection matrix by unprojecting the clip-space depth extremes.
func projectionDepthRange(proj mgl64.Mat4) (near, far float64) {
	inv := proj.Inv()
	nearCoord := inv.Mul4x1(mgl64.Vec4{0, 0, -1, 1})
	nearCoord = nearCoord.Mul(1.0 / nearCoord.W())
	farCoord := inv.Mul4x1(mgl64.Vec4{0, 0, 1, 1})
	farCoord = farCoord.Mul(1.0 / farCoord.W())
	return -nearCoord.Z(), -farCoord.Z()
}

// TransferProjection derives an orthographic projection matching a
// perspective one: the x/y bounds are taken an eighth of the way into the
// perspective depth range and the near/far planes carry over, so toggling
// projections keeps roughly the same framing.
//
// Parameters:
//   - p: the perspective projection to match
//
// Returns:
//   - *Orthographic: the derived orthographic projection
func TransferProjection(p *Perspective) *Orthographic {
	proj := p.Matrix()
	left, right, bottom, top := projectionBounds(proj, -0.75)
	near, far := projectionDepthRange(proj)
	return &Orthographic{
		Left:   left,
		Right:  right,
		Bottom: bottom,
		Top:    top,
		Near:   near,
		Far:    far,
	}
}
