package camera

// CameraOption is a functional option for configuring a Camera.
type CameraOption func(*cameraImpl)

// WithProjection sets the camera's initial projection.
//
// Parameters:
//   - p: the projection to install
//
// Returns:
//   - CameraOption: functional option to set the projection
func WithProjection(p Projection) CameraOption {
	return func(c *cameraImpl) {
		c.projection = p
	}
}

// WithRenderArea sets the camera's initial render area.
//
// Parameters:
//   - area: the pixel rectangle the camera renders into
//
// Returns:
//   - CameraOption: functional option to set the render area
func WithRenderArea(area RenderArea) CameraOption {
	return func(c *cameraImpl) {
		c.renderArea = area
		if p, ok := c.projection.(*Perspective); ok && area.Height > 0 {
			p.Aspect = float64(area.Width) / float64(area.Height)
		}
	}
}
