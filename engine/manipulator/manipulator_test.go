package manipulator

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/terra-go/common"
	"github.com/Carmen-Shannon/terra-go/engine/camera"
	"github.com/Carmen-Shannon/terra-go/engine/geo"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBase = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// at returns a deterministic timestamp offset from the test base time.
func at(ms int) time.Time {
	return testBase.Add(time.Duration(ms) * time.Millisecond)
}

func newTestRig(options ...ManipulatorOption) (Manipulator, camera.Camera) {
	cam := camera.NewCamera(camera.WithRenderArea(camera.RenderArea{Width: 800, Height: 600}))
	m := NewManipulator(cam, geo.NewGeocentricServices(), options...)
	return m, cam
}

func alpsViewpoint() Viewpoint {
	return Viewpoint{
		Lon:     mgl64.DegToRad(8.5),
		Lat:     mgl64.DegToRad(46.5),
		Height:  1000,
		Heading: 0.5,
		Pitch:   -1.0,
		Range:   50000,
	}
}

func TestHomePose(t *testing.T) {
	m, cam := newTestRig()

	center := m.Center()
	assert.InDelta(t, geo.WGS84SemiMajorAxis, center.X(), 1e-6)
	assert.InDelta(t, 0, center.Y(), 1e-6)
	assert.InDelta(t, 0, center.Z(), 1e-6)
	assert.InDelta(t, geo.WGS84SemiMajorAxis*3.5, m.Distance(), 1e-6)

	heading, pitch := m.HeadingPitch()
	assert.InDelta(t, 0, heading, 1e-9)
	assert.InDelta(t, -math.Pi/2, pitch, 1e-9)
	assert.False(t, m.Animating())

	// The camera eye sits above the center along the surface normal.
	eye := common.Translation(cam.ViewMatrix().Inv())
	assert.InDelta(t, geo.WGS84SemiMajorAxis*4.5, eye.X(), 1e-3)
	assert.InDelta(t, 0, eye.Y(), 1e-3)
	assert.InDelta(t, 0, eye.Z(), 1e-3)
}

func TestPlanarHomePose(t *testing.T) {
	cam := camera.NewCamera(camera.WithRenderArea(camera.RenderArea{Width: 800, Height: 600}))
	g := geo.NewPlanarServices(geo.WithBounds(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1000, 800, 0}))
	m := NewManipulator(cam, g)

	center := m.Center()
	assert.InDelta(t, 500, center.X(), 1e-9)
	assert.InDelta(t, 400, center.Y(), 1e-9)
	assert.InDelta(t, 0, center.Z(), 1e-9)
	// 3.5 times the half-width of the bounds.
	assert.InDelta(t, 1750, m.Distance(), 1e-9)
}

func TestWithHomeOverride(t *testing.T) {
	pos := mgl64.Vec3{0, geo.WGS84SemiMajorAxis, 0}
	m, _ := newTestRig(WithHome(pos, 4200))
	assert.InDelta(t, 4200, m.Distance(), 1e-9)
	assert.InDelta(t, pos.Y(), m.Center().Y(), 1e-6)
}

func TestKeyPanAppliesAtNextFrame(t *testing.T) {
	m, _ := newTestRig()
	home := m.Center()

	handled := m.Apply(KeyPressEvent{Key: common.KeyLeft, Time: at(0)})
	assert.True(t, handled)

	// Nothing moves until a frame services the task.
	assert.InDelta(t, 0, m.Center().Sub(home).Len(), 1e-9)

	m.Apply(FrameEvent{Time: at(16)})
	moved := m.Center()
	assert.Greater(t, moved.Sub(home).Len(), 1.0)

	// A zero-duration nudge fires exactly once.
	m.Apply(FrameEvent{Time: at(33)})
	assert.InDelta(t, 0, m.Center().Sub(moved).Len(), 1e-9)

	// Panning on the globe keeps the center on the surface.
	assert.InDelta(t, geo.WGS84SemiMajorAxis, moved.Len(), 1e-3)
}

func TestUnboundKeyIgnored(t *testing.T) {
	m, _ := newTestRig()
	handled := m.Apply(KeyPressEvent{Key: common.InputMask('Q'), Time: at(0)})
	assert.False(t, handled)
	assert.False(t, m.Animating())
}

func TestScrollZoomTask(t *testing.T) {
	m, _ := newTestRig()
	d0 := m.Distance()

	handled := m.Apply(ScrollEvent{DeltaY: -1, Time: at(0)})
	assert.True(t, handled)
	assert.True(t, m.Animating())

	// Service the 0.2 second task in four 50 ms slices.
	prev := d0
	for i := 1; i <= 4; i++ {
		inFlight := m.Apply(FrameEvent{Time: at(i * 50)})
		d := m.Distance()
		assert.Less(t, d, prev, "frame %d", i)
		prev = d
		if i < 4 {
			assert.True(t, inFlight, "frame %d", i)
		} else {
			assert.False(t, inFlight)
		}
	}

	// Each slice shrinks the distance by the per-second rate times the
	// slice length: four compounding factors of 1 - 1.5*0.05.
	want := d0 * math.Pow(0.925, 4)
	assert.InEpsilon(t, want, m.Distance(), 1e-9)
	assert.False(t, m.Animating())

	// A later frame with no task leaves the camera alone.
	m.Apply(FrameEvent{Time: at(300)})
	assert.InEpsilon(t, want, m.Distance(), 1e-9)
}

func TestScrollTaskReplaced(t *testing.T) {
	m, _ := newTestRig()
	d0 := m.Distance()

	m.Apply(ScrollEvent{DeltaY: -1, Time: at(0)})
	m.Apply(ScrollEvent{DeltaY: 1, Time: at(10)})
	m.Apply(FrameEvent{Time: at(250)})

	// The zoom-out replaced the zoom-in before any frame ran.
	assert.Greater(t, m.Distance(), d0)
}

func TestButtonPressClearsPendingTask(t *testing.T) {
	m, _ := newTestRig()
	d0 := m.Distance()

	m.Apply(ScrollEvent{DeltaY: -1, Time: at(0)})
	m.Apply(ButtonPressEvent{
		PointerEvent: PointerEvent{X: 400, Y: 300, Mask: common.MouseLeftButton, Time: at(5)},
		Button:       common.MouseLeftButton,
	})
	m.Apply(FrameEvent{Time: at(100)})

	assert.InDelta(t, d0, m.Distance(), 1e-9)
}

func TestDragPanMovesCenter(t *testing.T) {
	m, _ := newTestRig()
	home := m.Center()

	m.Apply(ButtonPressEvent{
		PointerEvent: PointerEvent{X: 400, Y: 300, Mask: common.MouseLeftButton, Time: at(0)},
		Button:       common.MouseLeftButton,
	})
	first := m.Apply(MoveEvent{PointerEvent{X: 410, Y: 295, Mask: common.MouseLeftButton, Time: at(10)}})
	assert.False(t, first) // no previous sample to difference against

	second := m.Apply(MoveEvent{PointerEvent{X: 420, Y: 290, Mask: common.MouseLeftButton, Time: at(20)}})
	assert.True(t, second)
	assert.Greater(t, m.Center().Sub(home).Len(), 1.0)

	// Drag pan is direct, not continuous: no motion remains in flight.
	assert.False(t, m.Animating())
}

func TestMoveWithoutButtonsIgnored(t *testing.T) {
	m, _ := newTestRig()
	home := m.Center()

	m.Apply(MoveEvent{PointerEvent{X: 100, Y: 100, Time: at(0)}})
	m.Apply(MoveEvent{PointerEvent{X: 300, Y: 300, Time: at(10)}})
	m.Apply(FrameEvent{Time: at(20)})

	assert.InDelta(t, 0, m.Center().Sub(home).Len(), 1e-9)
}

func TestContinuousZoomDrag(t *testing.T) {
	m, _ := newTestRig()
	d0 := m.Distance()

	m.Apply(ButtonPressEvent{
		PointerEvent: PointerEvent{X: 400, Y: 300, Mask: common.MouseRightButton, Time: at(0)},
		Button:       common.MouseRightButton,
	})
	m.Apply(MoveEvent{PointerEvent{X: 400, Y: 310, Mask: common.MouseRightButton, Time: at(10)}})
	m.Apply(MoveEvent{PointerEvent{X: 400, Y: 330, Mask: common.MouseRightButton, Time: at(20)}})
	assert.True(t, m.Animating())

	m.Apply(FrameEvent{Time: at(36)})
	afterFrame := m.Distance()
	assert.Less(t, afterFrame, d0)

	// Releasing the button stops the continuous motion.
	m.Apply(ButtonReleaseEvent{PointerEvent{X: 400, Y: 330, Time: at(50)}})
	assert.False(t, m.Animating())
	m.Apply(FrameEvent{Time: at(100)})
	assert.InDelta(t, afterFrame, m.Distance(), 1e-9)
}

func TestClickVersusDrag(t *testing.T) {
	s := DefaultSettings()
	s.BindMouseClick(NewAction(ActionHome), common.MouseLeftButton, 0)
	m, _ := newTestRig(WithSettings(s))
	home := m.Center()

	// Move away from home first.
	m.SetViewpoint(alpsViewpoint(), 0)
	require.Greater(t, m.Center().Sub(home).Len(), 1.0)

	// A short, steady press-release reads as a click and homes the camera.
	m.Apply(ButtonPressEvent{
		PointerEvent: PointerEvent{X: 400, Y: 300, Mask: common.MouseLeftButton, Time: at(0)},
		Button:       common.MouseLeftButton,
	})
	handled := m.Apply(ButtonReleaseEvent{PointerEvent{X: 400.5, Y: 300.2, Time: at(50)}})
	assert.True(t, handled)
	assert.InDelta(t, 0, m.Center().Sub(home).Len(), 1e-6)

	// A wide press-release is a drag, not a click.
	m.SetViewpoint(alpsViewpoint(), 0)
	away := m.Center()
	m.Apply(ButtonPressEvent{
		PointerEvent: PointerEvent{X: 100, Y: 100, Mask: common.MouseLeftButton, Time: at(1000)},
		Button:       common.MouseLeftButton,
	})
	handled = m.Apply(ButtonReleaseEvent{PointerEvent{X: 300, Y: 300, Time: at(1500)}})
	assert.False(t, handled)
	assert.InDelta(t, 0, m.Center().Sub(away).Len(), 1e-6)
}

func TestDoubleClickResolvesDoubleClickBinding(t *testing.T) {
	m, _ := newTestRig()

	click := func(ms int) bool {
		m.Apply(ButtonPressEvent{
			PointerEvent: PointerEvent{X: 400, Y: 300, Mask: common.MouseLeftButton, Time: at(ms)},
			Button:       common.MouseLeftButton,
		})
		return m.Apply(ButtonReleaseEvent{PointerEvent{X: 400, Y: 300, Time: at(ms + 10)}})
	}

	// No single-click binding exists for the left button by default.
	assert.False(t, click(0))

	// The second click within the window resolves the goto binding.
	assert.True(t, click(100))

	// Both clicks were consumed, so a third click starts over.
	assert.False(t, click(200))

	// A click after the window has passed is single again.
	assert.False(t, click(1000))
}

func TestRotateHeadingFromOverhead(t *testing.T) {
	m, _ := newTestRig()
	mi := m.(*manipulatorImpl)

	mi.rotate(0.3, 0)
	heading, pitch := m.HeadingPitch()
	assert.InDelta(t, 0.3, heading, 1e-9)
	assert.InDelta(t, -math.Pi/2, pitch, 1e-9)
}

func TestRotateHeadingFromTiltedPose(t *testing.T) {
	m, _ := newTestRig()
	mi := m.(*manipulatorImpl)
	m.SetViewpoint(Viewpoint{Heading: 0.2, Pitch: -math.Pi / 4, Range: 1e6}, 0)

	mi.rotate(0.1, 0)
	heading, pitch := m.HeadingPitch()
	assert.InDelta(t, 0.3, heading, 1e-9)
	assert.InDelta(t, -math.Pi/4, pitch, 1e-9)
}

func TestRotatePitchStep(t *testing.T) {
	m, _ := newTestRig()
	mi := m.(*manipulatorImpl)

	mi.rotate(0, 0.4)
	heading, pitch := m.HeadingPitch()
	assert.InDelta(t, 0, heading, 1e-9)
	assert.InDelta(t, -math.Pi/2+0.4, pitch, 1e-9)
}

func TestRotatePitchClampDropsStep(t *testing.T) {
	m, _ := newTestRig()
	mi := m.(*manipulatorImpl)
	maxPitch := mgl64.DegToRad(m.Settings().MaxPitch())

	for i := 0; i < 12; i++ {
		mi.rotate(0, 0.3)
		_, pitch := m.HeadingPitch()
		require.LessOrEqual(t, pitch, maxPitch+1e-9, "step %d", i)
	}

	// Five full steps fit below the ceiling; the sixth is dropped, not
	// truncated, so the pitch parks short of the limit.
	_, pitch := m.HeadingPitch()
	assert.InDelta(t, -math.Pi/2+1.5, pitch, 1e-9)
}

func TestRotatePitchFloor(t *testing.T) {
	m, _ := newTestRig()
	mi := m.(*manipulatorImpl)

	mi.rotate(0, -0.3)
	_, pitch := m.HeadingPitch()
	assert.InDelta(t, -math.Pi/2, pitch, 1e-9)
}

func TestSettingsMutationRefreshesSnapshot(t *testing.T) {
	m, _ := newTestRig()
	d0 := m.Distance()

	// Raising the distance floor on the live settings must reach frame
	// servicing without re-applying them.
	m.Settings().SetMinDistance(d0)

	m.Apply(ScrollEvent{DeltaY: -1, Time: at(0)})
	for i := 1; i <= 4; i++ {
		m.Apply(FrameEvent{Time: at(i * 50)})
	}
	assert.InDelta(t, d0, m.Distance(), 1e-6)
}

func TestSetViewpointImmediate(t *testing.T) {
	m, _ := newTestRig()
	vp := alpsViewpoint()
	m.SetViewpoint(vp, 0)

	got := m.Viewpoint()
	assert.InDelta(t, vp.Lon, got.Lon, 1e-9)
	assert.InDelta(t, vp.Lat, got.Lat, 1e-9)
	assert.InDelta(t, vp.Height, got.Height, 1e-4)
	assert.InDelta(t, vp.Heading, got.Heading, 1e-9)
	assert.InDelta(t, vp.Pitch, got.Pitch, 1e-9)
	assert.InDelta(t, vp.Range, got.Range, 1e-4)
	assert.False(t, m.Animating())
}

func TestSetViewpointTransition(t *testing.T) {
	m, _ := newTestRig()
	start := m.Center()
	vp := alpsViewpoint()

	m.SetViewpoint(vp, 2.0)
	assert.True(t, m.Animating())

	// The first frame only starts the clock.
	inFlight := m.Apply(FrameEvent{Time: at(16)})
	assert.True(t, inFlight)
	assert.InDelta(t, 0, m.Center().Sub(start).Len(), 1e-6)

	// Halfway: strictly between the endpoints.
	m.Apply(FrameEvent{Time: at(1016)})
	mid := m.Center()
	target := m.(*manipulatorImpl).geo.ToWorld(vp.Lon, vp.Lat, vp.Height)
	assert.Greater(t, mid.Sub(start).Len(), 1.0)
	assert.Greater(t, mid.Sub(target).Len(), 1.0)
	assert.True(t, m.Animating())

	// Completion lands exactly on the destination pose.
	inFlight = m.Apply(FrameEvent{Time: at(2016)})
	assert.False(t, inFlight)
	assert.False(t, m.Animating())

	got := m.Viewpoint()
	assert.InDelta(t, vp.Lon, got.Lon, 1e-9)
	assert.InDelta(t, vp.Lat, got.Lat, 1e-9)
	assert.InDelta(t, vp.Heading, got.Heading, 1e-9)
	assert.InDelta(t, vp.Pitch, got.Pitch, 1e-9)
	assert.InDelta(t, vp.Range, got.Range, 1e-4)
}

func TestHomeCancelsTransition(t *testing.T) {
	m, _ := newTestRig()
	m.SetViewpoint(alpsViewpoint(), 5.0)
	require.True(t, m.Animating())

	m.Home()
	assert.False(t, m.Animating())
	assert.InDelta(t, geo.WGS84SemiMajorAxis*3.5, m.Distance(), 1e-6)

	heading, pitch := m.HeadingPitch()
	assert.InDelta(t, 0, heading, 1e-9)
	assert.InDelta(t, -math.Pi/2, pitch, 1e-9)
}

func TestToggleProjection(t *testing.T) {
	m, cam := newTestRig()
	original := cam.Projection()
	require.IsType(t, &camera.Perspective{}, original)

	handled := m.Apply(KeyPressEvent{Key: common.KeyP, Time: at(0)})
	assert.True(t, handled)
	assert.IsType(t, &camera.Orthographic{}, cam.Projection())

	m.Apply(KeyPressEvent{Key: common.KeyP, Time: at(500)})
	assert.Same(t, original, cam.Projection())
}

func TestRecalculateCenterOnGlobe(t *testing.T) {
	m, _ := newTestRig()

	ok := m.RecalculateCenter()
	require.True(t, ok)

	// Looking straight down from home, the look ray hits the equator point
	// under the eye.
	center := m.Center()
	assert.InDelta(t, geo.WGS84SemiMajorAxis, center.X(), 1.0)
	assert.InDelta(t, 0, center.Y(), 1.0)
	assert.InDelta(t, 0, center.Z(), 1.0)
}

func TestRecalculateCenterOnPlane(t *testing.T) {
	cam := camera.NewCamera(camera.WithRenderArea(camera.RenderArea{Width: 800, Height: 600}))
	g := geo.NewPlanarServices(geo.WithBounds(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1000, 800, 0}))
	m := NewManipulator(cam, g)

	ok := m.RecalculateCenter()
	require.True(t, ok)
	center := m.Center()
	assert.InDelta(t, 500, center.X(), 1e-6)
	assert.InDelta(t, 400, center.Y(), 1e-6)
	assert.InDelta(t, 0, center.Z(), 1e-6)
}

func TestScreenToWorldNotImplemented(t *testing.T) {
	m, _ := newTestRig()
	_, err := m.ScreenToWorld(400, 300)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestApplySettingsSwapsLiveSettings(t *testing.T) {
	m, _ := newTestRig()
	replacement := NewSettings()
	replacement.BindKey(NewAction(ActionHome), common.InputMask('Z'), 0)

	m.ApplySettings(replacement)
	assert.Same(t, replacement, m.Settings())

	// Old stock bindings are gone; the new one resolves.
	assert.False(t, m.Apply(KeyPressEvent{Key: common.KeySpace, Time: at(0)}))
	assert.True(t, m.Apply(KeyPressEvent{Key: common.InputMask('Z'), Time: at(10)}))
}

func TestDominantAxis(t *testing.T) {
	assert.Equal(t, mgl64.Vec2{3, 0}, dominantAxis(mgl64.Vec2{3, -2}))
	assert.Equal(t, mgl64.Vec2{0, -5}, dominantAxis(mgl64.Vec2{1, -5}))
}

func TestPanAzimuthLock(t *testing.T) {
	vp := Viewpoint{Heading: 0.3, Pitch: -1.0, Range: 1e6}

	t.Run("locked keeps heading", func(t *testing.T) {
		m, _ := newTestRig()
		mi := m.(*manipulatorImpl)
		require.True(t, m.Settings().LockAzimuthWhilePanning())

		m.SetViewpoint(vp, 0)
		mi.pan(0.5, 0)

		heading, _ := m.HeadingPitch()
		assert.InDelta(t, 0.3, heading, 1e-9)
	})

	t.Run("unlocked keeps world rotation", func(t *testing.T) {
		s := DefaultSettings()
		s.SetLockAzimuthWhilePanning(false)
		m, _ := newTestRig(WithSettings(s))
		mi := m.(*manipulatorImpl)

		m.SetViewpoint(vp, 0)
		before := mgl64.Mat4ToQuat(mi.state.centerRotation).Mul(mi.state.localRotation)
		mi.pan(0.5, 0)
		after := mgl64.Mat4ToQuat(mi.state.centerRotation).Mul(mi.state.localRotation)

		assert.InDelta(t, 1.0, math.Abs(before.Dot(after)), 1e-9)
	})
}

func TestPanOffsetClamp(t *testing.T) {
	m, _ := newTestRig()
	mi := m.(*manipulatorImpl)
	m.Settings().SetMaxXOffset(1000)
	m.Settings().SetMaxYOffset(1000)

	before := m.Center()
	mi.pan(0.5, 0)
	step := m.Center().Sub(before).Len()

	// Unclamped this step would cover hundreds of kilometers.
	assert.Less(t, step, 1100.0)
	assert.Greater(t, step, 900.0)
}

func TestScrollDirectionScreenOriented(t *testing.T) {
	cases := []struct {
		name string
		ev   ScrollEvent
		want Direction
	}{
		{"up", ScrollEvent{DeltaY: -1}, DirUp},
		{"down", ScrollEvent{DeltaY: 1}, DirDown},
		{"right", ScrollEvent{DeltaX: 1}, DirRight},
		{"left", ScrollEvent{DeltaX: -1}, DirLeft},
		{"horizontal-wins", ScrollEvent{DeltaX: 1, DeltaY: 1}, DirRight},
		{"none", ScrollEvent{}, DirNA},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, scrollDirection(c.ev))
		})
	}
}

func TestScrollAxisPrecedence(t *testing.T) {
	m, _ := newTestRig()
	d0 := m.Distance()

	// A diagonal scroll resolves to the horizontal direction, which has no
	// stock binding, so the distance never moves.
	handled := m.Apply(ScrollEvent{DeltaX: 1, DeltaY: 1, Time: at(0)})
	assert.False(t, handled)
	m.Apply(FrameEvent{Time: at(50)})
	assert.InDelta(t, d0, m.Distance(), 1e-9)
}

func TestOrthographicZoomDirection(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithProjection(&camera.Orthographic{Left: -10, Right: 10, Bottom: -5, Top: 5, Near: 1, Far: 100}),
		camera.WithRenderArea(camera.RenderArea{Width: 800, Height: 600}),
	)
	m := NewManipulator(cam, geo.NewGeocentricServices())
	mi := m.(*manipulatorImpl)

	// Backing out shrinks the projection volume by the reciprocal step.
	mi.zoom(0, 0.5)
	ortho := cam.Projection().(*camera.Orthographic)
	assert.InDelta(t, 10.0/1.0625, ortho.Right, 1e-9)

	// Closing in grows it back.
	mi.zoom(0, -0.5)
	ortho = cam.Projection().(*camera.Orthographic)
	assert.InDelta(t, 10.0, ortho.Right, 1e-9)
}

func TestApplySettingsReclampsDistance(t *testing.T) {
	m, _ := newTestRig()
	d0 := m.Distance()

	// Leave a zoom task pending; swapping settings must drop it and pull
	// the distance up to the new floor.
	m.Apply(ScrollEvent{DeltaY: -1, Time: at(0)})
	m.ApplySettings(NewSettings(WithDistanceLimits(2*d0, 4*d0)))
	assert.InDelta(t, 2*d0, m.Distance(), 1e-6)
	assert.False(t, m.Animating())

	m.Apply(FrameEvent{Time: at(100)})
	assert.InDelta(t, 2*d0, m.Distance(), 1e-6)
}

func TestSettingsMutationReclampsDistance(t *testing.T) {
	m, _ := newTestRig()
	d0 := m.Distance()

	m.Settings().SetMinDistance(2 * d0)
	assert.InDelta(t, 2*d0, m.Distance(), 1e-6)
}

func TestInstantReleaseIsNotAClick(t *testing.T) {
	s := DefaultSettings()
	s.BindMouseClick(NewAction(ActionHome), common.MouseLeftButton, 0)
	m, _ := newTestRig(WithSettings(s))
	home := m.Center()

	m.SetViewpoint(alpsViewpoint(), 0)
	away := m.Center()
	require.Greater(t, away.Sub(home).Len(), 1.0)

	// Press and release at the same instant: no hold time, no click.
	m.Apply(ButtonPressEvent{
		PointerEvent: PointerEvent{X: 400, Y: 300, Mask: common.MouseLeftButton, Time: at(0)},
		Button:       common.MouseLeftButton,
	})
	handled := m.Apply(ButtonReleaseEvent{PointerEvent{X: 400, Y: 300, Time: at(0)}})
	assert.False(t, handled)
	assert.InDelta(t, 0, m.Center().Sub(away).Len(), 1e-6)
}
