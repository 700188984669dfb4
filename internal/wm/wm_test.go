package wm_test

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/Gaurav-Gosain/spatialwm/internal/layout"
	"github.com/Gaurav-Gosain/spatialwm/internal/wm"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func newStore(t *testing.T) *wm.Store {
	t.Helper()
	return wm.NewStore(wm.Options{
		Camera: geom.NewPerspectiveCamera(75, 1.6),
		Logger: log.New(io.Discard),
	})
}

// settle runs every pending add-window transition.
func settle(s *wm.Store) {
	d := s.Defaults()
	s.Frame(d.FocusDelay + d.SettleDelay + time.Millisecond)
}

func TestAddWindowDeduplicatesByID(t *testing.T) {
	s := newStore(t)

	first := wm.CreateWindow(s, nil, wm.WithID("music"), wm.WithTitle("Music"))
	for range 3 {
		again := wm.CreateWindow(s, nil, wm.WithID("music"), wm.WithTitle("Other"))
		assert.Same(t, first, again)
	}

	assert.Equal(t, 1, s.Len())
	w, ok := s.Window("music")
	require.True(t, ok)
	assert.Equal(t, "Music", w.Title)
}

func TestAddWindowSameTitleDifferentIDs(t *testing.T) {
	s := newStore(t)
	wm.CreateWindow(s, nil, wm.WithTitle("Clock"))
	wm.CreateWindow(s, nil, wm.WithTitle("Clock"))
	assert.Equal(t, 2, s.Len())
}

func TestCreateWindowDefaults(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, "payload")

	assert.NotEmpty(t, w.ID)
	assert.Equal(t, float64(wm.DefaultWidth), w.Width)
	assert.Equal(t, float64(wm.DefaultHeight), w.Height)
	assert.Equal(t, geom.Unit, w.Scale)
	assert.InDelta(t, wm.DefaultOpacity, w.Opacity, eps)
	assert.True(t, w.FollowCamera)
	assert.Equal(t, "payload", w.Content)
	assert.True(t, geom.ApproxEqual(w.Position, mgl64.Vec3{0, 0, -3}, eps), "got %v", w.Position)
}

func TestAddWindowWithoutCameraFallsBackToOrigin(t *testing.T) {
	s := wm.NewStore(wm.Options{Logger: log.New(io.Discard)})
	w := wm.CreateWindow(s, nil)
	assert.Equal(t, geom.Origin, w.Position)
}

func TestSettleScenarioPlacesWindowsInDistinctCells(t *testing.T) {
	s := newStore(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		wm.CreateWindow(s, nil, wm.WithID(id))
	}

	s.Frame(s.Defaults().FocusDelay)
	for _, w := range s.Windows() {
		assert.True(t, w.IsFocused, "window %s should be flashed", w.ID)
	}

	settle(s)

	want := map[string]mgl64.Vec3{
		"a": {-1, 1, -3.2},
		"b": {1, 1, -3.2},
		"c": {-1, -1, -3.2},
		"d": {1, -1, -3.2},
	}
	for _, w := range s.Windows() {
		assert.False(t, w.IsFocused, "window %s", w.ID)
		assert.Nil(t, w.OriginalSettings, "window %s", w.ID)
		assert.True(t, geom.ApproxEqual(w.Position, want[w.ID], 1e-6), "window %s at %v", w.ID, w.Position)
	}
	assert.Equal(t, layout.Grid, s.CurrentMode())
}

func TestDisableInitialFocusStillSettles(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithDisableInitialFocus(true))

	s.Frame(s.Defaults().FocusDelay)
	assert.False(t, w.IsFocused)

	settle(s)
	assert.Equal(t, layout.Grid, s.CurrentMode())
}

func TestDisableTilingWindowKeepsPosition(t *testing.T) {
	s := newStore(t)
	pinned := wm.CreateWindow(s, nil, wm.WithPosition(mgl64.Vec3{5, 0, 0}), wm.WithDisableTiling(true))
	wm.CreateWindow(s, nil)
	wm.CreateWindow(s, nil)

	settle(s)
	for _, mode := range layout.Modes {
		require.NoError(t, s.TileWindows(mode, true))
		s.RecalculateTilePositions()
		assert.Equal(t, mgl64.Vec3{5, 0, 0}, pinned.Position, "mode %s", mode)
		assert.Equal(t, geom.Unit, pinned.Scale, "mode %s", mode)
		assert.False(t, pinned.IsFocused)
	}
}

func TestFocusUnfocusRoundTrip(t *testing.T) {
	s := newStore(t)
	rot := geom.EulerDeg(0, 30, 0)
	w := wm.CreateWindow(s, nil,
		wm.WithPosition(mgl64.Vec3{2, 1, -4}),
		wm.WithScale(mgl64.Vec3{2, 2, 2}),
		wm.WithRotation(rot),
		wm.WithFollowCamera(false),
		wm.WithDisableTiling(true),
	)

	s.Focus(w.ID)
	assert.True(t, w.IsFocused)
	assert.Equal(t, wm.StateFocused, w.State())
	assert.True(t, geom.ApproxEqual(w.Position, mgl64.Vec3{0, 0, -2.5}, eps))
	assert.Equal(t, geom.Unit, w.Scale)
	assert.True(t, w.FollowCamera)
	require.NotNil(t, w.OriginalSettings)

	s.Unfocus(w.ID)
	assert.False(t, w.IsFocused)
	assert.Equal(t, mgl64.Vec3{2, 1, -4}, w.Position)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, w.Scale)
	assert.True(t, w.Rotation.ApproxEqual(rot, eps))
	assert.False(t, w.FollowCamera)
	assert.Nil(t, w.OriginalSettings)
}

func TestRepeatedFocusKeepsFirstSnapshot(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithPosition(mgl64.Vec3{1, 2, 3}), wm.WithDisableTiling(true))

	s.Focus(w.ID)
	s.Focus(w.ID)
	s.Unfocus(w.ID)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, w.Position)
}

func TestUnfocusWithoutSnapshotLeavesTransform(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithPosition(mgl64.Vec3{1, 0, 0}), wm.WithDisableTiling(true))
	s.Unfocus(w.ID)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, w.Position)
	assert.False(t, w.IsFocused)
}

func TestMinimizeRestoresSnapshotAndMaximizeKeepsTransform(t *testing.T) {
	s := newStore(t)
	minimized := 0
	w := wm.CreateWindow(s, nil,
		wm.WithPosition(mgl64.Vec3{3, 0, -1}),
		wm.WithDisableTiling(true),
		wm.WithOnMinimize(func() { minimized++ }),
	)

	s.Focus(w.ID)
	s.Minimize(w.ID)
	assert.Equal(t, wm.StateMinimized, w.State())
	assert.False(t, w.IsFocused)
	assert.Equal(t, mgl64.Vec3{3, 0, -1}, w.Position)
	assert.Nil(t, w.OriginalSettings)
	assert.Equal(t, 1, minimized)

	s.SetPosition(w.ID, mgl64.Vec3{0, 4, 0})
	s.Maximize(w.ID)
	assert.Equal(t, wm.StateNormal, w.State())
	assert.Equal(t, mgl64.Vec3{0, 4, 0}, w.Position)
}

func TestUpdateWindowSizeIsIdempotent(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithDisableTiling(true))

	assert.True(t, s.UpdateWindowSize(w.ID, 640, 480))
	v := s.Version()
	assert.False(t, s.UpdateWindowSize(w.ID, 640, 480))
	assert.Equal(t, v, s.Version())
}

func TestUpdateWindowSizeRejectsInvalid(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithDisableTiling(true))
	v := s.Version()

	for _, size := range [][2]float64{
		{math.NaN(), 200},
		{300, math.Inf(1)},
		{-1, 200},
	} {
		assert.False(t, s.UpdateWindowSize(w.ID, size[0], size[1]), "size %v", size)
		assert.False(t, s.UpdateWindowSize(w.ID, size[0], size[1]), "size %v repeated", size)
	}
	assert.Equal(t, v, s.Version())
	assert.Equal(t, float64(wm.DefaultWidth), w.Width)
	assert.Equal(t, float64(wm.DefaultHeight), w.Height)
}

func TestMissingIDsAreNoOps(t *testing.T) {
	s := newStore(t)
	wm.CreateWindow(s, nil, wm.WithID("a"), wm.WithDisableTiling(true))
	v := s.Version()

	s.Focus("ghost")
	s.Unfocus("ghost")
	s.Minimize("ghost")
	s.Maximize("ghost")
	s.Close("ghost")
	s.RemoveWindow("ghost")
	s.SetPosition("ghost", mgl64.Vec3{1, 1, 1})
	s.UpdateWindowProps("ghost", map[string]any{"k": 1})
	s.SetSelectedWindow("ghost")
	assert.False(t, s.UpdateWindowSize("ghost", 1, 1))
	s.ReportWindowSize("ghost", 1, 1)

	_, ok := s.DisplayRotation("ghost")
	assert.False(t, ok)
	assert.Equal(t, v, s.Version())
	assert.Equal(t, 1, s.Len())
}

func TestRemovedBeforeTimersFire(t *testing.T) {
	s := newStore(t)
	wm.CreateWindow(s, nil, wm.WithID("gone"))
	s.RemoveWindow("gone")

	assert.NotPanics(t, func() { settle(s) })
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, layout.None, s.CurrentMode())
}

func TestRemovedBetweenFocusAndSettle(t *testing.T) {
	s := newStore(t)
	wm.CreateWindow(s, nil, wm.WithID("gone"))
	s.Frame(s.Defaults().FocusDelay)
	s.RemoveWindow("gone")

	settle(s)
	assert.Equal(t, layout.None, s.CurrentMode())
}

func TestCloseRunsCallbackAndRetilesAsync(t *testing.T) {
	s := newStore(t)
	closed := false
	wm.CreateWindow(s, nil, wm.WithID("a"), wm.WithOnClose(func() { closed = true }))
	wm.CreateWindow(s, nil, wm.WithID("b"))
	wm.CreateWindow(s, nil, wm.WithID("c"))
	settle(s)
	require.NoError(t, s.TileWindows(layout.Around, false))

	b, _ := s.Window("b")
	before := b.Position

	s.Close("a")
	assert.True(t, closed)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, before, b.Position, "re-tile must not run inline")

	s.Frame(0)
	assert.NotEqual(t, before, b.Position)
	assert.Equal(t, layout.Around, s.CurrentMode())
}

func TestClosesInOneFrameShareOneRetile(t *testing.T) {
	s := newStore(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		wm.CreateWindow(s, nil, wm.WithID(id))
	}
	settle(s)
	require.NoError(t, s.TileWindows(layout.Grid, false))

	s.Close("a")
	s.Close("b")

	notified := 0
	unsubscribe := s.Subscribe(func() { notified++ })
	defer unsubscribe()

	s.Frame(0)
	assert.Equal(t, 1, notified)

	s.Frame(0)
	assert.Equal(t, 1, notified, "nothing left to re-tile")
}

func TestResetDropsPendingRetile(t *testing.T) {
	s := newStore(t)
	a := wm.CreateWindow(s, nil, wm.WithID("a"), wm.WithDisableInitialFocus(true))
	wm.CreateWindow(s, nil, wm.WithID("b"), wm.WithDisableInitialFocus(true))
	settle(s)

	s.Close("b")
	s.ResetWindowPositions()
	at := a.Position

	s.Frame(0)
	assert.Equal(t, layout.None, s.CurrentMode())
	assert.Equal(t, at, a.Position)
}

func TestCloseWithoutModeDoesNotTile(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithPosition(mgl64.Vec3{1, 1, 1}), wm.WithDisableTiling(true))
	other := wm.CreateWindow(s, nil, wm.WithPosition(mgl64.Vec3{2, 2, 2}), wm.WithDisableTiling(true))

	s.Close(w.ID)
	s.Frame(time.Second)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, other.Position)
	assert.Equal(t, layout.None, s.CurrentMode())
}

func TestReportWindowSizeDebounces(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithDisableTiling(true))

	for i := range 5 {
		s.ReportWindowSize(w.ID, float64(100+i), 100)
		s.Frame(50 * time.Millisecond)
	}
	assert.Equal(t, float64(wm.DefaultWidth), w.Width, "nothing commits inside the burst")

	s.Frame(s.Defaults().SizeDebounce)
	assert.Equal(t, 104.0, w.Width)
}

func TestCameraMovesCollapseToOneRetile(t *testing.T) {
	s := newStore(t)
	wm.CreateWindow(s, nil, wm.WithID("a"))
	settle(s)

	recalcs := 0
	unsubscribe := s.Subscribe(func() { recalcs++ })
	defer unsubscribe()

	for i := range 10 {
		cam := geom.NewPerspectiveCamera(75, 1.6)
		cam.Pos = mgl64.Vec3{float64(i), 0, 0}
		s.SetCamera(cam)
	}
	assert.Zero(t, recalcs, "camera updates alone do not touch windows")

	s.Frame(16 * time.Millisecond)
	assert.Equal(t, 1, recalcs)

	a, _ := s.Window("a")
	assert.True(t, geom.ApproxEqual(a.Position, mgl64.Vec3{9, 0, -3}, 1e-6), "got %v", a.Position)

	s.Frame(16 * time.Millisecond)
	assert.Equal(t, 1, recalcs, "clean frames do nothing")
}

func TestSubscribeUnsubscribe(t *testing.T) {
	s := newStore(t)
	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	wm.CreateWindow(s, nil, wm.WithDisableTiling(true))
	assert.Equal(t, 1, calls)

	unsubscribe()
	wm.CreateWindow(s, nil, wm.WithDisableTiling(true))
	assert.Equal(t, 1, calls)
}

func TestTileWindowsRejectsNone(t *testing.T) {
	s := newStore(t)
	err := s.TileWindows(layout.None, false)
	assert.ErrorIs(t, err, layout.ErrUnknownMode)

	err = s.TileWindowsByName("spiral", false)
	assert.ErrorIs(t, err, layout.ErrUnknownMode)
	assert.Equal(t, layout.None, s.CurrentMode())

	require.NoError(t, s.TileWindowsByName("Cockpit", true))
	assert.Equal(t, layout.Cockpit, s.CurrentMode())
}

func TestTileWindowsWithoutCamera(t *testing.T) {
	s := wm.NewStore(wm.Options{Logger: log.New(io.Discard)})
	wm.CreateWindow(s, nil, wm.WithDisableTiling(true))

	v := s.Version()
	notified := 0
	unsubscribe := s.Subscribe(func() { notified++ })
	defer unsubscribe()

	err := s.TileWindows(layout.Grid, false)
	assert.ErrorIs(t, err, geom.ErrNoCamera)
	assert.Equal(t, v, s.Version())
	assert.Zero(t, notified)
	assert.Equal(t, layout.None, s.CurrentMode(), "a failed tile keeps the previous mode")
}

func TestTileWindowsSkipsFocused(t *testing.T) {
	s := newStore(t)
	a := wm.CreateWindow(s, nil, wm.WithID("a"), wm.WithDisableInitialFocus(true))
	wm.CreateWindow(s, nil, wm.WithID("b"), wm.WithDisableInitialFocus(true))
	settle(s)

	s.Focus("a")
	focused := a.Position
	require.NoError(t, s.TileWindows(layout.Around, true))
	assert.Equal(t, focused, a.Position)
}

func TestResetWindowPositions(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithPosition(mgl64.Vec3{4, 4, 4}), wm.WithDisableTiling(true))
	require.NoError(t, s.TileWindows(layout.Grid, false))

	s.Focus(w.ID)
	s.ResetWindowPositions()
	assert.Equal(t, mgl64.Vec3{4, 4, 4}, w.Position)
	assert.Equal(t, layout.None, s.CurrentMode())
}

func TestResetWindowsInFrontOfCamera(t *testing.T) {
	s := newStore(t)
	a := wm.CreateWindow(s, nil, wm.WithScale(mgl64.Vec3{2, 2, 2}), wm.WithDisableInitialFocus(true))
	b := wm.CreateWindow(s, nil, wm.WithDisableInitialFocus(true))
	settle(s)

	s.ResetWindowsInFrontOfCamera()
	assert.Equal(t, layout.Cockpit, s.CurrentMode())
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, a.Scale)
	assert.GreaterOrEqual(t, geom.Distance(a.Position, b.Position), layout.DefaultParams().MinDistance-1e-9)
	assert.Less(t, a.Position.Z(), 0.0)
}

func TestSelectableWindowBecomesSelected(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithSelectable(true))
	assert.Equal(t, w.ID, s.SelectedWindow())

	s.RemoveWindow(w.ID)
	assert.Empty(t, s.SelectedWindow())
}

func TestUpdateWindowKeepsID(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithID("a"), wm.WithProps(map[string]any{"x": 1}))

	s.UpdateWindow("a", func(w *wm.Window) {
		w.ID = "b"
		w.Title = "renamed"
	})
	assert.Equal(t, "a", w.ID)
	assert.Equal(t, "renamed", w.Title)

	s.UpdateWindowProps("a", map[string]any{"y": 2})
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, w.Props)
}

func TestDisplayRotationFacesCamera(t *testing.T) {
	s := newStore(t)
	w := wm.CreateWindow(s, nil, wm.WithPosition(mgl64.Vec3{0, 0, -3}), wm.WithDisableTiling(true))

	rot, ok := s.DisplayRotation(w.ID)
	require.True(t, ok)
	assert.True(t, rot.ApproxEqual(geom.Euler{}, 1e-9), "window straight ahead faces back at the camera, got %v", rot)

	s.SetPosition(w.ID, mgl64.Vec3{3, 0, -3})
	rot, _ = s.DisplayRotation(w.ID)
	assert.InDelta(t, -math.Pi/4, rot.Y, 1e-9)
	assert.InDelta(t, 0, rot.X, 1e-9)

	s.UpdateWindow(w.ID, func(w *wm.Window) { w.FollowCamera = false })
	rot, _ = s.DisplayRotation(w.ID)
	assert.True(t, rot.IsZero())
}
