package session

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/arscene/internal/config"
	"github.com/zeusync/arscene/internal/core/assets"
	"github.com/zeusync/arscene/internal/core/events"
	"github.com/zeusync/arscene/internal/core/events/bus"
	"github.com/zeusync/arscene/internal/core/geometry"
	"github.com/zeusync/arscene/internal/core/imagedb"
	"github.com/zeusync/arscene/internal/core/observability/log"
	"github.com/zeusync/arscene/internal/core/placement"
	"github.com/zeusync/arscene/internal/core/spatial"
)

type stubLoader struct {
	calls atomic.Int32
	err   error
}

func (l *stubLoader) Load(_ context.Context, uri string) (*assets.Asset, error) {
	l.calls.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	return &assets.Asset{URI: uri, Version: 2}, nil
}

func hitAt(p spatial.Pose) placement.TapResolver {
	return placement.TapResolverFunc(func(placement.TapEvent) (placement.Hit, bool) {
		return placement.Hit{Pose: p}, true
	})
}

func writeImage(t *testing.T, dir, name string, seed uint8) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i) * seed
	}
	img.Set(0, 0, color.NRGBA{A: 255})
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

type fixture struct {
	session *Session
	loader  *stubLoader
	anchors *placement.LocalAnchors
	logs    *observer.ObservedLogs
	events  []bus.Event
}

func newFixture(t *testing.T, loaderErr error) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Model.URI = "file:///tiger.glb"
	cfg.Images = []imagedb.ImageModel{
		{Name: "spoons", Path: writeImage(t, dir, "spoons.png", 3), WidthMeters: 0.1},
		{Name: "qrcode", Path: writeImage(t, dir, "qrcode.png", 7), WidthMeters: 0.12},
	}

	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		loader:  &stubLoader{err: loaderErr},
		anchors: placement.NewLocalAnchors(),
		logs:    logs,
	}
	b := bus.New()
	for _, typ := range []string{events.PlanesUpdated, events.ImagesUpdated, events.AssetReady, events.AssetFailed, events.ObjectPlaced} {
		_, err := b.Subscribe(typ, func(e bus.Event) error {
			f.events = append(f.events, e)
			return nil
		})
		require.NoError(t, err)
	}

	s, err := New(cfg, log.FromZap(zap.New(core)), b, f.anchors, f.loader)
	require.NoError(t, err)
	f.session = s
	return f
}

func (f *fixture) eventTypes() []string {
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type()
	}
	return out
}

func TestSessionPlacesOnceAfterLoad(t *testing.T) {
	f := newFixture(t, nil)
	s := f.session

	assert.Equal(t, placement.OutcomeNotReady, s.OnTap(placement.TapEvent{}, hitAt(spatial.Identity())))

	require.NoError(t, s.Start(context.Background()))
	<-s.AssetLoaded()
	assert.Equal(t, int32(1), f.loader.calls.Load())
	assert.Equal(t, []string{"spoons", "qrcode"}, s.Images().Names())

	target := spatial.Translation(0, 0, -1)
	assert.Equal(t, placement.OutcomePlaced, s.OnTap(placement.TapEvent{X: 1, Y: 2}, hitAt(target)))
	assert.Equal(t, placement.OutcomeAlreadyOccupied, s.OnTap(placement.TapEvent{}, hitAt(spatial.Identity())))

	slot, ok := s.Placement().Slot()
	require.True(t, ok)
	assert.Equal(t, target, slot.Pose)
	assert.Equal(t, 0.1, slot.Scale)
	assert.Equal(t, 1, f.anchors.Created())

	assert.Equal(t, []string{events.AssetReady, events.ObjectPlaced}, f.eventTypes())

	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
}

func TestSessionFrameDiagnostics(t *testing.T) {
	f := newFixture(t, nil)
	s := f.session

	summary := s.OnFrame(Frame{Planes: []spatial.Plane{
		{ID: "floor", Type: spatial.HorizontalUp, Center: spatial.Translation(0, 0, 0)},
		{ID: "w1", Type: spatial.Vertical, Center: spatial.Translation(0, 0, 0)},
		{ID: "w2", Type: spatial.Vertical, Center: spatial.Translation(0, 2, 0)},
	}})
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, []float64{2}, summary.Widths())
	assert.Equal(t, summary, s.LastSummary())

	assert.Equal(t, geometry.FrameSummary{}, s.OnFrame(Frame{}))
	assert.Equal(t, summary, s.LastSummary(), "empty frames keep the last summary")

	require.NoError(t, s.Start(context.Background()))
	<-s.AssetLoaded()
	s.OnFrame(Frame{Images: []AugmentedImage{{Name: "spoons"}, {Name: "wallet"}}})

	assert.Equal(t, 1, f.logs.FilterMessage("OnUpdate: spoons + wallet").Len())
	assert.Equal(t, 1, f.logs.FilterMessage("tracked image not in database").Len())
	assert.Equal(t, []string{events.PlanesUpdated, events.AssetReady, events.ImagesUpdated}, f.eventTypes())
	assert.Equal(t, []string{"spoons", "wallet"}, f.events[2].Data())
}

func TestSessionPauseIgnoresInput(t *testing.T) {
	f := newFixture(t, nil)
	s := f.session
	require.NoError(t, s.Start(context.Background()))
	<-s.AssetLoaded()

	s.Pause()
	assert.Equal(t, placement.OutcomeNoHit, s.OnTap(placement.TapEvent{}, hitAt(spatial.Identity())))
	assert.Equal(t, geometry.FrameSummary{}, s.OnFrame(Frame{Planes: []spatial.Plane{{ID: "a", Type: spatial.Vertical}}}))

	s.Resume()
	assert.Equal(t, placement.OutcomePlaced, s.OnTap(placement.TapEvent{}, hitAt(spatial.Identity())))
}

func TestSessionAssetFailure(t *testing.T) {
	boom := errors.New("404")
	f := newFixture(t, boom)
	s := f.session
	require.NoError(t, s.Start(context.Background()))
	<-s.AssetLoaded()

	for i := 0; i < 3; i++ {
		assert.Equal(t, placement.OutcomeNotReady, s.OnTap(placement.TapEvent{}, hitAt(spatial.Identity())))
	}
	assert.Equal(t, placement.Empty, s.Placement().State())
	require.Equal(t, []string{events.AssetFailed}, f.eventTypes())
	assert.ErrorIs(t, f.events[0].Data().(error), boom)
	assert.Equal(t, 1, f.logs.FilterMessage("unable to load renderable").Len())
}

func TestSessionResetAndClose(t *testing.T) {
	f := newFixture(t, nil)
	s := f.session
	require.NoError(t, s.Start(context.Background()))
	<-s.AssetLoaded()
	require.Equal(t, placement.OutcomePlaced, s.OnTap(placement.TapEvent{}, hitAt(spatial.Identity())))

	s.Reset()
	assert.Equal(t, placement.Empty, s.Placement().State())
	assert.Equal(t, placement.OutcomePlaced, s.OnTap(placement.TapEvent{}, hitAt(spatial.Identity())))

	s.Close()
	assert.Zero(t, f.anchors.Attached())
	assert.False(t, s.Placement().Readiness().Ready())
	assert.Equal(t, placement.OutcomeNoHit, s.OnTap(placement.TapEvent{}, hitAt(spatial.Identity())))
	s.Close()

	require.NoError(t, s.Start(context.Background()))
	<-s.AssetLoaded()
	assert.Equal(t, int32(2), f.loader.calls.Load())
	assert.Equal(t, 2, s.Images().Len())
	assert.Equal(t, placement.OutcomePlaced, s.OnTap(placement.TapEvent{}, hitAt(spatial.Identity())))
}

func TestSessionWithoutLoader(t *testing.T) {
	s, err := New(nil, nil, nil, placement.NewLocalAnchors(), nil)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Images = nil
	s.cfg = cfg

	require.NoError(t, s.Start(context.Background()))
	assert.Nil(t, s.AssetLoaded())
	assert.Equal(t, placement.OutcomeNotReady, s.OnTap(placement.TapEvent{}, hitAt(spatial.Identity())))
}

func TestNewRequiresAnchorFactory(t *testing.T) {
	_, err := New(nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, placement.ErrNilFactory)
}

func TestRequireGLES(t *testing.T) {
	for _, ok := range []string{"3.0", "3.2", "OpenGL ES 3.1", "3.2 V@415.0"} {
		assert.NoError(t, RequireGLES(ok), ok)
	}
	for _, bad := range []string{"2.0", "", "OpenGL ES", "abc"} {
		assert.ErrorIs(t, RequireGLES(bad), ErrUnsupportedDevice, bad)
	}
}
