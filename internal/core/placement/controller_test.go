package placement

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/arscene/internal/core/assets"
	"github.com/zeusync/arscene/internal/core/events"
	"github.com/zeusync/arscene/internal/core/events/bus"
	"github.com/zeusync/arscene/internal/core/spatial"
)

var tiger = &assets.Asset{URI: "tiger.glb", Version: 2}

func newController(t *testing.T, opts ...Option) (*Controller, *LocalAnchors) {
	t.Helper()
	anchors := NewLocalAnchors()
	c, err := NewController(anchors, nil, opts...)
	require.NoError(t, err)
	return c, anchors
}

func TestNewControllerRequiresFactory(t *testing.T) {
	_, err := NewController(nil, nil)
	assert.ErrorIs(t, err, ErrNilFactory)
}

func TestPlaceAtNotReadyStaysEmpty(t *testing.T) {
	c, anchors := newController(t)

	assert.Equal(t, OutcomeNotReady, c.PlaceAt(spatial.Translation(0, 0, -1)))
	assert.Equal(t, Empty, c.State())
	assert.Zero(t, anchors.Created())
	_, ok := c.Slot()
	assert.False(t, ok)
}

func TestPlaceAtReadyOccupies(t *testing.T) {
	c, anchors := newController(t, WithScale(0.25))
	require.NoError(t, c.Readiness().MarkReady(tiger))

	pose := spatial.Translation(0.5, 0, -1)
	assert.Equal(t, OutcomePlaced, c.PlaceAt(pose))
	assert.Equal(t, Occupied, c.State())
	assert.Equal(t, 1, anchors.Created())

	slot, ok := c.Slot()
	require.True(t, ok)
	assert.Equal(t, pose, slot.Pose)
	assert.Equal(t, pose, slot.Anchor.Pose())
	assert.Same(t, tiger, slot.Asset)
	assert.Equal(t, 0.25, slot.Scale)
	assert.NotEmpty(t, slot.ID)
}

func TestPlaceAtOccupiedIsIdempotent(t *testing.T) {
	c, anchors := newController(t)
	require.NoError(t, c.Readiness().MarkReady(tiger))
	require.Equal(t, OutcomePlaced, c.PlaceAt(spatial.Translation(0, 0, -1)))
	first, _ := c.Slot()

	for _, p := range []spatial.Pose{spatial.Translation(1, 0, 0), spatial.Translation(0, 0, -1), spatial.Identity()} {
		assert.Equal(t, OutcomeAlreadyOccupied, c.PlaceAt(p))
	}
	again, _ := c.Slot()
	assert.Equal(t, first, again)
	assert.Equal(t, 1, anchors.Created())
	assert.Equal(t, 1, anchors.Attached())
}

func TestResetAllowsNewPlacement(t *testing.T) {
	c, anchors := newController(t)
	require.NoError(t, c.Readiness().MarkReady(tiger))
	require.Equal(t, OutcomePlaced, c.PlaceAt(spatial.Translation(0, 0, -1)))

	c.Reset()
	assert.Equal(t, Empty, c.State())
	_, ok := c.Slot()
	assert.False(t, ok)
	assert.Zero(t, anchors.Attached())
	assert.True(t, c.Readiness().Ready(), "reset keeps the loaded asset")

	second := spatial.Translation(2, 0, 0)
	assert.Equal(t, OutcomePlaced, c.PlaceAt(second))
	slot, _ := c.Slot()
	assert.Equal(t, second, slot.Pose)
	assert.Equal(t, 1, anchors.Attached())

	c.Reset()
	c.Reset()
	assert.Equal(t, Empty, c.State())
}

type failingFactory struct{}

func (failingFactory) CreateAnchor(spatial.Pose) (AnchorHandle, error) {
	return nil, errors.New("not tracking")
}

func TestPlaceAtAnchorFailureStaysEmpty(t *testing.T) {
	c, err := NewController(failingFactory{}, nil)
	require.NoError(t, err)
	require.NoError(t, c.Readiness().MarkReady(tiger))

	assert.Equal(t, OutcomeAnchorFailed, c.PlaceAt(spatial.Identity()))
	assert.Equal(t, Empty, c.State())
}

func TestHandleTap(t *testing.T) {
	c, _ := newController(t)
	require.NoError(t, c.Readiness().MarkReady(tiger))

	miss := TapResolverFunc(func(TapEvent) (Hit, bool) { return Hit{}, false })
	assert.Equal(t, OutcomeNoHit, c.HandleTap(TapEvent{X: 10, Y: 20}, miss))
	assert.Equal(t, OutcomeNoHit, c.HandleTap(TapEvent{}, nil))
	assert.Equal(t, Empty, c.State())

	hitPose := spatial.Translation(0, 0, -2)
	hit := TapResolverFunc(func(TapEvent) (Hit, bool) { return Hit{Pose: hitPose}, true })
	assert.Equal(t, OutcomePlaced, c.HandleTap(TapEvent{X: 10, Y: 20, ViewportWidth: 1080, ViewportHeight: 1920}, hit))
	slot, _ := c.Slot()
	assert.Equal(t, hitPose, slot.Pose)
}

func TestControllerPublishesTransitions(t *testing.T) {
	b := bus.New()
	var seen []string
	for _, typ := range []string{events.ObjectPlaced, events.PlacementRejected, events.PlacementReset} {
		_, err := b.Subscribe(typ, func(e bus.Event) error {
			seen = append(seen, e.Type())
			return nil
		})
		require.NoError(t, err)
	}

	c, _ := newController(t, WithEventBus(b))
	c.PlaceAt(spatial.Identity())
	require.NoError(t, c.Readiness().MarkReady(tiger))
	c.PlaceAt(spatial.Identity())
	c.PlaceAt(spatial.Identity())
	c.Reset()

	assert.Equal(t, []string{
		events.PlacementRejected,
		events.ObjectPlaced,
		events.PlacementRejected,
		events.PlacementReset,
	}, seen)
}

func TestReadinessWriteOnce(t *testing.T) {
	var r Readiness
	assert.False(t, r.Ready())
	assert.ErrorIs(t, r.MarkReady(nil), ErrNilAsset)

	other := &assets.Asset{URI: "other.glb"}
	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				results[i] = r.MarkReady(tiger)
			} else {
				results[i] = r.MarkReady(other)
			}
		}()
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyReady)
		}
	}
	assert.Equal(t, 1, wins)

	r.Rearm()
	assert.False(t, r.Ready())
	assert.NoError(t, r.MarkReady(other))
	got, ok := r.Asset()
	assert.True(t, ok)
	assert.Same(t, other, got)
}

func TestOutcomeAndStateStrings(t *testing.T) {
	assert.Equal(t, "placed", OutcomePlaced.String())
	assert.Equal(t, "already_occupied", OutcomeAlreadyOccupied.String())
	assert.Equal(t, "EMPTY", Empty.String())
	assert.Equal(t, "OCCUPIED", Occupied.String())
}
