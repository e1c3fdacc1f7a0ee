// Package placement governs the single object a user may place in the
// tracked world per session.
package placement

import (
	"github.com/google/uuid"

	"github.com/zeusync/arscene/internal/core/assets"
	"github.com/zeusync/arscene/internal/core/events"
	"github.com/zeusync/arscene/internal/core/events/bus"
	"github.com/zeusync/arscene/internal/core/observability/log"
	"github.com/zeusync/arscene/internal/core/spatial"
)

// DefaultScale is the local scale applied to the placed object.
const DefaultScale = 0.1

const eventSource = "placement"

// State of the placement slot.
type State uint8

const (
	Empty State = iota
	Occupied
)

func (s State) String() string {
	if s == Occupied {
		return "OCCUPIED"
	}
	return "EMPTY"
}

// Outcome reports what a placement attempt did. Only OutcomePlaced changes
// state; every other outcome is a no-op.
type Outcome uint8

const (
	OutcomePlaced Outcome = iota
	// OutcomeNotReady: the object asset has not finished loading.
	OutcomeNotReady
	// OutcomeAlreadyOccupied: an object is already placed this session.
	OutcomeAlreadyOccupied
	// OutcomeAnchorFailed: the runtime refused to create the anchor.
	OutcomeAnchorFailed
	// OutcomeNoHit: the tap did not resolve to a surface.
	OutcomeNoHit
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeNotReady:
		return "not_ready"
	case OutcomeAlreadyOccupied:
		return "already_occupied"
	case OutcomeAnchorFailed:
		return "anchor_failed"
	case OutcomeNoHit:
		return "no_hit"
	default:
		return "unknown"
	}
}

// Placement is the occupied slot: an object asset attached to an anchor.
type Placement struct {
	ID     string
	Anchor AnchorHandle
	Asset  *assets.Asset
	Pose   spatial.Pose
	Scale  float64
}

type config struct {
	logger log.Log
	bus    bus.EventBus
	scale  float64
}

type Option func(*config)

// WithLogger sets the diagnostic logger.
func WithLogger(l log.Log) Option {
	return func(c *config) { c.logger = l }
}

// WithEventBus publishes placement transitions on b.
func WithEventBus(b bus.EventBus) Option {
	return func(c *config) { c.bus = b }
}

// WithScale sets the local scale of the placed object. Non-positive values
// keep DefaultScale.
func WithScale(scale float64) Option {
	return func(c *config) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// Controller is the single-slot placement state machine. It is not safe for
// concurrent use; the host serializes taps and resets onto one thread. Only
// the readiness flag may be written from elsewhere.
type Controller struct {
	factory   AnchorFactory
	readiness *Readiness
	log       log.Log
	bus       bus.EventBus
	scale     float64

	slot *Placement
}

// NewController builds an empty controller. A nil readiness gets a fresh,
// unset flag.
func NewController(factory AnchorFactory, readiness *Readiness, opts ...Option) (*Controller, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	cfg := config{logger: log.NewNop(), scale: DefaultScale}
	for _, opt := range opts {
		opt(&cfg)
	}
	if readiness == nil {
		readiness = &Readiness{}
	}
	return &Controller{
		factory:   factory,
		readiness: readiness,
		log:       cfg.logger.Named("placement"),
		bus:       cfg.bus,
		scale:     cfg.scale,
	}, nil
}

func (c *Controller) State() State {
	if c.slot != nil {
		return Occupied
	}
	return Empty
}

// Slot returns the current placement, if any.
func (c *Controller) Slot() (Placement, bool) {
	if c.slot == nil {
		return Placement{}, false
	}
	return *c.slot, true
}

// Readiness exposes the asset flag so a loader can set it.
func (c *Controller) Readiness() *Readiness {
	return c.readiness
}

// PlaceAt anchors the loaded object at pose. It places at most once per
// session: while the asset is not ready, or once an object is placed, the
// call is ignored and only logged.
func (c *Controller) PlaceAt(pose spatial.Pose) Outcome {
	asset, ready := c.readiness.Asset()
	if !ready {
		c.log.Info("tap ignored, object not loaded yet", log.Stringer("pose", pose))
		return c.reject(OutcomeNotReady)
	}
	if c.slot != nil {
		c.log.Debug("tap ignored, object already placed", log.String("placement", c.slot.ID))
		return c.reject(OutcomeAlreadyOccupied)
	}

	anchor, err := c.factory.CreateAnchor(pose)
	if err != nil || anchor == nil {
		c.log.Warn("anchor creation failed", log.Stringer("pose", pose), log.Any("error", err))
		return c.reject(OutcomeAnchorFailed)
	}

	c.slot = &Placement{
		ID:     uuid.NewString(),
		Anchor: anchor,
		Asset:  asset,
		Pose:   pose,
		Scale:  c.scale,
	}
	c.log.Info("object placed",
		log.String("placement", c.slot.ID),
		log.String("anchor", anchor.ID()),
		log.String("asset", asset.URI),
		log.Float64("scale", c.scale),
	)
	c.publish(events.ObjectPlaced, *c.slot)
	return OutcomePlaced
}

// HandleTap resolves the tap and places the object at the hit. Taps that
// miss every surface are ignored.
func (c *Controller) HandleTap(tap TapEvent, resolver TapResolver) Outcome {
	if resolver == nil {
		return OutcomeNoHit
	}
	hit, ok := resolver.Resolve(tap)
	if !ok {
		c.log.Debug("tap did not hit a surface", log.Float64("x", tap.X), log.Float64("y", tap.Y))
		return OutcomeNoHit
	}
	return c.PlaceAt(hit.Pose)
}

// Reset releases the placed object's anchor and empties the slot. The
// readiness flag is left as is.
func (c *Controller) Reset() {
	if c.slot == nil {
		return
	}
	released := *c.slot
	c.slot = nil
	released.Anchor.Detach()
	c.log.Info("placement reset", log.String("placement", released.ID))
	c.publish(events.PlacementReset, released)
}

func (c *Controller) reject(o Outcome) Outcome {
	c.publish(events.PlacementRejected, o)
	return o
}

func (c *Controller) publish(eventType string, data any) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(bus.NewEvent(eventType, eventSource, data)); err != nil {
		c.log.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
