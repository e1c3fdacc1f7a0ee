// Package session owns the per-session state of an AR scene: the image
// database, the object asset, the placement slot and the per-frame plane
// diagnostics. The host drives it from a single thread.
package session

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/zeusync/arscene/internal/config"
	"github.com/zeusync/arscene/internal/core/assets"
	"github.com/zeusync/arscene/internal/core/events"
	"github.com/zeusync/arscene/internal/core/events/bus"
	"github.com/zeusync/arscene/internal/core/geometry"
	"github.com/zeusync/arscene/internal/core/imagedb"
	"github.com/zeusync/arscene/internal/core/observability/log"
	"github.com/zeusync/arscene/internal/core/placement"
)

const eventSource = "session"

type Session struct {
	cfg       *config.Config
	log       log.Log
	bus       bus.EventBus
	loader    assets.Loader
	readiness *placement.Readiness
	placement *placement.Controller
	images    *imagedb.Database

	started    bool
	paused     bool
	closed     bool
	cancelLoad context.CancelFunc
	loadDone   <-chan struct{}
	loadErr    atomic.Pointer[error]
	announced  bool

	last geometry.FrameSummary
}

// New wires a session. Nothing is loaded until Start.
func New(cfg *config.Config, logger log.Log, eventBus bus.EventBus, anchors placement.AnchorFactory, loader assets.Loader) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.NewNop()
	}
	if eventBus == nil {
		eventBus = bus.New()
	}
	readiness := &placement.Readiness{}
	controller, err := placement.NewController(anchors, readiness,
		placement.WithLogger(logger),
		placement.WithEventBus(eventBus),
		placement.WithScale(cfg.Model.Scale),
	)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:       cfg,
		log:       logger.Named("session"),
		bus:       eventBus,
		loader:    loader,
		readiness: readiness,
		placement: controller,
		images:    imagedb.New(),
	}, nil
}

// Start bootstraps the image database and begins loading the object asset
// in the background. Image failures are logged and leave the session
// usable; a failed asset load only means taps keep being ignored.
func (s *Session) Start(ctx context.Context) error {
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.closed = false
	s.log.Info("session starting",
		log.String("update_mode", string(s.cfg.Session.UpdateMode)),
		log.String("focus_mode", string(s.cfg.Session.FocusMode)),
		log.String("depth_mode", string(s.cfg.Session.DepthMode)),
	)

	db, err := imagedb.Bootstrap(ctx, s.images, s.cfg.Images, s.log)
	if err != nil {
		s.log.Error("augmented image database bootstrap failed", log.Error(err))
	}
	s.images = db

	if s.loader == nil {
		s.log.Warn("no asset loader, placement disabled")
		return nil
	}
	var (
		loadCtx context.Context
		cancel  context.CancelFunc
	)
	if timeout := s.cfg.Model.LoadTimeout; timeout > 0 {
		loadCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		loadCtx, cancel = context.WithCancel(ctx)
	}
	s.cancelLoad = cancel
	uri := s.cfg.Model.URI
	s.loadDone = assets.LoadAsync(loadCtx, s.loader, uri,
		func(a *assets.Asset) {
			if err := s.readiness.MarkReady(a); err != nil {
				s.log.Warn("asset completion ignored", log.String("uri", uri), log.Error(err))
				return
			}
			s.log.Info("renderable is ready", log.Stringer("asset", a))
		},
		func(err error) {
			s.loadErr.Store(&err)
			s.log.Error("unable to load renderable", log.String("uri", uri), log.Error(err))
		},
	)
	return nil
}

// AssetLoaded is closed once the asset load finished, successfully or not.
// It is nil before Start.
func (s *Session) AssetLoaded() <-chan struct{} {
	return s.loadDone
}

// OnFrame consumes one tracking update. It returns the plane summary for
// the frame; a frame with no updated planes returns the zero summary.
func (s *Session) OnFrame(f Frame) geometry.FrameSummary {
	if s.closed || s.paused {
		return geometry.FrameSummary{}
	}
	s.announceAsset()

	var summary geometry.FrameSummary
	if len(f.Planes) > 0 {
		summary = geometry.Summarize(f.Planes)
		s.last = summary
		s.log.Debug(summary.String(),
			log.Int("planes", summary.Total),
			log.Int("vertical", summary.Vertical),
			log.Float64s("widths", summary.Widths()),
		)
		s.publish(events.PlanesUpdated, summary)
	}

	if len(f.Images) > 0 {
		names := make([]string, len(f.Images))
		for i, img := range f.Images {
			names[i] = img.Name
			if _, known := s.images.Lookup(img.Name); !known {
				s.log.Warn("tracked image not in database", log.String("name", img.Name))
			}
		}
		s.log.Info("OnUpdate: " + strings.Join(names, " + "))
		s.publish(events.ImagesUpdated, names)
	}
	return summary
}

// OnTap forwards a tap to the placement controller.
func (s *Session) OnTap(tap placement.TapEvent, resolver placement.TapResolver) placement.Outcome {
	if s.closed || s.paused {
		return placement.OutcomeNoHit
	}
	s.announceAsset()
	return s.placement.HandleTap(tap, resolver)
}

func (s *Session) Pause() {
	s.paused = true
	s.log.Debug("session paused")
}

func (s *Session) Resume() {
	s.paused = false
	s.log.Debug("session resumed")
}

// Reset clears the placed object; the loaded asset is kept.
func (s *Session) Reset() {
	s.placement.Reset()
}

// Close tears the session down: the placed object is released, a pending
// asset load is cancelled and the readiness flag is re-armed so a later
// Start loads afresh.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.placement.Reset()
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	if s.loadDone != nil {
		<-s.loadDone
	}
	s.readiness.Rearm()
	s.images = imagedb.New()
	s.loadErr.Store(nil)
	s.announced = false
	s.started = false
	s.closed = true
	s.log.Info("session closed")
}

func (s *Session) Placement() *placement.Controller { return s.placement }
func (s *Session) Images() *imagedb.Database        { return s.images }
func (s *Session) Bus() bus.EventBus                { return s.bus }

// LastSummary is the summary of the latest frame that carried planes.
func (s *Session) LastSummary() geometry.FrameSummary { return s.last }

// announceAsset publishes the asset outcome once, on the session thread.
func (s *Session) announceAsset() {
	if s.announced {
		return
	}
	if a, ok := s.readiness.Asset(); ok {
		s.announced = true
		s.publish(events.AssetReady, a)
		return
	}
	if errPtr := s.loadErr.Load(); errPtr != nil {
		s.announced = true
		s.publish(events.AssetFailed, *errPtr)
	}
}

func (s *Session) publish(eventType string, data any) {
	if err := s.bus.Publish(bus.NewEvent(eventType, eventSource, data)); err != nil {
		s.log.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
