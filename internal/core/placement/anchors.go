package placement

import (
	"sync"

	"github.com/google/uuid"

	"github.com/zeusync/arscene/internal/core/spatial"
)

// AnchorHandle is an opaque reference to a fixed pose in tracked space,
// owned by the AR runtime.
type AnchorHandle interface {
	ID() string
	Pose() spatial.Pose
	// Detach releases the anchor; the runtime stops tracking it.
	Detach()
}

// AnchorFactory creates anchors in the AR runtime.
type AnchorFactory interface {
	CreateAnchor(pose spatial.Pose) (AnchorHandle, error)
}

// LocalAnchors is an in-memory AnchorFactory for hosts without a runtime
// (trace replay, tests). It keeps track of the anchors still attached.
type LocalAnchors struct {
	mu       sync.Mutex
	attached map[string]*localAnchor
	created  int
}

func NewLocalAnchors() *LocalAnchors {
	return &LocalAnchors{attached: make(map[string]*localAnchor)}
}

func (f *LocalAnchors) CreateAnchor(pose spatial.Pose) (AnchorHandle, error) {
	a := &localAnchor{id: uuid.NewString(), pose: pose, owner: f}
	f.mu.Lock()
	f.attached[a.id] = a
	f.created++
	f.mu.Unlock()
	return a, nil
}

// Attached returns how many anchors are currently tracked.
func (f *LocalAnchors) Attached() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.attached)
}

// Created returns how many anchors were ever created.
func (f *LocalAnchors) Created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

type localAnchor struct {
	id    string
	pose  spatial.Pose
	owner *LocalAnchors
}

func (a *localAnchor) ID() string         { return a.id }
func (a *localAnchor) Pose() spatial.Pose { return a.pose }

func (a *localAnchor) Detach() {
	a.owner.mu.Lock()
	delete(a.owner.attached, a.id)
	a.owner.mu.Unlock()
}
