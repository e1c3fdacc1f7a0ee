package placement

import (
	"sync/atomic"

	"github.com/zeusync/arscene/internal/core/assets"
)

// Readiness is the write-once flag holding the loaded object asset. It is
// set from the loader's goroutine and read from the session thread.
type Readiness struct {
	asset atomic.Pointer[assets.Asset]
}

// MarkReady records the loaded asset. Only the first call wins; later calls
// return ErrAlreadyReady and leave the flag untouched.
func (r *Readiness) MarkReady(a *assets.Asset) error {
	if a == nil {
		return ErrNilAsset
	}
	if !r.asset.CompareAndSwap(nil, a) {
		return ErrAlreadyReady
	}
	return nil
}

// Asset returns the loaded asset, if any. It never blocks.
func (r *Readiness) Asset() (*assets.Asset, bool) {
	a := r.asset.Load()
	return a, a != nil
}

func (r *Readiness) Ready() bool {
	return r.asset.Load() != nil
}

// Rearm clears the flag so a new load may set it. Only a full session
// teardown does this.
func (r *Readiness) Rearm() {
	r.asset.Store(nil)
}
