// Package events names the event types a scene session publishes.
package events

const (
	// PlanesUpdated carries a geometry.FrameSummary.
	PlanesUpdated = "planes.updated"
	// ImagesUpdated carries the []string names of updated augmented images.
	ImagesUpdated = "images.updated"

	// ObjectPlaced carries a placement.Placement.
	ObjectPlaced = "placement.placed"
	// PlacementRejected carries a placement.Outcome.
	PlacementRejected = "placement.rejected"
	// PlacementReset carries the released placement.Placement.
	PlacementReset = "placement.reset"

	// AssetReady carries the loaded assets.Asset.
	AssetReady = "asset.ready"
	// AssetFailed carries the load error.
	AssetFailed = "asset.failed"
)
