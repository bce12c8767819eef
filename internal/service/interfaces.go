package service

import (
	"context"

	"github.com/MKhiriev/go-live-sync/models"
)

// SyncService owns the live tree and tells devices about its changes.
//
// Every operation is run as a job on the service's queue and returns a
// [Completion] resolved when the last job belonging to that operation is
// done, including the push sends it triggered.
type SyncService interface {
	// Load reads the live tree from the store. It never notifies.
	Load(ctx context.Context) *Completion
	// Save persists the live tree and announces what changed since the last
	// cycle.
	Save(ctx context.Context) *Completion
	// Mutate applies fn to the live tree, persists it and announces the
	// change, all within one job.
	Mutate(ctx context.Context, fn func(tree models.Tree) error) *Completion
	// Configure installs cfg and resets the baseline so the next cycle
	// announces the whole tree.
	Configure(ctx context.Context, cfg models.PushConfig) *Completion
	// Notify runs a cycle without persisting. Devices, when given, replace
	// the configured device list for this cycle only.
	Notify(ctx context.Context, devices ...models.Device) *Completion
	// Reset drops the baseline, persists and announces the whole tree.
	Reset(ctx context.Context) *Completion
	// CatchUp sends one device the difference between before and the live
	// tree. The shared baseline is not touched.
	CatchUp(ctx context.Context, before models.Tree, device models.Device) *Completion
	// Tree returns a deep copy of the live tree.
	Tree(ctx context.Context) (models.Tree, error)

	IsSynchronizing() bool
	IsConfigured() bool
}

type AppInfoService interface {
	BuildInfo(ctx context.Context) models.AppBuildInfo
}
