package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-live-sync/internal/adapter"
	"github.com/MKhiriev/go-live-sync/internal/diff"
	"github.com/MKhiriev/go-live-sync/internal/logger"
	"github.com/MKhiriev/go-live-sync/internal/store"
	"github.com/MKhiriev/go-live-sync/internal/utils"
	"github.com/MKhiriev/go-live-sync/internal/workers"
	"github.com/MKhiriev/go-live-sync/models"
)

// JobSubmitter accepts jobs for serialized execution. [workers.Queue]
// implements it.
type JobSubmitter interface {
	Submit(job workers.Job) error
}

// AdapterFactory builds the push transport for an API key.
type AdapterFactory func(apiKey string) (adapter.PushAdapter, error)

type syncService struct {
	queue      JobSubmitter
	store      store.TreeStore
	treePath   string
	newAdapter AdapterFactory

	logger *logger.Logger

	// owned by jobs running on queue
	tree       models.Tree
	snapshot   *snapshotTracker
	pushConfig *models.PushConfig
	push       adapter.PushAdapter

	loading    atomic.Bool
	saving     atomic.Bool
	configured atomic.Bool
}

// NewSyncService returns a [SyncService] keeping the live tree at treePath
// of st and running every operation on queue.
func NewSyncService(queue JobSubmitter, st store.TreeStore, treePath string, newAdapter AdapterFactory, logger *logger.Logger) SyncService {
	return &syncService{
		queue:      queue,
		store:      st,
		treePath:   treePath,
		newAdapter: newAdapter,
		logger:     logger.WithStr("tree", treePath),
		tree:       models.NewTree(),
		snapshot:   newSnapshotTracker(),
	}
}

func (s *syncService) IsSynchronizing() bool {
	return s.loading.Load() || s.saving.Load()
}

func (s *syncService) IsConfigured() bool {
	return s.configured.Load()
}

// submit runs job on the queue and resolves the returned completion with
// job's error unless job hands the completion over to later jobs.
func (s *syncService) submit(name string, job func(ctx context.Context, c *Completion) error) *Completion {
	c := newCompletion()
	err := s.queue.Submit(func(ctx context.Context) error {
		defer func() {
			if r := recover(); r != nil {
				c.resolve(Report{}, fmt.Errorf("%s panicked: %v", name, r))
				panic(r)
			}
		}()
		if err := job(ctx, c); err != nil {
			c.resolve(Report{}, err)
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Err(err).Str("func", "syncService.submit").Str("op", name).Msg("job rejected")
		c.resolve(Report{}, err)
	}
	return c
}

func (s *syncService) Load(_ context.Context) *Completion {
	return s.submit("load", func(ctx context.Context, c *Completion) error {
		s.loading.Store(true)
		defer s.loading.Store(false)

		err := s.load(ctx)
		c.resolve(Report{}, err)
		return err
	})
}

func (s *syncService) load(ctx context.Context) error {
	tree, err := s.store.Load(ctx, s.treePath)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Join(ctxErr, err)
	}
	switch {
	case err == nil:
		s.tree = tree
		return s.snapshot.CommitCycle(tree)

	case errors.Is(err, store.ErrTreeNotFound):
		s.logger.Info().Str("func", "syncService.load").Msg("no tree stored yet, starting empty")
		s.tree = models.NewTree()
		if err = s.persist(ctx); err != nil {
			return err
		}
		return s.snapshot.CommitCycle(s.tree)

	case errors.Is(err, store.ErrStoreUnavailable):
		// the stored tree is presumed intact; keep it and the current state
		err = fmt.Errorf("%w: %w", ErrStoreReadFailure, err)
		s.logger.Err(err).Str("func", "syncService.load").Msg("tree store unavailable, keeping current state")
		return err

	default:
		s.logger.Err(fmt.Errorf("%w: %w", ErrStoreReadFailure, err)).
			Str("func", "syncService.load").
			Msg("stored tree unreadable, resetting to empty")
		if delErr := s.store.Delete(ctx, s.treePath); delErr != nil {
			s.logger.Err(delErr).Str("func", "syncService.load").Msg("failed to delete stale tree")
		}
		s.tree = models.NewTree()
		s.snapshot.Reset()
		return s.persist(ctx)
	}
}

func (s *syncService) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.treePath, s.tree); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWriteFailure, err)
	}
	return nil
}

func (s *syncService) Save(_ context.Context) *Completion {
	return s.submit("save", func(ctx context.Context, c *Completion) error {
		return s.saveAndNotify(ctx, c)
	})
}

func (s *syncService) Mutate(_ context.Context, fn func(tree models.Tree) error) *Completion {
	if fn == nil {
		return ResolvedCompletion(Report{}, ErrNilMutation)
	}
	return s.submit("mutate", func(ctx context.Context, c *Completion) error {
		draft, err := s.tree.Clone()
		if err != nil {
			return err
		}
		if err = fn(draft); err != nil {
			return fmt.Errorf("apply mutation: %w", err)
		}
		return s.commitAndNotify(ctx, c, draft)
	})
}

func (s *syncService) Reset(_ context.Context) *Completion {
	return s.submit("reset", func(ctx context.Context, c *Completion) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.snapshot.Reset()
		return s.saveAndNotify(ctx, c)
	})
}

func (s *syncService) saveAndNotify(ctx context.Context, c *Completion) error {
	return s.commitAndNotify(ctx, c, s.tree)
}

// commitAndNotify installs next as the live tree, persists it and runs a
// cycle. A job whose context is already done changes nothing.
func (s *syncService) commitAndNotify(ctx context.Context, c *Completion, next models.Tree) error {
	s.saving.Store(true)
	defer s.saving.Store(false)

	if err := ctx.Err(); err != nil {
		return err
	}
	s.tree = next
	if err := s.persist(ctx); err != nil {
		s.logger.Err(err).Str("func", "syncService.saveAndNotify").Msg("cycle aborted")
		return err
	}
	return s.runCycle(ctx, c, nil)
}

func (s *syncService) Notify(_ context.Context, devices ...models.Device) *Completion {
	return s.submit("notify", func(ctx context.Context, c *Completion) error {
		return s.runCycle(ctx, c, devices)
	})
}

func (s *syncService) Configure(_ context.Context, cfg models.PushConfig) *Completion {
	if err := validateLimits(cfg.Notification); err != nil {
		s.logger.Err(err).Str("func", "syncService.Configure").Msg("push config rejected")
		return ResolvedCompletion(Report{}, err)
	}

	return s.submit("configure", func(ctx context.Context, c *Completion) error {
		push, err := s.newAdapter(cfg.APIKey)
		if err != nil {
			return fmt.Errorf("build push adapter: %w", err)
		}

		installed := cfg
		installed.Devices = append([]models.Device(nil), cfg.Devices...)
		s.pushConfig = &installed
		s.push = push
		s.snapshot.Reset()
		s.configured.Store(true)

		s.logger.Info().
			Str("func", "syncService.Configure").
			Str("tag", cfg.Tag).
			Int("devices", len(cfg.Devices)).
			Msg("push config installed")

		c.resolve(Report{}, nil)
		return nil
	})
}

func (s *syncService) CatchUp(_ context.Context, before models.Tree, device models.Device) *Completion {
	return s.submit("catchup", func(ctx context.Context, c *Completion) error {
		if s.pushConfig == nil {
			c.resolve(Report{}, nil)
			return nil
		}
		return s.announce(c, before, []models.Device{device})
	})
}

func (s *syncService) Tree(ctx context.Context) (models.Tree, error) {
	var (
		tree models.Tree
		err  error
	)
	c := s.submit("tree", func(_ context.Context, c *Completion) error {
		tree, err = s.tree.Clone()
		c.resolve(Report{}, err)
		return err
	})
	if _, waitErr := c.Wait(ctx); waitErr != nil {
		return nil, waitErr
	}
	return tree, err
}

// runCycle diffs the live tree against the baseline, advances the baseline
// and queues the envelopes. devices override the configured list when given;
// such a cycle announces without advancing the baseline.
func (s *syncService) runCycle(ctx context.Context, c *Completion, devices []models.Device) error {
	if s.pushConfig == nil {
		s.logger.Debug().Str("func", "syncService.runCycle").Msg("no push config, skipping notification")
		c.resolve(Report{}, nil)
		return nil
	}

	before, err := s.snapshot.BeginCycle()
	if err != nil {
		return err
	}

	// an override reaches only some devices, so the shared baseline stays
	if len(devices) > 0 {
		return s.announce(c, before, devices)
	}

	dispatches, report, err := s.planCycle(before, s.pushConfig.Devices)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}
	previous := s.snapshot.Digest()
	if err = s.snapshot.CommitCycle(s.tree); err != nil {
		return err
	}
	s.logger.Debug().
		Str("func", "syncService.runCycle").
		Str("cycle", report.CycleID).
		Uint64("baseline_from", previous).
		Uint64("baseline_to", s.snapshot.Digest()).
		Msg("baseline advanced")

	s.dispatch(c, dispatches, report)
	return nil
}

// announce is runCycle for a caller supplied baseline.
func (s *syncService) announce(c *Completion, before models.Tree, devices []models.Device) error {
	dispatches, report, err := s.planCycle(before, devices)
	if err != nil {
		return err
	}
	s.dispatch(c, dispatches, report)
	return nil
}

func (s *syncService) planCycle(before models.Tree, devices []models.Device) ([]models.Dispatch, Report, error) {
	doc, changed, err := diff.Diff(before, s.tree)
	if err != nil {
		return nil, Report{}, err
	}

	cycleID := s.pushConfig.ReferenceID
	if cycleID == "" {
		cycleID = utils.NewID()
	}

	tokens := models.TokensByPlatform(devices)
	overhead := s.pushConfig.Notification.Size()

	var dispatches []models.Dispatch
	for _, p := range models.Platforms {
		if len(tokens[p]) == 0 {
			continue
		}
		fragments, err := Fragment(doc, changed, p, overhead)
		if err != nil {
			return nil, Report{}, err
		}
		dispatches = append(dispatches, Plan(p, fragments, tokens[p], cycleID, s.pushConfig.Tag)...)
	}

	s.logger.Debug().
		Str("func", "syncService.planCycle").
		Str("cycle", cycleID).
		Bool("changed", changed).
		Int("envelopes", len(dispatches)).
		Msg("cycle planned")

	return dispatches, Report{CycleID: cycleID, Changed: changed, Envelopes: len(dispatches)}, nil
}

// dispatch queues one job per envelope; the last one resolves c.
func (s *syncService) dispatch(c *Completion, dispatches []models.Dispatch, report Report) {
	if len(dispatches) == 0 {
		c.resolve(report, nil)
		return
	}

	t := &cycleTracker{completion: c, report: report, pending: len(dispatches)}
	push, notification := s.push, s.pushConfig.Notification

	for i, d := range dispatches {
		if err := s.queue.Submit(s.sendJob(push, notification, d, t)); err != nil {
			// the remaining envelopes will never run
			t.abort(len(dispatches)-i, err)
			return
		}
	}
}

func (s *syncService) sendJob(push adapter.PushAdapter, n models.Notification, d models.Dispatch, t *cycleTracker) workers.Job {
	return func(ctx context.Context) (err error) {
		skipped := false
		defer func() { t.done(skipped, err) }()

		if push == nil {
			skipped = true
			return nil
		}

		result, err := push.Send(ctx, models.NewPushMessage(d, n))
		switch {
		case err == nil:
			s.logger.Debug().
				Str("func", "syncService.sendJob").
				Stringer("platform", d.Platform).
				Stringer("envelope", d.Envelope).
				Int("success", result.Success).
				Int("failure", result.Failure).
				Msg("envelope sent")
			return nil
		case errors.Is(err, adapter.ErrTransportUnconfigured):
			s.logger.Warn().
				Str("func", "syncService.sendJob").
				Stringer("envelope", d.Envelope).
				Msg("push transport not configured, envelope skipped")
			skipped = true
			return nil
		default:
			return fmt.Errorf("%w: %s to %d %s devices: %w",
				ErrDeliveryFailure, d.Envelope, len(d.Tokens), d.Platform, err)
		}
	}
}

// cycleTracker collects the outcomes of one cycle's envelope jobs.
type cycleTracker struct {
	mu         sync.Mutex
	completion *Completion
	report     Report
	pending    int
	errs       []error
}

func (t *cycleTracker) done(skipped bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case err != nil:
		t.report.Failed++
		t.errs = append(t.errs, err)
	case skipped:
		t.report.Skipped++
	default:
		t.report.Delivered++
	}

	t.pending--
	if t.pending == 0 {
		t.completion.resolve(t.report, errors.Join(t.errs...))
	}
}

func (t *cycleTracker) abort(unsent int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.report.Failed += unsent
	t.errs = append(t.errs, err)
	t.pending -= unsent
	if t.pending == 0 {
		t.completion.resolve(t.report, errors.Join(t.errs...))
	}
}
