package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"slate/internal/api"
	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/discovery"
	"slate/internal/ledger"
	"slate/internal/logging"
	"slate/internal/publish"
	"slate/internal/roles"
)

// Daemon coordinates the catalog service and enforces single-instance execution.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	catalog   *catalog.Store
	policy    *roles.Policy
	ledger    ledger.Store
	discovery *discovery.Service
	workflow  *publish.Workflow

	lockPath string
	lock     *flock.Flock
	api      *apiServer

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon from initialized dependencies.
func New(cfg *config.Config, store *catalog.Store, policy *roles.Policy, led ledger.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || policy == nil || led == nil || logger == nil {
		return nil, errors.New("daemon requires config, catalog, policy, ledger, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "slated.lock")
	d := &Daemon{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "daemon"),
		catalog:   store,
		policy:    policy,
		ledger:    led,
		discovery: discovery.NewService(store, policy, led, cfg, logger),
		workflow:  publish.NewWorkflow(store, policy, led, cfg, logger),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}

	apiSrv, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.api = apiSrv
	return d, nil
}

// Start acquires the daemon lock and brings up the HTTP API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another slate daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	if err := d.api.start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("slate daemon started",
		logging.String("lock", d.lockPath),
		logging.Int("title_count", d.catalog.Len()))
	return nil
}

// Stop shuts down the HTTP API and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("slate daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return d.ledger.Close()
}

// APIAddr returns the bound address of the HTTP API, or empty before Start.
func (d *Daemon) APIAddr() string {
	return d.api.addr()
}

// Status reports daemon runtime information.
func (d *Daemon) Status(ctx context.Context) (api.DaemonStatus, error) {
	records, err := d.ledger.All(ctx)
	if err != nil {
		return api.DaemonStatus{}, fmt.Errorf("load publish records: %w", err)
	}
	published := 0
	for _, record := range records {
		if record.Published {
			published++
		}
	}
	return api.DaemonStatus{
		Running:        d.running.Load(),
		PID:            os.Getpid(),
		TitleCount:     d.catalog.Len(),
		PublishedCount: published,
		LedgerBackend:  d.cfg.Ledger.Backend,
		LedgerPath:     d.cfg.Ledger.Path,
		LockFilePath:   d.lockPath,
		DefaultRole:    d.policy.Default(),
	}, nil
}

// Roles returns the configured role directory.
func (d *Daemon) Roles() []api.RoleInfo {
	return api.FromDefinitions(d.policy.Definitions())
}

// ListTitles serves one page of the title listing.
func (d *Daemon) ListTitles(ctx context.Context, req discovery.ListRequest) (api.TitleListResponse, error) {
	result, err := d.discovery.List(ctx, req)
	if err != nil {
		return api.TitleListResponse{}, err
	}
	return api.FromListResult(result), nil
}

// DescribeTitle serves the sanitized detail view of one title.
func (d *Daemon) DescribeTitle(ctx context.Context, titleID, role string) (*api.TitleDetail, error) {
	return d.discovery.Get(ctx, titleID, role)
}

// PublishTitle marks a title as published on behalf of a role.
func (d *Daemon) PublishTitle(ctx context.Context, titleID, role string) (api.PublishResponse, error) {
	receipt, err := d.workflow.Publish(ctx, titleID, role)
	if err != nil {
		return api.PublishResponse{}, err
	}
	return api.FromReceipt(receipt), nil
}

// UnpublishTitle clears a title's publish state on behalf of a role.
func (d *Daemon) UnpublishTitle(ctx context.Context, titleID, role string) (api.UnpublishResponse, error) {
	if err := d.workflow.Unpublish(ctx, titleID, role); err != nil {
		return api.UnpublishResponse{}, err
	}
	return api.UnpublishResponse{Success: true, Published: false}, nil
}
