package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/ledger"
	"slate/internal/logging"
	"slate/internal/roles"
	"slate/internal/textutil"
)

// ErrPermission is returned when the acting role lacks the publish capability.
var ErrPermission = errors.New("permission denied")

// Receipt reports the outcome of a successful publish.
type Receipt struct {
	SalesURL    string
	PublishedAt time.Time
	PublishedBy string
}

// Workflow runs the publish state machine for catalog titles. State is held
// entirely in the ledger; each title transitions independently.
type Workflow struct {
	catalog *catalog.Store
	policy  *roles.Policy
	ledger  ledger.Store
	baseURL string
	logger  *slog.Logger
	now     func() time.Time
}

// NewWorkflow wires the publish workflow against its collaborators.
func NewWorkflow(store *catalog.Store, policy *roles.Policy, led ledger.Store, cfg *config.Config, logger *slog.Logger) *Workflow {
	return &Workflow{
		catalog: store,
		policy:  policy,
		ledger:  led,
		baseURL: cfg.Publishing.SalesBaseURL,
		logger:  logging.NewComponentLogger(logger, "publish"),
		now:     time.Now,
	}
}

// SalesURL computes the deterministic external URL for a title. The slug is a
// pure function of the display name, so republishing never moves a page.
func (w *Workflow) SalesURL(title catalog.Title) string {
	return w.baseURL + textutil.Slugify(title.Name)
}

// Publish marks a title as published. The prior record, if any, is overwritten
// unconditionally: a re-publish recomputes the same URL but refreshes the
// timestamp and acting role.
func (w *Workflow) Publish(ctx context.Context, titleID, roleName string) (*Receipt, error) {
	role, title, err := w.authorize(titleID, roleName)
	if err != nil {
		return nil, err
	}

	publishedAt := w.now().UTC()
	record := ledger.Record{
		Published:   true,
		SalesURL:    w.SalesURL(title),
		PublishedAt: &publishedAt,
		PublishedBy: role,
	}
	if err := w.ledger.Put(ctx, title.ID, record); err != nil {
		return nil, fmt.Errorf("persist publish record: %w", err)
	}

	w.logger.Info("title published",
		logging.String(logging.FieldEventType, "title_publish"),
		logging.String(logging.FieldTitleID, title.ID),
		logging.String(logging.FieldRole, role),
		logging.String("sales_url", record.SalesURL))

	return &Receipt{
		SalesURL:    record.SalesURL,
		PublishedAt: publishedAt,
		PublishedBy: role,
	}, nil
}

// Unpublish clears a title's publish state. The record stays keyed by title id
// with all publish fields absent, keeping the ledger shape consistent.
func (w *Workflow) Unpublish(ctx context.Context, titleID, roleName string) error {
	role, title, err := w.authorize(titleID, roleName)
	if err != nil {
		return err
	}

	if err := w.ledger.Put(ctx, title.ID, ledger.Record{Published: false}); err != nil {
		return fmt.Errorf("persist unpublish record: %w", err)
	}

	w.logger.Info("title unpublished",
		logging.String(logging.FieldEventType, "title_unpublish"),
		logging.String(logging.FieldTitleID, title.ID),
		logging.String(logging.FieldRole, role))
	return nil
}

// authorize checks the permission precondition before the existence one,
// mirroring the external contract: a role without publish rights sees a
// permission error even for unknown titles.
func (w *Workflow) authorize(titleID, roleName string) (string, catalog.Title, error) {
	role, caps := w.policy.Resolve(roleName)
	if !caps.CanPublish {
		return "", catalog.Title{}, fmt.Errorf("role %s cannot publish titles: %w", role, ErrPermission)
	}
	title, err := w.catalog.Get(titleID)
	if err != nil {
		return "", catalog.Title{}, err
	}
	return role, title, nil
}
