package daemon

import (
	"context"
	"testing"
)

func TestStartEnforcesSingleInstance(t *testing.T) {
	first := newTestDaemon(t)
	ctx := context.Background()

	if err := first.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer first.Stop()

	if first.APIAddr() == "" {
		t.Fatal("expected a bound api address")
	}

	second, err := New(first.cfg, first.catalog, first.policy, first.ledger, first.logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := second.Start(ctx); err == nil {
		second.Stop()
		t.Fatal("second instance must fail to start while the lock is held")
	}
}

func TestStartStopLifecycle(t *testing.T) {
	d := newTestDaemon(t)
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("double start must fail")
	}

	status, err := d.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running {
		t.Fatal("expected running status after Start")
	}

	d.Stop()
	status, err = d.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Running {
		t.Fatal("expected stopped status after Stop")
	}

	// Stop released the lock, so a fresh start must succeed.
	if err := d.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	d.Stop()
}
