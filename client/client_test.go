package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmelim/local-character-sheets/internal/domain"
	"github.com/dmelim/local-character-sheets/internal/domain/models"
	"github.com/dmelim/local-character-sheets/internal/domain/services"
	"github.com/dmelim/local-character-sheets/internal/handler"
	"github.com/dmelim/local-character-sheets/internal/pathmap"
	"github.com/dmelim/local-character-sheets/internal/repository/file"
	"github.com/dmelim/local-character-sheets/internal/schema"
	"github.com/dmelim/local-character-sheets/internal/service"
)

// newServerAndClient runs the real stack behind httptest and returns a
// client pointed at it.
func newServerAndClient(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := file.NewStore(t.TempDir(), logger)
	svc := service.NewCharacterService(store, schema.Default(), logger)

	mux := http.NewServeMux()
	handler.NewCharacterHandler(svc, logger).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestClientRoundTrip(t *testing.T) {
	c := newServerAndClient(t)
	ctx := context.Background()

	id, err := c.Create(ctx, "Aria")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	ch, err := c.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ch.Name != "Aria" || ch.Version != 1 {
		t.Errorf("got name=%q version=%d, want Aria/1", ch.Name, ch.Version)
	}

	summary, err := c.Rename(ctx, id, "Aria Dawn", 1)
	if err != nil {
		t.Fatalf("Rename() error: %v", err)
	}
	if summary.Name != "Aria Dawn" || summary.Version != 2 {
		t.Errorf("rename summary = %+v, want Aria Dawn/2", summary)
	}

	result, err := c.Update(ctx, id, &services.BatchedUpdateRequest{
		ExpectedVersion: 2,
		Updates:         []models.FieldUpdate{{Path: "identity.level", Value: float64(5)}},
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if result.Version != 3 {
		t.Errorf("update version = %d, want 3", result.Version)
	}

	items, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(items) != 1 || items[0].ID != id {
		t.Errorf("List() = %+v, want single entry %s", items, id)
	}

	if err := c.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := c.Delete(ctx, id); err != nil {
		t.Fatalf("second Delete() error: %v", err)
	}
}

func TestClientErrorMapping(t *testing.T) {
	c := newServerAndClient(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, "no-such-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get missing: error = %v, want ErrNotFound", err)
	}

	if _, err := c.Create(ctx, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Create blank: error = %v, want ErrValidation", err)
	}

	id, err := c.Create(ctx, "Aria")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := c.Rename(ctx, id, "Aria Dawn", 1); err != nil {
		t.Fatalf("Rename() error: %v", err)
	}

	_, err = c.Rename(ctx, id, "Aria Dusk", 1)
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("stale rename: error = %v, want ErrVersionConflict", err)
	}
	var conflict *domain.VersionConflictError
	if errors.As(err, &conflict) && conflict.Current != 2 {
		t.Errorf("conflict current = %d, want 2", conflict.Current)
	}
}

func TestClientLongRest(t *testing.T) {
	c := newServerAndClient(t)
	ctx := context.Background()

	id, err := c.Create(ctx, "Aria")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if _, err := c.Update(ctx, id, &services.BatchedUpdateRequest{
		ExpectedVersion: 1,
		Updates: []models.FieldUpdate{
			{Path: "hp.max", Value: float64(27)},
			{Path: "hp.current", Value: float64(4)},
			{Path: "hp.temp", Value: float64(3)},
		},
	}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	result, err := c.LongRest(ctx, id)
	if err != nil {
		t.Fatalf("LongRest() error: %v", err)
	}
	if result.Version != 3 {
		t.Errorf("version after long rest = %d, want 3", result.Version)
	}

	ch, err := c.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got, _ := pathmap.Get(ch.Data, "hp.current"); got != float64(27) {
		t.Errorf("hp.current = %v, want 27", got)
	}
	if got, _ := pathmap.Get(ch.Data, "hp.temp"); got != float64(0) {
		t.Errorf("hp.temp = %v, want 0", got)
	}
}

func TestClientLongRestWithoutRestorableSections(t *testing.T) {
	c := newServerAndClient(t)
	ctx := context.Background()

	id, err := c.Create(ctx, "Aria")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// A fresh sheet has an identity block but no hp/spellSlots objects, so
	// a long rest is a no-op and must not bump the version.
	result, err := c.LongRest(ctx, id)
	if err != nil {
		t.Fatalf("LongRest() error: %v", err)
	}
	if result.Version != 1 {
		t.Errorf("version = %d, want 1 (no-op)", result.Version)
	}
}
