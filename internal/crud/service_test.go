package crud

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-crud-starter/internal/apperr"
)

// widget is the minimal entity used to exercise the generic layers.
type widget struct {
	Base
	Name string
}

type widgetCreate struct {
	ID   string
	Name string
}

func (in widgetCreate) Model() widget {
	return widget{Base: Base{ID: in.ID}, Name: in.Name}
}

type widgetUpdate struct {
	Name *string
}

func (in widgetUpdate) Changes() map[string]any {
	ch := map[string]any{}
	if in.Name != nil {
		ch["name"] = *in.Name
	}
	return ch
}

// memRepo is an in-memory Repository honoring the same contract as the
// gorm-backed one: reads return (nil, nil) on absence, mutations return the
// stored state.
type memRepo struct {
	seq  int
	byID map[string]*widget
}

func newMemRepo() *memRepo { return &memRepo{byID: map[string]*widget{}} }

func (r *memRepo) snapshot(id string) *widget {
	m, ok := r.byID[id]
	if !ok {
		return nil
	}
	cp := *m
	return &cp
}

func (r *memRepo) Get(_ context.Context, id string, includeRemoved bool) (*widget, error) {
	m := r.snapshot(id)
	if m == nil || (!includeRemoved && m.DeletedAt != nil) {
		return nil, nil
	}
	return m, nil
}

func (r *memRepo) GetMulti(_ context.Context, skip, limit int) ([]widget, error) {
	all, _ := r.GetAll(context.Background(), false)
	if skip >= len(all) {
		return nil, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memRepo) GetAll(_ context.Context, includeRemoved bool) ([]widget, error) {
	var out []widget
	for _, m := range r.byID {
		if !includeRemoved && m.DeletedAt != nil {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *memRepo) Create(_ context.Context, in widgetCreate) (*widget, error) {
	m := in.Model()
	if m.ID == "" {
		r.seq++
		m.ID = fmt.Sprintf("w%d", r.seq)
	}
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	r.byID[m.ID] = &m
	return r.snapshot(m.ID), nil
}

func (r *memRepo) Update(_ context.Context, existing *widget, in widgetUpdate) (*widget, error) {
	m := r.byID[existing.ID]
	if name, ok := in.Changes()["name"]; ok {
		m.Name = name.(string)
		m.UpdatedAt = time.Now().UTC()
	}
	return r.snapshot(existing.ID), nil
}

func (r *memRepo) Restore(_ context.Context, existing *widget) (*widget, error) {
	r.byID[existing.ID].DeletedAt = nil
	return r.snapshot(existing.ID), nil
}

func (r *memRepo) Remove(_ context.Context, id string) (*widget, error) {
	m := r.snapshot(id)
	delete(r.byID, id)
	return m, nil
}

func (r *memRepo) SoftRemove(_ context.Context, existing *widget) (*widget, error) {
	r.byID[existing.ID].DeletedAt = nowUTC()
	return r.snapshot(existing.ID), nil
}

func newWidgetService(r *memRepo) *Service[widget, *widget, widgetCreate, widgetUpdate] {
	return NewService[widget, *widget, widgetCreate, widgetUpdate](r, apperr.Entity("Widget"))
}

func strPtr(s string) *string { return &s }

func mustStatus(t *testing.T, err error, status int) *apperr.Error {
	t.Helper()
	require.Error(t, err)
	ae, ok := err.(*apperr.Error)
	require.True(t, ok, "expected *apperr.Error, got %T", err)
	assert.Equal(t, status, ae.Status)
	return ae
}

func TestServiceGetAbsenceIsNotFound(t *testing.T) {
	svc := newWidgetService(newMemRepo())

	_, err := svc.Get(context.Background(), "missing", false)
	ae := mustStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Entity Widget with id missing was not found.", ae.Message)
	assert.Equal(t, "missing", ae.Payload()["entity_id"])
}

func TestServiceSoftRemoveHidesFromDefaultReads(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService(newMemRepo())

	created, err := svc.Create(ctx, widgetCreate{Name: "a"})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, created.ID, false)
	require.NoError(t, err)
	require.NotNil(t, removed.DeletedAt, "soft remove must stamp deleted_at on the returned object")

	// hidden from a default read
	_, err = svc.Get(ctx, created.ID, false)
	mustStatus(t, err, http.StatusNotFound)

	// still reachable removed-visible
	got, err := svc.Get(ctx, created.ID, true)
	require.NoError(t, err)
	assert.NotNil(t, got.DeletedAt)
}

func TestServiceRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService(newMemRepo())

	created, err := svc.Create(ctx, widgetCreate{Name: "a"})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, created.ID, false)
	require.NoError(t, err)

	restored, err := svc.Restore(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt, "restore must clear deleted_at on the returned object")

	got, err := svc.Get(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
}

func TestServiceRestoreActiveIsRejected(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService(newMemRepo())

	created, err := svc.Create(ctx, widgetCreate{Name: "a"})
	require.NoError(t, err)

	_, err = svc.Restore(ctx, created.ID)
	ae := mustStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "A Widget was not soft deleted.", ae.Message)
}

func TestServiceDoubleSoftRemoveIsRejected(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService(newMemRepo())

	created, err := svc.Create(ctx, widgetCreate{Name: "a"})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, created.ID, false)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, created.ID, false)
	ae := mustStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "A Widget is already soft deleted.", ae.Message)
}

func TestServiceUpdateSoftDeletedIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService(newMemRepo())

	created, err := svc.Create(ctx, widgetCreate{Name: "a"})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, created.ID, false)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, widgetUpdate{Name: strPtr("b")})
	mustStatus(t, err, http.StatusNotFound)
}

func TestServiceUpdateAppliesChanges(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService(newMemRepo())

	created, err := svc.Create(ctx, widgetCreate{Name: "a"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, widgetUpdate{Name: strPtr("b")})
	require.NoError(t, err)
	assert.Equal(t, "b", updated.Name)

	// empty patch is a no-op, not an error
	same, err := svc.Update(ctx, created.ID, widgetUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "b", same.Name)
}

func TestServiceHardRemoveIsTerminal(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newWidgetService(repo)

	created, err := svc.Create(ctx, widgetCreate{Name: "a"})
	require.NoError(t, err)

	gone, err := svc.Delete(ctx, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, gone.ID)

	_, err = svc.Get(ctx, created.ID, true)
	mustStatus(t, err, http.StatusNotFound)
}

func TestServiceHardRemoveWorksOnSoftDeleted(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService(newMemRepo())

	created, err := svc.Create(ctx, widgetCreate{Name: "a"})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, created.ID, false)
	require.NoError(t, err)

	gone, err := svc.Delete(ctx, created.ID, true)
	require.NoError(t, err)
	assert.NotNil(t, gone.DeletedAt, "final snapshot keeps the soft-delete stamp")
}

func TestServiceCreateKeepsSuppliedID(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService(newMemRepo())

	created, err := svc.Create(ctx, widgetCreate{ID: "ext-sub-1", Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, "ext-sub-1", created.ID)
}
