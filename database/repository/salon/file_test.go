package salonRepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"salonbook/models"
	"salonbook/services/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFileRepoLoadsEmptyDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	snap, err := NewFileSalonRepo(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.PackageTemplates)
	assert.Empty(t, snap.ClientPackages)
	assert.DirExists(t, dir)
}

func TestFileRepoPersistsPackages(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	repo := NewFileSalonRepo(dir)
	_, err := repo.Load(ctx)
	require.NoError(t, err)

	tpl := models.PackageTemplate{ID: "t1", Name: "Lashes x4", ServiceID: "s1", Price: decimal.NewFromInt(300), SessionCount: 4, ValidityDays: 60}
	purchased := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	pkg := models.ClientPackage{ID: "p1", ClientID: "c1", PackageTemplateID: "t1", PurchaseDate: purchased, ExpiryDate: purchased.AddDate(0, 0, 60), CreditsRemaining: 4}

	require.NoError(t, repo.Apply(ctx, events.Upserted(models.KindPackageTemplate, tpl.ID, tpl)))
	require.NoError(t, repo.Apply(ctx, events.Upserted(models.KindClientPackage, pkg.ID, pkg)))
	pkg.CreditsRemaining = 3
	require.NoError(t, repo.Apply(ctx, events.Upserted(models.KindClientPackage, pkg.ID, pkg)))
	other := pkg
	other.ID = "p2"
	require.NoError(t, repo.Apply(ctx, events.Upserted(models.KindClientPackage, other.ID, other)))
	require.NoError(t, repo.Apply(ctx, events.Deleted(models.KindClientPackage, other.ID, other)))

	// Kinds this backend does not store are accepted and dropped.
	require.NoError(t, repo.Apply(ctx, events.Upserted(models.KindClient, "c1", models.Client{ID: "c1"})))

	snap, err := NewFileSalonRepo(dir).Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.PackageTemplates, 1)
	assert.True(t, snap.PackageTemplates[0].Price.Equal(tpl.Price))
	require.Len(t, snap.ClientPackages, 1)
	assert.Equal(t, "p1", snap.ClientPackages[0].ID)
	assert.Equal(t, 3, snap.ClientPackages[0].CreditsRemaining)
	assert.True(t, snap.ClientPackages[0].ExpiryDate.Equal(pkg.ExpiryDate))

	require.NoError(t, repo.Apply(ctx, events.Deleted(models.KindPackageTemplate, tpl.ID, tpl)))
	snap, err = NewFileSalonRepo(dir).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.PackageTemplates)
}

func TestFileRepoRejectsBadPayload(t *testing.T) {
	repo := NewFileSalonRepo(t.TempDir())
	err := repo.Apply(context.Background(), events.Upserted(models.KindClientPackage, "p1", "not a package"))
	assert.Error(t, err)
}

func TestFileRepoCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, packagesFile), []byte("{"), 0o644))
	_, err := NewFileSalonRepo(dir).Load(context.Background())
	assert.Error(t, err)
}

type failingRepo struct{}

func (failingRepo) Load(context.Context) (*models.Snapshot, error) { return &models.Snapshot{}, nil }
func (failingRepo) Apply(context.Context, models.Event) error { return errors.New("disk full") }

func TestMirrorLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := events.NewBus()
	bus.Subscribe(Mirror(failingRepo{}, zap.New(core)))

	bus.Publish(events.Deleted(models.KindAppointment, "a1", models.Appointment{ID: "a1"}))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "appointment", fields["kind"])
	assert.Equal(t, "delete", fields["action"])
	assert.Equal(t, "a1", fields["id"])
}
