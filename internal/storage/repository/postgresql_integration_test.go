//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/greencontrol/internal/migrations"
	"github.com/magabrotheeeer/greencontrol/internal/models"
	"github.com/magabrotheeeer/greencontrol/internal/storage/pgtest"
	"github.com/magabrotheeeer/greencontrol/internal/storage/repository"
)

func setupStorage(t *testing.T) (*repository.Storage, pgtest.Factory) {
	db := pgtest.Start(t)
	require.NoError(t, migrations.Run(db, pgtest.MigrationsPath(t)))
	return repository.NewWithDB(db), pgtest.Factory{DB: db}
}

func TestStorage_Integration_OwnershipAndPlantings(t *testing.T) {
	s, f := setupStorage(t)
	ctx := context.Background()

	owner := f.User(t, "owner@test.com")
	stranger := f.User(t, "stranger@test.com")
	parcelID := f.Parcel(t, owner, "Lote 1")
	cropID := f.Crop(t, owner, "Maize", "Yellow")

	_, err := s.GetParcel(ctx, parcelID, stranger)
	assert.ErrorIs(t, err, models.ErrParcelNotFound)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	plantingID, err := s.CreatePlanting(ctx, parcelID, cropID, models.PlantingDates{FechaInicio: start})
	require.NoError(t, err)

	pl, err := s.GetPlanting(ctx, plantingID, owner)
	require.NoError(t, err)
	assert.True(t, pl.Activa)
	assert.Equal(t, "Maize Yellow", pl.NombreCultivo)

	p, err := s.GetParcel(ctx, parcelID, owner)
	require.NoError(t, err)
	assert.True(t, p.TieneSiembra)
	require.NotNil(t, p.SiembraActual)
	assert.Equal(t, "Maize", p.SiembraActual.NombreCultivo)

	_, err = s.CreatePlanting(ctx, parcelID, cropID, models.PlantingDates{FechaInicio: start})
	assert.ErrorIs(t, err, models.ErrParcelHasPlanting)

	end := start.AddDate(0, 4, 0)
	require.NoError(t, s.UpdatePlantingDates(ctx, plantingID, owner, models.PlantingDates{FechaFinal: &end}))
	p, err = s.GetParcel(ctx, parcelID, owner)
	require.NoError(t, err)
	assert.False(t, p.TieneSiembra)

	assert.ErrorIs(t, s.DeleteCrop(ctx, cropID, owner), models.ErrCropInUse)
	assert.ErrorIs(t, s.DeletePlanting(ctx, plantingID, stranger), models.ErrPlantingNotFound)
}

func TestStorage_Integration_TasksAndFinance(t *testing.T) {
	s, f := setupStorage(t)
	ctx := context.Background()

	owner := f.User(t, "owner@test.com")
	parcelID := f.Parcel(t, owner, "Lote 1")
	taskID := f.Task(t, parcelID, "Riego", time.Now().Add(24*time.Hour))

	first := time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.CompleteTask(ctx, taskID, owner, first))
	require.NoError(t, s.CompleteTask(ctx, taskID, owner, first.Add(time.Hour)))
	task, err := s.GetTask(ctx, taskID, owner)
	require.NoError(t, err)
	require.NotNil(t, task.FechaFinalizacion)
	assert.True(t, first.Equal(*task.FechaFinalizacion), "completion date must not move")

	general, err := s.CreateFinance(ctx, models.KindExpense, models.FinanceRecord{
		Fecha: time.Now(), Monto: decimal.NewFromInt(100000), Concepto: "Arriendo", UsuarioID: owner,
	})
	require.NoError(t, err)
	scoped, err := s.CreateFinance(ctx, models.KindExpense, models.FinanceRecord{
		Fecha: time.Now(), Monto: decimal.NewFromInt(50000), Concepto: "Semilla", UsuarioID: owner, ParcelaID: &parcelID,
	})
	require.NoError(t, err)

	rec, err := s.GetFinance(ctx, models.KindExpense, general, owner)
	require.NoError(t, err)
	assert.True(t, rec.EsGeneral)

	rec, err = s.GetFinance(ctx, models.KindExpense, scoped, owner)
	require.NoError(t, err)
	assert.False(t, rec.EsGeneral)
	require.NotNil(t, rec.NombreParcela)
	assert.Equal(t, "Lote 1", *rec.NombreParcela)

	require.NoError(t, s.DeleteParcel(ctx, parcelID, owner))
	rec, err = s.GetFinance(ctx, models.KindExpense, scoped, owner)
	require.NoError(t, err)
	assert.True(t, rec.EsGeneral, "parcel delete must null the reference")

	open, err := s.ListOpenTasksScheduled(ctx, nil, time.Now().Add(72*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, open, "tasks of a deleted parcel are gone")
}
