package planting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
	"github.com/magabrotheeeer/greencontrol/internal/services/planting"
)

type RepoMock struct {
	mock.Mock
}

// InTx выполняет fn в том же контексте, как это сделал бы Storage без вложенной транзакции.
func (m *RepoMock) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

func (m *RepoMock) LockParcel(ctx context.Context, id, userID int64) (string, error) {
	args := m.Called(ctx, id, userID)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) PlantingByParcel(ctx context.Context, parcelID int64) (*models.Planting, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Planting), args.Error(1)
}

func (m *RepoMock) GetCrop(ctx context.Context, id, userID int64) (*models.Crop, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Crop), args.Error(1)
}

func (m *RepoMock) CreatePlanting(ctx context.Context, parcelID, cropID int64, d models.PlantingDates) (int64, error) {
	args := m.Called(ctx, parcelID, cropID, d)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListPlantings(ctx context.Context, userID int64) ([]*models.Planting, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Planting), args.Error(1)
}

func (m *RepoMock) GetPlanting(ctx context.Context, id, userID int64) (*models.Planting, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Planting), args.Error(1)
}

func (m *RepoMock) UpdatePlantingDates(ctx context.Context, id, userID int64, d models.PlantingDates) error {
	return m.Called(ctx, id, userID, d).Error(0)
}

func (m *RepoMock) DeletePlanting(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

func TestService_Create(t *testing.T) {
	req := models.PlantingRequest{ParcelaID: 10, CultivoID: 20, FechaInicio: "2025-03-01"}
	ended := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		req        models.PlantingRequest
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "success",
			req:  req,
			setupMocks: func(r *RepoMock) {
				r.On("InTx", mock.Anything).Once()
				r.On("LockParcel", mock.Anything, int64(10), int64(1)).Return("Norte", nil).Once()
				r.On("PlantingByParcel", mock.Anything, int64(10)).Return(nil, models.ErrPlantingNotFound).Once()
				r.On("GetCrop", mock.Anything, int64(20), int64(1)).Return(&models.Crop{ID: 20}, nil).Once()
				r.On("CreatePlanting", mock.Anything, int64(10), int64(20), mock.MatchedBy(func(d models.PlantingDates) bool {
					return d.FechaInicio.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) && d.FechaFinal == nil
				})).Return(int64(5), nil).Once()
				r.On("GetPlanting", mock.Anything, int64(5), int64(1)).Return(&models.Planting{ID: 5, Activa: true}, nil).Once()
			},
		},
		{
			name: "foreign parcel",
			req:  req,
			setupMocks: func(r *RepoMock) {
				r.On("InTx", mock.Anything).Once()
				r.On("LockParcel", mock.Anything, int64(10), int64(1)).Return("", models.ErrParcelNotFound).Once()
			},
			wantErr: models.ErrParcelNotFound,
		},
		{
			name: "active planting",
			req:  req,
			setupMocks: func(r *RepoMock) {
				r.On("InTx", mock.Anything).Once()
				r.On("LockParcel", mock.Anything, int64(10), int64(1)).Return("Norte", nil).Once()
				r.On("PlantingByParcel", mock.Anything, int64(10)).Return(&models.Planting{ID: 3}, nil).Once()
			},
			wantErr: models.ErrConflictActivePlanting,
		},
		{
			name: "ended planting still occupies parcel",
			req:  req,
			setupMocks: func(r *RepoMock) {
				r.On("InTx", mock.Anything).Once()
				r.On("LockParcel", mock.Anything, int64(10), int64(1)).Return("Norte", nil).Once()
				r.On("PlantingByParcel", mock.Anything, int64(10)).Return(&models.Planting{ID: 3, FechaFinal: &ended}, nil).Once()
			},
			wantErr: models.ErrParcelHasPlanting,
		},
		{
			name: "foreign crop",
			req:  req,
			setupMocks: func(r *RepoMock) {
				r.On("InTx", mock.Anything).Once()
				r.On("LockParcel", mock.Anything, int64(10), int64(1)).Return("Norte", nil).Once()
				r.On("PlantingByParcel", mock.Anything, int64(10)).Return(nil, models.ErrPlantingNotFound).Once()
				r.On("GetCrop", mock.Anything, int64(20), int64(1)).Return(nil, models.ErrCropNotFound).Once()
			},
			wantErr: models.ErrCropNotFound,
		},
		{
			name:       "bad start date",
			req:        models.PlantingRequest{ParcelaID: 10, CultivoID: 20, FechaInicio: "01-03-2025"},
			setupMocks: func(*RepoMock) {},
			wantErr:    models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := planting.NewService(sl.Discard(), repo)
			got, err := svc.Create(context.Background(), tt.req, 1)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(5), got.ID)
				assert.True(t, got.Activa)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Create_LookupError(t *testing.T) {
	repo := new(RepoMock)
	dbErr := errors.New("conn reset")
	repo.On("InTx", mock.Anything).Once()
	repo.On("LockParcel", mock.Anything, int64(10), int64(1)).Return("Norte", nil).Once()
	repo.On("PlantingByParcel", mock.Anything, int64(10)).Return(nil, dbErr).Once()

	_, err := planting.NewService(sl.Discard(), repo).Create(context.Background(),
		models.PlantingRequest{ParcelaID: 10, CultivoID: 20, FechaInicio: "2025-03-01"}, 1)

	assert.ErrorIs(t, err, dbErr)
	repo.AssertNotCalled(t, "CreatePlanting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update(t *testing.T) {
	end := "2025-06-30"
	repo := new(RepoMock)
	repo.On("UpdatePlantingDates", mock.Anything, int64(5), int64(1), mock.MatchedBy(func(d models.PlantingDates) bool {
		return d.FechaFinal != nil && d.FechaFinal.Month() == time.June && d.FechaGerminacion == nil
	})).Return(nil).Once()
	repo.On("GetPlanting", mock.Anything, int64(5), int64(1)).Return(&models.Planting{ID: 5}, nil).Once()

	got, err := planting.NewService(sl.Discard(), repo).Update(context.Background(), 5, models.PlantingUpdate{FechaFinal: &end}, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	repo.AssertExpectations(t)
}

func TestService_Update_BadDate(t *testing.T) {
	bad := "mañana"
	repo := new(RepoMock)

	_, err := planting.NewService(sl.Discard(), repo).Update(context.Background(), 5, models.PlantingUpdate{FechaFloracion: &bad}, 1)

	assert.ErrorIs(t, err, models.ErrValidation)
	repo.AssertExpectations(t)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeletePlanting", mock.Anything, int64(8), int64(1)).Return(models.ErrPlantingNotFound).Once()

	err := planting.NewService(sl.Discard(), repo).Delete(context.Background(), 8, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
