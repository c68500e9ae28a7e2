package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/greencontrol/internal/lib/password"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
	"github.com/magabrotheeeer/greencontrol/internal/services/user"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) UpdateUserProfile(ctx context.Context, id int64, req models.ProfileRequest) (*models.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func TestService_GetProfile(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1, Nombre: "Ana", PasswordHash: "x"}, nil).Once()
	repo.On("GetUserByID", mock.Anything, int64(2)).Return(nil, models.ErrUserNotFound).Once()

	svc := user.NewService(sl.Discard(), repo)

	p, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Nombre)

	_, err = svc.GetProfile(context.Background(), 2)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	req := models.ProfileRequest{Nombre: "Ana María", Telefono: "555"}
	repo := new(RepoMock)
	repo.On("UpdateUserProfile", mock.Anything, int64(1), req).Return(&models.User{ID: 1, Nombre: "Ana María", Telefono: "555"}, nil).Once()

	p, err := user.NewService(sl.Discard(), repo).UpdateProfile(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", p.Nombre)
	repo.AssertExpectations(t)
}

func TestService_ChangePassword(t *testing.T) {
	hash, err := password.GetHash("actual1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		req        models.ChangePasswordRequest
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "success",
			req:  models.ChangePasswordRequest{ContrasenaActual: "actual1", NuevaContrasena: "nueva12", ConfirmarContrasena: "nueva12"},
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1, PasswordHash: hash}, nil).Once()
				r.On("UpdateUserPassword", mock.Anything, int64(1), mock.MatchedBy(func(h string) bool {
					return password.CompareHash(h, "nueva12") == nil
				})).Return(nil).Once()
			},
		},
		{
			name: "wrong current password",
			req:  models.ChangePasswordRequest{ContrasenaActual: "otra", NuevaContrasena: "nueva12", ConfirmarContrasena: "nueva12"},
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1, PasswordHash: hash}, nil).Once()
			},
			wantErr: models.ErrUnauthorized,
		},
		{
			name:       "confirmation mismatch",
			req:        models.ChangePasswordRequest{ContrasenaActual: "actual1", NuevaContrasena: "nueva12", ConfirmarContrasena: "nueva13"},
			setupMocks: func(*RepoMock) {},
			wantErr:    models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			err := user.NewService(sl.Discard(), repo).ChangePassword(context.Background(), 1, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}
