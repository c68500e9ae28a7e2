package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/magabrotheeeer/greencontrol/internal/lib/jwt"
	"github.com/magabrotheeeer/greencontrol/internal/lib/password"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
	"github.com/magabrotheeeer/greencontrol/internal/services/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) EmailExists(ctx context.Context, correo string) (bool, error) {
	args := m.Called(ctx, correo)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, correo string) (*models.User, error) {
	args := m.Called(ctx, correo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userID int64, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*jwt.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Claims), args.Error(1)
}

func TestService_Register(t *testing.T) {
	req := models.RegisterRequest{
		Nombre:     "Ana",
		Telefono:   "5551234",
		Correo:     " ana@example.com ",
		Contrasena: "secreto1",
	}

	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
		wantToken  string
	}{
		{
			name: "success",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("EmailExists", mock.Anything, "ana@example.com").Return(false, nil).Once()
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Correo == "ana@example.com" &&
						u.PasswordHash != "" &&
						u.PasswordHash != "secreto1" &&
						password.CompareHash(u.PasswordHash, "secreto1") == nil
				})).Return(int64(7), nil).Once()
				j.On("GenerateToken", int64(7), "ana@example.com").Return("token-7", nil).Once()
			},
			wantToken: "token-7",
		},
		{
			name: "duplicate email",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("EmailExists", mock.Anything, "ana@example.com").Return(true, nil).Once()
			},
			wantErr: models.ErrDuplicateEmail,
		},
		{
			name: "duplicate email on insert race",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("EmailExists", mock.Anything, "ana@example.com").Return(false, nil).Once()
				r.On("CreateUser", mock.Anything, mock.Anything).Return(int64(0), models.ErrDuplicateEmail).Once()
			},
			wantErr: models.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(JwtMakerMock)
			tt.setupMocks(repo, maker)

			svc := auth.NewService(sl.Discard(), repo, maker)
			res, err := svc.Register(context.Background(), req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), res.ID)
				assert.Equal(t, "Ana", res.Nombre)
				assert.Equal(t, tt.wantToken, res.Token)
			}
			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestService_Register_RepoError(t *testing.T) {
	repo := new(UserRepoMock)
	maker := new(JwtMakerMock)
	dbErr := errors.New("db down")
	repo.On("EmailExists", mock.Anything, "x@example.com").Return(false, dbErr).Once()

	svc := auth.NewService(sl.Discard(), repo, maker)
	_, err := svc.Register(context.Background(), models.RegisterRequest{Correo: "x@example.com", Contrasena: "123456"})

	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "auth.Register")
}

func TestService_Login(t *testing.T) {
	hash, err := password.GetHash("secreto1")
	require.NoError(t, err)
	user := &models.User{ID: 3, Nombre: "Luis", Correo: "luis@example.com", PasswordHash: hash}

	tests := []struct {
		name       string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name:     "success",
			password: "secreto1",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "luis@example.com").Return(user, nil).Once()
				j.On("GenerateToken", int64(3), "luis@example.com").Return("tok", nil).Once()
			},
		},
		{
			name:     "wrong password",
			password: "otra",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "luis@example.com").Return(user, nil).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			password: "secreto1",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "luis@example.com").Return(nil, models.ErrUserNotFound).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(JwtMakerMock)
			tt.setupMocks(repo, maker)

			svc := auth.NewService(sl.Discard(), repo, maker)
			res, err := svc.Login(context.Background(), models.LoginRequest{Correo: "luis@example.com", Contrasena: tt.password})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "tok", res.Token)
				assert.Equal(t, int64(3), res.ID)
			}
			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	maker := new(JwtMakerMock)
	maker.On("ParseToken", "good").Return(&jwt.Claims{UserID: 5, Email: "a@b.c"}, nil).Once()
	maker.On("ParseToken", "bad").Return(nil, jwt.ErrInvalidToken).Once()

	svc := auth.NewService(sl.Discard(), new(UserRepoMock), maker)

	claims, err := svc.ValidateToken("good")
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)

	_, err = svc.ValidateToken("bad")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}
