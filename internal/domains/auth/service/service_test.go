package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trattoria/config"
	"trattoria/infras/jwt"
	"trattoria/infras/otel/mocks"
	"trattoria/internal/domains/auth/model/dto"
	"trattoria/internal/domains/auth/service"
	userMocks "trattoria/internal/domains/user/mocks"
	userModel "trattoria/internal/domains/user/model"
	"trattoria/shared/failure"
	"trattoria/shared/password"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "trattoria"
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := testConfig()
	jwtService := jwt.New(cfg)

	svc := service.New(mockUserRepo, cfg, mockOtel, jwtService)

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful registration",
			req: dto.RegisterRequest{
				Username: "mario",
				Password: "super-secret-1",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockUserRepo.EXPECT().
					InsertReturning(gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
			},
			wantErr: false,
		},
		{
			name: "username already taken",
			req: dto.RegisterRequest{
				Username: "mario",
				Password: "super-secret-1",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			req: dto.RegisterRequest{
				Username: "mario",
				Password: "super-secret-1",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Register(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := testConfig()
	jwtService := jwt.New(cfg)

	svc := service.New(mockUserRepo, cfg, mockOtel, jwtService)

	hashed, err := password.Hash("super-secret-1")
	require.NoError(t, err)

	user := userModel.User{
		ID:           1,
		Username:     "mario",
		PasswordHash: hashed,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Username: "mario",
				Password: "super-secret-1",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(user, nil)
			},
			wantErr: false,
		},
		{
			name: "unknown username",
			req: dto.LoginRequest{
				Username: "luigi",
				Password: "super-secret-1",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: 401,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Username: "mario",
				Password: "wrong-password",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(user, nil)
			},
			wantErr:  true,
			wantCode: 401,
		},
		{
			name: "repository error",
			req: dto.LoginRequest{
				Username: "mario",
				Password: "super-secret-1",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.AccessToken)
				assert.NotEmpty(t, res.RefreshToken)
				assert.Equal(t, int64(15*60), res.ExpiresIn)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := testConfig()
	jwtService := jwt.New(cfg)

	svc := service.New(mockUserRepo, cfg, mockOtel, jwtService)

	tokenPair, err := jwtService.GenerateTokenPair(1, "mario")
	require.NoError(t, err)

	t.Run("successful refresh", func(t *testing.T) {
		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: tokenPair.RefreshToken,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: tokenPair.AccessToken,
		})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "not-a-token",
		})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})
}
