package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	mock_service "github.com/myflowlab/stem-certification-quiz/internal/service/mock"
)

func newAuthServiceMock(ctrl *gomock.Controller, cfg AuthConfig) (*AuthService, *mock_service.MockUserRepository, *mock_service.MockAccessCodeRepository) {
	users := mock_service.NewMockUserRepository(ctrl)
	codes := mock_service.NewMockAccessCodeRepository(ctrl)
	return NewAuthService(users, codes, cfg, zap.NewNop()), users, codes
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	existing := []*entities.User{
		{Username: "bob", Password: "pw", AccessCode: "USED1"},
	}
	ali := &entities.AccessCodeEntry{
		AccessCode: "C1",
		Activated:  true,
		Name:       "Ali Bin Abu",
		NRIC:       "900101-01-1234",
		Email:      "ali@example.com",
	}

	tests := []struct {
		name    string
		cfg     AuthConfig
		in      RegisterInput
		setup   func(*mock_service.MockUserRepository, *mock_service.MockAccessCodeRepository)
		wantErr error
	}{
		{
			name:    "missing password",
			in:      RegisterInput{Username: "alice", AccessCode: "C1"},
			wantErr: entities.ErrMissingFields,
		},
		{
			name:    "reserved admin name",
			cfg:     AuthConfig{AdminUsername: "admin"},
			in:      RegisterInput{Username: "admin", Password: "pw", AccessCode: "C1"},
			wantErr: entities.ErrDuplicateUsername,
		},
		{
			name: "duplicate username",
			in:   RegisterInput{Username: "bob", Password: "pw", AccessCode: "C1"},
			setup: func(u *mock_service.MockUserRepository, _ *mock_service.MockAccessCodeRepository) {
				u.EXPECT().List(gomock.Any()).Return(existing, nil)
			},
			wantErr: entities.ErrDuplicateUsername,
		},
		{
			name: "unknown code",
			in:   RegisterInput{Username: "alice", Password: "pw", AccessCode: "NOPE"},
			setup: func(u *mock_service.MockUserRepository, c *mock_service.MockAccessCodeRepository) {
				u.EXPECT().List(gomock.Any()).Return(existing, nil)
				c.EXPECT().Get(gomock.Any(), "NOPE").Return(nil, nil)
			},
			wantErr: entities.ErrInvalidAccessCode,
		},
		{
			name: "inactive code",
			in:   RegisterInput{Username: "alice", Password: "pw", AccessCode: "C2"},
			setup: func(u *mock_service.MockUserRepository, c *mock_service.MockAccessCodeRepository) {
				u.EXPECT().List(gomock.Any()).Return(existing, nil)
				c.EXPECT().Get(gomock.Any(), "C2").Return(&entities.AccessCodeEntry{AccessCode: "C2"}, nil)
			},
			wantErr: entities.ErrInvalidAccessCode,
		},
		{
			name: "code already used",
			in:   RegisterInput{Username: "alice", Password: "pw", AccessCode: "USED1"},
			setup: func(u *mock_service.MockUserRepository, c *mock_service.MockAccessCodeRepository) {
				u.EXPECT().List(gomock.Any()).Return(existing, nil)
				c.EXPECT().Get(gomock.Any(), "USED1").Return(&entities.AccessCodeEntry{AccessCode: "USED1", Activated: true}, nil)
			},
			wantErr: entities.ErrAccessCodeAlreadyUsed,
		},
		{
			name:    "identity required when verifying",
			cfg:     AuthConfig{VerifyIdentity: true},
			in:      RegisterInput{Username: "alice", Password: "pw", AccessCode: "C1"},
			wantErr: entities.ErrMissingFields,
		},
		{
			name: "identity mismatch",
			cfg:  AuthConfig{VerifyIdentity: true},
			in: RegisterInput{
				Username:   "alice",
				Password:   "pw",
				AccessCode: "C1",
				Identity:   entities.Identity{FullName: "Someone Else", NRIC: "900101-01-1234", Email: "ali@example.com"},
			},
			setup: func(u *mock_service.MockUserRepository, c *mock_service.MockAccessCodeRepository) {
				u.EXPECT().List(gomock.Any()).Return(existing, nil)
				c.EXPECT().Get(gomock.Any(), "C1").Return(ali, nil)
			},
			wantErr: entities.ErrInvalidAccessCode,
		},
		{
			name: "storage down",
			in:   RegisterInput{Username: "alice", Password: "pw", AccessCode: "C1"},
			setup: func(u *mock_service.MockUserRepository, _ *mock_service.MockAccessCodeRepository) {
				u.EXPECT().List(gomock.Any()).Return(nil, entities.ErrStorageUnavailable)
			},
			wantErr: entities.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, users, codes := newAuthServiceMock(ctrl, tt.cfg)
			if tt.setup != nil {
				tt.setup(users, codes)
			}

			_, err := s.Register(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_RegisterSuccess(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, users, codes := newAuthServiceMock(ctrl, AuthConfig{VerifyIdentity: true})
	users.EXPECT().List(gomock.Any()).Return(nil, nil)
	codes.EXPECT().Get(gomock.Any(), "C1").Return(&entities.AccessCodeEntry{
		AccessCode: "C1",
		Activated:  true,
		Name:       "Ali Bin Abu",
		NRIC:       "900101-01-1234",
		Email:      "ali@example.com",
	}, nil)

	var saved *entities.User
	users.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *entities.User) error {
			saved = u
			return nil
		},
	)

	user, err := s.Register(context.Background(), RegisterInput{
		Username:   " alice ",
		Password:   "secret",
		AccessCode: " C1 ",
		Identity:   entities.Identity{FullName: "ali bin abu", NRIC: "900101-01-1234", Email: "ALI@example.com"},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "secret", saved.Password)
	assert.Equal(t, "C1", saved.AccessCode)
	assert.Equal(t, 0, saved.Attempts)
	assert.False(t, saved.Certified)
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, users, _ := newAuthServiceMock(ctrl, AuthConfig{AdminUsername: "admin", AdminPassword: "root"})
	users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&entities.User{Username: "alice", Password: "pw"}, nil).Times(3)
	users.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, entities.ErrUserNotFound)

	ctx := context.Background()

	u, err := s.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	u, err = s.Authenticate(ctx, " alice ", "pw")
	require.NoError(t, err, "username is trimmed like at signup")
	assert.Equal(t, "alice", u.Username)

	_, err = s.Authenticate(ctx, "alice", "PW")
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "ghost", "pw")
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "admin", "root")
	require.NoError(t, err)
	assert.True(t, s.IsAdmin("admin"))

	_, err = s.Authenticate(ctx, " admin", "root")
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestPasswordMode_Bcrypt(t *testing.T) {
	t.Parallel()

	h, err := PasswordBcrypt.hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", h)
	assert.True(t, PasswordBcrypt.matches(h, "secret"))
	assert.False(t, PasswordBcrypt.matches(h, "other"))

	p, err := PasswordPlaintext.hash("secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", p)

	_, err = ParsePasswordMode("md5")
	assert.Error(t, err)
}
