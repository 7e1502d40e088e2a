// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"
	"time"

	gomock "go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/storage"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
	"github.com/climabill/climabill/pkg/token"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_storage.go -source=./interfaces.go StorageInterface
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_token.go -source=./interfaces.go TokenIssuerInterface,TokenVerifierInterface

type serviceFixture struct {
	storage  *MockStorageInterface
	issuer   *MockTokenIssuerInterface
	verifier *MockTokenVerifierInterface
	service  *Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := new(serviceFixture)
	f.storage = NewMockStorageInterface(ctrl)
	f.issuer = NewMockTokenIssuerInterface(ctrl)
	f.verifier = NewMockTokenVerifierInterface(ctrl)
	f.service = NewService(f.storage, f.issuer, f.verifier, 30*time.Minute,
		tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())

	return f
}

func activeTenant() *types.Tenant {
	return &types.Tenant{
		ID:       "tenant-1",
		Name:     "Acme",
		Domain:   "acme.example",
		Plan:     types.PlanStarter,
		IsActive: true,
		MaxUsers: 5,
	}
}

func activeUser(password string) *types.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &types.User{
		ID:             "user-1",
		TenantID:       "tenant-1",
		Email:          "admin@acme.example",
		HashedPassword: string(hashed),
		Role:           types.RoleAdmin,
		IsActive:       true,
	}
}

func expectPair(f *serviceFixture) {
	f.issuer.EXPECT().IssueAccessToken(gomock.Any(), gomock.Any()).Return("access-token", nil)
	f.issuer.EXPECT().IssueRefreshToken(gomock.Any(), gomock.Any()).Return("refresh-token", nil)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newServiceFixture(t)

		f.storage.EXPECT().GetActiveTenantByDomain(gomock.Any(), "acme.example").Return(activeTenant(), nil)
		f.storage.EXPECT().GetActiveUserByEmail(gomock.Any(), "tenant-1", "admin@acme.example").Return(activeUser("hunter2"), nil)
		f.storage.EXPECT().UpdateLastLogin(gomock.Any(), "user-1").Return(nil)
		expectPair(f)

		pair, err := f.service.Login(ctx, "acme.example", "admin@acme.example", "hunter2")
		if err != nil {
			t.Fatal(err)
		}
		if pair.AccessToken != "access-token" || pair.RefreshToken != "refresh-token" {
			t.Fatalf("wrong pair: %+v", pair)
		}
		if pair.TokenType != "bearer" || pair.ExpiresIn != 1800 {
			t.Fatalf("wrong pair metadata: %+v", pair)
		}
	})

	t.Run("UnknownTenant", func(t *testing.T) {
		f := newServiceFixture(t)

		f.storage.EXPECT().GetActiveTenantByDomain(gomock.Any(), "nope.example").Return(nil, storage.ErrNotFound)

		if _, err := f.service.Login(ctx, "nope.example", "a@b.example", "pw"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := newServiceFixture(t)

		f.storage.EXPECT().GetActiveTenantByDomain(gomock.Any(), "acme.example").Return(activeTenant(), nil)
		f.storage.EXPECT().GetActiveUserByEmail(gomock.Any(), "tenant-1", "ghost@acme.example").Return(nil, storage.ErrNotFound)

		if _, err := f.service.Login(ctx, "acme.example", "ghost@acme.example", "pw"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		f := newServiceFixture(t)

		f.storage.EXPECT().GetActiveTenantByDomain(gomock.Any(), "acme.example").Return(activeTenant(), nil)
		f.storage.EXPECT().GetActiveUserByEmail(gomock.Any(), "tenant-1", "admin@acme.example").Return(activeUser("hunter2"), nil)

		if _, err := f.service.Login(ctx, "acme.example", "admin@acme.example", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newServiceFixture(t)

		f.storage.EXPECT().
			CreateTenant(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, tenant *types.Tenant) (*types.Tenant, error) {
				if tenant.Plan != types.PlanProfessional || tenant.MaxUsers != 50 {
					t.Errorf("wrong tenant plan setup: %+v", tenant)
				}
				created := *tenant
				created.ID = "tenant-1"
				return &created, nil
			})
		f.storage.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, user *types.User) (*types.User, error) {
				if user.Role != types.RoleAdmin {
					t.Errorf("first user must be admin, got %q", user.Role)
				}
				if user.HashedPassword == "hunter2" {
					t.Error("password stored in plaintext")
				}
				created := *user
				created.ID = "user-1"
				return &created, nil
			})
		f.storage.EXPECT().UpdateTenantUserCount(gomock.Any(), "tenant-1", 1).Return(nil)
		expectPair(f)

		_, err := f.service.Register(ctx, &RegisterRequest{
			TenantName:   "Acme",
			TenantDomain: "acme.example",
			Plan:         types.PlanProfessional,
			Email:        "admin@acme.example",
			Password:     "hunter2",
		})
		if err != nil {
			t.Fatal(err)
		}
	})

	t.Run("DuplicateDomain", func(t *testing.T) {
		f := newServiceFixture(t)

		f.storage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)

		_, err := f.service.Register(ctx, &RegisterRequest{TenantDomain: "acme.example", Password: "pw"})
		if !errors.Is(err, ErrDuplicateTenant) {
			t.Fatalf("expected ErrDuplicateTenant, got %v", err)
		}
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newServiceFixture(t)

		f.verifier.EXPECT().VerifyRefreshToken(gomock.Any(), "refresh-token").
			Return(&token.Claims{UserID: "user-1", TenantID: "tenant-1", Type: token.TypeRefresh}, nil)
		f.storage.EXPECT().GetActiveTenantByID(gomock.Any(), "tenant-1").Return(activeTenant(), nil)
		f.storage.EXPECT().GetActiveUserByID(gomock.Any(), "tenant-1", "user-1").Return(activeUser("pw"), nil)
		expectPair(f)

		if _, err := f.service.Refresh(ctx, "refresh-token"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("BadToken", func(t *testing.T) {
		f := newServiceFixture(t)

		f.verifier.EXPECT().VerifyRefreshToken(gomock.Any(), "garbage").Return(nil, token.ErrMalformedToken)

		if _, err := f.service.Refresh(ctx, "garbage"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("SuspendedTenant", func(t *testing.T) {
		f := newServiceFixture(t)

		f.verifier.EXPECT().VerifyRefreshToken(gomock.Any(), "refresh-token").
			Return(&token.Claims{UserID: "user-1", TenantID: "tenant-1", Type: token.TypeRefresh}, nil)
		f.storage.EXPECT().GetActiveTenantByID(gomock.Any(), "tenant-1").Return(nil, storage.ErrNotFound)

		if _, err := f.service.Refresh(ctx, "refresh-token"); !errors.Is(err, ErrTenantInactive) {
			t.Fatalf("expected ErrTenantInactive, got %v", err)
		}
	})
}

func TestResolveAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newServiceFixture(t)

		f.verifier.EXPECT().VerifyAccessToken(gomock.Any(), "access-token").
			Return(&token.Claims{UserID: "user-1", TenantID: "tenant-1", Role: types.RoleAdmin, Type: token.TypeAccess}, nil)
		f.storage.EXPECT().GetActiveTenantByID(gomock.Any(), "tenant-1").Return(activeTenant(), nil)

		user := activeUser("pw")
		user.Role = types.RoleAnalyst // demoted since the token was minted
		f.storage.EXPECT().GetActiveUserByID(gomock.Any(), "tenant-1", "user-1").Return(user, nil)

		tc, err := f.service.ResolveAccessToken(ctx, "access-token")
		if err != nil {
			t.Fatal(err)
		}
		if tc.TenantID() != "tenant-1" || tc.UserID() != "user-1" {
			t.Fatalf("wrong identity: %+v", tc)
		}
		if tc.Role() != types.RoleAnalyst {
			t.Fatalf("role should come from the user record, got %q", tc.Role())
		}
		if tc.AuthMethod() != MethodJWT {
			t.Fatalf("wrong auth method: %q", tc.AuthMethod())
		}
	})

	t.Run("SuspendedTenant", func(t *testing.T) {
		f := newServiceFixture(t)

		f.verifier.EXPECT().VerifyAccessToken(gomock.Any(), "access-token").
			Return(&token.Claims{UserID: "user-1", TenantID: "tenant-1", Type: token.TypeAccess}, nil)
		f.storage.EXPECT().GetActiveTenantByID(gomock.Any(), "tenant-1").Return(nil, storage.ErrNotFound)

		if _, err := f.service.ResolveAccessToken(ctx, "access-token"); !errors.Is(err, ErrTenantInactive) {
			t.Fatalf("expected ErrTenantInactive, got %v", err)
		}
	})

	t.Run("BadToken", func(t *testing.T) {
		f := newServiceFixture(t)

		f.verifier.EXPECT().VerifyAccessToken(gomock.Any(), "garbage").Return(nil, token.ErrMalformedToken)

		if _, err := f.service.ResolveAccessToken(ctx, "garbage"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestResolveAPIKey(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newServiceFixture(t)

		raw, hash, err := generateAPIKey()
		if err != nil {
			t.Fatal(err)
		}

		f.storage.EXPECT().GetActiveAPIKeyByHash(gomock.Any(), hash).
			Return(&types.APIKey{ID: "key-1", TenantID: "tenant-1", Permissions: []string{"read", "write"}, CreatedBy: "user-1", IsActive: true}, nil)
		f.storage.EXPECT().GetActiveTenantByID(gomock.Any(), "tenant-1").Return(activeTenant(), nil)
		f.storage.EXPECT().TouchAPIKey(gomock.Any(), "key-1").Return(nil)

		tc, err := f.service.ResolveAPIKey(ctx, raw)
		if err != nil {
			t.Fatal(err)
		}
		if tc.Role() != types.RoleManager {
			t.Fatalf("write grant should map to manager, got %q", tc.Role())
		}
		if tc.AuthMethod() != MethodAPIKey {
			t.Fatalf("wrong auth method: %q", tc.AuthMethod())
		}
	})

	t.Run("WrongPrefix", func(t *testing.T) {
		f := newServiceFixture(t)

		if _, err := f.service.ResolveAPIKey(ctx, "sk_not_ours"); !errors.Is(err, ErrInvalidAPIKey) {
			t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
		}
	})

	t.Run("UnknownKey", func(t *testing.T) {
		f := newServiceFixture(t)

		f.storage.EXPECT().GetActiveAPIKeyByHash(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

		if _, err := f.service.ResolveAPIKey(ctx, "cb_deadbeef"); !errors.Is(err, ErrInvalidAPIKey) {
			t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
		}
	})
}

func TestAddUserSeatLimit(t *testing.T) {
	f := newServiceFixture(t)

	tc := NewTenantContext(activeTenant(), "user-1", "admin@acme.example", types.RoleAdmin, MethodJWT)

	f.storage.EXPECT().CountActiveUsers(gomock.Any(), "tenant-1").Return(int64(5), nil)

	_, err := f.service.AddUser(context.Background(), tc, "new@acme.example", "pw", "New", "User", types.RoleViewer)
	if !errors.Is(err, ErrUserLimitReached) {
		t.Fatalf("expected ErrUserLimitReached, got %v", err)
	}
}

func TestRoleForPermissions(t *testing.T) {
	tests := []struct {
		name        string
		permissions []string
		want        types.Role
	}{
		{name: "Empty", permissions: nil, want: types.RoleViewer},
		{name: "ReadOnly", permissions: []string{"read"}, want: types.RoleViewer},
		{name: "Write", permissions: []string{"read", "write"}, want: types.RoleManager},
		{name: "Admin", permissions: []string{"admin"}, want: types.RoleAdmin},
		{name: "AdminWins", permissions: []string{"read", "admin", "write"}, want: types.RoleAdmin},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := roleForPermissions(test.permissions); got != test.want {
				t.Fatalf("got %q, want %q", got, test.want)
			}
		})
	}
}
