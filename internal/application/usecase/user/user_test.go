package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter/adaptertest"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, store *adaptertest.Store, username, email string) *entity.User {
	t.Helper()
	user := entity.NewUser(username, email, "", "hash")
	user.Roles = []entity.Role{entity.RoleDrivers}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestUpdateProfile(t *testing.T) {
	store := adaptertest.NewStore()
	clock := adaptertest.FixedClock{T: time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)}
	user := seedUser(t, store, "maria", "maria@example.com")
	seedUser(t, store, "petar", "petar@example.com")
	uc := NewUpdateProfileUseCase(store.Users(), clock)

	tests := []struct {
		name         string
		input        UpdateProfileInput
		expectedCode domainerror.AuthErrorCode
	}{
		{
			name:         "invalid email",
			input:        UpdateProfileInput{UserID: user.ID, Email: strPtr("not-an-email")},
			expectedCode: domainerror.ErrCodeInvalidEmail,
		},
		{
			name:         "email taken",
			input:        UpdateProfileInput{UserID: user.ID, Email: strPtr("Petar@Example.com")},
			expectedCode: domainerror.ErrCodeEmailExists,
		},
		{
			name:         "unknown timezone",
			input:        UpdateProfileInput{UserID: user.ID, Timezone: strPtr("Mars/Olympus")},
			expectedCode: domainerror.ErrCodeInvalidProfile,
		},
		{
			name:         "unknown user",
			input:        UpdateProfileInput{UserID: uuid.New()},
			expectedCode: domainerror.ErrCodeUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)

			var authErr *domainerror.AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected AuthError, got %v", err)
			}
			if authErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, authErr.Code)
			}
		})
	}

	t.Run("valid update", func(t *testing.T) {
		eur := entity.CurrencyEUR
		out, err := uc.Execute(context.Background(), UpdateProfileInput{
			UserID:            user.ID,
			Email:             strPtr("maria@example.com"),
			Name:              strPtr("  Maria Ivanova "),
			PreferredCurrency: &eur,
			Timezone:          strPtr("Europe/Berlin"),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.User.Name != "Maria Ivanova" || out.User.PreferredCurrency != entity.CurrencyEUR || out.User.Timezone != "Europe/Berlin" {
			t.Errorf("unexpected profile %+v", out.User)
		}

		got, _ := NewGetProfileUseCase(store.Users()).Execute(context.Background(), GetProfileInput{UserID: user.ID})
		if got.User.Timezone != "Europe/Berlin" {
			t.Errorf("expected stored timezone Europe/Berlin, got %s", got.User.Timezone)
		}
	})
}

func TestAssignRoles(t *testing.T) {
	store := adaptertest.NewStore()
	target := seedUser(t, store, "georgi", "")
	uc := NewAssignRolesUseCase(store.Users())

	driver := policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleDrivers}}
	manager := policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleManagers}}

	_, err := uc.Execute(context.Background(), AssignRolesInput{Principal: driver, UserID: target.ID, Roles: []entity.Role{entity.RoleManagers}})
	if !errors.Is(err, domainerror.ErrInsufficientRole) {
		t.Errorf("expected ErrInsufficientRole, got %v", err)
	}

	_, err = uc.Execute(context.Background(), AssignRolesInput{Principal: manager, UserID: target.ID, Roles: []entity.Role{"admins"}})
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeInvalidRole {
		t.Errorf("expected invalid role error, got %v", err)
	}

	out, err := uc.Execute(context.Background(), AssignRolesInput{
		Principal: manager,
		UserID:    target.ID,
		Roles:     []entity.Role{entity.RoleManagers, entity.RoleDrivers, entity.RoleManagers},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out.User.Roles) != 2 {
		t.Errorf("expected 2 roles, got %v", out.User.Roles)
	}

	stored, _ := store.Users().FindByID(context.Background(), target.ID)
	if !stored.HasRole(entity.RoleManagers) {
		t.Error("expected stored user to be a manager")
	}
}
