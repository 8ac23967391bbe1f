package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/adapter/adaptertest"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
)

type stubPasswordService struct{}

func (stubPasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubPasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (stubPasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type stubTokenService struct {
	adapter.TokenService
}

func (stubTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, username string, rememberMe bool) (*adapter.TokenPair, error) {
	return &adapter.TokenPair{AccessToken: "access-" + username, RefreshToken: "refresh-" + username}, nil
}

func TestRegisterUser(t *testing.T) {
	store := adaptertest.NewStore()
	emails := &adaptertest.RecordingEmailService{}
	uc := NewRegisterUserUseCase(store.Users(), stubPasswordService{}, stubTokenService{}, emails)

	out, err := uc.Execute(context.Background(), RegisterUserInput{
		Username: "driver.one",
		Email:    "Driver.One@Example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !out.User.HasRole(entity.RoleDrivers) {
		t.Error("expected new user to join the drivers role")
	}
	if out.User.Email != "driver.one@example.com" {
		t.Errorf("expected normalized email, got %s", out.User.Email)
	}
	if out.User.PreferredCurrency != entity.CurrencyBGN || out.User.Timezone != entity.DefaultTimezone {
		t.Errorf("expected default currency and timezone, got %s %s", out.User.PreferredCurrency, out.User.Timezone)
	}
	if out.AccessToken != "access-driver.one" {
		t.Errorf("expected access token, got %s", out.AccessToken)
	}
	if len(emails.Welcome) != 1 || emails.Welcome[0].UserEmail != "driver.one@example.com" {
		t.Errorf("expected one welcome email, got %+v", emails.Welcome)
	}

	tests := []struct {
		name         string
		input        RegisterUserInput
		expectedCode domainerror.AuthErrorCode
	}{
		{name: "username taken", input: RegisterUserInput{Username: "driver.one", Password: "secret123"}, expectedCode: domainerror.ErrCodeUsernameExists},
		{name: "email taken", input: RegisterUserInput{Username: "driver.two", Email: "driver.one@example.com", Password: "secret123"}, expectedCode: domainerror.ErrCodeEmailExists},
		{name: "bad username", input: RegisterUserInput{Username: "a b", Password: "secret123"}, expectedCode: domainerror.ErrCodeMissingFields},
		{name: "bad email", input: RegisterUserInput{Username: "driver.three", Email: "nope", Password: "secret123"}, expectedCode: domainerror.ErrCodeInvalidEmail},
		{name: "weak password", input: RegisterUserInput{Username: "driver.four", Password: "short"}, expectedCode: domainerror.ErrCodeWeakPassword},
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
}

func TestRegisterUser_WithoutEmailOrFailingQueue(t *testing.T) {
	store := adaptertest.NewStore()
	emails := &adaptertest.RecordingEmailService{FailWith: errors.New("queue down")}
	uc := NewRegisterUserUseCase(store.Users(), stubPasswordService{}, stubTokenService{}, emails)

	if _, err := uc.Execute(context.Background(), RegisterUserInput{Username: "quiet", Password: "secret123"}); err != nil {
		t.Errorf("expected no error without email, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), RegisterUserInput{Username: "loud", Email: "loud@example.com", Password: "secret123"}); err != nil {
		t.Errorf("expected email failure not to block registration, got %v", err)
	}
}

func TestLoginUser(t *testing.T) {
	store := adaptertest.NewStore()
	register := NewRegisterUserUseCase(store.Users(), stubPasswordService{}, stubTokenService{}, nil)
	if _, err := register.Execute(context.Background(), RegisterUserInput{Username: "ana", Password: "secret123"}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	uc := NewLoginUserUseCase(store.Users(), stubPasswordService{}, stubTokenService{})

	out, err := uc.Execute(context.Background(), LoginUserInput{Username: " ana ", Password: "secret123"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.RefreshToken != "refresh-ana" {
		t.Errorf("expected refresh token, got %s", out.RefreshToken)
	}

	for _, input := range []LoginUserInput{
		{Username: "ana", Password: "wrong-password"},
		{Username: "nobody", Password: "secret123"},
	} {
		if _, err := uc.Execute(context.Background(), input); !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for %s, got %v", input.Username, err)
		}
	}
}
