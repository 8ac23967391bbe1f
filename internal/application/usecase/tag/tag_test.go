package tag

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter/adaptertest"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

var (
	driver  = policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleDrivers}}
	manager = policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleManagers}}
)

func TestCreateTag(t *testing.T) {
	store := adaptertest.NewStore()
	uc := NewCreateTagUseCase(store.Tags())

	out, err := uc.Execute(context.Background(), CreateTagInput{Principal: manager, Name: "  Business "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Tag.Name != "Business" {
		t.Errorf("expected trimmed name, got %q", out.Tag.Name)
	}

	tests := []struct {
		name          string
		input         CreateTagInput
		expectedIs    error
		expectedField string
	}{
		{name: "driver is forbidden", input: CreateTagInput{Principal: driver, Name: "Holiday"}, expectedIs: domainerror.ErrActionForbidden},
		{name: "too short", input: CreateTagInput{Principal: manager, Name: "a"}, expectedField: "name"},
		{name: "too long", input: CreateTagInput{Principal: manager, Name: "abcdefghijklmnopqrstuvwxyz12345"}, expectedField: "name"},
		{name: "duplicate ignoring case", input: CreateTagInput{Principal: manager, Name: "business"}, expectedIs: domainerror.ErrDuplicateTag, expectedField: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.expectedIs != nil && !errors.Is(err, tt.expectedIs) {
				t.Errorf("expected %v, got %v", tt.expectedIs, err)
			}
			if tt.expectedField != "" {
				var ledgerErr *domainerror.LedgerError
				if !errors.As(err, &ledgerErr) || ledgerErr.Field != tt.expectedField {
					t.Errorf("expected validation error on %s, got %v", tt.expectedField, err)
				}
			}
		})
	}
}

func TestTagLifecycle(t *testing.T) {
	store := adaptertest.NewStore()
	created, err := NewCreateTagUseCase(store.Tags()).Execute(context.Background(), CreateTagInput{Principal: manager, Name: "Commute"})
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}

	list, err := NewListTagsUseCase(store.Tags()).Execute(context.Background(), ListTagsInput{Principal: driver})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list.Tags) != 1 {
		t.Errorf("expected drivers to see 1 tag, got %d", len(list.Tags))
	}

	renamed, err := NewUpdateTagUseCase(store.Tags()).Execute(context.Background(), UpdateTagInput{Principal: manager, TagID: created.Tag.ID, Name: "commute"})
	if err != nil {
		t.Fatalf("expected renaming own tag to differ only by case, got %v", err)
	}
	if renamed.Tag.Name != "commute" {
		t.Errorf("expected commute, got %s", renamed.Tag.Name)
	}

	del := NewDeleteTagUseCase(store.Tags())
	if _, err := del.Execute(context.Background(), DeleteTagInput{Principal: driver, TagID: created.Tag.ID}); !errors.Is(err, domainerror.ErrActionForbidden) {
		t.Errorf("expected ErrActionForbidden, got %v", err)
	}
	out, err := del.Execute(context.Background(), DeleteTagInput{Principal: manager, TagID: created.Tag.ID})
	if err != nil || !out.Success {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if _, err := del.Execute(context.Background(), DeleteTagInput{Principal: manager, TagID: created.Tag.ID}); !errors.Is(err, domainerror.ErrTagNotFound) {
		t.Errorf("expected ErrTagNotFound, got %v", err)
	}
}

func TestSelectorResolve(t *testing.T) {
	store := adaptertest.NewStore()
	tag := entity.NewTag("Family")
	if err := store.Tags().Create(context.Background(), tag); err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	selector := NewSelector(store.Tags())

	tags, err := selector.Resolve(context.Background(), []uuid.UUID{tag.ID, tag.ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(tags) != 1 || tags[0].ID != tag.ID {
		t.Errorf("expected the single tag, got %v", tags)
	}

	empty, err := selector.Resolve(context.Background(), nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected no tags, got %v %v", empty, err)
	}

	_, err = selector.Resolve(context.Background(), []uuid.UUID{tag.ID, uuid.New()})
	var ledgerErr *domainerror.LedgerError
	if !errors.As(err, &ledgerErr) || ledgerErr.Code != domainerror.ErrCodeUnknownTag {
		t.Errorf("expected unknown tag error, got %v", err)
	}
}
