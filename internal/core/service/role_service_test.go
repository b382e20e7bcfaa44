package service

import (
	"context"
	"errors"
	"testing"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

func TestRoleService_Create_NormalizesName(t *testing.T) {
	roles := newStubRoleRepo()
	svc := NewRoleService(roles, discardLogger)

	role, err := svc.CreateRole(context.Background(), ports.RoleInput{
		Name:  "  Staff   Member ",
		Title: "Staff Member",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role.Name != "staff_member" {
		t.Errorf("expected normalized name staff_member, got %q", role.Name)
	}
}

func TestRoleService_Create_RequiredFields(t *testing.T) {
	svc := NewRoleService(newStubRoleRepo(), discardLogger)

	if _, err := svc.CreateRole(context.Background(), ports.RoleInput{Name: "  ", Title: "X"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank name: expected ErrValidation, got %v", err)
	}
	if _, err := svc.CreateRole(context.Background(), ports.RoleInput{Name: "staff", Title: ""}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank title: expected ErrValidation, got %v", err)
	}
}

func TestRoleService_Create_DuplicateName(t *testing.T) {
	roles := newStubRoleRepo()
	svc := NewRoleService(roles, discardLogger)

	if _, err := svc.CreateRole(context.Background(), ports.RoleInput{Name: "staff", Title: "Staff"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Different casing and spacing normalize to the same internal name.
	_, err := svc.CreateRole(context.Background(), ports.RoleInput{Name: " STAFF ", Title: "Staff 2"})
	if !errors.Is(err, domain.ErrDuplicateRoleName) {
		t.Errorf("expected ErrDuplicateRoleName, got %v", err)
	}
}

func TestRoleService_Update_TitleAndDescription(t *testing.T) {
	roles := newStubRoleRepo()
	svc := NewRoleService(roles, discardLogger)
	created, _ := svc.CreateRole(context.Background(), ports.RoleInput{Name: "staff", Title: "Staff", Description: "old"})

	updated, err := svc.UpdateRole(context.Background(), created.ID, ports.RoleInput{Title: "Front Desk", Description: "new"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Front Desk" || updated.Description != "new" {
		t.Errorf("title/description not updated: %+v", updated)
	}
	if updated.Name != "staff" {
		t.Errorf("internal name must survive update, got %q", updated.Name)
	}
}

func TestRoleService_Update_NameIsImmutable(t *testing.T) {
	roles := newStubRoleRepo()
	svc := NewRoleService(roles, discardLogger)
	created, _ := svc.CreateRole(context.Background(), ports.RoleInput{Name: "staff", Title: "Staff"})

	_, err := svc.UpdateRole(context.Background(), created.ID, ports.RoleInput{Name: "supervisor", Title: "Staff"})
	if !errors.Is(err, domain.ErrImmutableField) {
		t.Errorf("expected ErrImmutableField, got %v", err)
	}
}

func TestRoleService_Update_SameNormalizedNameAccepted(t *testing.T) {
	roles := newStubRoleRepo()
	svc := NewRoleService(roles, discardLogger)
	created, _ := svc.CreateRole(context.Background(), ports.RoleInput{Name: "staff member", Title: "Staff"})

	// Re-sending the current name in a different spelling is not a rename.
	if _, err := svc.UpdateRole(context.Background(), created.ID, ports.RoleInput{Name: "Staff  Member", Title: "Staff"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRoleService_Delete_CoreRoleProtected(t *testing.T) {
	roles := newStubRoleRepo()
	svc := NewRoleService(roles, discardLogger)
	admin, _ := roles.Create(context.Background(), &domain.Role{Name: domain.RoleAdmin, Title: "Administrator"})

	err := svc.DeleteRole(context.Background(), admin.ID)
	if !errors.Is(err, domain.ErrCoreRoleProtected) {
		t.Errorf("expected ErrCoreRoleProtected, got %v", err)
	}
}

func TestRoleService_Delete_RoleInUse(t *testing.T) {
	roles := newStubRoleRepo()
	users := newStubUserRepo()
	roles.users = users
	svc := NewRoleService(roles, discardLogger)

	staff, _ := roles.Create(context.Background(), &domain.Role{Name: "staff", Title: "Staff"})
	_, _ = users.Create(context.Background(), &domain.User{
		Name: "Carla Mendes", Email: "carla@example.com", RoleID: staff.ID, Status: domain.UserActive,
	})

	err := svc.DeleteRole(context.Background(), staff.ID)
	if !errors.Is(err, domain.ErrRoleInUse) {
		t.Errorf("expected ErrRoleInUse, got %v", err)
	}
}

func TestRoleService_Delete_Unreferenced(t *testing.T) {
	roles := newStubRoleRepo()
	roles.users = newStubUserRepo()
	svc := NewRoleService(roles, discardLogger)
	staff, _ := roles.Create(context.Background(), &domain.Role{Name: "staff", Title: "Staff"})

	if err := svc.DeleteRole(context.Background(), staff.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := roles.FindByID(context.Background(), staff.ID); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Error("role must be gone after delete")
	}
}

func TestRoleService_Delete_NotFound(t *testing.T) {
	svc := NewRoleService(newStubRoleRepo(), discardLogger)

	if err := svc.DeleteRole(context.Background(), "role_ghost"); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Errorf("expected ErrRoleNotFound, got %v", err)
	}
}
