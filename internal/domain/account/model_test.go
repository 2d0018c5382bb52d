package account

import "testing"

// TestSetAndCheckPassword verifies the bcrypt round trip.
func TestSetAndCheckPassword(t *testing.T) {
	a := Account{Email: "ops@example.org", Role: RoleAdmin}
	if err := a.SetPassword("short"); err != ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := a.SetPassword("a long enough password"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if err := a.CheckPassword("a long enough password"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := a.CheckPassword("wrong password entirely"); err != ErrWrongPassword {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

// TestValidate verifies email and role rules.
func TestValidate(t *testing.T) {
	a := Account{Email: "ops@example.org", Role: RoleCoordinator}
	if err := a.Validate(); err != nil {
		t.Errorf("expected valid account, got %v", err)
	}
	a.Role = "superuser"
	if err := a.Validate(); err != ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
	a = Account{Email: "nope", Role: RoleViewer}
	if err := a.Validate(); err != ErrInvalidEmail {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
}

// TestRolePredicates verifies write/admin gates.
func TestRolePredicates(t *testing.T) {
	admin := Account{Role: RoleAdmin}
	coord := Account{Role: RoleCoordinator}
	viewer := Account{Role: RoleViewer}

	if !admin.CanWrite() || !admin.IsAdmin() {
		t.Error("admin should write and administer")
	}
	if !coord.CanWrite() || coord.IsAdmin() {
		t.Error("coordinator writes but does not administer")
	}
	if viewer.CanWrite() || viewer.IsAdmin() {
		t.Error("viewer is read-only")
	}
}
