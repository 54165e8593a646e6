package validate

import (
	"testing"
)

func TestNonEmpty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain value", value: "Alice", wantErr: false},
		{name: "value with spaces", value: "  Alice  ", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace only", value: "   \t ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NonEmpty(tt.value, "first_name")
			if (err != nil) != tt.wantErr {
				t.Fatalf("NonEmpty(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && err.Error() != "first_name is required." {
				t.Fatalf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: "alice@example.com", wantErr: false},
		{value: "  alice@example.com  ", wantErr: false},
		{value: "alice.smith+hr@sub.example.co", wantErr: false},
		{value: "", wantErr: true},
		{value: "alice", wantErr: true},
		{value: "alice@", wantErr: true},
		{value: "@example.com", wantErr: true},
		{value: "alice example@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := Email(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Email(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && err.Error() != "Invalid email format." {
				t.Fatalf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: "2023-06-15", wantErr: false},
		{value: "2023-06-15T09:30:00", wantErr: false},
		{value: "2023-06-15T09:30:00Z", wantErr: false},
		{value: "2023-06-15T09:30:00+05:00", wantErr: false},
		{value: "", wantErr: true},
		{value: "15/06/2023", wantErr: true},
		{value: "June 15, 2023", wantErr: true},
		{value: "2023-13-40", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			parsed, err := Date(tt.value, "date_of_joining")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Date(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil && parsed.IsZero() {
				t.Fatalf("Date(%q) returned zero time without error", tt.value)
			}
			if err != nil && err.Error() != "date_of_joining must be a valid date (ISO format)." {
				t.Fatalf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestObjectID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid 24-hex", value: "64a1f2c3d4e5f60718293a4b", wantErr: false},
		{name: "uppercase hex", value: "64A1F2C3D4E5F60718293A4B", wantErr: false},
		{name: "too short", value: "64a1f2c3d4e5f60718293a4", wantErr: true},
		{name: "too long", value: "64a1f2c3d4e5f60718293a4b0", wantErr: true},
		{name: "non-hex", value: "64a1f2c3d4e5f60718293a4z", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ObjectID(tt.value, "employee id")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ObjectID(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil && id.IsZero() {
				t.Fatalf("ObjectID(%q) returned zero id without error", tt.value)
			}
			if err != nil && err.Error() != "Invalid employee id." {
				t.Fatalf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestSalaryBoundary(t *testing.T) {
	if err := Salary(999); err == nil {
		t.Fatal("expected salary 999 to be rejected")
	}
	if err := Salary(999.99); err == nil {
		t.Fatal("expected salary 999.99 to be rejected")
	}
	if err := Salary(1000); err != nil {
		t.Fatalf("expected salary 1000 to be accepted, got %v", err)
	}
	if err := Salary(250000); err != nil {
		t.Fatalf("expected salary 250000 to be accepted, got %v", err)
	}
}

func TestGender(t *testing.T) {
	for _, value := range []string{"Male", "Female", "Other"} {
		if err := Gender(value); err != nil {
			t.Fatalf("Gender(%q) unexpected error: %v", value, err)
		}
	}
	for _, value := range []string{"", "male", "MALE", "Unknown"} {
		err := Gender(value)
		if err == nil {
			t.Fatalf("Gender(%q) expected error", value)
		}
		if err.Error() != "Gender must be Male, Female or Other." {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	}
}

func TestFieldsFirstFailureWins(t *testing.T) {
	err := Fields(
		func() error { return NonEmpty("x", "first_name") },
		func() error { return NonEmpty("", "last_name") },
		func() error { return NonEmpty("", "email") },
	)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "last_name is required." {
		t.Fatalf("expected first failing rule to win, got %q", err.Error())
	}

	if err := Fields(); err != nil {
		t.Fatalf("empty rule set should pass, got %v", err)
	}
}
