package api

import (
	"strings"
	"testing"
)

func strptr(s string) *string { return &s }

func TestRegisterRequestValidate(t *testing.T) {
	long := strings.Repeat("x", 101)

	tests := []struct {
		name      string
		req       RegisterRequest
		wantParam string // "" means valid
	}{
		{"valid", RegisterRequest{Username: "alfred", Password: "secret", Name: "Alfred"}, ""},
		{"missing username", RegisterRequest{Password: "secret", Name: "Alfred"}, "username"},
		{"missing password", RegisterRequest{Username: "alfred", Name: "Alfred"}, "password"},
		{"missing name", RegisterRequest{Username: "alfred", Password: "secret"}, "name"},
		{"username too long", RegisterRequest{Username: long, Password: "secret", Name: "Alfred"}, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantParam == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if err.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", err.Param, tt.wantParam)
			}
			if err.Type != ErrorTypeInvalidRequest {
				t.Errorf("Type = %q, want %q", err.Type, ErrorTypeInvalidRequest)
			}
		})
	}
}

func TestUpdateUserRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateUserRequest
		wantErr bool
	}{
		{"name only", UpdateUserRequest{Name: strptr("New Name")}, false},
		{"password only", UpdateUserRequest{Password: strptr("newsecret")}, false},
		{"both", UpdateUserRequest{Name: strptr("New"), Password: strptr("newsecret")}, false},
		{"neither", UpdateUserRequest{}, true},
		{"empty name present", UpdateUserRequest{Name: strptr("")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestContactRequestValidate(t *testing.T) {
	if err := (&ContactRequest{FirstName: "Ali"}).Validate(); err != nil {
		t.Errorf("first name alone should be enough: %v", err)
	}
	if err := (&ContactRequest{LastName: "Baba"}).Validate(); err == nil {
		t.Error("missing first name should fail")
	}
}

func TestAddressRequestValidate(t *testing.T) {
	if err := (&AddressRequest{Country: "Indonesia"}).Validate(); err != nil {
		t.Errorf("country alone should be enough: %v", err)
	}
	if err := (&AddressRequest{Street: "Jalan Sudirman"}).Validate(); err == nil {
		t.Error("missing country should fail")
	}
}
