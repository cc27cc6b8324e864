package api

import "fmt"

// Field length limits, matching the persisted column sizes.
const (
	maxFieldLen    = 100
	maxEmailLen    = 200
	maxStreetLen   = 200
	maxPhoneLen    = 20
	maxPostalLen   = 10
	maxFilenameLen = 255
)

func requiredMax(param, value string, max int) *APIError {
	if value == "" {
		return NewInvalidRequestError(param, param+" is required")
	}
	if len(value) > max {
		return NewInvalidRequestError(param, fmt.Sprintf("%s cannot be longer than %d characters", param, max))
	}
	return nil
}

func optionalMax(param, value string, max int) *APIError {
	if len(value) > max {
		return NewInvalidRequestError(param, fmt.Sprintf("%s cannot be longer than %d characters", param, max))
	}
	return nil
}

// Validate checks a RegisterRequest. It returns an *APIError describing the
// first validation failure, or nil if the request is valid.
func (r *RegisterRequest) Validate() *APIError {
	if err := requiredMax("username", r.Username, maxFieldLen); err != nil {
		return err
	}
	if err := requiredMax("password", r.Password, maxFieldLen); err != nil {
		return err
	}
	return requiredMax("name", r.Name, maxFieldLen)
}

// Validate checks a LoginRequest.
func (r *LoginRequest) Validate() *APIError {
	if err := requiredMax("username", r.Username, maxFieldLen); err != nil {
		return err
	}
	return requiredMax("password", r.Password, maxFieldLen)
}

// Validate checks an UpdateUserRequest. Nil fields are valid; present fields
// must be non-empty.
func (r *UpdateUserRequest) Validate() *APIError {
	if r.Name == nil && r.Password == nil {
		return NewInvalidRequestError("", "at least one of name or password is required")
	}
	if r.Name != nil {
		if err := requiredMax("name", *r.Name, maxFieldLen); err != nil {
			return err
		}
	}
	if r.Password != nil {
		if err := requiredMax("password", *r.Password, maxFieldLen); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a FileUpdateRequest.
func (r *FileUpdateRequest) Validate() *APIError {
	return requiredMax("filename", r.Filename, maxFilenameLen)
}

// Validate checks a ContactRequest. Only the first name is mandatory,
// mirroring the persistence schema.
func (r *ContactRequest) Validate() *APIError {
	if err := requiredMax("first_name", r.FirstName, maxFieldLen); err != nil {
		return err
	}
	if err := optionalMax("last_name", r.LastName, maxFieldLen); err != nil {
		return err
	}
	if err := optionalMax("email", r.Email, maxEmailLen); err != nil {
		return err
	}
	return optionalMax("phone", r.Phone, maxPhoneLen)
}

// Validate checks an AddressRequest. Country is the only mandatory field.
func (r *AddressRequest) Validate() *APIError {
	if err := optionalMax("street", r.Street, maxStreetLen); err != nil {
		return err
	}
	if err := optionalMax("city", r.City, maxFieldLen); err != nil {
		return err
	}
	if err := optionalMax("province", r.Province, maxFieldLen); err != nil {
		return err
	}
	if err := requiredMax("country", r.Country, maxFieldLen); err != nil {
		return err
	}
	return optionalMax("postal_code", r.PostalCode, maxPostalLen)
}
