package httperr

import "errors"

// BusinessError is a domain rule violation identified by a stable code
// ("time_conflict", "invalid_state", ...). Use cases return codes, never
// HTTP statuses; handlers translate at the boundary.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness reports whether err carries exactly the given code,
// unwrapping as needed.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	return errors.As(err, &be) && be.Code == code
}
