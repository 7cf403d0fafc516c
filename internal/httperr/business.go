package httperr

import "errors"

// BusinessError is a rule violation the client can act on. Code is the
// stable machine-readable identifier sent as error_code.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	got, ok := BusinessCode(err)
	return ok && got == code
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
