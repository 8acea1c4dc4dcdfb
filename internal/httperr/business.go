package httperr

import "errors"

// BusinessError is a rule violation identified by a stable code that is
// sent to clients as error_code.
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
	return BusinessCode(err) == code
}

// BusinessCode returns the code of the first BusinessError in err's chain,
// or "" when there is none.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
