package validators

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
)

// TagTimezone validates that a string field names a loadable IANA zone.
const TagTimezone = "iana_tz"

func isTimezone(fl validator.FieldLevel) bool {
	return timezone.IsValid(strings.TrimSpace(fl.Field().String()))
}

// Register installs the custom tags on gin's binding validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation(TagTimezone, isTimezone)
}
