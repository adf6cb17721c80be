package holidayerrors

import (
	"hris-core/internal/shared/apperror"
	"net/http"
)

var ErrInvalidYear = apperror.New(
	apperror.CodeValidationError,
	"Year must be a four digit number",
	http.StatusBadRequest,
)
