package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrDecodingPayload = errors.New("error decoding request payload")
)

// Client-facing validation messages.
const (
	MsgMissingRequiredFields = "Missing required fields"
	MsgFixErrors             = "Please fix the following errors:"
	MsgInvalidJSON           = "Invalid JSON was passed"
	MsgInvalidPayload        = "Invalid request payload"

	MsgNameTooShort     = "Name must be at least 2 characters long"
	MsgNameTooLong      = "Name must be less than 50 characters"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgPasswordLength   = "Password must be at least 8 characters long"
	MsgPasswordUpper    = "Password must contain at least one uppercase letter"
	MsgPasswordLower    = "Password must contain at least one lowercase letter"
	MsgPasswordDigit    = "Password must contain at least one number"
	MsgInvalidCategory  = "Please select a valid category"
	MsgInvalidEmailType = "Invalid email format"
)
