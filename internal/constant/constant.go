package constant

const (
	ERR_VALIDATION_CODE                 = "VALIDATION_ERROR"
	ERR_INVALID_REQUEST_BODY_ERROR_CODE = "INVALID_REQUEST_BODY_ERROR"
	ERR_INTERNAL_SERVER_ERROR_CODE      = "INTERNAL_SERVER_ERROR"
	ERR_INTERNAL_SERVER_ERROR_MESSAGE   = "Something went wrong. If the problem persists, please contact support"
	ERR_INVALID_REQUEST_BODY_MESSAGE    = "The request is invalid or malformed"
	ERR_NOT_FOUND_ERROR                 = "NOT_FOUND_ERROR"
	ERR_UNAUTHORIZED_ERROR              = "UNAUTHORIZED_ERROR"
)

const (
	DEFAULT_LIMIT = 20
	MAX_LIMIT     = 100

	MAX_TAGS_PER_POST    = 5
	MAX_AVATARS_PER_USER = 50

	// Decoded avatar payload cap, before webp re-encoding.
	MAX_AVATAR_BYTES = 4 * 1024 * 1024
)
