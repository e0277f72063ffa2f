package core

// Error codes for domain errors. All of these are recoverable, per-client
// conditions; they are reported to the originating connection only.
const (
	ErrCodeRoomNotFound    = "room_not_found"
	ErrCodeWrongPassword   = "wrong_password"
	ErrCodeNicknameTaken   = "nickname_taken"
	ErrCodeAlreadyJoined   = "already_joined"
	ErrCodeTargetNotFound  = "target_not_found"
	ErrCodeNoActiveSession = "no_active_session"
	ErrCodeBadRequest      = "bad_request"
	ErrCodeRateLimited     = "rate_limited"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
