package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// Forbidden returns a 403 error with a message indicating the action is
// forbidden.
func Forbidden(action string) error {
	return &Error{
		http.StatusForbidden,
		action + " is not allowed.",
		"forbidden",
	}
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		http.StatusNotFound,
		resource + " not found.",
		"not_found",
	}
}

// Unauthorized returns a 401 error. It is used whenever the caller could not
// be identified.
func Unauthorized(msg string) error {
	return &Error{
		http.StatusUnauthorized,
		msg,
		"unauthorized",
	}
}

// Conflict returns a 409 error for a create or update that collides with a
// uniqueness constraint.
func Conflict(resource string) error {
	return &Error{
		http.StatusConflict,
		resource + " already exists.",
		"conflict",
	}
}

// InUse returns a 409 error for a delete that is blocked because other records
// still reference the resource.
func InUse(resource string) error {
	return &Error{
		http.StatusConflict,
		resource + " is still referenced by other records.",
		"in_use",
	}
}

func DuplicateRequest() error {
	return &Error{
		http.StatusBadRequest,
		"Request already exists.",
		"duplicate_request",
	}
}

// InvalidTransition returns a 409 error for a book request state change that
// isn't allowed from the request's current state.
func InvalidTransition(msg string) error {
	return &Error{
		http.StatusConflict,
		msg,
		"invalid_transition",
	}
}

func BadCredentials() error {
	return &Error{
		http.StatusBadRequest,
		"Invalid email or password.",
		"login_bad_credentials",
	}
}

func UserNotVerified() error {
	return &Error{
		http.StatusBadRequest,
		"User is not verified.",
		"login_user_not_verified",
	}
}

func UserAlreadyExists() error {
	return &Error{
		http.StatusBadRequest,
		"A user with this email already exists.",
		"register_user_already_exists",
	}
}

func AlreadyVerified() error {
	return &Error{
		http.StatusBadRequest,
		"User is already verified.",
		"verify_user_already_verified",
	}
}

// BadToken returns a 400 error for a verify or reset token that is malformed,
// expired, or no longer matches its user. kind is "verify_user" or "reset_password".
func BadToken(kind string) error {
	return &Error{
		http.StatusBadRequest,
		"Invalid or expired token.",
		kind + "_bad_token",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		http.StatusUnsupportedMediaType,
		"Unsupported Media Type",
		"unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		fmt.Sprintf("Unknown Parameter %q", param),
		"unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_error",
	}
}

func MalformedPayload() error {
	return &Error{
		http.StatusBadRequest,
		"Malformed Payload",
		"malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		http.StatusBadRequest,
		"Request body can't be empty.",
		"empty_request_body",
	}
}
