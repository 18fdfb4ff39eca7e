package config

import "errors"

var ErrInvalidConfig = errors.New("invalid configuration")

// User-facing messages. Details of internal failures never leave the server.
const (
	ErrMsgNotAuthenticated     = "Not authenticated"
	ErrMsgInvalidPassword      = "Invalid password"
	ErrMsgServerError          = "Server error"
	ErrMsgInvalidBody          = "Invalid request body"
	ErrMsgRequiredFields       = "제목과 본문은 필수입니다."
	ErrMsgInvalidSlug          = "Invalid slug"
	ErrMsgPostNotFound         = "Post not found"
	ErrMsgNotFound             = "Not found"
	ErrMsgStreamingUnsupported = "Streaming unsupported"
	ErrMsgPostParamMissing     = "Post parameter required"
)
