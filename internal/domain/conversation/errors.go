package conversation

import "errors"

var (
	ErrConversationSolved = errors.New("conversation is already solved")
	ErrEmptyMessage       = errors.New("message body is required")
	ErrNotEligible        = errors.New("conversation is not eligible for auto-close")
)
