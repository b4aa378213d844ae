package upload

import "errors"

// ErrRejected is matched by every *Rejection
var ErrRejected = errors.New("upload rejected")

// Reason classifies why an upload was rejected
type Reason string

const (
	ReasonSize      Reason = "size"
	ReasonExtension Reason = "extension"
	ReasonContent   Reason = "content"
)

// Rejection is a failed pre-flight check. Message is meant for end users.
type Rejection struct {
	Reason  Reason
	Message string
	// MIME is the detected type for content rejections
	MIME string
}

func (r *Rejection) Error() string {
	return r.Message
}

func (r *Rejection) Unwrap() error {
	return ErrRejected
}
