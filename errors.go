package hxkit

import (
	"errors"

	"github.com/pthm/hxkit/lib/encoding"
	"github.com/pthm/hxkit/lib/params"
)

// Sentinel errors for template evaluation.
var (
	ErrInvalidDefinition = errors.New("hxkit: define needs exactly 3 elements")
	ErrUnevaluable       = errors.New("hxkit: form cannot be evaluated")
	ErrMissingDescriptor = errors.New("hxkit: an icon descriptor is required")
	ErrRecursionLimit    = errors.New("hxkit: template nesting too deep")
	ErrInvalidArgument   = errors.New("hxkit: invalid helper argument")
)

// Parameter errors, re-exported so callers need not import lib/params.
var (
	ErrMalformedKey   = params.ErrMalformedKey
	ErrKeyConflict    = params.ErrKeyConflict
	ErrMalformedQuery = params.ErrMalformedQuery
)

// Sealed state errors, re-exported from lib/encoding.
var (
	ErrInvalidFormat    = encoding.ErrInvalidFormat
	ErrSignatureInvalid = encoding.ErrSignatureInvalid
	ErrDecryptFailed    = encoding.ErrDecryptFailed
)

// IsTemplateError checks if err came from evaluating a template form.
func IsTemplateError(err error) bool {
	return errors.Is(err, ErrInvalidDefinition) ||
		errors.Is(err, ErrUnevaluable) ||
		errors.Is(err, ErrMissingDescriptor) ||
		errors.Is(err, ErrRecursionLimit) ||
		errors.Is(err, ErrInvalidArgument)
}

// IsParamError checks if err came from decoding parameter keys or queries.
func IsParamError(err error) bool {
	return errors.Is(err, ErrMalformedKey) ||
		errors.Is(err, ErrKeyConflict) ||
		errors.Is(err, ErrMalformedQuery)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}
