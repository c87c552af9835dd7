package payload

import "errors"

// Failure kinds. Every error returned by a Session wraps exactly one of the
// first group, match them with errors.Is.
var (
	ErrTransport              = errors.New("transport error")
	ErrMalformedEnvelope      = errors.New("malformed envelope")
	ErrDecryption             = errors.New("decryption failed")
	ErrJSONParse              = errors.New("can't parse wallet json")
	ErrDigest                 = errors.New("digest error")
	ErrEncryption             = errors.New("encryption error")
	ErrSecondPasswordMismatch = errors.New("second password mismatch")
	ErrDerivation             = errors.New("derivation error")
	ErrPersist                = errors.New("persist failed")
)

var (
	ErrNoPayload              = errors.New("no active payload")
	ErrNoPassword             = errors.New("main password not set")
	ErrNoSecondPassword       = errors.New("second password not set")
	ErrNotHD                  = errors.New("wallet has no hd wallet")
	ErrNotDoubleEncrypted     = errors.New("wallet is not double encrypted")
	ErrAlreadyDoubleEncrypted = errors.New("wallet is already double encrypted")
	ErrEngineOutOfSync        = errors.New("hd engine account count does not match payload")
	ErrNoAccount              = errors.New("no account at index")
	ErrWatchOnly              = errors.New("account has no private key")
)
