package model

// ErrorResponse is the JSON body of every failed wallet API call.
// Code names the failure kind so clients can re-prompt or retry.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes
const (
	CodeBadRequest             = "bad_request"
	CodeNoWallet               = "no_wallet"
	CodeTransport              = "transport"
	CodeMalformedEnvelope      = "malformed_envelope"
	CodeDecryption             = "decryption"
	CodeJSONParse              = "json_parse"
	CodeSecondPasswordMismatch = "second_password_mismatch"
	CodeDerivation             = "derivation"
	CodePersist                = "persist"
	CodeInternal               = "internal"
)
