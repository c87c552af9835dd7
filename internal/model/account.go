package model

// AddAccountRequest represents request for POST /wallet/accounts
type AddAccountRequest struct {
	Label string `json:"label" binding:"required"`
}

// AccountResponse describes one account without private material
type AccountResponse struct {
	Index               int    `json:"index"`
	Label               string `json:"label"`
	XPub                string `json:"xpub"`
	Archived            bool   `json:"archived"`
	ReceiveAddressIndex int    `json:"receiveIndex"`
	ChangeAddressIndex  int    `json:"changeIndex"`
}

// AccountsResponse represents response for GET /wallet/accounts
type AccountsResponse struct {
	GUID            string            `json:"guid"`
	DoubleEncrypted bool              `json:"doubleEncrypted"`
	Accounts        []AccountResponse `json:"accounts"`
}

// AccountQRResponse represents response for GET /wallet/accounts/qr
type AccountQRResponse struct {
	XPub string `json:"xpub"`
	QR   string `json:"QR"` // base64 PNG
}

// SecondPasswordRequest represents request for POST /wallet/second-password and /wallet/double-encryption
type SecondPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// MnemonicResponse represents response for GET /wallet/mnemonic
type MnemonicResponse struct {
	Words []string `json:"words"`
}

// AddressResponse represents response for GET /wallet/accounts/address
type AddressResponse struct {
	Index   int    `json:"index"`
	Chain   string `json:"chain"`
	Address string `json:"address"`
}
