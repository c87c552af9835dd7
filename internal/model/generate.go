package model

// CreateWalletRequest represents request for POST /wallet/create
type CreateWalletRequest struct {
	Label string `json:"label"`
}

// CreateWalletResponse represents response for POST /wallet/create
type CreateWalletResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	GUID      string `json:"guid,omitempty"`
	SharedKey string `json:"sharedKey,omitempty"`
}

// LoadWalletRequest represents request for POST /wallet/load
type LoadWalletRequest struct {
	GUID      string `json:"guid" binding:"required"`
	SharedKey string `json:"sharedKey" binding:"required"`
}

// StatusResponse is the generic success body
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
