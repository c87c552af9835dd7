package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/AlexZinkM/wallet-sync/internal/model"
	"github.com/AlexZinkM/wallet-sync/payload"

	log "github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
)

const defaultAccountName = "My Bitcoin Wallet"

// PasswordFunc returns a copy of the main wallet password. Caller zeroes it.
type PasswordFunc func() ([]byte, error)

// WalletHandler serves one wallet session. The mutex serializes every call
// into the session, which does no locking of its own.
type WalletHandler struct {
	mu       sync.Mutex
	session  *payload.Session
	password PasswordFunc
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(session *payload.Session, password PasswordFunc) (*WalletHandler, error) {
	if session == nil {
		return nil, errors.New("wallet session is required")
	}
	if password == nil {
		return nil, errors.New("password source is required")
	}
	return &WalletHandler{
		session:  session,
		password: password,
	}, nil
}

// Create handles POST /wallet/create
// @Summary      Create new wallet
// @Description  Creates a new HD wallet with one account and inserts it on the wallet server
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateWalletRequest  false  "Default account label"
// @Success      200      {object}  model.CreateWalletResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /wallet/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateWalletRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, model.CodeBadRequest, err)
			return
		}
	}
	if req.Label == "" {
		req.Label = defaultAccountName
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := h.password()
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	h.mu.Lock()
	defer h.mu.Unlock()

	h.session.Wipe()
	h.session.SetTempPassword(passwordBytes)

	p, err := h.session.CreateWallet(req.Label)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	if err := h.session.Persist(r.Context()); err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CreateWalletResponse{
		Success:   true,
		Message:   "Wallet created successfully",
		GUID:      p.GUID,
		SharedKey: p.SharedKey,
	})
}

// Load handles POST /wallet/load
// @Summary      Load wallet
// @Description  Fetches and decrypts the wallet from the wallet server
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.LoadWalletRequest  true  "Wallet identifiers"
// @Success      200      {object}  model.StatusResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallet/load [post]
func (h *WalletHandler) Load(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.LoadWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err)
		return
	}
	if req.GUID == "" || req.SharedKey == "" {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, errors.New("guid and sharedKey are required"))
		return
	}

	passwordBytes, err := h.password()
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err)
		return
	}
	defer clear(passwordBytes)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.session.Fetch(r.Context(), req.GUID, req.SharedKey, passwordBytes); err != nil {
		writeSessionError(w, err)
		return
	}
	h.session.SetTempPassword(passwordBytes)

	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Wallet loaded"})
}

// Sync handles POST /wallet/sync
// @Summary      Save wallet
// @Description  Saves the wallet if it changed since the last acknowledged save
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /wallet/sync [post]
func (h *WalletHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.Persist(r.Context()); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Wallet synced"})
}

// Accounts handles GET and POST /wallet/accounts
// @Summary      List or add accounts
// @Description  GET lists HD accounts, POST derives and saves the next account
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.AddAccountRequest  false  "Account label (POST)"
// @Success      200      {object}  model.AccountsResponse
// @Failure      403      {object}  model.ErrorResponse
// @Router       /wallet/accounts [get]
// @Router       /wallet/accounts [post]
func (h *WalletHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listAccounts(w)
	case http.MethodPost:
		h.addAccount(w, r)
	default:
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

func (h *WalletHandler) listAccounts(w http.ResponseWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p := h.session.Payload()
	if p == nil {
		writeSessionError(w, payload.ErrNoPayload)
		return
	}

	accounts := h.session.Accounts()
	resp := model.AccountsResponse{
		GUID:            p.GUID,
		DoubleEncrypted: p.DoubleEncrypted,
		Accounts:        make([]model.AccountResponse, 0, len(accounts)),
	}
	for i, acct := range accounts {
		resp.Accounts = append(resp.Accounts, accountResponse(i, acct))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) addAccount(w http.ResponseWriter, r *http.Request) {
	var req model.AddAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err)
		return
	}
	if req.Label == "" {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, errors.New("label is required"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	acct, err := h.session.AddAccount(r.Context(), req.Label)
	if err != nil {
		if acct != nil {
			log.WithError(err).Warnf("account %q added locally but not saved", req.Label)
		}
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accountResponse(len(h.session.Accounts())-1, *acct))
}

// AccountQR handles GET /wallet/accounts/qr
// @Summary      Account xpub QR code
// @Description  Returns the account extended public key and its QR code as base64 PNG
// @Tags         wallet
// @Produce      json
// @Param        index  query     int  false  "Account index (default 0)"
// @Success      200    {object}  model.AccountQRResponse
// @Failure      404    {object}  model.ErrorResponse
// @Router       /wallet/accounts/qr [get]
func (h *WalletHandler) AccountQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	index, ok := accountIndex(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	xpub, ok := h.session.XPub(index)
	h.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, model.CodeNoWallet, fmt.Errorf("no account at index %d", index))
		return
	}

	qr, err := generateQRCode(xpub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
		return
	}
	writeJSON(w, http.StatusOK, model.AccountQRResponse{XPub: xpub, QR: qr})
}

// AccountAddress handles GET /wallet/accounts/address
// @Summary      Account address
// @Description  Returns the address at the account's current receive or change index
// @Tags         wallet
// @Produce      json
// @Param        index  query     int     false  "Account index (default 0)"
// @Param        chain  query     string  false  "receive (default) or change"
// @Success      200    {object}  model.AddressResponse
// @Failure      404    {object}  model.ErrorResponse
// @Router       /wallet/accounts/address [get]
func (h *WalletHandler) AccountAddress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	index, ok := accountIndex(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	chain := r.URL.Query().Get("chain")
	var (
		addr string
		err  error
	)
	switch chain {
	case "", "receive":
		chain = "receive"
		addr, err = h.session.ReceiveAddress(index)
	case "change":
		addr, err = h.session.ChangeAddress(index)
	default:
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, fmt.Errorf("unknown chain %q", chain))
		return
	}
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.AddressResponse{Index: index, Chain: chain, Address: addr})
}

// SecondPassword handles POST /wallet/second-password
// @Summary      Unlock second password
// @Description  Validates the second password and keeps it for the next account derivation
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SecondPasswordRequest  true  "Second password"
// @Success      200      {object}  model.StatusResponse
// @Failure      403      {object}  model.ErrorResponse
// @Router       /wallet/second-password [post]
func (h *WalletHandler) SecondPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	secondPassword, ok := decodeSecondPassword(w, r)
	if !ok {
		return
	}
	defer clear(secondPassword)

	h.mu.Lock()
	defer h.mu.Unlock()

	p := h.session.Payload()
	if p == nil {
		writeSessionError(w, payload.ErrNoPayload)
		return
	}
	if err := h.session.SetSecondPassword(secondPassword, p.IsUpgraded()); err != nil {
		writeSessionError(w, err)
		return
	}
	h.session.SetTempSecondPassword(secondPassword)

	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Second password accepted"})
}

// DoubleEncryption handles POST /wallet/double-encryption
// @Summary      Enable double encryption
// @Description  Encrypts the seed and private keys under a second password and saves the wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SecondPasswordRequest  true  "New second password"
// @Success      200      {object}  model.StatusResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/double-encryption [post]
func (h *WalletHandler) DoubleEncryption(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	secondPassword, ok := decodeSecondPassword(w, r)
	if !ok {
		return
	}
	defer clear(secondPassword)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.EnableDoubleEncryption(secondPassword); err != nil {
		writeSessionError(w, err)
		return
	}
	if err := h.session.Persist(r.Context()); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Double encryption enabled"})
}

// Mnemonic handles GET /wallet/mnemonic
// @Summary      Recovery phrase
// @Description  Returns the mnemonic of a double encrypted wallet, requires an unlocked second password
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.MnemonicResponse
// @Failure      403  {object}  model.ErrorResponse
// @Router       /wallet/mnemonic [get]
func (h *WalletHandler) Mnemonic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	words, err := h.session.MnemonicForDoubleEncryptedWallet()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MnemonicResponse{Words: words})
}

// Wipe handles POST /wallet/wipe
// @Summary      Log out
// @Description  Discards the wallet and every password held in memory
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /wallet/wipe [post]
func (h *WalletHandler) Wipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	h.session.Wipe()
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Wallet wiped"})
}

// accountIndex reads the optional index query parameter
func accountIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	s := r.URL.Query().Get("index")
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, fmt.Errorf("invalid index: %w", err))
		return 0, false
	}
	return n, true
}

func decodeSecondPassword(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	var req model.SecondPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err)
		return nil, false
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, errors.New("password is required"))
		return nil, false
	}
	return []byte(req.Password), true
}

func accountResponse(index int, acct model.Account) model.AccountResponse {
	return model.AccountResponse{
		Index:               index,
		Label:               acct.Label,
		XPub:                acct.XPub,
		Archived:            acct.Archived,
		ReceiveAddressIndex: acct.ReceiveAddressIndex,
		ChangeAddressIndex:  acct.ChangeAddressIndex,
	}
}

// generateQRCode generates QR code of content in base64
func generateQRCode(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
