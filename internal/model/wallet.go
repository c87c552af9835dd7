package model

// Legacy address tags
const (
	TagNormal   int64 = 0
	TagArchived int64 = 2
)

// DefaultPbkdf2Iterations is the outer envelope work factor for new wallets
const DefaultPbkdf2Iterations = 5000

// Payload represents decrypted wallet.json
type Payload struct {
	GUID               string          `json:"guid"`
	SharedKey          string          `json:"sharedKey"`
	DoubleEncrypted    bool            `json:"double_encryption"`
	DoublePasswordHash string          `json:"dpasswordhash,omitempty"`
	Options            Options         `json:"options"`
	LegacyAddresses    []LegacyAddress `json:"keys"`
	HDWallets          []HDWallet      `json:"hd_wallets,omitempty"`
	Extra              Extra           `json:"-"`
}

// Options holds wallet.json options
type Options struct {
	// Pbkdf2Iterations is the double encryption work factor
	Pbkdf2Iterations int   `json:"pbkdf2_iterations,omitempty"`
	Extra            Extra `json:"-"`
}

// HDWallet represents the single HD wallet entry of the payload
type HDWallet struct {
	SeedHex           string    `json:"seed_hex"`
	Passphrase        string    `json:"passphrase"`
	MnemonicVerified  bool      `json:"mnemonic_verified"`
	DefaultAccountIdx int       `json:"default_account_idx"`
	Accounts          []Account `json:"accounts"`
	Extra             Extra     `json:"-"`
}

// Account is one derived BIP44 account, slice index is the derivation index
type Account struct {
	Label               string `json:"label"`
	Archived            bool   `json:"archived"`
	XPriv               string `json:"xpriv,omitempty"` // empty for watch-only
	XPub                string `json:"xpub"`
	ReceiveAddressIndex int    `json:"receive_idx"`
	ChangeAddressIndex  int    `json:"change_idx"`
	Extra               Extra  `json:"-"`
}

// LegacyAddress represents a non-HD key
type LegacyAddress struct {
	Address string `json:"addr"`
	Priv    string `json:"priv,omitempty"`
	Tag     int64  `json:"tag"`
	Label   string `json:"label,omitempty"`
	Extra   Extra  `json:"-"`
}

// AccountKeys are the extended keys the HD engine hands out for one account
type AccountKeys struct {
	XPub  string
	XPriv string
}

// HDWallet returns the HD wallet, nil for legacy wallets
func (p *Payload) HDWallet() *HDWallet {
	if p == nil || len(p.HDWallets) == 0 {
		return nil
	}
	return &p.HDWallets[0]
}

// IsUpgraded reports whether the wallet carries an HD wallet (format 3.0)
func (p *Payload) IsUpgraded() bool {
	return p.HDWallet() != nil
}

// DoubleEncryptionIterations returns the second password work factor
func (p *Payload) DoubleEncryptionIterations() int {
	return p.Options.Pbkdf2Iterations
}

// SetDoubleEncryptionIterations sets the second password work factor
func (p *Payload) SetDoubleEncryptionIterations(n int) {
	p.Options.Pbkdf2Iterations = n
}

// ActiveAddresses returns the addresses tagged Normal, in payload order
func (p *Payload) ActiveAddresses() []string {
	addrs := make([]string, 0, len(p.LegacyAddresses))
	for _, addr := range p.LegacyAddresses {
		if addr.Tag == TagNormal {
			addrs = append(addrs, addr.Address)
		}
	}
	return addrs
}
