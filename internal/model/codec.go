package model

import "encoding/json"

// The *Fields types share their struct with the public type but drop its
// JSON methods, so they encode only the modelled keys.
type (
	payloadFields       Payload
	optionsFields       Options
	hdWalletFields      HDWallet
	accountFields       Account
	legacyAddressFields LegacyAddress
)

var (
	payloadKeys       = []string{"guid", "sharedKey", "double_encryption", "dpasswordhash", "options", "keys", "hd_wallets"}
	optionsKeys       = []string{"pbkdf2_iterations"}
	hdWalletKeys      = []string{"seed_hex", "passphrase", "mnemonic_verified", "default_account_idx", "accounts"}
	accountKeys       = []string{"label", "archived", "xpriv", "xpub", "receive_idx", "change_idx"}
	legacyAddressKeys = []string{"addr", "priv", "tag", "label"}
)

func (p Payload) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(payloadFields(p))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, p.Extra)
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	var f payloadFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtra(data, payloadKeys...)
	if err != nil {
		return err
	}
	f.Extra = extra
	*p = Payload(f)
	return nil
}

func (o Options) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(optionsFields(o))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, o.Extra)
}

func (o *Options) UnmarshalJSON(data []byte) error {
	var f optionsFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtra(data, optionsKeys...)
	if err != nil {
		return err
	}
	f.Extra = extra
	*o = Options(f)
	return nil
}

func (w HDWallet) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(hdWalletFields(w))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, w.Extra)
}

func (w *HDWallet) UnmarshalJSON(data []byte) error {
	var f hdWalletFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtra(data, hdWalletKeys...)
	if err != nil {
		return err
	}
	f.Extra = extra
	*w = HDWallet(f)
	return nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(accountFields(a))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, a.Extra)
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var f accountFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtra(data, accountKeys...)
	if err != nil {
		return err
	}
	f.Extra = extra
	*a = Account(f)
	return nil
}

func (l LegacyAddress) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(legacyAddressFields(l))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, l.Extra)
}

func (l *LegacyAddress) UnmarshalJSON(data []byte) error {
	var f legacyAddressFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtra(data, legacyAddressKeys...)
	if err != nil {
		return err
	}
	f.Extra = extra
	*l = LegacyAddress(f)
	return nil
}
