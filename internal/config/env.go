package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetWalletPasswordBytes()
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	ServerURL      string        `envconfig:"WALLET_SERVER_URL" default:"https://blockchain.info/wallet"`
	APICode        string        `envconfig:"WALLET_API_CODE"`
	Device         string        `envconfig:"WALLET_DEVICE" default:"android"`
	RequestTimeout time.Duration `envconfig:"WALLET_REQUEST_TIMEOUT" default:"30s"`
	Network        string        `envconfig:"WALLET_NETWORK" default:"mainnet"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	switch c.Network {
	case "mainnet", "testnet":
	default:
		return fmt.Errorf("unsupported WALLET_NETWORK %q: use mainnet or testnet", c.Network)
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetServerURL returns the wallet server endpoint
func GetServerURL() string {
	return Get().ServerURL
}

// GetAPICode returns the api_code sent with every request
func GetAPICode() string {
	return Get().APICode
}

// GetDevice returns the device tag sent with every save
func GetDevice() string {
	return Get().Device
}

// GetRequestTimeout returns the HTTP timeout for wallet server calls
func GetRequestTimeout() time.Duration {
	return Get().RequestTimeout
}

// GetNetwork returns mainnet or testnet
func GetNetwork() string {
	return Get().Network
}

// GetLogLevel returns the logrus level name
func GetLogLevel() string {
	return Get().LogLevel
}

var passwordBytes []byte

// PromptForPassword prompts the user for the main wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	raw, err := ReadPassword("Enter wallet password: ")
	if err != nil {
		return err
	}

	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
	clear(raw)
	return nil
}

// ReadPassword reads one non-empty hidden line from the terminal
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return raw, nil
}

// GetWalletPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}

// ClearPassword zeroes the in-memory password
func ClearPassword() {
	clear(passwordBytes)
	passwordBytes = nil
}
