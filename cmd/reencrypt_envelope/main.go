// One-off: open a saved wallet envelope and seal it again under a new PBKDF2 work factor.
// Output: the new envelope JSON on stdout, its checksum on stderr.
// Usage: go run ./cmd/reencrypt_envelope [-iterations 5000] envelope.json
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/AlexZinkM/wallet-sync/internal/config"
	"github.com/AlexZinkM/wallet-sync/internal/crypto"
	"github.com/AlexZinkM/wallet-sync/internal/model"
	"github.com/AlexZinkM/wallet-sync/payload"
)

var errUsage = errors.New("usage: reencrypt_envelope [-iterations N] envelope.json")

func main() {
	iterations := flag.Int("iterations", model.DefaultPbkdf2Iterations, "target pbkdf2 iterations")
	flag.Parse()

	if err := run(flag.Args(), *iterations, config.ReadPassword, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// run re-seals the envelope named in args. Secrets are zeroed on every return.
func run(args []string, iterations int, readPassword func(prompt string) ([]byte, error), stdout, stderr io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	resp, err := payload.ParseServerResponse(raw)
	if err != nil {
		return err
	}
	from := model.DefaultPbkdf2Iterations
	if resp.Iterations > 0 {
		from = resp.Iterations
	}

	password, err := readPassword("Enter wallet password: ")
	if err != nil {
		return err
	}
	defer clear(password)

	c := crypto.NewCipher()
	plaintext, used, err := payload.OpenEnvelope(c, resp.Ciphertext, password, from)
	if err != nil {
		return fmt.Errorf("decrypt failed: %w", err)
	}
	defer clear(plaintext)

	p, err := payload.ParsePayload(plaintext)
	if err != nil {
		return err
	}
	version := model.VersionLegacy
	if p.IsUpgraded() {
		version = model.VersionUpgraded
	}

	envelope, err := payload.SealEnvelope(c, plaintext, password, iterations, version)
	if err != nil {
		return fmt.Errorf("encrypt failed: %w", err)
	}

	fmt.Fprintf(stderr, "opened with %d iterations, sealed with %d\nchecksum %s\n", used, iterations, c.DigestHex(envelope))
	_, err = fmt.Fprint(stdout, string(envelope))
	return err
}
