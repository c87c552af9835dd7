// Wallet sync daemon: serves the wallet HTTP API for one session.
// Usage: go run ./cmd/walletd
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/AlexZinkM/wallet-sync/internal/api"
	"github.com/AlexZinkM/wallet-sync/internal/client"
	"github.com/AlexZinkM/wallet-sync/internal/config"
	"github.com/AlexZinkM/wallet-sync/internal/hd"
	"github.com/AlexZinkM/wallet-sync/payload"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}

	level, err := log.ParseLevel(config.GetLogLevel())
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	if err := config.PromptForPassword(); err != nil {
		return err
	}
	defer config.ClearPassword()

	params, err := hd.ParamsForNetwork(config.GetNetwork())
	if err != nil {
		return err
	}

	session := payload.NewSession(
		client.NewWalletClient(config.GetRequestTimeout()),
		hd.NewEngine(params),
		payload.WithServerURL(config.GetServerURL()),
		payload.WithAPICode(config.GetAPICode()),
		payload.WithDevice(config.GetDevice()),
	)
	defer session.Wipe()

	router, err := api.SetupRouter(session)
	if err != nil {
		return err
	}

	addr := ":" + config.GetPort()
	log.Infof("wallet api listening on %s (network %s)", addr, config.GetNetwork())
	return http.ListenAndServe(addr, router)
}
