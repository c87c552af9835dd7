package api

import (
	"net/http"

	_ "github.com/AlexZinkM/wallet-sync/docs"
	"github.com/AlexZinkM/wallet-sync/internal/config"
	"github.com/AlexZinkM/wallet-sync/internal/handler"
	"github.com/AlexZinkM/wallet-sync/payload"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(session *payload.Session) (http.Handler, error) {
	walletHandler, err := handler.NewWalletHandler(session, config.GetWalletPasswordBytes)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/create", walletHandler.Create)
	mux.HandleFunc("/wallet/load", walletHandler.Load)
	mux.HandleFunc("/wallet/sync", walletHandler.Sync)
	mux.HandleFunc("/wallet/accounts", walletHandler.Accounts)
	mux.HandleFunc("/wallet/accounts/qr", walletHandler.AccountQR)
	mux.HandleFunc("/wallet/accounts/address", walletHandler.AccountAddress)
	mux.HandleFunc("/wallet/second-password", walletHandler.SecondPassword)
	mux.HandleFunc("/wallet/double-encryption", walletHandler.DoubleEncryption)
	mux.HandleFunc("/wallet/mnemonic", walletHandler.Mnemonic)
	mux.HandleFunc("/wallet/wipe", walletHandler.Wipe)

	return mux, nil
}
