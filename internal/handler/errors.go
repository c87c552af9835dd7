package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/wallet-sync/internal/model"
	"github.com/AlexZinkM/wallet-sync/payload"

	log "github.com/sirupsen/logrus"
)

// sessionErrors maps session failure kinds to HTTP status and error code, first match wins
var sessionErrors = []struct {
	err    error
	status int
	code   string
}{
	{payload.ErrNoPayload, http.StatusConflict, model.CodeNoWallet},
	{payload.ErrNotHD, http.StatusConflict, model.CodeNoWallet},
	{payload.ErrNoAccount, http.StatusNotFound, model.CodeNoWallet},
	{payload.ErrWatchOnly, http.StatusConflict, model.CodeBadRequest},
	{payload.ErrNotDoubleEncrypted, http.StatusConflict, model.CodeBadRequest},
	{payload.ErrAlreadyDoubleEncrypted, http.StatusConflict, model.CodeBadRequest},
	{payload.ErrNoPassword, http.StatusUnauthorized, model.CodeBadRequest},
	{payload.ErrNoSecondPassword, http.StatusForbidden, model.CodeSecondPasswordMismatch},
	{payload.ErrSecondPasswordMismatch, http.StatusForbidden, model.CodeSecondPasswordMismatch},
	{payload.ErrDecryption, http.StatusUnauthorized, model.CodeDecryption},
	{payload.ErrJSONParse, http.StatusUnprocessableEntity, model.CodeJSONParse},
	{payload.ErrMalformedEnvelope, http.StatusBadGateway, model.CodeMalformedEnvelope},
	{payload.ErrPersist, http.StatusBadGateway, model.CodePersist},
	{payload.ErrTransport, http.StatusBadGateway, model.CodeTransport},
	{payload.ErrDerivation, http.StatusInternalServerError, model.CodeDerivation},
	{payload.ErrEngineOutOfSync, http.StatusInternalServerError, model.CodeDerivation},
}

func writeSessionError(w http.ResponseWriter, err error) {
	for _, e := range sessionErrors {
		if errors.Is(err, e.err) {
			writeError(w, e.status, e.code, err)
			return
		}
	}
	log.WithError(err).Error("unexpected wallet session error")
	writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}
