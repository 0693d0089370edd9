package httpapi

import (
	"encoding/json"
	"net/http"

	"careers-gateway/internal/secrets"
)

type SecretsHandler struct{}

type setClientSecretReq struct {
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
}

// SetClientSecret stores the SmartRecruiters client secret in the OS
// keychain, for local setups that don't want it in the environment.
func (h SecretsHandler) SetClientSecret(w http.ResponseWriter, r *http.Request) {
	var req setClientSecretReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.ClientID == "" {
		req.ClientID = secrets.ClientID()
	}

	if err := secrets.SetClientSecret(secrets.KeyringAccount(req.ClientID), req.Secret); err != nil {
		http.Error(w, "failed to store secret: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
