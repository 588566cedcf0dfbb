package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status                string          `json:"status"`
	Services              []string        `json:"services"`
	HuggingFaceConfigured bool            `json:"huggingFaceConfigured"`
	Credentials           map[string]bool `json:"credentials"`
}

// Health reports the backend chain in priority order and, for credential
// gated backends, only whether a credential is present.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:      "ok",
		Services:    []string{},
		Credentials: map[string]bool{},
	}
	if a.generator != nil {
		for _, status := range a.generator.Statuses() {
			resp.Services = append(resp.Services, status.Name)
			if !status.RequiresCredential {
				continue
			}
			resp.Credentials[status.Name] = status.Configured
			if status.Name == "huggingface" {
				resp.HuggingFaceConfigured = status.Configured
			}
		}
	}
	a.json(w, http.StatusOK, resp)
}
