package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"parley/database"
	"parley/logger"
)

// setupStatusResponse reports whether first-run setup has been completed.
type setupStatusResponse struct {
	SetupComplete bool   `json:"setup_complete"`
	InstanceName  string `json:"instance_name,omitempty"`
	UserCount     int64  `json:"user_count"`
}

// setupCompletePayload names the instance when finishing setup.
type setupCompletePayload struct {
	InstanceName string `json:"instance_name"`
}

// SetupStatusHandler reports the first-run setup state.
// @Summary Setup status
// @Description Returns whether initial setup has been completed and how many users exist.
// @Tags Setup
// @Produce json
// @Success 200 {object} setupStatusResponse "Current setup state"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /setup/status [get]
func SetupStatusHandler(w http.ResponseWriter, r *http.Request) {
	complete, err := database.GetSetting(database.SettingSetupComplete, "false")
	if err != nil {
		logger.Error("SetupStatusHandler: Reading setup flag failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to read setup state")
		return
	}
	name, err := database.GetSetting(database.SettingInstanceName, "")
	if err != nil {
		logger.Error("SetupStatusHandler: Reading instance name failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to read setup state")
		return
	}
	count, err := database.CountUsers()
	if err != nil {
		logger.Error("SetupStatusHandler: Counting users failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to read setup state")
		return
	}

	respondWithJSON(w, http.StatusOK, setupStatusResponse{
		SetupComplete: complete == "true",
		InstanceName:  name,
		UserCount:     count,
	})
}

// SetupCompleteHandler finishes first-run setup. Completing setup twice is a
// conflict; the instance name is fixed once set.
// @Summary Complete setup
// @Description Records the instance name and marks setup as done.
// @Tags Setup
// @Accept json
// @Produce json
// @Param setup_request body setupCompletePayload true "Setup completion request"
// @Success 200 {object} setupStatusResponse "Setup recorded"
// @Failure 400 {object} models.ErrorResponse "Invalid payload"
// @Failure 409 {object} models.ErrorResponse "Setup already completed"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /setup/complete [post]
func SetupCompleteHandler(w http.ResponseWriter, r *http.Request) {
	complete, err := database.GetSetting(database.SettingSetupComplete, "false")
	if err != nil {
		logger.Error("SetupCompleteHandler: Reading setup flag failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to read setup state")
		return
	}
	if complete == "true" {
		respondWithError(w, http.StatusConflict, "Setup has already been completed")
		return
	}

	var payload setupCompletePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithErrorDetails(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	defer r.Body.Close()

	payload.InstanceName = strings.TrimSpace(payload.InstanceName)
	if payload.InstanceName == "" {
		respondWithError(w, http.StatusBadRequest, "instance_name is required")
		return
	}

	if err := database.SetSetting(database.SettingInstanceName, payload.InstanceName); err != nil {
		logger.Error("SetupCompleteHandler: Writing instance name failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to record setup")
		return
	}
	if err := database.SetSetting(database.SettingSetupComplete, "true"); err != nil {
		logger.Error("SetupCompleteHandler: Writing setup flag failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to record setup")
		return
	}

	count, _ := database.CountUsers()
	respondWithJSON(w, http.StatusOK, setupStatusResponse{
		SetupComplete: true,
		InstanceName:  payload.InstanceName,
		UserCount:     count,
	})
	logger.Info("SetupCompleteHandler: Setup completed, instance name '%s'", payload.InstanceName)
}
