package cmd

import (
	"net/http"
	"time"

	"parley/api"
	"parley/config"
	"parley/database"
	"parley/logger"

	"github.com/spf13/cobra"
)

var serverPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the API server",
	Run: func(cmd *cobra.Command, args []string) {
		portToUse := serverPort
		if portToUse == "" {
			portToUse = config.AppConfig.Server.Port
		}

		apiRouter := api.NewRouter()

		mainMux := http.NewServeMux()
		mainMux.Handle("/api/", http.StripPrefix("/api", apiRouter))
		logger.Info("Server: Registered API router under /api/ prefix.")

		go sweepExpiredSessions()

		logger.Info("Server: Listening on :%s...", portToUse)
		if err := http.ListenAndServe(":"+portToUse, mainMux); err != nil {
			logger.Fatal("Could not start server: %v", err)
		}
	},
}

// sweepExpiredSessions periodically removes sessions past their expiry so the
// sessions table does not grow without bound.
func sweepExpiredSessions() {
	for range time.Tick(time.Hour) {
		n, err := database.DeleteExpiredSessions()
		if err != nil {
			logger.Error("Session sweep failed: %v", err)
			continue
		}
		if n > 0 {
			logger.Info("Session sweep removed %d expired sessions.", n)
		}
	}
}

func init() {
	serverCmd.Flags().StringVarP(&serverPort, "port", "p", "", "Port for the server to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
