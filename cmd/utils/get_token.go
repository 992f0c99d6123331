// Command get_token runs the one-off consent flow that yields the Google
// Drive refresh token used to download the Aerolog export.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"flightlog-reconciler/internal/infrastructure/config"
	"flightlog-reconciler/internal/infrastructure/oauth"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DriveClientID == "" || cfg.DriveClientSecret == "" {
		log.Fatal("DRIVE_CLIENT_ID and DRIVE_CLIENT_SECRET must be set")
	}

	oauthConfig := oauth.NewDriveConfig(cfg.DriveClientID, cfg.DriveClientSecret, "http://localhost:8090/oauth2callback")
	state := uuid.NewString()

	http.HandleFunc("/oauth2callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		code := r.URL.Query().Get("code")
		token, err := oauthConfig.Exchange(context.Background(), code)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to exchange code: %v", err), http.StatusInternalServerError)
			return
		}

		fmt.Printf("\nDRIVE_REFRESH_TOKEN=%s\n\n", token.RefreshToken)
		fmt.Fprintf(w, "Authentication successful! You can close this window.")
		os.Exit(0)
	})

	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Printf("Open this URL in your browser:\n%s\n", authURL)

	log.Fatal(http.ListenAndServe(":8090", nil))
}
