package sheets

import (
	"context"
	"log"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"goaltracker-backend-go/internal/config"
)

const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// Select picks the backend exactly once, at startup. A missing or
// placeholder configuration, or a client that fails to construct,
// selects the in-memory fallback for the remainder of the process —
// there is no later reconnection attempt. The returned store is handed
// to every repository constructor; nothing else holds backend state.
func Select(ctx context.Context, cfg config.Config) RowStore {
	if !cfg.SheetsConfigured() {
		log.Printf("sheets: no valid spreadsheet config, using in-memory store")
		return NewMemoryStore()
	}

	creds := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(cfg.ServiceAccountKey),
		Scopes:     []string{spreadsheetScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(creds.Client(ctx)))
	if err != nil {
		log.Printf("sheets: client init failed, using in-memory store: %v", err)
		return NewMemoryStore()
	}
	log.Printf("sheets: using spreadsheet %s", cfg.SpreadsheetID)
	return NewRemoteStore(svc, cfg.SpreadsheetID)
}

// Initialize runs the ensure-schema step for every logical table. Called
// once at boot; repositories also ensure before each write, which the
// remote store memoizes.
func Initialize(ctx context.Context, store RowStore) error {
	for _, table := range []string{GoalsSheet, UsersSheet, WeeklySheet} {
		if err := store.Ensure(ctx, table, Headers(table)); err != nil {
			return err
		}
	}
	return nil
}
