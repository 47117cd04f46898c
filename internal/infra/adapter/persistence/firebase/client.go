// Package firebase implements the user and chat repositories on Firebase:
// identity via Firebase Auth and profile/chat documents in the Realtime
// Database under users/{uid}/info and users/{uid}/chat/{key}.
package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"briefcast/internal/config"
)

// Client bundles the Firebase Auth and Realtime Database handles. It is
// constructed once at process start and injected into the repositories.
type Client struct {
	Auth *fbauth.Client
	DB   *db.Client
}

// NewClient initializes the Firebase app from service-account credentials.
func NewClient(ctx context.Context, cfg config.StoreConfig) (*Client, error) {
	app, err := firebase.NewApp(ctx,
		&firebase.Config{DatabaseURL: cfg.FirebaseDatabaseURL},
		option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON)),
	)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}

	dbClient, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase database: %w", err)
	}

	return &Client{Auth: authClient, DB: dbClient}, nil
}
