package gtasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mwhite/hw/internal/config"
)

const (
	// credentialsFile is the downloaded Google API OAuth client file
	// (client_id, client_secret, redirect_uris), placed in hw's config dir.
	credentialsFile = "credentials.json"

	// tokenFile caches the user's access + refresh token after consent.
	tokenFile = "token.json"

	// authPort is the local port that captures the OAuth redirect.
	authPort = "7319"
)

// oauthConfig builds an oauth2.Config from the credentials file, forcing the
// redirect to our loopback listener.
func oauthConfig(scopes []string) (*oauth2.Config, error) {
	paths := config.GetPaths()
	credPath := filepath.Join(paths.ConfigDir, credentialsFile)

	b, err := os.ReadFile(credPath)
	if err != nil {
		return nil, fmt.Errorf("reading Google credentials %s: %w (download an OAuth client file from the Google Cloud console and place it there)", credPath, err)
	}

	cfg, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing Google credentials: %w", err)
	}

	cfg.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", authPort)
	return cfg, nil
}

// authClient returns an HTTP client carrying a valid Google token, running
// the browser consent flow when no cached token exists. The oauth2 client
// refreshes expired access tokens transparently.
func authClient(ctx context.Context, scopes []string) (*http.Client, error) {
	cfg, err := oauthConfig(scopes)
	if err != nil {
		return nil, err
	}

	paths := config.GetPaths()
	tokenPath := filepath.Join(paths.ConfigDir, tokenFile)

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromWeb(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("authorizing with Google: %w", err)
		}
		if err := saveToken(tokenPath, tok); err != nil {
			return nil, err
		}
	}

	return cfg.Client(ctx, tok), nil
}

// tokenFromWeb runs the OAuth authorization-code flow via a local listener:
// print the consent URL, capture the redirect, exchange the code.
func tokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	listener, err := net.Listen("tcp", ":"+authPort)
	if err != nil {
		return nil, fmt.Errorf("starting OAuth listener on port %s: %w", authPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("authorization code missing from redirect")
				return
			}
			fmt.Fprint(w, "Authorized! You can close this window and return to hw.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("oauth redirect server: %w", err)
		}
	}()
	defer server.Shutdown(context.Background())

	// AccessTypeOffline is required for a refresh token.
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Open this URL in your browser to connect hw to Google Tasks:\n\n  %s\n\nWaiting for authorization...\n", authURL)

	select {
	case code := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return cfg.Exchange(exchangeCtx, code)
	case err := <-errCh:
		return nil, err
	case <-time.After(5 * time.Minute):
		return nil, fmt.Errorf("authorization timed out — run the command again")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decoding cached token %s: %w", path, err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("caching OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
