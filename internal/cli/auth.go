package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tessro/termspot/internal/browser"
	errs "github.com/tessro/termspot/internal/errors"
	"github.com/tessro/termspot/internal/spotify/auth"
	"github.com/tessro/termspot/internal/spotify/client"
	"github.com/tessro/termspot/internal/tui/styles"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Spotify authentication",
	Long:  `Commands for managing Spotify OAuth authentication.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with Spotify",
	Long:  `Opens a browser to authenticate with Spotify using OAuth PKCE flow.`,
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored Spotify credentials",
	Long:  `Removes the stored Spotify OAuth tokens from the local machine.`,
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long:  `Shows the current Spotify authentication status.`,
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

// authReport is the --json shape of every auth subcommand.
type authReport struct {
	Status      string     `json:"status"`
	UserID      string     `json:"user_id,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
	Product     string     `json:"product,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// report writes r as JSON, or runs text when --json is off.
func report(r authReport, text func()) {
	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(r)
		return
	}
	text()
}

// authorize runs the browser half of the PKCE flow and returns the
// authorization code.
func authorize(ctx context.Context, config *auth.Config, pkce *auth.PKCE) (string, error) {
	callbackServer, err := auth.NewCallbackServer(config.RedirectURI)
	if err != nil {
		return "", fmt.Errorf("failed to start callback server: %w", err)
	}
	callbackServer.Start()
	defer func() { _ = callbackServer.Shutdown(context.Background()) }()

	authURL := config.AuthCodeURL(pkce)
	logger.Debug("starting login", "redirect_uri", config.RedirectURI, "port", callbackServer.Port())

	fmt.Println(styles.Muted.Render("Opening browser for Spotify authentication..."))
	if err := browser.Open(authURL); err != nil {
		logger.Debug("browser open failed", "err", err)
		fmt.Printf("Open this URL in your browser:\n\n%s\n\n", authURL)
	}

	fmt.Println(styles.Muted.Render("Waiting for authentication..."))
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	result, err := callbackServer.Wait(ctx)
	switch {
	case err != nil:
		return "", fmt.Errorf("authentication timed out: %w", err)
	case result.Error != "":
		return "", fmt.Errorf("authentication failed: %s", result.Error)
	case result.State != pkce.State:
		return "", fmt.Errorf("state mismatch: possible CSRF attack")
	}
	return result.Code, nil
}

const loginTimeout = 5 * time.Minute

func runAuthLogin(cmd *cobra.Command, args []string) error {
	if cfg.Spotify.ClientID == "" {
		return errs.ErrMissingClientID
	}

	ctx := cmd.Context()
	config := authConfig()
	pkce := auth.NewPKCE()

	code, err := authorize(ctx, config, pkce)
	if err != nil {
		return err
	}

	token, err := config.Exchange(ctx, code, pkce)
	if err != nil {
		return err
	}

	storage, err := auth.NewTokenStorage("")
	if err != nil {
		return fmt.Errorf("failed to initialize token storage: %w", err)
	}
	if err := storage.Save(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	logger.Debug("token saved", "path", storage.Path())

	user, err := client.New(config.TokenSource(ctx, token, storage), client.WithLogger(logger)).GetCurrentUser(ctx)
	if err != nil {
		logger.Warn("could not fetch profile", "err", err)
		report(authReport{Status: "authenticated"}, func() {
			fmt.Println(styles.OK.Render("Authenticated. Token stored."))
		})
		return nil
	}

	report(authReport{Status: "authenticated", UserID: user.ID, DisplayName: user.DisplayName, Product: user.Product}, func() {
		fmt.Println(styles.OK.Render("Authenticated as " + user.DisplayName))
		if user.Product != "premium" {
			fmt.Println(styles.Rejected.Render("Playback control requires Spotify Premium."))
		}
	})
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	storage, err := auth.NewTokenStorage("")
	if err != nil {
		return fmt.Errorf("failed to initialize token storage: %w", err)
	}

	if !storage.Exists() {
		report(authReport{Status: "not_authenticated"}, func() {
			fmt.Println("Not authenticated with Spotify.")
		})
		return nil
	}

	if err := storage.Delete(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	report(authReport{Status: "logged_out"}, func() {
		fmt.Println("Logged out of Spotify.")
	})
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ts, token, err := spotifyTokenSource(ctx)
	if err != nil {
		report(authReport{Status: "not_authenticated", Error: err.Error()}, func() {
			fmt.Println(errs.Format(err))
		})
		return nil
	}

	user, err := client.New(ts, client.WithLogger(logger)).GetCurrentUser(ctx)
	if err != nil {
		report(authReport{Status: "invalid", Error: err.Error()}, func() {
			fmt.Println(errs.Format(errs.WithSuggestion(err, "Run 'termspot auth login' to re-authenticate")))
		})
		return nil
	}

	// the source may have refreshed the token while fetching the profile
	if fresh, err := ts.Token(); err == nil {
		token = fresh
	}

	report(authReport{
		Status:      "authenticated",
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Product:     user.Product,
		ExpiresAt:   &token.Expiry,
	}, func() {
		NewFields().
			Add("Authenticated as", user.DisplayName).
			Add("Account type", user.Product).
			Add("Token expires", humanize.Time(token.Expiry)).
			Print()
	})
	return nil
}
