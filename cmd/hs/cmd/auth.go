package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/credstore"
	"github.com/helpscout/helpscout-cli/internal/errutil"
)

var (
	loginAppID     string
	loginAppSecret string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API credentials",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store app credentials and verify them against the API",
	Long: `Store a Help Scout OAuth2 app ID and secret, then perform a token
exchange to verify they work.

Create an app under Your Profile > My Apps in Help Scout, then:
  hs auth login --app-id <id> --app-secret <secret>

The credentials are stored in the hs home directory (0600). Alternatively
set HELPSCOUT_APP_ID and HELPSCOUT_APP_SECRET and skip login entirely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginAppID == "" || loginAppSecret == "" {
			return errutil.NewCLIError("both --app-id and --app-secret are required")
		}

		session, store := newSession()

		// Drop tokens from any previous login so verification exercises the
		// new credentials, not a stale refresh token.
		for _, field := range []credstore.Field{credstore.FieldAccessToken, credstore.FieldRefreshToken} {
			if err := store.Clear(field); err != nil {
				return fmt.Errorf("clear %s: %w", field, err)
			}
		}

		if err := store.Set(credstore.FieldAppID, loginAppID); err != nil {
			return fmt.Errorf("store app ID: %w", err)
		}
		if err := store.Set(credstore.FieldAppSecret, loginAppSecret); err != nil {
			return fmt.Errorf("store app secret: %w", err)
		}

		// Exchange immediately so bad credentials fail here, not on the
		// first real command.
		if _, err := session.Authenticate(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("Authenticated. Credentials stored in", cfg.CredentialsPath())
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials and tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store := newSession()
		for _, field := range []credstore.Field{
			credstore.FieldAccessToken,
			credstore.FieldRefreshToken,
			credstore.FieldAppID,
			credstore.FieldAppSecret,
		} {
			if err := store.Clear(field); err != nil {
				return fmt.Errorf("clear %s: %w", field, err)
			}
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication state",
	Long:  `Show which credentials are stored. The app secret is never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store := newSession()

		appID, _ := store.Get(credstore.FieldAppID)
		appSecret, _ := store.Get(credstore.FieldAppSecret)
		accessToken, _ := store.Get(credstore.FieldAccessToken)
		refreshToken, _ := store.Get(credstore.FieldRefreshToken)
		mailbox, _ := store.Get(credstore.FieldDefaultMailbox)

		status := struct {
			AppID          string `json:"appId,omitempty"`
			AppSecretSet   bool   `json:"appSecretSet"`
			AccessToken    bool   `json:"accessTokenStored"`
			RefreshToken   bool   `json:"refreshTokenStored"`
			DefaultMailbox string `json:"defaultMailbox,omitempty"`
			Credentials    string `json:"credentialsPath"`
		}{
			AppID:          appID,
			AppSecretSet:   appSecret != "",
			AccessToken:    accessToken != "",
			RefreshToken:   refreshToken != "",
			DefaultMailbox: mailbox,
			Credentials:    cfg.CredentialsPath(),
		}
		return printJSON(status)
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().StringVar(&loginAppID, "app-id", "", "OAuth2 app ID")
	authLoginCmd.Flags().StringVar(&loginAppSecret, "app-secret", "", "OAuth2 app secret")
}
