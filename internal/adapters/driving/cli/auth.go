package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// sessionTokenKey is the config key the signed-in session token is
// stored under between invocations.
const sessionTokenKey = "auth.session_token"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your account and session",
	Long: `Sign up, sign in, and manage the stored session.

The session token is persisted in the config file, so you only need to
sign in once per machine.

Examples:
  # Create an account
  docvault auth signup --email you@example.com --name "Your Name"

  # Sign in (password prompted if not given)
  docvault auth login --email you@example.com

  # Show the signed-in account
  docvault auth whoami

  # Sign out and forget the stored session
  docvault auth logout`,
}

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	RunE:  runAuthSignup,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored session",
	RunE:  runAuthLogout,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runAuthWhoami,
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the stored session for a fresh one",
	RunE:  runAuthRefresh,
}

var authResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a forgotten password",
	Long: `Request and redeem a password reset token.

Run with --email to request a token, then run again with --token and
the new password to complete the reset.`,
	RunE: runAuthReset,
}

// Flags for auth commands.
var (
	authEmail      string
	authPassword   string
	authName       string
	authResetToken string
)

func init() {
	authSignupCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	authSignupCmd.Flags().StringVar(&authPassword, "password", "", "password (prompted if omitted)")
	authSignupCmd.Flags().StringVar(&authName, "name", "", "display name")

	authLoginCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	authLoginCmd.Flags().StringVar(&authPassword, "password", "", "password (prompted if omitted)")

	authResetCmd.Flags().StringVar(&authEmail, "email", "", "account email (requests a reset token)")
	authResetCmd.Flags().StringVar(&authResetToken, "token", "", "reset token (completes the reset)")
	authResetCmd.Flags().StringVar(&authPassword, "password", "", "new password (prompted if omitted)")

	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authResetCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSignup(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	email := authEmail
	if email == "" {
		cmd.Print("Email: ")
		email = readLine(reader)
	}

	name := authName
	if name == "" {
		cmd.Print("Display name: ")
		name = readLine(reader)
	}

	password := authPassword
	if password == "" {
		cmd.Print("Password: ")
		password = readPassword()
		cmd.Println()
	}

	ctx := context.Background()
	profile, err := authService.SignUp(ctx, email, password, name)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("an account with this email already exists")
		}
		return fmt.Errorf("signup failed: %w", err)
	}

	cmd.Printf("Account created: %s (%s)\n", profile.Email, profile.ID)
	cmd.Println("Sign in with: docvault auth login")
	return nil
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	email := authEmail
	if email == "" {
		cmd.Print("Email: ")
		email = readLine(reader)
	}

	password := authPassword
	if password == "" {
		cmd.Print("Password: ")
		password = readPassword()
		cmd.Println()
	}

	ctx := context.Background()
	session, err := authService.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return fmt.Errorf("invalid email or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	if err := storeSessionToken(session.Token); err != nil {
		return err
	}

	cmd.Printf("Signed in. Session valid until %s.\n", session.ExpiresAt.Format(time.RFC3339))
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	token := storedSessionToken()
	if token == "" {
		cmd.Println("Not signed in.")
		return nil
	}

	if err := authService.SignOut(context.Background(), token); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	if err := storeSessionToken(""); err != nil {
		return err
	}

	cmd.Println("Signed out.")
	return nil
}

func runAuthWhoami(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	token := storedSessionToken()
	if token == "" {
		cmd.Println("Not signed in.")
		return nil
	}

	profile, err := authService.CurrentUser(context.Background(), token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrNotFound) {
			cmd.Println("Session expired. Sign in again with: docvault auth login")
			return nil
		}
		return fmt.Errorf("resolving session: %w", err)
	}

	cmd.Printf("%s", profile.Email)
	if profile.DisplayName != "" {
		cmd.Printf(" (%s)", profile.DisplayName)
	}
	cmd.Println()
	return nil
}

func runAuthRefresh(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	token := storedSessionToken()
	if token == "" {
		return errors.New("not signed in")
	}

	session, err := authService.RefreshSession(context.Background(), token)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	if err := storeSessionToken(session.Token); err != nil {
		return err
	}

	cmd.Printf("Session refreshed. Valid until %s.\n", session.ExpiresAt.Format(time.RFC3339))
	return nil
}

func runAuthReset(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	ctx := context.Background()

	// Token present: complete the reset.
	if authResetToken != "" {
		password := authPassword
		if password == "" {
			cmd.Print("New password: ")
			password = readPassword()
			cmd.Println()
		}

		if err := authService.UpdatePassword(ctx, authResetToken, password); err != nil {
			if errors.Is(err, domain.ErrResetTokenInvalid) {
				return fmt.Errorf("reset token is invalid or already used")
			}
			return fmt.Errorf("password reset failed: %w", err)
		}

		cmd.Println("Password updated. Sign in with: docvault auth login")
		return nil
	}

	// No token: request one.
	if authEmail == "" {
		return errors.New("provide --email to request a reset, or --token to complete one")
	}

	reset, err := authService.RequestPasswordReset(ctx, authEmail)
	if err != nil {
		return fmt.Errorf("reset request failed: %w", err)
	}

	cmd.Printf("Reset token: %s\n", reset.Token)
	cmd.Printf("Expires: %s\n", reset.ExpiresAt.Format(time.RFC3339))
	cmd.Println("Complete with: docvault auth reset --token <token>")
	return nil
}

// storedSessionToken returns the persisted session token, if any.
func storedSessionToken() string {
	if configStore == nil {
		return ""
	}
	return configStore.GetString(sessionTokenKey)
}

// storeSessionToken persists the session token for later invocations.
func storeSessionToken(token string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	if err := configStore.Set(sessionTokenKey, token); err != nil {
		return fmt.Errorf("storing session token: %w", err)
	}
	return nil
}

// currentActorID resolves the stored session to a user ID. Returns
// "" for anonymous callers (no stored token, or a dead session).
func currentActorID(ctx context.Context) (string, error) {
	if authService == nil {
		return "", errors.New("auth service not configured")
	}

	token := storedSessionToken()
	if token == "" {
		return "", nil
	}

	session, err := authService.CurrentSession(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("resolving session: %w", err)
	}
	return session.UserID, nil
}

// requireActorID resolves the stored session and fails for anonymous
// callers, pointing at the login command.
func requireActorID(ctx context.Context) (string, error) {
	actorID, err := currentActorID(ctx)
	if err != nil {
		return "", err
	}
	if actorID == "" {
		return "", errors.New("not signed in; run 'docvault auth login' first")
	}
	return actorID, nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
