package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/config"
	"github.com/solemate/cli/internal/flow"
	"github.com/solemate/cli/internal/format"
	"github.com/solemate/cli/internal/session"
	"github.com/solemate/cli/internal/utils"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// AuthCmd represents the auth command
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Account and session commands",
	Long: `Account and session commands for Solemate CLI.

This command group includes sign-up, email verification, sign-in,
password recovery, and session management.`,
}

// signupCmd registers a new account
var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	Long:  "Register with name, email, and password. A confirmation code is sent by email.",
	RunE:  runSignup,
}

// signinCmd signs in with email and password
var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in",
	Long:  "Authenticate with email and password and store the session",
	RunE:  runSignin,
}

// signoutCmd clears the stored session
var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out",
	Long:  "Clear the stored session",
	RunE:  runSignout,
}

// statusCmd shows the current session
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long:  "Display current authentication status and user information",
	RunE:  runStatus,
}

// newClient builds the API client with the configured session store.
func newClient() (*api.Client, error) {
	cfg := config.Get()
	store, err := session.NewStoreFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return api.New(cfg, store), nil
}

// promptPassword reads a password without echo when the flag was omitted.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	acceptTerms, _ := cmd.Flags().GetBool("accept-terms")

	// The flow does not re-validate; all input checks happen here.
	if err := utils.ValidateName(name); err != nil {
		return err
	}
	if err := utils.ValidateEmail(email); err != nil {
		return err
	}
	if !acceptTerms {
		return errors.New("you must accept the terms of service (--accept-terms)")
	}

	if password == "" {
		var err error
		password, err = promptPassword("Choose a password: ")
		if err != nil {
			return err
		}
	}
	if err := utils.ValidatePassword(password); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	f := flow.NewSignUpFlow(client)
	fmt.Printf("Registering %s...\n", email)
	if err := f.SignUp(cmd.Context(), name, email, password); err != nil {
		return err
	}

	state := f.State()
	defer f.Reset()
	if state.Phase != flow.PhaseSuccess {
		return errors.New(state.Message)
	}

	format.PrintSuccess("✓ %s", state.Message)
	fmt.Printf("Confirm with: solemate auth verify --email %s\n", email)
	return nil
}

func runSignin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if err := utils.ValidateEmail(email); err != nil {
		return err
	}
	if password == "" {
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	f := flow.NewSignInFlow(client, client.Session())
	fmt.Printf("Signing in as %s...\n", email)
	if err := f.SignIn(cmd.Context(), email, password); err != nil {
		return err
	}

	state := f.State()
	defer f.Reset()
	if state.Phase != flow.PhaseSuccess {
		return errors.New(state.Message)
	}

	format.PrintSuccess("✓ %s", state.Message)
	return nil
}

func runSignout(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	store := client.Session()
	if _, ok := store.Current(); !ok {
		return errors.New("not signed in")
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("sign out failed: %w", err)
	}

	format.PrintSuccess("✓ Signed out")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	sess, ok := client.Session().Current()
	if !ok {
		fmt.Println("Status: Not signed in")
		return nil
	}

	fmt.Printf("Status: Signed in as %s\n", sess.Email)
	fmt.Printf("Server: %s\n", config.Get().Server.URL)
	if client.Session().Expired() {
		fmt.Println("Session: Expired (sign in again)")
	} else {
		fmt.Println("Session: Active")
	}

	return nil
}

func init() {
	signupCmd.Flags().StringP("name", "n", "", "Display name")
	signupCmd.Flags().StringP("email", "e", "", "Email address")
	signupCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
	signupCmd.Flags().Bool("accept-terms", false, "Accept the terms of service")
	signupCmd.MarkFlagRequired("name")
	signupCmd.MarkFlagRequired("email")

	signinCmd.Flags().StringP("email", "e", "", "Email address")
	signinCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
	signinCmd.MarkFlagRequired("email")

	AuthCmd.AddCommand(signupCmd)
	AuthCmd.AddCommand(signinCmd)
	AuthCmd.AddCommand(signoutCmd)
	AuthCmd.AddCommand(statusCmd)
}
