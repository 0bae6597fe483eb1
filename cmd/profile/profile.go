package profile

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/config"
	"github.com/solemate/cli/internal/format"
	"github.com/solemate/cli/internal/models"
	"github.com/solemate/cli/internal/session"
)

// ProfileCmd represents the profile command
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile commands",
	Long: `Profile commands for Solemate CLI.

Shows and updates the signed-in user's shop profile.`,
}

// showCmd shows the profile
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profile",
	Long:  "Display the signed-in user's profile",
	RunE:  runShow,
}

// updateCmd updates profile fields
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile",
	Long:  "Update name, phone, or address on the signed-in user's profile",
	RunE:  runUpdate,
}

// newClient builds the client and requires a signed-in session.
func newClient() (*api.Client, session.Session, error) {
	cfg := config.Get()
	store, err := session.NewStoreFromConfig(cfg)
	if err != nil {
		return nil, session.Session{}, fmt.Errorf("failed to open session store: %w", err)
	}

	sess, ok := store.Current()
	if !ok || store.Expired() {
		return nil, session.Session{}, errors.New("not signed in; run: solemate auth signin")
	}
	return api.New(cfg, store), sess, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	client, sess, err := newClient()
	if err != nil {
		return err
	}

	profile, err := client.GetProfile(cmd.Context(), sess.UserID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	return format.Print(profile)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	phone, _ := cmd.Flags().GetString("phone")
	address, _ := cmd.Flags().GetString("address")

	if name == "" && phone == "" && address == "" {
		return errors.New("nothing to update; pass --name, --phone, or --address")
	}

	client, sess, err := newClient()
	if err != nil {
		return err
	}

	update := models.ProfileUpdate{Name: name, Phone: phone, Address: address}
	profile, err := client.UpdateProfile(cmd.Context(), sess.UserID, update)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	format.PrintSuccess("✓ Profile updated")
	return format.Print(profile)
}

func init() {
	updateCmd.Flags().String("name", "", "Display name")
	updateCmd.Flags().String("phone", "", "Phone number")
	updateCmd.Flags().String("address", "", "Delivery address")

	ProfileCmd.AddCommand(showCmd)
	ProfileCmd.AddCommand(updateCmd)
}
