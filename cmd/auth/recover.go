package auth

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solemate/cli/internal/flow"
	"github.com/solemate/cli/internal/format"
	"github.com/solemate/cli/internal/utils"
)

// recoverCmd requests a password recovery code
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Request a password recovery code",
	Long:  "Send a one-time recovery code to the given email address",
	RunE:  runRecover,
}

// verifyCmd submits a one-time code
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a one-time code",
	Long: `Submit the six-digit code sent by email.

With --type signup (the default) this confirms a new account and signs
you in. With --type recovery it verifies a recovery code and continues
into the password reset step.`,
	RunE: runVerify,
}

// resetPasswordCmd changes the password
var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password",
	Long:  "Change the password using the signed-in session or a recovery reset token",
	RunE:  runResetPassword,
}

func runRecover(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")

	client, err := newClient()
	if err != nil {
		return err
	}

	f := flow.NewRecoverFlow(client)
	f.UpdateEmail(email)
	if err := f.Recover(cmd.Context()); err != nil {
		return err
	}

	state := f.State()
	defer f.Reset()
	if state.Phase != flow.PhaseSuccess {
		return errors.New(state.Message)
	}

	format.PrintSuccess("✓ %s", state.Message)
	fmt.Printf("Continue with: solemate auth verify --email %s --type recovery\n", email)
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	code, _ := cmd.Flags().GetString("code")
	otpType, _ := cmd.Flags().GetString("type")

	if err := utils.ValidateEmail(email); err != nil {
		return err
	}

	var purpose flow.OTPPurpose
	switch otpType {
	case "signup", "":
		purpose = flow.PurposeEmail
	case "recovery":
		purpose = flow.PurposeRecovery
	default:
		return fmt.Errorf("unknown verification type: %s", otpType)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	f := flow.NewVerifyFlow(client, client.Session())

	interactive := code == ""
	var submitted string
	input := flow.NewCodeInput(func(code string) { submitted = code })
	reader := bufio.NewReader(os.Stdin)

	for {
		if interactive {
			code, err = collectCode(input, reader, &submitted)
			if err != nil {
				return err
			}
		} else if err := utils.ValidateOTPCode(code); err != nil {
			return err
		}

		if err := f.Verify(cmd.Context(), email, code, purpose); err != nil {
			return err
		}

		state := f.State()
		if state.Phase == flow.PhaseSuccess {
			break
		}

		if !interactive {
			defer f.Reset()
			return errors.New(state.Message)
		}
		format.PrintError("%s", state.Message)
		input.MarkError()
		f.Reset()
	}

	defer f.Reset()
	if purpose == flow.PurposeRecovery {
		recovery, ok := f.Recovery()
		if !ok {
			return errors.New("no reset token received")
		}
		format.PrintSuccess("✓ Recovery code accepted")
		return changePassword(cmd, recovery.ResetToken, flow.TokenReset)
	}

	format.PrintSuccess("✓ Email verified, signed in as %s", email)
	return nil
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	resetToken, _ := cmd.Flags().GetString("reset-token")

	if resetToken != "" {
		return changePassword(cmd, resetToken, flow.TokenReset)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	token := client.Session().Token()
	if token == "" {
		return errors.New("not signed in; pass --reset-token or sign in first")
	}
	return changePassword(cmd, token, flow.TokenBearer)
}

// changePassword prompts for the new password and runs the change flow.
func changePassword(cmd *cobra.Command, token string, kind flow.TokenKind) error {
	password, err := promptPassword("New password: ")
	if err != nil {
		return err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	f := flow.NewPasswordFlow(client)
	if err := f.Change(cmd.Context(), password, token, kind); err != nil {
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

// collectCode reads keystrokes into the field-by-field collector until
// its completion callback fires: digits advance, backspace retreats, and
// the code is submitted automatically when the sixth digit lands.
func collectCode(input *flow.CodeInput, reader *bufio.Reader, submitted *string) (string, error) {
	fmt.Print("Enter the 6-digit code: ")
	*submitted = ""

	for *submitted == "" {
		r, _, err := reader.ReadRune()
		if err != nil {
			return "", fmt.Errorf("failed to read code: %w", err)
		}
		switch r {
		case '\b', 0x7f:
			input.Backspace()
		case '\n', '\r', ' ':
			// ignore
		default:
			input.Enter(r)
		}
	}

	return *submitted, nil
}

func init() {
	recoverCmd.Flags().StringP("email", "e", "", "Email address")
	recoverCmd.MarkFlagRequired("email")

	verifyCmd.Flags().StringP("email", "e", "", "Email address")
	verifyCmd.Flags().StringP("code", "c", "", "Six-digit code (entered interactively when omitted)")
	verifyCmd.Flags().StringP("type", "t", "signup", "Verification type (signup, recovery)")
	verifyCmd.MarkFlagRequired("email")

	resetPasswordCmd.Flags().String("reset-token", "", "Reset token from recovery verification")

	AuthCmd.AddCommand(recoverCmd)
	AuthCmd.AddCommand(verifyCmd)
	AuthCmd.AddCommand(resetPasswordCmd)
}
