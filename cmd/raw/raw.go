package raw

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solemate/cli/internal/config"
	"github.com/solemate/cli/internal/format"
)

// RawCmd represents the raw command
var RawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Raw API access",
	Long: `Raw API access for Solemate CLI.

Issues a GET against an arbitrary backend path with the anon key
attached. Intended for debugging the REST contract.`,
}

// getCmd performs a raw GET
var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Raw GET request",
	Long:  "Perform a GET against a backend path, e.g. rest/v1/products?select=*",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	path := strings.TrimPrefix(args[0], "/")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Server.URL+"/"+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", cfg.Server.AnonKey)
	req.Header.Set("Authorization", "Bearer "+cfg.Server.AnonKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	format.PrintDebug("GET %s -> %d", path, resp.StatusCode)

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		fmt.Println(string(body))
		return nil
	}
	return format.Print(data)
}

func init() {
	RawCmd.AddCommand(getCmd)
}
