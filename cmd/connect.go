package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagConnectCode      string
	flagConnectNoBrowser bool
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect an Instagram account",
	Long: `Start the Instagram OAuth flow. A browser opens on the authorization page;
after approving, pass the code from the redirect URL back with --code to
finish linking the account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		if flagConnectCode != "" {
			account, err := client.InstagramCallback(ctx, flagConnectCode)
			if err != nil {
				return fmt.Errorf("completing connection: %w", err)
			}
			fmt.Printf("Connected @%s.\n", account.Username)
			return nil
		}

		authURL, err := client.InstagramAuthURL(ctx)
		if err != nil {
			return fmt.Errorf("fetching authorization URL: %w", err)
		}

		fmt.Println("Authorize at:")
		fmt.Println("  " + authURL)
		fmt.Println("\nThen run: cm connect --code <code from redirect URL>")

		if !flagConnectNoBrowser {
			if err := openBrowser(authURL); err != nil {
				fmt.Printf("Could not open browser: %v\n", err)
			}
		}
		return nil
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the linked Instagram account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		account, err := client.InstagramAccount(ctx)
		if err != nil {
			return fmt.Errorf("checking account: %w", err)
		}
		if account == nil {
			fmt.Println("No Instagram account connected.")
			return nil
		}

		if err := client.DisconnectInstagram(ctx); err != nil {
			return fmt.Errorf("disconnecting: %w", err)
		}
		fmt.Printf("Disconnected @%s.\n", account.Username)
		return nil
	},
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the connected Instagram account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		account, err := client.InstagramAccount(ctx)
		if err != nil {
			return fmt.Errorf("checking account: %w", err)
		}
		if account == nil {
			fmt.Println("No Instagram account connected. Run: cm connect")
			return nil
		}
		fmt.Printf("Username: @%s\n", account.Username)
		fmt.Printf("Account ID: %s\n", account.ID)
		fmt.Printf("Connected: %s\n", account.CreatedAt)
		return nil
	},
}

// openBrowser opens the URL with the platform opener. Only http(s) URLs are
// allowed; anything else could be interpreted as a local command.
func openBrowser(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q", u.Scheme)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	default:
		return exec.Command("xdg-open", rawURL).Start()
	}
}

func init() {
	connectCmd.Flags().StringVar(&flagConnectCode, "code", "", "authorization code from the OAuth redirect")
	connectCmd.Flags().BoolVar(&flagConnectNoBrowser, "no-browser", false, "print the URL without opening a browser")

	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(accountCmd)
}
