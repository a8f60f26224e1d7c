package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagEmail  string
	flagSignup bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session locally",
	Long: `Authenticate against the API and persist the session tokens. Tokens are
refreshed automatically; run login again only when the session has fully
expired.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		email := flagEmail
		reader := bufio.NewReader(os.Stdin)
		if email == "" {
			fmt.Print("Email: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading email: %w", err)
			}
			email = strings.TrimSpace(line)
		}
		if email == "" {
			return fmt.Errorf("email is required")
		}

		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return fmt.Errorf("password is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		if flagSignup {
			if err := client.Signup(ctx, email, password); err != nil {
				return fmt.Errorf("signing up: %w", err)
			}
		} else if err := client.Login(ctx, email, password); err != nil {
			return fmt.Errorf("logging in: %w", err)
		}

		user, err := client.Me(ctx)
		if err != nil {
			return fmt.Errorf("fetching profile: %w", err)
		}
		fmt.Printf("Logged in as %s.\n", user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and drop the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		// Local tokens are cleared even if the server call fails.
		if err := client.Logout(ctx); err != nil {
			fmt.Printf("Warning: server logout failed (%v); local session cleared anyway.\n", err)
			return nil
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}
		if !client.Session().Authenticated() {
			return fmt.Errorf("not logged in")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		user, err := client.Me(ctx)
		if err != nil {
			return fmt.Errorf("fetching profile: %w", err)
		}
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("User ID: %s\n", user.ID)
		fmt.Printf("Created: %s\n", user.CreatedAt)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&flagEmail, "email", "", "account email (prompted when omitted)")
	loginCmd.Flags().BoolVar(&flagSignup, "signup", false, "create a new account instead of signing in")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
