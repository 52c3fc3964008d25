package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/vikrin/workflow/internal/api/auth"
	"github.com/vikrin/workflow/internal/models"
	"github.com/vikrin/workflow/internal/storage"
)

var (
	userDBPath   string
	userUsername string
)

// userCmd represents the user command group
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Login account management commands",
	Long: `Commands for managing WorkFlow login accounts.

These commands operate directly on the database file and are intended
for system administrators.

Examples:
  # List all accounts
  workflowctl user list

  # Create an account
  workflowctl user create --username priya

  # Change an account's password
  workflowctl user passwd --username priya`,
}

// userListCmd lists all accounts
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all login accounts",
	Long: `List all login accounts in the database.

Displays id, username, and creation date. Passwords are never displayed.

Example:
  workflowctl user list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDatabase(userDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()
		userList, err := store.Users().List(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}

		if len(userList) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		fmt.Printf("\n%-6s  %-20s  %s\n", "ID", "USERNAME", "CREATED")
		fmt.Println(strings.Repeat("-", 50))

		for _, u := range userList {
			fmt.Printf("%-6d  %-20s  %s\n",
				u.ID,
				u.Username,
				u.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		fmt.Printf("\nTotal: %d user(s)\n", len(userList))

		return nil
	},
}

// userCreateCmd creates a new account
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new login account",
	Long: `Create a new login account in the database.

The password will be prompted interactively for security reasons
(to avoid exposing it in shell history) and stored as a bcrypt hash.

Password requirements:
  - Minimum 10 characters
  - At least 1 letter
  - At least 1 digit

Example:
  workflowctl user create --username priya`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if userUsername == "" {
			return fmt.Errorf("--username is required")
		}

		password, err := promptPassword("Enter password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		if err := auth.ValidatePassword(password); err != nil {
			return fmt.Errorf("invalid password: %w", err)
		}

		confirmPassword, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password confirmation: %w", err)
		}

		if password != confirmPassword {
			return fmt.Errorf("passwords do not match")
		}

		store, err := openDatabase(userDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()

		existing, err := store.Users().GetByUsername(ctx, userUsername)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("username '%s' already exists", userUsername)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user := &models.User{
			Username:  strings.TrimSpace(userUsername),
			Password:  string(hash),
			CreatedAt: time.Now(),
		}

		if err := store.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Printf("\nUser created successfully:\n")
		fmt.Printf("  ID:       %d\n", user.ID)
		fmt.Printf("  Username: %s\n", user.Username)

		return nil
	},
}

// userPasswdCmd changes an account's password
var userPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change an account's password",
	Long: `Change the password for an existing login account.

The new password will be prompted interactively and stored as a
bcrypt hash, replacing any legacy plain-text value.

Example:
  workflowctl user passwd --username priya`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if userUsername == "" {
			return fmt.Errorf("--username is required")
		}

		store, err := openDatabase(userDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()

		user, err := store.Users().GetByUsername(ctx, userUsername)
		if err != nil {
			return fmt.Errorf("find user: %w", err)
		}
		if user == nil {
			return fmt.Errorf("user '%s' not found", userUsername)
		}

		password, err := promptPassword("Enter new password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		if err := auth.ValidatePassword(password); err != nil {
			return fmt.Errorf("invalid password: %w", err)
		}

		confirmPassword, err := promptPassword("Confirm new password: ")
		if err != nil {
			return fmt.Errorf("read password confirmation: %w", err)
		}

		if password != confirmPassword {
			return fmt.Errorf("passwords do not match")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		if err := store.Users().SetPassword(ctx, user.Username, string(hash)); err != nil {
			return fmt.Errorf("update password: %w", err)
		}

		fmt.Printf("\nPassword changed successfully for user '%s'.\n", user.Username)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userPasswdCmd)

	// Common flags (db has default value)
	for _, c := range []*cobra.Command{userListCmd, userCreateCmd, userPasswdCmd} {
		c.Flags().StringVar(&userDBPath, "db", defaultDBPath, "path to SQLite database file")
	}

	userCreateCmd.Flags().StringVar(&userUsername, "username", "", "username for the new account (required)")
	userCreateCmd.MarkFlagRequired("username")

	userPasswdCmd.Flags().StringVar(&userUsername, "username", "", "username of the account to update (required)")
	userPasswdCmd.MarkFlagRequired("username")
}

// openDatabase opens the SQLite database.
func openDatabase(path string) (*storage.SQLiteStorage, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("database file not found: %s", path)
	}

	PrintVerbose("Opening database %s", path)
	store := storage.NewSQLiteStorage(path)
	if err := store.Open(); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return store, nil
}

// promptPassword prompts for a password without echoing to the terminal.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := syscall.Stdin
	if term.IsTerminal(fd) {
		passwordBytes, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(passwordBytes), nil
	}

	// Fallback for non-terminal input (e.g., piped input)
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(password), nil
}
