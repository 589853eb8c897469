package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/mhdreza10/quizauth/cmd/cli/output"
	"github.com/mhdreza10/quizauth/cmd/cli/root"
	"github.com/mhdreza10/quizauth/internal/config"
	"github.com/mhdreza10/quizauth/internal/db"
	"github.com/mhdreza10/quizauth/internal/repo"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage quiz application accounts",
		Long:  "List and create user accounts directly against the database.",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		RunE:  runList,
	}

	createCmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user account",
		Long:  "Create a user account. The password is prompted and stored as a bcrypt hash.",
		Args:  cobra.ExactArgs(1),
		RunE:  runCreate,
	}
	createCmd.Flags().String("name", "", "full name of the user")
	createCmd.Flags().String("email", "", "email address of the user")

	usersCmd.AddCommand(listCmd, createCmd)
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// List Users
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	users, err := store.List(context.Background())
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		rows = append(rows, []interface{}{u.ID, u.Username, u.Name, u.Email})
	}
	output.RenderTable([]string{"ID", "Username", "Name", "Email"}, rows)
	return nil
}

// ==========================
// Create User
// ==========================
func runCreate(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])
	if username == "" {
		return errors.New("username must not be empty")
	}

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if strings.TrimSpace(string(password)) == "" {
		return errors.New("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	user, err := store.Create(context.Background(), name, email, username, string(hash))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return fmt.Errorf("username %q is already taken", username)
		}
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("Created user %q with id %d\n", user.Username, user.ID)
	return nil
}

func openStore() (repo.CredentialStore, error) {
	cfg := config.Load()
	database, err := db.Connect(
		cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass,
		cfg.DBMaxOpenConns, cfg.DBMaxIdleConns,
	)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return repo.NewUserRepo(database), nil
}
