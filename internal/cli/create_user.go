// Package cli implements the offline commands exposed by the binary.
package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/bookmarks/internal/auth"
	"github.com/mrlokans/bookmarks/internal/config"
	"github.com/mrlokans/bookmarks/internal/database"
)

// CreateUserCommand creates a user account from the command line.
type CreateUserCommand struct {
	Email        string
	Password     string
	DatabasePath string
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address for the new user (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new user (prompted if omitted)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -email <address> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account without going through the HTTP API.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -email me@example.com\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	if cmd.Password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		cmd.Password = strings.TrimRight(line, "\r\n")
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	cfg := config.NewConfig()
	service := auth.NewService(db.DB, cfg.Auth)

	user, err := service.CreateUser(cmd.Email, cmd.Password)
	if err != nil {
		return err
	}

	fmt.Printf("Created user %s (id %d)\n", user.Email, user.ID)
	return nil
}
