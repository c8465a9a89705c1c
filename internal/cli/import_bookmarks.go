package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/mrlokans/bookmarks/internal/config"
	"github.com/mrlokans/bookmarks/internal/database"
	"github.com/mrlokans/bookmarks/internal/database/bookmarks"
	"github.com/mrlokans/bookmarks/internal/database/collections"
	"github.com/mrlokans/bookmarks/internal/services"
)

// ImportBookmarksCommand imports a browser bookmark export file directly
// into the database, without going through the HTTP API.
type ImportBookmarksCommand struct {
	FilePath     string
	DatabasePath string
	UserID       uint
}

func NewImportBookmarksCommand() *ImportBookmarksCommand {
	return &ImportBookmarksCommand{}
}

func (cmd *ImportBookmarksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	var userID uint64
	fs.StringVar(&cmd.FilePath, "file", "", "Path to the bookmark export HTML file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.Uint64Var(&userID, "user", 0, "ID of the user to import bookmarks for (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> -user <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import a browser bookmark export (Netscape bookmark HTML) into the database.\n")
		fmt.Fprintf(os.Stderr, "Folders become collections; bookmarks already present are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file bookmarks.html -user 1\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if userID == 0 {
		return fmt.Errorf("required flag -user not provided")
	}
	cmd.UserID = uint(userID)

	return nil
}

func (cmd *ImportBookmarksCommand) Run() error {
	raw, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read export file: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	service := services.NewImportService(
		bookmarks.NewRepository(db.DB),
		collections.NewRepository(db.DB),
	)

	summary, err := service.Import(strconv.FormatUint(uint64(cmd.UserID), 10), raw)
	if err != nil {
		return err
	}

	fmt.Printf("Imported:            %d\n", summary.Imported)
	fmt.Printf("Skipped:             %d\n", summary.Skipped)
	fmt.Printf("Collections created: %d\n", summary.CollectionsCreated)
	return nil
}
