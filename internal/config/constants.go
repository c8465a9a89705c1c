package config

// DefaultDatabasePath is where the sqlite database lives unless
// DATABASE_PATH is set.
const DefaultDatabasePath = "./bookmarks.db"
