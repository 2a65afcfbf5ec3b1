package cmdutil

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/bookinfo/internal/datastore"
	"github.com/spf13/viper"
)

// WriteToDatastore exports items to the SQLite database configured under
// datasette.dbfile. It does nothing unless datasette.enabled is set.
// description is only used for logging.
func WriteToDatastore[T any](items []T, schema, table, description string, toMap func(T) map[string]any) error {
	if !viper.GetBool("datasette.enabled") {
		return nil
	}

	dbPath := viper.GetString("datasette.dbfile")
	if dbPath == "" {
		return fmt.Errorf("datasette.dbfile is not configured")
	}

	store := datastore.NewSQLiteStore(dbPath)
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to connect to datastore: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(schema); err != nil {
		return err
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		records = append(records, toMap(item))
	}

	if err := store.BatchInsert(table, records); err != nil {
		return fmt.Errorf("failed to write %s: %w", description, err)
	}

	slog.Info("Wrote records to datastore", "what", description, "count", len(records), "table", table, "dbfile", dbPath)
	return nil
}
