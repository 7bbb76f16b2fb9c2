package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/yotoup/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing, then initializes the database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); errors.Is(err, os.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", r.configPath)
		}
	}

	config := r.Config()
	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := r.database()
	if err != nil {
		return err
	}

	if cmd.Bool("rollback") {
		version, err := shared.RollbackMigration(db)
		if err != nil {
			return err
		}
		r.logger.Warn("rolled back migration", "version", version)
		return r.writePlain("✓ Rolled back migration %04d\n", version)
	}

	version, _, err := shared.MigrationVersion(db)
	if err != nil {
		return err
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)

	r.writePlain("✓ Setup complete\n")
	r.writePlain("Config: %s\n", r.configPath)
	r.writePlain("Database: %s (schema %04d)\n", config.Database.Path, version)
	if err := config.Validate(); err != nil {
		r.writePlainln("Next steps:")
		r.writePlain("1. Set credentials.yoto.client_id in %s (or export %s)\n", r.configPath, shared.ClientIDEnv)
		r.writePlain("2. Run 'yotoup auth login'\n")
	}
	return nil
}
