package migrations

import (
	"context"

	"github.com/vacay/resonator/config"
	"github.com/vacay/resonator/errors"
	"github.com/vacay/resonator/migrations/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source"
)

func New(ctx context.Context, cfg config.Config) (*migrate.Migrate, error) {
	const op errors.Op = "migrations.New"

	var err error
	var files source.Driver
	var driver database.Driver

	driverName := cfg.Conf().Providers.Storage
	switch driverName {
	case "mariadb", "mysql":
		files, driver, err = mysql.New(ctx, cfg)
		driverName = "mysql"
	default:
		return nil, errors.E(op, errors.NoMigrations, errors.Info(driverName))
	}

	if err != nil {
		return nil, errors.E(op, err)
	}

	return migrate.NewWithInstance(
		"embed", files,
		driverName, driver,
	)
}
