package main

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	switch env.StorageBackend {
	case server_config.BackendSQLite:
		if err := sqlconfig.RunSQLiteMigrations(env.SQLiteDBPath); err != nil {
			logrus.WithError(err).Fatal("sqlconfig.RunSQLiteMigrations")
			return
		}
		logrus.WithField("path", env.SQLiteDBPath).Info("Migration status")

	case server_config.BackendPostgres:
		db, err := sql.Open("postgres", env.PostgresURL())
		if err != nil {
			logrus.WithError(err).Fatal("sql.Open")
			return
		}
		defer db.Close()

		result, err := sqlconfig.RunPostgresMigrations(db)
		if err != nil {
			logrus.WithError(err).Fatal("sqlconfig.RunPostgresMigrations")
			return
		}
		logrus.WithFields(logrus.Fields{
			"preMigrationVersion":  result.PreMigrationVersion,
			"postMigrationVersion": result.PostMigrationVersion,
		}).Info("Migration status")

	default:
		logrus.WithField("backend", env.StorageBackend).Info("nothing to migrate")
	}
}
