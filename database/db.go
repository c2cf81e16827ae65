package database

import (
	"errors"
	"log"

	"postboard/config"
	"postboard/database/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db       *gorm.DB
	dbConfig *config.DatabaseConfig
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.Post{},
		&model.Vote{},
		&model.Setting{},
		&model.AuditLog{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

func InitDB(cfg *config.DatabaseConfig) error {
	if err := cfg.ValidateConfig(); err != nil {
		return err
	}
	if err := cfg.EnsureDirectoryExists(); err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	var err error
	if cfg.IsPostgreSQL() {
		db, err = gorm.Open(postgres.Open(cfg.GetDSN()), c)
	} else {
		// _foreign_keys enforces the vote/post cascades; _case_sensitive_like
		// makes title search match the same rows as Postgres LIKE. Both are
		// DSN params so they apply to every pooled connection.
		dsn := cfg.GetDSN() + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=1&_case_sensitive_like=1"
		db, err = gorm.Open(sqlite.Open(dsn), c)
	}
	if err != nil {
		return err
	}
	dbConfig = cfg

	if cfg.IsSQLite() {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		_, err = sqlDB.Exec("PRAGMA cache_size = -64000;")
		if err != nil {
			return err
		}
		_, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;")
		if err != nil {
			return err
		}
	}

	return initModels()
}

// InitSQLiteDB opens a plain SQLite database at the given path. Used by
// tests and one-shot CLI commands.
func InitSQLiteDB(dbPath string) error {
	return InitDB(&config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: dbPath},
	})
}

func CloseDB() error {
	if db != nil {
		if IsSQLite() {
			if err := Checkpoint(); err != nil {
				log.Printf("error executing checkpoint: %v", err)
			}
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

// IsSQLite reports whether the active connection is backed by SQLite.
func IsSQLite() bool {
	return dbConfig == nil || dbConfig.IsSQLite()
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func Checkpoint() error {
	// Update WAL
	err := db.Exec("PRAGMA wal_checkpoint;").Error
	if err != nil {
		return err
	}
	return nil
}
