package database

import (
	"io/fs"
	"log"
	"os"
	"path"

	"market/config"
	"market/database/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// CatalogSeed returns a fresh copy of the fixed catalog written by the
// reseed operation. Returned as a new slice each call because GORM fills in
// primary keys on insert.
func CatalogSeed() []model.Item {
	return []model.Item{
		{Name: "Платье", Price: "2900", Image: "dress.jpg"},
		{Name: "Футболка-поло", Price: "2990", Image: "T-shirt.jpg"},
		{Name: "Футболка", Price: "2090", Image: "T-shirt1.jpg"},
		{Name: "Юбка", Price: "2590", Image: "dress1.jpg"},
	}
}

func initModels() error {
	models := []any{
		&model.User{},
		&model.Item{},
		&model.Favorite{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initItems seeds the catalog on first start so a fresh install has
// something to sell.
func initItems() error {
	empty, err := isTableEmpty("items")
	if err != nil {
		log.Printf("Error checking if items table is empty: %v", err)
		return err
	}
	if empty {
		seed := CatalogSeed()
		return db.Create(&seed).Error
	}
	return nil
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
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
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	if err := initItems(); err != nil {
		return err
	}

	return nil
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
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

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

func Checkpoint() error {
	// Update WAL
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
