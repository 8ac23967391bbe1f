package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is the suite's in-memory SQLite database, migrated with the logbook
// models. Models are looked up by table name in the row assertions.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	// tables lists every table in migration order, many2many join tables
	// right after their owner.
	tables []string
}

// NewDb opens and migrates the database on first use and returns the same
// instance afterwards.
func NewDb(models ...any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// The shared memory database lives as long as this one connection.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := dbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	d := &Db{
		DbConn: dbConn,
		models: make(map[string]any, len(models)),
	}
	seen := make(map[string]bool)
	for _, model := range models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(model); err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", model, err.Error()))
		}

		d.models[stmt.Schema.Table] = model
		d.addTable(seen, stmt.Schema.Table)
		for _, rel := range stmt.Schema.Relationships.Many2Many {
			if rel.JoinTable != nil {
				d.addTable(seen, rel.JoinTable.Table)
			}
		}
	}

	return d
}

func (d *Db) addTable(seen map[string]bool, table string) {
	if seen[table] {
		return
	}
	seen[table] = true
	d.tables = append(d.tables, table)
}

// ClearDB deletes every row, walking the tables backwards so children go
// before the rows they reference.
func (d *Db) ClearDB() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		for i := len(d.tables) - 1; i >= 0; i-- {
			if err := tx.Exec("DELETE FROM " + d.tables[i]).Error; err != nil {
				return fmt.Errorf("failed to clear table %s: %w", d.tables[i], err)
			}
		}
		return nil
	})
}

// Tables returns the cleared tables in migration order.
func (d *Db) Tables() []string {
	return d.tables
}

// GetModel returns the model migrated for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
