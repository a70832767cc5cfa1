package storage

import (
	"github.com/soltgard/battleforge/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database at the given path and brings
// the schema up to date. Battles and their children are relational; the
// deeply nested pieces (stats maps, status effects, turn order) live as
// JSON columns via the gorm serializer.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.Battle{},
		&game.Participant{},
		&game.CombatLogEntry{},
		&game.CombatRecord{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
