package storage

import (
	"time"

	"github.com/soltgard/battleforge/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps a migrated gorm handle in the Repository
// interface.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	err := r.db.
		Preload("Participants").
		Preload("CombatLog", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error
}

func (r *sqliteRepository) ListActiveBattles(limit int) ([]game.Battle, error) {
	if limit <= 0 {
		limit = 20
	}
	var battles []game.Battle
	err := r.db.Preload("Participants").
		Where("status IN ?", []game.BattleStatus{game.StatusPreparing, game.StatusActive, game.StatusPaused}).
		Order("created_at desc").
		Limit(limit).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) GetCombatLog(battleID uint) ([]game.CombatLogEntry, error) {
	var entries []game.CombatLogEntry
	err := r.db.Where("battle_id = ?", battleID).Order("id asc").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *sqliteRepository) SaveCombatRecord(rec *game.CombatRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) ListCombatRecords(limit int) ([]game.CombatRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []game.CombatRecord
	err := r.db.Order("created_at desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.Preload("Participants").
		Where("status = ? AND action_deadline <= ?", game.StatusActive, now).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	// Battles with no deadline set (zero time) are never timed out.
	out := battles[:0]
	for _, b := range battles {
		if !b.ActionDeadline.IsZero() {
			out = append(out, b)
		}
	}
	return out, nil
}
