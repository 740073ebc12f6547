package repository

import (
	"errors"

	"go-pos-backend/internal/model"
	"go-pos-backend/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfigRepository interface {
	// Get returns ok=false when the key has no row.
	Get(key string) (value string, ok bool, err error)
	Upsert(key, value string) error
	SeedDefault(key, value string) error
}

type configRepo struct {
	conn database.Conn
}

func NewConfigRepo(conn database.Conn) ConfigRepository {
	return &configRepo{conn}
}

func (r *configRepo) Get(key string) (string, bool, error) {
	var entry model.ConfigEntry
	err := r.conn.DB().Where(map[string]interface{}{"key": key}).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

func (r *configRepo) Upsert(key, value string) error {
	return r.conn.DB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model.ConfigEntry{Key: key, Value: value}).Error
}

// SeedDefault inserts the value only when the key is absent.
func (r *configRepo) SeedDefault(key, value string) error {
	return r.conn.DB().Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.ConfigEntry{Key: key, Value: value}).Error
}
