package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-bot/internal/domain"
	"storefront-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time check to ensure StateRepository implements StateStore interface
var _ output.StateStore = (*StateRepository)(nil)

// ConversationStateRecord is the row stored per chat user
type ConversationStateRecord struct {
	UserID    string    `gorm:"column:user_id;primaryKey;size:64"`
	State     string    `gorm:"column:state;size:32;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName func
func (ConversationStateRecord) TableName() string {
	return "conversation_states"
}

// StateRepository struct - Secondary/Driven adapter keeping conversation state in PostgreSQL.
// Rows older than the timeout are treated as absent and removed on read.
type StateRepository struct {
	dbGorm  *gorm.DB
	timeout time.Duration
	now     func() time.Time
}

// NewStateRepository func - Migrates the table and creates the repository
func NewStateRepository(dbGorm *gorm.DB, timeout time.Duration) (*StateRepository, error) {
	logrus.Info("Migrate database ...")
	if err := dbGorm.AutoMigrate(&ConversationStateRecord{}); err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return &StateRepository{
		dbGorm:  dbGorm,
		timeout: timeout,
		now:     time.Now,
	}, nil
}

func (p *StateRepository) Get(ctx context.Context, userID string) (domain.ConversationState, error) {
	var record ConversationStateRecord
	err := p.dbGorm.WithContext(ctx).Where("user_id = ?", userID).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ConversationStateBrowsing, nil
	}
	if err != nil {
		logrus.Errorln(err)
		return "", fmt.Errorf("load conversation state: %w", err)
	}

	if p.timeout > 0 && p.now().Sub(record.UpdatedAt) > p.timeout {
		if err := p.Clear(ctx, userID); err != nil {
			logrus.Warnf("Failed to remove expired conversation state for %s: %v", userID, err)
		}
		return domain.ConversationStateBrowsing, nil
	}

	state := domain.ConversationState(record.State)
	if !state.IsValid() {
		return domain.ConversationStateBrowsing, nil
	}
	return state, nil
}

// Set upserts the user's row
func (p *StateRepository) Set(ctx context.Context, userID string, state domain.ConversationState) error {
	record := ConversationStateRecord{
		UserID:    userID,
		State:     string(state),
		UpdatedAt: p.now(),
	}
	err := p.dbGorm.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		logrus.Errorln(err)
		return fmt.Errorf("save conversation state: %w", err)
	}
	return nil
}

func (p *StateRepository) Clear(ctx context.Context, userID string) error {
	err := p.dbGorm.WithContext(ctx).Where("user_id = ?", userID).Delete(&ConversationStateRecord{}).Error
	if err != nil {
		logrus.Errorln(err)
		return fmt.Errorf("delete conversation state: %w", err)
	}
	return nil
}

func (p *StateRepository) Ping(ctx context.Context) error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
