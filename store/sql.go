package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/osutil"
	"github.com/ggoeuh/DAL-sub000/internal/tagging"
)

type userRow struct {
	ID        string `gorm:"primaryKey"`
	UpdatedAt time.Time
}

func (userRow) TableName() string { return "users" }

type scheduleRow struct {
	RowID       uint   `gorm:"primaryKey;autoIncrement"`
	UserID      string `gorm:"index:idx_schedule_user_date"`
	Date        string `gorm:"index:idx_schedule_user_date"`
	ScheduleID  string
	Start       string `gorm:"column:start_time"`
	End         string `gorm:"column:end_time"`
	Title       string
	Description string
	Tag         string
	TagType     string
	Done        bool
	Position    int
}

func (scheduleRow) TableName() string { return "schedules" }

type tagRow struct {
	RowID    uint   `gorm:"primaryKey;autoIncrement"`
	UserID   string `gorm:"index"`
	TagType  string
	Color    string
	Position int
}

func (tagRow) TableName() string { return "tags" }

type tagItemRow struct {
	RowID    uint   `gorm:"primaryKey;autoIncrement"`
	UserID   string `gorm:"index"`
	TagType  string
	TagName  string
	Position int
}

func (tagItemRow) TableName() string { return "tag_items" }

type planRow struct {
	RowID         uint   `gorm:"primaryKey;autoIncrement"`
	UserID        string `gorm:"index"`
	PlanID        string
	TagType       string
	Tag           string
	Name          string
	Description   string
	EstimatedTime int
	Month         string
	Position      int
}

func (planRow) TableName() string { return "monthly_plans" }

// goalMonthRow keeps months whose goal list is empty.
type goalMonthRow struct {
	RowID    uint   `gorm:"primaryKey;autoIncrement"`
	UserID   string `gorm:"index"`
	Month    string
	Position int
}

func (goalMonthRow) TableName() string { return "monthly_goals" }

type goalEntryRow struct {
	RowID       uint   `gorm:"primaryKey;autoIncrement"`
	UserID      string `gorm:"index"`
	Month       string
	TagType     string
	TargetHours string
	Position    int
}

func (goalEntryRow) TableName() string { return "goal_entries" }

var rowModels = []any{
	&userRow{},
	&scheduleRow{},
	&tagRow{},
	&tagItemRow{},
	&planRow{},
	&goalMonthRow{},
	&goalEntryRow{},
}

// SQLStore flattens bundles into SQLite rows through gorm.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore opens (or creates) the SQLite database at dsn and migrates the
// schema.
func NewSQLStore(dsn string) (*SQLStore, error) {
	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, errOpenDB.Wrap(err)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errOpenDB.Wrap(err)
	}

	if err := db.AutoMigrate(rowModels...); err != nil {
		return nil, errOpenDB.Wrap(err)
	}

	return &SQLStore{db: db}, nil
}

// ensureDirForSQLite creates the parent dir for a SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}

	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]

	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}

	return os.MkdirAll(dir, osutil.DirPermission)
}

func (s *SQLStore) Load(
	ctx context.Context,
	userID string,
) (models.Bundle, error) {
	db := s.db.WithContext(ctx)
	b := models.NewBundle()

	var user userRow

	err := db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return b, nil
	}

	if err != nil {
		return models.Bundle{}, errLoad.Fmt(userID).Wrap(err)
	}

	var (
		schedules []scheduleRow
		tags      []tagRow
		items     []tagItemRow
		plans     []planRow
		months    []goalMonthRow
		entries   []goalEntryRow
	)

	queries := []any{&schedules, &tags, &items, &plans, &months, &entries}
	for _, dest := range queries {
		err := db.Where("user_id = ?", userID).Order("position").Find(dest).Error
		if err != nil {
			return models.Bundle{}, errLoad.Fmt(userID).Wrap(err)
		}
	}

	for _, r := range schedules {
		b.Schedules = append(b.Schedules, models.Schedule{
			ID:          r.ScheduleID,
			Date:        r.Date,
			Start:       r.Start,
			End:         r.End,
			Title:       r.Title,
			Description: r.Description,
			Tag:         r.Tag,
			TagType:     r.TagType,
			Done:        r.Done,
		})
	}

	for _, r := range tags {
		b.Tags = append(b.Tags, models.Tag{TagType: r.TagType, Color: r.Color})
	}

	for _, r := range items {
		b.TagItems = append(b.TagItems, models.TagItem{
			TagType: r.TagType,
			TagName: r.TagName,
		})
	}

	for _, r := range plans {
		b.MonthlyPlans = append(b.MonthlyPlans, models.MonthlyPlan{
			ID:            r.PlanID,
			TagType:       r.TagType,
			Tag:           r.Tag,
			Name:          r.Name,
			Description:   r.Description,
			EstimatedTime: r.EstimatedTime,
			Month:         r.Month,
		})
	}

	for _, r := range months {
		b.MonthlyGoals = append(b.MonthlyGoals, models.MonthlyGoal{
			Month: r.Month,
			Goals: []models.GoalEntry{},
		})
	}

	for _, r := range entries {
		i := b.GoalFor(r.Month)
		if i < 0 {
			b.MonthlyGoals = append(b.MonthlyGoals, models.MonthlyGoal{Month: r.Month})
			i = len(b.MonthlyGoals) - 1
		}

		b.MonthlyGoals[i].Goals = append(b.MonthlyGoals[i].Goals, models.GoalEntry{
			TagType:     r.TagType,
			TargetHours: r.TargetHours,
		})
	}

	b.Normalize()

	return b, nil
}

func (s *SQLStore) Save(
	ctx context.Context,
	userID string,
	b models.Bundle,
) error {
	if strings.TrimSpace(userID) == "" {
		return errEmptyUser
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Save(&userRow{ID: userID, UpdatedAt: time.Now()}).Error
		if err != nil {
			return err
		}

		for _, m := range rowModels[1:] {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}

		return insertRows(tx, flatten(userID, b))
	})
	if err != nil {
		return errSave.Fmt(userID).Wrap(err)
	}

	return nil
}

type flatRows struct {
	schedules []scheduleRow
	tags      []tagRow
	items     []tagItemRow
	plans     []planRow
	months    []goalMonthRow
	entries   []goalEntryRow
}

func flatten(userID string, b models.Bundle) flatRows {
	var f flatRows

	for i, s := range b.Schedules {
		f.schedules = append(f.schedules, scheduleRow{
			UserID:      userID,
			ScheduleID:  s.ID,
			Date:        s.Date,
			Start:       s.Start,
			End:         s.End,
			Title:       s.Title,
			Description: s.Description,
			Tag:         s.Tag,
			TagType:     s.TagType,
			Done:        s.Done,
			Position:    i,
		})
	}

	for i, t := range b.Tags {
		f.tags = append(f.tags, tagRow{
			UserID:   userID,
			TagType:  t.TagType,
			Color:    t.Color,
			Position: i,
		})
	}

	for i, it := range b.TagItems {
		f.items = append(f.items, tagItemRow{
			UserID:   userID,
			TagType:  it.TagType,
			TagName:  it.TagName,
			Position: i,
		})
	}

	for i, p := range b.MonthlyPlans {
		f.plans = append(f.plans, planRow{
			UserID:        userID,
			PlanID:        p.ID,
			TagType:       p.TagType,
			Tag:           p.Tag,
			Name:          p.Name,
			Description:   p.Description,
			EstimatedTime: p.EstimatedTime,
			Month:         p.Month,
			Position:      i,
		})
	}

	pos := 0

	for i, g := range b.MonthlyGoals {
		f.months = append(f.months, goalMonthRow{
			UserID:   userID,
			Month:    g.Month,
			Position: i,
		})

		for _, e := range g.Goals {
			f.entries = append(f.entries, goalEntryRow{
				UserID:      userID,
				Month:       g.Month,
				TagType:     e.TagType,
				TargetHours: e.TargetHours,
				Position:    pos,
			})
			pos++
		}
	}

	return f
}

func insertRows(tx *gorm.DB, f flatRows) error {
	const batch = 200

	if len(f.schedules) > 0 {
		if err := tx.CreateInBatches(f.schedules, batch).Error; err != nil {
			return err
		}
	}

	if len(f.tags) > 0 {
		if err := tx.CreateInBatches(f.tags, batch).Error; err != nil {
			return err
		}
	}

	if len(f.items) > 0 {
		if err := tx.CreateInBatches(f.items, batch).Error; err != nil {
			return err
		}
	}

	if len(f.plans) > 0 {
		if err := tx.CreateInBatches(f.plans, batch).Error; err != nil {
			return err
		}
	}

	if len(f.months) > 0 {
		if err := tx.CreateInBatches(f.months, batch).Error; err != nil {
			return err
		}
	}

	if len(f.entries) > 0 {
		if err := tx.CreateInBatches(f.entries, batch).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLStore) ListUsers(ctx context.Context) ([]string, error) {
	var users []string

	err := s.db.WithContext(ctx).
		Model(&userRow{}).
		Order("id").
		Pluck("id", &users).Error
	if err != nil {
		return nil, err
	}

	tagging.SortNatural(users)

	return users, nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
