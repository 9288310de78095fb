package db

import (
	"fmt"
	"yuepai/internal/logger"
	"yuepai/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 连接数据库、迁移表结构并写入初始目录
func Init(dsn string, log *zap.Logger) error {
	level := gormlogger.Warn
	if log.Core().Enabled(zap.DebugLevel) {
		level = gormlogger.Info
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.NewGormLogger(log, level),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}
	log.Info("Database connection established")

	if err := Migrate(DB); err != nil {
		return err
	}
	log.Info("Database migration completed")

	return Seed(DB, log)
}

// Migrate 自动迁移
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Region{},
		&models.CatalogOption{},
		&models.Post{},
		&models.Request{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("迁移数据库失败: %w", err)
	}
	return nil
}

// Seed 目录为空时写入预设的地区和选项
func Seed(db *gorm.DB, log *zap.Logger) error {
	if err := seedRegions(db, log); err != nil {
		return err
	}
	return seedOptions(db, log)
}

func seedRegions(db *gorm.DB, log *zap.Logger) error {
	var count int64
	db.Model(&models.Region{}).Count(&count)
	if count > 0 {
		log.Info("Regions already seeded, skipping")
		return nil
	}

	regions := DefaultRegions()
	if err := db.Create(&regions).Error; err != nil {
		return fmt.Errorf("写入地区目录失败: %w", err)
	}
	log.Info("Initial regions created", zap.Int("count", len(regions)))
	return nil
}

func seedOptions(db *gorm.DB, log *zap.Logger) error {
	var count int64
	db.Model(&models.CatalogOption{}).Count(&count)
	if count > 0 {
		log.Info("Catalog options already seeded, skipping")
		return nil
	}

	options := DefaultOptions()
	if err := db.Create(&options).Error; err != nil {
		return fmt.Errorf("写入选项目录失败: %w", err)
	}
	log.Info("Initial catalog options created", zap.Int("count", len(options)))
	return nil
}
