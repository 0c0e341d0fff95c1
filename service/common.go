package service

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"yatube/app/cache"
	"yatube/app/logger"
	"yatube/app/repositories"
	"yatube/app/storage"
	"yatube/config"
)

// Version is the released version of the yatube binary.
const Version = "1.0.0"

// loadConfig reads the configuration named by the --config flag and applies
// its logging section.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
		Output: cmd.ErrOrStderr(),
	})
	return cfg, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := repositories.Open(repositories.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		Path:         cfg.Database.Path,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		LogLevel:     cfg.Logging.Level,
	})
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		_ = repositories.Close(db)
		return nil, err
	}
	return db, nil
}

// stores are the resources a running server owns.
type stores struct {
	db     *gorm.DB
	pages  *cache.PageCache
	images *storage.ImageStore
}

func openStores(cfg *config.Config) (*stores, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	pages, err := cache.Open(cache.Config{Path: cfg.Cache.Path, TTL: cfg.Cache.TTL})
	if err != nil {
		_ = repositories.Close(db)
		return nil, err
	}

	images, err := storage.NewImageStore(storage.LocalConfig{Root: cfg.Media.Root})
	if err != nil {
		_ = pages.Close()
		_ = repositories.Close(db)
		return nil, err
	}

	return &stores{db: db, pages: pages, images: images}, nil
}

func (s *stores) Close() error {
	return errors.Join(s.pages.Close(), repositories.Close(s.db))
}

func printf(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
