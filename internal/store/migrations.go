package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// migrations 按顺序执行,下标+1 即 PRAGMA user_version
var migrations = []string{
	// 1: 基础表
	`
	CREATE TABLE IF NOT EXISTS companies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name_key TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		industry TEXT NOT NULL DEFAULT '',
		size TEXT NOT NULL DEFAULT '',
		headquarters TEXT NOT NULL DEFAULT '',
		founded INTEGER NOT NULL DEFAULT 0,
		website TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		employee_count INTEGER NOT NULL DEFAULT 0,
		follower_count INTEGER NOT NULL DEFAULT 0,
		linkedin_url TEXT NOT NULL DEFAULT '',
		provenance TEXT NOT NULL,
		scraped_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		record_id TEXT NOT NULL,
		company_id INTEGER NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		date TEXT NOT NULL,
		engagement INTEGER NOT NULL DEFAULT 0,
		type TEXT NOT NULL,
		url TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		UNIQUE(company_id, content)
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		record_id TEXT NOT NULL,
		company_id INTEGER NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL,
		date_posted TEXT NOT NULL,
		requirements TEXT NOT NULL DEFAULT '[]',
		description TEXT NOT NULL DEFAULT '',
		salary_range TEXT NOT NULL DEFAULT '',
		employment_type TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		UNIQUE(company_id, title)
	);

	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		record_id TEXT NOT NULL,
		company_id INTEGER NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL,
		level TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '[]',
		tenure TEXT NOT NULL DEFAULT '',
		education TEXT NOT NULL DEFAULT '',
		profile_url TEXT NOT NULL DEFAULT '',
		UNIQUE(company_id, name)
	);

	CREATE TABLE IF NOT EXISTS scraping_sessions (
		id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		status TEXT NOT NULL,
		provenance TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		post_count INTEGER NOT NULL DEFAULT 0,
		job_count INTEGER NOT NULL DEFAULT 0,
		employee_count INTEGER NOT NULL DEFAULT 0,
		started_at TEXT NOT NULL,
		completed_at TEXT
	);

	CREATE TABLE IF NOT EXISTS scraped_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES scraping_sessions(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		raw TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`,
	// 2: 查询索引
	`
	CREATE INDEX IF NOT EXISTS idx_posts_company_date ON posts(company_id, date);
	CREATE INDEX IF NOT EXISTS idx_jobs_company_department ON jobs(company_id, department);
	CREATE INDEX IF NOT EXISTS idx_employees_company_department ON employees(company_id, department, level);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON scraping_sessions(started_at);
	CREATE INDEX IF NOT EXISTS idx_scraped_data_session ON scraped_data(session_id);
	`,
}

// SchemaVersion 当前代码对应的结构版本
func SchemaVersion() int {
	return len(migrations)
}

// Migrate 执行尚未应用的迁移
func (s *Store) Migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("读取数据库版本失败: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("数据库版本 %d 高于程序支持的版本 %d", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		err := s.withWriteLock(ctx, func() error {
			tx, err := s.db.BeginTx(ctx, nil)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
				_ = tx.Rollback()
				return err
			}
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
				_ = tx.Rollback()
				return err
			}
			return tx.Commit()
		})
		if err != nil {
			return fmt.Errorf("执行迁移 %d 失败: %w", i+1, err)
		}
		log.Debug().Int("version", i+1).Msg("数据库迁移完成")
	}
	return nil
}

// Version 当前数据库结构版本
func (s *Store) Version(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	return version, err
}
