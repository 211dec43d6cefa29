// Package store 使用 SQLite 持久化公司数据和抓取会话
//
// 同一数据库文件可能被 CLI 和 serve 进程同时打开,
// 写操作除了 SQLite 自身的锁之外还要持有 <db>.lock 文件锁
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	_ "modernc.org/sqlite"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

const (
	// lockRetryDelay 获取文件锁的重试间隔
	lockRetryDelay = 25 * time.Millisecond
	// timeLayout 定宽UTC时间,字符串顺序即时间顺序
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store SQLite 存储
type Store struct {
	db   *sql.DB
	path string

	mu   sync.Mutex // 进程内写操作串行
	lock *flock.Flock
}

// Open 打开或创建数据库,并执行迁移
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("创建数据库目录失败: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
		lock: flock.New(path + ".lock"),
	}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("💾 数据库已打开")
	return s, nil
}

// Path 数据库文件路径
func (s *Store) Path() string {
	return s.path
}

// Close 关闭数据库
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// withWriteLock 持有进程内互斥锁和文件锁执行写操作
func (s *Store) withWriteLock(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("获取数据库文件锁失败: %w", err)
	}
	if !locked {
		return fmt.Errorf("获取数据库文件锁失败: %s", s.lock.Path())
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			log.Warn().Err(err).Msg("释放数据库文件锁失败")
		}
	}()

	return fn()
}

// inTx 在写锁内执行事务,fn 返回错误时回滚
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return s.withWriteLock(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("开启事务失败: %w", err)
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("提交事务失败: %w", err)
		}
		return nil
	})
}

// NameKey 公司名称的比较键: 折叠大小写并合并空白
func NameKey(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
