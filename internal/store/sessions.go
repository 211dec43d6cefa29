package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

// RawData 会话中保存的原始数据
type RawData struct {
	Kind      string          `json:"data_type"`
	Raw       json.RawMessage `json:"raw_data"`
	CreatedAt time.Time       `json:"created_at"`
}

// SessionDetail 会话及其原始数据
type SessionDetail struct {
	Session models.ScrapeSession `json:"session"`
	Data    []RawData            `json:"scraped_data"`
}

// CreateSession 保存新会话
func (s *Store) CreateSession(ctx context.Context, sess *models.ScrapeSession) error {
	return s.withWriteLock(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO scraping_sessions (id, company_name, status, provenance, error,
				post_count, job_count, employee_count, started_at, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sess.ID, sess.CompanyName, string(sess.Status), string(sess.Provenance), sess.Error,
			sess.PostCount, sess.JobCount, sess.EmployeeCount, formatTime(sess.StartedAt), nullTime(sess.CompletedAt))
		if err != nil {
			return fmt.Errorf("保存会话失败: %w", err)
		}
		return nil
	})
}

// FinishSession 更新会话的最终状态和统计
func (s *Store) FinishSession(ctx context.Context, sess *models.ScrapeSession) error {
	return s.withWriteLock(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE scraping_sessions SET status = ?, provenance = ?, error = ?,
				post_count = ?, job_count = ?, employee_count = ?, completed_at = ?
			WHERE id = ?`,
			string(sess.Status), string(sess.Provenance), sess.Error,
			sess.PostCount, sess.JobCount, sess.EmployeeCount, nullTime(sess.CompletedAt), sess.ID)
		if err != nil {
			return fmt.Errorf("更新会话失败: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// SaveRawData 保存会话的原始数据, kind 如 company/posts/jobs/employees/bundle
func (s *Store) SaveRawData(ctx context.Context, sessionID, kind string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化原始数据失败: %w", err)
	}
	return s.withWriteLock(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO scraped_data (session_id, kind, raw, created_at) VALUES (?, ?, ?, ?)`,
			sessionID, kind, string(raw), formatTime(time.Now()))
		if err != nil {
			return fmt.Errorf("保存原始数据失败: %w", err)
		}
		return nil
	})
}

const sessionColumns = `id, company_name, status, provenance, error,
	post_count, job_count, employee_count, started_at, completed_at`

// RecentSessions 最近的会话,按开始时间倒序
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]models.ScrapeSession, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM scraping_sessions ORDER BY started_at DESC"+limitClause(limit))
	if err != nil {
		return nil, fmt.Errorf("查询会话失败: %w", err)
	}
	defer rows.Close()

	sessions := make([]models.ScrapeSession, 0)
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// SessionData 会话详情,不存在时返回 ErrNotFound
func (s *Store) SessionData(ctx context.Context, id string) (*SessionDetail, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM scraping_sessions WHERE id = ?", id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询会话失败: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, raw, created_at FROM scraped_data WHERE session_id = ? ORDER BY id", id)
	if err != nil {
		return nil, fmt.Errorf("查询原始数据失败: %w", err)
	}
	defer rows.Close()

	detail := &SessionDetail{Session: sess, Data: []RawData{}}
	for rows.Next() {
		var (
			d            RawData
			raw, created string
		)
		if err := rows.Scan(&d.Kind, &raw, &created); err != nil {
			return nil, err
		}
		d.Raw = json.RawMessage(raw)
		d.CreatedAt = parseTime(created)
		detail.Data = append(detail.Data, d)
	}
	return detail, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (models.ScrapeSession, error) {
	var (
		sess               models.ScrapeSession
		status, provenance string
		started            string
		completed          sql.NullString
	)
	err := row.Scan(&sess.ID, &sess.CompanyName, &status, &provenance, &sess.Error,
		&sess.PostCount, &sess.JobCount, &sess.EmployeeCount, &started, &completed)
	if err != nil {
		return sess, err
	}
	sess.Status = models.TaskStatus(status)
	sess.Provenance = models.Provenance(provenance)
	sess.StartedAt = parseTime(started)
	if completed.Valid {
		t := parseTime(completed.String)
		sess.CompletedAt = &t
	}
	return sess, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
