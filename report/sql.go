package report

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"dci/errors"
)

const defaultTable = "dci_report_lines"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenSQL 打开数据库并做可用性检查
//
// 调用方必须确保 driver 已通过空导入注册（例如 `_ "modernc.org/sqlite"`）。
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		driver = "sqlite"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.WrapDatabaseError(ctx, err, "open")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.WrapDatabaseError(ctx, err, "ping")
	}
	return db, nil
}

// SQLSink 把报告行写入数据库表
type SQLSink struct {
	db    *sql.DB
	table string
}

// NewSQLSink 创建 SQLSink，table 为空时使用默认表名
func NewSQLSink(db *sql.DB, table string) (*SQLSink, error) {
	if db == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "db cannot be nil")
	}
	if table == "" {
		table = defaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, errors.NewError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid table name %q", table))
	}
	return &SQLSink{db: db, table: table}, nil
}

// Init 建表（幂等）
func (s *SQLSink) Init(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		line TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`, s.table)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return errors.WrapDatabaseError(ctx, err, "create table "+s.table)
	}
	return nil
}

// WriteLine 实现 ISink
func (s *SQLSink) WriteLine(ctx context.Context, line string) error {
	rec := newRecord(line)
	query := fmt.Sprintf("INSERT INTO %s (id, line, created_at) VALUES (?, ?, ?)", s.table)
	if _, err := s.db.ExecContext(ctx, query, rec.ID, rec.Line, rec.Timestamp.UnixNano()); err != nil {
		return errors.WrapDatabaseError(ctx, err, "insert into "+s.table)
	}
	return nil
}

// Records 按写入顺序读取全部记录
func (s *SQLSink) Records(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf("SELECT id, line, created_at FROM %s ORDER BY seq", s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.WrapDatabaseError(ctx, err, "select from "+s.table)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec     Record
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Line, &created); err != nil {
			return nil, errors.WrapDatabaseError(ctx, err, "scan "+s.table)
		}
		rec.Timestamp = time.Unix(0, created).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapDatabaseError(ctx, err, "iterate "+s.table)
	}
	return out, nil
}

// Lines 按写入顺序读取全部行
func (s *SQLSink) Lines(ctx context.Context) ([]string, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.Line
	}
	return lines, nil
}
