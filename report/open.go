package report

import (
	"context"
	"fmt"
	"io"

	"dci/errors"
	"dci/logging"
)

// 支持的输出类型
const (
	KindConsole = "console"
	KindMemory  = "memory"
	KindSQLite  = "sqlite"
	KindRedis   = "redis"
	KindNATS    = "nats"
)

// Options Open 参数
type Options struct {
	Kind        string
	Writer      io.Writer // console
	SQLDriver   string    // sqlite，默认 "sqlite"
	SQLDSN      string
	SQLTable    string
	RedisAddr   string
	RedisStream string
	NATSURL     string
	NATSSubject string
	Logger      logging.Logger
}

// CloseFunc 释放 Open 建立的资源
type CloseFunc func() error

func noopClose() error { return nil }

// Open 按 Kind 构造 Sink
func Open(ctx context.Context, opts Options) (ISink, CloseFunc, error) {
	switch opts.Kind {
	case "", KindConsole:
		return NewWriterSink(opts.Writer), noopClose, nil
	case KindMemory:
		return NewMemorySink(), noopClose, nil
	case KindSQLite:
		return openSQLSink(ctx, opts)
	case KindRedis:
		s, err := NewRedisStreamSink(RedisConfig{Addr: opts.RedisAddr, Stream: opts.RedisStream, Logger: opts.Logger})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case KindNATS:
		s, err := NewNATSSink(NATSConfig{URL: opts.NATSURL, Subject: opts.NATSSubject, Logger: opts.Logger})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, errors.NewError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("unknown sink kind %q", opts.Kind)).WithContext("kind", opts.Kind)
	}
}

func openSQLSink(ctx context.Context, opts Options) (ISink, CloseFunc, error) {
	db, err := OpenSQL(ctx, opts.SQLDriver, opts.SQLDSN)
	if err != nil {
		return nil, nil, err
	}
	s, err := NewSQLSink(db, opts.SQLTable)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := s.Init(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return s, db.Close, nil
}
