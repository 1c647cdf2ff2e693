package report

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"dci/errors"
	"dci/logging"
)

// redisClient captures the subset of go-redis commands we rely on (for easier testing).
type redisClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

// RedisConfig Redis Streams 输出配置
type RedisConfig struct {
	Client   redis.UniversalClient
	Addr     string
	Username string
	Password string
	DB       int
	Stream   string
	MaxLen   int64 // 0 表示不裁剪
	Logger   logging.Logger
}

// RedisStreamSink 每行一条 XADD
type RedisStreamSink struct {
	cfg       RedisConfig
	client    redisClient
	ownClient bool
	logger    logging.Logger
}

// NewRedisStreamSink 创建 Redis Streams 输出
func NewRedisStreamSink(cfg RedisConfig) (*RedisStreamSink, error) {
	if cfg.Stream == "" {
		cfg.Stream = "dci:report"
	}
	var (
		cl  redisClient
		own bool
	)
	if cfg.Client != nil {
		cl = cfg.Client
	} else {
		if cfg.Addr == "" {
			return nil, errors.NewError(errors.ErrCodeInvalidInput, "redis client not configured")
		}
		cl = redis.NewClient(&redis.Options{Addr: cfg.Addr, Username: cfg.Username, Password: cfg.Password, DB: cfg.DB})
		own = true
	}
	return newRedisStreamSink(cfg, cl, own), nil
}

func newRedisStreamSink(cfg RedisConfig, cl redisClient, own bool) *RedisStreamSink {
	if cfg.Logger == nil {
		cfg.Logger = logging.GetLogger().WithFields(logging.Component("report.redis"))
	}
	return &RedisStreamSink{cfg: cfg, client: cl, ownClient: own, logger: cfg.Logger}
}

// WriteLine 实现 ISink
func (s *RedisStreamSink) WriteLine(ctx context.Context, line string) error {
	rec := newRecord(line)
	args := &redis.XAddArgs{
		Stream: s.cfg.Stream,
		Values: map[string]any{
			"id":        rec.ID,
			"line":      rec.Line,
			"timestamp": rec.Timestamp.Format(time.RFC3339Nano),
		},
	}
	if s.cfg.MaxLen > 0 {
		args.MaxLen = s.cfg.MaxLen
		args.Approx = true
	}
	entryID, err := s.client.XAdd(ctx, args).Result()
	if err != nil {
		return errors.WrapQueueError(ctx, err, s.cfg.Stream)
	}
	s.logger.Debug(ctx, "报告已写入 stream",
		logging.String("stream", s.cfg.Stream),
		logging.String("entry_id", entryID))
	return nil
}

// Close 关闭自建的客户端
func (s *RedisStreamSink) Close() error {
	if s.ownClient {
		return s.client.Close()
	}
	return nil
}
