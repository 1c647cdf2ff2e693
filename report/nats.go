package report

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"

	"dci/errors"
	"dci/logging"
)

// publisher captures the subset of *nats.Conn we rely on (for easier testing).
type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSConfig NATS 输出配置
type NATSConfig struct {
	Conn    *nats.Conn
	URL     string
	Subject string
	Logger  logging.Logger
}

// NATSSink 每行发布一条 JSON 消息
type NATSSink struct {
	subject  string
	pub      publisher
	conn     *nats.Conn
	ownsConn bool
	logger   logging.Logger
}

// NewNATSSink 创建 NATS 输出；未提供 Conn 时按 URL 建立连接
func NewNATSSink(cfg NATSConfig) (*NATSSink, error) {
	conn := cfg.Conn
	own := false
	if conn == nil {
		url := cfg.URL
		if url == "" {
			url = nats.DefaultURL
		}
		c, err := nats.Connect(url, nats.Name("dci-report"))
		if err != nil {
			return nil, errors.WrapQueueError(context.Background(), err, url)
		}
		conn = c
		own = true
	}
	s := newNATSSink(cfg, conn)
	s.conn = conn
	s.ownsConn = own
	return s, nil
}

func newNATSSink(cfg NATSConfig, pub publisher) *NATSSink {
	if cfg.Subject == "" {
		cfg.Subject = "dci.report"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetLogger().WithFields(logging.Component("report.nats"))
	}
	return &NATSSink{subject: cfg.Subject, pub: pub, logger: cfg.Logger}
}

// WriteLine 实现 ISink
func (s *NATSSink) WriteLine(ctx context.Context, line string) error {
	data, err := json.Marshal(newRecord(line))
	if err != nil {
		return errors.WrapError(err, errors.ErrCodeInternal, "marshal report record")
	}
	if err := s.pub.Publish(s.subject, data); err != nil {
		return errors.WrapQueueError(ctx, err, s.subject)
	}
	s.logger.Debug(ctx, "报告已发布", logging.String("subject", s.subject))
	return nil
}

// Close 排空并关闭自建的连接
func (s *NATSSink) Close() error {
	if s.ownsConn && s.conn != nil {
		return s.conn.Drain()
	}
	return nil
}
