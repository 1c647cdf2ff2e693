// Package report 提供用例输出的落地位置（Sink）。
//
// 用例上下文只依赖 ISink，按行写出报告（如"Balance is 650"）；
// 具体写到终端、内存、SQLite、Redis Streams 还是 NATS 由装配方决定。
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ISink 报告输出
type ISink interface {
	WriteLine(ctx context.Context, line string) error
}

// Record 一条报告记录，持久化类 Sink 使用
type Record struct {
	ID        string    `json:"id"`
	Line      string    `json:"line"`
	Timestamp time.Time `json:"timestamp"`
}

func newRecord(line string) Record {
	return Record{ID: uuid.NewString(), Line: line, Timestamp: time.Now().UTC()}
}

// WriterSink 写入 io.Writer，每条记录一行
type WriterSink struct {
	mutex sync.Mutex
	w     io.Writer
}

// NewWriterSink 创建 WriterSink，w 为 nil 时写入标准输出
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		w = os.Stdout
	}
	return &WriterSink{w: w}
}

// WriteLine 实现 ISink
func (s *WriterSink) WriteLine(_ context.Context, line string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, err := fmt.Fprintln(s.w, line)
	return err
}

// MemorySink 内存记录，测试与示例使用
type MemorySink struct {
	mutex sync.RWMutex
	lines []string
}

// NewMemorySink 创建 MemorySink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// WriteLine 实现 ISink
func (s *MemorySink) WriteLine(_ context.Context, line string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

// Lines 返回已写入的行（副本）
func (s *MemorySink) Lines() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Reset 清空
func (s *MemorySink) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lines = nil
}

// MultiSink 依次写入多个 Sink，遇到第一个错误即返回
type MultiSink []ISink

// WriteLine 实现 ISink
func (m MultiSink) WriteLine(ctx context.Context, line string) error {
	for _, s := range m {
		if err := s.WriteLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// Printf 格式化后写入一行
func Printf(ctx context.Context, sink ISink, format string, args ...any) error {
	return sink.WriteLine(ctx, fmt.Sprintf(format, args...))
}
