package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dci/errors"
	"dci/logging"
)

const tracerName = "dci/usecase"

// RunnerOption Runner 选项
type RunnerOption func(*Runner)

// WithTracerProvider 指定 TracerProvider，默认使用全局 otel.GetTracerProvider()
func WithTracerProvider(tp trace.TracerProvider) RunnerOption {
	return func(r *Runner) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithLogger 指定日志
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver 设置观测者
func WithObserver(observer IObserver) RunnerOption {
	return func(r *Runner) {
		r.observer = observer
	}
}

// IObserver 用例观测者（如 Prometheus 指标）
type IObserver interface {
	ObserveUseCase(name string, elapsed time.Duration, err error)
}

// Runner 用例执行器：每次执行一个 span，失败时记录错误码
type Runner struct {
	tracer   trace.Tracer
	logger   logging.Logger
	observer IObserver
}

// NewRunner 创建执行器
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		tracer: otel.Tracer(tracerName),
		logger: logging.GetLogger().WithFields(logging.Component("usecase.runner")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run 执行上下文，返回上下文自身的错误（不做包装）
func (r *Runner) Run(ctx context.Context, name string, c IContext) error {
	ctx, span := r.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("dci.usecase", name)))
	defer span.End()

	if c == nil {
		err := errors.NewError(errors.ErrCodeInvalidInput, "context cannot be nil")
		r.fail(ctx, span, name, err)
		return err
	}

	if err := validate(c); err != nil {
		r.fail(ctx, span, name, err)
		return err
	}

	start := time.Now()
	err := c.Execute(ctx)
	elapsed := time.Since(start)
	if r.observer != nil {
		r.observer.ObserveUseCase(name, elapsed, err)
	}
	if err != nil {
		r.fail(ctx, span, name, err)
		return err
	}

	span.SetStatus(codes.Ok, "")
	r.logger.Debug(ctx, "用例执行完成",
		logging.String("usecase", name),
		logging.Duration("elapsed", elapsed))
	return nil
}

func (r *Runner) fail(ctx context.Context, span trace.Span, name string, err error) {
	code := errors.GetErrorCode(errors.Normalize(err))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("dci.error_code", string(code)))
	r.logger.Warn(ctx, "用例执行失败",
		logging.String("usecase", name),
		logging.String("error_code", string(code)),
		logging.Error(err))
}
