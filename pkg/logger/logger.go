package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init cấu hình global logger.
// development: console writer, level debug. Còn lại: JSON, level info.
func Init(env, app string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = log.With().Str("app", app).Logger()
	// Ctx() rơi về global logger khi request không mang logger riêng
	zerolog.DefaultContextLogger = &log.Logger
}

// WithRequestID gắn một sub-logger có field request_id vào ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := Ctx(ctx).With().Str("request_id", requestID).Logger()
	return l.WithContext(ctx)
}

// Ctx trả về logger của request. Trước khi Init được gọi (tests) logger bị tắt.
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
