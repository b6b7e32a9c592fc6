package pkg

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 全局 logger，InitLogger 之前是 no-op
var Log = zap.NewNop()

// InitLogger 控制台 + 滚动文件双输出
func InitLogger(level, logFile string) {
	if logFile == "" {
		logFile = "server.log"
	}

	lv := zapcore.InfoLevel
	_ = lv.Set(level)

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 5,
		MaxAge:     7, // days
		Compress:   true,
	})

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(os.Stdout), lv),
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileWriter, lv),
	)

	Log = zap.New(core, zap.AddCaller())
}
