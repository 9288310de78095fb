package logger

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewWriter 始终输出到控制台；path 非空时同时写入按大小切割的日志文件
func NewWriter(path string) io.Writer {
	if path == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   filepath.Clean(path),
		MaxBackups: 30,  // files
		MaxSize:    100, // megabytes
		MaxAge:     30,  // days
		Compress:   true,
	})
}
