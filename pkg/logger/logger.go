package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const logFlags = log.Ldate | log.Ltime | log.Lshortfile

var (
	// 定义不同级别的日志记录器，未调用 SetupLogger 时只输出到控制台
	InfoLogger    = log.New(os.Stdout, "INFO: ", logFlags)
	WarningLogger = log.New(os.Stdout, "WARNING: ", logFlags)
	ErrorLogger   = log.New(os.Stderr, "ERROR: ", logFlags)

	logFile *os.File
)

// SetupLogger 初始化日志配置，日志同时写入控制台和 logDir 下按日期命名的文件
func SetupLogger(logDir string) error {
	if logDir == "" {
		logDir = "logs"
	}

	// 创建日志目录
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("创建日志目录失败: %w", err)
	}

	// 生成当前日期的日志文件名
	logFileName := filepath.Join(logDir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))

	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("打开日志文件失败: %w", err)
	}
	logFile = file

	// 设置多重输出：同时输出到控制台和文件
	setOutput(io.MultiWriter(os.Stdout, file))
	return nil
}

// SetOutput 将所有级别的日志重定向到 w，测试中用于捕获日志
func SetOutput(w io.Writer) {
	setOutput(w)
}

func setOutput(w io.Writer) {
	InfoLogger = log.New(w, "INFO: ", logFlags)
	WarningLogger = log.New(w, "WARNING: ", logFlags)
	ErrorLogger = log.New(w, "ERROR: ", logFlags)
}

// Close 关闭日志文件
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Info 记录信息级别的日志
func Info(format string, v ...interface{}) {
	InfoLogger.Output(2, fmt.Sprintf(format, v...))
}

// Warning 记录警告级别的日志
func Warning(format string, v ...interface{}) {
	WarningLogger.Output(2, fmt.Sprintf(format, v...))
}

// Error 记录错误级别的日志
func Error(format string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}
