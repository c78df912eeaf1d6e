// Package logger 提供以 zerolog 實作的單例結構化日誌
//
// 啟動時呼叫一次 Init，回傳的 logger 由呼叫端注入各元件
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options 為 Init 的設定
type Options struct {
	// Level: trace, debug, info, warn, error；空值或無法辨識時為 info
	Level string
	// Pretty 開啟人類可讀的 console 輸出，正式環境請維持 JSON
	Pretty bool
	// Output 預設為 os.Stdout
	Output io.Writer
}

var (
	mu          sync.Mutex
	instance    zerolog.Logger
	initialized bool
)

// Init 建立單例 logger，重複呼叫只有第一次生效
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := ParseLevel(opts.Level)
	instance = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "parking-spot").
		Logger()
	initialized = true
	return instance
}

// Reset 清除單例，僅供測試使用
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	initialized = false
}

// ParseLevel 將字串轉成 zerolog.Level，預設 info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
