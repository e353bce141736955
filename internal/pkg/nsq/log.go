package nsq

import (
	"strings"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/kidtrack/internal/pkg/logger"
)

// clientLogLevel keeps go-nsq's per-connection chatter out of the logs
const clientLogLevel = nsq.LogLevelWarning

// logBridge routes go-nsq's internal log lines through the global logger.
// go-nsq prefixes every line with its level, e.g. "WRN    1 (127.0.0.1:4150) ...".
type logBridge struct {
	component string
}

func (b logBridge) Output(calldepth int, s string) error {
	level, msg, _ := strings.Cut(s, " ")
	msg = strings.TrimSpace(msg)
	field := logger.String("component", b.component)

	switch level {
	case "ERR":
		logger.Error(msg, field)
	case "WRN":
		logger.Warn(msg, field)
	case "INF":
		logger.Info(msg, field)
	default:
		logger.Debug(msg, field)
	}
	return nil
}
