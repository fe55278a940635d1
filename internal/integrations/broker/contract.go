package broker

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Recorder учитывает опубликованные и полученные сообщения (*metrics.Metrics)
type Recorder interface {
	IncBrokerMessage(direction string, err error)
}

// Направления сообщений для Recorder
const (
	directionPublished = "published"
	directionConsumed  = "consumed"
)
