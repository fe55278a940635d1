package domain

import "strings"

// RepeatKind вид повторения события
type RepeatKind int

const (
	// RepeatUnsupported любой нераспознанный вид повторения
	RepeatUnsupported RepeatKind = iota
	// RepeatDaily событие повторяется каждый день
	RepeatDaily
)

const repeatDailyName = "daily"

// ParseRepeatKind распознаёт вид повторения. Неизвестные значения не являются ошибкой.
func ParseRepeatKind(value string) RepeatKind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case repeatDailyName:
		return RepeatDaily
	default:
		return RepeatUnsupported
	}
}

func (k RepeatKind) String() string {
	switch k {
	case RepeatDaily:
		return repeatDailyName
	default:
		return "unsupported"
	}
}
