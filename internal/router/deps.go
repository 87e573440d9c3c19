package router

import "github.com/yildizm/pilly/internal/history"

// Navigator is the slice of the location history the router drives
type Navigator interface {
	Current() history.Location
	Push(raw string, payload *history.Payload)
	Replace(raw string, payload *history.Payload)
	ClearPayload()
}

// AuthGate reports whether a credential token is present
type AuthGate interface {
	HasToken() bool
}

// Notifier shows a blocking notice to the user
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(msg string)

// Notify calls f(msg)
func (f NotifierFunc) Notify(msg string) { f(msg) }

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

// Notices shown by the router
const (
	NoticeLoginRequired = "로그인이 필요한 서비스입니다."
)
