package service

import "go-pos-backend/internal/ws"

// Publisher pushes change notifications to connected terminals. *ws.Hub
// implements it; a nil Publisher disables notifications.
type Publisher interface {
	Publish(ev ws.Event)
}

func publish(p Publisher, ev ws.Event) {
	if p == nil {
		return
	}
	p.Publish(ev)
}
