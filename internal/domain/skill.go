package domain

import (
	"strings"
	"time"
)

// RequestType identifies the kind of inbound skill event
type RequestType string

const (
	RequestTypeLaunch       RequestType = "LaunchRequest"
	RequestTypeIntent       RequestType = "IntentRequest"
	RequestTypeSessionEnded RequestType = "SessionEndedRequest"
)

// RequestEnvelope is one decoded inbound event
type RequestEnvelope struct {
	Version string   `json:"version"`
	Session Session  `json:"session"`
	Request Request  `json:"request"`
	Context *Context `json:"context,omitempty"`
}

// ApplicationID returns the skill ID the event was addressed to, preferring the session copy.
func (e *RequestEnvelope) ApplicationID() string {
	if e.Session.Application.ApplicationID != "" {
		return e.Session.Application.ApplicationID
	}
	if e.Context != nil {
		return e.Context.System.Application.ApplicationID
	}
	return ""
}

// Session is the per-conversation state owned by the voice platform.
// The service reads it and echoes attributes back untouched.
type Session struct {
	SessionID   string         `json:"sessionId"`
	New         bool           `json:"new"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	Application Application    `json:"application"`
	User        User           `json:"user"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID string `json:"userId"`
}

type Context struct {
	System SystemState `json:"System"`
}

type SystemState struct {
	Application Application `json:"application"`
	User        User        `json:"user"`
}

type Request struct {
	Type      RequestType `json:"type"`
	RequestID string      `json:"requestId"`
	Timestamp time.Time   `json:"timestamp"`
	Locale    string      `json:"locale,omitempty"`
	Intent    *Intent     `json:"intent,omitempty"`
	Reason    string      `json:"reason,omitempty"` // SessionEndedRequest only
}

// Intent is a named user goal with its slots
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// SlotValue returns the trimmed value of the named slot and whether it is filled.
func (i *Intent) SlotValue(name string) (string, bool) {
	if i == nil || i.Slots == nil {
		return "", false
	}
	slot, ok := i.Slots[name]
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(slot.Value)
	return value, value != ""
}
