package dto

import "net"

// Notification events accepted by the notify endpoint
const (
	EventSnatch   = "snatch"
	EventDownload = "download"
	EventSubtitle = "subtitle"
	EventUpdate   = "update"
	EventLogin    = "login"
)

// NotifyRequest carries the fields an event notification may need.
type NotifyRequest struct {
	Name    string `json:"name"`
	Lang    string `json:"lang"`
	IP      string `json:"ip"`
	Version string `json:"version"`
}

type NotifyResponse struct {
	Sent bool `json:"sent"`
}

// KnownEvent reports whether event names a notification.
func KnownEvent(event string) bool {
	switch event {
	case EventSnatch, EventDownload, EventSubtitle, EventUpdate, EventLogin:
		return true
	}
	return false
}

// Validate checks the fields required by event.
func (r *NotifyRequest) Validate(event string) []ValidationError {
	var errs []ValidationError
	switch event {
	case EventSnatch, EventDownload:
		errs = append(errs, required("name", r.Name)...)
	case EventSubtitle:
		errs = append(errs, required("name", r.Name)...)
		errs = append(errs, required("lang", r.Lang)...)
	case EventLogin:
		if net.ParseIP(r.IP) == nil {
			errs = append(errs, ValidationError{Field: "ip", Message: "must be a valid IP address"})
		}
	}
	return errs
}
