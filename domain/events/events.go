package events

import (
	"time"

	"github.com/Dimo99/angular/domain/urltree"
)

// Event is the base interface for all navigation lifecycle events.
// Events describe something that has already happened.
type Event interface {
	GetNavigationID() int64
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	NavigationID int64     `json:"navigation_id"`
	EventType    string    `json:"event_type"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e BaseEvent) GetNavigationID() int64  { return e.NavigationID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// CancellationCode identifies why a navigation was cancelled
type CancellationCode string

const (
	// CancellationCodeRedirect means the navigation was replaced by a redirect
	CancellationCodeRedirect CancellationCode = "redirect"
	// CancellationCodeSupersededByNewNavigation means a newer navigation took over
	CancellationCodeSupersededByNewNavigation CancellationCode = "superseded_by_new_navigation"
	// CancellationCodeNoDataFromResolver means a resolver produced no data
	CancellationCodeNoDataFromResolver CancellationCode = "no_data_from_resolver"
	// CancellationCodeGuardRejected means a guard declined the navigation
	CancellationCodeGuardRejected CancellationCode = "guard_rejected"
)

// NavigationStart is raised when a navigation begins processing
type NavigationStart struct {
	BaseEvent
	URL     string `json:"url"`
	Trigger string `json:"trigger"`
}

// NewNavigationStart creates a NavigationStart event
func NewNavigationStart(navigationID int64, url, trigger string, timestamp time.Time) NavigationStart {
	return NavigationStart{
		BaseEvent: BaseEvent{
			NavigationID: navigationID,
			EventType:    "navigation.start",
			Timestamp:    timestamp,
		},
		URL:     url,
		Trigger: trigger,
	}
}

// NavigationEnd is raised when a navigation completes successfully
type NavigationEnd struct {
	BaseEvent
	URL               string `json:"url"`
	URLAfterRedirects string `json:"url_after_redirects"`
}

// NewNavigationEnd creates a NavigationEnd event
func NewNavigationEnd(navigationID int64, url, urlAfterRedirects string, timestamp time.Time) NavigationEnd {
	return NavigationEnd{
		BaseEvent: BaseEvent{
			NavigationID: navigationID,
			EventType:    "navigation.end",
			Timestamp:    timestamp,
		},
		URL:               url,
		URLAfterRedirects: urlAfterRedirects,
	}
}

// NavigationCancel is raised when a navigation is cancelled before completing.
// Code carries the machine-readable cause, Reason the human-readable one.
type NavigationCancel struct {
	BaseEvent
	URL    string           `json:"url"`
	Code   CancellationCode `json:"code"`
	Reason string           `json:"reason"`
}

// NewNavigationCancel creates a NavigationCancel event
func NewNavigationCancel(navigationID int64, url string, code CancellationCode, reason string, timestamp time.Time) NavigationCancel {
	return NavigationCancel{
		BaseEvent: BaseEvent{
			NavigationID: navigationID,
			EventType:    "navigation.cancel",
			Timestamp:    timestamp,
		},
		URL:    url,
		Code:   code,
		Reason: reason,
	}
}

// NavigationError is raised when a navigation fails with an unrecovered error
type NavigationError struct {
	BaseEvent
	URL string `json:"url"`
	Err error  `json:"-"`
}

// NewNavigationError creates a NavigationError event
func NewNavigationError(navigationID int64, url string, err error, timestamp time.Time) NavigationError {
	return NavigationError{
		BaseEvent: BaseEvent{
			NavigationID: navigationID,
			EventType:    "navigation.error",
			Timestamp:    timestamp,
		},
		URL: url,
		Err: err,
	}
}

// RouteConfigLoadStart is raised before a lazy route configuration loads
type RouteConfigLoadStart struct {
	BaseEvent
	Path string `json:"path"`
}

// NewRouteConfigLoadStart creates a RouteConfigLoadStart event
func NewRouteConfigLoadStart(navigationID int64, path string, timestamp time.Time) RouteConfigLoadStart {
	return RouteConfigLoadStart{
		BaseEvent: BaseEvent{
			NavigationID: navigationID,
			EventType:    "route_config.load_start",
			Timestamp:    timestamp,
		},
		Path: path,
	}
}

// RouteConfigLoadEnd is raised after a lazy route configuration loaded
type RouteConfigLoadEnd struct {
	BaseEvent
	Path string `json:"path"`
}

// NewRouteConfigLoadEnd creates a RouteConfigLoadEnd event
func NewRouteConfigLoadEnd(navigationID int64, path string, timestamp time.Time) RouteConfigLoadEnd {
	return RouteConfigLoadEnd{
		BaseEvent: BaseEvent{
			NavigationID: navigationID,
			EventType:    "route_config.load_end",
			Timestamp:    timestamp,
		},
		Path: path,
	}
}

// URLOf returns the serialized URL carried by an event, if any
func URLOf(e Event) string {
	switch ev := e.(type) {
	case NavigationStart:
		return ev.URL
	case NavigationEnd:
		return ev.URL
	case NavigationCancel:
		return ev.URL
	case NavigationError:
		return ev.URL
	default:
		return ""
	}
}

// SerializeTree is a small helper so event producers do not need to
// depend on a serializer instance
func SerializeTree(t *urltree.Tree) string {
	if t == nil {
		return ""
	}
	return t.String()
}
