package http

import (
	"encoding/json"
	"html/template"
	"net/http"
)

// htmx events the page listens for.
const (
	eventExpenseCreated   = "expense:created"
	eventSavingsUpdated   = "savings:updated"
	eventFormReset        = "form:reset"
	eventShowNotification = "show-notification"
)

// HTMXResponseBuilder assembles a fragment response and its HX-Trigger events.
type HTMXResponseBuilder struct {
	status  int
	header  http.Header
	events  map[string]any
	payload []byte
}

func NewHTMXResponse() *HTMXResponseBuilder {
	return &HTMXResponseBuilder{
		status: http.StatusOK,
		header: http.Header{},
		events: map[string]any{},
	}
}

func (b *HTMXResponseBuilder) Status(code int) *HTMXResponseBuilder {
	b.status = code
	return b
}

// Trigger queues an event for the HX-Trigger header. A later call with the
// same name replaces the earlier detail.
func (b *HTMXResponseBuilder) Trigger(name string, detail any) *HTMXResponseBuilder {
	b.events[name] = detail
	return b
}

// TriggerExpenseCreated tells the page a new expense exists and which category it landed in.
func (b *HTMXResponseBuilder) TriggerExpenseCreated(id, category string) *HTMXResponseBuilder {
	return b.Trigger(eventExpenseCreated, map[string]string{"id": id, "category": category})
}

// TriggerSavingsUpdated carries the new display progress so the bar can update in place.
func (b *HTMXResponseBuilder) TriggerSavingsUpdated(progress string) *HTMXResponseBuilder {
	return b.Trigger(eventSavingsUpdated, map[string]string{"progress": progress})
}

func (b *HTMXResponseBuilder) TriggerFormReset() *HTMXResponseBuilder {
	return b.Trigger(eventFormReset, struct{}{})
}

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// TriggerNotification asks app.js to show a toast for durationMs.
func (b *HTMXResponseBuilder) TriggerNotification(kind NotificationType, message string, durationMs int) *HTMXResponseBuilder {
	return b.Trigger(eventShowNotification, map[string]any{
		"type":     string(kind),
		"message":  message,
		"duration": durationMs,
	})
}

func (b *HTMXResponseBuilder) TriggerSuccessNotification(message string) *HTMXResponseBuilder {
	return b.TriggerNotification(NotificationSuccess, message, 3000)
}

// Errors stay on screen longer than confirmations.
func (b *HTMXResponseBuilder) TriggerErrorNotification(message string) *HTMXResponseBuilder {
	return b.TriggerNotification(NotificationError, message, 5000)
}

func (b *HTMXResponseBuilder) Header(name, value string) *HTMXResponseBuilder {
	b.header.Set(name, value)
	return b
}

// BodyHTML sets an already-rendered fragment as the body.
func (b *HTMXResponseBuilder) BodyHTML(fragment string) *HTMXResponseBuilder {
	b.header.Set("Content-Type", "text/html; charset=utf-8")
	b.payload = []byte(fragment)
	return b
}

func (b *HTMXResponseBuilder) Write(w http.ResponseWriter) {
	dst := w.Header()
	for name, values := range b.header {
		dst[name] = values
	}
	if len(b.events) > 0 {
		// Marshalling maps of strings and ints cannot fail.
		encoded, _ := json.Marshal(b.events)
		dst.Set("HX-Trigger", string(encoded))
	}

	w.WriteHeader(b.status)
	if len(b.payload) > 0 {
		_, _ = w.Write(b.payload)
	}
}

// fragment wraps an escaped message in a div with the given class and ARIA role.
func fragment(class, role, message string) string {
	return `<div class="` + class + `" role="` + role + `">` + template.HTMLEscapeString(message) + `</div>`
}

// ErrorResponse creates an error fragment. The message is HTML-escaped.
func ErrorResponse(statusCode int, message string) *HTMXResponseBuilder {
	return NewHTMXResponse().Status(statusCode).BodyHTML(fragment("error", "alert", message))
}

func BadRequestError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

func UnprocessableEntityError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusUnprocessableEntity, message)
}

func InternalServerError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}

// SuccessResponse creates a success fragment. The message is HTML-escaped.
func SuccessResponse(message string) *HTMXResponseBuilder {
	return NewHTMXResponse().BodyHTML(fragment("success", "status", message))
}
