package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindNetwork           Kind = "network_or_server_failure"
	KindValidation        Kind = "validation_failure"
	KindMissingIdentifier Kind = "missing_identifier"
	KindUpload            Kind = "upload_failure"
	KindNotFound          Kind = "not_found"
)

// Entity names the resource an operation acted on.
type Entity string

const (
	EntityProduct      Entity = "product"
	EntityCategory     Entity = "category"
	EntityAdminUser    Entity = "admin user"
	EntityConsumerUser Entity = "consumer user"
	EntityImage        Entity = "image"
)

type Error struct {
	Kind      Kind
	Op        string
	Entity    Entity
	Status    int               // HTTP status when the server answered
	PublicMsg string            // safe to show to staff
	Fields    map[string]string // per-field validation messages
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Op != "" {
		fmt.Fprintf(&b, " (%s %s)", e.Op, e.Entity)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " status=%d", e.Status)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	} else if e.PublicMsg != "" {
		fmt.Fprintf(&b, ": %s", e.PublicMsg)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func Network(op string, entity Entity, status int, err error) *Error {
	return &Error{
		Kind:      KindNetwork,
		Op:        op,
		Entity:    entity,
		Status:    status,
		PublicMsg: fmt.Sprintf("Failed to %s %s", op, entity),
		Err:       err,
	}
}

func NotFound(op string, entity Entity, err error) *Error {
	return &Error{
		Kind:      KindNotFound,
		Op:        op,
		Entity:    entity,
		Status:    404,
		PublicMsg: fmt.Sprintf("%s not found", capitalize(string(entity))),
		Err:       err,
	}
}

func Validation(entity Entity, fields map[string]string) *Error {
	return &Error{
		Kind:      KindValidation,
		Op:        "validate",
		Entity:    entity,
		PublicMsg: "All required fields must be filled in",
		Fields:    fields,
	}
}

func MissingIdentifier(op string, entity Entity) *Error {
	return &Error{
		Kind:      KindMissingIdentifier,
		Op:        op,
		Entity:    entity,
		PublicMsg: fmt.Sprintf("No %s ID provided", entity),
	}
}

func Upload(err error) *Error {
	return &Error{
		Kind:      KindUpload,
		Op:        "upload",
		Entity:    EntityImage,
		PublicMsg: "Failed to upload image",
		Err:       err,
	}
}

func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == kind
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return "Unexpected error"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
