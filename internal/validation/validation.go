package validation

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/boekwinkel/order_service/internal/domain/events"
)

// clockSkew is how far in the future a timestamp may lie before it is
// considered invalid.
const clockSkew = 5 * time.Minute

var orderNumberRe = regexp.MustCompile(`^ORD\d{14}$`)

// Func checks one event payload and returns human-readable rule
// violations, empty when the payload is valid.
type Func func(event any) []string

// Gate validates outbound events before they are handed to the publisher.
// Rules are registered per event kind at construction time; kinds without a
// rule set pass by default so unknown event types never block publishing.
type Gate struct {
	log   *slog.Logger
	rules map[events.Kind]Func
}

func NewGate(log *slog.Logger) *Gate {
	v := newValidator()

	structRule := func(event any) []string {
		return describe(v.Struct(event))
	}

	return &Gate{
		log: log,
		rules: map[events.Kind]Func{
			events.KindOrder:           structRule,
			events.KindEntityChange:    structRule,
			events.KindCustomerDeleted: structRule,
			events.KindBookDeleted:     structRule,
		},
	}
}

// Validate reports whether the event may be published. A failed validation
// never affects already-committed local state; callers simply skip the
// publish.
func (g *Gate) Validate(kind events.Kind, event any) (bool, []string) {
	rule, ok := g.rules[kind]
	if !ok {
		g.log.Warn("no validation rules for event kind, passing through",
			slog.String("kind", string(kind)))
		return true, nil
	}

	errs := rule(event)
	if len(errs) > 0 {
		g.log.Warn("event validation failed",
			slog.String("kind", string(kind)),
			slog.String("errors", strings.Join(errs, "; ")))
		return false, errs
	}

	return true, nil
}

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("order_number", func(fl validator.FieldLevel) bool {
		return orderNumberRe.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("not_future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.After(time.Now().Add(clockSkew))
	})

	_ = v.RegisterValidation("entity_type", func(fl validator.FieldLevel) bool {
		switch events.EntityType(fl.Field().String()) {
		case events.EntityCustomer, events.EntityBook, events.EntityOrder:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("action_type", func(fl validator.FieldLevel) bool {
		switch events.Action(fl.Field().String()) {
		case events.ActionCreated, events.ActionUpdated, events.ActionDeleted:
			return true
		}
		return false
	})

	return v
}

func describe(err error) []string {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s: failed rule '%s'", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg += fmt.Sprintf(" (%s)", fe.Param())
		}
		msgs = append(msgs, msg)
	}

	return msgs
}
