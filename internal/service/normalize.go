package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/errs"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/server"
	"github.com/rs/zerolog"
)

// requireName trims name; a name that is blank after trimming is rejected.
func requireName(entity, field, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errs.NewValidationError(entity, field, "is required")
	}
	return trimmed, nil
}

// trimOptionalName is requireName for sparse updates; nil stays nil.
func trimOptionalName(entity, field string, name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}
	trimmed, err := requireName(entity, field, *name)
	if err != nil {
		return nil, err
	}
	return &trimmed, nil
}

// requireParentID rejects a missing or non-positive parent reference.
func requireParentID(entity, field string, id *int64) error {
	if id == nil || *id < 1 {
		return errs.NewValidationError(entity, field, "must be at least 1")
	}
	return nil
}

func optionalParentID(entity, field string, id *int64) error {
	if id == nil {
		return nil
	}
	return requireParentID(entity, field, id)
}

type parentRef struct {
	field string
	id    *int64
}

// checkParents validates parent references in order, reporting the first
// bad one. Optional references may be nil.
func checkParents(entity string, required bool, refs ...parentRef) error {
	for _, ref := range refs {
		check := optionalParentID
		if required {
			check = requireParentID
		}
		if err := check(entity, ref.field, ref.id); err != nil {
			return err
		}
	}
	return nil
}

// orderedBounds swaps a min/max pair given the wrong way round.
func orderedBounds(lo, hi *int64) (*int64, *int64) {
	if lo != nil && hi != nil && *hi < *lo {
		return hi, lo
	}
	return lo, hi
}

// searchTerm drops blank free-text filters.
func searchTerm(term *string) *string {
	t, ok := db.SearchTerm(term)
	if !ok {
		return nil
	}
	return &t
}

func upperLevel(l quiz.Level) quiz.Level {
	return quiz.Level(strings.ToUpper(strings.TrimSpace(string(l))))
}

func upperLevelPtr(l *quiz.Level) *quiz.Level {
	if l == nil {
		return nil
	}
	u := upperLevel(*l)
	return &u
}

// found turns an absent record into a 404.
func found[T any](entity string, id int64, v *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		code := strings.ToUpper(entity) + "_NOT_FOUND"
		return nil, errs.NewNotFoundError(fmt.Sprintf("%s %d not found", entity, id), true, &code)
	}
	return v, nil
}

// loggerFor prefers the request logger carried by ctx.
func loggerFor(ctx context.Context, s *server.Server) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	if s != nil && s.Logger != nil {
		return s.Logger
	}
	nop := zerolog.Nop()
	return &nop
}
