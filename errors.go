// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Kind classifies a contract failure.
type Kind uint8

const (
	KindTypeMismatch Kind = iota + 1
	KindRangeMismatch
	KindArityMismatch
	KindTagOutOfRange
	KindUnknownTag
	KindPullbackMismatch
	KindUnionExhausted
	KindConstruction
)

// Sentinel errors, one per Kind. A *ValidationError matches the sentinel of
// its Kind under errors.Is.
var (
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrRangeMismatch    = errors.New("range mismatch")
	ErrArityMismatch    = errors.New("arity mismatch")
	ErrTagOutOfRange    = errors.New("tag out of range")
	ErrUnknownTag       = errors.New("unknown tag")
	ErrPullbackMismatch = errors.New("pullback mismatch")
	ErrUnionExhausted   = errors.New("no match")
	ErrConstruction     = errors.New("malformed contract")
)

func (k Kind) sentinel() error {
	switch k {
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindRangeMismatch:
		return ErrRangeMismatch
	case KindArityMismatch:
		return ErrArityMismatch
	case KindTagOutOfRange:
		return ErrTagOutOfRange
	case KindUnknownTag:
		return ErrUnknownTag
	case KindPullbackMismatch:
		return ErrPullbackMismatch
	case KindUnionExhausted:
		return ErrUnionExhausted
	case KindConstruction:
		return ErrConstruction
	}
	return nil
}

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ValidationError is the failure raised by every contract in this package.
//
// Container combinators prefix Path with the location of the failing
// component (an index "[i]" or a key ".name"); the Kind, Expected and
// Actual fields are those of the innermost failure.
type ValidationError struct {
	Kind     Kind
	Expected string
	Actual   any

	// Position is the offending position of a PullbackMismatch.
	Position int

	// Path locates the failure inside the validated value.
	Path []string

	// Alternatives holds one failure per member of an exhausted Union.
	Alternatives *multierror.Error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("contract: ")
	if len(e.Path) > 0 {
		b.WriteString(strings.Join(e.Path, ""))
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	switch e.Kind {
	case KindUnionExhausted:
		if e.Alternatives != nil && len(e.Alternatives.Errors) > 0 {
			b.WriteString(" (")
			b.WriteString(e.Alternatives.Error())
			b.WriteString(")")
		}
		return b.String()
	case KindPullbackMismatch:
		fmt.Fprintf(&b, " at position %d", e.Position)
	}
	fmt.Fprintf(&b, ": expected %s, got %s", e.Expected, describe(e.Actual))
	return b.String()
}

// Is reports whether target is the sentinel of e's Kind.
func (e *ValidationError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func describe(v any) string {
	if v == nil {
		return "undefined"
	}
	s := fmt.Sprintf("%#v", v)
	if utf8.RuneCountInString(s) > 64 {
		s = string([]rune(s)[:61]) + "..."
	}
	return TypeOf(v) + " " + s
}

func mismatch(kind Kind, expected string, actual any) *ValidationError {
	return &ValidationError{Kind: kind, Expected: expected, Actual: actual}
}

func typeMismatch(expected string, actual any) *ValidationError {
	return mismatch(KindTypeMismatch, expected, actual)
}

// annotate prefixes the path of a *ValidationError with seg.
// Other errors pass through untouched.
func annotate(err error, seg string) error {
	ve, ok := err.(*ValidationError)
	if !ok {
		return err
	}
	c := *ve
	c.Path = slices.Concat([]string{seg}, ve.Path)
	return &c
}

func constructionErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrConstruction, format, args...)
}

// alternativesFormat renders union member failures on a single line.
func alternativesFormat(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = fmt.Sprintf("#%d: %v", i, err)
	}
	return strings.Join(parts, "; ")
}
