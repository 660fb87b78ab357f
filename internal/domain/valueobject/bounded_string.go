package valueobject

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// CaseMode は正規化時の大文字小文字変換を表します
type CaseMode int

const (
	CaseNone CaseMode = iota
	CaseLower
	CaseUpper
)

// BoundedStringOptions はBoundedStringの制約を定義します
type BoundedStringOptions struct {
	Field     string
	MinLength int // ルーン数
	MaxLength int // ルーン数（0は無制限）
	Trim      bool
	Case      CaseMode
	Pattern   *regexp.Regexp
}

// BoundedString は長さとパターンで制約された文字列の値オブジェクトです
type BoundedString struct {
	value string
}

// NewBoundedString は正規化した上で制約を検証します
func NewBoundedString(raw string, opts BoundedStringOptions) (BoundedString, error) {
	v := raw
	if opts.Trim {
		v = strings.TrimSpace(v)
	}
	switch opts.Case {
	case CaseLower:
		v = strings.ToLower(v)
	case CaseUpper:
		v = strings.ToUpper(v)
	}

	field := opts.Field
	if field == "" {
		field = "value"
	}

	length := utf8.RuneCountInString(v)
	if length < opts.MinLength {
		return BoundedString{}, invalid(field, CodeStringTooShort,
			fmt.Sprintf("%s must be at least %d characters", field, opts.MinLength),
			map[string]any{"min": opts.MinLength, "length": length})
	}
	if opts.MaxLength > 0 && length > opts.MaxLength {
		return BoundedString{}, invalid(field, CodeStringTooLong,
			fmt.Sprintf("%s must be at most %d characters", field, opts.MaxLength),
			map[string]any{"max": opts.MaxLength, "length": length})
	}
	if opts.Pattern != nil && v != "" && !opts.Pattern.MatchString(v) {
		return BoundedString{}, invalid(field, CodeStringPatternMismatch,
			fmt.Sprintf("%s has an invalid format", field), nil)
	}

	return BoundedString{value: v}, nil
}

// Value は値を返します
func (b BoundedString) Value() string {
	return b.value
}

// String は文字列を返します
func (b BoundedString) String() string {
	return b.value
}

// IsEmpty は空かどうかを判定します
func (b BoundedString) IsEmpty() bool {
	return b.value == ""
}
