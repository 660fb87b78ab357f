package valueobject

import "regexp"

const PersonNameMaxLength = 100

var personNamePattern = regexp.MustCompile(`^[\p{L}\p{M}][\p{L}\p{M} .'\-]*$`)

// PersonName は氏名（名・姓）を表す値オブジェクトです
type PersonName struct {
	BoundedString
}

// NewPersonName は文字列からPersonNameを生成します
func NewPersonName(field, raw string) (PersonName, error) {
	b, err := NewBoundedString(raw, BoundedStringOptions{
		Field:     field,
		MinLength: 1,
		MaxLength: PersonNameMaxLength,
		Trim:      true,
		Pattern:   personNamePattern,
	})
	if err != nil {
		return PersonName{}, err
	}
	return PersonName{BoundedString: b}, nil
}

// Equals は等価性を判定します
func (p PersonName) Equals(other PersonName) bool {
	return p.value == other.value
}
