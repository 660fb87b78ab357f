package valueobject

import (
	"strings"

	"github.com/google/uuid"
)

// Identifier はv4形式のUUIDを表す値オブジェクトです
type Identifier struct {
	value uuid.UUID
}

// NewIdentifier は文字列からIdentifierを生成します
// 正規形（ハイフン区切り36文字）かつバージョン4のみを受け付けます
func NewIdentifier(raw string) (Identifier, error) {
	return NewIdentifierFor("id", raw)
}

// NewIdentifierFor はフィールド名を指定してIdentifierを生成します
func NewIdentifierFor(field, raw string) (Identifier, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != 36 {
		return Identifier{}, invalid(field, CodeInvalidIdentifier, field+" must be a valid uuid v4", map[string]any{"value": raw})
	}

	id, err := uuid.Parse(trimmed)
	if err != nil || id.Version() != 4 || id.Variant() != uuid.RFC4122 {
		return Identifier{}, invalid(field, CodeInvalidIdentifier, field+" must be a valid uuid v4", map[string]any{"value": raw})
	}

	return Identifier{value: id}, nil
}

// GenerateIdentifier は新しいIdentifierを生成します
func GenerateIdentifier() Identifier {
	return Identifier{value: uuid.New()}
}

// IdentifierFromUUID はUUIDからIdentifierを生成します
func IdentifierFromUUID(id uuid.UUID) (Identifier, error) {
	return NewIdentifier(id.String())
}

// MustIdentifier はテストと初期化用のヘルパーです。不正な値ではpanicします
func MustIdentifier(raw string) Identifier {
	id, err := NewIdentifier(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// UUID は内部のUUIDを返します
func (i Identifier) UUID() uuid.UUID {
	return i.value
}

// String は文字列を返します
func (i Identifier) String() string {
	return i.value.String()
}

// IsZero はゼロ値かどうかを判定します
func (i Identifier) IsZero() bool {
	return i.value == uuid.Nil
}

// Equals は等価性を判定します
func (i Identifier) Equals(other Identifier) bool {
	return i.value == other.value
}
