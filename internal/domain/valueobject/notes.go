package valueobject

const NotesMaxLength = 2000

var notesOptions = BoundedStringOptions{
	Field:     "notes",
	MinLength: 0,
	MaxLength: NotesMaxLength,
	Trim:      true,
}

// Notes はセッションの自由記述メモを表す値オブジェクトです
type Notes struct {
	BoundedString
}

// NewNotes は文字列からNotesを生成します
// 空白のみの入力は空のNotesになります。呼び出し側は IsEmpty で「クリア」を判定してください
func NewNotes(raw string) (Notes, error) {
	b, err := NewBoundedString(raw, notesOptions)
	if err != nil {
		return Notes{}, err
	}
	return Notes{BoundedString: b}, nil
}

// NormalizeNotes は任意入力のメモを正規化します
// nil・空白のみはnil（クリア）、それ以外は検証済みの値を返します
func NormalizeNotes(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	n, err := NewNotes(*raw)
	if err != nil {
		return nil, err
	}
	if n.IsEmpty() {
		return nil, nil
	}
	v := n.Value()
	return &v, nil
}
