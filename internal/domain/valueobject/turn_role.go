package valueobject

// TurnRole はセッション内の参加者ロール（手番の持ち主）を表します
type TurnRole string

const (
	TurnSLP     TurnRole = "slp"
	TurnStudent TurnRole = "student"
)

// ParseTurnRole は文字列からTurnRoleを生成します
func ParseTurnRole(s string) (TurnRole, bool) {
	r := TurnRole(s)
	return r, r.IsValid()
}

// IsValid はロールが有効かを判定します
func (r TurnRole) IsValid() bool {
	return r == TurnSLP || r == TurnStudent
}

// Other はもう一方の参加者ロールを返します
func (r TurnRole) Other() TurnRole {
	if r == TurnSLP {
		return TurnStudent
	}
	return TurnSLP
}

// String は文字列を返します
func (r TurnRole) String() string {
	return string(r)
}
