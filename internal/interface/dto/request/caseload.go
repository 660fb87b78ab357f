package request

// StudentProfileRequest は生徒プロフィール取得リクエストです
type StudentProfileRequest struct {
	Limit int `query:"limit" validate:"gte=0"`
}
