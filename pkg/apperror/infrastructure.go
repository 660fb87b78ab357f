package apperror

import "net/http"

// InfraKind はストレージ層のエラー種別を表します
// ユースケースはストア固有のエラー形状を見ることはありません
type InfraKind string

const (
	InfraDuplicateKey InfraKind = "INFRA_DUPLICATE_KEY"
	InfraCast         InfraKind = "INFRA_CAST"
	InfraValidation   InfraKind = "INFRA_VALIDATION"
	InfraTimeout      InfraKind = "INFRA_TIMEOUT"
	InfraConnection   InfraKind = "INFRA_CONNECTION"
	InfraUnknown      InfraKind = "INFRA_UNKNOWN"
)

// infraStatus は種別ごとのHTTPステータス
var infraStatus = map[InfraKind]int{
	InfraDuplicateKey: http.StatusConflict,
	InfraCast:         http.StatusBadRequest,
	InfraValidation:   http.StatusUnprocessableEntity,
	InfraTimeout:      http.StatusGatewayTimeout,
	InfraConnection:   http.StatusServiceUnavailable,
	InfraUnknown:      http.StatusInternalServerError,
}

// NewInfrastructureError はインフラエラーを作成します
func NewInfrastructureError(kind InfraKind, message string, err error) *AppError {
	status, ok := infraStatus[kind]
	if !ok {
		kind = InfraUnknown
		status = http.StatusInternalServerError
	}
	return &AppError{
		Code:       ErrorCode(kind),
		Message:    message,
		HTTPStatus: status,
		Err:        err,
	}
}

// IsInfrastructure はインフラエラーかどうかを判定します
func IsInfrastructure(err error) bool {
	_, ok := infraStatus[InfraKind(CodeOf(err))]
	return ok
}
