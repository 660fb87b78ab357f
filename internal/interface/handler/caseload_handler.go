package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/dto/request"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/dto/response"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/middleware"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/presenter"
	caseloadqry "github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/caseload/query"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// CaseloadHandler は生徒とSLPの担当関係に関するHTTPハンドラーです
type CaseloadHandler struct {
	getStudentProfileQuery *caseloadqry.GetStudentProfileQuery
	listCaseloadQuery      *caseloadqry.ListCaseloadQuery
}

// NewCaseloadHandler は新しいCaseloadHandlerを作成します
func NewCaseloadHandler(
	getStudentProfileQuery *caseloadqry.GetStudentProfileQuery,
	listCaseloadQuery *caseloadqry.ListCaseloadQuery,
) *CaseloadHandler {
	return &CaseloadHandler{
		getStudentProfileQuery: getStudentProfileQuery,
		listCaseloadQuery:      listCaseloadQuery,
	}
}

// GetStudentProfile は生徒の直近セッションと累計成績を取得します
// GET /api/v1/students/:id/profile?limit=
func (h *CaseloadHandler) GetStudentProfile(c echo.Context) error {
	var req request.StudentProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewFieldValidationError("limit", "INVALID_VALUE", "limit must be an integer")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.getStudentProfileQuery.Execute(c.Request().Context(), caseloadqry.GetStudentProfileInput{
		StudentID: c.Param("id"),
		Limit:     req.Limit,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToStudentProfileResponse(output))
}

// ListCaseload はSLPの担当生徒一覧を取得します
// GET /api/v1/slp/:id/caseload
func (h *CaseloadHandler) ListCaseload(c echo.Context) error {
	slpID := c.Param("id")
	if err := middleware.RequireActor(c, slpID); err != nil {
		return err
	}

	output, err := h.listCaseloadQuery.Execute(c.Request().Context(), caseloadqry.ListCaseloadInput{
		SlpID: slpID,
	})
	if err != nil {
		return err
	}

	res := response.ToCaseloadResponse(output)
	return presenter.List(c, res, len(res.Students))
}
