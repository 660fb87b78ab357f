package query

import (
	"context"
	"sort"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// ListCaseloadInput は担当生徒一覧取得の入力を定義します
type ListCaseloadInput struct {
	SlpID string
}

// CaseloadStudent は担当生徒の射影です
type CaseloadStudent struct {
	ID       string
	FullName string
	Email    string
	Active   bool
}

// ListCaseloadOutput は担当生徒一覧取得の出力を定義します
type ListCaseloadOutput struct {
	SlpID    string
	Students []CaseloadStudent
}

// ListCaseloadQuery は担当生徒一覧取得クエリです
type ListCaseloadQuery struct {
	userRepo repository.UserRepository
}

// NewListCaseloadQuery は新しいListCaseloadQueryを作成します
func NewListCaseloadQuery(userRepo repository.UserRepository) *ListCaseloadQuery {
	return &ListCaseloadQuery{userRepo: userRepo}
}

// Execute は担当生徒一覧取得を実行します
// 無効化された生徒は含めません
func (q *ListCaseloadQuery) Execute(ctx context.Context, input ListCaseloadInput) (*ListCaseloadOutput, error) {
	slpID, err := valueobject.NewIdentifierFor("slpId", input.SlpID)
	if err != nil {
		return nil, err
	}

	users, err := q.userRepo.FindStudentsBySlp(ctx, slpID)
	if err != nil {
		return nil, err
	}

	students := make([]CaseloadStudent, 0, len(users))
	for _, u := range users {
		if !u.IsActive() || !u.IsStudent() {
			continue
		}
		students = append(students, CaseloadStudent{
			ID:       u.ID().String(),
			FullName: u.FullName(),
			Email:    u.Email().String(),
			Active:   u.IsActive(),
		})
	}

	sort.SliceStable(students, func(i, j int) bool {
		return students[i].FullName < students[j].FullName
	})

	return &ListCaseloadOutput{
		SlpID:    slpID.String(),
		Students: students,
	}, nil
}
