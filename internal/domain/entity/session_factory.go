package entity

import (
	"time"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// SessionFactory はセッション集約を生成します
type SessionFactory struct {
	clock     service.Clock
	tolerance time.Duration
}

// NewSessionFactory は新しいSessionFactoryを作成します
// toleranceが0以下の場合は既定の許容幅を使います
func NewSessionFactory(clock service.Clock, tolerance time.Duration) *SessionFactory {
	if tolerance <= 0 {
		tolerance = valueobject.DefaultCreatedAtTolerance
	}
	return &SessionFactory{clock: clock, tolerance: tolerance}
}

// NewQuickInput はNewQuickの入力を定義します
type NewQuickInput struct {
	SlpID     string
	StudentID string
	Seed      *int64
	Notes     *string
}

// NewQuick は新しいセッションを作成します
// SLPと生徒の同一性はここでは検証しません
func (f *SessionFactory) NewQuick(in NewQuickInput) (*Session, error) {
	slpID, err := valueobject.NewIdentifierFor("slpId", in.SlpID)
	if err != nil {
		return nil, err
	}
	studentID, err := valueobject.NewIdentifierFor("studentId", in.StudentID)
	if err != nil {
		return nil, err
	}

	seed := valueobject.RandomSeed()
	if in.Seed != nil {
		seed, err = valueobject.NewSeed(*in.Seed)
		if err != nil {
			return nil, err
		}
	}

	notes, err := valueobject.NormalizeNotes(in.Notes)
	if err != nil {
		return nil, err
	}

	now := f.now()
	createdAt, err := valueobject.NewCreatedAt(now, now, f.tolerance)
	if err != nil {
		return nil, err
	}

	return &Session{
		id:        valueobject.GenerateIdentifier(),
		isActive:  true,
		createdAt: createdAt,
		slpID:     slpID,
		studentID: studentID,
		seed:      seed,
		notes:     notes,
		trials:    []Trial{},
	}, nil
}

// FromPrimitives は永続化データからセッションを復元します
// 最初に見つかったエラーを返します
func (f *SessionFactory) FromPrimitives(p SessionPrimitives) (*Session, error) {
	id, err := valueobject.NewIdentifierFor("id", p.ID)
	if err != nil {
		return nil, err
	}
	slpID, err := valueobject.NewIdentifierFor("slpId", p.SlpID)
	if err != nil {
		return nil, err
	}
	studentID, err := valueobject.NewIdentifierFor("studentId", p.StudentID)
	if err != nil {
		return nil, err
	}
	seed, err := valueobject.NewSeed(p.Seed)
	if err != nil {
		return nil, err
	}

	now := f.now()
	createdAt, err := valueobject.NewCreatedAt(p.CreatedAt, now, f.tolerance)
	if err != nil {
		return nil, err
	}

	var finishedAt *valueobject.FinishedAt
	if p.FinishedAt != nil {
		fa, err := valueobject.NewFinishedAt(*p.FinishedAt, now)
		if err != nil {
			return nil, err
		}
		finishedAt = &fa
	}

	notes, err := valueobject.NormalizeNotes(p.Notes)
	if err != nil {
		return nil, err
	}

	trials := make([]Trial, len(p.Trials))
	for i, t := range p.Trials {
		trials[i] = NewTrial(t.Correct, t.TsEpochMs)
	}

	return &Session{
		id:         id,
		isActive:   p.IsActive,
		createdAt:  createdAt,
		slpID:      slpID,
		studentID:  studentID,
		seed:       seed,
		finishedAt: finishedAt,
		notes:      notes,
		trials:     trials,
	}, nil
}

// Now は注入されたClockの現在時刻を返します
func (f *SessionFactory) Now() time.Time {
	return f.now()
}

func (f *SessionFactory) now() time.Time {
	return valueobject.EpochMsToTime(f.clock.NowEpochMs())
}
