package di

import (
	caseloadqry "github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/caseload/query"
	sessioncmd "github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/command"
	sessionqry "github.com/demianvselko/empatspeech-demo-sub000/internal/usecase/session/query"
)

// SessionUseCases はSession関連のUseCaseを保持します
type SessionUseCases struct {
	// Commands
	CreateSession *sessioncmd.CreateSessionCommand
	AppendTrial   *sessioncmd.AppendTrialCommand
	FinishSession *sessioncmd.FinishSessionCommand
	PatchNotes    *sessioncmd.PatchNotesCommand

	// Queries
	GetSession        *sessionqry.GetSessionQuery
	GetSessionSummary *sessionqry.GetSessionSummaryQuery
}

// NewSessionUseCases は新しいSessionUseCasesを作成します
func NewSessionUseCases(c *Container) *SessionUseCases {
	return &SessionUseCases{
		CreateSession: sessioncmd.NewCreateSessionCommand(c.SessionRepo, c.Factory, c.Publisher),
		AppendTrial:   sessioncmd.NewAppendTrialCommand(c.SessionRepo, c.TxManager, c.Clock, c.Publisher),
		FinishSession: sessioncmd.NewFinishSessionCommand(c.SessionRepo, c.TxManager, c.Clock, c.Publisher),
		PatchNotes:    sessioncmd.NewPatchNotesCommand(c.SessionRepo, c.TxManager),

		GetSession:        sessionqry.NewGetSessionQuery(c.SessionRepo),
		GetSessionSummary: sessionqry.NewGetSessionSummaryQuery(c.SessionRepo),
	}
}

// CaseloadUseCases はCaseload関連のUseCaseを保持します
type CaseloadUseCases struct {
	GetStudentProfile *caseloadqry.GetStudentProfileQuery
	ListCaseload      *caseloadqry.ListCaseloadQuery
}

// NewCaseloadUseCases は新しいCaseloadUseCasesを作成します
func NewCaseloadUseCases(c *Container) *CaseloadUseCases {
	return &CaseloadUseCases{
		GetStudentProfile: caseloadqry.NewGetStudentProfileQuery(c.SessionRepo, c.UserRepo),
		ListCaseload:      caseloadqry.NewListCaseloadQuery(c.UserRepo),
	}
}
