package entity

import (
	"time"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// User はSLP（teacher）または生徒のユーザーエンティティです
// ロールは生成時に固定されます
type User struct {
	id        valueobject.Identifier
	role      valueobject.UserRole
	firstName valueobject.PersonName
	lastName  valueobject.PersonName
	email     valueobject.Email
	isActive  bool
	createdAt time.Time
	slpID     *valueobject.Identifier
}

// UserProps はユーザー生成の入力を定義します
type UserProps struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	// SlpID は生徒の担当SLP（teacherでは無視されます）
	SlpID *string
}

// NewTeacher はSLPユーザーを作成します
func NewTeacher(props UserProps) (*User, error) {
	return newUser(valueobject.UserRoleTeacher, props)
}

// NewStudent は生徒ユーザーを作成します
func NewStudent(props UserProps) (*User, error) {
	return newUser(valueobject.UserRoleStudent, props)
}

// ReconstructUser は永続化データからユーザーを復元します
// 保存されたロールがexpectedと異なる場合はROLE_MISMATCHを返します
func ReconstructUser(expected valueobject.UserRole, storedRole string, props UserProps) (*User, error) {
	actual, err := valueobject.NewUserRole(storedRole)
	if err != nil {
		return nil, err
	}
	if actual != expected {
		return nil, apperror.NewRoleMismatchError(expected.String(), actual.String())
	}
	return newUser(actual, props)
}

// ReconstructAnyUser は保存されたロールのままユーザーを復元します
func ReconstructAnyUser(storedRole string, props UserProps) (*User, error) {
	role, err := valueobject.NewUserRole(storedRole)
	if err != nil {
		return nil, err
	}
	return newUser(role, props)
}

func newUser(role valueobject.UserRole, props UserProps) (*User, error) {
	id, err := valueobject.NewIdentifierFor("id", props.ID)
	if err != nil {
		return nil, err
	}
	firstName, err := valueobject.NewPersonName("firstName", props.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := valueobject.NewPersonName("lastName", props.LastName)
	if err != nil {
		return nil, err
	}
	email, err := valueobject.NewEmail(props.Email)
	if err != nil {
		return nil, err
	}

	u := &User{
		id:        id,
		role:      role,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		isActive:  props.IsActive,
		createdAt: props.CreatedAt.UTC(),
	}
	if role == valueobject.UserRoleStudent && props.SlpID != nil {
		slpID, err := valueobject.NewIdentifierFor("slpId", *props.SlpID)
		if err != nil {
			return nil, err
		}
		u.slpID = &slpID
	}
	return u, nil
}

// ID はユーザーIDを返します
func (u *User) ID() valueobject.Identifier { return u.id }

// Role はロールを返します
func (u *User) Role() valueobject.UserRole { return u.role }

// FirstName は名を返します
func (u *User) FirstName() valueobject.PersonName { return u.firstName }

// LastName は姓を返します
func (u *User) LastName() valueobject.PersonName { return u.lastName }

// FullName は「名 姓」形式の氏名を返します
func (u *User) FullName() string {
	return u.firstName.Value() + " " + u.lastName.Value()
}

// Email はメールアドレスを返します
func (u *User) Email() valueobject.Email { return u.email }

// IsActive はユーザーが有効かを返します
func (u *User) IsActive() bool { return u.isActive }

// CreatedAt は作成日時を返します
func (u *User) CreatedAt() time.Time { return u.createdAt }

// SlpID は生徒の担当SLPを返します（未設定・teacherはnil）
func (u *User) SlpID() *valueobject.Identifier {
	if u.slpID == nil {
		return nil
	}
	id := *u.slpID
	return &id
}

// IsTeacher はSLPかを判定します
func (u *User) IsTeacher() bool { return u.role == valueobject.UserRoleTeacher }

// IsStudent は生徒かを判定します
func (u *User) IsStudent() bool { return u.role == valueobject.UserRoleStudent }

// Props は永続化・キャッシュ用にユーザーの入力データを返します
func (u *User) Props() UserProps {
	p := UserProps{
		ID:        u.id.String(),
		FirstName: u.firstName.Value(),
		LastName:  u.lastName.Value(),
		Email:     u.email.String(),
		IsActive:  u.isActive,
		CreatedAt: u.createdAt,
	}
	if u.slpID != nil {
		s := u.slpID.String()
		p.SlpID = &s
	}
	return p
}
