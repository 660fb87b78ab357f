package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// LiveState はライブセッションの手番とマッチ済みカードをプロセス内に保持します
// ルームが空になっても状態は残り、再参加時に続きから再開できます
type LiveState struct {
	mu      sync.Mutex
	turns   map[string]valueobject.TurnRole
	matched map[string]map[string]struct{}
}

var _ repository.LiveStateRepository = (*LiveState)(nil)

// NewLiveState は新しいLiveStateを作成します
func NewLiveState() *LiveState {
	return &LiveState{
		turns:   make(map[string]valueobject.TurnRole),
		matched: make(map[string]map[string]struct{}),
	}
}

// Turn は現在の手番を返します
func (s *LiveState) Turn(_ context.Context, sessionID string) (valueobject.TurnRole, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turn, ok := s.turns[sessionID]
	return turn, ok, nil
}

// SetTurn は手番を設定します
func (s *LiveState) SetTurn(_ context.Context, sessionID string, turn valueobject.TurnRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[sessionID] = turn
	return nil
}

// InitTurn は手番が未設定の場合のみ設定します
func (s *LiveState) InitTurn(_ context.Context, sessionID string, turn valueobject.TurnRole) (valueobject.TurnRole, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.turns[sessionID]; ok {
		return current, nil
	}
	s.turns[sessionID] = turn
	return turn, nil
}

// AddMatchedCards はマッチ済みカードを追加します
func (s *LiveState) AddMatchedCards(_ context.Context, sessionID string, cards ...string) error {
	if len(cards) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.matched[sessionID]
	if !ok {
		set = make(map[string]struct{}, len(cards))
		s.matched[sessionID] = set
	}
	for _, c := range cards {
		set[c] = struct{}{}
	}
	return nil
}

// MatchedCards はマッチ済みカードをソート済みで返します
func (s *LiveState) MatchedCards(_ context.Context, sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.matched[sessionID]
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	slices.Sort(out)
	return out, nil
}
