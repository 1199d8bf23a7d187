package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/match-bet-settlement/internal/match-service/match"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) InsertTeam(ctx context.Context, t match.Team) (match.Team, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(match.Team), args.Error(1)
}

func (m *mockRepo) FindTeam(ctx context.Context, id int64) (match.Team, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(match.Team), args.Bool(1), args.Error(2)
}

func (m *mockRepo) ListTeams(ctx context.Context, state string) ([]match.Team, error) {
	args := m.Called(ctx, state)
	return args.Get(0).([]match.Team), args.Error(1)
}

func (m *mockRepo) InsertMatch(ctx context.Context, mt match.Match) (match.Match, error) {
	args := m.Called(ctx, mt)
	return args.Get(0).(match.Match), args.Error(1)
}

func (m *mockRepo) UpdateMatch(ctx context.Context, mt match.Match) error {
	return m.Called(ctx, mt).Error(0)
}

func (m *mockRepo) FindMatch(ctx context.Context, id int64) (match.Match, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(match.Match), args.Bool(1), args.Error(2)
}

func (m *mockRepo) ListMatches(ctx context.Context, homeIdentifier string) ([]match.Match, error) {
	args := m.Called(ctx, homeIdentifier)
	return args.Get(0).([]match.Match), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishMatchUpdated(ctx context.Context, mt match.Match) error {
	return m.Called(ctx, mt).Error(0)
}

var now = time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)

var (
	home = match.Team{ID: 1, Name: "Time Mandante", Identifier: "mandante-1", State: "SP"}
	away = match.Team{ID: 2, Name: "Time Visitante", Identifier: "visitante-1", State: "RJ"}
)

func newService(repo *mockRepo, publ *mockPublisher) *Service {
	var p Publisher
	if publ != nil {
		p = publ
	}
	return New(zap.NewNop(), repo, p, clockwork.NewFakeClockAt(now))
}

func TestRegisterTeam(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo, nil)
	in := match.Team{Name: "Time A", Identifier: "TA123", Stadium: "Estadio A", State: "SP"}
	saved := in
	saved.ID = 1
	repo.On("InsertTeam", mock.Anything, in).Return(saved, nil).Once()

	got, err := svc.RegisterTeam(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Time A", got.Name)
	assert.Equal(t, int64(1), got.ID)
	repo.AssertExpectations(t)
}

func TestRegisterTeam_InvalidData(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo, nil)

	_, err := svc.RegisterTeam(context.Background(), match.Team{Stadium: "Estadio A", State: "SP"})
	require.ErrorIs(t, err, match.ErrInvalidTeam)
	repo.AssertNotCalled(t, "InsertTeam", mock.Anything, mock.Anything)
}

func TestListTeams(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo, nil)
	repo.On("ListTeams", mock.Anything, "").Return([]match.Team{}, nil)
	repo.On("ListTeams", mock.Anything, "SP").Return([]match.Team{home}, nil)

	all, err := svc.ListTeams(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, all)

	sp, err := svc.ListTeams(context.Background(), "SP")
	require.NoError(t, err)
	require.Len(t, sp, 1)
	assert.Equal(t, "mandante-1", sp[0].Identifier)
}

func TestGetTeam(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo, nil)
	repo.On("FindTeam", mock.Anything, int64(1)).Return(home, true, nil)
	repo.On("FindTeam", mock.Anything, int64(9)).Return(match.Team{}, false, nil)

	got, err := svc.GetTeam(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "SP", got.State)

	_, err = svc.GetTeam(context.Background(), 9)
	assert.ErrorIs(t, err, match.ErrTeamNotFound)
}

func TestScheduleMatch(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo, nil)
	repo.On("FindTeam", mock.Anything, int64(1)).Return(home, true, nil)
	repo.On("FindTeam", mock.Anything, int64(2)).Return(away, true, nil)
	repo.On("InsertMatch", mock.Anything, mock.MatchedBy(func(m match.Match) bool {
		return m.Status == match.StatusScheduled && m.HomeScore == nil && m.UpdatedAt.Equal(now)
	})).Return(match.Match{ID: 10, Home: home, Away: away, Status: match.StatusScheduled, UpdatedAt: now}, nil)

	got, err := svc.ScheduleMatch(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, match.StatusScheduled, got.Status)
	assert.Equal(t, "Time Mandante", got.Home.Name)
	assert.Equal(t, "Time Visitante", got.Away.Name)
}

func TestScheduleMatch_Invalid(t *testing.T) {
	t.Run("unknown team", func(t *testing.T) {
		repo := &mockRepo{}
		svc := newService(repo, nil)
		repo.On("FindTeam", mock.Anything, int64(1)).Return(home, true, nil)
		repo.On("FindTeam", mock.Anything, int64(5)).Return(match.Team{}, false, nil)

		_, err := svc.ScheduleMatch(context.Background(), 1, 5)
		require.ErrorIs(t, err, match.ErrTeamNotFound)
		repo.AssertNotCalled(t, "InsertMatch", mock.Anything, mock.Anything)
	})

	t.Run("same team", func(t *testing.T) {
		repo := &mockRepo{}
		svc := newService(repo, nil)
		repo.On("FindTeam", mock.Anything, int64(1)).Return(home, true, nil)

		_, err := svc.ScheduleMatch(context.Background(), 1, 1)
		require.ErrorIs(t, err, match.ErrInvalidMatch)
		repo.AssertNotCalled(t, "InsertMatch", mock.Anything, mock.Anything)
	})
}

func TestListMatches(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo, nil)
	scheduled := match.Match{ID: 1, Home: home, Away: away, Status: match.StatusScheduled}
	repo.On("ListMatches", mock.Anything, "").Return([]match.Match{scheduled}, nil).Once()
	repo.On("ListMatches", mock.Anything, "mandante-1").Return([]match.Match{scheduled}, nil).Once()

	all, err := svc.ListMatches(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Time Mandante", all[0].Home.Name)

	filtered, err := svc.ListMatches(context.Background(), "mandante-1")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
	repo.AssertExpectations(t)
}

func TestGetMatch(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo, nil)
	repo.On("FindMatch", mock.Anything, int64(1)).Return(match.Match{ID: 1, Home: home, Away: away}, true, nil)
	repo.On("FindMatch", mock.Anything, int64(2)).Return(match.Match{}, false, nil)

	got, err := svc.GetMatch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Time Visitante", got.Away.Name)

	_, err = svc.GetMatch(context.Background(), 2)
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
}

func TestEditMatch(t *testing.T) {
	repo, publ := &mockRepo{}, &mockPublisher{}
	svc := newService(repo, publ)
	repo.On("FindMatch", mock.Anything, int64(1)).
		Return(match.Match{ID: 1, Home: home, Away: away, Status: match.StatusScheduled}, true, nil)
	repo.On("UpdateMatch", mock.Anything, mock.MatchedBy(func(m match.Match) bool {
		return m.Status == match.StatusPlayed && *m.HomeScore == 2 && *m.AwayScore == 3
	})).Return(nil).Once()
	publ.On("PublishMatchUpdated", mock.Anything, mock.MatchedBy(func(m match.Match) bool {
		return m.ID == 1 && m.Status == match.StatusPlayed
	})).Return(nil).Once()

	got, err := svc.EditMatch(context.Background(), 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, *got.HomeScore)
	assert.Equal(t, 3, *got.AwayScore)
	assert.Equal(t, match.StatusPlayed, got.Status)
	assert.Equal(t, now, got.UpdatedAt)
	repo.AssertExpectations(t)
	publ.AssertExpectations(t)
}

func TestEditMatch_NotFound(t *testing.T) {
	repo, publ := &mockRepo{}, &mockPublisher{}
	svc := newService(repo, publ)
	repo.On("FindMatch", mock.Anything, int64(1)).Return(match.Match{}, false, nil)

	_, err := svc.EditMatch(context.Background(), 1, 0, 0)
	require.ErrorIs(t, err, match.ErrMatchNotFound)
	repo.AssertNotCalled(t, "UpdateMatch", mock.Anything, mock.Anything)
	publ.AssertNotCalled(t, "PublishMatchUpdated", mock.Anything, mock.Anything)
}

func TestEditMatch_PublishFailureIsIgnored(t *testing.T) {
	repo, publ := &mockRepo{}, &mockPublisher{}
	svc := newService(repo, publ)
	repo.On("FindMatch", mock.Anything, int64(1)).
		Return(match.Match{ID: 1, Status: match.StatusScheduled}, true, nil)
	repo.On("UpdateMatch", mock.Anything, mock.Anything).Return(nil)
	publ.On("PublishMatchUpdated", mock.Anything, mock.Anything).Return(errors.New("kafka down"))

	got, err := svc.EditMatch(context.Background(), 1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, match.StatusPlayed, got.Status)
}

func TestCancelMatch(t *testing.T) {
	repo, publ := &mockRepo{}, &mockPublisher{}
	svc := newService(repo, publ)
	repo.On("FindMatch", mock.Anything, int64(1)).
		Return(match.Match{ID: 1, Status: match.StatusScheduled}, true, nil)
	repo.On("UpdateMatch", mock.Anything, mock.MatchedBy(func(m match.Match) bool {
		return m.Status == match.StatusCancelled
	})).Return(nil)
	publ.On("PublishMatchUpdated", mock.Anything, mock.Anything).Return(nil)

	got, err := svc.CancelMatch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, match.StatusCancelled, got.Status)
	publ.AssertNumberOfCalls(t, "PublishMatchUpdated", 1)
}

func TestCancelMatch_AlreadyPlayed(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo, nil)
	h, a := 1, 0
	repo.On("FindMatch", mock.Anything, int64(1)).
		Return(match.Match{ID: 1, Status: match.StatusPlayed, HomeScore: &h, AwayScore: &a}, true, nil)

	_, err := svc.CancelMatch(context.Background(), 1)
	require.ErrorIs(t, err, match.ErrInvalidMatch)
	repo.AssertNotCalled(t, "UpdateMatch", mock.Anything, mock.Anything)
}
