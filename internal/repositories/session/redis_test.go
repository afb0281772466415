package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newSession(id string, startedAt time.Time) *models.Session {
	return &models.Session{
		ID:        id,
		SiteID:    "site-1",
		OwnerID:   "owner-1",
		Label:     "spring batch",
		StartedAt: startedAt,
		Active:    true,
	}
}

func (s *RedisRepositoryTestSuite) TestOpenAndGet() {
	sess := s.newSession("sess-1", s.testNow)

	opened, err := s.repo.OpenExclusive(context.Background(), &OpenExclusiveInput{Session: sess})
	s.Require().NoError(err)
	s.Equal("sess-1", opened.ID)

	retrieved, err := s.repo.Get(context.Background(), &GetInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal("sess-1", retrieved.ID)
	s.Equal("site-1", retrieved.SiteID)
	s.Equal("owner-1", retrieved.OwnerID)
	s.Equal("spring batch", retrieved.Label)
	s.True(retrieved.Active)
	s.Nil(retrieved.EndedAt)
	s.Equal(s.testNow.Unix(), retrieved.StartedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(context.Background(), &GetInput{SessionID: "missing"})
	s.Require().Error(err)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestOpenSupersedesPreviousSession() {
	first := s.newSession("sess-1", s.testNow)
	_, err := s.repo.OpenExclusive(context.Background(), &OpenExclusiveInput{Session: first})
	s.Require().NoError(err)

	second := s.newSession("sess-2", s.testNow.Add(time.Hour))
	_, err = s.repo.OpenExclusive(context.Background(), &OpenExclusiveInput{Session: second})
	s.Require().NoError(err)

	// The first session is observably closed with EndedAt set to the
	// second session's start.
	old, err := s.repo.Get(context.Background(), &GetInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.False(old.Active)
	s.Require().NotNil(old.EndedAt)
	s.Equal(second.StartedAt.Unix(), old.EndedAt.Unix())

	// Only the second session is active for the site
	active, err := s.repo.GetActiveBySite(context.Background(), &GetActiveBySiteInput{SiteID: "site-1"})
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal("sess-2", active.ID)
	s.True(active.Active)
}

func (s *RedisRepositoryTestSuite) TestGetActiveBySiteNone() {
	active, err := s.repo.GetActiveBySite(context.Background(), &GetActiveBySiteInput{SiteID: "site-1"})
	s.Require().NoError(err)
	s.Nil(active)
}

func (s *RedisRepositoryTestSuite) TestClose() {
	sess := s.newSession("sess-1", s.testNow)
	_, err := s.repo.OpenExclusive(context.Background(), &OpenExclusiveInput{Session: sess})
	s.Require().NoError(err)

	endedAt := s.testNow.Add(48 * time.Hour)
	closed, err := s.repo.Close(context.Background(), &CloseInput{
		SessionID: "sess-1",
		EndedAt:   endedAt,
	})
	s.Require().NoError(err)
	s.False(closed.Active)
	s.Require().NotNil(closed.EndedAt)
	s.Equal(endedAt.Unix(), closed.EndedAt.Unix())

	// Site no longer has an active session
	active, err := s.repo.GetActiveBySite(context.Background(), &GetActiveBySiteInput{SiteID: "site-1"})
	s.Require().NoError(err)
	s.Nil(active)
}

func (s *RedisRepositoryTestSuite) TestCloseAlreadyClosed() {
	sess := s.newSession("sess-1", s.testNow)
	_, err := s.repo.OpenExclusive(context.Background(), &OpenExclusiveInput{Session: sess})
	s.Require().NoError(err)

	_, err = s.repo.Close(context.Background(), &CloseInput{
		SessionID: "sess-1",
		EndedAt:   s.testNow.Add(time.Hour),
	})
	s.Require().NoError(err)

	_, err = s.repo.Close(context.Background(), &CloseInput{
		SessionID: "sess-1",
		EndedAt:   s.testNow.Add(2 * time.Hour),
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrSessionClosed)
}

func (s *RedisRepositoryTestSuite) TestCloseNotFound() {
	_, err := s.repo.Close(context.Background(), &CloseInput{
		SessionID: "missing",
		EndedAt:   s.testNow,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestListByOwnerWindow() {
	early := s.newSession("sess-early", s.testNow.AddDate(0, -2, 0))
	_, err := s.repo.OpenExclusive(context.Background(), &OpenExclusiveInput{Session: early})
	s.Require().NoError(err)

	inWindow := s.newSession("sess-in", s.testNow)
	inWindow.SiteID = "site-2"
	_, err = s.repo.OpenExclusive(context.Background(), &OpenExclusiveInput{Session: inWindow})
	s.Require().NoError(err)

	late := s.newSession("sess-late", s.testNow.AddDate(0, 2, 0))
	late.SiteID = "site-3"
	_, err = s.repo.OpenExclusive(context.Background(), &OpenExclusiveInput{Session: late})
	s.Require().NoError(err)

	sessions, err := s.repo.ListByOwner(context.Background(), &ListByOwnerInput{
		OwnerID: "owner-1",
		From:    s.testNow.AddDate(0, -1, 0),
		To:      s.testNow.AddDate(0, 1, 0),
	})
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal("sess-in", sessions[0].ID)
}

func (s *RedisRepositoryTestSuite) TestListByOwnerEmpty() {
	sessions, err := s.repo.ListByOwner(context.Background(), &ListByOwnerInput{
		OwnerID: "owner-1",
		From:    s.testNow.AddDate(0, -1, 0),
		To:      s.testNow,
	})
	s.Require().NoError(err)
	s.Len(sessions, 0)
}
