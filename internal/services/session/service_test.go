package session

import (
	"context"
	"testing"
	"time"

	clockMocks "github.com/apiarylab/swarmtrack/internal/common/clock/mocks"
	uuidMocks "github.com/apiarylab/swarmtrack/internal/common/uuid/mocks"
	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/apiarylab/swarmtrack/internal/ownership"
	ownershipMocks "github.com/apiarylab/swarmtrack/internal/ownership/mocks"
	sessionRepo "github.com/apiarylab/swarmtrack/internal/repositories/session"
	sessionMocks "github.com/apiarylab/swarmtrack/internal/repositories/session/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockGuard       *ownershipMocks.MockGuard
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	service         Service
	ctx             context.Context

	testTime      time.Time
	testSiteID    string
	testOwnerID   string
	testSessionID string

	expectedSession *models.Session
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockGuard = ownershipMocks.NewMockGuard(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	s.testTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.testSiteID = "site-1"
	s.testOwnerID = "owner-1"
	s.testSessionID = "sess-1"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.expectedSession = &models.Session{
		ID:        s.testSessionID,
		SiteID:    s.testSiteID,
		OwnerID:   s.testOwnerID,
		Label:     "spring batch",
		StartedAt: s.testTime,
		Active:    true,
	}

	svc, err := New(&Config{
		SessionRepo: s.mockSessionRepo,
		Guard:       s.mockGuard,
		Clock:       s.mockClock,
		UUID:        s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (s *SessionServiceTestSuite) TestOpenSession() {
	s.mockGuard.EXPECT().
		VerifySiteOwner(s.ctx, s.testSiteID, s.testOwnerID).
		Return(nil)
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().
		OpenExclusive(s.ctx, &sessionRepo.OpenExclusiveInput{Session: s.expectedSession}).
		Return(s.expectedSession, nil)

	output, err := s.service.OpenSession(s.ctx, &OpenSessionInput{
		SiteID:  s.testSiteID,
		OwnerID: s.testOwnerID,
		Label:   "spring batch",
	})
	s.Require().NoError(err)
	s.Equal(s.testSessionID, output.Session.ID)
	s.True(output.Session.Active)
	s.Equal(s.testTime, output.Session.StartedAt)
}

func (s *SessionServiceTestSuite) TestOpenSessionSiteNotOwned() {
	s.mockGuard.EXPECT().
		VerifySiteOwner(s.ctx, s.testSiteID, s.testOwnerID).
		Return(ownership.ErrSiteNotFound)

	_, err := s.service.OpenSession(s.ctx, &OpenSessionInput{
		SiteID:  s.testSiteID,
		OwnerID: s.testOwnerID,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrSiteNotFound)
}

func (s *SessionServiceTestSuite) TestOpenSessionConflict() {
	s.mockGuard.EXPECT().
		VerifySiteOwner(s.ctx, s.testSiteID, s.testOwnerID).
		Return(nil)
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().
		OpenExclusive(s.ctx, gomock.Any()).
		Return(nil, sessionRepo.ErrConflict)

	_, err := s.service.OpenSession(s.ctx, &OpenSessionInput{
		SiteID:  s.testSiteID,
		OwnerID: s.testOwnerID,
		Label:   "spring batch",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrConflict)
}

func (s *SessionServiceTestSuite) TestOpenSessionInvalidInput() {
	_, err := s.service.OpenSession(s.ctx, &OpenSessionInput{OwnerID: s.testOwnerID})
	s.ErrorIs(err, ErrInvalidArgument)

	_, err = s.service.OpenSession(s.ctx, nil)
	s.ErrorIs(err, ErrInvalidArgument)
}

func (s *SessionServiceTestSuite) TestCloseSession() {
	endedAt := s.testTime
	closed := &models.Session{
		ID:        s.testSessionID,
		SiteID:    s.testSiteID,
		OwnerID:   s.testOwnerID,
		StartedAt: s.testTime.AddDate(0, 0, -10),
		EndedAt:   &endedAt,
		Active:    false,
	}

	s.mockSessionRepo.EXPECT().
		Get(s.ctx, &sessionRepo.GetInput{SessionID: s.testSessionID}).
		Return(s.expectedSession, nil)
	s.mockSessionRepo.EXPECT().
		Close(s.ctx, &sessionRepo.CloseInput{SessionID: s.testSessionID, EndedAt: s.testTime}).
		Return(closed, nil)

	output, err := s.service.CloseSession(s.ctx, &CloseSessionInput{
		SessionID: s.testSessionID,
		OwnerID:   s.testOwnerID,
	})
	s.Require().NoError(err)
	s.False(output.Session.Active)
	s.NotNil(output.Session.EndedAt)
}

func (s *SessionServiceTestSuite) TestCloseSessionNotOwned() {
	other := &models.Session{
		ID:      s.testSessionID,
		SiteID:  s.testSiteID,
		OwnerID: "someone-else",
		Active:  true,
	}

	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(other, nil)

	_, err := s.service.CloseSession(s.ctx, &CloseSessionInput{
		SessionID: s.testSessionID,
		OwnerID:   s.testOwnerID,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestCloseSessionAlreadyClosed() {
	endedAt := s.testTime.AddDate(0, 0, -1)
	closed := &models.Session{
		ID:      s.testSessionID,
		SiteID:  s.testSiteID,
		OwnerID: s.testOwnerID,
		EndedAt: &endedAt,
		Active:  false,
	}

	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(closed, nil)

	_, err := s.service.CloseSession(s.ctx, &CloseSessionInput{
		SessionID: s.testSessionID,
		OwnerID:   s.testOwnerID,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrAlreadyClosed)
}

func (s *SessionServiceTestSuite) TestCloseSessionNotFound() {
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.service.CloseSession(s.ctx, &CloseSessionInput{
		SessionID: "missing",
		OwnerID:   s.testOwnerID,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestGetActiveSession() {
	s.mockGuard.EXPECT().
		VerifySiteOwner(s.ctx, s.testSiteID, s.testOwnerID).
		Return(nil)
	s.mockSessionRepo.EXPECT().
		GetActiveBySite(s.ctx, &sessionRepo.GetActiveBySiteInput{SiteID: s.testSiteID}).
		Return(s.expectedSession, nil)

	output, err := s.service.GetActiveSession(s.ctx, &GetActiveSessionInput{
		SiteID:  s.testSiteID,
		OwnerID: s.testOwnerID,
	})
	s.Require().NoError(err)
	s.Equal(s.testSessionID, output.Session.ID)
}

func (s *SessionServiceTestSuite) TestGetActiveSessionNone() {
	s.mockGuard.EXPECT().
		VerifySiteOwner(s.ctx, s.testSiteID, s.testOwnerID).
		Return(nil)
	s.mockSessionRepo.EXPECT().
		GetActiveBySite(s.ctx, gomock.Any()).
		Return(nil, nil)

	output, err := s.service.GetActiveSession(s.ctx, &GetActiveSessionInput{
		SiteID:  s.testSiteID,
		OwnerID: s.testOwnerID,
	})
	s.Require().NoError(err)
	s.Nil(output.Session)
}
