package stats

import (
	"context"
	"testing"
	"time"

	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/apiarylab/swarmtrack/internal/ownership"
	ownershipMocks "github.com/apiarylab/swarmtrack/internal/ownership/mocks"
	colonyRepo "github.com/apiarylab/swarmtrack/internal/repositories/colony"
	colonyMocks "github.com/apiarylab/swarmtrack/internal/repositories/colony/mocks"
	sessionRepo "github.com/apiarylab/swarmtrack/internal/repositories/session"
	sessionMocks "github.com/apiarylab/swarmtrack/internal/repositories/session/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type StatsServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockColonyRepo  *colonyMocks.MockRepository
	mockGuard       *ownershipMocks.MockGuard
	service         Service
	ctx             context.Context

	testOwnerID string
	from        time.Time
	to          time.Time
}

func (s *StatsServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockColonyRepo = colonyMocks.NewMockRepository(s.mockCtrl)
	s.mockGuard = ownershipMocks.NewMockGuard(s.mockCtrl)

	s.ctx = context.Background()
	s.testOwnerID = "owner-1"
	s.from = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	s.to = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	svc, err := New(&Config{
		SessionRepo: s.mockSessionRepo,
		ColonyRepo:  s.mockColonyRepo,
		Guard:       s.mockGuard,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *StatsServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}

func colonyIn(sessionID, siteID string, status models.ColonyStatus) *models.Colony {
	return &models.Colony{
		ID:        sessionID + "-" + string(status),
		SessionID: sessionID,
		SiteID:    siteID,
		Status:    status,
	}
}

func (s *StatsServiceTestSuite) TestSessionStats() {
	sess := &models.Session{ID: "sess-1", SiteID: "site-1", OwnerID: s.testOwnerID}

	s.mockSessionRepo.EXPECT().
		Get(s.ctx, &sessionRepo.GetInput{SessionID: "sess-1"}).
		Return(sess, nil)
	s.mockColonyRepo.EXPECT().
		ListBySession(s.ctx, &colonyRepo.ListBySessionInput{SessionID: "sess-1"}).
		Return([]*models.Colony{
			colonyIn("sess-1", "site-1", models.ColonyStatusLayingOK),
			colonyIn("sess-1", "site-1", models.ColonyStatusLayingOK),
			colonyIn("sess-1", "site-1", models.ColonyStatusFailed),
			colonyIn("sess-1", "site-1", models.ColonyStatusWaitingCheck),
			colonyIn("sess-1", "site-1", models.ColonyStatusPending),
			colonyIn("sess-1", "site-1", models.ColonyStatusDead),
		}, nil)

	output, err := s.service.SessionStats(s.ctx, &SessionStatsInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
	})
	s.Require().NoError(err)
	s.Equal(6, output.Stats.Total)
	s.Equal(2, output.Stats.Success)
	s.Equal(2, output.Stats.Failures)
	s.Equal(1, output.Stats.Waiting)
	s.Equal(1, output.Stats.Pending)
	s.Equal(2, output.Stats.ByStatus[models.ColonyStatusLayingOK])
	s.InDelta(33.3, output.Stats.SuccessRate, 0.001)
}

func (s *StatsServiceTestSuite) TestSessionStatsEmpty() {
	sess := &models.Session{ID: "sess-1", OwnerID: s.testOwnerID}

	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(sess, nil)
	s.mockColonyRepo.EXPECT().
		ListBySession(s.ctx, gomock.Any()).
		Return(nil, nil)

	output, err := s.service.SessionStats(s.ctx, &SessionStatsInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
	})
	s.Require().NoError(err)
	s.Zero(output.Stats.Total)
	s.Zero(output.Stats.SuccessRate)
}

func (s *StatsServiceTestSuite) TestSessionStatsNotOwned() {
	sess := &models.Session{ID: "sess-1", OwnerID: "someone-else"}

	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(sess, nil)

	_, err := s.service.SessionStats(s.ctx, &SessionStatsInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *StatsServiceTestSuite) TestOverviewStats() {
	sessA := &models.Session{ID: "sess-a", SiteID: "site-1", OwnerID: s.testOwnerID}
	sessB := &models.Session{ID: "sess-b", SiteID: "site-2", OwnerID: s.testOwnerID}

	okCol := colonyIn("sess-a", "site-1", models.ColonyStatusLayingOK)
	failedCol := colonyIn("sess-a", "site-1", models.ColonyStatusFailed)
	pendingCol := colonyIn("sess-b", "site-2", models.ColonyStatusPending)
	okColB := colonyIn("sess-b", "site-2", models.ColonyStatusLayingOK)

	s.mockSessionRepo.EXPECT().
		ListByOwner(s.ctx, &sessionRepo.ListByOwnerInput{
			OwnerID: s.testOwnerID,
			From:    s.from,
			To:      s.to,
		}).
		Return([]*models.Session{sessA, sessB}, nil)
	s.mockColonyRepo.EXPECT().
		ListBySession(s.ctx, &colonyRepo.ListBySessionInput{SessionID: "sess-a"}).
		Return([]*models.Colony{okCol, failedCol}, nil)
	s.mockColonyRepo.EXPECT().
		ListBySession(s.ctx, &colonyRepo.ListBySessionInput{SessionID: "sess-b"}).
		Return([]*models.Colony{pendingCol, okColB}, nil)

	s.mockColonyRepo.EXPECT().
		LatestIntroduction(s.ctx, &colonyRepo.LatestIntroductionInput{ColonyID: okCol.ID}).
		Return(&models.Event{Type: models.EventTypeIntroMated}, nil)
	s.mockColonyRepo.EXPECT().
		LatestIntroduction(s.ctx, &colonyRepo.LatestIntroductionInput{ColonyID: failedCol.ID}).
		Return(&models.Event{Type: models.EventTypeIntroCell}, nil)
	s.mockColonyRepo.EXPECT().
		LatestIntroduction(s.ctx, &colonyRepo.LatestIntroductionInput{ColonyID: pendingCol.ID}).
		Return(nil, nil)
	s.mockColonyRepo.EXPECT().
		LatestIntroduction(s.ctx, &colonyRepo.LatestIntroductionInput{ColonyID: okColB.ID}).
		Return(&models.Event{Type: models.EventTypeIntroMated}, nil)

	output, err := s.service.OverviewStats(s.ctx, &OverviewStatsInput{
		OwnerID: s.testOwnerID,
		From:    s.from,
		To:      s.to,
	})
	s.Require().NoError(err)
	s.Equal(2, output.Sessions)
	s.Equal(4, output.Stats.Total)
	s.Equal(2, output.Stats.Success)
	s.InDelta(50.0, output.Stats.SuccessRate, 0.001)

	s.Require().Len(output.BySite, 2)
	s.Equal(2, output.BySite["site-1"].Total)
	s.InDelta(50.0, output.BySite["site-1"].SuccessRate, 0.001)
	s.Equal(1, output.BySite["site-2"].Success)

	s.Require().Len(output.ByMethod, 2)
	s.Equal(2, output.ByMethod[models.IntroMethodMated].Total)
	s.Equal(2, output.ByMethod[models.IntroMethodMated].Success)
	s.InDelta(100.0, output.ByMethod[models.IntroMethodMated].SuccessRate, 0.001)
	s.Equal(1, output.ByMethod[models.IntroMethodCell].Total)
	s.Zero(output.ByMethod[models.IntroMethodCell].Success)
}

func (s *StatsServiceTestSuite) TestOverviewStatsSiteFilter() {
	sessA := &models.Session{ID: "sess-a", SiteID: "site-1", OwnerID: s.testOwnerID}
	sessB := &models.Session{ID: "sess-b", SiteID: "site-2", OwnerID: s.testOwnerID}

	okCol := colonyIn("sess-a", "site-1", models.ColonyStatusLayingOK)

	s.mockGuard.EXPECT().
		VerifySiteOwner(s.ctx, "site-1", s.testOwnerID).
		Return(nil)
	s.mockSessionRepo.EXPECT().
		ListByOwner(s.ctx, gomock.Any()).
		Return([]*models.Session{sessA, sessB}, nil)
	s.mockColonyRepo.EXPECT().
		ListBySession(s.ctx, &colonyRepo.ListBySessionInput{SessionID: "sess-a"}).
		Return([]*models.Colony{okCol}, nil)
	s.mockColonyRepo.EXPECT().
		LatestIntroduction(s.ctx, gomock.Any()).
		Return(&models.Event{Type: models.EventTypeIntroVirgin}, nil)

	output, err := s.service.OverviewStats(s.ctx, &OverviewStatsInput{
		OwnerID: s.testOwnerID,
		From:    s.from,
		To:      s.to,
		SiteID:  "site-1",
	})
	s.Require().NoError(err)
	s.Equal(1, output.Sessions)
	s.Equal(1, output.Stats.Total)
	s.Nil(output.BySite)
}

func (s *StatsServiceTestSuite) TestOverviewStatsSiteNotOwned() {
	s.mockGuard.EXPECT().
		VerifySiteOwner(s.ctx, "site-9", s.testOwnerID).
		Return(ownership.ErrSiteNotFound)

	_, err := s.service.OverviewStats(s.ctx, &OverviewStatsInput{
		OwnerID: s.testOwnerID,
		From:    s.from,
		To:      s.to,
		SiteID:  "site-9",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrSiteNotFound)
}

func (s *StatsServiceTestSuite) TestOverviewStatsInvalidWindow() {
	_, err := s.service.OverviewStats(s.ctx, &OverviewStatsInput{
		OwnerID: s.testOwnerID,
		From:    s.to,
		To:      s.from,
	})
	s.ErrorIs(err, ErrInvalidArgument)
}
