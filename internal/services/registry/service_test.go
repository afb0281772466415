package registry

import (
	"context"
	"testing"
	"time"

	clockMocks "github.com/apiarylab/swarmtrack/internal/common/clock/mocks"
	uuidMocks "github.com/apiarylab/swarmtrack/internal/common/uuid/mocks"
	"github.com/apiarylab/swarmtrack/internal/hives"
	hiveMocks "github.com/apiarylab/swarmtrack/internal/hives/mocks"
	"github.com/apiarylab/swarmtrack/internal/models"
	ownershipMocks "github.com/apiarylab/swarmtrack/internal/ownership/mocks"
	colonyRepo "github.com/apiarylab/swarmtrack/internal/repositories/colony"
	colonyMocks "github.com/apiarylab/swarmtrack/internal/repositories/colony/mocks"
	sessionRepo "github.com/apiarylab/swarmtrack/internal/repositories/session"
	sessionMocks "github.com/apiarylab/swarmtrack/internal/repositories/session/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RegistryServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockColonyRepo  *colonyMocks.MockRepository
	mockHives       *hiveMocks.MockRegistry
	mockGuard       *ownershipMocks.MockGuard
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	service         Service
	ctx             context.Context

	testTime    time.Time
	testOwnerID string

	openSession *models.Session
	testHive    *hives.Hive
}

func (s *RegistryServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockColonyRepo = colonyMocks.NewMockRepository(s.mockCtrl)
	s.mockHives = hiveMocks.NewMockRegistry(s.mockCtrl)
	s.mockGuard = ownershipMocks.NewMockGuard(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.testOwnerID = "owner-1"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.openSession = &models.Session{
		ID:        "sess-1",
		SiteID:    "site-1",
		OwnerID:   s.testOwnerID,
		StartedAt: s.testTime,
		Active:    true,
	}

	s.testHive = &hives.Hive{
		ID:     "hive-1",
		SiteID: "site-1",
		Label:  "Hive 12",
	}

	svc, err := New(&Config{
		SessionRepo: s.mockSessionRepo,
		ColonyRepo:  s.mockColonyRepo,
		Hives:       s.mockHives,
		Guard:       s.mockGuard,
		Clock:       s.mockClock,
		UUID:        s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *RegistryServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRegistryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceTestSuite))
}

func (s *RegistryServiceTestSuite) TestRegisterColonyByHiveID() {
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, &sessionRepo.GetInput{SessionID: "sess-1"}).
		Return(s.openSession, nil)
	s.mockHives.EXPECT().
		ResolveHive(s.ctx, "site-1", "hive-1").
		Return(s.testHive, nil)
	s.mockColonyRepo.EXPECT().
		HiveRegistered(s.ctx, &colonyRepo.HiveRegisteredInput{SessionID: "sess-1", HiveID: "hive-1"}).
		Return(false, nil)
	s.mockUUID.EXPECT().NewUUID().Return("col-1")
	s.mockUUID.EXPECT().NewUUID().Return("evt-1")
	s.mockColonyRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *colonyRepo.CreateInput) (*models.Colony, error) {
			s.Equal("col-1", input.Colony.ID)
			s.Equal(models.ColonyStatusPending, input.Colony.Status)
			s.Equal("site-1", input.Colony.SiteID)
			s.Equal("Hive 12", input.Colony.HiveLabel)
			s.Equal(models.EventTypeScanArrival, input.Event.Type)
			s.Equal("hive-1", input.Event.Payload.HiveID)
			s.Equal("Hive 12", input.Event.Payload.HiveLabel)
			return input.Colony, nil
		})

	output, err := s.service.RegisterColony(s.ctx, &RegisterColonyInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
		HiveID:    "hive-1",
	})
	s.Require().NoError(err)
	s.Equal("col-1", output.Colony.ID)
	s.Equal(models.ColonyStatusPending, output.Colony.Status)
}

func (s *RegistryServiceTestSuite) TestRegisterColonyByToken() {
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(s.openSession, nil)
	s.mockHives.EXPECT().
		ResolveToken(s.ctx, "site-1", "tok-abc").
		Return(s.testHive, nil)
	s.mockColonyRepo.EXPECT().
		HiveRegistered(s.ctx, gomock.Any()).
		Return(false, nil)
	s.mockUUID.EXPECT().NewUUID().Return("col-1")
	s.mockUUID.EXPECT().NewUUID().Return("evt-1")
	s.mockColonyRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *colonyRepo.CreateInput) (*models.Colony, error) {
			return input.Colony, nil
		})

	output, err := s.service.RegisterColony(s.ctx, &RegisterColonyInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
		HiveToken: "tok-abc",
	})
	s.Require().NoError(err)
	s.Equal("hive-1", output.Colony.HiveID)
}

func (s *RegistryServiceTestSuite) TestRegisterColonyClosedSession() {
	endedAt := s.testTime
	closed := &models.Session{
		ID:      "sess-1",
		SiteID:  "site-1",
		OwnerID: s.testOwnerID,
		EndedAt: &endedAt,
		Active:  false,
	}

	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(closed, nil)

	_, err := s.service.RegisterColony(s.ctx, &RegisterColonyInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
		HiveID:    "hive-1",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *RegistryServiceTestSuite) TestRegisterColonySessionNotOwned() {
	other := &models.Session{
		ID:      "sess-1",
		SiteID:  "site-1",
		OwnerID: "someone-else",
		Active:  true,
	}

	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(other, nil)

	_, err := s.service.RegisterColony(s.ctx, &RegisterColonyInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
		HiveID:    "hive-1",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *RegistryServiceTestSuite) TestRegisterColonyCrossSiteToken() {
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(s.openSession, nil)

	// The registry rejects tokens resolving to hives on another site
	s.mockHives.EXPECT().
		ResolveToken(s.ctx, "site-1", "tok-foreign").
		Return(nil, hives.ErrHiveNotFound)

	_, err := s.service.RegisterColony(s.ctx, &RegisterColonyInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
		HiveToken: "tok-foreign",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrHiveNotFound)
}

func (s *RegistryServiceTestSuite) TestRegisterColonyDuplicateHive() {
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(s.openSession, nil)
	s.mockHives.EXPECT().
		ResolveHive(s.ctx, "site-1", "hive-1").
		Return(s.testHive, nil)
	s.mockColonyRepo.EXPECT().
		HiveRegistered(s.ctx, gomock.Any()).
		Return(true, nil)

	_, err := s.service.RegisterColony(s.ctx, &RegisterColonyInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
		HiveID:    "hive-1",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrHiveAlreadyRegistered)
}

func (s *RegistryServiceTestSuite) TestRegisterColonyBothRefsRejected() {
	_, err := s.service.RegisterColony(s.ctx, &RegisterColonyInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
		HiveID:    "hive-1",
		HiveToken: "tok-abc",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInvalidArgument)

	_, err = s.service.RegisterColony(s.ctx, &RegisterColonyInput{
		SessionID: "sess-1",
		OwnerID:   s.testOwnerID,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInvalidArgument)
}

func (s *RegistryServiceTestSuite) TestListColonyEvents() {
	col := &models.Colony{
		ID:     "col-1",
		SiteID: "site-1",
	}
	events := []*models.Event{
		{ID: "evt-1", ColonyID: "col-1", Type: models.EventTypeScanArrival},
		{ID: "evt-2", ColonyID: "col-1", Type: models.EventTypeIntroMated},
	}

	s.mockColonyRepo.EXPECT().
		Get(s.ctx, &colonyRepo.GetInput{ColonyID: "col-1"}).
		Return(col, nil)
	s.mockGuard.EXPECT().
		VerifySiteOwner(s.ctx, "site-1", s.testOwnerID).
		Return(nil)
	s.mockColonyRepo.EXPECT().
		ListEvents(s.ctx, &colonyRepo.ListEventsInput{ColonyID: "col-1"}).
		Return(events, nil)

	output, err := s.service.ListColonyEvents(s.ctx, &ListColonyEventsInput{
		ColonyID: "col-1",
		OwnerID:  s.testOwnerID,
	})
	s.Require().NoError(err)
	s.Len(output.Events, 2)
}
