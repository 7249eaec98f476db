package board

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/maxsrimongkol-lgtm/study-buddy/internal/common/clock"
	clockMocks "github.com/maxsrimongkol-lgtm/study-buddy/internal/common/clock/mocks"
	uuidMocks "github.com/maxsrimongkol-lgtm/study-buddy/internal/common/uuid/mocks"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/location"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
	sessionRepo "github.com/maxsrimongkol-lgtm/study-buddy/internal/repositories/session"
	sessionMocks "github.com/maxsrimongkol-lgtm/study-buddy/internal/repositories/session/mocks"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/secret"
	secretMocks "github.com/maxsrimongkol-lgtm/study-buddy/internal/secret/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BoardServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	boardService    Service
	ctx             context.Context

	// Test data
	testTime      time.Time
	testSessionID string
	leavey        location.Coordinates

	// Reusable test fixtures
	expectedSession *models.Session

	// Reusable test inputs
	createInput *CreateSessionInput
}

func (s *BoardServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testSessionID = "test-session-id"
	s.leavey = location.Coordinates{Lat: 34.0217, Lon: -118.2828}

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.createInput = &CreateSessionInput{
		Course:    "  csci 104 ",
		Location:  "Leavey 2nd floor",
		Vibe:      "Chill",
		SecretKey: "abc",
		StartTime: s.testTime.Add(2 * time.Hour),
		EndTime:   s.testTime.Add(4 * time.Hour),
	}

	s.expectedSession = &models.Session{
		ID:        s.testSessionID,
		Course:    "CSCI 104",
		Location:  "Leavey 2nd floor",
		Vibe:      models.VibeChill,
		StartTime: s.testTime.Add(2 * time.Hour),
		EndTime:   s.testTime.Add(4 * time.Hour),
		SecretKey: "abc",
		Joins:     0,
		Lat:       s.leavey.Lat,
		Lon:       s.leavey.Lon,
		CreatedAt: s.testTime,
	}

	s.boardService = s.newService(DefaultRules())
}

func (s *BoardServiceTestSuite) newService(rules Rules) Service {
	svc, err := New(&Config{
		Rules:         rules,
		SessionRepo:   s.mockSessionRepo,
		Locator:       location.New(nil),
		Keeper:        secret.Plain{},
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	return svc
}

func (s *BoardServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBoardServiceSuite(t *testing.T) {
	suite.Run(t, new(BoardServiceTestSuite))
}

func (s *BoardServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	base := Config{
		SessionRepo:   s.mockSessionRepo,
		Locator:       location.New(nil),
		Keeper:        secret.Plain{},
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	}

	cfg := base
	cfg.SessionRepo = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilSessionRepo)

	cfg = base
	cfg.Locator = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilLocator)

	cfg = base
	cfg.Keeper = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilKeeper)

	cfg = base
	cfg.Clock = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilClock)

	cfg = base
	cfg.UUIDGenerator = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilUUIDGenerator)

	_, err = New(&base)
	s.NoError(err)
}

func (s *BoardServiceTestSuite) TestCreate() {
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().
		CreateSession(s.ctx, &sessionRepo.CreateSessionInput{Session: s.expectedSession}).
		Return(nil)

	out, err := s.boardService.Create(s.ctx, s.createInput)
	s.Require().NoError(err)
	s.Equal(s.expectedSession, out.Session)
}

func (s *BoardServiceTestSuite) TestCreateKeepsSecretKeyAsTyped() {
	s.createInput.SecretKey = " abc "
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().
		CreateSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.CreateSessionInput) error {
			s.Equal(" abc ", input.Session.SecretKey)
			return nil
		})

	_, err := s.boardService.Create(s.ctx, s.createInput)
	s.NoError(err)
}

func (s *BoardServiceTestSuite) TestCreateMissingFields() {
	testCases := []struct {
		name  string
		edit  func(in *CreateSessionInput)
		field string
	}{
		{name: "course", edit: func(in *CreateSessionInput) { in.Course = "" }, field: "course"},
		{name: "blank location", edit: func(in *CreateSessionInput) { in.Location = "   " }, field: "location"},
		{name: "vibe", edit: func(in *CreateSessionInput) { in.Vibe = "" }, field: "vibe"},
		{name: "secret key", edit: func(in *CreateSessionInput) { in.SecretKey = "\t" }, field: "secret_key"},
		{name: "start", edit: func(in *CreateSessionInput) { in.StartTime = time.Time{} }, field: "start_time"},
		{name: "end", edit: func(in *CreateSessionInput) { in.EndTime = time.Time{} }, field: "end_time"},
		{
			name: "first missing field wins",
			edit: func(in *CreateSessionInput) {
				in.Vibe = ""
				in.Course = ""
				in.EndTime = in.StartTime
			},
			field: "course",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			in := *s.createInput
			tc.edit(&in)

			_, err := s.boardService.Create(s.ctx, &in)
			s.ErrorIs(err, ErrMissingField)

			var fe *FieldError
			s.Require().ErrorAs(err, &fe)
			s.Equal(tc.field, fe.Field)
		})
	}
}

func (s *BoardServiceTestSuite) TestCreateLengthLimits() {
	in := *s.createInput
	in.Location = strings.Repeat("l", 51)
	_, err := s.boardService.Create(s.ctx, &in)
	s.ErrorIs(err, ErrFieldTooLong)

	in = *s.createInput
	in.Description = strings.Repeat("d", 101)
	_, err = s.boardService.Create(s.ctx, &in)
	s.ErrorIs(err, ErrFieldTooLong)

	// limits count characters, not bytes
	in = *s.createInput
	in.Location = strings.Repeat("é", 50)
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().CreateSession(s.ctx, gomock.Any()).Return(nil)
	_, err = s.boardService.Create(s.ctx, &in)
	s.NoError(err)
}

func (s *BoardServiceTestSuite) TestCreateNoLimitsWhenDisabled() {
	svc := s.newService(Rules{})

	in := *s.createInput
	in.Location = strings.Repeat("l", 500)
	in.EndTime = in.StartTime.Add(12 * time.Hour)

	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().CreateSession(s.ctx, gomock.Any()).Return(nil)

	_, err := svc.Create(s.ctx, &in)
	s.NoError(err)
}

func (s *BoardServiceTestSuite) TestCreateVibeList() {
	rules := DefaultRules()
	rules.Vibes = models.DefaultVibes
	svc := s.newService(rules)

	in := *s.createInput
	in.Vibe = "Grinding"
	_, err := svc.Create(s.ctx, &in)
	s.ErrorIs(err, ErrInvalidVibe)

	in.Vibe = "group project"
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().CreateSession(s.ctx, gomock.Any()).Return(nil)
	out, err := svc.Create(s.ctx, &in)
	s.Require().NoError(err)
	s.Equal(models.VibeGroupProject, out.Session.Vibe)
}

func (s *BoardServiceTestSuite) TestCreateInvalidInterval() {
	in := *s.createInput
	in.EndTime = in.StartTime
	_, err := s.boardService.Create(s.ctx, &in)
	s.ErrorIs(err, ErrInvalidInterval)

	in.EndTime = in.StartTime.Add(-time.Minute)
	_, err = s.boardService.Create(s.ctx, &in)
	s.ErrorIs(err, ErrInvalidInterval)
}

func (s *BoardServiceTestSuite) TestCreateDurationBoundary() {
	in := *s.createInput
	in.EndTime = in.StartTime.Add(5*time.Hour + time.Second)
	_, err := s.boardService.Create(s.ctx, &in)
	s.ErrorIs(err, ErrDurationExceeded)

	in.EndTime = in.StartTime.Add(5 * time.Hour)
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().CreateSession(s.ctx, gomock.Any()).Return(nil)
	_, err = s.boardService.Create(s.ctx, &in)
	s.NoError(err)
}

func (s *BoardServiceTestSuite) TestCreateSealError() {
	keeper := secretMocks.NewMockKeeper(s.mockCtrl)
	svc, err := New(&Config{
		Rules:         DefaultRules(),
		SessionRepo:   s.mockSessionRepo,
		Locator:       location.New(nil),
		Keeper:        keeper,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)

	keeper.EXPECT().Seal("abc").Return("", errors.New("boom"))

	_, err = svc.Create(s.ctx, s.createInput)
	s.Error(err)
}

func (s *BoardServiceTestSuite) TestCreateRepoError() {
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().CreateSession(s.ctx, gomock.Any()).Return(errors.New("redis down"))

	_, err := s.boardService.Create(s.ctx, s.createInput)
	s.Error(err)
}

func (s *BoardServiceTestSuite) TestListActivePrunesFirst() {
	ended := s.expectedSession.Clone()
	ended.ID = "ended"
	ended.EndTime = s.testTime

	gomock.InOrder(
		s.mockSessionRepo.EXPECT().
			DeleteExpired(s.ctx, &sessionRepo.DeleteExpiredInput{Now: s.testTime}).
			Return(&sessionRepo.DeleteExpiredOutput{SessionIDs: []string{"old"}}, nil),
		s.mockSessionRepo.EXPECT().
			ListSessions(s.ctx, &sessionRepo.ListSessionsInput{}).
			Return(&sessionRepo.ListSessionsOutput{
				Sessions: []*models.Session{s.expectedSession, ended},
			}, nil),
	)

	out, err := s.boardService.ListActive(s.ctx, &ListActiveInput{})
	s.Require().NoError(err)
	s.Equal([]*models.Session{s.expectedSession}, out.Sessions)
	s.Equal(s.testTime, out.Now)
}

func (s *BoardServiceTestSuite) TestListActiveUsesSuppliedNow() {
	later := s.testTime.Add(24 * time.Hour)

	s.mockSessionRepo.EXPECT().
		DeleteExpired(s.ctx, &sessionRepo.DeleteExpiredInput{Now: later}).
		Return(&sessionRepo.DeleteExpiredOutput{}, nil)
	s.mockSessionRepo.EXPECT().
		ListSessions(s.ctx, gomock.Any()).
		Return(&sessionRepo.ListSessionsOutput{}, nil)

	out, err := s.boardService.ListActive(s.ctx, &ListActiveInput{Now: later})
	s.Require().NoError(err)
	s.Empty(out.Sessions)
	s.Equal(later, out.Now)
}

func (s *BoardServiceTestSuite) TestListActivePruneError() {
	s.mockSessionRepo.EXPECT().
		DeleteExpired(s.ctx, gomock.Any()).
		Return(nil, errors.New("redis down"))

	_, err := s.boardService.ListActive(s.ctx, nil)
	s.Error(err)
}

func (s *BoardServiceTestSuite) TestPrune() {
	s.mockSessionRepo.EXPECT().
		DeleteExpired(s.ctx, &sessionRepo.DeleteExpiredInput{Now: s.testTime}).
		Return(&sessionRepo.DeleteExpiredOutput{SessionIDs: []string{"a", "b"}}, nil)

	out, err := s.boardService.Prune(s.ctx, &PruneInput{})
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, out.SessionIDs)
}

func (s *BoardServiceTestSuite) TestJoin() {
	joined := s.expectedSession.Clone()
	joined.Joins = 1

	s.mockSessionRepo.EXPECT().
		IncrementJoins(s.ctx, &sessionRepo.IncrementJoinsInput{SessionID: s.testSessionID}).
		Return(joined, nil)

	out, err := s.boardService.Join(s.ctx, &JoinSessionInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Equal(1, out.Session.Joins)
}

func (s *BoardServiceTestSuite) TestJoinNotFound() {
	s.mockSessionRepo.EXPECT().
		IncrementJoins(s.ctx, gomock.Any()).
		Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.boardService.Join(s.ctx, &JoinSessionInput{SessionID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)

	_, err = s.boardService.Join(s.ctx, &JoinSessionInput{})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *BoardServiceTestSuite) TestDelete() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.expectedSession.Clone(), nil)
	s.mockSessionRepo.EXPECT().
		DeleteSession(s.ctx, &sessionRepo.DeleteSessionInput{SessionID: s.testSessionID}).
		Return(nil)

	out, err := s.boardService.Delete(s.ctx, &DeleteSessionInput{
		SessionID: s.testSessionID,
		SecretKey: "abc",
	})
	s.Require().NoError(err)
	s.True(out.Success)
}

func (s *BoardServiceTestSuite) TestDeleteWrongKey() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, gomock.Any()).
		Return(s.expectedSession.Clone(), nil)
	// no DeleteSession expected

	_, err := s.boardService.Delete(s.ctx, &DeleteSessionInput{
		SessionID: s.testSessionID,
		SecretKey: "wrong",
	})
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *BoardServiceTestSuite) TestDeleteNotFound() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, gomock.Any()).
		Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.boardService.Delete(s.ctx, &DeleteSessionInput{
		SessionID: "missing",
		SecretKey: "abc",
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *BoardServiceTestSuite) TestEditLocationKeepsCoordinates() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, gomock.Any()).
		Return(s.expectedSession.Clone(), nil)
	s.mockSessionRepo.EXPECT().
		UpdateSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.UpdateSessionInput) error {
			s.Equal("Doheny basement", input.Session.Location)
			s.Equal(s.leavey.Lat, input.Session.Lat)
			s.Equal(s.leavey.Lon, input.Session.Lon)
			return nil
		})

	out, err := s.boardService.EditLocation(s.ctx, &EditLocationInput{
		SessionID: s.testSessionID,
		SecretKey: "abc",
		Location:  " Doheny basement ",
	})
	s.Require().NoError(err)
	s.Equal("Doheny basement", out.Session.Location)
}

func (s *BoardServiceTestSuite) TestEditLocationRecomputesWhenEnabled() {
	rules := DefaultRules()
	rules.RecomputeCoordsOnEdit = true
	svc := s.newService(rules)

	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, gomock.Any()).
		Return(s.expectedSession.Clone(), nil)
	s.mockSessionRepo.EXPECT().
		UpdateSession(s.ctx, gomock.Any()).
		Return(nil)

	out, err := svc.EditLocation(s.ctx, &EditLocationInput{
		SessionID: s.testSessionID,
		SecretKey: "abc",
		Location:  "Doheny basement",
	})
	s.Require().NoError(err)
	s.Equal(34.0202, out.Session.Lat)
	s.Equal(-118.2837, out.Session.Lon)
}

func (s *BoardServiceTestSuite) TestEditLocationWrongKey() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, gomock.Any()).
		Return(s.expectedSession.Clone(), nil)

	_, err := s.boardService.EditLocation(s.ctx, &EditLocationInput{
		SessionID: s.testSessionID,
		SecretKey: "ABC",
		Location:  "Doheny",
	})
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *BoardServiceTestSuite) TestEditLocationValidation() {
	_, err := s.boardService.EditLocation(s.ctx, &EditLocationInput{
		SessionID: s.testSessionID,
		SecretKey: "abc",
		Location:  "  ",
	})
	s.ErrorIs(err, ErrMissingField)

	_, err = s.boardService.EditLocation(s.ctx, &EditLocationInput{
		SessionID: s.testSessionID,
		SecretKey: "abc",
		Location:  strings.Repeat("x", 51),
	})
	s.ErrorIs(err, ErrFieldTooLong)
}

// BoardScenarioTestSuite drives the service against the real in-memory store
type BoardScenarioTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clock.FixedClock
	repo  sessionRepo.Repository
	svc   Service
	seq   int
}

type sequenceUUID struct {
	next func() string
}

func (u *sequenceUUID) NewUUID() string {
	return u.next()
}

func (s *BoardScenarioTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = &clock.FixedClock{At: time.Date(2025, 4, 19, 13, 0, 0, 0, time.UTC)}
	s.repo = sessionRepo.NewMemory()
	s.seq = 0

	svc, err := New(&Config{
		Rules:       DefaultRules(),
		SessionRepo: s.repo,
		Locator:     location.New(nil),
		Keeper:      secret.Plain{},
		Clock:       s.clock,
		UUIDGenerator: &sequenceUUID{next: func() string {
			s.seq++
			return "session-" + strconv.Itoa(s.seq)
		}},
	})
	s.Require().NoError(err)
	s.svc = svc
}

func TestBoardScenarioSuite(t *testing.T) {
	suite.Run(t, new(BoardScenarioTestSuite))
}

func (s *BoardScenarioTestSuite) at(hour int) time.Time {
	return time.Date(2025, 4, 19, hour, 0, 0, 0, time.UTC)
}

func (s *BoardScenarioTestSuite) TestPostJoinDelete() {
	created, err := s.svc.Create(s.ctx, &CreateSessionInput{
		Course:    "CSCI 104",
		Location:  "Leavey 2nd floor",
		Vibe:      "Chill",
		SecretKey: "abc",
		StartTime: s.at(14),
		EndTime:   s.at(16),
	})
	s.Require().NoError(err)
	s.Equal(34.0217, created.Session.Lat)
	s.Equal(-118.2828, created.Session.Lon)
	s.Equal(0, created.Session.Joins)

	id := created.Session.ID
	for i := 0; i < 2; i++ {
		_, err := s.svc.Join(s.ctx, &JoinSessionInput{SessionID: id})
		s.Require().NoError(err)
	}
	got, err := s.svc.Get(s.ctx, &GetSessionInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal(2, got.Session.Joins)

	before := got.Session.Clone()
	_, err = s.svc.Delete(s.ctx, &DeleteSessionInput{SessionID: id, SecretKey: "wrong"})
	s.ErrorIs(err, ErrUnauthorized)
	after, err := s.svc.Get(s.ctx, &GetSessionInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal(before, after.Session)

	_, err = s.svc.Delete(s.ctx, &DeleteSessionInput{SessionID: id, SecretKey: "abc"})
	s.Require().NoError(err)

	list, err := s.svc.ListActive(s.ctx, &ListActiveInput{})
	s.Require().NoError(err)
	s.Empty(list.Sessions)
}

func (s *BoardScenarioTestSuite) TestJoinManyTimes() {
	created, err := s.svc.Create(s.ctx, &CreateSessionInput{
		Course: "MATH 225", Location: "Doheny", Vibe: "Cramming", SecretKey: "k",
		StartTime: s.at(14), EndTime: s.at(15),
	})
	s.Require().NoError(err)

	const n = 37
	var last *JoinSessionOutput
	for i := 0; i < n; i++ {
		last, err = s.svc.Join(s.ctx, &JoinSessionInput{SessionID: created.Session.ID})
		s.Require().NoError(err)
	}
	s.Equal(n, last.Session.Joins)
}

func (s *BoardScenarioTestSuite) TestDuplicatePostsAreIndependent() {
	in := &CreateSessionInput{
		Course: "CSCI 104", Location: "Leavey", Vibe: "Chill", SecretKey: "abc",
		StartTime: s.at(14), EndTime: s.at(16),
	}
	first, err := s.svc.Create(s.ctx, in)
	s.Require().NoError(err)
	second, err := s.svc.Create(s.ctx, in)
	s.Require().NoError(err)
	s.NotEqual(first.Session.ID, second.Session.ID)

	list, err := s.svc.ListActive(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(list.Sessions, 2)
}

func (s *BoardScenarioTestSuite) TestExpiredSessionsArePrunedForGood() {
	post := func(course string, end time.Time) string {
		out, err := s.svc.Create(s.ctx, &CreateSessionInput{
			Course: course, Location: "Tutor", Vibe: "Chill", SecretKey: "k",
			StartTime: end.Add(-time.Hour), EndTime: end,
		})
		s.Require().NoError(err)
		return out.Session.ID
	}

	early := post("EARLY", s.at(15))
	late := post("LATE", s.at(18))
	post("MIDDLE", s.at(16))

	// at 16:00 the 15:00 and 16:00 sessions are over
	list, err := s.svc.ListActive(s.ctx, &ListActiveInput{Now: s.at(16)})
	s.Require().NoError(err)
	s.Require().Len(list.Sessions, 1)
	s.Equal(late, list.Sessions[0].ID)

	// going back in time does not bring them back
	list, err = s.svc.ListActive(s.ctx, &ListActiveInput{Now: s.at(13)})
	s.Require().NoError(err)
	s.Len(list.Sessions, 1)

	_, err = s.svc.Get(s.ctx, &GetSessionInput{SessionID: early})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *BoardScenarioTestSuite) TestListingKeepsPostingOrder() {
	for _, c := range []string{"A", "B", "C"} {
		_, err := s.svc.Create(s.ctx, &CreateSessionInput{
			Course: c, Location: "Village", Vibe: "Chill", SecretKey: "k",
			StartTime: s.at(14), EndTime: s.at(15),
		})
		s.Require().NoError(err)
	}

	list, err := s.svc.ListActive(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(list.Sessions, 3)
	s.Equal("A", list.Sessions[0].Course)
	s.Equal("B", list.Sessions[1].Course)
	s.Equal("C", list.Sessions[2].Course)
}

func (s *BoardScenarioTestSuite) TestEditLocationWrongKeyLeavesRecord() {
	created, err := s.svc.Create(s.ctx, &CreateSessionInput{
		Course: "CSCI 104", Location: "Leavey", Vibe: "Chill", SecretKey: "abc",
		StartTime: s.at(14), EndTime: s.at(16),
	})
	s.Require().NoError(err)

	_, err = s.svc.EditLocation(s.ctx, &EditLocationInput{
		SessionID: created.Session.ID, SecretKey: "nope", Location: "Doheny",
	})
	s.ErrorIs(err, ErrUnauthorized)

	got, err := s.svc.Get(s.ctx, &GetSessionInput{SessionID: created.Session.ID})
	s.Require().NoError(err)
	s.Equal(created.Session, got.Session)
}

func (s *BoardScenarioTestSuite) TestBcryptKeys() {
	svc, err := New(&Config{
		Rules:         DefaultRules(),
		SessionRepo:   s.repo,
		Locator:       location.New(nil),
		Keeper:        secret.Bcrypt{Cost: 4},
		Clock:         s.clock,
		UUIDGenerator: &sequenceUUID{next: func() string { return "hashed" }},
	})
	s.Require().NoError(err)

	created, err := svc.Create(s.ctx, &CreateSessionInput{
		Course: "CSCI 104", Location: "Leavey", Vibe: "Chill", SecretKey: "abc",
		StartTime: s.at(14), EndTime: s.at(16),
	})
	s.Require().NoError(err)
	s.NotEqual("abc", created.Session.SecretKey)

	_, err = svc.Delete(s.ctx, &DeleteSessionInput{SessionID: "hashed", SecretKey: "wrong"})
	s.ErrorIs(err, ErrUnauthorized)

	_, err = svc.Delete(s.ctx, &DeleteSessionInput{SessionID: "hashed", SecretKey: "abc"})
	s.NoError(err)
}

func (s *BoardScenarioTestSuite) TestBcryptLongKey() {
	svc, err := New(&Config{
		Rules:         DefaultRules(),
		SessionRepo:   s.repo,
		Locator:       location.New(nil),
		Keeper:        secret.Bcrypt{Cost: 4},
		Clock:         s.clock,
		UUIDGenerator: &sequenceUUID{next: func() string { return "long-key" }},
	})
	s.Require().NoError(err)

	key := strings.Repeat("k", 73)
	_, err = svc.Create(s.ctx, &CreateSessionInput{
		Course: "CSCI 104", Location: "Leavey", Vibe: "Chill", SecretKey: key,
		StartTime: s.at(14), EndTime: s.at(16),
	})
	s.Require().NoError(err)

	_, err = svc.Delete(s.ctx, &DeleteSessionInput{SessionID: "long-key", SecretKey: key[:72]})
	s.ErrorIs(err, ErrUnauthorized)

	_, err = svc.Delete(s.ctx, &DeleteSessionInput{SessionID: "long-key", SecretKey: key})
	s.NoError(err)
}
