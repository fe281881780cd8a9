package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	"github.com/fieldforce/sfm_backend/internal/core/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RequestRepository ---

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) SaveRequest(ctx context.Context, request domain.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) FindRequests(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Request, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		nextToken = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Request), nextToken, args.Error(2)
}

func (m *MockRequestRepository) TransitionRequestStatus(ctx context.Context, requestID string, fromStatus, toStatus domain.ApprovalStatus, actorID, notes string, at time.Time) error {
	args := m.Called(ctx, requestID, fromStatus, toStatus, actorID, notes, at)
	return args.Error(0)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) ListStatusChanges(ctx context.Context, recordID string) ([]domain.StatusChange, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusChange), args.Error(1)
}

// --- Test Suite Setup ---

type RequestServiceTestSuite struct {
	suite.Suite
	mockRequestRepo *MockRequestRepository
	mockAuditRepo   *MockAuditRepository
	mockUserRepo    *MockUserRepository
	service         *services.RequestService

	admin *domain.User
	dm    *domain.User
	rep   *domain.User
}

func (suite *RequestServiceTestSuite) SetupTest() {
	suite.mockRequestRepo = new(MockRequestRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.mockUserRepo = new(MockUserRepository)
	hierarchy := services.NewHierarchyService(suite.mockUserRepo)
	suite.service = services.NewRequestService(suite.mockRequestRepo, suite.mockAuditRepo, suite.mockUserRepo, hierarchy)

	// A minimal org: rep reports to dm; admin is top level.
	suite.admin = newTestUser(domain.RoleAdmin)
	suite.dm = newTestUser(domain.RoleDistrictManager)
	suite.rep = newTestUser(domain.RoleMedicalRep)
	suite.rep.ManagerID = &suite.dm.UserID
	stubUser(suite.mockUserRepo, suite.admin)
	stubUser(suite.mockUserRepo, suite.dm)
	stubUser(suite.mockUserRepo, suite.rep)
}

// pendingRequest builds a PENDING request owned by the suite's rep.
func (suite *RequestServiceTestSuite) pendingRequest() *domain.Request {
	now := time.Now()
	return &domain.Request{
		RequestID:   uuid.NewString(),
		OwnerID:     suite.rep.UserID,
		ClinicID:    uuid.NewString(),
		Type:        domain.RequestTypeActivity,
		Title:       "Awareness event",
		Status:      domain.StatusPending,
		RequestDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     suite.rep.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: suite.rep.UserID,
		},
	}
}

// --- CreateRequest ---

func (suite *RequestServiceTestSuite) TestCreateRequest_Success() {
	ctx := context.Background()
	req := dto.CreateRequestRequest{
		ClinicID: uuid.NewString(),
		Type:     string(domain.RequestTypeExpense),
		Title:    "Travel expense",
	}

	suite.mockRequestRepo.On("SaveRequest", ctx, mock.AnythingOfType("domain.Request")).Return(nil).Once()

	created, err := suite.service.CreateRequest(ctx, req, suite.rep.UserID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.RequestID)
	suite.Equal(suite.rep.UserID, created.OwnerID)
	suite.Equal(domain.StatusPending, created.Status, "new requests always start pending")
	suite.WithinDuration(time.Now(), created.RequestDate, time.Second, "omitted request date defaults to now")
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestCreateRequest_TopLevelForbidden() {
	ctx := context.Background()
	req := dto.CreateRequestRequest{
		ClinicID: uuid.NewString(),
		Type:     string(domain.RequestTypeExpense),
		Title:    "Travel expense",
	}

	_, err := suite.service.CreateRequest(ctx, req, suite.admin.UserID)

	suite.ErrorIs(err, apperrors.ErrForbidden, "requests are raised by field staff, not reviewers")
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
}

// --- GetRequestByID ---

func (suite *RequestServiceTestSuite) TestGetRequestByID_ManagerSeesSubordinateRecord() {
	ctx := context.Background()
	request := suite.pendingRequest()
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockUserRepo.On("FindSubordinateIDs", ctx, suite.dm.UserID).Return([]string{suite.rep.UserID}, nil).Once()

	found, err := suite.service.GetRequestByID(ctx, request.RequestID, suite.dm.UserID)

	suite.Require().NoError(err)
	suite.Equal(request.RequestID, found.RequestID)
}

func (suite *RequestServiceTestSuite) TestGetRequestByID_OutsideScopeForbidden() {
	ctx := context.Background()
	request := suite.pendingRequest()
	outsider := newTestUser(domain.RoleMedicalRep)
	stubUser(suite.mockUserRepo, outsider)
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	found, err := suite.service.GetRequestByID(ctx, request.RequestID, outsider.UserID)

	suite.Require().Error(err)
	suite.Nil(found)
	// The record exists but the caller is not entitled to it.
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *RequestServiceTestSuite) TestGetRequestByID_NotFound() {
	ctx := context.Background()
	suite.mockRequestRepo.On("FindRequestByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetRequestByID(ctx, "missing", suite.admin.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ApplyAction ---

func (suite *RequestServiceTestSuite) TestApplyAction_ManagerApproves() {
	ctx := context.Background()
	request := suite.pendingRequest()
	approved := *request
	approved.Status = domain.StatusApproved

	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockRequestRepo.On("TransitionRequestStatus", ctx, request.RequestID,
		domain.StatusPending, domain.StatusApproved, suite.dm.UserID, "looks good", mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(&approved, nil).Once()

	updated, err := suite.service.ApplyAction(ctx, request.RequestID, dto.ActionApprove, "looks good", suite.dm.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, updated.Status)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestApplyAction_SelfApprovalForbidden() {
	ctx := context.Background()
	request := suite.pendingRequest()
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.ApplyAction(ctx, request.RequestID, dto.ActionApprove, "", suite.rep.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "TransitionRequestStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RequestServiceTestSuite) TestApplyAction_AdminCannotApproveOwnRecord() {
	ctx := context.Background()
	request := suite.pendingRequest()
	request.OwnerID = suite.admin.UserID
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	// Self-decision beats rank: not even an admin approves their own record.
	_, err := suite.service.ApplyAction(ctx, request.RequestID, dto.ActionApprove, "", suite.admin.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *RequestServiceTestSuite) TestApplyAction_OutsideChainForbidden() {
	ctx := context.Background()
	otherDM := newTestUser(domain.RoleDistrictManager)
	stubUser(suite.mockUserRepo, otherDM)
	request := suite.pendingRequest()
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.ApplyAction(ctx, request.RequestID, dto.ActionApprove, "", otherDM.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *RequestServiceTestSuite) TestApplyAction_TerminalStatus() {
	ctx := context.Background()
	request := suite.pendingRequest()
	request.Status = domain.StatusRejected
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.ApplyAction(ctx, request.RequestID, dto.ActionApprove, "", suite.dm.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.Contains(err.Error(), "terminal")
}

func (suite *RequestServiceTestSuite) TestApplyAction_DoubleApproval() {
	ctx := context.Background()
	request := suite.pendingRequest()
	request.Status = domain.StatusApproved
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.ApplyAction(ctx, request.RequestID, dto.ActionApprove, "", suite.dm.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *RequestServiceTestSuite) TestApplyAction_ConcurrentDecisionLoses() {
	ctx := context.Background()
	request := suite.pendingRequest()

	// Both approvers read PENDING; the repository's conditional update makes
	// the second write fail.
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockRequestRepo.On("TransitionRequestStatus", ctx, request.RequestID,
		domain.StatusPending, domain.StatusApproved, suite.dm.UserID, "", mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInvalidTransition).Once()

	_, err := suite.service.ApplyAction(ctx, request.RequestID, dto.ActionApprove, "", suite.dm.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestApplyAction_ConvertNotApplicable() {
	ctx := context.Background()

	_, err := suite.service.ApplyAction(ctx, uuid.NewString(), dto.ActionConvert, "", suite.dm.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "FindRequestByID", mock.Anything, mock.Anything)
}

func (suite *RequestServiceTestSuite) TestApplyAction_UnknownAction() {
	ctx := context.Background()

	_, err := suite.service.ApplyAction(ctx, uuid.NewString(), "escalate", "", suite.dm.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RequestServiceTestSuite) TestApplyAction_DeactivatedActorForbidden() {
	ctx := context.Background()
	request := suite.pendingRequest()
	lapsed := newTestUser(domain.RoleDistrictManager)
	deactivatedAt := lapsed.CreatedAt
	lapsed.DeactivatedAt = &deactivatedAt
	stubUser(suite.mockUserRepo, lapsed)
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.ApplyAction(ctx, request.RequestID, dto.ActionApprove, "", lapsed.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- GetRequestHistory ---

func (suite *RequestServiceTestSuite) TestGetRequestHistory_Visible() {
	ctx := context.Background()
	request := suite.pendingRequest()
	history := []domain.StatusChange{
		{
			ChangeID:   uuid.NewString(),
			RecordID:   request.RequestID,
			RecordType: "request",
			ActorID:    suite.dm.UserID,
			FromStatus: domain.StatusPending,
			ToStatus:   domain.StatusApproved,
			ChangedAt:  time.Now(),
		},
	}
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockAuditRepo.On("ListStatusChanges", ctx, request.RequestID).Return(history, nil).Once()

	got, err := suite.service.GetRequestHistory(ctx, request.RequestID, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestGetRequestHistory_OutsideScopeForbidden() {
	ctx := context.Background()
	request := suite.pendingRequest()
	outsider := newTestUser(domain.RoleMedicalRep)
	stubUser(suite.mockUserRepo, outsider)
	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.GetRequestHistory(ctx, request.RequestID, outsider.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "ListStatusChanges", mock.Anything, mock.Anything)
}

func TestRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RequestServiceTestSuite))
}
