package services_test

import (
	"context"
	"testing"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	"github.com/fieldforce/sfm_backend/internal/core/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock VisitRepository ---

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) SaveVisit(ctx context.Context, visit domain.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockVisitRepository) FindVisitByID(ctx context.Context, visitID string) (*domain.Visit, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}

func (m *MockVisitRepository) FindVisits(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Visit, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		nextToken = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Visit), nextToken, args.Error(2)
}

// --- Test Suite Setup ---

type VisitServiceTestSuite struct {
	suite.Suite
	mockVisitRepo *MockVisitRepository
	mockUserRepo  *MockUserRepository
	service       *services.VisitService

	rep *domain.User
}

func (suite *VisitServiceTestSuite) SetupTest() {
	suite.mockVisitRepo = new(MockVisitRepository)
	suite.mockUserRepo = new(MockUserRepository)
	hierarchy := services.NewHierarchyService(suite.mockUserRepo)
	suite.service = services.NewVisitService(suite.mockVisitRepo, suite.mockUserRepo, hierarchy)

	suite.rep = newTestUser(domain.RoleMedicalRep)
	stubUser(suite.mockUserRepo, suite.rep)
}

func (suite *VisitServiceTestSuite) TestCreateVisit_RepLogsVisit() {
	ctx := context.Background()
	req := dto.CreateVisitRequest{ClinicID: uuid.NewString(), DoctorName: "Dr. Hope"}

	suite.mockVisitRepo.On("SaveVisit", ctx, mock.AnythingOfType("domain.Visit")).Return(nil).Once()

	created, err := suite.service.CreateVisit(ctx, req, suite.rep.UserID)

	suite.Require().NoError(err)
	suite.Equal(suite.rep.UserID, created.OwnerID)
	suite.False(created.VisitDate.IsZero(), "omitted visit date defaults to now")
	suite.mockVisitRepo.AssertExpectations(suite.T())
}

func (suite *VisitServiceTestSuite) TestCreateVisit_ManagersDoNotLogVisits() {
	ctx := context.Background()
	dm := newTestUser(domain.RoleDistrictManager)
	stubUser(suite.mockUserRepo, dm)

	_, err := suite.service.CreateVisit(ctx, dto.CreateVisitRequest{ClinicID: uuid.NewString()}, dm.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockVisitRepo.AssertNotCalled(suite.T(), "SaveVisit", mock.Anything, mock.Anything)
}

func (suite *VisitServiceTestSuite) TestListVisits_StatusFilterDropped() {
	ctx := context.Background()
	status := string(domain.StatusPending)
	params := dto.ListRecordsParams{Status: &status, Limit: 10}

	suite.mockVisitRepo.On("FindVisits", ctx, mock.MatchedBy(func(filter portsrepo.RecordFilter) bool {
		return filter.Status == nil && filter.Limit == 10
	})).Return([]domain.Visit{}, nil, nil).Once()

	_, _, err := suite.service.ListVisits(ctx, suite.rep.UserID, params)

	suite.Require().NoError(err)
	suite.mockVisitRepo.AssertExpectations(suite.T())
}

func TestVisitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VisitServiceTestSuite))
}
