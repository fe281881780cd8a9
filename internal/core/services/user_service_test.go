package services_test

import (
	"context"
	"testing"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/core/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	hierarchy := services.NewHierarchyService(suite.mockRepo)
	suite.service = services.NewUserService(suite.mockRepo, hierarchy)
}

func strPtr(s string) *string {
	return &s
}

// --- CreateUser ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	admin := newTestUser(domain.RoleAdmin)
	manager := newTestUser(domain.RoleDistrictManager)
	stubUser(suite.mockRepo, admin)
	stubUser(suite.mockRepo, manager)

	req := dto.CreateUserRequest{
		Username:  "new.rep",
		Password:  "strong-password",
		Name:      "New Rep",
		Role:      string(domain.RoleMedicalRep),
		District:  "North",
		ManagerID: &manager.UserID,
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, req, admin.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.UserID)
	suite.Equal(domain.RoleMedicalRep, created.Role)
	suite.Equal(&manager.UserID, created.ManagerID)
	suite.Equal(admin.UserID, created.CreatedBy)
	suite.NotEqual(req.Password, created.PasswordHash, "passwords are stored hashed")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_NonAdminForbidden() {
	ctx := context.Background()
	dm := newTestUser(domain.RoleDistrictManager)
	stubUser(suite.mockRepo, dm)

	req := dto.CreateUserRequest{
		Username: "new.rep",
		Password: "strong-password",
		Name:     "New Rep",
		Role:     string(domain.RoleMedicalRep),
	}

	created, err := suite.service.CreateUser(ctx, req, dm.UserID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_ManagerMustOutrankSubject() {
	ctx := context.Background()
	admin := newTestUser(domain.RoleAdmin)
	peer := newTestUser(domain.RoleMedicalRep)
	stubUser(suite.mockRepo, admin)
	stubUser(suite.mockRepo, peer)

	req := dto.CreateUserRequest{
		Username:  "new.rep",
		Password:  "strong-password",
		Name:      "New Rep",
		Role:      string(domain.RoleMedicalRep),
		ManagerID: &peer.UserID,
	}

	created, err := suite.service.CreateUser(ctx, req, admin.UserID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestCreateUser_DeactivatedManagerRejected() {
	ctx := context.Background()
	admin := newTestUser(domain.RoleAdmin)
	manager := newTestUser(domain.RoleDistrictManager)
	deactivatedAt := manager.CreatedAt
	manager.DeactivatedAt = &deactivatedAt
	stubUser(suite.mockRepo, admin)
	stubUser(suite.mockRepo, manager)

	req := dto.CreateUserRequest{
		Username:  "new.rep",
		Password:  "strong-password",
		Name:      "New Rep",
		Role:      string(domain.RoleMedicalRep),
		ManagerID: &manager.UserID,
	}

	_, err := suite.service.CreateUser(ctx, req, admin.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRole() {
	ctx := context.Background()
	admin := newTestUser(domain.RoleAdmin)
	stubUser(suite.mockRepo, admin)

	req := dto.CreateUserRequest{
		Username: "new.rep",
		Password: "strong-password",
		Name:     "New Rep",
		Role:     "SUPERVISOR",
	}

	_, err := suite.service.CreateUser(ctx, req, admin.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- RegisterUser ---

func (suite *UserServiceTestSuite) TestRegisterUser_AlwaysLowestRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "self.service",
		Password: "strong-password",
		Name:     "Self Service",
		Role:     string(domain.RoleAdmin), // Must be ignored.
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	created, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleMedicalRep, created.Role)
	suite.Nil(created.ManagerID)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	rep := newTestUser(domain.RoleMedicalRep)
	hash, err := utils.HashPassword("correct horse")
	suite.Require().NoError(err)
	rep.PasswordHash = hash
	suite.mockRepo.On("FindUserByUsername", ctx, rep.Username).Return(rep, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, rep.Username, "correct horse")

	suite.Require().NoError(err)
	suite.Equal(rep.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	rep := newTestUser(domain.RoleMedicalRep)
	hash, err := utils.HashPassword("correct horse")
	suite.Require().NoError(err)
	rep.PasswordHash = hash
	suite.mockRepo.On("FindUserByUsername", ctx, rep.Username).Return(rep, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, rep.Username, "battery staple")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUser() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(ctx, "nobody", "whatever")

	suite.Require().Error(err)
	suite.Nil(user)
	// Unknown user and wrong password must be indistinguishable.
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_DeactivatedUser() {
	ctx := context.Background()
	rep := newTestUser(domain.RoleMedicalRep)
	hash, err := utils.HashPassword("correct horse")
	suite.Require().NoError(err)
	rep.PasswordHash = hash
	deactivatedAt := rep.CreatedAt
	rep.DeactivatedAt = &deactivatedAt
	suite.mockRepo.On("FindUserByUsername", ctx, rep.Username).Return(rep, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, rep.Username, "correct horse")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

// --- ListUsers ---

func (suite *UserServiceTestSuite) TestListUsers_TopLevelSeesDirectory() {
	ctx := context.Background()
	admin := newTestUser(domain.RoleAdmin)
	stubUser(suite.mockRepo, admin)
	directory := []domain.User{*newTestUser(domain.RoleMedicalRep), *newTestUser(domain.RoleDistrictManager)}
	suite.mockRepo.On("FindUsers", ctx, 20, 0).Return(directory, nil).Once()

	users, err := suite.service.ListUsers(ctx, admin.UserID, 20, 0)

	suite.Require().NoError(err)
	suite.Len(users, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListUsers_ManagerSeesSubtree() {
	ctx := context.Background()
	dm := newTestUser(domain.RoleDistrictManager)
	rep := newTestUser(domain.RoleMedicalRep)
	stubUser(suite.mockRepo, dm)
	stubUser(suite.mockRepo, rep)
	suite.mockRepo.On("FindSubordinateIDs", ctx, dm.UserID).Return([]string{rep.UserID}, nil).Once()

	users, err := suite.service.ListUsers(ctx, dm.UserID, 20, 0)

	suite.Require().NoError(err)
	suite.Len(users, 2, "manager plus one subordinate")
	suite.mockRepo.AssertNotCalled(suite.T(), "FindUsers", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestListUsers_RepSeesOnlySelf() {
	ctx := context.Background()
	rep := newTestUser(domain.RoleMedicalRep)
	stubUser(suite.mockRepo, rep)

	users, err := suite.service.ListUsers(ctx, rep.UserID, 20, 0)

	suite.Require().NoError(err)
	suite.Require().Len(users, 1)
	suite.Equal(rep.UserID, users[0].UserID)
}

// --- UpdateUser ---

func (suite *UserServiceTestSuite) TestUpdateUser_SelfRename() {
	ctx := context.Background()
	rep := newTestUser(domain.RoleMedicalRep)
	stubUser(suite.mockRepo, rep)
	suite.mockRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, rep.UserID, dto.UpdateUserRequest{Name: strPtr("Renamed")}, rep.UserID)

	suite.Require().NoError(err)
	suite.Equal("Renamed", updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NonAdminCannotChangeRole() {
	ctx := context.Background()
	rep := newTestUser(domain.RoleMedicalRep)
	stubUser(suite.mockRepo, rep)

	_, err := suite.service.UpdateUser(ctx, rep.UserID, dto.UpdateUserRequest{Role: strPtr(string(domain.RoleAdmin))}, rep.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_NonAdminCannotTouchOthers() {
	ctx := context.Background()
	rep := newTestUser(domain.RoleMedicalRep)
	other := newTestUser(domain.RoleMedicalRep)
	stubUser(suite.mockRepo, rep)
	stubUser(suite.mockRepo, other)

	_, err := suite.service.UpdateUser(ctx, other.UserID, dto.UpdateUserRequest{Name: strPtr("Hijack")}, rep.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestUpdateUser_RoleChangeRechecksManagerRank() {
	ctx := context.Background()
	admin := newTestUser(domain.RoleAdmin)
	dm := newTestUser(domain.RoleDistrictManager)
	rep := newTestUser(domain.RoleMedicalRep)
	rep.ManagerID = &dm.UserID
	stubUser(suite.mockRepo, admin)
	stubUser(suite.mockRepo, dm)
	stubUser(suite.mockRepo, rep)

	// Promoting the rep to the manager's own rank breaks the invariant.
	_, err := suite.service.UpdateUser(ctx, rep.UserID, dto.UpdateUserRequest{Role: strPtr(string(domain.RoleDistrictManager))}, admin.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

// --- DeactivateUser ---

func (suite *UserServiceTestSuite) TestDeactivateUser_AdminOnly() {
	ctx := context.Background()
	dm := newTestUser(domain.RoleDistrictManager)
	stubUser(suite.mockRepo, dm)

	err := suite.service.DeactivateUser(ctx, uuid.NewString(), dm.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkUserDeactivated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeactivateUser_Success() {
	ctx := context.Background()
	admin := newTestUser(domain.RoleAdmin)
	rep := newTestUser(domain.RoleMedicalRep)
	stubUser(suite.mockRepo, admin)
	suite.mockRepo.On("MarkUserDeactivated", ctx, rep.UserID, mock.AnythingOfType("time.Time"), admin.UserID).Return(nil).Once()

	err := suite.service.DeactivateUser(ctx, rep.UserID, admin.UserID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
