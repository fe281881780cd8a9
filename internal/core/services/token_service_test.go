package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/core/services"
	"github.com/fieldforce/sfm_backend/internal/platform/config"
	"github.com/fieldforce/sfm_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:                  "test-secret-key-that-is-long-enough",
		JWTIssuer:                  "sfm-test",
		JWTExpiryDuration:          time.Hour,
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.service = services.NewTokenService(suite.mockRepo, cfg)
}

func (suite *TokenServiceTestSuite) TestGenerateTokenPair() {
	ctx := context.Background()
	user := newTestUser(domain.RoleMedicalRep)

	var storedHash string
	suite.mockRepo.On("UpdateRefreshToken", ctx, user.UserID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).Return(nil).Once()

	pair, err := suite.service.GenerateTokenPair(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(pair.AccessToken)
	suite.True(strings.HasPrefix(pair.RefreshToken, user.UserID+":"), "refresh token embeds the owner's ID")

	rawToken := strings.TrimPrefix(pair.RefreshToken, user.UserID+":")
	suite.NotEqual(rawToken, storedHash, "only the hash is persisted")
	suite.True(utils.CompareRefreshTokenHash(rawToken, storedHash))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestRefreshTokenPair_RotatesToken() {
	ctx := context.Background()
	user := newTestUser(domain.RoleMedicalRep)

	var storedHash string
	suite.mockRepo.On("UpdateRefreshToken", ctx, user.UserID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).Return(nil).Twice()

	pair, err := suite.service.GenerateTokenPair(ctx, user)
	suite.Require().NoError(err)

	expiry := time.Now().Add(time.Hour)
	user.RefreshTokenHash = &storedHash
	user.RefreshTokenExpiryTime = &expiry
	stubUser(suite.mockRepo, user)

	refreshedUser, newPair, err := suite.service.RefreshTokenPair(ctx, pair.RefreshToken)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, refreshedUser.UserID)
	suite.NotEqual(pair.RefreshToken, newPair.RefreshToken, "refresh rotates the token")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestRefreshTokenPair_MalformedToken() {
	ctx := context.Background()

	for _, token := range []string{"", "no-separator", ":missing-user", "missing-token:"} {
		_, _, err := suite.service.RefreshTokenPair(ctx, token)

		suite.Require().Error(err, "token %q should be rejected", token)
		suite.ErrorIs(err, apperrors.ErrUnauthenticated)
	}
}

func (suite *TokenServiceTestSuite) TestRefreshTokenPair_WrongToken() {
	ctx := context.Background()
	user := newTestUser(domain.RoleMedicalRep)
	hash := utils.HashRefreshToken("the-real-token")
	expiry := time.Now().Add(time.Hour)
	user.RefreshTokenHash = &hash
	user.RefreshTokenExpiryTime = &expiry
	stubUser(suite.mockRepo, user)

	_, _, err := suite.service.RefreshTokenPair(ctx, user.UserID+":a-guessed-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (suite *TokenServiceTestSuite) TestRefreshTokenPair_ExpiredToken() {
	ctx := context.Background()
	user := newTestUser(domain.RoleMedicalRep)
	hash := utils.HashRefreshToken("the-real-token")
	expiry := time.Now().Add(-time.Minute)
	user.RefreshTokenHash = &hash
	user.RefreshTokenExpiryTime = &expiry
	stubUser(suite.mockRepo, user)

	_, _, err := suite.service.RefreshTokenPair(ctx, user.UserID+":the-real-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TokenServiceTestSuite) TestRevokeRefreshToken() {
	ctx := context.Background()
	suite.mockRepo.On("ClearRefreshToken", ctx, "u1").Return(nil).Once()

	err := suite.service.RevokeRefreshToken(ctx, "u1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
