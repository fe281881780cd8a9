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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoices(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		nextToken = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Invoice), nextToken, args.Error(2)
}

func (m *MockInvoiceRepository) TransitionInvoiceStatus(ctx context.Context, invoiceID string, fromStatus, toStatus domain.ApprovalStatus, actorID, notes string, at time.Time) error {
	args := m.Called(ctx, invoiceID, fromStatus, toStatus, actorID, notes, at)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ConvertInvoiceToDebt(ctx context.Context, invoiceID string, debt domain.Debt, actorID, notes string, at time.Time) error {
	args := m.Called(ctx, invoiceID, debt, actorID, notes, at)
	return args.Error(0)
}

// --- Test Suite Setup ---

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockUserRepo    *MockUserRepository
	service         *services.InvoiceService

	dm  *domain.User
	rep *domain.User
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockUserRepo = new(MockUserRepository)
	hierarchy := services.NewHierarchyService(suite.mockUserRepo)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockUserRepo, hierarchy)

	suite.dm = newTestUser(domain.RoleDistrictManager)
	suite.rep = newTestUser(domain.RoleMedicalRep)
	suite.rep.ManagerID = &suite.dm.UserID
	stubUser(suite.mockUserRepo, suite.dm)
	stubUser(suite.mockUserRepo, suite.rep)
}

func (suite *InvoiceServiceTestSuite) invoiceWithStatus(status domain.ApprovalStatus) *domain.Invoice {
	now := time.Now()
	return &domain.Invoice{
		InvoiceID:   uuid.NewString(),
		OwnerID:     suite.rep.UserID,
		ClinicID:    uuid.NewString(),
		Amount:      decimal.NewFromFloat(1250.50),
		Description: "Q3 order",
		Status:      status,
		InvoiceDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     suite.rep.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: suite.rep.UserID,
		},
	}
}

// --- CreateInvoice ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		ClinicID: uuid.NewString(),
		Amount:   decimal.NewFromInt(300),
	}

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	created, err := suite.service.CreateInvoice(ctx, req, suite.rep.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, created.Status)
	suite.True(created.Amount.Equal(decimal.NewFromInt(300)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		req := dto.CreateInvoiceRequest{ClinicID: uuid.NewString(), Amount: amount}

		_, err := suite.service.CreateInvoice(ctx, req, suite.rep.UserID)

		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_TopLevelForbidden() {
	ctx := context.Background()
	gm := newTestUser(domain.RoleGeneralManager)
	stubUser(suite.mockUserRepo, gm)
	req := dto.CreateInvoiceRequest{ClinicID: uuid.NewString(), Amount: decimal.NewFromInt(300)}

	_, err := suite.service.CreateInvoice(ctx, req, gm.UserID)

	suite.ErrorIs(err, apperrors.ErrForbidden, "invoices are raised by field staff, not reviewers")
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

// --- ApplyAction ---

func (suite *InvoiceServiceTestSuite) TestApplyAction_ConvertApprovedInvoice() {
	ctx := context.Background()
	invoice := suite.invoiceWithStatus(domain.StatusApproved)
	converted := *invoice
	converted.Status = domain.StatusConverted

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("ConvertInvoiceToDebt", ctx, invoice.InvoiceID,
		mock.MatchedBy(func(debt domain.Debt) bool {
			return debt.OwnerID == invoice.OwnerID &&
				debt.Amount.Equal(invoice.Amount) &&
				debt.Status == domain.StatusPending &&
				debt.SourceInvoiceID != nil && *debt.SourceInvoiceID == invoice.InvoiceID
		}),
		suite.dm.UserID, "converting", mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&converted, nil).Once()

	updated, err := suite.service.ApplyAction(ctx, invoice.InvoiceID, dto.ActionConvert, "converting", suite.dm.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusConverted, updated.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestApplyAction_ConvertPendingInvoiceRejected() {
	ctx := context.Background()
	invoice := suite.invoiceWithStatus(domain.StatusPending)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	// Conversion requires an approval first.
	_, err := suite.service.ApplyAction(ctx, invoice.InvoiceID, dto.ActionConvert, "", suite.dm.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ConvertInvoiceToDebt",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestApplyAction_RejectPendingInvoice() {
	ctx := context.Background()
	invoice := suite.invoiceWithStatus(domain.StatusPending)
	rejected := *invoice
	rejected.Status = domain.StatusRejected

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("TransitionInvoiceStatus", ctx, invoice.InvoiceID,
		domain.StatusPending, domain.StatusRejected, suite.dm.UserID, "out of budget", mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&rejected, nil).Once()

	updated, err := suite.service.ApplyAction(ctx, invoice.InvoiceID, dto.ActionReject, "out of budget", suite.dm.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, updated.Status)
}

func (suite *InvoiceServiceTestSuite) TestApplyAction_SettleNotApplicable() {
	ctx := context.Background()

	_, err := suite.service.ApplyAction(ctx, uuid.NewString(), dto.ActionSettle, "", suite.dm.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestApplyAction_SelfConversionForbidden() {
	ctx := context.Background()
	invoice := suite.invoiceWithStatus(domain.StatusApproved)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.ApplyAction(ctx, invoice.InvoiceID, dto.ActionConvert, "", suite.rep.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ConvertInvoiceToDebt",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
