// Package classservice manages business logic layer of classes.
package classservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
	"github.com/maktab-app/maktab-wallet/pkg/moneypkg"
)

// Repo provides data access layer interface needed by class service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package classservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateClassParams) (domain.Class, error)
	Get(ctx context.Context, id int32) (domain.Class, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Class, error)
	AddStudent(ctx context.Context, id int32) (domain.Class, error)
}

// AccountService resolves wallet accounts by owner.
type AccountService interface {
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
}

// PaymentService executes the lesson payment when a student joins a class.
type PaymentService interface {
	Transfer(ctx context.Context, fromUsername string, arg domain.TransferParams) (domain.TransferTxResult, error)
}

// Service facilitates class service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
	payments       PaymentService
}

// New returns class service struct to manage class business logic.
func New(cr Repo, as AccountService, ps PaymentService) *Service {
	return &Service{
		repo:           cr,
		accountService: as,
		payments:       ps,
	}
}

// Create validates the price and creates the class.
func (s *Service) Create(ctx context.Context, arg domain.CreateClassParams) (domain.Class, error) {
	if !moneypkg.Valid(arg.Price) {
		return domain.Class{}, domain.ErrInvalidAmount
	}

	return s.repo.Create(ctx, arg)
}

// Get returns the class with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Class, error) {
	return s.repo.Get(ctx, id)
}

// List returns classes ordered by id, applying page size and page id.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Class, error) {
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, pageSize, offset)
}

// Join charges the student the class price as a lesson payment to the
// teacher's wallet and enrolls them. The payment and the enrollment are not
// atomic with each other, the payment always lands first.
func (s *Service) Join(ctx context.Context, username string, classID int32) (domain.JoinClassResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.JoinClassResult

	class, err := s.repo.Get(ctx, classID)
	if err != nil {
		return result, err
	}

	if class.Teacher == username {
		return result, domain.ErrOwnClassJoin
	}

	studentAccount, err := s.accountService.GetByOwner(ctx, username)
	if err != nil {
		return result, err
	}

	teacherAccount, err := s.accountService.GetByOwner(ctx, class.Teacher)
	if err != nil {
		return result, err
	}

	payment, err := s.payments.Transfer(ctx, username, domain.TransferParams{
		FromAccountID: &studentAccount.ID,
		ToAccountID:   teacherAccount.ID,
		Amount:        class.Price,
		Kind:          domain.KindLessonPayment,
		Description:   "Class: " + class.Title,
	})
	if err != nil {
		return result, err
	}

	updated, err := s.repo.AddStudent(ctx, classID)
	if err != nil {
		l.Error().Err(err).Int32("class_id", classID).Msg("payment landed but enrollment failed")
		return result, errorspkg.ErrInternal
	}

	result = domain.JoinClassResult{
		Class:   updated,
		Payment: payment,
	}

	return result, nil
}
