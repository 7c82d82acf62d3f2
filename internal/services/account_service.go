package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Roland778ad/devops-capstone-project/internal/models"
	"github.com/Roland778ad/devops-capstone-project/internal/repositories"
)

var ErrValidation = errors.New("invalid account payload")

type AccountService struct {
	accountRepo repositories.AccountRepository
	validate    *validator.Validate
}

// AccountRequest is the client-supplied account payload for create and
// update. Name, email and address are required; an id field, if present,
// is ignored in favor of the path parameter.
type AccountRequest struct {
	Name        string       `json:"name" validate:"required"`
	Email       string       `json:"email" validate:"required"`
	Address     string       `json:"address" validate:"required"`
	PhoneNumber *string      `json:"phone_number"`
	DateJoined  *models.Date `json:"date_joined"`
}

func NewAccountService(accountRepo repositories.AccountRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		validate:    validator.New(),
	}
}

func (s *AccountService) Create(ctx context.Context, req AccountRequest) (*models.Account, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, missingFields(err))
	}

	dateJoined := models.Today()
	if req.DateJoined != nil {
		dateJoined = *req.DateJoined
	}

	account := &models.Account{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		DateJoined:  dateJoined,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) List(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *AccountService) Update(ctx context.Context, id int64, req AccountRequest) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, missingFields(err))
	}

	account.Name = req.Name
	account.Email = req.Email
	account.Address = req.Address
	account.PhoneNumber = req.PhoneNumber
	if req.DateJoined != nil {
		account.DateJoined = *req.DateJoined
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Delete is idempotent: removing an absent account is not an error since the
// end state is the same.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	err := s.accountRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func missingFields(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msg := "missing required fields:"
	for i, fe := range verrs {
		if i > 0 {
			msg += ","
		}
		msg += " " + strings.ToLower(fe.Field())
	}
	return msg
}
