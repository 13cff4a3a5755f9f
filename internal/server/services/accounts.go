// Package services implements the domain operations on top of the
// repositories. Validation, password hashing and the deletion cascade live
// here as explicit steps, so nothing relies on hidden storage callbacks.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/tzetzo/task-manager-api/internal/common"
	"github.com/tzetzo/task-manager-api/internal/server/models"
	"github.com/tzetzo/task-manager-api/internal/server/repositories/accounts"
	"github.com/tzetzo/task-manager-api/internal/server/repositories/sessiontokens"
	"github.com/tzetzo/task-manager-api/internal/server/repositories/tasks"
)

// bcryptCost is the fixed work factor applied to every stored password.
const bcryptCost = 8

// TokenGenerator mints a signed session token for an account id.
type TokenGenerator func(accountID string) (string, error)

type Accounts struct {
	repo     accounts.Repository
	tokens   sessiontokens.Repository
	tasks    tasks.Repository
	genToken TokenGenerator
	validate *validator.Validate
}

// NewAccounts builds the account service. The token generator carries the
// signing secret so the service itself never touches process environment.
func NewAccounts(repo accounts.Repository, tokens sessiontokens.Repository, tasks tasks.Repository, genToken TokenGenerator) *Accounts {
	return &Accounts{
		repo:     repo,
		tokens:   tokens,
		tasks:    tasks,
		genToken: genToken,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Age      int64  `validate:"gte=0"`
}

// UpdateInput carries the writable account fields; nil means "leave as is".
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int64
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, msg)
}

// fieldError translates the first validator failure into the user-facing
// message of the corresponding field.
func fieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return validationError(err.Error())
	}

	fe := verrs[0]
	switch {
	case fe.Field() == "Email" && fe.Tag() == "email":
		return validationError("Email is invalid")
	case fe.Field() == "Age":
		return validationError("Age must be a positive number")
	default:
		return validationError(fe.Field() + " is required")
	}
}

// checkPassword enforces the password policy on the plaintext, before
// hashing: at least 7 characters and no "password" substring in any casing.
// Length is counted in characters, so multibyte input is not undercounted.
func checkPassword(plaintext string) error {
	if utf8.RuneCountInString(plaintext) < 7 {
		return validationError("Password must be at least 7 characters")
	}
	if strings.Contains(strings.ToLower(plaintext), "password") {
		return validationError("Password should not contain the word password")
	}
	return nil
}

// hashPassword is the single place plaintext becomes a stored hash.
func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash error: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the supplied fields, hashes the password and persists a
// new account. The plaintext never reaches the repository.
func (s *Accounts) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {

	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Password = strings.TrimSpace(in.Password)

	if err := s.validate.Struct(in); err != nil {
		return nil, fieldError(err)
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Age:      in.Age,
	}

	account, err = s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	return account, nil
}

// FindByCredentials authenticates by email and plaintext password. Unknown
// email and wrong password fail identically with common.ErrUnableToLogin.
func (s *Accounts) FindByCredentials(ctx context.Context, email, password string) (*models.Account, error) {

	account, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnableToLogin
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, common.ErrUnableToLogin
	}

	if err := s.loadTokens(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// IssueToken mints a session token, appends it to the account's token
// sequence and persists the sequence before returning. If the write fails
// the token is not returned and must not be treated as valid.
func (s *Accounts) IssueToken(ctx context.Context, account *models.Account) (string, error) {

	token, err := s.genToken(account.ID)
	if err != nil {
		return "", err
	}

	if err := s.tokens.Append(ctx, account.ID, token); err != nil {
		return "", err
	}

	account.Tokens = append(account.Tokens, models.SessionToken{AccountID: account.ID, Token: token})

	return token, nil
}

// Get loads an account with its token sequence.
func (s *Accounts) Get(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadTokens(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Accounts) loadTokens(ctx context.Context, account *models.Account) error {
	tokens, err := s.tokens.ListByAccount(ctx, account.ID)
	if err != nil {
		return err
	}
	account.Tokens = tokens
	return nil
}

// HasToken reports whether the token is still part of the account's
// sequence, i.e. has been issued and not revoked.
func (s *Accounts) HasToken(ctx context.Context, accountID, token string) (bool, error) {
	return s.tokens.Exists(ctx, accountID, token)
}

// Update applies the supplied fields, re-validates, re-hashes the password
// only when it changed, and saves. Last writer wins; there is no version
// check.
func (s *Accounts) Update(ctx context.Context, account *models.Account, in UpdateInput) (*models.Account, error) {

	updated := *account

	if in.Name != nil {
		updated.Name = strings.TrimSpace(*in.Name)
		if updated.Name == "" {
			return nil, validationError("Name is required")
		}
	}
	if in.Email != nil {
		updated.Email = normalizeEmail(*in.Email)
		if updated.Email == "" {
			return nil, validationError("Email is required")
		}
		if err := s.validate.Var(updated.Email, "email"); err != nil {
			return nil, validationError("Email is invalid")
		}
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return nil, validationError("Age must be a positive number")
		}
		updated.Age = *in.Age
	}
	if in.Password != nil {
		plaintext := strings.TrimSpace(*in.Password)
		if err := checkPassword(plaintext); err != nil {
			return nil, err
		}
		hash, err := hashPassword(plaintext)
		if err != nil {
			return nil, err
		}
		updated.Password = hash
	}

	saved, err := s.repo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// Delete removes the account and everything attached to it. The cascade runs
// before the account row is removed: owned tasks first, then the token
// sequence, then the row. The steps are sequential and not transactional; a
// failure part-way leaves the remaining steps to a retried delete.
func (s *Accounts) Delete(ctx context.Context, account *models.Account) error {

	if err := s.tasks.DeleteByOwner(ctx, account.ID); err != nil {
		return err
	}

	if err := s.tokens.DeleteByAccount(ctx, account.ID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, account.ID)
}

// RevokeToken removes a single token from the sequence (logout).
func (s *Accounts) RevokeToken(ctx context.Context, accountID, token string) error {
	return s.tokens.Delete(ctx, accountID, token)
}

// RevokeAllTokens empties the sequence (logout everywhere).
func (s *Accounts) RevokeAllTokens(ctx context.Context, accountID string) error {
	return s.tokens.DeleteByAccount(ctx, accountID)
}

// UpdateAvatar stores the raw image bytes on the account.
func (s *Accounts) UpdateAvatar(ctx context.Context, account *models.Account, avatar []byte) error {
	if err := s.repo.UpdateAvatar(ctx, account.ID, avatar); err != nil {
		return err
	}
	account.Avatar = avatar
	return nil
}

// RemoveAvatar clears the stored image.
func (s *Accounts) RemoveAvatar(ctx context.Context, account *models.Account) error {
	if err := s.repo.UpdateAvatar(ctx, account.ID, nil); err != nil {
		return err
	}
	account.Avatar = nil
	return nil
}
