// Package auth provides authentication for the ledger: login against stored
// bcrypt credentials, password changes, and JWT session tokens for the HTTP
// adapter. A Session is explicit state owned by the caller; it is created at
// login and simply discarded at logout.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/amirasaad/bankledger/pkg/mapper"
	"github.com/amirasaad/bankledger/pkg/repository"
	"github.com/amirasaad/bankledger/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// dummyHash is a valid bcrypt hash burned on lookups that miss, so a missing
// account and a wrong password take comparable time.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Session is the state between a successful login and logout: the
// authenticated account with its loaded transaction history.
type Session struct {
	ID        uuid.UUID
	Account   *domain.Account
	CreatedAt time.Time
}

// Service authenticates accounts and manages credentials.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth Service.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies the password against the stored hash and, on success,
// returns a Session holding the fully loaded account. Bad credentials and
// unknown accounts both return domain.ErrAuthentication; no partial session
// state is ever created.
func (s *Service) Login(ctx context.Context, number int64, password string) (*Session, error) {
	log := s.logger.With("accountNumber", number)
	log.Debug("Login called")

	account, err := s.loadAccount(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = utils.CheckPasswordHash(password, dummyHash)
			log.Warn("Login failed: unknown account")
			return nil, domain.ErrAuthentication
		}
		log.Error("Login failed: store error", "error", err)
		return nil, err
	}
	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		log.Warn("Login failed: wrong password")
		return nil, domain.ErrAuthentication
	}

	sess := &Session{ID: uuid.New(), Account: account, CreatedAt: time.Now()}
	log.Info("Login successful", "sessionID", sess.ID)
	return sess, nil
}

// ChangePassword verifies the current password, requires the new password to
// match its confirmation, and persists a fresh salted hash. The old hash is
// not retained.
func (s *Service) ChangePassword(ctx context.Context, number int64, current, newPassword, confirm string) error {
	log := s.logger.With("accountNumber", number)
	log.Debug("ChangePassword called")

	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: new password must not be empty", domain.ErrValidation)
	}
	if newPassword != confirm {
		return fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		read, err := accounts.Get(ctx, number)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				_ = utils.CheckPasswordHash(current, dummyHash)
				return domain.ErrAuthentication
			}
			return err
		}
		if !utils.CheckPasswordHash(current, read.PasswordHash) {
			return domain.ErrAuthentication
		}
		hash, err := utils.HashPassword(newPassword)
		if err != nil {
			return err
		}
		return accounts.UpdatePassword(ctx, number, hash)
	})
	if err != nil {
		log.Warn("ChangePassword failed", "error", err)
		return err
	}
	log.Info("ChangePassword successful")
	return nil
}

// GenerateToken issues a signed JWT for the session, carrying the account
// number and session ID.
func (s *Service) GenerateToken(sess *Session) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["account_number"] = sess.Account.Number
	claims["session_id"] = sess.ID.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("GenerateToken failed", "accountNumber", sess.Account.Number, "error", err)
		return "", err
	}
	return tokenString, nil
}

// SessionFromToken rebuilds a Session from a verified JWT, loading the
// account and its history fresh from the store.
func (s *Service) SessionFromToken(ctx context.Context, token *jwt.Token) (*Session, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrAuthentication
	}
	numberRaw, ok := claims["account_number"].(float64)
	if !ok {
		return nil, domain.ErrAuthentication
	}
	sessionIDRaw, _ := claims["session_id"].(string)
	sessionID, err := uuid.Parse(sessionIDRaw)
	if err != nil {
		return nil, domain.ErrAuthentication
	}

	account, err := s.loadAccount(ctx, int64(numberRaw))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAuthentication
		}
		return nil, err
	}
	return &Session{ID: sessionID, Account: account, CreatedAt: time.Now()}, nil
}

// loadAccount fetches the account row and its transaction history in one
// consistent read.
func (s *Service) loadAccount(ctx context.Context, number int64) (account *domain.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		read, err := accounts.Get(ctx, number)
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		txs, err := txRepo.ListByAccount(ctx, number)
		if err != nil {
			return err
		}
		account, err = mapper.AccountFromRead(read, txs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}
