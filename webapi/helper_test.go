package webapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/amirasaad/bankledger/internal/fixtures"
	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/amirasaad/bankledger/pkg/service/auth"
	"github.com/amirasaad/bankledger/pkg/service/ledger"
	"github.com/amirasaad/bankledger/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

// APITestSuite spins up the app over an in-memory store; each test gets a
// fresh store and a seeded account.
type APITestSuite struct {
	suite.Suite

	app     *fiber.App
	uow     *fixtures.MemoryUoW
	authSvc *auth.Service

	testAccount  int64
	testPassword string
}

func (s *APITestSuite) SetupTest() {
	s.uow = fixtures.NewMemoryUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.App{
		Env:       "test",
		Server:    &config.Server{Host: "localhost", Port: 3000},
		Jwt:       &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
	s.authSvc = auth.New(s.uow, cfg.Jwt, logger)
	ledgerSvc := ledger.New(s.uow, logger)
	s.app = New(ledgerSvc, s.authSvc, cfg)

	s.testPassword = "secret123"
	hash, err := utils.HashPassword(s.testPassword)
	s.Require().NoError(err)
	s.testAccount = s.uow.Store.SeedAccount("Ada Lovelace", hash, "500.00")
}

// makeRequest issues a JSON request against the test app and returns the
// response.
func (s *APITestSuite) makeRequest(method, target, body, token string) *http.Response {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// login authenticates the seeded account and returns its bearer token.
func (s *APITestSuite) login() string {
	sess, err := s.authSvc.Login(s.T().Context(), s.testAccount, s.testPassword)
	s.Require().NoError(err)
	token, err := s.authSvc.GenerateToken(sess)
	s.Require().NoError(err)
	return token
}
