package webapi

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	APITestSuite
}

func (s *AuthTestSuite) TestLoginRoute_BadRequest() {
	resp := s.makeRequest("POST", "/login", `{"account_number":"not-a-number"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthTestSuite) TestLoginRoute_UnknownAccount() {
	resp := s.makeRequest("POST", "/login", `{"account_number":999999,"password":"whatever"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthTestSuite) TestLoginRoute_WrongPassword() {
	body := fmt.Sprintf(`{"account_number":%d,"password":"wrongpassword"}`, s.testAccount)
	resp := s.makeRequest("POST", "/login", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthTestSuite) TestLoginRoute_Success() {
	body := fmt.Sprintf(`{"account_number":%d,"password":%q}`, s.testAccount, s.testPassword)
	resp := s.makeRequest("POST", "/login", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var loginResponse struct {
		Data struct {
			Token   string     `json:"token"`
			Account AccountDTO `json:"account"`
		} `json:"data"`
	}
	err := json.NewDecoder(resp.Body).Decode(&loginResponse)
	s.Require().NoError(err)
	s.Require().NotEmpty(loginResponse.Data.Token)
	s.Assert().Equal(s.testAccount, loginResponse.Data.Account.AccountNumber)
	s.Assert().Equal("500.00", loginResponse.Data.Account.Balance)
}

func (s *AuthTestSuite) TestChangePasswordRoute_Success() {
	body := fmt.Sprintf(
		`{"account_number":%d,"current_password":%q,"new_password":"brandnew1","confirm_password":"brandnew1"}`,
		s.testAccount, s.testPassword,
	)
	resp := s.makeRequest("POST", "/password", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	// old password no longer works, new one does
	oldBody := fmt.Sprintf(`{"account_number":%d,"password":%q}`, s.testAccount, s.testPassword)
	oldResp := s.makeRequest("POST", "/login", oldBody, "")
	defer oldResp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusUnauthorized, oldResp.StatusCode)

	newBody := fmt.Sprintf(`{"account_number":%d,"password":"brandnew1"}`, s.testAccount)
	newResp := s.makeRequest("POST", "/login", newBody, "")
	defer newResp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusOK, newResp.StatusCode)
}

func (s *AuthTestSuite) TestChangePasswordRoute_WrongCurrent() {
	body := fmt.Sprintf(
		`{"account_number":%d,"current_password":"nope","new_password":"brandnew1","confirm_password":"brandnew1"}`,
		s.testAccount,
	)
	resp := s.makeRequest("POST", "/password", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthTestSuite) TestChangePasswordRoute_ConfirmMismatch() {
	body := fmt.Sprintf(
		`{"account_number":%d,"current_password":%q,"new_password":"brandnew1","confirm_password":"different"}`,
		s.testAccount, s.testPassword,
	)
	resp := s.makeRequest("POST", "/password", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
