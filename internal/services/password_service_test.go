package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type PasswordServiceTestSuite struct {
	suite.Suite
	service PasswordServiceInterface
}

func TestPasswordServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordServiceTestSuite))
}

func (s *PasswordServiceTestSuite) SetupSuite() {
	// MinCost keeps the suite fast; correctness does not depend on cost.
	s.service = NewPasswordService(bcrypt.MinCost)
}

func (s *PasswordServiceTestSuite) TestHashAndVerify() {
	hash, err := s.service.HashPassword("correct horse battery staple")
	s.Require().NoError(err)
	s.NotEqual("correct horse battery staple", hash)

	s.NoError(s.service.VerifyPassword(hash, "correct horse battery staple"))
}

func (s *PasswordServiceTestSuite) TestVerify_WrongPassword() {
	hash, err := s.service.HashPassword("correct horse battery staple")
	s.Require().NoError(err)

	s.ErrorIs(s.service.VerifyPassword(hash, "wrong password!"), ErrPasswordMismatch)
}

func (s *PasswordServiceTestSuite) TestHash_Empty() {
	_, err := s.service.HashPassword("")
	s.ErrorIs(err, ErrPasswordEmpty)
}

func (s *PasswordServiceTestSuite) TestHash_TooShort() {
	_, err := s.service.HashPassword(strings.Repeat("a", MinPasswordLength-1))
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *PasswordServiceTestSuite) TestHash_TooLong() {
	_, err := s.service.HashPassword(strings.Repeat("a", MaxPasswordLength+1))
	s.ErrorIs(err, ErrPasswordTooLong)
}

func (s *PasswordServiceTestSuite) TestHash_BoundaryLengthsAccepted() {
	for _, length := range []int{MinPasswordLength, MaxPasswordLength} {
		password := strings.Repeat("a", length)
		hash, err := s.service.HashPassword(password)
		s.NoError(err, "length %d should be accepted", length)
		s.NoError(s.service.VerifyPassword(hash, password))
	}
}

func (s *PasswordServiceTestSuite) TestHashesAreSalted() {
	first, err := s.service.HashPassword("correct horse battery staple")
	s.Require().NoError(err)
	second, err := s.service.HashPassword("correct horse battery staple")
	s.Require().NoError(err)

	s.NotEqual(first, second)
}
