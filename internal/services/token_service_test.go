package services

import (
	"testing"
	"time"

	"moneytrack/internal/config"
	"moneytrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	service TokenServiceInterface
	user    *models.User
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) SetupSuite() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.service = NewTokenService(&config.JWTConfig{
		AccessTokenDuration: time.Hour,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "moneytrack-test",
	})
	s.user = &models.User{
		ID:       uuid.New(),
		Username: "alice",
	}
}

func (s *TokenServiceTestSuite) TestGenerateAndValidateRoundTrip() {
	token, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)
	s.NotEmpty(token)

	claims, err := s.service.ValidateAccessToken(token)
	s.Require().NoError(err)
	s.Equal(s.user.ID.String(), claims.UserID)
	s.Equal("alice", claims.Username)
	s.Equal("alice", claims.Subject)
	s.Equal("moneytrack-test", claims.Issuer)
}

func (s *TokenServiceTestSuite) TestGenerate_NilUser() {
	_, err := s.service.GenerateAccessToken(nil)
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestValidate_EmptyToken() {
	_, err := s.service.ValidateAccessToken("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceTestSuite) TestValidate_GarbageToken() {
	_, err := s.service.ValidateAccessToken("not.a.token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidate_ExpiredToken() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	expiring := NewTokenService(&config.JWTConfig{
		AccessTokenDuration: -time.Minute,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "moneytrack-test",
	})

	token, err := expiring.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = expiring.ValidateAccessToken(token)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestValidate_WrongKeyRejected() {
	otherPrivate, otherPublic, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	other := NewTokenService(&config.JWTConfig{
		AccessTokenDuration: time.Hour,
		PrivateKey:          otherPrivate,
		PublicKey:           otherPublic,
		Issuer:              "moneytrack-test",
	})

	token, err := other.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidate_WrongIssuer() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	// Same key pair, different issuer claim.
	issuing := NewTokenService(&config.JWTConfig{
		AccessTokenDuration: time.Hour,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "someone-else",
	})
	validating := NewTokenService(&config.JWTConfig{
		AccessTokenDuration: time.Hour,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "moneytrack-test",
	})

	token, err := issuing.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = validating.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidIssuer)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	testCases := []struct {
		header      string
		expected    string
		expectError bool
		description string
	}{
		{"Bearer abc123", "abc123", false, "standard bearer header"},
		{"bearer abc123", "abc123", false, "lowercase scheme accepted"},
		{"BEARER abc123", "abc123", false, "uppercase scheme accepted"},
		{"", "", true, "empty header"},
		{"Bearer ", "", true, "missing token"},
		{"Basic abc123", "", true, "wrong scheme"},
		{"abc123", "", true, "bare token without scheme"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			token, err := s.service.ExtractTokenFromHeader(tc.header)
			if tc.expectError {
				s.ErrorIs(err, ErrInvalidAuthHeader)
			} else {
				s.NoError(err)
				s.Equal(tc.expected, token)
			}
		})
	}
}
