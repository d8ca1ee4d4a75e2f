package repositories

import (
	"testing"

	"moneytrack/internal/database"
	"moneytrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

func (s *UserRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositoryTestSuite) TestCreateAndGetByID() {
	user := database.CreateTestUser(s.T(), s.db, "alice", "USD")

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("alice", found.Username)
	s.Equal("USD", found.DefaultCurrency)
}

func (s *UserRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositoryTestSuite) TestGetByUsername() {
	database.CreateTestUser(s.T(), s.db, "alice", "USD")

	found, err := s.repo.GetByUsername("alice")
	s.NoError(err)
	s.Equal("alice", found.Username)

	_, err = s.repo.GetByUsername("nobody")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositoryTestSuite) TestUpdateDefaultCurrency() {
	user := database.CreateTestUser(s.T(), s.db, "alice", "USD")

	s.NoError(s.repo.UpdateDefaultCurrency(user.ID, "EUR"))

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("EUR", found.DefaultCurrency)
}

func (s *UserRepositoryTestSuite) TestUpdateDefaultCurrency_NotFound() {
	s.ErrorIs(s.repo.UpdateDefaultCurrency(uuid.New(), "EUR"), ErrUserNotFound)
}

func (s *UserRepositoryTestSuite) TestCreate_Direct() {
	user := &models.User{
		ID:              uuid.New(),
		Username:        "carol",
		Email:           "carol@example.com",
		PasswordHash:    "not-a-real-hash",
		DefaultCurrency: "PLN",
	}
	s.NoError(s.repo.Create(user))

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("PLN", found.DefaultCurrency)
}
