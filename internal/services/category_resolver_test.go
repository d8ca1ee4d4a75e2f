package services

import (
	"io"
	"log/slog"
	"testing"

	"moneytrack/internal/database"
	"moneytrack/internal/models"
	"moneytrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CategoryResolverTestSuite struct {
	suite.Suite
	db       *database.DB
	repo     repositories.CategoryRepositoryInterface
	resolver CategoryResolverInterface
	user     *models.User
}

func TestCategoryResolverSuite(t *testing.T) {
	suite.Run(t, new(CategoryResolverTestSuite))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *CategoryResolverTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = repositories.NewCategoryRepository(s.db.DB)
	s.resolver = NewCategoryResolver(s.repo, nil, discardLogger())
	s.user = database.CreateTestUser(s.T(), s.db, "alice", "USD")
}

func (s *CategoryResolverTestSuite) TestResolveOrCreate_CreatesWhenAbsent() {
	category, err := s.resolver.ResolveOrCreate(s.db.DB, s.user.ID, "Groceries")
	s.NoError(err)
	s.NotZero(category.ID)
	s.Equal("Groceries", category.Name)
	s.Equal(models.DefaultCategoryColour, category.Colour)
	s.False(category.HasThreshold(), "auto-created categories start with no threshold")
}

func (s *CategoryResolverTestSuite) TestResolveOrCreate_Idempotent() {
	first, err := s.resolver.ResolveOrCreate(s.db.DB, s.user.ID, "Groceries")
	s.NoError(err)

	second, err := s.resolver.ResolveOrCreate(s.db.DB, s.user.ID, "Groceries")
	s.NoError(err)

	s.Equal(first.ID, second.ID)
}

func (s *CategoryResolverTestSuite) TestResolveOrCreate_ReusesExistingWithThreshold() {
	existing := database.CreateTestCategory(s.T(), s.db, s.user.ID, "Groceries", decimal.RequireFromString("100"))

	category, err := s.resolver.ResolveOrCreate(s.db.DB, s.user.ID, "Groceries")
	s.NoError(err)
	s.Equal(existing.ID, category.ID)
	s.True(category.HasThreshold())
}

func (s *CategoryResolverTestSuite) TestResolveOrCreate_NameTooShort() {
	for _, name := range []string{"", "a", "ab"} {
		_, err := s.resolver.ResolveOrCreate(s.db.DB, s.user.ID, name)
		s.ErrorIs(err, models.ErrCategoryNameTooShort, "name %q should be rejected", name)
	}
}

func (s *CategoryResolverTestSuite) TestResolveOrCreate_PerUserNamespaces() {
	other := database.CreateTestUser(s.T(), s.db, "bob", "EUR")

	mine, err := s.resolver.ResolveOrCreate(s.db.DB, s.user.ID, "Groceries")
	s.NoError(err)

	theirs, err := s.resolver.ResolveOrCreate(s.db.DB, other.ID, "Groceries")
	s.NoError(err)

	s.NotEqual(mine.ID, theirs.ID)
	s.Equal(s.user.ID, mine.UserID)
	s.Equal(other.ID, theirs.UserID)
}

func (s *CategoryResolverTestSuite) TestResolveOrCreate_RaceLoserFindsWinnersRow() {
	winner, err := s.resolver.ResolveOrCreate(s.db.DB, s.user.ID, "Groceries")
	s.NoError(err)

	// A resolver whose every create reports a duplicate stands in for a
	// request that lost the creation race. Its first lookup already finds
	// the winner's row, so the create path is never reached.
	loser := NewCategoryResolver(&duplicateOnCreateRepo{inner: s.repo}, nil, discardLogger())

	category, err := loser.ResolveOrCreate(s.db.DB, s.user.ID, "Groceries")
	s.NoError(err)
	s.Equal(winner.ID, category.ID)
}

func (s *CategoryResolverTestSuite) TestResolveOrCreate_ConflictWhenRetryLookupFails() {
	// Duplicate on create but no winner row to find: the retry lookup
	// misses too, which surfaces as a conflict the caller may retry.
	loser := NewCategoryResolver(&duplicateOnCreateRepo{inner: s.repo}, nil, discardLogger())

	category, err := loser.ResolveOrCreate(s.db.DB, s.user.ID, "Transport")
	s.ErrorIs(err, ErrCategoryConflict)
	s.Nil(category)
}

// duplicateOnCreateRepo wraps a real repository but fails every create with
// the duplicate sentinel, standing in for a concurrent writer that got there
// first.
type duplicateOnCreateRepo struct {
	inner repositories.CategoryRepositoryInterface
}

func (r *duplicateOnCreateRepo) Create(*models.Category) error {
	return repositories.ErrCategoryDuplicate
}

func (r *duplicateOnCreateRepo) GetByID(id uint) (*models.Category, error) {
	return r.inner.GetByID(id)
}

func (r *duplicateOnCreateRepo) GetByUserAndName(userID uuid.UUID, name string) (*models.Category, error) {
	return r.inner.GetByUserAndName(userID, name)
}

func (r *duplicateOnCreateRepo) GetByUser(userID uuid.UUID) ([]models.Category, error) {
	return r.inner.GetByUser(userID)
}

func (r *duplicateOnCreateRepo) Update(category *models.Category) error {
	return r.inner.Update(category)
}

func (r *duplicateOnCreateRepo) Delete(id uint) error {
	return r.inner.Delete(id)
}

func (r *duplicateOnCreateRepo) WithTx(tx *gorm.DB) repositories.CategoryRepositoryInterface {
	return &duplicateOnCreateRepo{inner: r.inner.WithTx(tx)}
}
