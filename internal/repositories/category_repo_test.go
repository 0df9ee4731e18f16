package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"menuboard/internal/common"
	"menuboard/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CategoryRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       CategoryRepository
	categoryID uuid.UUID
	context    context.Context
}

func (suite *CategoryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewCategoryRepo(mock)
	suite.categoryID = uuid.New()
	suite.context = context.Background()
}

func (suite *CategoryRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestCategoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryRepoTestSuite))
}

func categoryColumns() []string {
	return []string{"id", "order", "main_image", "title_en", "title_ar",
		"description_en", "description_ar", "tagline_en", "tagline_ar",
		"extras_en", "extras_ar", "created_at", "updated_at"}
}

func (suite *CategoryRepoTestSuite) TestCreate_Success() {
	category := &models.Category{
		ID:          suite.categoryID,
		Order:       1,
		MainImage:   "",
		Title:       models.LocalizedText{En: "Coffee", Ar: "قهوة"},
		Description: models.LocalizedText{En: "Hot drinks", Ar: "مشروبات ساخنة"},
	}

	suite.mock.ExpectExec(`INSERT INTO categories`).
		WithArgs(category.ID, category.Order, category.MainImage,
			category.Title.En, category.Title.Ar,
			category.Description.En, category.Description.Ar,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, category)
	assert.NoError(suite.T(), err)
}

func (suite *CategoryRepoTestSuite) TestGetByID_Found() {
	now := time.Now()
	taglineEn := "LOVE AT FIRST BITE"
	taglineAr := "حب من أول قضمة"
	rows := pgxmock.NewRows(categoryColumns()).
		AddRow(suite.categoryID, 2, "http://minio/menu-images/categories/x/1.png",
			"Desserts", "حلويات", "Sweet things", "أشياء حلوة",
			&taglineEn, &taglineAr, nil, nil, now, now)

	suite.mock.ExpectQuery(`SELECT id, "order", main_image`).
		WithArgs(suite.categoryID).
		WillReturnRows(rows)

	category, err := suite.repo.GetByID(suite.context, suite.categoryID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.categoryID, category.ID)
	assert.Equal(suite.T(), 2, category.Order)
	assert.Equal(suite.T(), "Desserts", category.Title.En)
	assert.NotNil(suite.T(), category.Tagline)
	assert.Equal(suite.T(), "LOVE AT FIRST BITE", category.Tagline.En)
	assert.Nil(suite.T(), category.Extras)
	assert.Nil(suite.T(), category.Items, "items must stay unloaded on a point read")
}

func (suite *CategoryRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT id, "order", main_image`).
		WithArgs(suite.categoryID).
		WillReturnRows(pgxmock.NewRows(categoryColumns()))

	category, err := suite.repo.GetByID(suite.context, suite.categoryID)
	assert.Nil(suite.T(), category)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *CategoryRepoTestSuite) TestUpdate_PartialFields() {
	order := 5
	suite.mock.ExpectExec(`UPDATE categories`).
		WithArgs(&order, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), suite.categoryID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, suite.categoryID, &models.CategoryUpdate{Order: &order})
	assert.NoError(suite.T(), err)
}

func (suite *CategoryRepoTestSuite) TestUpdate_NotFound() {
	order := 5
	suite.mock.ExpectExec(`UPDATE categories`).
		WithArgs(&order, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), suite.categoryID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, suite.categoryID, &models.CategoryUpdate{Order: &order})
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *CategoryRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(`DELETE FROM categories`).
		WithArgs(suite.categoryID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.categoryID)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *CategoryRepoTestSuite) TestList_OrderedByOrder() {
	now := time.Now()
	firstID, secondID := uuid.New(), uuid.New()
	rows := pgxmock.NewRows(categoryColumns()).
		AddRow(firstID, 1, "", "Coffee", "قهوة", "d", "و", nil, nil, nil, nil, now, now).
		AddRow(secondID, 3, "", "Desserts", "حلويات", "d", "و", nil, nil, nil, nil, now, now)

	suite.mock.ExpectQuery(`SELECT id, "order", main_image`).
		WillReturnRows(rows)

	categories, err := suite.repo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), firstID, categories[0].ID)
	assert.Equal(suite.T(), secondID, categories[1].ID)
}

func (suite *CategoryRepoTestSuite) TestMaxOrder_Empty() {
	suite.mock.ExpectQuery(`SELECT COALESCE\(MAX\("order"\), 0\) FROM categories`).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(0))

	max, err := suite.repo.MaxOrder(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, max)
}

func (suite *CategoryRepoTestSuite) TestMaxOrder_Existing() {
	suite.mock.ExpectQuery(`SELECT COALESCE\(MAX\("order"\), 0\) FROM categories`).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(7))

	max, err := suite.repo.MaxOrder(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, max)
}
