package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/life-record-api/internal/constants"
	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/models"
	"github.com/yukikurage/life-record-api/internal/repository"
	"github.com/yukikurage/life-record-api/internal/testutil"
	"github.com/yukikurage/life-record-api/internal/utils"
	"gorm.io/gorm"
)

type RecipeServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *RecipeService
	ctx     context.Context
	user    *models.User
}

func (suite *RecipeServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewRecipeService(repository.NewRecipeRepository(suite.db))
	suite.ctx = context.Background()
	suite.user = testutil.CreateUser(suite.T(), suite.db, "alice")
}

func (suite *RecipeServiceTestSuite) create(name, category string, starred int8) *models.Recipe {
	recipe, err := suite.service.Create(suite.ctx, suite.user.ID, dto.CreateRecipeRequest{
		Name:        name,
		Category:    category,
		Ingredients: "eggs",
		Steps:       "cook",
		IsStarred:   starred,
	})
	suite.Require().NoError(err)
	return recipe
}

func (suite *RecipeServiceTestSuite) TestCreate_DefaultDifficulty() {
	recipe := suite.create("Omelette", "breakfast", 0)
	suite.Require().NotNil(recipe.Difficulty)
	suite.Equal(constants.DefaultRecipeDifficulty, *recipe.Difficulty)
}

func (suite *RecipeServiceTestSuite) TestList_StarredFirstAndFilters() {
	suite.create("Omelette", "breakfast", 0)
	suite.create("Pancakes", "breakfast", 1)
	suite.create("Curry", "dinner", 0)

	all, err := suite.service.List(suite.ctx, suite.user.ID, dto.RecipeQuery{}, utils.PaginationParams{Limit: 10})
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal("Pancakes", all[0].Name)

	breakfast, err := suite.service.List(suite.ctx, suite.user.ID, dto.RecipeQuery{Category: "breakfast", Keyword: "Omel"}, utils.PaginationParams{Limit: 10})
	suite.Require().NoError(err)
	suite.Require().Len(breakfast, 1)
	suite.Equal("Omelette", breakfast[0].Name)
}

func (suite *RecipeServiceTestSuite) TestUpdateAndSoftDelete() {
	recipe := suite.create("Omelette", "breakfast", 0)

	updated, err := suite.service.Update(suite.ctx, suite.user.ID, recipe.ID, dto.UpdateRecipeRequest{
		Difficulty: dto.Null[string](),
		IsStarred:  dto.Some(int8(1)),
	})
	suite.Require().NoError(err)
	suite.Nil(updated.Difficulty)
	suite.Equal(int8(1), updated.IsStarred)

	suite.Require().NoError(suite.service.Delete(suite.ctx, suite.user.ID, recipe.ID))
	_, err = suite.service.Get(suite.ctx, suite.user.ID, recipe.ID)
	suite.ErrorIs(err, ErrRecipeNotFound)

	var stored models.Recipe
	suite.Require().NoError(suite.db.First(&stored, recipe.ID).Error)
	suite.Equal(int8(1), stored.IsDelete)
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
