package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/models"
	"github.com/yukikurage/life-record-api/internal/repository"
	"github.com/yukikurage/life-record-api/internal/testutil"
	"github.com/yukikurage/life-record-api/internal/utils"
	"gorm.io/gorm"
)

type NoteServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *NoteService
	ctx     context.Context
	user    *models.User
}

func (suite *NoteServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewNoteService(repository.NewNoteRepository(suite.db))
	suite.ctx = context.Background()
	suite.user = testutil.CreateUser(suite.T(), suite.db, "alice")
}

func (suite *NoteServiceTestSuite) create(title, content string, category *string) *models.Note {
	note, err := suite.service.Create(suite.ctx, suite.user.ID, dto.CreateNoteRequest{
		CategoryPath: category,
		Title:        title,
		Content:      content,
	})
	suite.Require().NoError(err)
	return note
}

func (suite *NoteServiceTestSuite) page() utils.PaginationParams {
	return utils.PaginationParams{Skip: 0, Limit: 100}
}

func (suite *NoteServiceTestSuite) TestDelete_IsSoft() {
	note := suite.create("Groceries", "milk", nil)

	suite.Require().NoError(suite.service.Delete(suite.ctx, suite.user.ID, note.ID))

	_, err := suite.service.Get(suite.ctx, suite.user.ID, note.ID)
	suite.ErrorIs(err, ErrNoteNotFound)

	notes, err := suite.service.List(suite.ctx, suite.user.ID, dto.NoteQuery{}, suite.page())
	suite.Require().NoError(err)
	suite.Empty(notes)

	var stored models.Note
	suite.Require().NoError(suite.db.First(&stored, note.ID).Error)
	suite.Equal(int8(1), stored.IsDelete)

	suite.ErrorIs(suite.service.Delete(suite.ctx, suite.user.ID, note.ID), ErrNoteNotFound)
}

func (suite *NoteServiceTestSuite) TestUpdate_ClearsCategoryOnNull() {
	category := "home/kitchen"
	note := suite.create("Groceries", "milk", &category)

	updated, err := suite.service.Update(suite.ctx, suite.user.ID, note.ID, dto.UpdateNoteRequest{
		CategoryPath: dto.Null[string](),
	})
	suite.Require().NoError(err)
	suite.Nil(updated.CategoryPath)
	suite.Equal("Groceries", updated.Title)
	suite.Equal("milk", updated.Content)
}

func (suite *NoteServiceTestSuite) TestUpdate_AbsentFieldsUntouched() {
	note := suite.create("Groceries", "milk", nil)

	updated, err := suite.service.Update(suite.ctx, suite.user.ID, note.ID, dto.UpdateNoteRequest{
		Content: dto.Some("milk, eggs"),
	})
	suite.Require().NoError(err)
	suite.Equal("Groceries", updated.Title)
	suite.Equal("milk, eggs", updated.Content)
}

func (suite *NoteServiceTestSuite) TestUpdate_EmptyBodyOnForeignNote() {
	other := testutil.CreateUser(suite.T(), suite.db, "bob")
	note, err := suite.service.Create(suite.ctx, other.ID, dto.CreateNoteRequest{Title: "secret"})
	suite.Require().NoError(err)

	_, err = suite.service.Update(suite.ctx, suite.user.ID, note.ID, dto.UpdateNoteRequest{})
	suite.ErrorIs(err, ErrNoteNotFound)
}

func (suite *NoteServiceTestSuite) TestList_Filters() {
	work := "work"
	suite.create("Standup", "daily sync", &work)
	suite.create("Groceries", "milk", nil)
	suite.create("Retro", "sync on sprint", &work)

	byCategory, err := suite.service.List(suite.ctx, suite.user.ID, dto.NoteQuery{CategoryPath: "work"}, suite.page())
	suite.Require().NoError(err)
	suite.Len(byCategory, 2)

	byKeyword, err := suite.service.List(suite.ctx, suite.user.ID, dto.NoteQuery{Keyword: "sync"}, suite.page())
	suite.Require().NoError(err)
	suite.Len(byKeyword, 2)

	paged, err := suite.service.List(suite.ctx, suite.user.ID, dto.NoteQuery{}, utils.PaginationParams{Skip: 1, Limit: 1})
	suite.Require().NoError(err)
	suite.Len(paged, 1)
}

func TestNoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NoteServiceTestSuite))
}

type TodoServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TodoService
	ctx     context.Context
	user    *models.User
}

func (suite *TodoServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewTodoService(repository.NewTodoRepository(suite.db))
	suite.ctx = context.Background()
	suite.user = testutil.CreateUser(suite.T(), suite.db, "alice")
}

func (suite *TodoServiceTestSuite) TestCreate_DefaultPriority() {
	todo, err := suite.service.Create(suite.ctx, suite.user.ID, dto.CreateTodoRequest{Title: "Pay rent"})
	suite.Require().NoError(err)
	suite.Equal(int8(2), todo.Priority)
	suite.Equal(int8(0), todo.Status)
}

func (suite *TodoServiceTestSuite) TestList_OrderAndFilters() {
	high, low := int8(1), int8(3)
	_, err := suite.service.Create(suite.ctx, suite.user.ID, dto.CreateTodoRequest{Title: "Later", Priority: &low})
	suite.Require().NoError(err)
	_, err = suite.service.Create(suite.ctx, suite.user.ID, dto.CreateTodoRequest{Title: "Done", Priority: &high, Status: 1})
	suite.Require().NoError(err)
	_, err = suite.service.Create(suite.ctx, suite.user.ID, dto.CreateTodoRequest{Title: "Urgent", Priority: &high})
	suite.Require().NoError(err)

	todos, err := suite.service.List(suite.ctx, suite.user.ID, dto.TodoQuery{})
	suite.Require().NoError(err)
	suite.Require().Len(todos, 3)
	suite.Equal("Urgent", todos[0].Title)
	suite.Equal("Later", todos[1].Title)
	suite.Equal("Done", todos[2].Title)

	open := int8(0)
	pending, err := suite.service.List(suite.ctx, suite.user.ID, dto.TodoQuery{Status: &open, Q: "Urg"})
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("Urgent", pending[0].Title)
}

func (suite *TodoServiceTestSuite) TestDelete_IsHard() {
	todo, err := suite.service.Create(suite.ctx, suite.user.ID, dto.CreateTodoRequest{Title: "Pay rent"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Delete(suite.ctx, suite.user.ID, todo.ID))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Todo{}).Count(&count).Error)
	suite.Equal(int64(0), count)
	suite.ErrorIs(suite.service.Delete(suite.ctx, suite.user.ID, todo.ID), ErrTodoNotFound)
}

func TestTodoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TodoServiceTestSuite))
}
