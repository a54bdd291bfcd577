package handler_test

import (
	"context"
	"time"

	"quiz-course/internal/domain"
	"quiz-course/internal/dto"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) ValidateJWT(ctx context.Context, token string) (*dto.AuthClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*dto.AuthClaims)
	return claims, args.Error(1)
}

func (m *MockAuthService) CreateJWT(ctx context.Context, userID string, roles []string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, userID, roles, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ActorFromClaims(claims *dto.AuthClaims) domain.Actor {
	return m.Called(claims).Get(0).(domain.Actor)
}

type MockCourseService struct{ mock.Mock }

func (m *MockCourseService) GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.CourseResponse)
	return resp, args.Error(1)
}

func (m *MockCourseService) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]dto.CourseResponse)
	return resp, args.Error(1)
}

func (m *MockCourseService) CreateCourse(ctx context.Context, actor domain.Actor, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*dto.CourseResponse)
	return resp, args.Error(1)
}

func (m *MockCourseService) UpdateCourse(ctx context.Context, actor domain.Actor, id int64, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	args := m.Called(ctx, actor, id, req)
	resp, _ := args.Get(0).(*dto.CourseResponse)
	return resp, args.Error(1)
}

type MockProgressionService struct{ mock.Mock }

func (m *MockProgressionService) StartCourse(ctx context.Context, actor domain.Actor, courseID int64) (*dto.ProgressionState, error) {
	args := m.Called(ctx, actor, courseID)
	resp, _ := args.Get(0).(*dto.ProgressionState)
	return resp, args.Error(1)
}

func (m *MockProgressionService) Advance(ctx context.Context, actor domain.Actor, instanceID int64) (*dto.ProgressionState, error) {
	args := m.Called(ctx, actor, instanceID)
	resp, _ := args.Get(0).(*dto.ProgressionState)
	return resp, args.Error(1)
}

func (m *MockProgressionService) SubmitAnswer(ctx context.Context, actor domain.Actor, id int64, answers []bool) (*dto.SubmitAnswerResponse, error) {
	args := m.Called(ctx, actor, id, answers)
	resp, _ := args.Get(0).(*dto.SubmitAnswerResponse)
	return resp, args.Error(1)
}

func (m *MockProgressionService) GetServedQuestion(ctx context.Context, actor domain.Actor, id int64) (*dto.ServedQuestionView, error) {
	args := m.Called(ctx, actor, id)
	resp, _ := args.Get(0).(*dto.ServedQuestionView)
	return resp, args.Error(1)
}

func (m *MockProgressionService) AnswerAndGetSolution(ctx context.Context, actor domain.Actor, id int64, answers []bool) (*dto.SolutionResponse, error) {
	args := m.Called(ctx, actor, id, answers)
	resp, _ := args.Get(0).(*dto.SolutionResponse)
	return resp, args.Error(1)
}

func (m *MockProgressionService) GetCourseResult(ctx context.Context, actor domain.Actor, instanceID int64) (*dto.CourseResultResponse, error) {
	args := m.Called(ctx, actor, instanceID)
	resp, _ := args.Get(0).(*dto.CourseResultResponse)
	return resp, args.Error(1)
}

func (m *MockProgressionService) ListMyInstances(ctx context.Context, actor domain.Actor) ([]dto.InstanceSummaryResponse, error) {
	args := m.Called(ctx, actor)
	resp, _ := args.Get(0).([]dto.InstanceSummaryResponse)
	return resp, args.Error(1)
}

func (m *MockProgressionService) DeleteInstance(ctx context.Context, actor domain.Actor, instanceID int64) error {
	return m.Called(ctx, actor, instanceID).Error(0)
}

type MockQuestionService struct{ mock.Mock }

func (m *MockQuestionService) GetQuestion(ctx context.Context, actor domain.Actor, id int64) (*dto.QuestionResponse, error) {
	args := m.Called(ctx, actor, id)
	resp, _ := args.Get(0).(*dto.QuestionResponse)
	return resp, args.Error(1)
}

func (m *MockQuestionService) CreateQuestion(ctx context.Context, actor domain.Actor, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*dto.QuestionResponse)
	return resp, args.Error(1)
}

func (m *MockQuestionService) UpdateQuestion(ctx context.Context, actor domain.Actor, id int64, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	args := m.Called(ctx, actor, id, req)
	resp, _ := args.Get(0).(*dto.QuestionResponse)
	return resp, args.Error(1)
}

func (m *MockQuestionService) DeleteQuestion(ctx context.Context, actor domain.Actor, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockQuestionService) ListMyQuestions(ctx context.Context, actor domain.Actor) ([]dto.QuestionSummary, error) {
	args := m.Called(ctx, actor)
	resp, _ := args.Get(0).([]dto.QuestionSummary)
	return resp, args.Error(1)
}

func (m *MockQuestionService) Vote(ctx context.Context, actor domain.Actor, questionID int64, rating int) (*dto.VoteResponse, error) {
	args := m.Called(ctx, actor, questionID, rating)
	resp, _ := args.Get(0).(*dto.VoteResponse)
	return resp, args.Error(1)
}

func (m *MockQuestionService) GetVotes(ctx context.Context, actor domain.Actor, questionID int64) (*dto.VoteResponse, error) {
	args := m.Called(ctx, actor, questionID)
	resp, _ := args.Get(0).(*dto.VoteResponse)
	return resp, args.Error(1)
}

type MockTagService struct{ mock.Mock }

func (m *MockTagService) GetTag(ctx context.Context, id int64) (*dto.TagResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.TagResponse)
	return resp, args.Error(1)
}

func (m *MockTagService) FindTags(ctx context.Context, term string) ([]dto.TagResponse, error) {
	args := m.Called(ctx, term)
	resp, _ := args.Get(0).([]dto.TagResponse)
	return resp, args.Error(1)
}

func (m *MockTagService) CreateTag(ctx context.Context, actor domain.Actor, req *dto.TagRequest) (*dto.TagResponse, error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*dto.TagResponse)
	return resp, args.Error(1)
}

func (m *MockTagService) UpdateTag(ctx context.Context, actor domain.Actor, id int64, req *dto.TagRequest) (*dto.TagResponse, error) {
	args := m.Called(ctx, actor, id, req)
	resp, _ := args.Get(0).(*dto.TagResponse)
	return resp, args.Error(1)
}
