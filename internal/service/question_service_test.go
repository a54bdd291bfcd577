package service

import (
	"context"
	"testing"

	"quiz-course/internal/domain"
	"quiz-course/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestQuestionService_CreateQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.questionService()

	goTag := f.tag(t, "go")
	sqlTag := f.tag(t, "sql")
	img := f.image(t)

	resp, err := svc.CreateQuestion(ctx, author, &dto.QuestionRequest{
		Title:  "Channels",
		Text:   "Which statements hold?",
		Status: int(domain.QuestionStatusReleased),
		Options: []dto.OptionInput{
			{Text: "unbuffered sends block", IsTrue: true},
			{Text: "closing twice is fine"},
		},
		TagIDs: []int64{goTag, goTag, sqlTag},
		Images: []dto.ImageInput{{ID: img, Width: intPtr(640), Full: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, author.UserID, resp.OwnerUserID)
	assert.Equal(t, "released", resp.Status)
	assert.True(t, resp.IsEditable)
	require.Len(t, resp.Options, 2)
	assert.True(t, resp.Options[0].IsTrue)
	require.Len(t, resp.Tags, 2, "duplicate tag ids collapse to one link")
	require.Len(t, resp.Images, 1)
	require.NotNil(t, resp.Images[0].Width)
	assert.Equal(t, 640, *resp.Images[0].Width)
	assert.Nil(t, resp.Images[0].Height)
	assert.True(t, resp.Images[0].Full)
	assert.Equal(t, 2, f.count(t, "question_tags"))
}

func TestQuestionService_CreateQuestion_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.questionService()

	_, err := svc.CreateQuestion(ctx, domain.Actor{}, &dto.QuestionRequest{Title: "x"})
	assert.True(t, domain.IsCode(err, domain.CodeUnauthorized))

	_, err = svc.CreateQuestion(ctx, author, &dto.QuestionRequest{Title: "x", TagIDs: []int64{404}})
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	_, err = svc.CreateQuestion(ctx, author, &dto.QuestionRequest{Title: "x", Images: []dto.ImageInput{{ID: 77}}})
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	assert.Zero(t, f.count(t, "questions"), "failed creates leave nothing behind")
}

func TestQuestionService_UpdateQuestion_ReconcilesChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.questionService()

	goTag := f.tag(t, "go")
	sqlTag := f.tag(t, "sql")
	dbTag := f.tag(t, "db")
	img1 := f.image(t)
	img2 := f.image(t)

	created, err := svc.CreateQuestion(ctx, author, &dto.QuestionRequest{
		Title:   "v1",
		Options: []dto.OptionInput{{Text: "a", IsTrue: true}, {Text: "b"}},
		TagIDs:  []int64{goTag, sqlTag},
		Images:  []dto.ImageInput{{ID: img1}},
	})
	require.NoError(t, err)
	keep := created.Options[0].ID
	drop := created.Options[1].ID

	links, err := f.questions.GetQuestionTagLinks(ctx, created.ID)
	require.NoError(t, err)
	goLinkID := links[0].ID
	// A stray duplicate link row for the same tag.
	require.NoError(t, f.questions.InsertQuestionTagLink(ctx, &domain.QuestionTag{QuestionID: created.ID, TagID: goTag}))

	updated, err := svc.UpdateQuestion(ctx, author, created.ID, &dto.QuestionRequest{
		Title:       "v2",
		Explanation: "because",
		Status:      int(domain.QuestionStatusReleased),
		Options: []dto.OptionInput{
			{ID: keep, Text: "a (edited)", IsTrue: false},
			{ID: 0, Text: "c", IsTrue: true},
			{ID: -1, Text: "d"},
		},
		TagIDs: []int64{goTag, dbTag},
		Images: []dto.ImageInput{{ID: img2, Height: intPtr(20)}},
	})
	require.NoError(t, err)

	assert.Equal(t, "v2", updated.Title)
	assert.Equal(t, "because", updated.Explanation)
	require.Len(t, updated.Options, 3)
	assert.Equal(t, keep, updated.Options[0].ID, "matched option is updated in place")
	assert.Equal(t, "a (edited)", updated.Options[0].Text)
	assert.False(t, updated.Options[0].IsTrue)
	for _, o := range updated.Options {
		assert.NotEqual(t, drop, o.ID)
	}

	links, err = f.questions.GetQuestionTagLinks(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, goLinkID, links[0].ID, "existing link row is kept")
	assert.Equal(t, goTag, links[0].TagID)
	assert.Equal(t, dbTag, links[1].TagID)

	require.Len(t, updated.Images, 1)
	assert.Equal(t, img2, updated.Images[0].ID)
	require.NotNil(t, updated.Images[0].Height)
	assert.Equal(t, 20, *updated.Images[0].Height)
	assert.Equal(t, 2, f.count(t, "images"), "images themselves are never deleted")
}

func TestQuestionService_UpdateQuestion_EmptyDesiredClearsChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.questionService()

	tagID := f.tag(t, "go")
	created, err := svc.CreateQuestion(ctx, author, &dto.QuestionRequest{
		Title:   "q",
		Options: []dto.OptionInput{{Text: "a"}, {Text: "b"}},
		TagIDs:  []int64{tagID},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateQuestion(ctx, author, created.ID, &dto.QuestionRequest{Title: "q"})
	require.NoError(t, err)
	assert.Empty(t, updated.Options)
	assert.Empty(t, updated.Tags)
	assert.Zero(t, f.count(t, "question_options"))
	assert.Zero(t, f.count(t, "question_tags"))
}

func TestQuestionService_UpdateQuestion_AccessDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.questionService()

	created, err := svc.CreateQuestion(ctx, author, &dto.QuestionRequest{
		Title:   "mine",
		Options: []dto.OptionInput{{Text: "a"}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateQuestion(ctx, other, created.ID, &dto.QuestionRequest{Title: "hijacked"})
	assert.True(t, domain.IsCode(err, domain.CodeAccessDenied))

	got, err := svc.GetQuestion(ctx, other, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
	assert.Len(t, got.Options, 1)
	assert.False(t, got.IsEditable)

	updated, err := svc.UpdateQuestion(ctx, admin, created.ID, &dto.QuestionRequest{Title: "moderated"})
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Title)
	assert.Equal(t, author.UserID, updated.OwnerUserID)
}

func TestQuestionService_UpdateQuestion_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.questionService().UpdateQuestion(context.Background(), author, 42, &dto.QuestionRequest{Title: "x"})
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestQuestionService_DeleteQuestion_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.questionService()

	tagT := f.tag(t, "T")
	img := f.image(t)
	courseID := f.course(t, 2, tagT)

	created, err := svc.CreateQuestion(ctx, author, &dto.QuestionRequest{
		Title:   "served",
		Status:  int(domain.QuestionStatusReleased),
		Options: []dto.OptionInput{{Text: "a", IsTrue: true}, {Text: "b"}},
		TagIDs:  []int64{tagT},
		Images:  []dto.ImageInput{{ID: img}},
	})
	require.NoError(t, err)
	keptID := f.question(t, domain.QuestionStatusDraft, []int64{tagT}, true)

	state, err := f.progression(NewRandSource(1)).StartCourse(ctx, learner, courseID)
	require.NoError(t, err)
	require.Equal(t, []int64{created.ID}, f.servedQuestionIDs(t, state.InstanceID))

	_, err = svc.Vote(ctx, learner, created.ID, 1)
	require.NoError(t, err)
	_, err = svc.Vote(ctx, learner, keptID, -1)
	require.NoError(t, err)

	err = svc.DeleteQuestion(ctx, other, created.ID)
	assert.True(t, domain.IsCode(err, domain.CodeAccessDenied))
	assert.Equal(t, 2, f.count(t, "course_instance_question_options"))

	require.NoError(t, svc.DeleteQuestion(ctx, author, created.ID))

	assert.Zero(t, f.count(t, "course_instance_question_options"))
	assert.Zero(t, f.count(t, "course_instance_questions"))
	assert.Equal(t, 1, f.count(t, "question_options"))
	assert.Equal(t, 1, f.count(t, "question_tags"))
	assert.Zero(t, f.count(t, "question_images"))
	assert.Equal(t, 1, f.count(t, "questions"))
	assert.Equal(t, 1, f.count(t, "course_instances"), "the instance itself survives")
	assert.Equal(t, 1, f.count(t, "images"))
	assert.Equal(t, 1, f.count(t, "ratings"), "only the deleted question's votes go")

	_, err = svc.GetQuestion(ctx, author, keptID)
	require.NoError(t, err)
	_, err = svc.GetQuestion(ctx, author, created.ID)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestQuestionService_ListMyQuestions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.questionService()

	tagID := f.tag(t, "go")
	_, err := svc.CreateQuestion(ctx, author, &dto.QuestionRequest{Title: "b", TagIDs: []int64{tagID}})
	require.NoError(t, err)
	_, err = svc.CreateQuestion(ctx, author, &dto.QuestionRequest{Title: "a"})
	require.NoError(t, err)
	_, err = svc.CreateQuestion(ctx, other, &dto.QuestionRequest{Title: "c"})
	require.NoError(t, err)

	mine, err := svc.ListMyQuestions(ctx, author)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a", mine[0].Title)
	assert.Equal(t, "draft", mine[0].Status)
	require.Len(t, mine[1].Tags, 1)
	assert.Equal(t, "go", mine[1].Tags[0].Name)

	_, err = svc.ListMyQuestions(ctx, domain.Actor{})
	assert.True(t, domain.IsCode(err, domain.CodeUnauthorized))
}

func TestQuestionService_Vote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.questionService()
	qID := f.question(t, domain.QuestionStatusReleased, nil, true)

	resp, err := svc.Vote(ctx, learner, qID, 1)
	require.NoError(t, err)
	assert.Equal(t, dto.VoteResponse{QuestionID: qID, Up: 1, Down: 0, MyVote: 1}, *resp)

	resp, err = svc.Vote(ctx, other, qID, -7)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Up)
	assert.Equal(t, 1, resp.Down)
	assert.Equal(t, -1, resp.MyVote, "votes are clamped to their sign")

	resp, err = svc.Vote(ctx, learner, qID, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Up)
	assert.Equal(t, 2, resp.Down)
	assert.Equal(t, -1, resp.MyVote)
	assert.Equal(t, 2, f.count(t, "ratings"), "a re-vote replaces the earlier one")

	resp, err = svc.Vote(ctx, learner, qID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Up)
	assert.Equal(t, 1, resp.Down)
	assert.Equal(t, 0, resp.MyVote)

	resp, err = svc.GetVotes(ctx, author, qID)
	require.NoError(t, err)
	assert.Equal(t, dto.VoteResponse{QuestionID: qID, Up: 0, Down: 1, MyVote: 0}, *resp)

	resp, err = svc.GetVotes(ctx, other, qID)
	require.NoError(t, err)
	assert.Equal(t, -1, resp.MyVote)
}

func TestQuestionService_Vote_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.questionService()
	qID := f.question(t, domain.QuestionStatusReleased, nil, true)

	_, err := svc.Vote(ctx, domain.Actor{}, qID, 1)
	assert.True(t, domain.IsCode(err, domain.CodeUnauthorized))

	_, err = svc.GetVotes(ctx, domain.Actor{}, qID)
	assert.True(t, domain.IsCode(err, domain.CodeUnauthorized))

	_, err = svc.Vote(ctx, learner, 404, 1)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	_, err = svc.GetVotes(ctx, learner, 404)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	assert.Zero(t, f.count(t, "ratings"))
}
