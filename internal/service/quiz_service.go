package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// QuizService covers the authoring side: quizzes, questions and their
// answer drafts. Attempt scoring lives in AttemptService.
type QuizService struct {
	QuizRepo   *repository.QuizRepository
	LessonRepo *repository.LessonRepository
	CourseRepo *repository.CourseRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, lessonRepo *repository.LessonRepository, courseRepo *repository.CourseRepository) *QuizService {
	return &QuizService{
		QuizRepo:   quizRepo,
		LessonRepo: lessonRepo,
		CourseRepo: courseRepo,
	}
}

func (s *QuizService) List() ([]model.Quiz, error) {
	return s.QuizRepo.List()
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

// ownsSection checks the teacher owns the course the section belongs to.
func (s *QuizService) ownsSection(teacherID, lessonCategoryID uint) error {
	category, err := s.LessonRepo.FindCategoryByID(lessonCategoryID)
	if err != nil {
		return err
	}
	course, err := s.CourseRepo.FindByID(category.CourseID)
	if err != nil {
		return err
	}
	if course.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *QuizService) ownsQuiz(teacherID, quizID uint) (*model.Quiz, error) {
	quiz, err := s.Get(quizID)
	if err != nil {
		return nil, err
	}
	if err := s.ownsSection(teacherID, quiz.LessonCategoryID); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Create(teacherID uint, quiz *model.Quiz) error {
	if err := s.ownsSection(teacherID, quiz.LessonCategoryID); err != nil {
		return err
	}
	return s.QuizRepo.Create(quiz)
}

// QuizUpdate is a partial update of the authorable fields.
type QuizUpdate struct {
	Title       *string
	Description *string
	TotalMarks  *int
	Duration    *int
	Order       *int
}

func (s *QuizService) Update(teacherID, quizID uint, update QuizUpdate) (*model.Quiz, error) {
	quiz, err := s.ownsQuiz(teacherID, quizID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		quiz.Title = *update.Title
	}
	if update.Description != nil {
		quiz.Description = *update.Description
	}
	if update.TotalMarks != nil {
		quiz.TotalMarks = *update.TotalMarks
	}
	if update.Duration != nil {
		quiz.Duration = *update.Duration
	}
	if update.Order != nil {
		quiz.Order = *update.Order
	}

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Delete(teacherID, quizID uint) error {
	if _, err := s.ownsQuiz(teacherID, quizID); err != nil {
		return err
	}
	return s.QuizRepo.Delete(quizID)
}

// AnswerDraft is one authored answer option.
type AnswerDraft struct {
	Text      string
	IsCorrect bool
}

// AddQuestion stores a question together with its answer drafts. The single
// correct answer rule is a client-side authoring convention; the data layer
// accepts what it is given and grading stays safe regardless.
func (s *QuizService) AddQuestion(teacherID, quizID uint, text string, marks int, answers []AnswerDraft) (*model.Question, error) {
	if _, err := s.ownsQuiz(teacherID, quizID); err != nil {
		return nil, err
	}
	if marks <= 0 {
		return nil, errors.New("marks must be a positive integer")
	}

	question := &model.Question{
		QuizID: quizID,
		Text:   text,
		Marks:  marks,
	}
	for _, a := range answers {
		question.Answers = append(question.Answers, model.Answer{
			Text:      a.Text,
			IsCorrect: a.IsCorrect,
		})
	}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

// AddAnswer appends one answer to an existing question.
func (s *QuizService) AddAnswer(teacherID, questionID uint, draft AnswerDraft) (*model.Answer, error) {
	var question model.Question
	if err := s.QuizRepo.DB.First(&question, questionID).Error; err != nil {
		return nil, err
	}
	if _, err := s.ownsQuiz(teacherID, question.QuizID); err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID: questionID,
		Text:       draft.Text,
		IsCorrect:  draft.IsCorrect,
	}
	if err := s.QuizRepo.CreateAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}
