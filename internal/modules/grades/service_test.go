package grades

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/repository"
)

type mockGradeRepo struct {
	mock.Mock
}

func (m *mockGradeRepo) Create(ctx context.Context, g *domain.Grade) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *mockGradeRepo) GetByID(ctx context.Context, id int64) (*domain.Grade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grade), args.Error(1)
}

func (m *mockGradeRepo) List(ctx context.Context, filter repository.GradeFilter) ([]domain.Grade, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Grade), args.Error(1)
}

func (m *mockGradeRepo) Update(ctx context.Context, g *domain.Grade) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *mockGradeRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByIDAndRole(ctx context.Context, id int64, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockSubjectRepo struct {
	mock.Mock
}

func (m *mockSubjectRepo) GetByID(ctx context.Context, id int64) (*domain.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subject), args.Error(1)
}

func (m *mockSubjectRepo) IDsForTeacher(ctx context.Context, teacherID int64) ([]int64, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func newServiceWithMocks() (*Service, *mockGradeRepo, *mockUserRepo, *mockSubjectRepo) {
	grades := new(mockGradeRepo)
	users := new(mockUserRepo)
	subjects := new(mockSubjectRepo)
	return NewService(grades, users, subjects), grades, users, subjects
}

var (
	admin   = Caller{ID: 1, Role: domain.RoleAdmin}
	teacher = Caller{ID: 2, Role: domain.RoleTeacher}
	student = Caller{ID: 3, Role: domain.RoleStudent}
	parent  = Caller{ID: 4, Role: domain.RoleParent}
)

func TestCreateGradeAdmin(t *testing.T) {
	svc, grades, users, subjects := newServiceWithMocks()

	users.On("GetByIDAndRole", mock.Anything, int64(3), domain.RoleStudent).
		Return(&domain.User{ID: 3, Role: domain.RoleStudent}, nil)
	subjects.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Subject{ID: 10}, nil)
	grades.On("Create", mock.Anything, mock.AnythingOfType("*domain.Grade")).Return(nil)

	grade, err := svc.Create(context.Background(), admin, CreateGradeRequest{
		StudentID: 3, SubjectID: 10, Grade: 15.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 15.5, grade.Grade)
	grades.AssertExpectations(t)
}

func TestCreateGradeOutOfRange(t *testing.T) {
	svc, _, _, _ := newServiceWithMocks()

	_, err := svc.Create(context.Background(), admin, CreateGradeRequest{
		StudentID: 3, SubjectID: 10, Grade: 20.5,
	})
	assert.ErrorIs(t, err, ErrGradeOutOfRange)
}

func TestCreateGradeUnknownStudent(t *testing.T) {
	svc, _, users, _ := newServiceWithMocks()

	users.On("GetByIDAndRole", mock.Anything, int64(99), domain.RoleStudent).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), admin, CreateGradeRequest{
		StudentID: 99, SubjectID: 10, Grade: 12,
	})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestCreateGradeTeacherForeignSubject(t *testing.T) {
	svc, _, users, subjects := newServiceWithMocks()

	users.On("GetByIDAndRole", mock.Anything, int64(3), domain.RoleStudent).
		Return(&domain.User{ID: 3}, nil)
	subjects.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Subject{ID: 10}, nil)
	subjects.On("IDsForTeacher", mock.Anything, teacher.ID).
		Return([]int64{20, 21}, nil)

	_, err := svc.Create(context.Background(), teacher, CreateGradeRequest{
		StudentID: 3, SubjectID: 10, Grade: 12,
	})
	assert.ErrorIs(t, err, ErrSubjectNotAllowed)
}

func TestListScopesStudentToSelf(t *testing.T) {
	svc, grades, _, _ := newServiceWithMocks()

	other := int64(999)
	grades.On("List", mock.Anything, mock.MatchedBy(func(f repository.GradeFilter) bool {
		return f.StudentID != nil && *f.StudentID == student.ID
	})).Return([]domain.Grade{}, nil)

	// The requested filter is overridden, not honored.
	_, err := svc.List(context.Background(), student, ListFilter{StudentID: &other})
	require.NoError(t, err)
	grades.AssertExpectations(t)
}

func TestListScopesTeacherToOwnSubjects(t *testing.T) {
	svc, grades, _, subjects := newServiceWithMocks()

	subjects.On("IDsForTeacher", mock.Anything, teacher.ID).Return([]int64{}, nil)
	grades.On("List", mock.Anything, mock.MatchedBy(func(f repository.GradeFilter) bool {
		return f.SubjectIDs != nil && len(f.SubjectIDs) == 0
	})).Return([]domain.Grade{}, nil)

	// A teacher with no subjects sees an empty list, not everything.
	list, err := svc.List(context.Background(), teacher, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	grades.AssertExpectations(t)
}

func TestListParentUnscoped(t *testing.T) {
	svc, grades, _, _ := newServiceWithMocks()

	grades.On("List", mock.Anything, mock.MatchedBy(func(f repository.GradeFilter) bool {
		return f.StudentID == nil && f.SubjectIDs == nil
	})).Return([]domain.Grade{{ID: 1}}, nil)

	list, err := svc.List(context.Background(), parent, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetByIDStudentForeignGrade(t *testing.T) {
	svc, grades, _, _ := newServiceWithMocks()

	grades.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Grade{ID: 7, StudentID: 42}, nil)

	_, err := svc.GetByID(context.Background(), student, 7)
	assert.ErrorIs(t, err, ErrGradeNotFound)
}

func TestUpdateGradeTeacherOwnSubject(t *testing.T) {
	svc, grades, _, subjects := newServiceWithMocks()

	grades.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Grade{ID: 7, StudentID: 3, SubjectID: 20, Grade: 10}, nil)
	subjects.On("IDsForTeacher", mock.Anything, teacher.ID).Return([]int64{20}, nil)
	grades.On("Update", mock.Anything, mock.AnythingOfType("*domain.Grade")).Return(nil)

	grade, err := svc.Update(context.Background(), teacher, 7, UpdateGradeRequest{Grade: 18})
	require.NoError(t, err)
	assert.Equal(t, float64(18), grade.Grade)
}

func TestDeleteGradeNotFound(t *testing.T) {
	svc, grades, _, _ := newServiceWithMocks()

	grades.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), admin, 7)
	assert.ErrorIs(t, err, ErrGradeNotFound)
}
