package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolrecords/internal/domain"
)

// seedGrades builds one teacher with a class and subject, two students, and
// a grade per student.
func seedGrades(t *testing.T, db *gorm.DB) (subjectID int64, s1, s2 *domain.User) {
	t.Helper()
	ctx := context.Background()

	teacher := createUser(t, db, "t@x.com", domain.RoleTeacher)
	s1 = createUser(t, db, "s1@x.com", domain.RoleStudent)
	s2 = createUser(t, db, "s2@x.com", domain.RoleStudent)

	class := &domain.Class{Name: "C1", TeacherID: teacher.ID}
	require.NoError(t, NewClassRepository(db).Create(ctx, class))
	subject := &domain.Subject{Name: "Maths", ClassID: class.ID}
	require.NoError(t, NewSubjectRepository(db).Create(ctx, subject))

	grades := NewGradeRepository(db)
	require.NoError(t, grades.Create(ctx, &domain.Grade{StudentID: s1.ID, SubjectID: subject.ID, Grade: 12}))
	require.NoError(t, grades.Create(ctx, &domain.Grade{StudentID: s2.ID, SubjectID: subject.ID, Grade: 18}))
	return subject.ID, s1, s2
}

func TestGradeFilterByStudent(t *testing.T) {
	db := newTestDB(t)
	subjectID, s1, _ := seedGrades(t, db)
	repo := NewGradeRepository(db)
	ctx := context.Background()

	list, err := repo.List(ctx, GradeFilter{StudentID: &s1.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, float64(12), list[0].Grade)
	assert.Equal(t, subjectID, list[0].SubjectID)
}

func TestGradeFilterEmptySubjectSet(t *testing.T) {
	db := newTestDB(t)
	seedGrades(t, db)
	repo := NewGradeRepository(db)

	// A present but empty subject set matches nothing.
	list, err := repo.List(context.Background(), GradeFilter{SubjectIDs: []int64{}})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGradeValuesAndStudentIDs(t *testing.T) {
	db := newTestDB(t)
	subjectID, _, _ := seedGrades(t, db)
	repo := NewGradeRepository(db)
	ctx := context.Background()

	values, err := repo.Values(ctx, GradeFilter{SubjectIDs: []int64{subjectID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{12, 18}, values)

	ids, err := repo.StudentIDsForSubjects(ctx, []int64{subjectID})
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestSubjectIDsForTeacher(t *testing.T) {
	db := newTestDB(t)
	subjectID, _, _ := seedGrades(t, db)
	ctx := context.Background()

	var teacher domain.User
	require.NoError(t, db.Where("role = ?", domain.RoleTeacher).First(&teacher).Error)

	ids, err := NewSubjectRepository(db).IDsForTeacher(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{subjectID}, ids)

	ids, err = NewSubjectRepository(db).IDsForTeacher(ctx, teacher.ID+100)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStatsAverages(t *testing.T) {
	db := newTestDB(t)
	_, s1, _ := seedGrades(t, db)
	stats := NewStatsRepository(db)
	ctx := context.Background()

	avg, err := stats.AverageGrade(ctx, GradeFilter{})
	require.NoError(t, err)
	assert.InDelta(t, 15, avg, 0.001)

	avg, err = stats.AverageGrade(ctx, GradeFilter{StudentID: &s1.ID})
	require.NoError(t, err)
	assert.InDelta(t, 12, avg, 0.001)

	// No rows averages to zero, not an error.
	none := int64(9999)
	avg, err = stats.AverageGrade(ctx, GradeFilter{StudentID: &none})
	require.NoError(t, err)
	assert.Zero(t, avg)

	rows, err := stats.GradesBySubject(ctx, s1.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maths", rows[0].Subject)
	assert.InDelta(t, 12, rows[0].Average, 0.001)
}
