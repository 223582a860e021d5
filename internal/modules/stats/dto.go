package stats

// AdminDashboard is the school-wide overview.
type AdminDashboard struct {
	Students     int64   `json:"students"`
	Teachers     int64   `json:"teachers"`
	Parents      int64   `json:"parents"`
	Classes      int64   `json:"classes"`
	Subjects     int64   `json:"subjects"`
	Grades       int64   `json:"grades"`
	Absences     int64   `json:"absences"`
	AverageGrade float64 `json:"average_grade"`
}

// TeacherDashboard covers only the caller's classes and subjects.
type TeacherDashboard struct {
	Classes      int64   `json:"classes"`
	Subjects     int64   `json:"subjects"`
	Students     int64   `json:"students"`
	Grades       int64   `json:"grades"`
	AverageGrade float64 `json:"average_grade"`
}

// StudentDashboard covers the caller's own records.
type StudentDashboard struct {
	Grades        int64            `json:"grades"`
	AverageGrade  float64          `json:"average_grade"`
	Absences      int64            `json:"absences"`
	SubjectScores []SubjectAverage `json:"subject_scores"`
}

type SubjectAverage struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ParentDashboard is a school-wide summary without management counts.
type ParentDashboard struct {
	Students     int64   `json:"students"`
	Grades       int64   `json:"grades"`
	AverageGrade float64 `json:"average_grade"`
	Absences     int64   `json:"absences"`
}

// Distribution groups grades into fixed buckets of the 0..20 scale.
type Distribution struct {
	Buckets []DistributionBucket `json:"buckets"`
	Total   int64                `json:"total"`
}

type DistributionBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}
