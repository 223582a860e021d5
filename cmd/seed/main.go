// Seed creates a set of demo accounts and sample records for local
// development. Running it twice is safe, existing emails are skipped.
package main

import (
	"context"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"

	"schoolrecords/internal/config"
	"schoolrecords/internal/database"
	"schoolrecords/internal/domain"
	"schoolrecords/internal/repository"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     domain.UserRole
}

var seedUsers = []seedUser{
	{"Admin", "admin@school.local", "admin123", domain.RoleAdmin},
	{"Marie Curie", "teacher@school.local", "teacher123", domain.RoleTeacher},
	{"Alice Martin", "student@school.local", "student123", domain.RoleStudent},
	{"Paul Martin", "parent@school.local", "parent123", domain.RoleParent},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)

	byEmail := make(map[string]*domain.User)
	for _, su := range seedUsers {
		existing, err := users.GetByEmail(ctx, su.email)
		if err == nil {
			log.Printf("skip %s, already present", su.email)
			byEmail[su.email] = existing
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		u := &domain.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("create %s: %v", su.email, err)
		}
		byEmail[su.email] = u
		log.Printf("created %s (%s)", su.email, su.role)
	}

	teacher := byEmail["teacher@school.local"]
	student := byEmail["student@school.local"]

	classes := repository.NewClassRepository(db)
	existing, err := classes.List(ctx, &teacher.ID)
	if err != nil {
		log.Fatalf("list classes: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("sample data already present, done")
		return
	}

	class := &domain.Class{Name: "Terminale S1", TeacherID: teacher.ID}
	if err := classes.Create(ctx, class); err != nil {
		log.Fatalf("create class: %v", err)
	}

	subjects := repository.NewSubjectRepository(db)
	subject := &domain.Subject{Name: "Mathematics", ClassID: class.ID}
	if err := subjects.Create(ctx, subject); err != nil {
		log.Fatalf("create subject: %v", err)
	}

	grades := repository.NewGradeRepository(db)
	for _, v := range []float64{12.5, 15, 17.5} {
		g := &domain.Grade{StudentID: student.ID, SubjectID: subject.ID, Grade: v}
		if err := grades.Create(ctx, g); err != nil {
			log.Fatalf("create grade: %v", err)
		}
	}

	absences := repository.NewAbsenceRepository(db)
	a := &domain.Absence{
		StudentID: student.ID,
		Date:      time.Now().AddDate(0, 0, -7),
		Reason:    "sick",
	}
	if err := absences.Create(ctx, a); err != nil {
		log.Fatalf("create absence: %v", err)
	}

	events := repository.NewEventRepository(db)
	e := &domain.Event{
		Title:       "Parent-teacher meeting",
		Date:        time.Now().AddDate(0, 0, 14),
		Description: "Quarterly progress review",
	}
	if err := events.Create(ctx, e); err != nil {
		log.Fatalf("create event: %v", err)
	}

	log.Printf("seed complete")
}
