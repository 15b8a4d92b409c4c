package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
)

func TestProfileRepositoryWorkHistory(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &profileRepository{storage: storage}
	ctx := context.Background()

	item := &model.WorkHistory{ID: "w-1", UserID: 1, Employer: "ACME", JobTitle: "Engineer", StartDate: "2020-01"}
	mock.ExpectExec("INSERT INTO work_history").
		WithArgs("w-1", int64(1), "ACME", "Engineer", "2020-01", "", false, "").
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.AddWorkHistory(ctx, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM work_history WHERE user_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "user_id", "employer", "job_title", "start_date", "end_date", "working_here", "job_description"}).
			AddRow("w-1", int64(1), "ACME", "Engineer", "2020-01", "", true, "Built things"))
	list, err := repo.ListWorkHistory(ctx, 1)
	if err != nil || len(list) != 1 || !list[0].WorkingHere {
		t.Fatalf("unexpected list %+v err=%v", list, err)
	}

	mock.ExpectExec("UPDATE work_history SET").
		WithArgs("w-1", int64(2), "", "", "", "", false, "").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdateWorkHistory(ctx, &model.WorkHistory{ID: "w-1", UserID: 2}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected foreign update to be not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM work_history").WithArgs("w-1", int64(1)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.DeleteWorkHistory(ctx, 1, "w-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestProfileRepositoryEducationAndSkills(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &profileRepository{storage: storage}
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO education").
		WithArgs("e-1", int64(1), "UoN", "", "", "", false, "").
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.AddEducation(ctx, &model.Education{ID: "e-1", UserID: 1, School: "UoN"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mock.ExpectQuery("FROM education WHERE user_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "user_id", "school", "grade_achieved", "start_date", "end_date", "studying_here", "description"}).
			AddRow("e-1", int64(1), "UoN", "First class", "2015", "2019", false, ""))
	edu, err := repo.ListEducation(ctx, 1)
	if err != nil || len(edu) != 1 || edu[0].GradeAchieved != "First class" {
		t.Fatalf("unexpected education %+v err=%v", edu, err)
	}
	mock.ExpectExec("UPDATE education SET").
		WithArgs("e-1", int64(1), "UoN", "", "", "", false, "").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateEducation(ctx, &model.Education{ID: "e-1", UserID: 1, School: "UoN"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mock.ExpectExec("DELETE FROM education").WithArgs("e-1", int64(2)).WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.DeleteEducation(ctx, 2, "e-1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("INSERT INTO skills").WithArgs("s-1", int64(1), "Go", 5).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.AddSkill(ctx, &model.Skill{ID: "s-1", UserID: 1, Skill: "Go", Rating: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mock.ExpectQuery("FROM skills WHERE user_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "user_id", "skill", "rating"}).AddRow("s-1", int64(1), "Go", 5))
	skills, err := repo.ListSkills(ctx, 1)
	if err != nil || len(skills) != 1 || skills[0].Rating != 5 {
		t.Fatalf("unexpected skills %+v err=%v", skills, err)
	}
	mock.ExpectExec("UPDATE skills SET").WithArgs("s-1", int64(1), "Go", 4).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateSkill(ctx, &model.Skill{ID: "s-1", UserID: 1, Skill: "Go", Rating: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mock.ExpectExec("DELETE FROM skills").WithArgs("s-1", int64(1)).WillReturnError(errors.New("exec"))
	if err := repo.DeleteSkill(ctx, 1, "s-1"); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestProfileRepositorySummary(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &profileRepository{storage: storage}
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("FROM professional_summaries WHERE user_id=").WithArgs(int64(1)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetSummary(ctx, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	summary := &model.ProfessionalSummary{UserID: 1, Summary: "Backend engineer", GitHub: "https://github.com/jane", UpdatedAt: now}
	mock.ExpectExec("INSERT INTO professional_summaries").
		WithArgs(int64(1), "Backend engineer", "https://github.com/jane", "", "", now).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.UpsertSummary(ctx, summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM professional_summaries WHERE user_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"user_id", "summary", "github", "linkedin", "other_website", "updated_at"}).
			AddRow(int64(1), "Backend engineer", "https://github.com/jane", "", "", now))
	got, err := repo.GetSummary(ctx, 1)
	if err != nil || got.Summary != "Backend engineer" {
		t.Fatalf("unexpected summary %+v err=%v", got, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
