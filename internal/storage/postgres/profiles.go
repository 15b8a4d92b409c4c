package postgres

import (
	"context"

	"github.com/polkiloo/cvorders/internal/domain/model"
)

type profileRepository struct {
	storage *Storage
}

func (r *profileRepository) ListWorkHistory(ctx context.Context, userID int64) ([]model.WorkHistory, error) {
	const query = `SELECT id, user_id, employer, job_title, start_date, end_date, working_here, job_description
                   FROM work_history WHERE user_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WorkHistory
	for rows.Next() {
		var w model.WorkHistory
		if err := rows.Scan(&w.ID, &w.UserID, &w.Employer, &w.JobTitle, &w.StartDate, &w.EndDate, &w.WorkingHere, &w.JobDescription); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

func (r *profileRepository) AddWorkHistory(ctx context.Context, item *model.WorkHistory) error {
	const query = `INSERT INTO work_history (id, user_id, employer, job_title, start_date, end_date, working_here, job_description)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.storage.pool.Exec(ctx, query, item.ID, item.UserID, item.Employer, item.JobTitle,
		item.StartDate, item.EndDate, item.WorkingHere, item.JobDescription)
	return err
}

func (r *profileRepository) UpdateWorkHistory(ctx context.Context, item *model.WorkHistory) error {
	const query = `UPDATE work_history SET employer=$3, job_title=$4, start_date=$5, end_date=$6, working_here=$7, job_description=$8
                   WHERE id=$1 AND user_id=$2`
	return r.exec(ctx, query, item.ID, item.UserID, item.Employer, item.JobTitle,
		item.StartDate, item.EndDate, item.WorkingHere, item.JobDescription)
}

func (r *profileRepository) DeleteWorkHistory(ctx context.Context, userID int64, id string) error {
	return r.exec(ctx, `DELETE FROM work_history WHERE id=$1 AND user_id=$2`, id, userID)
}

func (r *profileRepository) ListEducation(ctx context.Context, userID int64) ([]model.Education, error) {
	const query = `SELECT id, user_id, school, grade_achieved, start_date, end_date, studying_here, description
                   FROM education WHERE user_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Education
	for rows.Next() {
		var e model.Education
		if err := rows.Scan(&e.ID, &e.UserID, &e.School, &e.GradeAchieved, &e.StartDate, &e.EndDate, &e.StudyingHere, &e.Description); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *profileRepository) AddEducation(ctx context.Context, item *model.Education) error {
	const query = `INSERT INTO education (id, user_id, school, grade_achieved, start_date, end_date, studying_here, description)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.storage.pool.Exec(ctx, query, item.ID, item.UserID, item.School, item.GradeAchieved,
		item.StartDate, item.EndDate, item.StudyingHere, item.Description)
	return err
}

func (r *profileRepository) UpdateEducation(ctx context.Context, item *model.Education) error {
	const query = `UPDATE education SET school=$3, grade_achieved=$4, start_date=$5, end_date=$6, studying_here=$7, description=$8
                   WHERE id=$1 AND user_id=$2`
	return r.exec(ctx, query, item.ID, item.UserID, item.School, item.GradeAchieved,
		item.StartDate, item.EndDate, item.StudyingHere, item.Description)
}

func (r *profileRepository) DeleteEducation(ctx context.Context, userID int64, id string) error {
	return r.exec(ctx, `DELETE FROM education WHERE id=$1 AND user_id=$2`, id, userID)
}

func (r *profileRepository) ListSkills(ctx context.Context, userID int64) ([]model.Skill, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT id, user_id, skill, rating FROM skills WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Skill
	for rows.Next() {
		var s model.Skill
		if err := rows.Scan(&s.ID, &s.UserID, &s.Skill, &s.Rating); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *profileRepository) AddSkill(ctx context.Context, item *model.Skill) error {
	_, err := r.storage.pool.Exec(ctx, `INSERT INTO skills (id, user_id, skill, rating) VALUES ($1, $2, $3, $4)`,
		item.ID, item.UserID, item.Skill, item.Rating)
	return err
}

func (r *profileRepository) UpdateSkill(ctx context.Context, item *model.Skill) error {
	return r.exec(ctx, `UPDATE skills SET skill=$3, rating=$4 WHERE id=$1 AND user_id=$2`,
		item.ID, item.UserID, item.Skill, item.Rating)
}

func (r *profileRepository) DeleteSkill(ctx context.Context, userID int64, id string) error {
	return r.exec(ctx, `DELETE FROM skills WHERE id=$1 AND user_id=$2`, id, userID)
}

func (r *profileRepository) GetSummary(ctx context.Context, userID int64) (*model.ProfessionalSummary, error) {
	const query = `SELECT user_id, summary, github, linkedin, other_website, updated_at
                   FROM professional_summaries WHERE user_id=$1`
	var s model.ProfessionalSummary
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.Summary, &s.GitHub, &s.LinkedIn, &s.OtherWebsite, &s.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *profileRepository) UpsertSummary(ctx context.Context, summary *model.ProfessionalSummary) error {
	const query = `INSERT INTO professional_summaries (user_id, summary, github, linkedin, other_website, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (user_id) DO UPDATE
                   SET summary=EXCLUDED.summary, github=EXCLUDED.github, linkedin=EXCLUDED.linkedin,
                       other_website=EXCLUDED.other_website, updated_at=EXCLUDED.updated_at`
	_, err := r.storage.pool.Exec(ctx, query, summary.UserID, summary.Summary, summary.GitHub,
		summary.LinkedIn, summary.OtherWebsite, summary.UpdatedAt)
	return err
}

func (r *profileRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
