package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, email, password_hash, first_name, last_name, phone, city, country, professional_title, avatar_url, role, created_at`

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.City, &u.Country, &u.ProfessionalTitle, &u.AvatarURL, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, first_name, last_name, role)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	out := *user
	if out.Role == "" {
		out.Role = model.RoleUser
	}
	err := r.storage.pool.QueryRow(ctx, query, out.Email, out.PasswordHash, out.FirstName, out.LastName, out.Role).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	const query = `UPDATE users SET first_name=$2, last_name=$3, phone=$4, city=$5, country=$6, professional_title=$7
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, user.ID, user.FirstName, user.LastName, user.Phone,
		user.City, user.Country, user.ProfessionalTitle)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}

func (r *userRepository) SetAvatar(ctx context.Context, id int64, url string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE users SET avatar_url=$2 WHERE id=$1`, id, url)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
