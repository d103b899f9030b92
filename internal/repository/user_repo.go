package repository

import (
	"context"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, phone, role,
	email_notifications, push_notifications, sms_notifications,
	research_consent, third_party_sharing, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.EmailNotifications,
		&user.PushNotifications,
		&user.SMSNotifications,
		&user.ResearchConsent,
		&user.ThirdPartySharing,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	query := `
		INSERT INTO users (name, email, password_hash, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.Phone, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email), &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SearchByName matches a case-insensitive substring of the name and never returns excludeID.
func (r *UserRepository) SearchByName(ctx context.Context, query string, excludeID int64) ([]models.ChatUser, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email
		FROM users
		WHERE id <> $1
		  AND name ILIKE '%' || $2 || '%'
		ORDER BY name, id
	`, excludeID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.ChatUser, 0)
	for rows.Next() {
		var u models.ChatUser
		if err := rows.Scan(&u.UserID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type UpdateUserInput struct {
	Name               *string
	Phone              *string
	EmailNotifications *bool
	PushNotifications  *bool
	SMSNotifications   *bool
	ResearchConsent    *bool
	ThirdPartySharing  *bool
}

func (r *UserRepository) UpdateByEmail(ctx context.Context, email string, in UpdateUserInput) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			email_notifications = COALESCE($3, email_notifications),
			push_notifications = COALESCE($4, push_notifications),
			sms_notifications = COALESCE($5, sms_notifications),
			research_consent = COALESCE($6, research_consent),
			third_party_sharing = COALESCE($7, third_party_sharing),
			updated_at = NOW()
		WHERE email = $8
		RETURNING ` + userColumns
	var user models.User
	err := scanUser(r.db.QueryRow(ctx, query,
		in.Name,
		in.Phone,
		in.EmailNotifications,
		in.PushNotifications,
		in.SMSNotifications,
		in.ResearchConsent,
		in.ThirdPartySharing,
		email,
	), &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
