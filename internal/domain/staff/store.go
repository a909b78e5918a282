package staff

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateAccount(ctx context.Context, account StaffAccount) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO staff_accounts (username, password_hash, email, mobile_number, gender)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id
  `, account.Username, account.PasswordHash, account.Email, account.MobileNumber, account.Gender).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetAccountByUsername returns the account including its password hash; it
// exists for credential checks only and must not be serialized as-is.
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*StaffAccount, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, email, mobile_number, gender, created_at
    FROM staff_accounts
    WHERE username = $1
  `, username)

	var account StaffAccount
	err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Email, &account.MobileNumber, &account.Gender, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Store) AccountExists(ctx context.Context, accountID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM staff_accounts
    WHERE id = $1
  `, accountID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAccountWithProfile fetches one account and its embedded profile. It
// distinguishes a missing account from an account that has no profile yet.
func (s *Store) GetAccountWithProfile(ctx context.Context, accountID string) (*StaffAccount, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, username, email, mobile_number, gender, created_at
    FROM staff_accounts
    WHERE id = $1
  `, accountID)

	var account StaffAccount
	err := row.Scan(&account.ID, &account.Username, &account.Email, &account.MobileNumber, &account.Gender, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	profile, err := s.getProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.EmployeeDetails = profile
	return &account, nil
}

func (s *Store) getProfile(ctx context.Context, accountID string) (*EmployeeProfile, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT full_name, date_of_birth, gender, address, phone, email,
           emergency_name, emergency_relationship, emergency_phone,
           profile_photo, identification_docs, status, created_at, updated_at
    FROM employee_profiles
    WHERE account_id = $1
  `, accountID)

	var profile EmployeeProfile
	err := row.Scan(
		&profile.FullName, &profile.DateOfBirth, &profile.Gender, &profile.Address, &profile.Phone, &profile.Email,
		&profile.EmergencyContact.Name, &profile.EmergencyContact.Relationship, &profile.EmergencyContact.Phone,
		&profile.ProfilePhoto, &profile.IdentificationDocs, &profile.Status, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListWithProfiles returns only accounts that carry a profile, with the
// password hash projected out.
func (s *Store) ListWithProfiles(ctx context.Context) ([]StaffAccount, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.username, a.email, a.mobile_number, a.gender, a.created_at,
           p.full_name, p.date_of_birth, p.gender, p.address, p.phone, p.email,
           p.emergency_name, p.emergency_relationship, p.emergency_phone,
           p.profile_photo, p.identification_docs, p.status, p.created_at, p.updated_at
    FROM staff_accounts a
    JOIN employee_profiles p ON p.account_id = a.id
    ORDER BY a.username
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StaffAccount
	for rows.Next() {
		var account StaffAccount
		var profile EmployeeProfile
		if err := rows.Scan(
			&account.ID, &account.Username, &account.Email, &account.MobileNumber, &account.Gender, &account.CreatedAt,
			&profile.FullName, &profile.DateOfBirth, &profile.Gender, &profile.Address, &profile.Phone, &profile.Email,
			&profile.EmergencyContact.Name, &profile.EmergencyContact.Relationship, &profile.EmergencyContact.Phone,
			&profile.ProfilePhoto, &profile.IdentificationDocs, &profile.Status, &profile.CreatedAt, &profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		account.EmployeeDetails = &profile
		out = append(out, account)
	}
	return out, rows.Err()
}

// ReplaceProfile upserts the profile row for an account wholesale. The
// original created_at survives a replace; updated_at is refreshed on every
// save.
func (s *Store) ReplaceProfile(ctx context.Context, accountID string, profile EmployeeProfile) error {
	exists, err := s.AccountExists(ctx, accountID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAccountNotFound
	}

	if profile.Status == "" {
		profile.Status = StatusPending
	}

	_, err = s.DB.Exec(ctx, `
    INSERT INTO employee_profiles (account_id, full_name, date_of_birth, gender, address, phone, email,
      emergency_name, emergency_relationship, emergency_phone, profile_photo, identification_docs, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    ON CONFLICT (account_id) DO UPDATE SET
      full_name = EXCLUDED.full_name,
      date_of_birth = EXCLUDED.date_of_birth,
      gender = EXCLUDED.gender,
      address = EXCLUDED.address,
      phone = EXCLUDED.phone,
      email = EXCLUDED.email,
      emergency_name = EXCLUDED.emergency_name,
      emergency_relationship = EXCLUDED.emergency_relationship,
      emergency_phone = EXCLUDED.emergency_phone,
      profile_photo = EXCLUDED.profile_photo,
      identification_docs = EXCLUDED.identification_docs,
      status = EXCLUDED.status,
      updated_at = now()
  `,
		accountID, profile.FullName, profile.DateOfBirth, profile.Gender, profile.Address, profile.Phone, profile.Email,
		profile.EmergencyContact.Name, profile.EmergencyContact.Relationship, profile.EmergencyContact.Phone,
		profile.ProfilePhoto, profile.IdentificationDocs, profile.Status,
	)
	return err
}
