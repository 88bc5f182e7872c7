package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"neptis/internal/errs"
	"neptis/internal/models"
)

const profileColumns = `server_name, endpoint, secret, username, password,
	wake_endpoint, wake_secret, is_default, auto_mount`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ServerName, &p.Endpoint, &p.Secret, &p.Username, &p.Password,
		&p.WakeEndpoint, &p.WakeSecret, &p.IsDefault, &p.AutoMount)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+profileColumns+" FROM profiles ORDER BY server_name")
	if err != nil {
		return nil, storageErr("repository.list_profiles", fmt.Errorf("failed to query profiles: %w", err))
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, storageErr("repository.list_profiles", fmt.Errorf("failed to scan profile: %w", err))
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("repository.list_profiles", fmt.Errorf("error iterating profiles: %w", err))
	}
	return profiles, nil
}

func (r *Repository) GetProfile(ctx context.Context, serverName string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profiles WHERE server_name = ?", serverName)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("repository.get_profile", "profile %q not found", serverName)
		}
		return nil, storageErr("repository.get_profile", fmt.Errorf("failed to get profile: %w", err))
	}
	return p, nil
}

// GetDefaultProfile returns the profile flagged as default, NotFound when none is.
func (r *Repository) GetDefaultProfile(ctx context.Context) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profiles WHERE is_default = 1")
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("repository.get_default_profile", "no default profile")
		}
		return nil, storageErr("repository.get_default_profile", err)
	}
	return p, nil
}

// SaveProfile inserts or updates a profile. When the profile is flagged as
// default the flag is cleared on every other profile in the same transaction.
func (r *Repository) SaveProfile(ctx context.Context, p *models.Profile) error {
	return r.withTx(ctx, "repository.save_profile", func(tx *sql.Tx) error {
		return upsertProfile(ctx, tx, p)
	})
}

func upsertProfile(ctx context.Context, tx *sql.Tx, p *models.Profile) error {
	if p.IsDefault {
		if _, err := tx.ExecContext(ctx,
			"UPDATE profiles SET is_default = 0 WHERE is_default = 1 AND server_name <> ?", p.ServerName); err != nil {
			return storageErr("repository.save_profile", fmt.Errorf("failed to clear default: %w", err))
		}
	}

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (server_name) DO UPDATE SET
			endpoint = excluded.endpoint,
			secret = excluded.secret,
			username = excluded.username,
			password = excluded.password,
			wake_endpoint = excluded.wake_endpoint,
			wake_secret = excluded.wake_secret,
			is_default = excluded.is_default,
			auto_mount = excluded.auto_mount
	`
	_, err := tx.ExecContext(ctx, query,
		p.ServerName, p.Endpoint, p.Secret, p.Username, p.Password,
		p.WakeEndpoint, p.WakeSecret, p.IsDefault, p.AutoMount)
	if err != nil {
		return storageErr("repository.save_profile", fmt.Errorf("failed to save profile %q: %w", p.ServerName, err))
	}
	return nil
}

// ReplaceProfiles makes the stored profile set equal to profiles in one
// transaction. Profiles kept by name keep their schedules.
func (r *Repository) ReplaceProfiles(ctx context.Context, profiles []models.Profile) error {
	defaults := 0
	for _, p := range profiles {
		if p.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return errs.Errorf(errs.Conflict, "repository.replace_profiles", "%d profiles flagged as default", defaults)
	}

	return r.withTx(ctx, "repository.replace_profiles", func(tx *sql.Tx) error {
		keep := make(map[string]bool, len(profiles))
		for _, p := range profiles {
			keep[p.ServerName] = true
		}

		rows, err := tx.QueryContext(ctx, "SELECT server_name FROM profiles")
		if err != nil {
			return storageErr("repository.replace_profiles", err)
		}
		var stale []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return storageErr("repository.replace_profiles", err)
			}
			if !keep[name] {
				stale = append(stale, name)
			}
		}
		rows.Close()

		for _, name := range stale {
			if _, err := tx.ExecContext(ctx, "DELETE FROM profiles WHERE server_name = ?", name); err != nil {
				return storageErr("repository.replace_profiles", err)
			}
		}
		for i := range profiles {
			if err := upsertProfile(ctx, tx, &profiles[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteProfile removes a profile with its schedules and actions. Job history is kept.
func (r *Repository) DeleteProfile(ctx context.Context, serverName string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM profiles WHERE server_name = ?", serverName)
	if err != nil {
		return storageErr("repository.delete_profile", fmt.Errorf("failed to delete profile: %w", err))
	}
	return requireAffected(res, "repository.delete_profile", "profile %q not found", serverName)
}
