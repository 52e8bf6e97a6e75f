// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sitestore persists the multi-step wizard records: users, sites,
// the four step tables, and manually entered publications. It is the
// collaborator that feeds the exporter; the exporter itself never touches
// the database.
package sitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/wxr-generator/pkg/types"
)

// ErrNotFound is returned when a requested user or site does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the SQLite database holding wizard state.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT,
			first_name TEXT,
			last_name TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sites (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			site_name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sites_user_id ON sites(user_id)`,
		`CREATE TABLE IF NOT EXISTS step1_personal_info (
			site_id INTEGER PRIMARY KEY REFERENCES sites(id) ON DELETE CASCADE,
			first_name TEXT,
			last_name TEXT,
			title_role TEXT,
			department TEXT,
			field_of_study TEXT,
			email TEXT,
			office_address TEXT,
			phone_number TEXT,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS step2_biography (
			site_id INTEGER PRIMARY KEY REFERENCES sites(id) ON DELETE CASCADE,
			biography TEXT,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS step3_publications (
			site_id INTEGER PRIMARY KEY REFERENCES sites(id) ON DELETE CASCADE,
			bibtex_content TEXT,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS manual_publications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			site_id INTEGER NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
			author TEXT NOT NULL,
			title TEXT NOT NULL,
			publication_year TEXT,
			journal_or_booktitle TEXT,
			publisher TEXT,
			doi TEXT,
			url TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_manual_publications_site_id ON manual_publications(site_id)`,
		`CREATE TABLE IF NOT EXISTS step4_gallery (
			site_id INTEGER PRIMARY KEY REFERENCES sites(id) ON DELETE CASCADE,
			profile_picture TEXT,
			gallery_images TEXT,
			updated_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// EnsureUser returns the user with the given username, creating it on first
// sight. Non-empty email and name fields overwrite the stored values, so
// identity headers refreshed by the web server win over stale records.
func (s *Store) EnsureUser(ctx context.Context, u types.User) (types.User, error) {
	existing, err := s.GetUserByUsername(ctx, u.Username)
	switch {
	case errors.Is(err, ErrNotFound):
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO users (username, email, first_name, last_name, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			u.Username, u.Email, u.FirstName, u.LastName, timestamp())
		if err != nil {
			return types.User{}, fmt.Errorf("creating user %s: %w", u.Username, err)
		}
		u.ID, _ = res.LastInsertId()
		return u, nil
	case err != nil:
		return types.User{}, err
	}

	if u.Email != "" {
		existing.Email = u.Email
	}
	if u.FirstName != "" {
		existing.FirstName = u.FirstName
	}
	if u.LastName != "" {
		existing.LastName = u.LastName
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET email = ?, first_name = ?, last_name = ? WHERE id = ?`,
		existing.Email, existing.FirstName, existing.LastName, existing.ID)
	if err != nil {
		return types.User{}, fmt.Errorf("updating user %s: %w", u.Username, err)
	}
	return existing, nil
}

// GetUserByUsername looks a user up by login name.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (types.User, error) {
	var u types.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, COALESCE(email, ''), COALESCE(first_name, ''), COALESCE(last_name, '')
		 FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return types.User{}, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return types.User{}, fmt.Errorf("querying user %s: %w", username, err)
	}
	return u, nil
}

// CreateSite creates a site for the given user and returns it.
func (s *Store) CreateSite(ctx context.Context, userID int64, siteName string) (types.Site, error) {
	now := timestamp()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sites (user_id, site_name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		userID, siteName, now, now)
	if err != nil {
		return types.Site{}, fmt.Errorf("creating site: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSite(ctx, id)
}

// GetSite returns the site with the given id.
func (s *Store) GetSite(ctx context.Context, siteID int64) (types.Site, error) {
	var (
		site               types.Site
		createdAt, updated string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, site_name, created_at, updated_at FROM sites WHERE id = ?`, siteID).
		Scan(&site.ID, &site.UserID, &site.SiteName, &createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Site{}, fmt.Errorf("site %d: %w", siteID, ErrNotFound)
	}
	if err != nil {
		return types.Site{}, fmt.Errorf("querying site %d: %w", siteID, err)
	}
	if site.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return types.Site{}, fmt.Errorf("site %d created_at: %w", siteID, err)
	}
	if site.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return types.Site{}, fmt.Errorf("site %d updated_at: %w", siteID, err)
	}
	return site, nil
}

// ListSites returns all sites owned by the user, newest first.
func (s *Store) ListSites(ctx context.Context, userID int64) ([]types.Site, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, site_name, created_at, updated_at FROM sites
		 WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}
	defer rows.Close()

	var sites []types.Site
	for rows.Next() {
		var (
			site               types.Site
			createdAt, updated string
		)
		if err := rows.Scan(&site.ID, &site.UserID, &site.SiteName, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("scanning site row: %w", err)
		}
		if site.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("site %d created_at: %w", site.ID, err)
		}
		if site.UpdatedAt, err = parseTimestamp(updated); err != nil {
			return nil, fmt.Errorf("site %d updated_at: %w", site.ID, err)
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// SaveStep1 upserts the personal-info step for a site.
func (s *Store) SaveStep1(ctx context.Context, step types.Step1PersonalInfo) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO step1_personal_info
			(site_id, first_name, last_name, title_role, department, field_of_study,
			 email, office_address, phone_number, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(site_id) DO UPDATE SET
			first_name=excluded.first_name, last_name=excluded.last_name,
			title_role=excluded.title_role, department=excluded.department,
			field_of_study=excluded.field_of_study, email=excluded.email,
			office_address=excluded.office_address, phone_number=excluded.phone_number,
			updated_at=excluded.updated_at`,
		step.SiteID, step.FirstName, step.LastName, step.TitleRole, step.Department,
		step.FieldOfStudy, step.Email, step.OfficeAddress, step.PhoneNumber, timestamp())
	if err != nil {
		return fmt.Errorf("saving step 1 for site %d: %w", step.SiteID, err)
	}
	return s.touchSite(ctx, step.SiteID)
}

// SaveStep2 upserts the biography step for a site.
func (s *Store) SaveStep2(ctx context.Context, step types.Step2Biography) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO step2_biography (site_id, biography, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(site_id) DO UPDATE SET
			biography=excluded.biography, updated_at=excluded.updated_at`,
		step.SiteID, step.Biography, timestamp())
	if err != nil {
		return fmt.Errorf("saving step 2 for site %d: %w", step.SiteID, err)
	}
	return s.touchSite(ctx, step.SiteID)
}

// SaveStep3 upserts the BibTeX blob for a site. Manual publications are
// managed separately via AddManualPublication.
func (s *Store) SaveStep3(ctx context.Context, step types.Step3Publications) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO step3_publications (site_id, bibtex_content, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(site_id) DO UPDATE SET
			bibtex_content=excluded.bibtex_content, updated_at=excluded.updated_at`,
		step.SiteID, step.BibtexContent, timestamp())
	if err != nil {
		return fmt.Errorf("saving step 3 for site %d: %w", step.SiteID, err)
	}
	return s.touchSite(ctx, step.SiteID)
}

// AddManualPublication appends a manually entered publication for a site and
// returns its id. The step-3 row is created if it does not exist yet, so a
// manual entry alone is enough to populate the Publications page.
func (s *Store) AddManualPublication(ctx context.Context, siteID int64, m types.ManualPublication) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO step3_publications (site_id, bibtex_content, updated_at) VALUES (?, '', ?)
		 ON CONFLICT(site_id) DO NOTHING`,
		siteID, timestamp())
	if err != nil {
		return 0, fmt.Errorf("ensuring step 3 for site %d: %w", siteID, err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO manual_publications
			(site_id, author, title, publication_year, journal_or_booktitle, publisher, doi, url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		siteID, m.Author, m.Title, m.Year, m.JournalOrBooktitle, m.Publisher, m.DOI, m.URL, timestamp())
	if err != nil {
		return 0, fmt.Errorf("adding manual publication for site %d: %w", siteID, err)
	}
	id, _ := res.LastInsertId()
	return id, s.touchSite(ctx, siteID)
}

// SaveStep4 upserts the gallery step for a site. The image filename list is
// stored as JSON to preserve order.
func (s *Store) SaveStep4(ctx context.Context, step types.Step4Gallery) error {
	images, err := json.Marshal(step.GalleryImages)
	if err != nil {
		return fmt.Errorf("encoding gallery images: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO step4_gallery (site_id, profile_picture, gallery_images, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(site_id) DO UPDATE SET
			profile_picture=excluded.profile_picture,
			gallery_images=excluded.gallery_images, updated_at=excluded.updated_at`,
		step.SiteID, step.ProfilePicture, string(images), timestamp())
	if err != nil {
		return fmt.Errorf("saving step 4 for site %d: %w", step.SiteID, err)
	}
	return s.touchSite(ctx, step.SiteID)
}

// LoadBundle loads everything the exporter needs for one site. Step pointers
// are nil for steps that were never saved.
func (s *Store) LoadBundle(ctx context.Context, siteID int64) (types.SiteBundle, error) {
	site, err := s.GetSite(ctx, siteID)
	if err != nil {
		return types.SiteBundle{}, err
	}

	var user types.User
	err = s.db.QueryRowContext(ctx,
		`SELECT id, username, COALESCE(email, ''), COALESCE(first_name, ''), COALESCE(last_name, '')
		 FROM users WHERE id = ?`, site.UserID).
		Scan(&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName)
	if err != nil {
		return types.SiteBundle{}, fmt.Errorf("loading owner of site %d: %w", siteID, err)
	}

	bundle := types.SiteBundle{User: user, Site: site}

	step1 := types.Step1PersonalInfo{SiteID: siteID}
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(title_role, ''),
			COALESCE(department, ''), COALESCE(field_of_study, ''), COALESCE(email, ''),
			COALESCE(office_address, ''), COALESCE(phone_number, '')
		 FROM step1_personal_info WHERE site_id = ?`, siteID).
		Scan(&step1.FirstName, &step1.LastName, &step1.TitleRole, &step1.Department,
			&step1.FieldOfStudy, &step1.Email, &step1.OfficeAddress, &step1.PhoneNumber)
	switch {
	case err == nil:
		bundle.Step1 = &step1
	case !errors.Is(err, sql.ErrNoRows):
		return types.SiteBundle{}, fmt.Errorf("loading step 1: %w", err)
	}

	step2 := types.Step2Biography{SiteID: siteID}
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(biography, '') FROM step2_biography WHERE site_id = ?`, siteID).
		Scan(&step2.Biography)
	switch {
	case err == nil:
		bundle.Step2 = &step2
	case !errors.Is(err, sql.ErrNoRows):
		return types.SiteBundle{}, fmt.Errorf("loading step 2: %w", err)
	}

	step3 := types.Step3Publications{SiteID: siteID}
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(bibtex_content, '') FROM step3_publications WHERE site_id = ?`, siteID).
		Scan(&step3.BibtexContent)
	switch {
	case err == nil:
		step3.Manual, err = s.listManualPublications(ctx, siteID)
		if err != nil {
			return types.SiteBundle{}, err
		}
		bundle.Step3 = &step3
	case !errors.Is(err, sql.ErrNoRows):
		return types.SiteBundle{}, fmt.Errorf("loading step 3: %w", err)
	}

	step4 := types.Step4Gallery{SiteID: siteID}
	var imagesJSON string
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(profile_picture, ''), COALESCE(gallery_images, '')
		 FROM step4_gallery WHERE site_id = ?`, siteID).
		Scan(&step4.ProfilePicture, &imagesJSON)
	switch {
	case err == nil:
		if imagesJSON != "" {
			if err := json.Unmarshal([]byte(imagesJSON), &step4.GalleryImages); err != nil {
				return types.SiteBundle{}, fmt.Errorf("decoding gallery images: %w", err)
			}
		}
		bundle.Step4 = &step4
	case !errors.Is(err, sql.ErrNoRows):
		return types.SiteBundle{}, fmt.Errorf("loading step 4: %w", err)
	}

	return bundle, nil
}

func (s *Store) listManualPublications(ctx context.Context, siteID int64) ([]types.ManualPublication, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, author, title, COALESCE(publication_year, ''), COALESCE(journal_or_booktitle, ''),
			COALESCE(publisher, ''), COALESCE(doi, ''), COALESCE(url, '')
		 FROM manual_publications WHERE site_id = ? ORDER BY id`, siteID)
	if err != nil {
		return nil, fmt.Errorf("listing manual publications: %w", err)
	}
	defer rows.Close()

	var pubs []types.ManualPublication
	for rows.Next() {
		var m types.ManualPublication
		if err := rows.Scan(&m.ID, &m.Author, &m.Title, &m.Year, &m.JournalOrBooktitle,
			&m.Publisher, &m.DOI, &m.URL); err != nil {
			return nil, fmt.Errorf("scanning manual publication: %w", err)
		}
		pubs = append(pubs, m)
	}
	return pubs, rows.Err()
}

func (s *Store) touchSite(ctx context.Context, siteID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sites SET updated_at = ? WHERE id = ?`, timestamp(), siteID)
	if err != nil {
		return fmt.Errorf("touching site %d: %w", siteID, err)
	}
	return nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// parseTimestamp decodes a stored timestamp. Rows only ever hold values
// written by timestamp(), so a parse failure means the row is corrupt.
func parseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return ts, nil
}
