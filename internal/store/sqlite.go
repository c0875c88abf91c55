package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/itjobhub/importer/internal/model"
)

// SQLiteStore is a single-file implementation of Store for local runs and
// tests, where a MongoDB instance is not available. Same three logical
// collections, same uniqueness guarantees.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	link              TEXT NOT NULL UNIQUE,
	title             TEXT NOT NULL,
	description       TEXT,
	company_id        TEXT,
	location_raw      TEXT,
	formatted_address TEXT,
	city              TEXT,
	country           TEXT,
	geo_lat           REAL,
	geo_lng           REAL,
	skills            TEXT,
	seniority_id      TEXT,
	employment_type   TEXT,
	remote            INTEGER NOT NULL DEFAULT 0,
	salary_min        INTEGER,
	salary_max        INTEGER,
	source            TEXT,
	language          TEXT,
	published_at      DATETIME,
	fingerprint       TEXT NOT NULL,
	enrichment_status TEXT,
	created_at        DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_jobs_fingerprint ON jobs(fingerprint);

CREATE TABLE IF NOT EXISTS companies (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	address       TEXT NOT NULL DEFAULT '',
	logo_url      TEXT,
	trust_score   REAL DEFAULT 80.0,
	total_ratings INTEGER DEFAULT 0,
	created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(name, address)
);

CREATE TABLE IF NOT EXISTS seniorities (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	level      TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) HasJobWithLink(ctx context.Context, link string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM jobs WHERE link = ?", link).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up job by link: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) HasJobWithFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM jobs WHERE fingerprint = ?", fingerprint).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up job by fingerprint: %w", err)
	}
	return true, nil
}

// InsertJob inserts with OR IGNORE and checks changes() to tell a fresh
// insert from a duplicate, since rows-affected is unreliable with IGNORE
// across drivers.
func (s *SQLiteStore) InsertJob(ctx context.Context, job *model.Job) (string, error) {
	skills, err := json.Marshal(job.Skills)
	if err != nil {
		return "", fmt.Errorf("encoding skills: %w", err)
	}

	var lat, lng any
	if job.Geo != nil && len(job.Geo.Coordinates) == 2 {
		lng, lat = job.Geo.Coordinates[0], job.Geo.Coordinates[1]
	}

	job.CreatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs (
	link, title, description, company_id, location_raw, formatted_address,
	city, country, geo_lat, geo_lng, skills, seniority_id, employment_type,
	remote, salary_min, salary_max, source, language, published_at,
	fingerprint, enrichment_status, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.Link, job.Title, job.Description, job.CompanyID, job.LocationRaw,
		job.FormattedAddress, job.City, job.Country, lat, lng, string(skills),
		job.SeniorityID, job.EmploymentType, job.Remote, job.SalaryMin,
		job.SalaryMax, job.Source, job.Language, job.PublishedAt,
		job.Fingerprint, string(job.Enrichment), job.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("inserting job: %w", err)
	}

	var changes int
	if err := s.db.QueryRowContext(ctx, "SELECT changes()").Scan(&changes); err != nil {
		return "", fmt.Errorf("checking insert result: %w", err)
	}
	if changes == 0 {
		return "", ErrDuplicate
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, "SELECT id FROM jobs WHERE link = ?", job.Link).Scan(&id); err != nil {
		return "", fmt.Errorf("reading inserted job id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

func (s *SQLiteStore) UpsertCompany(ctx context.Context, company model.Company) (string, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO companies (name, address, logo_url) VALUES (?, ?, ?)",
		company.Name, company.Address, company.Logo)
	if err != nil {
		return "", fmt.Errorf("upserting company %q: %w", company.Name, err)
	}

	if company.Logo != "" {
		_, err = s.db.ExecContext(ctx,
			"UPDATE companies SET logo_url = ? WHERE name = ? AND address = ?",
			company.Logo, company.Name, company.Address)
		if err != nil {
			return "", fmt.Errorf("updating company logo: %w", err)
		}
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		"SELECT id FROM companies WHERE name = ? AND address = ?",
		company.Name, company.Address).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("reading company id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

func (s *SQLiteStore) UpsertSeniority(ctx context.Context, level string) (string, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO seniorities (level) VALUES (?)", level)
	if err != nil {
		return "", fmt.Errorf("upserting seniority %q: %w", level, err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, "SELECT id FROM seniorities WHERE level = ?", level).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("reading seniority id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

func (s *SQLiteStore) RecentJobs(ctx context.Context, limit int) ([]model.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, link, title, description, location_raw, city, country, skills,
	employment_type, remote, source, language, published_at, enrichment_status
FROM jobs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var (
			j      model.Job
			id     int64
			skills sql.NullString
			status sql.NullString
		)
		err := rows.Scan(&id, &j.Link, &j.Title, &j.Description, &j.LocationRaw,
			&j.City, &j.Country, &skills, &j.EmploymentType, &j.Remote,
			&j.Source, &j.Language, &j.PublishedAt, &status)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		j.ID = strconv.FormatInt(id, 10)
		if skills.Valid && skills.String != "" {
			_ = json.Unmarshal([]byte(skills.String), &j.Skills)
		}
		j.Enrichment = model.EnrichmentStatus(status.String)
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close(_ context.Context) error {
	return s.db.Close()
}
