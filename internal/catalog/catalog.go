// Package catalog supplies the immutable job catalog.
//
// Rows live in the Postgres jobs table and are read into an in-memory
// snapshot at startup. Consumers always receive copies — nothing downstream
// can mutate the reference data.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"careerflix/backend/internal/model"
)

// Provider supplies the ordered job catalog. The scoring and filter code
// treat the returned slice as read-only input.
type Provider interface {
	Jobs() []model.Job
	ByID(id int) (model.Job, bool)
}

// Postgres is the production Provider: a snapshot of the jobs table,
// refreshed by the scheduler.
type Postgres struct {
	pool *pgxpool.Pool

	mu   sync.RWMutex
	jobs []model.Job
	byID map[int]model.Job
}

// NewPostgres constructs the provider and performs the initial load.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	c := &Postgres{pool: pool}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh re-reads the jobs table into the snapshot. Existing rows are
// immutable; a refresh only picks up rows added out-of-band.
func (c *Postgres) Refresh(ctx context.Context) error {
	rows, err := c.pool.Query(ctx,
		`SELECT id, title, company, description, location, mode, experience,
		        skills, salary_range, posted_days_ago, source, apply_url
		 FROM jobs
		 ORDER BY id`,
	)
	if err != nil {
		return fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Description, &j.Location,
			&j.Mode, &j.Experience, &j.Skills, &j.SalaryRange,
			&j.PostedDaysAgo, &j.Source, &j.ApplyURL,
		); err != nil {
			return fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate jobs: %w", err)
	}

	byID := make(map[int]model.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}

	c.mu.Lock()
	c.jobs = jobs
	c.byID = byID
	c.mu.Unlock()
	return nil
}

// Jobs returns a copy of the catalog snapshot in id order.
func (c *Postgres) Jobs() []model.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Job, len(c.jobs))
	copy(out, c.jobs)
	return out
}

// ByID looks up one job.
func (c *Postgres) ByID(id int) (model.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	j, ok := c.byID[id]
	return j, ok
}

// Seed inserts the bundled catalog, skipping ids that already exist.
// Returns the number of rows inserted.
func Seed(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	inserted := 0
	for _, j := range SeedJobs {
		tag, err := pool.Exec(ctx,
			`INSERT INTO jobs (id, title, company, description, location, mode, experience,
			                   skills, salary_range, posted_days_ago, source, apply_url)
			 SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
			 WHERE NOT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`,
			j.ID, j.Title, j.Company, j.Description, j.Location, j.Mode,
			j.Experience, j.Skills, j.SalaryRange, j.PostedDaysAgo, j.Source, j.ApplyURL,
		)
		if err != nil {
			return inserted, fmt.Errorf("seed job %d: %w", j.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// Static is a fixed in-memory Provider for tests and DB-less runs.
type Static struct {
	jobs []model.Job
	byID map[int]model.Job
}

// NewStatic copies jobs into a Static provider.
func NewStatic(jobs []model.Job) *Static {
	own := make([]model.Job, len(jobs))
	copy(own, jobs)
	byID := make(map[int]model.Job, len(own))
	for _, j := range own {
		byID[j.ID] = j
	}
	return &Static{jobs: own, byID: byID}
}

func (s *Static) Jobs() []model.Job {
	out := make([]model.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *Static) ByID(id int) (model.Job, bool) {
	j, ok := s.byID[id]
	return j, ok
}
