package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"codecamp-backend/internal/domains/camp/model"
	"codecamp-backend/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the camp tables if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure camp schema: %w", err)
	}
	return nil
}

// PostgresFactory hands out units of work backed by one shared pool.
type PostgresFactory struct {
	pool *pgxpool.Pool
}

// NewPostgresFactory creates a factory over pool.
func NewPostgresFactory(pool *pgxpool.Pool) *PostgresFactory {
	return &PostgresFactory{pool: pool}
}

var _ Factory = (*PostgresFactory)(nil)
var _ Repository = (*postgresRepository)(nil)

func (f *PostgresFactory) New() Repository {
	return &postgresRepository{pool: f.pool}
}

// postgresRepository implements Repository using pgxpool.
// Reads use the pool directly; SaveChanges runs inside one transaction.
type postgresRepository struct {
	pool    *pgxpool.Pool
	changes changeSet
}

// Postgres error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const campColumns = `
	c.camp_id, c.moniker, c.name, c.event_date, c.length,
	c.venue_name, c.address1, c.address2, c.address3,
	c.city_town, c.state_province, c.postal_code, c.country`

const talkColumns = `t.talk_id, t.camp_id, t.speaker_id, t.title, t.abstract, t.level`

const speakerColumns = `
	s.speaker_id, s.first_name, s.last_name, s.middle_name, s.bio,
	s.company, s.company_url, s.blog_url, s.twitter, s.github`

// ════════════════════════════════════════════════════════════════
// READS
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) GetAllCamps(ctx context.Context, includeTalks bool) ([]*model.Camp, error) {
	query := `SELECT ` + campColumns + ` FROM camps c ORDER BY c.moniker COLLATE "C"`
	return r.queryCamps(ctx, includeTalks, query)
}

func (r *postgresRepository) GetCamp(ctx context.Context, moniker string, includeTalks bool) (*model.Camp, error) {
	query := `SELECT ` + campColumns + ` FROM camps c WHERE c.moniker = $1`

	camps, err := r.queryCamps(ctx, includeTalks, query, moniker)
	if err != nil || len(camps) == 0 {
		return nil, err
	}
	return camps[0], nil
}

func (r *postgresRepository) GetCampsByEventDate(ctx context.Context, date time.Time, includeTalks bool) ([]*model.Camp, error) {
	// COLLATE "C": byte order, same as the memory store
	query := `
		SELECT ` + campColumns + `
		FROM camps c
		WHERE c.event_date = $1
		ORDER BY c.moniker COLLATE "C"`

	return r.queryCamps(ctx, includeTalks, query, model.DateOnly(date))
}

func (r *postgresRepository) GetTalksByMoniker(ctx context.Context, moniker string) ([]*model.Talk, error) {
	camp, err := r.GetCamp(ctx, moniker, false)
	if err != nil {
		return nil, err
	}
	if camp == nil {
		return []*model.Talk{}, nil
	}

	byCamp, err := r.loadTalks(ctx, map[int]*model.Camp{camp.CampID: camp})
	if err != nil {
		return nil, err
	}
	return byCamp[camp.CampID], nil
}

func (r *postgresRepository) GetTalkByMoniker(ctx context.Context, moniker string, talkID int, includeSpeaker bool) (*model.Talk, error) {
	camp, err := r.GetCamp(ctx, moniker, false)
	if err != nil || camp == nil {
		return nil, err
	}

	var (
		talk  *model.Talk
		query string
	)
	if includeSpeaker {
		query = `
			SELECT ` + talkColumns + `, ` + speakerColumns + `
			FROM talks t
			JOIN speakers s ON s.speaker_id = t.speaker_id
			WHERE t.camp_id = $1 AND t.talk_id = $2`
		talk, err = scanTalkWithSpeaker(r.pool.QueryRow(ctx, query, camp.CampID, talkID))
	} else {
		query = `SELECT ` + talkColumns + ` FROM talks t WHERE t.camp_id = $1 AND t.talk_id = $2`
		talk, err = scanTalk(r.pool.QueryRow(ctx, query, camp.CampID, talkID))
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get talk %d of %q: %w", talkID, moniker, err)
	}
	talk.Camp = camp
	return talk, nil
}

func (r *postgresRepository) GetSpeaker(ctx context.Context, speakerID int) (*model.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers s WHERE s.speaker_id = $1`

	s, err := scanSpeaker(r.pool.QueryRow(ctx, query, speakerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get speaker %d: %w", speakerID, err)
	}
	return s, nil
}

func (r *postgresRepository) queryCamps(ctx context.Context, includeTalks bool, query string, args ...any) ([]*model.Camp, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query camps: %w", err)
	}
	defer rows.Close()

	camps := []*model.Camp{}
	for rows.Next() {
		c, err := scanCamp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan camp: %w", err)
		}
		camps = append(camps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate camps: %w", err)
	}

	if !includeTalks || len(camps) == 0 {
		return camps, nil
	}

	byID := make(map[int]*model.Camp, len(camps))
	for _, c := range camps {
		byID[c.CampID] = c
	}
	byCamp, err := r.loadTalks(ctx, byID)
	if err != nil {
		return nil, err
	}
	for _, c := range camps {
		c.Talks = byCamp[c.CampID]
	}
	return camps, nil
}

// loadTalks fetches the talks (speaker joined) of every camp in one query.
// Every camp gets a non-nil slice.
func (r *postgresRepository) loadTalks(ctx context.Context, camps map[int]*model.Camp) (map[int][]*model.Talk, error) {
	ids := make([]int32, 0, len(camps))
	out := make(map[int][]*model.Talk, len(camps))
	for id := range camps {
		ids = append(ids, int32(id))
		out[id] = []*model.Talk{}
	}

	query := `
		SELECT ` + talkColumns + `, ` + speakerColumns + `
		FROM talks t
		JOIN speakers s ON s.speaker_id = t.speaker_id
		WHERE t.camp_id = ANY($1)
		ORDER BY t.talk_id`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query talks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTalkWithSpeaker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan talk: %w", err)
		}
		campID := t.CampID()
		t.Camp = camps[campID]
		out[campID] = append(out[campID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate talks: %w", err)
	}
	return out, nil
}

// ── Scanning ────────────────────────────────────────────────

func scanCamp(row pgx.Row) (*model.Camp, error) {
	var (
		c         model.Camp
		eventDate *time.Time
	)
	err := row.Scan(
		&c.CampID,
		&c.Moniker,
		&c.Name,
		&eventDate,
		&c.Length,
		&c.Location.VenueName,
		&c.Location.Address1,
		&c.Location.Address2,
		&c.Location.Address3,
		&c.Location.CityTown,
		&c.Location.StateProvince,
		&c.Location.PostalCode,
		&c.Location.Country,
	)
	if err != nil {
		return nil, err
	}
	if eventDate != nil {
		c.EventDate = model.DateOnly(*eventDate)
	}
	return &c, nil
}

// scanTalk reads talkColumns. Camp is a stub carrying only CampID until the
// caller attaches the loaded camp; Speaker is a stub carrying SpeakerID.
func scanTalk(row pgx.Row) (*model.Talk, error) {
	var (
		t                 model.Talk
		campID, speakerID int
	)
	if err := row.Scan(&t.TalkID, &campID, &speakerID, &t.Title, &t.Abstract, &t.Level); err != nil {
		return nil, err
	}
	t.Camp = &model.Camp{CampID: campID}
	t.Speaker = &model.Speaker{SpeakerID: speakerID}
	return &t, nil
}

func scanTalkWithSpeaker(row pgx.Row) (*model.Talk, error) {
	var (
		t                 model.Talk
		s                 model.Speaker
		campID, speakerID int
	)
	err := row.Scan(
		&t.TalkID, &campID, &speakerID, &t.Title, &t.Abstract, &t.Level,
		&s.SpeakerID, &s.FirstName, &s.LastName, &s.MiddleName, &s.Bio,
		&s.Company, &s.CompanyURL, &s.BlogURL, &s.Twitter, &s.GitHub,
	)
	if err != nil {
		return nil, err
	}
	t.Camp = &model.Camp{CampID: campID}
	t.Speaker = &s
	return &t, nil
}

func scanSpeaker(row pgx.Row) (*model.Speaker, error) {
	var s model.Speaker
	err := row.Scan(
		&s.SpeakerID, &s.FirstName, &s.LastName, &s.MiddleName, &s.Bio,
		&s.Company, &s.CompanyURL, &s.BlogURL, &s.Twitter, &s.GitHub,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ════════════════════════════════════════════════════════════════
// STAGING + COMMIT
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) Add(e model.Entity) error    { return r.changes.add(e) }
func (r *postgresRepository) Update(e model.Entity) error { return r.changes.update(e) }
func (r *postgresRepository) Delete(e model.Entity) error { return r.changes.delete(e) }

func (r *postgresRepository) SaveChanges(ctx context.Context) (bool, error) {
	if r.changes.empty() {
		return false, nil
	}

	ids := newIDAssignments()
	affected, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		var total int64
		for _, op := range r.changes.ops {
			n, err := applyOp(ctx, tx, op, ids)
			if err != nil {
				return 0, fmt.Errorf("%s %T: %w", op.kind, op.entity, err)
			}
			total += n
		}
		return total, nil
	})
	if err != nil {
		return false, model.NewPersistenceError("save changes", translatePgError(err))
	}

	ids.apply()
	r.changes.reset()
	return affected > 0, nil
}

func applyOp(ctx context.Context, tx pgx.Tx, op stagedOp, ids *idAssignments) (int64, error) {
	switch e := op.entity.(type) {
	case *model.Camp:
		switch op.kind {
		case opAdd:
			return insertCamp(ctx, tx, e, ids)
		case opUpdate:
			return updateCamp(ctx, tx, e)
		case opDelete:
			return execAffected(ctx, tx, `DELETE FROM camps WHERE camp_id = $1`, e.CampID)
		}
	case *model.Talk:
		switch op.kind {
		case opAdd:
			return insertTalk(ctx, tx, e, ids)
		case opUpdate:
			return updateTalk(ctx, tx, e, ids)
		case opDelete:
			return execAffected(ctx, tx, `DELETE FROM talks WHERE talk_id = $1`, e.TalkID)
		}
	case *model.Speaker:
		if op.kind == opAdd {
			return insertSpeaker(ctx, tx, e, ids)
		}
	}
	return 0, model.ErrUnsupportedEntity
}

func execAffected(ctx context.Context, tx pgx.Tx, query string, args ...any) (int64, error) {
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// nullableDate maps the zero time ("unscheduled") to NULL and anything else
// to its calendar date.
func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	d := model.DateOnly(t)
	return &d
}

func insertCamp(ctx context.Context, tx pgx.Tx, c *model.Camp, ids *idAssignments) (int64, error) {
	// Serialize check-then-insert per moniker; uq_camps_moniker is the backstop.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, c.Moniker); err != nil {
		return 0, err
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM camps WHERE moniker = $1)`, c.Moniker).Scan(&exists); err != nil {
		return 0, err
	}
	if exists {
		return 0, model.ErrDuplicateMoniker
	}

	query := `
		INSERT INTO camps (
			moniker, name, event_date, length,
			venue_name, address1, address2, address3,
			city_town, state_province, postal_code, country
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING camp_id`

	var id int
	err := tx.QueryRow(ctx, query,
		c.Moniker, c.Name, nullableDate(c.EventDate), c.Length,
		c.Location.VenueName, c.Location.Address1, c.Location.Address2, c.Location.Address3,
		c.Location.CityTown, c.Location.StateProvince, c.Location.PostalCode, c.Location.Country,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	ids.camps[c] = id
	return 1, nil
}

// updateCamp writes content fields only; the IS DISTINCT FROM guard makes
// an unchanged row report zero rows affected.
func updateCamp(ctx context.Context, tx pgx.Tx, c *model.Camp) (int64, error) {
	query := `
		UPDATE camps SET
			name = $2, event_date = $3, length = $4,
			venue_name = $5, address1 = $6, address2 = $7, address3 = $8,
			city_town = $9, state_province = $10, postal_code = $11, country = $12
		WHERE camp_id = $1
		  AND (name, event_date, length, venue_name, address1, address2, address3,
		       city_town, state_province, postal_code, country)
		      IS DISTINCT FROM
		      ($2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	return execAffected(ctx, tx, query,
		c.CampID, c.Name, nullableDate(c.EventDate), c.Length,
		c.Location.VenueName, c.Location.Address1, c.Location.Address2, c.Location.Address3,
		c.Location.CityTown, c.Location.StateProvince, c.Location.PostalCode, c.Location.Country,
	)
}

func insertTalk(ctx context.Context, tx pgx.Tx, t *model.Talk, ids *idAssignments) (int64, error) {
	campID := ids.campID(t.Camp)
	if campID == 0 {
		return 0, model.ErrCampNotFound
	}
	speakerID := ids.speakerID(t.Speaker)
	if speakerID == 0 {
		return 0, model.ErrSpeakerNotFound
	}

	query := `
		INSERT INTO talks (camp_id, speaker_id, title, abstract, level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING talk_id`

	var id int
	if err := tx.QueryRow(ctx, query, campID, speakerID, t.Title, t.Abstract, t.Level).Scan(&id); err != nil {
		return 0, err
	}
	ids.talks[t] = id
	return 1, nil
}

// updateTalk never writes camp_id.
func updateTalk(ctx context.Context, tx pgx.Tx, t *model.Talk, ids *idAssignments) (int64, error) {
	speakerID := ids.speakerID(t.Speaker)
	if speakerID == 0 {
		return 0, model.ErrSpeakerNotFound
	}

	query := `
		UPDATE talks SET
			speaker_id = $2, title = $3, abstract = $4, level = $5
		WHERE talk_id = $1
		  AND (speaker_id, title, abstract, level) IS DISTINCT FROM ($2, $3, $4, $5)`

	return execAffected(ctx, tx, query, t.TalkID, speakerID, t.Title, t.Abstract, t.Level)
}

func insertSpeaker(ctx context.Context, tx pgx.Tx, s *model.Speaker, ids *idAssignments) (int64, error) {
	query := `
		INSERT INTO speakers (
			first_name, last_name, middle_name, bio,
			company, company_url, blog_url, twitter, github
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING speaker_id`

	var id int
	err := tx.QueryRow(ctx, query,
		s.FirstName, s.LastName, s.MiddleName, s.Bio,
		s.Company, s.CompanyURL, s.BlogURL, s.Twitter, s.GitHub,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	ids.speakers[s] = id
	return 1, nil
}

// translatePgError maps constraint violations to domain sentinels while
// keeping the original error in the chain.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == "uq_camps_moniker" {
			return errors.Join(model.ErrDuplicateMoniker, err)
		}
	case pgForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "fk_talks_speaker":
			return errors.Join(model.ErrSpeakerNotFound, err)
		case "fk_talks_camp":
			return errors.Join(model.ErrCampNotFound, err)
		}
	}
	return err
}
