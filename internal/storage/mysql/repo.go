package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/stupnd/trippy-sub001/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// sb builds parameterized SELECTs; MySQL uses '?' placeholders.
var sb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// ---- write paths ----

func (r *Repo) CreateTrip(ctx context.Context, t domain.TripFacts) error {
	_, err := r.db.ExecContext(ctx, insertTripSQL,
		t.ID, t.City, t.Country, t.StartDate, t.EndDate, t.Travelers, t.Currency)
	return err
}

func (r *Repo) AddMember(ctx context.Context, tripID, memberID string) error {
	_, err := r.db.ExecContext(ctx, insertMemberSQL, tripID, memberID)
	return err
}

func (r *Repo) UpsertPreference(ctx context.Context, p domain.MemberPreference) error {
	interests, _ := json.Marshal(p.Interests)
	_, err := r.db.ExecContext(ctx, upsertPreferenceSQL,
		p.TripID,
		p.MemberID,
		valStr(p.Origin),
		valF64(p.NightlyBudgetMin),
		valF64(p.NightlyBudgetMax),
		valStr(p.LodgingType),
		string(interests),
		p.FlightFlexibility,
		p.BudgetSensitivity,
	)
	return err
}

// SaveSelection replaces the selection row and its full vote set in one
// transaction; the approval map is the source of truth.
func (r *Repo) SaveSelection(ctx context.Context, s domain.Selection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	optJSON, _ := json.Marshal(s.Option)
	if _, err := tx.ExecContext(ctx, upsertSelectionSQL, s.ID, s.TripID, string(s.Category), string(optJSON)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, deleteVotesSQL, s.ID); err != nil {
		return err
	}
	if len(s.Approvals) > 0 {
		values := make([]string, 0, len(s.Approvals))
		args := make([]any, 0, len(s.Approvals)*4)
		for member, v := range s.Approvals {
			values = append(values, "(?,?,?,?)")
			args = append(args, s.ID, member, v.Approved, valStr(v.Reason))
		}
		if _, err := tx.ExecContext(ctx, insertVotesPrefix+strings.Join(values, ","), args...); err != nil {
			return fmt.Errorf("insert votes for %s: %w", s.ID, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) UpsertActivity(ctx context.Context, a domain.Activity) error {
	_, err := r.db.ExecContext(ctx, upsertActivitySQL, a.ID, a.TripID, a.Name, a.Selected)
	return err
}

func (r *Repo) UpsertActivityRating(ctx context.Context, tripID, activityID, memberID string, rating int) error {
	// Guard against cross-trip activity ids.
	var owner string
	err := sb.Select("trip_id").From("activities").Where(sq.Eq{"id": activityID}).
		RunWith(r.db).QueryRowContext(ctx).Scan(&owner)
	if err == sql.ErrNoRows || (err == nil && owner != tripID) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertActivityRatingSQL, activityID, memberID, rating)
	return err
}

func (r *Repo) SaveBudgetEstimate(ctx context.Context, e domain.BudgetEstimate) error {
	_, err := r.db.ExecContext(ctx, upsertBudgetSQL,
		e.TripID, e.Min, e.Max, e.BaselineMin, e.BaselineMax, e.UpdatedAt)
	return err
}

// ---- read paths ----

func (r *Repo) GetTrip(ctx context.Context, id string) (domain.TripFacts, error) {
	var t domain.TripFacts
	err := sb.Select("id", "city", "country", "start_date", "end_date", "travelers", "currency").
		From("trips").Where(sq.Eq{"id": id}).
		RunWith(r.db).QueryRowContext(ctx).
		Scan(&t.ID, &t.City, &t.Country, &t.StartDate, &t.EndDate, &t.Travelers, &t.Currency)
	if err == sql.ErrNoRows {
		return domain.TripFacts{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.TripFacts{}, err
	}
	return t, nil
}

func (r *Repo) ListMembers(ctx context.Context, tripID string) ([]string, error) {
	rows, err := sb.Select("member_id").From("trip_members").
		Where(sq.Eq{"trip_id": tripID}).OrderBy("joined_at", "member_id").
		RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) ListPreferences(ctx context.Context, tripID string) ([]domain.MemberPreference, error) {
	rows, err := sb.Select("trip_id", "member_id", "origin", "nightly_min", "nightly_max",
		"lodging_type", "interests", "flight_flexibility", "budget_sensitivity").
		From("member_preferences").Where(sq.Eq{"trip_id": tripID}).OrderBy("member_id").
		RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MemberPreference
	for rows.Next() {
		var (
			p                      domain.MemberPreference
			origin, lodgingType    sql.NullString
			nightlyMin, nightlyMax sql.NullFloat64
			interestsJSON          []byte
		)
		if err := rows.Scan(&p.TripID, &p.MemberID, &origin, &nightlyMin, &nightlyMax,
			&lodgingType, &interestsJSON, &p.FlightFlexibility, &p.BudgetSensitivity); err != nil {
			return nil, err
		}
		if origin.Valid {
			s := origin.String
			p.Origin = &s
		}
		if lodgingType.Valid {
			s := lodgingType.String
			p.LodgingType = &s
		}
		if nightlyMin.Valid {
			f := nightlyMin.Float64
			p.NightlyBudgetMin = &f
		}
		if nightlyMax.Valid {
			f := nightlyMax.Float64
			p.NightlyBudgetMax = &f
		}
		_ = json.Unmarshal(interestsJSON, &p.Interests)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetSelection(ctx context.Context, tripID, selectionID string) (domain.Selection, error) {
	var (
		s        domain.Selection
		category string
		optJSON  []byte
	)
	err := sb.Select("id", "trip_id", "category", "option_json").
		From("selections").Where(sq.Eq{"id": selectionID, "trip_id": tripID}).
		RunWith(r.db).QueryRowContext(ctx).
		Scan(&s.ID, &s.TripID, &category, &optJSON)
	if err == sql.ErrNoRows {
		return domain.Selection{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Selection{}, err
	}
	s.Category = domain.OptionCategory(category)
	if err := json.Unmarshal(optJSON, &s.Option); err != nil {
		return domain.Selection{}, fmt.Errorf("decode option for %s: %w", selectionID, err)
	}

	rows, err := sb.Select("member_id", "approved", "reason").
		From("selection_votes").Where(sq.Eq{"selection_id": selectionID}).
		RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return domain.Selection{}, err
	}
	defer rows.Close()

	s.Approvals = domain.ApprovalState{}
	for rows.Next() {
		var (
			member   string
			approved bool
			reason   sql.NullString
		)
		if err := rows.Scan(&member, &approved, &reason); err != nil {
			return domain.Selection{}, err
		}
		v := domain.Vote{Approved: approved}
		if reason.Valid {
			rs := reason.String
			v.Reason = &rs
		}
		s.Approvals[member] = v
	}
	return s, rows.Err()
}

func (r *Repo) ListActivities(ctx context.Context, tripID string, selectedOnly bool) ([]domain.Activity, error) {
	q := sb.Select("id", "trip_id", "name", "selected").
		From("activities").Where(sq.Eq{"trip_id": tripID}).OrderBy("name", "id")
	if selectedOnly {
		q = q.Where(sq.Eq{"selected": true})
	}
	rows, err := q.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Activity
	index := map[string]int{}
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.TripID, &a.Name, &a.Selected); err != nil {
			return nil, err
		}
		a.Ratings = map[string]int{}
		index[a.ID] = len(out)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	rrows, err := sb.Select("ar.activity_id", "ar.member_id", "ar.rating").
		From("activity_ratings ar").
		Join("activities a ON a.id = ar.activity_id").
		Where(sq.Eq{"a.trip_id": tripID}).
		RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()

	for rrows.Next() {
		var (
			actID, member string
			rating        int
		)
		if err := rrows.Scan(&actID, &member, &rating); err != nil {
			return nil, err
		}
		if i, ok := index[actID]; ok {
			out[i].Ratings[member] = rating
		}
	}
	return out, rrows.Err()
}

func (r *Repo) GetBudgetEstimate(ctx context.Context, tripID string) (domain.BudgetEstimate, error) {
	var e domain.BudgetEstimate
	err := sb.Select("trip_id", "min_usd", "max_usd", "baseline_min_usd", "baseline_max_usd", "updated_at").
		From("budget_estimates").Where(sq.Eq{"trip_id": tripID}).
		RunWith(r.db).QueryRowContext(ctx).
		Scan(&e.TripID, &e.Min, &e.Max, &e.BaselineMin, &e.BaselineMax, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.BudgetEstimate{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.BudgetEstimate{}, err
	}
	return e, nil
}

var _ domain.TripRepository = (*Repo)(nil)
