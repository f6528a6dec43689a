package mysql

const insertTripSQL = `
INSERT INTO trips
  (id, city, country, start_date, end_date, travelers, currency)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  city       = VALUES(city),
  country    = VALUES(country),
  start_date = VALUES(start_date),
  end_date   = VALUES(end_date),
  travelers  = VALUES(travelers),
  currency   = VALUES(currency),
  updated_at = CURRENT_TIMESTAMP
`

const insertMemberSQL = `
INSERT INTO trip_members (trip_id, member_id)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE joined_at = joined_at
`

const upsertPreferenceSQL = `
INSERT INTO member_preferences
  (trip_id, member_id, origin, nightly_min, nightly_max, lodging_type, interests, flight_flexibility, budget_sensitivity)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  origin             = VALUES(origin),
  nightly_min        = VALUES(nightly_min),
  nightly_max        = VALUES(nightly_max),
  lodging_type       = VALUES(lodging_type),
  interests          = VALUES(interests),
  flight_flexibility = VALUES(flight_flexibility),
  budget_sensitivity = VALUES(budget_sensitivity),
  updated_at         = CURRENT_TIMESTAMP
`

const upsertSelectionSQL = `
INSERT INTO selections (id, trip_id, category, option_json)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  category    = VALUES(category),
  option_json = VALUES(option_json),
  updated_at  = CURRENT_TIMESTAMP
`

const deleteVotesSQL = `DELETE FROM selection_votes WHERE selection_id = ?`

// Multi-row insert; rows appended per vote.
const insertVotesPrefix = "INSERT INTO selection_votes\n  (selection_id, member_id, approved, reason)\nVALUES "

const upsertActivitySQL = `
INSERT INTO activities (id, trip_id, name, selected)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name     = VALUES(name),
  selected = VALUES(selected)
`

const upsertActivityRatingSQL = `
INSERT INTO activity_ratings (activity_id, member_id, rating)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  rating     = VALUES(rating),
  updated_at = CURRENT_TIMESTAMP
`

const upsertBudgetSQL = `
INSERT INTO budget_estimates
  (trip_id, min_usd, max_usd, baseline_min_usd, baseline_max_usd, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  min_usd          = VALUES(min_usd),
  max_usd          = VALUES(max_usd),
  baseline_min_usd = VALUES(baseline_min_usd),
  baseline_max_usd = VALUES(baseline_max_usd),
  updated_at       = VALUES(updated_at)
`
