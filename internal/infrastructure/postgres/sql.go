package postgres

const insertEventSQL = `
INSERT INTO events (
  id, organizer_id, name, description, category, type, status, eligibility,
  registration_deadline, start_time, end_time, reg_limit, fee,
  custom_form, merchandise, published_at, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
`

const eventColumns = `
id, organizer_id, name, description, category, type, status, eligibility,
registration_deadline, start_time, end_time, reg_limit, fee,
custom_form, merchandise, published_at, created_at, updated_at
`

const getEventSQL = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

const updateEventSQL = `
UPDATE events SET
  name=$2, description=$3, category=$4, type=$5, status=$6, eligibility=$7,
  registration_deadline=$8, start_time=$9, end_time=$10, reg_limit=$11, fee=$12,
  custom_form=$13, merchandise=$14, published_at=$15, updated_at=$16
WHERE id=$1
`

const insertRegistrationSQL = `
INSERT INTO registrations (
  id, event_id, participant_id, ticket_id, type, status,
  form_data, order_lines, attended, team_complete, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
`

const registrationColumns = `
id, event_id, participant_id, ticket_id, type, status,
form_data, order_lines, attended, team_complete, created_at, updated_at
`

const insertTicketSQL = `
INSERT INTO tickets (
  id, event_id, participant_id, code, qr_payload, status, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7)
`

const insertMessageSQL = `
INSERT INTO forum_messages (
  id, event_id, author_id, author_role, author_name, parent_id, content,
  is_pinned, is_announcement, is_deleted, reactions, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`

const messageColumns = `
id, event_id, author_id, author_role, author_name, parent_id, content,
is_pinned, is_announcement, is_deleted, reactions, created_at, updated_at
`

const updateMessageSQL = `
UPDATE forum_messages SET
  content=$2, is_pinned=$3, is_announcement=$4, is_deleted=$5, reactions=$6, updated_at=$7
WHERE id=$1
`
