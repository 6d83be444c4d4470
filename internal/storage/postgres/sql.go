package postgres

const createHotelSQL = `
INSERT INTO hotels
  (name, city, country, website,
   google_url, tripadvisor_url, booking_url, agoda_url,
   brand_voice, key_selling_points, default_language, sign_off_name,
   google_review_url, direct_booking_url, reply_to_email, whatsapp_number, phone_number)
VALUES
  ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING id
`

const hotelColumns = `
  id, name, city, country, website,
  google_url, tripadvisor_url, booking_url, agoda_url,
  brand_voice, key_selling_points, default_language, sign_off_name,
  google_review_url, direct_booking_url, reply_to_email, whatsapp_number, phone_number`

const getHotelSQL = `SELECT` + hotelColumns + `
FROM hotels
WHERE id = $1
`

const updateHotelSQL = `
UPDATE hotels SET
  name               = $2,
  city               = $3,
  country            = $4,
  website            = $5,
  google_url         = $6,
  tripadvisor_url    = $7,
  booking_url        = $8,
  agoda_url          = $9,
  brand_voice        = $10,
  key_selling_points = $11,
  default_language   = $12,
  sign_off_name      = $13,
  google_review_url  = $14,
  direct_booking_url = $15,
  reply_to_email     = $16,
  whatsapp_number    = $17,
  phone_number       = $18,
  updated_at         = now()
WHERE id = $1
`

const deleteHotelSQL = `DELETE FROM hotels WHERE id = $1`

// review_date falls back to now() so callers may omit "unknown" dates.
const insertReviewSQL = `
INSERT INTO reviews
  (hotel_id, platform, reviewer_name, rating, review_text, review_date,
   language, translated_text, sentiment, topics, status, flagged)
VALUES
  ($1, $2, $3, $4, $5, COALESCE($6, now()), $7, $8, $9, $10, $11, $12)
RETURNING id
`

const reviewColumns = `
  id, hotel_id, platform, reviewer_name, rating, review_text, review_date,
  language, translated_text, sentiment, topics, response_text, response_date,
  status, flagged`

const setReviewResponseSQL = `
UPDATE reviews SET
  response_text = $2,
  response_date = now(),
  status        = 'responded'
WHERE id = $1
RETURNING hotel_id
`

// COALESCE keeps previously stored language/translation when the enrichment
// pass has nothing new.
const setReviewEnrichmentSQL = `
UPDATE reviews SET
  sentiment       = $2,
  topics          = $3,
  language        = COALESCE($4, language),
  translated_text = COALESCE($5, translated_text)
WHERE id = $1
`

const listUnenrichedSQL = `SELECT` + reviewColumns + `
FROM reviews
WHERE sentiment IS NULL
ORDER BY created_at
LIMIT $1
`

const insertGuestEmailSQL = `
INSERT INTO guest_emails
  (hotel_id, guest_name, guest_email, template_type, subject, status, provider_id, sent_at)
VALUES
  ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`

const updateGuestEmailStatusSQL = `UPDATE guest_emails SET status = $2 WHERE id = $1`

const listGuestEmailsSQL = `
SELECT id, hotel_id, guest_name, guest_email, template_type, subject, status, provider_id, sent_at
FROM guest_emails
WHERE hotel_id = $1
ORDER BY created_at DESC
LIMIT $2
`

const insertRatingSnapshotSQL = `
INSERT INTO rating_snapshots (hotel_id, platform, rating, review_count, recorded_at)
VALUES ($1, $2, $3, $4, COALESCE($5, now()))
`

// DISTINCT ON keeps the newest row per platform.
const latestRatingSnapshotsSQL = `
SELECT DISTINCT ON (platform) hotel_id, platform, rating, review_count, recorded_at
FROM rating_snapshots
WHERE hotel_id = $1
ORDER BY platform, recorded_at DESC
`
