package mysql

const insertBusinessSQL = `
INSERT INTO businesses
  (owner_id, name, category, description, phone, website, address, city, country, lat, lon, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getBusinessSQL = `
SELECT
  id, owner_id, name, category, description, phone, website,
  address, city, country, lat, lon, status, rating_avg, rating_count, created_at
FROM businesses
WHERE id = ? AND status <> 'removed'
`

const updateBusinessSQL = `
UPDATE businesses SET
  name        = ?,
  category    = ?,
  description = ?,
  phone       = ?,
  website     = ?,
  address     = ?,
  city        = ?,
  country     = ?,
  lat         = ?,
  lon         = ?,
  updated_at  = CURRENT_TIMESTAMP
WHERE id = ?
`

// Published reviews only; removed/pending reviews never count toward stats.
// This mirrors the stored procedure the managed backend used to own.
const recalcStatsSQL = `
UPDATE businesses b SET
  b.rating_avg = COALESCE((
    SELECT ROUND(AVG(r.rating), 2) FROM reviews r
    WHERE r.business_id = b.id AND r.status = 'published'), 0),
  b.rating_count = (
    SELECT COUNT(*) FROM reviews r
    WHERE r.business_id = b.id AND r.status = 'published')
WHERE b.id = ?
`

const insertReviewSQL = `
INSERT INTO reviews
  (business_id, user_id, rating, title, ` + "`text`" + `, image_url, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

const listReviewsSQL = `
SELECT id, business_id, user_id, rating, title, ` + "`text`" + `, image_url, status, flag_count, created_at
FROM reviews
WHERE business_id = ? AND status = 'published'
ORDER BY created_at DESC, id DESC
LIMIT ?
`

const listFlaggedSQL = `
SELECT id, business_id, user_id, rating, title, ` + "`text`" + `, image_url, status, flag_count, created_at
FROM reviews
WHERE flag_count > 0 AND status <> 'removed'
ORDER BY flag_count DESC, created_at DESC
LIMIT ?
`

const insertFlagSQL = `
INSERT INTO review_flags (review_id, user_id, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE reason = VALUES(reason)
`

const insertClaimSQL = `
INSERT INTO claims
  (id, business_id, user_id, phone, email, status, otp_hash, otp_expires_at, otp_sent_at, otp_attempts)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getClaimSQL = `
SELECT id, business_id, user_id, phone, email, status,
       otp_hash, otp_expires_at, otp_sent_at, otp_attempts, created_at, updated_at
FROM claims
WHERE id = ?
`

const getOpenClaimSQL = `
SELECT id, business_id, user_id, phone, email, status,
       otp_hash, otp_expires_at, otp_sent_at, otp_attempts, created_at, updated_at
FROM claims
WHERE business_id = ? AND status IN ('pending', 'under_review')
ORDER BY created_at DESC
LIMIT 1
`

const updateClaimSQL = `
UPDATE claims SET
  status         = ?,
  otp_hash       = ?,
  otp_expires_at = ?,
  otp_sent_at    = ?,
  otp_attempts   = ?,
  updated_at     = CURRENT_TIMESTAMP
WHERE id = ?
`

// Idempotent: saving twice keeps the original created_at.
const saveItemSQL = `
INSERT INTO saved_items (user_id, business_id)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE business_id = saved_items.business_id
`

const listSavedSQL = `
SELECT b.id, b.owner_id, b.name, b.category, b.description, b.phone, b.website,
       b.address, b.city, b.country, b.lat, b.lon, b.status, b.rating_avg, b.rating_count, b.created_at
FROM saved_items s
JOIN businesses b ON b.id = s.business_id AND b.status <> 'removed'
WHERE s.user_id = ?
ORDER BY s.created_at DESC
LIMIT ?
`

const insertConversationSQL = `
INSERT INTO conversations (id, business_id, user_id, owner_id)
VALUES (?, ?, ?, ?)
`

const conversationColsSQL = `
SELECT id, business_id, user_id, owner_id, created_at, last_message_at
FROM conversations
`

const insertMessageSQL = `
INSERT INTO messages (id, conversation_id, sender_id, body)
VALUES (?, ?, ?, ?)
`

const touchConversationSQL = `
UPDATE conversations SET last_message_at = CURRENT_TIMESTAMP WHERE id = ?
`

const insertNotificationSQL = `
INSERT INTO notifications (user_id, kind, body, ref)
VALUES (?, ?, ?, ?)
`

const listNotificationsSQL = `
SELECT id, user_id, kind, body, ref, read_at, created_at
FROM notifications
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`
