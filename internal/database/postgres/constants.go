package postgres

// Advisory locking
const (
	// HashMaskPositiveInt64 keeps advisory lock keys inside the positive int64 range
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF

	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"
)

// Blob queries
const (
	sqlGetBlob    = `SELECT value FROM kv_blobs WHERE key = $1`
	sqlSetBlob    = `INSERT INTO kv_blobs (key, value, updated_at) VALUES ($1, $2, NOW()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	sqlDeleteBlob = `DELETE FROM kv_blobs WHERE key = $1`
)

// Counter queries
const (
	sqlIncrCounter   = `INSERT INTO kv_counters (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = kv_counters.value + EXCLUDED.value RETURNING value`
	sqlGetCounter    = `SELECT value FROM kv_counters WHERE key = $1`
	sqlDeleteCounter = `DELETE FROM kv_counters WHERE key = $1`
)

// Sorted set queries
const (
	sqlZAdd      = `INSERT INTO kv_zsets (key, member, score) VALUES ($1, $2, $3) ON CONFLICT (key, member) DO UPDATE SET score = EXCLUDED.score`
	sqlZRem      = `DELETE FROM kv_zsets WHERE key = $1 AND member = $2`
	sqlZCard     = `SELECT COUNT(*) FROM kv_zsets WHERE key = $1`
	sqlZRangeAsc = `SELECT member, score FROM kv_zsets WHERE key = $1 ORDER BY score ASC, member ASC LIMIT $2 OFFSET $3`
	sqlZRangeDsc = `SELECT member, score FROM kv_zsets WHERE key = $1 ORDER BY score DESC, member DESC LIMIT $2 OFFSET $3`
	sqlZRank     = `SELECT (SELECT COUNT(*) FROM kv_zsets o WHERE o.key = z.key AND (o.score < z.score OR (o.score = z.score AND o.member < z.member))) FROM kv_zsets z WHERE z.key = $1 AND z.member = $2`
	sqlZRemRange = `DELETE FROM kv_zsets WHERE key = $1 AND member IN (SELECT member FROM kv_zsets WHERE key = $1 ORDER BY score ASC, member ASC LIMIT $2 OFFSET $3)`
	sqlZDelete   = `DELETE FROM kv_zsets WHERE key = $1`
)

// Hash queries
const (
	sqlHGet    = `SELECT value FROM kv_hashes WHERE key = $1 AND field = $2`
	sqlHSet    = `INSERT INTO kv_hashes (key, field, value) VALUES ($1, $2, $3) ON CONFLICT (key, field) DO UPDATE SET value = EXCLUDED.value`
	sqlHSetNX  = `INSERT INTO kv_hashes (key, field, value) VALUES ($1, $2, $3) ON CONFLICT (key, field) DO NOTHING`
	sqlHGetAll = `SELECT field, value FROM kv_hashes WHERE key = $1`
	sqlHLen    = `SELECT COUNT(*) FROM kv_hashes WHERE key = $1`
	sqlHDelete = `DELETE FROM kv_hashes WHERE key = $1`
)

// Error Messages
const (
	ErrMsgGetBlobFailed       = "failed to get blob %q: %w"
	ErrMsgSetBlobFailed       = "failed to set blob %q: %w"
	ErrMsgDeleteKeyFailed     = "failed to delete key %q: %w"
	ErrMsgIncrCounterFailed   = "failed to increment counter %q: %w"
	ErrMsgGetCounterFailed    = "failed to get counter %q: %w"
	ErrMsgZAddFailed          = "failed to add to sorted set %q: %w"
	ErrMsgZRemFailed          = "failed to remove from sorted set %q: %w"
	ErrMsgZRangeFailed        = "failed to range sorted set %q: %w"
	ErrMsgZCardFailed         = "failed to count sorted set %q: %w"
	ErrMsgZRankFailed         = "failed to rank member of %q: %w"
	ErrMsgZRemRangeFailed     = "failed to trim sorted set %q: %w"
	ErrMsgHGetFailed          = "failed to get hash field %q: %w"
	ErrMsgHSetFailed          = "failed to set hash field %q: %w"
	ErrMsgHGetAllFailed       = "failed to read hash %q: %w"
	ErrMsgHLenFailed          = "failed to count hash %q: %w"
	ErrMsgBeginTxFailed       = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed      = "failed to commit transaction: %w"
	ErrMsgAcquireLockFailed   = "failed to acquire advisory lock %q: %w"
	ErrMsgMigrationsSubFailed = "failed to open embedded migrations: %w"
)

// Log Messages
const (
	LogMsgRollbackFailed = "Failed to rollback transaction"
)
