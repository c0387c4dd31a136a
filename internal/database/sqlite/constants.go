package sqlite

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

var pragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA synchronous=NORMAL;",
	"PRAGMA busy_timeout=5000;",
	"PRAGMA temp_store=MEMORY;",
}

const (
	sqlGetBlob    = `SELECT value FROM kv_blobs WHERE key = ?`
	sqlSetBlob    = `INSERT INTO kv_blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	sqlDeleteBlob = `DELETE FROM kv_blobs WHERE key = ?`

	sqlIncrCounter   = `INSERT INTO kv_counters (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = kv_counters.value + excluded.value RETURNING value`
	sqlGetCounter    = `SELECT value FROM kv_counters WHERE key = ?`
	sqlDeleteCounter = `DELETE FROM kv_counters WHERE key = ?`

	sqlZAdd      = `INSERT INTO kv_zsets (key, member, score) VALUES (?, ?, ?) ON CONFLICT (key, member) DO UPDATE SET score = excluded.score`
	sqlZRem      = `DELETE FROM kv_zsets WHERE key = ? AND member = ?`
	sqlZCard     = `SELECT COUNT(*) FROM kv_zsets WHERE key = ?`
	sqlZRangeAsc = `SELECT member, score FROM kv_zsets WHERE key = ? ORDER BY score ASC, member ASC LIMIT ? OFFSET ?`
	sqlZRangeDsc = `SELECT member, score FROM kv_zsets WHERE key = ? ORDER BY score DESC, member DESC LIMIT ? OFFSET ?`
	sqlZRank     = `SELECT (SELECT COUNT(*) FROM kv_zsets o WHERE o.key = z.key AND (o.score < z.score OR (o.score = z.score AND o.member < z.member))) FROM kv_zsets z WHERE z.key = ? AND z.member = ?`
	sqlZRemRange = `DELETE FROM kv_zsets WHERE key = ?1 AND member IN (SELECT member FROM kv_zsets WHERE key = ?1 ORDER BY score ASC, member ASC LIMIT ?2 OFFSET ?3)`
	sqlZDelete   = `DELETE FROM kv_zsets WHERE key = ?`

	sqlHGet    = `SELECT value FROM kv_hashes WHERE key = ? AND field = ?`
	sqlHSet    = `INSERT INTO kv_hashes (key, field, value) VALUES (?, ?, ?) ON CONFLICT (key, field) DO UPDATE SET value = excluded.value`
	sqlHSetNX  = `INSERT INTO kv_hashes (key, field, value) VALUES (?, ?, ?) ON CONFLICT (key, field) DO NOTHING`
	sqlHGetAll = `SELECT field, value FROM kv_hashes WHERE key = ?`
	sqlHLen    = `SELECT COUNT(*) FROM kv_hashes WHERE key = ?`
	sqlHDelete = `DELETE FROM kv_hashes WHERE key = ?`
)

// Error Messages
const (
	ErrMsgEmptyPath           = "sqlite path is empty"
	ErrMsgCreateDirFailed     = "failed to create database directory: %w"
	ErrMsgOpenFailed          = "failed to open sqlite database: %w"
	ErrMsgPragmaFailed        = "failed to apply %q: %w"
	ErrMsgMigrationsSubFailed = "failed to open embedded migrations: %w"
	ErrMsgQueryFailed         = "sqlite %s %q: %w"
	ErrMsgBeginTxFailed       = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed      = "failed to commit transaction: %w"
)

// Operation names used in ErrMsgQueryFailed
const (
	opGet        = "get"
	opSet        = "set"
	opDelete     = "delete"
	opIncr       = "incrby"
	opGetCounter = "getcounter"
	opZAdd       = "zadd"
	opZRem       = "zrem"
	opZRange     = "zrange"
	opZCard      = "zcard"
	opZRank      = "zrank"
	opZRemRange  = "zremrangebyrank"
	opHGet       = "hget"
	opHSet       = "hset"
	opHGetAll    = "hgetall"
	opHLen       = "hlen"
)
