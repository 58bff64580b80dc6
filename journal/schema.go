// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	direction TEXT NOT NULL,
	amount REAL NOT NULL,
	start_date TEXT NOT NULL,
	completion_date TEXT NOT NULL,
	current_rate REAL NOT NULL,
	days INTEGER NOT NULL,
	bucket TEXT NOT NULL,
	dominant TEXT NOT NULL,
	dominant_rate REAL NOT NULL,
	probability REAL NOT NULL,
	strategy TEXT NOT NULL,
	expected_pl REAL NOT NULL,
	worst_pl REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS scenarios (
	analysis_id TEXT NOT NULL REFERENCES analyses(id),
	rank INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	probability REAL NOT NULL,
	predicted_rate REAL NOT NULL,
	predicted_value REAL NOT NULL,
	delta REAL NOT NULL,
	PRIMARY KEY (analysis_id, rank)
);

CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`
