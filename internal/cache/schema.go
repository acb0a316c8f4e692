package cache

// Schema contains the SQL schema for the summary store.
const Schema = `
CREATE TABLE IF NOT EXISTS summaries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    message_id TEXT NOT NULL UNIQUE,
    uid INTEGER NOT NULL,
    sender TEXT,
    subject TEXT,
    date TEXT,
    summary TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at);
`
