package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS activities (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	author      TEXT NOT NULL,
	date        TEXT NOT NULL,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	start_time  TEXT NOT NULL DEFAULT '',
	end_time    TEXT NOT NULL DEFAULT '',
	duration    INTEGER,
	goal_kind   TEXT NOT NULL,
	goal_custom TEXT NOT NULL DEFAULT '',
	recurring   INTEGER NOT NULL DEFAULT 0,
	cover_image TEXT NOT NULL DEFAULT '',
	color_hex   TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_author_date ON activities(author, date);

CREATE TABLE IF NOT EXISTS finances (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	author       TEXT NOT NULL,
	date         TEXT NOT NULL,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	purpose      TEXT NOT NULL DEFAULT '',
	amount       INTEGER NOT NULL,
	finance_type TEXT NOT NULL,
	recurring    INTEGER NOT NULL DEFAULT 0,
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_finances_author_date ON finances(author, date);

CREATE TABLE IF NOT EXISTS habits (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	author       TEXT NOT NULL,
	date         TEXT NOT NULL,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	is_completed INTEGER NOT NULL DEFAULT 0,
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_habits_author_date ON habits(author, date);

CREATE TABLE IF NOT EXISTS journals (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	author          TEXT NOT NULL,
	date            TEXT NOT NULL,
	title           TEXT NOT NULL DEFAULT '',
	content         TEXT NOT NULL DEFAULT '',
	locked          INTEGER NOT NULL DEFAULT 0,
	access_type     TEXT NOT NULL,
	shared_with     TEXT NOT NULL DEFAULT '[]',
	cover_image     TEXT NOT NULL DEFAULT '',
	color_hex       TEXT NOT NULL DEFAULT '',
	has_attachments INTEGER NOT NULL DEFAULT 0,
	entropy         INTEGER NOT NULL DEFAULT 0,
	source_path     TEXT NOT NULL DEFAULT '',
	source_checksum TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL,
	UNIQUE(author, date)
);

CREATE TABLE IF NOT EXISTS reminders (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	author        TEXT NOT NULL,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	repeat_schema TEXT NOT NULL DEFAULT '',
	color_hex     TEXT NOT NULL DEFAULT '',
	target_date   TEXT NOT NULL,
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reminders_author_target ON reminders(author, target_date);

CREATE TABLE IF NOT EXISTS profiles (
	principal       TEXT PRIMARY KEY,
	username        TEXT NOT NULL,
	email           TEXT NOT NULL DEFAULT '',
	theme_kind      TEXT NOT NULL,
	theme_custom    TEXT NOT NULL DEFAULT '',
	language_kind   TEXT NOT NULL,
	language_custom TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL
);
`
