package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS issued_ids (
    id          TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS messages (
    id           TEXT PRIMARY KEY,
    position     INTEGER NOT NULL,
    sender       TEXT NOT NULL DEFAULT '',
    subject      TEXT NOT NULL DEFAULT '',
    preview      TEXT NOT NULL DEFAULT '',
    content      TEXT NOT NULL DEFAULT '',
    timestamp    TEXT NOT NULL DEFAULT '',
    is_read      BOOLEAN NOT NULL DEFAULT FALSE,
    is_starred   BOOLEAN NOT NULL DEFAULT FALSE,
    folder       TEXT NOT NULL,
    origin       TEXT NOT NULL DEFAULT '',
    sender_email TEXT NOT NULL DEFAULT '',
    to_addrs     TEXT NOT NULL DEFAULT '',
    cc_addrs     TEXT NOT NULL DEFAULT '',
    bcc_addrs    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS message_labels (
    message_id  TEXT NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
    position    INTEGER NOT NULL,
    label       TEXT NOT NULL,
    PRIMARY KEY (message_id, position)
);

CREATE TABLE IF NOT EXISTS labels (
    id          TEXT PRIMARY KEY,
    position    INTEGER NOT NULL,
    name        TEXT NOT NULL,
    color       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS replies (
    id          TEXT PRIMARY KEY,
    message_id  TEXT NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
    position    INTEGER NOT NULL,
    sender      TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL DEFAULT '',
    timestamp   TEXT NOT NULL DEFAULT '',
    is_starred  BOOLEAN NOT NULL DEFAULT FALSE,
    in_reply_to TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_messages_folder ON messages(folder, position);
CREATE INDEX IF NOT EXISTS idx_replies_message ON replies(message_id, position);
`
