package load

// Statement identifies one parameterized statement template.
type Statement int

const (
	SongInsert Statement = iota
	ArtistInsert
	TimeInsert
	UserUpsert
	SongSelect
	SongplayInsert
)

func (s Statement) String() string {
	switch s {
	case SongInsert:
		return "song_insert"
	case ArtistInsert:
		return "artist_insert"
	case TimeInsert:
		return "time_insert"
	case UserUpsert:
		return "user_upsert"
	case SongSelect:
		return "song_select"
	case SongplayInsert:
		return "songplay_insert"
	default:
		return "unknown"
	}
}

// Instruction is one statement execution with its positional parameters.
type Instruction struct {
	Stmt Statement
	Args []any
}

// Templates use ? placeholders and are rebound to the driver's bind style.
// Songs, artists and time rows are insert-or-ignore on their key, users are
// insert-or-update on user_id keeping the latest level, and songplays carry
// no natural key.
var ansiStatements = map[Statement]string{
	SongInsert: `INSERT INTO songs (song_id, title, artist_id, year, duration)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (song_id) DO NOTHING`,

	ArtistInsert: `INSERT INTO artists (artist_id, name, location, latitude, longitude)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (artist_id) DO NOTHING`,

	TimeInsert: `INSERT INTO time (start_time, hour, day, week, month, year, weekday)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (start_time) DO NOTHING`,

	UserUpsert: `INSERT INTO users (user_id, first_name, last_name, gender, level)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET level = EXCLUDED.level`,

	SongSelect: `SELECT s.song_id, a.artist_id
		FROM songs s
		JOIN artists a ON s.artist_id = a.artist_id
		WHERE s.title = ? AND a.name = ? AND s.duration = ?`,

	SongplayInsert: `INSERT INTO songplays (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
}

var tsqlStatements = map[Statement]string{
	SongInsert: `MERGE INTO songs WITH (HOLDLOCK) AS t
		USING (SELECT ? AS song_id, ? AS title, ? AS artist_id, ? AS year, ? AS duration) AS s
		ON t.song_id = s.song_id
		WHEN NOT MATCHED THEN
			INSERT (song_id, title, artist_id, year, duration)
			VALUES (s.song_id, s.title, s.artist_id, s.year, s.duration);`,

	ArtistInsert: `MERGE INTO artists WITH (HOLDLOCK) AS t
		USING (SELECT ? AS artist_id, ? AS name, ? AS location, ? AS latitude, ? AS longitude) AS s
		ON t.artist_id = s.artist_id
		WHEN NOT MATCHED THEN
			INSERT (artist_id, name, location, latitude, longitude)
			VALUES (s.artist_id, s.name, s.location, s.latitude, s.longitude);`,

	TimeInsert: `MERGE INTO [time] WITH (HOLDLOCK) AS t
		USING (SELECT ? AS start_time, ? AS hour, ? AS day, ? AS week, ? AS month, ? AS year, ? AS weekday) AS s
		ON t.start_time = s.start_time
		WHEN NOT MATCHED THEN
			INSERT (start_time, hour, day, week, month, year, weekday)
			VALUES (s.start_time, s.hour, s.day, s.week, s.month, s.year, s.weekday);`,

	UserUpsert: `MERGE INTO users WITH (HOLDLOCK) AS t
		USING (SELECT ? AS user_id, ? AS first_name, ? AS last_name, ? AS gender, ? AS level) AS s
		ON t.user_id = s.user_id
		WHEN MATCHED THEN
			UPDATE SET t.level = s.level
		WHEN NOT MATCHED THEN
			INSERT (user_id, first_name, last_name, gender, level)
			VALUES (s.user_id, s.first_name, s.last_name, s.gender, s.level);`,

	SongSelect: `SELECT s.song_id, a.artist_id
		FROM songs s
		JOIN artists a ON s.artist_id = a.artist_id
		WHERE s.title = ? AND a.name = ? AND s.duration = ?`,

	SongplayInsert: `INSERT INTO songplays (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
}
