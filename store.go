package cleanblog

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when no post has the requested id.
	ErrNotFound = errors.New("post not found")
	// ErrDuplicateTitle is returned when a write would give two posts the same title.
	ErrDuplicateTitle = errors.New("a post with this title already exists")
)

// Store wraps a SQLite database and provides CRUD operations for blog posts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the posts table.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while a write commits; the busy timeout makes
	// concurrent writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AUTOINCREMENT keeps ids of deleted posts from being handed out again.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title VARCHAR(250) NOT NULL UNIQUE,
    subtitle VARCHAR(250) NOT NULL,
    date VARCHAR(250) NOT NULL,
    body TEXT NOT NULL,
    author VARCHAR(250) NOT NULL,
    img_url VARCHAR(250) NOT NULL
);
`)
	return err
}

const postColumns = `id, title, subtitle, date, body, author, img_url`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (BlogPost, error) {
	var p BlogPost
	if err := r.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.Author, &p.ImgURL); err != nil {
		return BlogPost{}, err
	}
	p.Link = PostPath(p.ID)
	return p, nil
}

// ListPosts returns every post in insertion order.
func (s *Store) ListPosts() ([]BlogPost, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single post by id, or ErrNotFound.
func (s *Store) GetPost(id int64) (BlogPost, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return BlogPost{}, ErrNotFound
	}
	return p, err
}

// CreatePost inserts a new post stamped with date and returns it with its
// assigned id. A title already in use yields ErrDuplicateTitle.
func (s *Store) CreatePost(f PostFields, date string) (BlogPost, error) {
	res, err := s.db.Exec(`INSERT INTO posts (title, subtitle, date, body, author, img_url) VALUES (?, ?, ?, ?, ?, ?)`,
		f.Title, f.Subtitle, date, f.Body, f.Author, f.ImgURL)
	if err != nil {
		return BlogPost{}, translateWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return BlogPost{}, err
	}
	return BlogPost{
		ID:       id,
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Date:     date,
		Body:     f.Body,
		Author:   f.Author,
		ImgURL:   f.ImgURL,
		Link:     PostPath(id),
	}, nil
}

// UpdatePost overwrites every editable field of post id. The id and the
// creation date are left as they are. Concurrent updates race; the last
// commit wins.
func (s *Store) UpdatePost(id int64, f PostFields) error {
	res, err := s.db.Exec(`UPDATE posts SET title = ?, subtitle = ?, body = ?, author = ?, img_url = ? WHERE id = ?`,
		f.Title, f.Subtitle, f.Body, f.Author, f.ImgURL, id)
	if err != nil {
		return translateWriteErr(err)
	}
	return requireAffected(res)
}

// DeletePost permanently removes post id, or returns ErrNotFound.
func (s *Store) DeletePost(id int64) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func translateWriteErr(err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed: posts.title") {
		return ErrDuplicateTitle
	}
	return err
}

// ParsePostID parses a path id. Only positive integers are valid post ids.
func ParsePostID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNotFound
	}
	return id, nil
}
