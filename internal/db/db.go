package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"gardens/internal/models"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
	driver string
}

func Init(driver, dsn string) (*DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{DB: conn, driver: driver}

	if driver == "sqlite3" {
		if _, err := conn.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			return nil, err
		}
	}

	if err := db.createTables(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) createTables() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.driver == "postgres" {
		serial = "SERIAL PRIMARY KEY"
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id ` + serial + `,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS gardens (
			id ` + serial + `,
			name TEXT NOT NULL,
			author TEXT NOT NULL,
			author_id INTEGER NOT NULL,
			FOREIGN KEY (author_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id ` + serial + `,
			content TEXT NOT NULL,
			garden_id INTEGER NOT NULL,
			author_id INTEGER NOT NULL,
			FOREIGN KEY (garden_id) REFERENCES gardens(id) ON DELETE CASCADE,
			FOREIGN KEY (author_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS flowers (
			id ` + serial + `,
			color TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			garden_id INTEGER NOT NULL,
			FOREIGN KEY (garden_id) REFERENCES gardens(id) ON DELETE CASCADE
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}

	return nil
}

// rebind rewrites ? placeholders to the $n form lib/pq expects. Queries
// throughout this package are written in ? form.
func (db *DB) rebind(query string) string {
	if db.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// insert runs an INSERT and returns the generated id. lib/pq has no
// LastInsertId, so postgres goes through RETURNING.
func (db *DB) insert(query string, args ...interface{}) (int, error) {
	if db.driver == "postgres" {
		var id int
		err := db.QueryRow(db.rebind(query)+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	res, err := db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// USERS

func (db *DB) CreateUser(firstName, lastName, email, passwordHash string) (int, error) {
	return db.insert(
		"INSERT INTO users (first_name, last_name, email, password) VALUES (?, ?, ?, ?)",
		firstName, lastName, email, passwordHash)
}

// GetUserByEmail returns nil with no error when no user has the email.
func (db *DB) GetUserByEmail(email string) (*models.User, error) {
	row := db.QueryRow(db.rebind(
		"SELECT id, first_name, last_name, email, password FROM users WHERE email = ?"), email)
	return scanUser(row)
}

func (db *DB) GetUserByID(id int) (*models.User, error) {
	row := db.QueryRow(db.rebind(
		"SELECT id, first_name, last_name, email, password FROM users WHERE id = ?"), id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GARDENS

func (db *DB) CreateGarden(name, author string, authorID int) (int, error) {
	return db.insert(
		"INSERT INTO gardens (name, author, author_id) VALUES (?, ?, ?)",
		name, author, authorID)
}

func (db *DB) GetGardens() ([]models.Garden, error) {
	return db.queryGardens("SELECT id, name, author, author_id FROM gardens")
}

func (db *DB) GetUserGardens(authorID int) ([]models.Garden, error) {
	return db.queryGardens(
		"SELECT id, name, author, author_id FROM gardens WHERE author_id = ?", authorID)
}

func (db *DB) queryGardens(query string, args ...interface{}) ([]models.Garden, error) {
	rows, err := db.Query(db.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gardens := []models.Garden{}
	for rows.Next() {
		var g models.Garden
		if err := rows.Scan(&g.ID, &g.Name, &g.Author, &g.AuthorID); err != nil {
			return nil, err
		}
		gardens = append(gardens, g)
	}
	return gardens, rows.Err()
}

// GetGarden returns the bare garden row, nil when absent.
func (db *DB) GetGarden(id int) (*models.Garden, error) {
	row := db.QueryRow(db.rebind(
		"SELECT id, name, author, author_id FROM gardens WHERE id = ?"), id)
	g := &models.Garden{}
	err := row.Scan(&g.ID, &g.Name, &g.Author, &g.AuthorID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetGardenDetail returns the garden with its comments and flowers
// nested, nil when absent.
func (db *DB) GetGardenDetail(id int) (*models.GardenDetail, error) {
	garden, err := db.GetGarden(id)
	if err != nil || garden == nil {
		return nil, err
	}

	comments, err := db.GetComments(id)
	if err != nil {
		return nil, err
	}
	flowers, err := db.GetFlowers(id)
	if err != nil {
		return nil, err
	}

	return &models.GardenDetail{Garden: *garden, Comments: comments, Flowers: flowers}, nil
}

// UpdateGarden renames the garden only when authorID owns it; the
// ownership predicate is part of the statement so the write cannot
// cross an ownership change. Reports whether a row was updated.
func (db *DB) UpdateGarden(id int, name string, authorID int) (bool, error) {
	res, err := db.Exec(db.rebind(
		"UPDATE gardens SET name = ? WHERE id = ? AND author_id = ?"), name, id, authorID)
	return oneRowAffected(res, err)
}

// DeleteGarden removes the garden and, through the schema's cascade,
// its comments and flowers. Reports whether a row was deleted.
func (db *DB) DeleteGarden(id, authorID int) (bool, error) {
	res, err := db.Exec(db.rebind(
		"DELETE FROM gardens WHERE id = ? AND author_id = ?"), id, authorID)
	return oneRowAffected(res, err)
}

// COMMENTS

func (db *DB) CreateComment(gardenID int, content string, authorID int) (int, error) {
	return db.insert(
		"INSERT INTO comments (content, garden_id, author_id) VALUES (?, ?, ?)",
		content, gardenID, authorID)
}

// GetComments returns the comments of a garden with the author's first
// name joined in.
func (db *DB) GetComments(gardenID int) ([]models.Comment, error) {
	rows, err := db.Query(db.rebind(
		`SELECT c.id, c.content, u.first_name, c.author_id
		 FROM comments c INNER JOIN users u ON u.id = c.author_id
		 WHERE c.garden_id = ?`), gardenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.Author, &c.AuthorID); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (db *DB) GetComment(id int) (*models.Comment, error) {
	row := db.QueryRow(db.rebind(
		"SELECT id, content, garden_id, author_id FROM comments WHERE id = ?"), id)
	c := &models.Comment{}
	err := row.Scan(&c.ID, &c.Content, &c.GardenID, &c.AuthorID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (db *DB) UpdateComment(id int, content string, authorID int) (bool, error) {
	res, err := db.Exec(db.rebind(
		"UPDATE comments SET content = ? WHERE id = ? AND author_id = ?"), content, id, authorID)
	return oneRowAffected(res, err)
}

func (db *DB) DeleteComment(id, authorID int) (bool, error) {
	res, err := db.Exec(db.rebind(
		"DELETE FROM comments WHERE id = ? AND author_id = ?"), id, authorID)
	return oneRowAffected(res, err)
}

// FLOWERS

func (db *DB) CreateFlower(gardenID int, color string, x, y int) (int, error) {
	return db.insert(
		"INSERT INTO flowers (color, x, y, garden_id) VALUES (?, ?, ?, ?)",
		color, x, y, gardenID)
}

func (db *DB) GetFlowers(gardenID int) ([]models.Flower, error) {
	rows, err := db.Query(db.rebind(
		"SELECT id, color, x, y, garden_id FROM flowers WHERE garden_id = ?"), gardenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flowers := []models.Flower{}
	for rows.Next() {
		var f models.Flower
		if err := rows.Scan(&f.ID, &f.Color, &f.X, &f.Y, &f.GardenID); err != nil {
			return nil, err
		}
		flowers = append(flowers, f)
	}
	return flowers, rows.Err()
}

func (db *DB) GetFlower(id int) (*models.Flower, error) {
	row := db.QueryRow(db.rebind(
		"SELECT id, color, x, y, garden_id FROM flowers WHERE id = ?"), id)
	f := &models.Flower{}
	err := row.Scan(&f.ID, &f.Color, &f.X, &f.Y, &f.GardenID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFlower removes the flower only when ownerID owns its garden;
// flowers have no author of their own.
func (db *DB) DeleteFlower(id, ownerID int) (bool, error) {
	res, err := db.Exec(db.rebind(
		`DELETE FROM flowers WHERE id = ?
		 AND garden_id IN (SELECT id FROM gardens WHERE author_id = ?)`), id, ownerID)
	return oneRowAffected(res, err)
}

func oneRowAffected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
