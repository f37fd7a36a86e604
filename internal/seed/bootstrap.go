package seed

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"fruitshop/m/domain"
	"fruitshop/m/internal/ids"
)

// EnsureBossAccount creates a default boss account when the person
// table is empty, so a fresh installation can log in.
func EnsureBossAccount(db *sqlx.DB, email, password string) {
	if email == "" || password == "" {
		return
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM person`); err != nil {
		log.Fatalf("seed: count persons: %v", err)
	}
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: hash password: %v", err)
	}

	_, err = db.Exec(
		`INSERT INTO person (id, nick_name, name, level, email, password) VALUES ($1, $2, $3, $4, $5, $6)`,
		ids.New(), "boss", "boss", domain.LevelBoss, email, hashed,
	)
	if err != nil {
		log.Fatalf("seed: create boss account: %v", err)
	}
	log.Printf("seeded boss account %s", email)
}
