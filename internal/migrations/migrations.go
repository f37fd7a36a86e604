package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the fruit-shop backend.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS person (
            id TEXT PRIMARY KEY,
            nick_name TEXT NOT NULL DEFAULT '',
            name TEXT NOT NULL,
            level TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            phone_number TEXT NOT NULL DEFAULT '',
            company TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS consignor (
            id TEXT PRIMARY KEY,
            nick_name TEXT NOT NULL DEFAULT '',
            name TEXT NOT NULL,
            phone_number TEXT NOT NULL DEFAULT '',
            company TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS product (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            unit_price TEXT NOT NULL DEFAULT '0',
            type TEXT NOT NULL,
            unit_type TEXT NOT NULL,
            person_id TEXT NOT NULL,
            inventory REAL NOT NULL DEFAULT 0,
            UNIQUE(name, unit_price),
            FOREIGN KEY(person_id) REFERENCES person(id)
        );`,
		`CREATE TABLE IF NOT EXISTS purchase (
            id TEXT PRIMARY KEY,
            product_id TEXT NOT NULL,
            quantity REAL NOT NULL,
            order_date TEXT NOT NULL,
            receiving_date TEXT NOT NULL,
            FOREIGN KEY(product_id) REFERENCES product(id)
        );`,
		`CREATE TABLE IF NOT EXISTS wastage (
            id TEXT PRIMARY KEY,
            product_id TEXT NOT NULL,
            quantity REAL NOT NULL DEFAULT 0,
            date TEXT NOT NULL,
            FOREIGN KEY(product_id) REFERENCES product(id)
        );`,
		`CREATE TABLE IF NOT EXISTS revenue (
            id TEXT PRIMARY KEY,
            record_date TEXT NOT NULL,
            gross_income TEXT NOT NULL DEFAULT '0',
            net_income TEXT NOT NULL DEFAULT '0',
            purchases_expense TEXT NOT NULL DEFAULT '0',
            personnel_expenses TEXT NOT NULL DEFAULT '0',
            miscellaneous_expense TEXT NOT NULL DEFAULT '0',
            wastage TEXT NOT NULL DEFAULT '0'
        );`,
		`CREATE TABLE IF NOT EXISTS miscellaneous (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            amount TEXT NOT NULL,
            record_date TEXT NOT NULL
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
