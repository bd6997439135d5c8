package db

import "database/sql"

func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			cpf TEXT UNIQUE NOT NULL,
			phone TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			referred_by TEXT,
			referral_code TEXT UNIQUE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS admin_users (
			id SERIAL PRIMARY KEY,
			login TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS child_accounts (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			label TEXT NOT NULL,
			house_name TEXT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS pix_transactions (
			id SERIAL PRIMARY KEY,
			public_id UUID UNIQUE NOT NULL,
			user_id INTEGER NOT NULL REFERENCES users(id),
			child_account_id INTEGER REFERENCES child_accounts(id),
			type TEXT NOT NULL, -- 'deposit' | 'withdrawal'
			amount NUMERIC(14,2) NOT NULL,
			fee NUMERIC(14,2) NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			counterparty TEXT,
			pix_code TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS qrcode_requests (
			id SERIAL PRIMARY KEY,
			public_id UUID UNIQUE NOT NULL,
			user_id INTEGER NOT NULL REFERENCES users(id),
			house_name TEXT NOT NULL,
			betting_house BOOLEAN NOT NULL DEFAULT FALSE,
			chinese_house BOOLEAN NOT NULL DEFAULT FALSE,
			payload TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			admin_notes TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS affiliate_requests (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			motivation TEXT NOT NULL,
			experience TEXT NOT NULL,
			expected_volume TEXT NOT NULL,
			contact_phone TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'submitted',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS affiliate_commissions (
			id SERIAL PRIMARY KEY,
			affiliate_user_id INTEGER NOT NULL REFERENCES users(id),
			child_account_id INTEGER NOT NULL REFERENCES child_accounts(id),
			amount NUMERIC(14,2) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
