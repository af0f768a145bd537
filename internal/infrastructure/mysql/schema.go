package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS auctions (
        id              CHAR(36)      NOT NULL PRIMARY KEY,
        catalogue_id    VARCHAR(64)   NOT NULL,
        start_time      DATETIME(6)   NOT NULL,
        end_time        DATETIME(6)   NOT NULL,
        starting_amount DECIMAL(18,2) NOT NULL,
        highest_bid_id  CHAR(36)      NULL,
        status          VARCHAR(16)   NOT NULL,
        closed_at       DATETIME(6)   NULL,
        created_at      DATETIME(6)   NOT NULL,
        INDEX idx_auctions_status_end (status, end_time),
        INDEX idx_auctions_catalogue (catalogue_id, created_at)
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS bids (
        id           CHAR(36)      NOT NULL PRIMARY KEY,
        auction_id   CHAR(36)      NOT NULL,
        user_id      VARCHAR(64)   NOT NULL,
        username     VARCHAR(128)  NOT NULL,
        first_name   VARCHAR(128)  NOT NULL DEFAULT '',
        last_name    VARCHAR(128)  NOT NULL DEFAULT '',
        amount       DECIMAL(18,2) NOT NULL,
        created_at   DATETIME(6)   NOT NULL,
        INDEX idx_bids_auction_created (auction_id, created_at, id),
        CONSTRAINT fk_bids_auction FOREIGN KEY (auction_id) REFERENCES auctions (id)
    ) ENGINE=InnoDB`,
}

// Migrate creates the auction tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
