package db

import (
	"fmt"

	"gorm.io/gorm"
)

// MovesChannel is the NOTIFY channel fired after any write to the moves table.
const MovesChannel = "moves_changed"

var moveNotifyStatements = []string{
	`CREATE OR REPLACE FUNCTION notify_moves_changed() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('` + MovesChannel + `', TG_OP);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS moves_changed_notify ON moves`,
	`CREATE TRIGGER moves_changed_notify
	AFTER INSERT OR UPDATE OR DELETE ON moves
	FOR EACH STATEMENT EXECUTE FUNCTION notify_moves_changed()`,
}

// Migrate creates or updates every table and installs the moves change trigger.
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	for _, stmt := range moveNotifyStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("install moves trigger: %w", err)
		}
	}
	return nil
}
