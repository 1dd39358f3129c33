package database

import (
	"fmt"

	"github.com/yukikurage/life-record-api/internal/logging"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by list and history queries.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns []string
	}{
		{"note", "idx_note_user_update", []string{"user_id", "is_delete", "update_time"}},
		{"recipe", "idx_recipe_user_starred", []string{"user_id", "is_delete", "is_starred"}},
		{"todo", "idx_todo_user_status", []string{"user_id", "status", "priority"}},
		{"checkin_record", "idx_checkin_record_user_date", []string{"user_id", "check_date"}},
		{"weight_record", "idx_weight_record_user_week", []string{"user_id", "week_num"}},
		{"weight_target", "idx_weight_target_user_active", []string{"user_id", "is_active"}},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			logging.Debug().Str("index", idx.name).Msg("Index already exists, skipping")
			continue
		}

		stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
			quote(db, idx.name), quote(db, idx.table), quoteColumns(db, idx.columns))
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logging.Info().Str("index", idx.name).Str("table", idx.table).Msg("Created index")
	}

	return nil
}

func quote(db *gorm.DB, name string) string {
	stmt := &gorm.Statement{DB: db}
	return stmt.Quote(name)
}

func quoteColumns(db *gorm.DB, columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += quote(db, c)
	}
	return out
}
