package fingertec

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/atlashr/atlas/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DBAdapter reads punches from the intermediary database the device vendor
// replicates into. The @since bound is always passed as a bind parameter,
// never interpolated, for both operator-supplied and synthesized queries.
type DBAdapter struct {
	cfg  *Config
	dirs DirectionMap
	db   *gorm.DB
}

func NewDBAdapter(cfg *Config) *DBAdapter {
	return &DBAdapter{cfg: cfg, dirs: cfg.Directions()}
}

func (a *DBAdapter) Connect() error {
	if a.cfg.DBURL == "" {
		return fmt.Errorf("%w: device db url not configured", ErrConnection)
	}

	db, err := gorm.Open(mysql.Open(a.cfg.DBURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("%w: probe query failed: %v", ErrConnection, err)
	}

	a.db = db
	return nil
}

// Close tears down the pool opened by Connect. Without it every sync run
// would strand idle connections against the device database.
func (a *DBAdapter) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	a.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (a *DBAdapter) FetchSince(since time.Time) ([]RawEvent, error) {
	if a.db == nil {
		return nil, fmt.Errorf("%w: db adapter not connected", ErrConnection)
	}

	query := a.cfg.Query
	if query == "" {
		query = a.buildQuery()
	}
	if query == "" {
		// neither an operator query nor table/column names configured
		return nil, nil
	}

	rows, err := a.db.Raw(query, sql.Named("since", since.UTC())).Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: device query failed: %v", ErrConnection, err)
	}
	defer rows.Close()

	var events []RawEvent
	for rows.Next() {
		var employeeID, checkTime, direction any
		if err := rows.Scan(&employeeID, &checkTime, &direction); err != nil {
			return nil, err
		}

		ts, ok := coerceTime(checkTime)
		if !ok {
			// rows with unreadable timestamps are skipped, not errors
			continue
		}

		events = append(events, RawEvent{
			EmployeeID: coerceString(employeeID),
			Timestamp:  ts,
			Direction:  a.dirs.Resolve(coerceString(direction)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (a *DBAdapter) buildQuery() string {
	if a.cfg.Table == "" || a.cfg.EmployeeColumn == "" || a.cfg.TimeColumn == "" {
		return ""
	}
	direction := "''"
	if a.cfg.DirectionColumn != "" {
		direction = quoteIdent(a.cfg.DirectionColumn)
	}
	timeCol := quoteIdent(a.cfg.TimeColumn)
	return fmt.Sprintf(
		"SELECT %s, %s, %s FROM %s WHERE %s > @since ORDER BY %s ASC",
		quoteIdent(a.cfg.EmployeeColumn), timeCol, direction,
		quoteIdent(a.cfg.Table), timeCol, timeCol,
	)
}

func quoteIdent(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "") + "`"
}

func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// coerceTime handles the driver returning either native time values
// (parseTime=true) or raw datetime strings.
func coerceTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case []byte:
		if parsed, err := utils.ParseISOTime(string(t)); err == nil {
			return *parsed, true
		}
	case string:
		if parsed, err := utils.ParseISOTime(t); err == nil {
			return *parsed, true
		}
	}
	return time.Time{}, false
}
