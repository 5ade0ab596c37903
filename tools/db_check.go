package tools

import (
	"fmt"
	"io"
	"time"

	"github.com/latoulicious/adventour/pkg/database/migration"
	"gorm.io/gorm"
)

// DBcheck verifies connectivity, schema and transaction support on db and
// reports each step to out. It returns the first fatal problem found.
func DBcheck(db *gorm.DB, out io.Writer) error {
	dialect := db.Dialector.Name()
	fmt.Fprintf(out, "=== %s Database Connectivity Check ===\n", dialect)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database connection: %w", err)
	}

	// Test database ping
	fmt.Fprintf(out, "🏓 Testing database ping...\n")
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	fmt.Fprintln(out, "✅ Database ping successful")

	// Check database version
	fmt.Fprintf(out, "🔍 Checking %s version...\n", dialect)
	var version string
	if err := db.Raw(versionQuery(dialect)).Scan(&version).Error; err != nil {
		return fmt.Errorf("failed to get database version: %w", err)
	}
	fmt.Fprintf(out, "✅ %s version: %s\n", dialect, version)

	// Check connection pool stats
	fmt.Fprintf(out, "📊 Checking connection pool stats...\n")
	stats := sqlDB.Stats()
	fmt.Fprintf(out, "   - Open connections: %d\n", stats.OpenConnections)
	fmt.Fprintf(out, "   - In use: %d\n", stats.InUse)
	fmt.Fprintf(out, "   - Idle: %d\n", stats.Idle)

	fmt.Fprintf(out, "🗃️  Checking existing tables...\n")
	missing, err := MissingTables(db)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		fmt.Fprintf(out, "   ⚠️  Missing tables (will be created during migration): %v\n", missing)
	} else {
		fmt.Fprintln(out, "   ✅ All expected tables exist")
	}

	fmt.Fprintf(out, "🔄 Testing transaction capability...\n")
	if err := testTransactionCapability(db); err != nil {
		return fmt.Errorf("transaction test failed: %w", err)
	}
	fmt.Fprintln(out, "✅ Transaction capability verified")

	// Performance test - simple query timing
	start := time.Now()
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return fmt.Errorf("performance test failed: %w", err)
	}
	duration := time.Since(start)
	fmt.Fprintf(out, "✅ Simple query completed in %v\n", duration)
	if duration > 5*time.Second {
		fmt.Fprintln(out, "⚠️  Query took longer than 5 seconds - check network latency")
	}

	fmt.Fprintln(out, "\n=== Database Connectivity Check Complete ===")
	return nil
}

// MissingTables lists the schema tables not yet present in db
func MissingTables(db *gorm.DB) ([]string, error) {
	migrator := db.Migrator()
	var missing []string
	for _, model := range migration.Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		if !migrator.HasTable(stmt.Table) {
			missing = append(missing, stmt.Table)
		}
	}
	return missing, nil
}

func versionQuery(dialect string) string {
	if dialect == "sqlite" {
		return "SELECT sqlite_version()"
	}
	return "SELECT version()"
}

// testTransactionCapability writes to a temporary table inside a
// transaction and rolls it back
func testTransactionCapability(db *gorm.DB) error {
	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if err := tx.Exec("CREATE TEMPORARY TABLE test_transaction (id INTEGER PRIMARY KEY, test_data TEXT)").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create temporary table: %w", err)
	}

	if err := tx.Exec("INSERT INTO test_transaction (id, test_data) VALUES (1, 'test')").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert test data: %w", err)
	}

	var count int64
	if err := tx.Raw("SELECT COUNT(*) FROM test_transaction").Scan(&count).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to count test data: %w", err)
	}
	if count != 1 {
		tx.Rollback()
		return fmt.Errorf("unexpected count in transaction: expected 1, got %d", count)
	}

	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
