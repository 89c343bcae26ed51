package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/localnerve/notary-records/internal/config"
	"github.com/localnerve/notary-records/internal/database"
	"github.com/localnerve/notary-records/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Prints the schema GORM migrates for the records models. By default an
// in-memory SQLite database is used; -env reads the configured database.
func main() {
	useEnv := flag.Bool("env", false, "inspect the database named by the environment")
	migrate := flag.Bool("migrate", true, "run AutoMigrate before inspecting")
	flag.Parse()

	cfg := &config.Config{DBType: "sqlite", DBDatabase: ":memory:"}
	if *useEnv {
		loaded, err := config.Load()
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	db, err := database.Connect(cfg, zap.NewNop())
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	if *migrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatal(err)
		}
	}

	for _, model := range []any{
		&models.User{},
		&models.Customer{},
		&models.Contact{},
		&models.Address{},
		&models.Commission{},
		&models.Assignment{},
	} {
		if err := printTable(db, model); err != nil {
			log.Fatal(err)
		}
	}
}

func printTable(db *gorm.DB, model any) error {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return err
	}
	table := stmt.Schema.Table

	fmt.Printf("\n=== Table: %s ===\n", table)
	if !db.Migrator().HasTable(table) {
		fmt.Println("(missing)")
		return nil
	}

	columns, err := db.Migrator().ColumnTypes(table)
	if err != nil {
		return err
	}
	for _, col := range columns {
		nullable, _ := col.Nullable()
		unique, _ := col.Unique()
		fmt.Printf("  %-24s %-16s nullable=%-5t unique=%t\n", col.Name(), col.DatabaseTypeName(), nullable, unique)
	}

	indexes, err := db.Migrator().GetIndexes(table)
	if err != nil {
		return err
	}
	for _, idx := range indexes {
		fmt.Printf("  index %s %v\n", idx.Name(), idx.Columns())
	}
	return nil
}
