// cmd/campusctl/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/learnfield/campus/internal/export"
	"github.com/learnfield/campus/internal/query"
	"github.com/learnfield/campus/internal/store"
	memorystore "github.com/learnfield/campus/internal/store/memory"
	postgresstore "github.com/learnfield/campus/internal/store/postgres"
)

var (
	driver       string
	dbConnString string
	snapshotPath string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "memory", "Entity store driver (memory or postgres)")
	rootCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Postgres connection string (postgres driver)")
	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "s", "campus.snapshot.json", "Snapshot file (memory driver)")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv or xlsx)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (defaults to <entity>.<format>)")
}

var rootCmd = &cobra.Command{
	Use:   "campusctl",
	Short: "campusctl manages a campus admin datastore",
	Long:  `campusctl seeds, inspects, and exports the organizations, users, courses, and enrollments behind the campus admin API.`,
}

func openStore() (store.Store, error) {
	switch driver {
	case "memory":
		return memorystore.Open(snapshotPath)
	case "postgres":
		if dbConnString == "" {
			return nil, fmt.Errorf("--db is required with the postgres driver")
		}
		db, err := gorm.Open(postgres.Open(dbConnString), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		st := postgresstore.New(db)
		if err := st.Migrate(); err != nil {
			return nil, fmt.Errorf("migrating schema: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard aggregates",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore()
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}

		snap, err := st.Snapshot(context.Background())
		if err != nil {
			log.Fatalf("Failed to read snapshot: %v", err)
		}

		stats := query.Dashboard(snap)
		fmt.Printf("Organizations: %d\n", stats.Organizations)
		fmt.Printf("Users:         %d\n", stats.Users)
		fmt.Printf("Courses:       %d\n", stats.Courses)
		fmt.Printf("Enrollments:   %d (%d active)\n", stats.Enrollments, stats.ActiveEnrollments)

		fmt.Println("\nMost enrolled courses:")
		for _, top := range query.TopCourses(snap, 5) {
			fmt.Printf("  %-40s %d\n", top.Course.Title, top.Enrollments)
		}
	},
}

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export [organizations|users|courses|enrollments]",
	Short: "Export one entity collection to CSV or XLSX",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore()
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}

		snap, err := st.Snapshot(context.Background())
		if err != nil {
			log.Fatalf("Failed to read snapshot: %v", err)
		}

		entity := args[0]
		var table export.Table
		switch entity {
		case "organizations":
			table = export.Organizations(snap, snap.Organizations)
		case "users":
			table = export.Users(snap, snap.Users)
		case "courses":
			table = export.Courses(snap, snap.Courses)
		case "enrollments":
			table = export.Enrollments(snap, snap.Enrollments)
		default:
			log.Fatalf("Unknown entity %q", entity)
		}

		encoder := export.EncoderFor(exportFormat)
		if encoder == nil {
			log.Fatalf("Unsupported format %q", exportFormat)
		}

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("%s.%s", entity, encoder.Extension())
		}
		f, err := os.Create(out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", out, err)
		}
		defer f.Close()

		if err := encoder.Encode(f, table); err != nil {
			log.Fatalf("Failed to export: %v", err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(table.Rows), out)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
