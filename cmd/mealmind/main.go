package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"mealmind/internal/database"
	"mealmind/internal/ics"
	"mealmind/internal/notify"
	"mealmind/internal/plan"
	"mealmind/internal/shopping"
	"mealmind/internal/week"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	dbPath := os.Getenv("MEALMIND_DB_PATH")
	if dbPath == "" {
		dbPath = "data/mealmind.db"
	}

	db, err := database.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	planRepo := plan.NewRepository(db.SQL)
	listRepo := shopping.NewRepository(db.SQL)
	ctx := context.Background()

	switch os.Args[1] {
	case "export":
		exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
		familyID := exportCmd.String("family", "", "Family id")
		weekStart := exportCmd.String("week", "", "Week date (any day; defaults to this week)")
		out := exportCmd.String("out", "", "Output file (defaults to mealmind-week-<date>.ics)")
		exportCmd.Parse(os.Args[2:])

		p := mustLoadPlan(ctx, planRepo, *familyID, *weekStart)
		body := ics.Export(p)
		path := *out
		if path == "" {
			path = ics.Filename(p.WeekStartDate)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("Exported %s\n", path)

	case "shopping":
		shoppingCmd := flag.NewFlagSet("shopping", flag.ExitOnError)
		familyID := shoppingCmd.String("family", "", "Family id")
		weekStart := shoppingCmd.String("week", "", "Week date (any day; defaults to this week)")
		refresh := shoppingCmd.Bool("refresh", false, "Regenerate the list from the current plan")
		shoppingCmd.Parse(os.Args[2:])

		p := mustLoadPlan(ctx, planRepo, *familyID, *weekStart)
		list, err := listRepo.GetByMealPlanID(ctx, p.ID)
		if err != nil {
			log.Fatalf("Failed to load shopping list: %v", err)
		}
		if list == nil || *refresh {
			list = shopping.Generate(p, list)
			if err := listRepo.Save(ctx, list); err != nil {
				log.Fatalf("Failed to save shopping list: %v", err)
			}
		}
		fmt.Println(notify.FormatListMarkdown(list))

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func mustLoadPlan(ctx context.Context, repo *plan.Repository, familyID, weekDate string) *plan.MealPlan {
	if familyID == "" {
		log.Fatal("-family is required")
	}
	var weekStart string
	if weekDate == "" {
		weekStart = week.Start(time.Now()).Format(week.DateLayout)
	} else {
		aligned, err := week.StartISO(weekDate)
		if err != nil {
			log.Fatalf("Invalid week date: %v", err)
		}
		weekStart = aligned
	}
	p, err := repo.Get(ctx, familyID, weekStart)
	if err != nil {
		log.Fatalf("Failed to load meal plan: %v", err)
	}
	if p == nil {
		log.Fatalf("No meal plan for family %s, week of %s", familyID, weekStart)
	}
	return p
}

func printUsage() {
	fmt.Println("Usage: mealmind <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  export     Write a week's meal plan as an iCalendar file")
	fmt.Println("  shopping   Print (or -refresh) the week's shopping list")
}
