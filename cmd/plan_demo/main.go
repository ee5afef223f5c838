package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tripcraft/internal/ai"
	"tripcraft/internal/config"
	"tripcraft/internal/modules/planning"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	provider, closeProvider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer closeProvider()

	req := planning.TripRequest{
		Location:        "Kyoto",
		Date:            time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		TripType:        planning.StringList{planning.TripTypeCulinary, planning.TripTypeNatureRetreat},
		Duration:        planning.DaysOf(3),
		Budget:          "Moderate",
		TravelCompanion: "Couple",
		Interests:       planning.StringList{"temples", "tea"},
	}
	fmt.Printf("Planning %d days in %s (%s)\n", 3, req.Location, cfg.AI.Provider)

	svc := planning.NewService(provider, nil)
	result, err := svc.GeneratePlan(ctx, req)
	if err != nil {
		log.Fatalf("Error generating plan: %v", err)
	}

	fmt.Printf("Outcome: %s\n", result.Outcome)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Plan); err != nil {
		log.Fatal(err)
	}
}
