package main

import (
	"context"
	"log"
	"time"

	"gator-find/simulator"
)

func main() {
	config := simulator.SimConfig{
		NumUsers:       10,
		PostsPerUser:   4,
		CommentRate:    0.5,
		ReportRate:     0.2,
		BookmarkRate:   0.2,
		SimulationTime: 5 * time.Minute,
		EngineURL:      "http://localhost:8080",
	}

	sim := simulator.NewSimulator(config)
	ctx, cancel := context.WithTimeout(context.Background(), config.SimulationTime)
	defer cancel()

	log.Printf("Starting simulation with configuration:")
	log.Printf("- Engine URL: %s", config.EngineURL)
	log.Printf("- Number of users: %d", config.NumUsers)
	log.Printf("- Posts per user: %d", config.PostsPerUser)
	log.Printf("- Simulation time: %v", config.SimulationTime)
	log.Printf("- Comment rate: %.2f", config.CommentRate)
	log.Printf("- Report rate: %.2f", config.ReportRate)
	log.Printf("- Bookmark rate: %.2f", config.BookmarkRate)

	if err := sim.Run(ctx); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	metrics := sim.GetMetrics()
	log.Printf("\nSimulation completed. Final metrics:")
	log.Printf("- Total users: %d", metrics.TotalUsers)
	log.Printf("- Total posts: %d", metrics.TotalPosts)
	log.Printf("- Total comments: %d", metrics.TotalComments)
	log.Printf("- Total reports: %d", metrics.TotalReports)
	log.Printf("- Average latency: %v", metrics.AverageLatency)
	log.Printf("- Requests/sec: %.2f", metrics.RequestsPerSecond)
	log.Printf("- Error count: %d", metrics.ErrorCount)
}
