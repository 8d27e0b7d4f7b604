package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/domain/monitoring"
	"github.com/nimbusgrid/platform-go/pkg/client"
)

// The agent reports synthetic utilization for every running job it can see.
// It stands in for the per-node telemetry daemon in development setups.
func main() {
	apiURL := getEnv("API_URL", "http://localhost:8080")
	token := os.Getenv("AGENT_TOKEN")
	if token == "" {
		log.Fatal("AGENT_TOKEN is required")
	}
	interval, err := time.ParseDuration(getEnv("REPORT_INTERVAL", "15s"))
	if err != nil {
		log.Fatalf("bad REPORT_INTERVAL: %v", err)
	}

	c := client.New(apiURL, token)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("agent reporting to %s every %s", apiURL, interval)

	walk := map[uint]*metrics{}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		reportOnce(ctx, c, walk)
		select {
		case <-ctx.Done():
			log.Println("agent shutting down")
			return
		case <-ticker.C:
		}
	}
}

// metrics is the agent's per-job random walk state.
type metrics struct {
	cpu, mem, gpu, disk float64
}

func reportOnce(ctx context.Context, c *client.Client, walk map[uint]*metrics) {
	jobs, err := c.ListJobs(ctx)
	if err != nil {
		log.Printf("list jobs: %v", err)
		return
	}

	seen := map[uint]bool{}
	for _, j := range jobs {
		if j.Status != job.StatusRunning {
			continue
		}
		seen[j.ID] = true

		m, ok := walk[j.ID]
		if !ok {
			m = &metrics{
				cpu:  30 + rand.Float64()*40,
				mem:  20 + rand.Float64()*50,
				gpu:  40 + rand.Float64()*50,
				disk: 10 + rand.Float64()*30,
			}
			walk[j.ID] = m
		}
		m.step()

		netIn := rand.Float64() * 500
		netOut := rand.Float64() * 200
		input := monitoring.InsertSampleInput{
			JobID:       j.ID,
			CPUUsage:    &m.cpu,
			MemoryUsage: &m.mem,
			GPUUsage:    &m.gpu,
			NetworkIn:   &netIn,
			NetworkOut:  &netOut,
			DiskUsage:   &m.disk,
		}
		if err := c.InsertMonitoring(ctx, input); err != nil {
			log.Printf("report job %d: %v", j.ID, err)
		}
	}

	for id := range walk {
		if !seen[id] {
			delete(walk, id)
		}
	}
}

func (m *metrics) step() {
	m.cpu = clamp(m.cpu + (rand.Float64()-0.5)*10)
	m.mem = clamp(m.mem + (rand.Float64()-0.5)*6)
	m.gpu = clamp(m.gpu + (rand.Float64()-0.5)*12)
	m.disk = clamp(m.disk + rand.Float64()*0.5)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
