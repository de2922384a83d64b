// Command loadtest drives the summary endpoint with concurrent users and
// reports latency and error statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// LoadTestConfig holds configuration for load testing
type LoadTestConfig struct {
	URL             string
	ConcurrentUsers int
	RequestsPerUser int
	Timeout         time.Duration
	ThinkTime       time.Duration
}

// RequestResult holds the result of a single request
type RequestResult struct {
	StatusCode int
	Duration   time.Duration
	Success    bool
	MeanRate   float64
}

func main() {
	var cfg LoadTestConfig

	flag.StringVar(&cfg.URL, "url", "http://localhost:8081/api/v1/summary?start_date=2025-01-02&end_date=2025-01-10", "Target URL to test")
	flag.IntVar(&cfg.ConcurrentUsers, "users", 10, "Number of concurrent users")
	flag.IntVar(&cfg.RequestsPerUser, "requests", 100, "Number of requests per user")
	flag.DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "Request timeout")
	flag.DurationVar(&cfg.ThinkTime, "think", 100*time.Millisecond, "Think time between requests")
	flag.Parse()

	fmt.Printf("Starting load test...\n")
	fmt.Printf("URL: %s\n", cfg.URL)
	fmt.Printf("Concurrent Users: %d\n", cfg.ConcurrentUsers)
	fmt.Printf("Requests per User: %d\n", cfg.RequestsPerUser)
	fmt.Println()

	results, err := runLoadTest(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load test failed: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

func runLoadTest(cfg LoadTestConfig) ([]RequestResult, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	var mu sync.Mutex
	results := make([]RequestResult, 0, cfg.ConcurrentUsers*cfg.RequestsPerUser)

	var group errgroup.Group
	for user := 0; user < cfg.ConcurrentUsers; user++ {
		group.Go(func() error {
			for request := 0; request < cfg.RequestsPerUser; request++ {
				result := makeRequest(client, cfg.URL)
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
				time.Sleep(cfg.ThinkTime)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func makeRequest(client *http.Client, url string) RequestResult {
	start := time.Now()
	response, err := client.Get(url)
	duration := time.Since(start)

	if err != nil {
		return RequestResult{Duration: duration}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil || response.StatusCode != http.StatusOK {
		return RequestResult{StatusCode: response.StatusCode, Duration: duration}
	}

	return RequestResult{
		StatusCode: response.StatusCode,
		Duration:   duration,
		Success:    true,
		MeanRate:   gjson.GetBytes(body, "totals.mean_rate").Float(),
	}
}

func printSummary(results []RequestResult) {
	if len(results) == 0 {
		fmt.Println("No requests completed")
		return
	}

	durations := make([]time.Duration, 0, len(results))
	var successes int
	var total time.Duration
	for _, result := range results {
		durations = append(durations, result.Duration)
		total += result.Duration
		if result.Success {
			successes++
		}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	fmt.Printf("Total Requests: %d\n", len(results))
	fmt.Printf("Successful: %d\n", successes)
	fmt.Printf("Failed: %d\n", len(results)-successes)
	fmt.Printf("Error Rate: %.2f%%\n", float64(len(results)-successes)/float64(len(results))*100)
	fmt.Printf("Average Response Time: %v\n", total/time.Duration(len(results)))
	fmt.Printf("Min Response Time: %v\n", durations[0])
	fmt.Printf("Max Response Time: %v\n", durations[len(durations)-1])
	fmt.Printf("95th Percentile: %v\n", durations[len(durations)*95/100])
	fmt.Printf("99th Percentile: %v\n", durations[len(durations)*99/100])

	if successes > 0 {
		fmt.Printf("Sample mean_rate: %.6f\n", firstMeanRate(results))
	}
}

func firstMeanRate(results []RequestResult) float64 {
	for _, result := range results {
		if result.Success {
			return result.MeanRate
		}
	}
	return 0
}
