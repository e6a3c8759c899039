package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/dto"
)

// TestResult contains metrics for a single request
type TestResult struct {
	Scenario     string
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	ResponseTimes      []time.Duration
	TotalResponseTime  time.Duration
	ErrorCounts        map[string]int
	UserStats          map[string]int
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

// Scenario builds one ledger write
type Scenario struct {
	Name         string
	Type         string
	Amount       string
	Category     string
	Installments int
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	usersStr := flag.String("u", "user-1,user-2,user-3", "Comma-separated list of user IDs to distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	var users []string
	for _, u := range strings.Split(*usersStr, ",") {
		if u = strings.TrimSpace(u); u != "" {
			users = append(users, u)
		}
	}
	if len(users) == 0 {
		users = []string{"user-1"}
	}

	scenarios := []Scenario{
		{"Salary", "income", "5000.00", "Salário", 1},
		{"Groceries", "expense", "350.75", "Alimentação", 1},
		{"Fuel", "expense", "120.00", "Transporte", 1},
		{"Phone plan", "expense", "1999.90", "Outros", 12},
		{"Course", "expense", "900.00", "Educação", 3},
	}

	fmt.Printf("Load testing ledger across %d users: %v\n", len(users), users)
	fmt.Printf("Concurrency: %d goroutines, %d requests, %d ms delay\n", *concurrency, *totalRequests, *delayMs)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
		ErrorCounts:   make(map[string]int),
		UserStats:     make(map[string]int),
		ScenarioStats: make(map[string]int),
	}

	jobs := make(chan int, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	startTime := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *delayMs, users, scenarios, jobs, stats)
		}()
	}
	wg.Wait()
	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

func worker(baseURL string, delayMs int, users []string, scenarios []Scenario, jobs <-chan int, stats *TestStats) {
	client := &http.Client{Timeout: 10 * time.Second}

	for jobID := range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}
		userID := users[rand.Intn(len(users))]
		scenario := scenarios[rand.Intn(len(scenarios))]

		result := createRecord(client, baseURL, userID, scenario, jobID)
		if result.Success && scenario.Installments > 1 && rand.Intn(2) == 0 {
			record(stats, userID, payNext(client, baseURL, userID, result))
		}
		record(stats, userID, result.TestResult)
	}
}

type createResult struct {
	TestResult
	GroupID string
}

func createRecord(client *http.Client, baseURL, userID string, scenario Scenario, jobID int) createResult {
	body, err := json.Marshal(dto.CreateTransactionRequest{
		Description:  fmt.Sprintf("%s #%d", scenario.Name, jobID),
		Amount:       scenario.Amount,
		Type:         scenario.Type,
		Category:     scenario.Category,
		Date:         time.Now().Format("2006-01-02"),
		Installments: scenario.Installments,
	})
	if err != nil {
		return createResult{TestResult: TestResult{Scenario: scenario.Name, Error: err}}
	}

	result, resp := send(client, http.MethodPost, baseURL+"/api/v1/transactions", userID, body)
	result.Scenario = scenario.Name
	out := createResult{TestResult: result}
	if resp != nil && len(resp.Transactions) > 0 && resp.Transactions[0].Installment != nil {
		out.GroupID = resp.Transactions[0].Installment.GroupID
	}
	return out
}

func payNext(client *http.Client, baseURL, userID string, created createResult) TestResult {
	result, _ := send(client, http.MethodPost, baseURL+"/api/v1/plans/"+created.GroupID+"/pay-next", userID, nil)
	result.Scenario = "Pay next installment"
	return result
}

func send(client *http.Client, method, url, userID string, body []byte) (TestResult, *dto.MutationResponse) {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return TestResult{Error: err}, nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	start := time.Now()
	resp, err := client.Do(req)
	result := TestResult{ResponseTime: time.Since(start)}
	if err != nil {
		result.Error = err
		return result, nil
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !result.Success {
		result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
		return result, nil
	}

	var mutation dto.MutationResponse
	if err := json.NewDecoder(resp.Body).Decode(&mutation); err != nil {
		return result, nil
	}
	return result, &mutation
}

func record(stats *TestStats, userID string, result TestResult) {
	stats.Lock.Lock()
	defer stats.Lock.Unlock()

	stats.UserStats[userID]++
	stats.ScenarioStats[result.Scenario]++
	if result.Success {
		stats.SuccessfulRequests++
	} else {
		stats.FailedRequests++
		errMsg := "unknown"
		if result.Error != nil {
			errMsg = result.Error.Error()
		}
		stats.ErrorCounts[errMsg]++
	}
	stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
	stats.TotalResponseTime += result.ResponseTime
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *TestStats) {
	sorted := append([]time.Duration(nil), stats.ResponseTimes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	sent := stats.SuccessfulRequests + stats.FailedRequests
	var avg time.Duration
	if sent > 0 {
		avg = stats.TotalResponseTime / time.Duration(sent)
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Requests sent:       %d (%d writes scheduled)\n", sent, stats.TotalRequests)
	fmt.Printf("Successful Requests: %d\n", stats.SuccessfulRequests)
	fmt.Printf("Failed Requests:     %d\n", stats.FailedRequests)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:          %.2f req/s\n", float64(sent)/stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avg)
	if len(sorted) > 0 {
		fmt.Printf("Minimum Response:    %v\n", sorted[0])
		fmt.Printf("Maximum Response:    %v\n", sorted[len(sorted)-1])
	}
	fmt.Printf("P50 Response:        %v\n", percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sorted, 90))
	fmt.Printf("P99 Response:        %v\n", percentile(sorted, 99))

	fmt.Println("\n----------------- USER DISTRIBUTION -----------------")
	for userID, count := range stats.UserStats {
		fmt.Printf("%-12s: %d requests\n", userID, count)
	}

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-22s: %d requests\n", scenario, count)
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", errMsg, count)
		}
	}
}
