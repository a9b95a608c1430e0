package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	userIDHeader = "X-User-ID"
	defaultQty   = 1
)

type loadMode string

const (
	modeCheckout        loadMode = "checkout"
	modeCheckoutConfirm loadMode = "checkout-confirm"
	modeCartOnly        loadMode = "cart-only"
)

type config struct {
	baseURL     string
	total       int
	totalSet    bool
	duration    time.Duration
	concurrency int
	timeout     time.Duration
	mode        loadMode
	userID      string
	approverID  string
	productID   string
	quantity    int
	address     string
	outputPath  string
}

type latencySummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type stepReport struct {
	Calls     int64          `json:"calls"`
	Success   int64          `json:"success"`
	Failed    int64          `json:"failed"`
	ErrorRate float64        `json:"error_rate"`
	LatencyMs latencySummary `json:"latency_ms"`
}

type report struct {
	StartedAt         time.Time             `json:"started_at"`
	DurationSeconds   float64               `json:"duration_seconds"`
	TotalScenarios    int64                 `json:"total_scenarios"`
	SuccessScenarios  int64                 `json:"success_scenarios"`
	FailedScenarios   int64                 `json:"failed_scenarios"`
	ErrorRate         float64               `json:"error_rate"`
	RPS               float64               `json:"rps"`
	ScenarioLatencyMs latencySummary        `json:"scenario_latency_ms"`
	Steps             map[string]stepReport `json:"steps"`
}

type stepStats struct {
	calls     int64
	success   int64
	failed    int64
	latencies []float64
}

type collector struct {
	mu    sync.Mutex
	steps map[string]*stepStats
}

func newCollector() *collector {
	return &collector{steps: make(map[string]*stepStats)}
}

func (c *collector) record(step string, latency time.Duration, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats, found := c.steps[step]
	if !found {
		stats = &stepStats{}
		c.steps[step] = stats
	}

	stats.calls++
	if ok {
		stats.success++
	} else {
		stats.failed++
	}
	stats.latencies = append(stats.latencies, float64(latency.Microseconds())/1000.0)
}

func (c *collector) buildReport(startedAt time.Time, duration time.Duration) report {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := report{
		StartedAt:       startedAt.UTC(),
		DurationSeconds: duration.Seconds(),
		Steps:           make(map[string]stepReport, len(c.steps)),
	}

	if scenarioStats := c.steps["scenario"]; scenarioStats != nil {
		result.TotalScenarios = scenarioStats.calls
		result.SuccessScenarios = scenarioStats.success
		result.FailedScenarios = scenarioStats.failed
		result.ErrorRate = ratio(scenarioStats.failed, scenarioStats.calls)
		result.ScenarioLatencyMs = buildLatencySummary(scenarioStats.latencies)
	}
	if duration > 0 {
		result.RPS = float64(result.TotalScenarios) / duration.Seconds()
	}

	for name, stats := range c.steps {
		result.Steps[name] = stepReport{
			Calls:     stats.calls,
			Success:   stats.success,
			Failed:    stats.failed,
			ErrorRate: ratio(stats.failed, stats.calls),
			LatencyMs: buildLatencySummary(stats.latencies),
		}
	}

	return result
}

// envelope повторяет форму единого ответа шлюза.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func parseConfig() (config, error) {
	var cfg config
	var modeValue string
	var timeoutValue string
	var durationValue string

	flag.StringVar(&cfg.baseURL, "addr", "http://localhost:8080", "storefront HTTP gateway base URL")
	flag.IntVar(&cfg.total, "total", 200, "total scenarios to execute in count mode; in duration mode only used when explicitly set")
	flag.StringVar(&durationValue, "duration", "0s", "optional time-based run duration (e.g. 5m)")
	flag.IntVar(&cfg.concurrency, "concurrency", 20, "number of concurrent workers")
	flag.StringVar(&timeoutValue, "timeout", "5s", "per-request timeout")
	flag.StringVar(&modeValue, "mode", string(modeCheckout), "load mode: checkout | checkout-confirm | cart-only")
	flag.StringVar(&cfg.userID, "user", "11111111-1111-1111-1111-111111111111", "user id sent in X-User-ID")
	flag.StringVar(&cfg.approverID, "approver", "loadtest-manager", "approver id for status updates in checkout-confirm mode")
	flag.StringVar(&cfg.productID, "product", "aaaaaaaa-0000-0000-0000-000000000001", "product id added to the cart")
	flag.IntVar(&cfg.quantity, "quantity", defaultQty, "quantity per cart line")
	flag.StringVar(&cfg.address, "address", "1 Load Test Street", "shipping address for checkout")
	flag.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	flag.Parse()

	timeout, err := time.ParseDuration(strings.TrimSpace(timeoutValue))
	if err != nil {
		return cfg, fmt.Errorf("parse timeout: %w", err)
	}
	cfg.timeout = timeout

	duration, err := time.ParseDuration(strings.TrimSpace(durationValue))
	if err != nil {
		return cfg, fmt.Errorf("parse duration: %w", err)
	}
	cfg.duration = duration

	flag.CommandLine.Visit(func(f *flag.Flag) {
		if f.Name == "total" {
			cfg.totalSet = true
		}
	})

	mode, err := parseMode(modeValue)
	if err != nil {
		return cfg, err
	}
	cfg.mode = mode

	if cfg.duration < 0 {
		return cfg, errors.New("duration must be >= 0")
	}
	if cfg.duration == 0 && cfg.total <= 0 {
		return cfg, errors.New("total must be > 0 when duration is not set")
	}
	if cfg.concurrency <= 0 {
		return cfg, errors.New("concurrency must be > 0")
	}
	if cfg.timeout <= 0 {
		return cfg, errors.New("timeout must be > 0")
	}
	if cfg.quantity <= 0 {
		return cfg, errors.New("quantity must be > 0")
	}
	if strings.TrimSpace(cfg.baseURL) == "" {
		return cfg, errors.New("addr is required")
	}
	if strings.TrimSpace(cfg.userID) == "" {
		return cfg, errors.New("user is required")
	}
	if strings.TrimSpace(cfg.productID) == "" {
		return cfg, errors.New("product is required")
	}
	cfg.baseURL = strings.TrimRight(cfg.baseURL, "/")

	return cfg, nil
}

func parseMode(value string) (loadMode, error) {
	switch loadMode(strings.TrimSpace(value)) {
	case modeCheckout:
		return modeCheckout, nil
	case modeCheckoutConfirm:
		return modeCheckoutConfirm, nil
	case modeCartOnly:
		return modeCartOnly, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: cfg.timeout}

	startedAt := time.Now()
	col := newCollector()

	jobs := make(chan int, cfg.concurrency*2)
	var failures int64
	var wg sync.WaitGroup

	for workerID := 0; workerID < cfg.concurrency; workerID++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if runErr := runScenario(client, cfg, id, col); runErr != nil {
					atomic.AddInt64(&failures, 1)
				}
			}
		}()
	}

	dispatchJobs(jobs, cfg)
	wg.Wait()

	duration := time.Since(startedAt)
	result := col.buildReport(startedAt, duration)
	if result.FailedScenarios == 0 && failures > 0 {
		result.FailedScenarios = failures
		result.ErrorRate = ratio(result.FailedScenarios, result.TotalScenarios)
	}

	printReport(result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}

	if result.FailedScenarios > 0 {
		os.Exit(1)
	}
}

func dispatchJobs(jobs chan<- int, cfg config) {
	defer close(jobs)

	if cfg.duration <= 0 {
		for i := 0; i < cfg.total; i++ {
			jobs <- i
		}
		return
	}

	timer := time.NewTimer(cfg.duration)
	defer timer.Stop()

	for i := 0; ; i++ {
		if cfg.totalSet && i >= cfg.total {
			return
		}

		select {
		case <-timer.C:
			return
		case jobs <- i:
		}
	}
}

func runScenario(client *http.Client, cfg config, index int, col *collector) error {
	scenarioStart := time.Now()
	scenarioOK := false
	defer func() {
		col.record("scenario", time.Since(scenarioStart), scenarioOK)
	}()

	addBody := map[string]any{
		"product_id": cfg.productID,
		"quantity":   cfg.quantity,
	}
	if _, err := callStep(client, cfg, col, "AddToCart", http.MethodPost, "/api/v1/cart/items", addBody); err != nil {
		return err
	}

	if cfg.mode == modeCartOnly {
		if _, err := callStep(client, cfg, col, "ClearCart", http.MethodDelete, "/api/v1/cart", nil); err != nil {
			return err
		}
		scenarioOK = true
		return nil
	}

	createBody := map[string]any{
		"shipping_address": fmt.Sprintf("%s #%d", cfg.address, index),
		"items": []map[string]any{
			{"product_id": cfg.productID, "quantity": cfg.quantity},
		},
	}
	orderData, err := callStep(client, cfg, col, "CreateOrder", http.MethodPost, "/api/v1/orders", createBody)
	if err != nil {
		return err
	}

	if cfg.mode == modeCheckoutConfirm {
		var order struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(orderData, &order); err != nil || order.ID == "" {
			return errors.New("create response returned no order id")
		}

		statusBody := map[string]any{"status": "confirmed"}
		path := fmt.Sprintf("/api/v1/orders/%s/status", order.ID)
		if _, err := callStepAs(client, cfg, cfg.approverID, col, "UpdateStatus", http.MethodPatch, path, statusBody); err != nil {
			return err
		}
	}

	scenarioOK = true
	return nil
}

func callStep(client *http.Client, cfg config, col *collector, step, method, path string, body any) (json.RawMessage, error) {
	return callStepAs(client, cfg, cfg.userID, col, step, method, path, body)
}

func callStepAs(client *http.Client, cfg config, asUser string, col *collector, step, method, path string, body any) (json.RawMessage, error) {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			col.record(step, time.Since(start), false)
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, cfg.baseURL+path, reader)
	if err != nil {
		col.record(step, time.Since(start), false)
		return nil, err
	}
	req.Header.Set(userIDHeader, asUser)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		col.record(step, time.Since(start), false)
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		col.record(step, time.Since(start), false)
		return nil, fmt.Errorf("%s: decode response: %w", step, err)
	}

	ok := resp.StatusCode == http.StatusOK && env.Success
	col.record(step, time.Since(start), ok)
	if !ok {
		return nil, fmt.Errorf("%s failed: status=%d message=%s", step, resp.StatusCode, env.Message)
	}

	return env.Data, nil
}

func writeJSONReport(path string, result report) error {
	cleanPath := filepath.Clean(path)
	if cleanPath == "." || cleanPath == string(filepath.Separator) {
		return errors.New("output path must point to a file")
	}
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output path must be inside current directory: %s", path)
	}

	// #nosec G304 -- path is an explicit CLI output parameter for local load-test reports.
	file, err := os.Create(cleanPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printReport(result report, cfg config) {
	fmt.Println("Load test summary")
	fmt.Printf("mode=%s target=%s total=%d success=%d failed=%d error_rate=%.4f\n",
		cfg.mode,
		runTarget(cfg),
		result.TotalScenarios,
		result.SuccessScenarios,
		result.FailedScenarios,
		result.ErrorRate,
	)
	fmt.Printf("duration=%.2fs rps=%.2f\n", result.DurationSeconds, result.RPS)
	fmt.Printf("scenario latency ms: min=%.2f avg=%.2f p50=%.2f p95=%.2f p99=%.2f max=%.2f\n",
		result.ScenarioLatencyMs.Min,
		result.ScenarioLatencyMs.Avg,
		result.ScenarioLatencyMs.P50,
		result.ScenarioLatencyMs.P95,
		result.ScenarioLatencyMs.P99,
		result.ScenarioLatencyMs.Max,
	)

	stepNames := make([]string, 0, len(result.Steps))
	for name := range result.Steps {
		if name == "scenario" {
			continue
		}
		stepNames = append(stepNames, name)
	}
	sort.Strings(stepNames)
	for _, name := range stepNames {
		stats := result.Steps[name]
		fmt.Printf(
			"%s: calls=%d success=%d failed=%d error_rate=%.4f p95=%.2fms\n",
			name,
			stats.Calls,
			stats.Success,
			stats.Failed,
			stats.ErrorRate,
			stats.LatencyMs.P95,
		)
	}
}

func runTarget(cfg config) string {
	if cfg.duration <= 0 {
		return fmt.Sprintf("count:%d", cfg.total)
	}
	if cfg.totalSet {
		return fmt.Sprintf("duration:%s,max-total:%d", cfg.duration, cfg.total)
	}
	return fmt.Sprintf("duration:%s", cfg.duration)
}

func buildLatencySummary(values []float64) latencySummary {
	if len(values) == 0 {
		return latencySummary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, value := range sorted {
		sum += value
	}

	return latencySummary{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: sum / float64(len(sorted)),
		P50: percentile(sorted, 50),
		P95: percentile(sorted, 95),
		P99: percentile(sorted, 99),
	}
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}

	weight := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight
}

func ratio(failed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(failed) / float64(total)
}
