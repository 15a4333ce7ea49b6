// Package main provides a performance benchmarking tool for the reportboard CLI.
// It generates request log files of increasing size, times report and export
// commands against each, and writes the averages to a CSV file for documentation.
//
// Prerequisites:
// - reportboard binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated log files and exports (defaults to a temp dir)
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/huangsam/reportboard/internal/datastore"
)

// BenchmarkResult holds the averaged timing of one command against one data set.
type BenchmarkResult struct {
	Dataset string
	Command string
	Rows    int
	AvgTime string
	MaxTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Days     int
	Datasets map[string]int // name -> generated rows
	Order    []string
}

// benchmarkCommand is one CLI invocation; {file} is replaced by the data set path.
type benchmarkCommand struct {
	Name string
	Args []string
}

var commands = []benchmarkCommand{
	{Name: "report", Args: []string{"report", "{file}"}},
	{Name: "report-range", Args: []string{"report", "{file}", "--start", "30 days ago", "--end", "today", "--category", "payments"}},
	{Name: "schema", Args: []string{"schema", "{file}"}},
	{Name: "export-xlsx", Args: []string{"export", "{file}", "--output", "xlsx"}},
	{Name: "export-parquet", Args: []string{"export", "{file}", "--output", "parquet"}},
}

func main() {
	workDir := ""
	switch len(os.Args) {
	case 1:
		dir, err := os.MkdirTemp("", "reportboard-benchmark-*")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		workDir = dir
	case 2:
		workDir = os.Args[1]
	default:
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 2 * time.Minute,
		Runs:    5,
		Days:    180,
		Datasets: map[string]int{
			"small":  1_000,
			"medium": 25_000,
			"large":  250_000,
		},
		Order: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating data sets in %s\n", config.WorkDir)
	files, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Failed to generate data sets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, files)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the reportboard binary and work dir exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("reportboard"); err != nil {
		return fmt.Errorf("reportboard binary not found in PATH")
	}
	if info, err := os.Stat(config.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work dir %s is not a directory", config.WorkDir)
	}
	return nil
}

// generateDatasets writes one CSV per data set with the same seed, so runs are comparable.
func generateDatasets(config BenchmarkConfig) (map[string]string, error) {
	files := make(map[string]string, len(config.Datasets))
	now := time.Now()
	for _, name := range config.Order {
		path := filepath.Join(config.WorkDir, name+".csv")
		rng := rand.New(rand.NewPCG(42, 42))
		if err := writeDataset(path, datastoreRows(config.Datasets[name], config.Days, now, rng)); err != nil {
			return nil, err
		}
		files[name] = path
		fmt.Printf("  %-8s %8d rows -> %s\n", name, config.Datasets[name], path)
	}
	return files, nil
}

// datastoreRows renders generated request logs as CSV rows with a header.
func datastoreRows(n, days int, now time.Time, rng *rand.Rand) [][]string {
	rows := [][]string{{"Date", "Name", "Category", "Status", "Response Time"}}
	for _, log := range datastore.GenerateLogs(n, days, now, rng) {
		rows = append(rows, []string{
			log.RequestDate.Format(time.DateOnly),
			log.Name,
			log.Category,
			log.Status,
			log.ResponseTime,
		})
	}
	return rows
}

func writeDataset(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// runBenchmarks executes every command against every data set
func runBenchmarks(config BenchmarkConfig, files map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d data sets, %d commands, %d runs, %v timeout\n",
		len(config.Order), len(commands), config.Runs, config.Timeout)

	for _, name := range config.Order {
		fmt.Printf("Benchmarking %s\n", name)
		for _, command := range commands {
			results = append(results, runBenchmarkSuite(config, name, files[name], command))
		}
	}

	return results
}

// runBenchmarkSuite times one command against one data set
func runBenchmarkSuite(config BenchmarkConfig, name, file string, command benchmarkCommand) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", command.Name, config.Runs)

	times := runBenchmark(config, file, command)
	avgTime, maxTime := "TIMEOUT", "TIMEOUT"
	if len(times) > 0 {
		var sum, peak float64
		for _, t := range times {
			sum += t
			peak = max(peak, t)
		}
		avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		maxTime = fmt.Sprintf("%.3fs", peak)
	}

	fmt.Printf("    Average: %s, Slowest: %s\n", avgTime, maxTime)

	return BenchmarkResult{
		Dataset: name,
		Command: command.Name,
		Rows:    config.Datasets[name],
		AvgTime: avgTime,
		MaxTime: maxTime,
	}
}

// runBenchmark executes a command several times and returns the successful run times
func runBenchmark(config BenchmarkConfig, file string, command benchmarkCommand) []float64 {
	args := make([]string, len(command.Args))
	for i, arg := range command.Args {
		if arg == "{file}" {
			arg = file
		}
		args[i] = arg
	}
	// The record store is never needed when a file is given
	args = append(args, "--backend", "none")

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("reportboard", args...)
		cmd.Dir = config.WorkDir

		done := make(chan error, 1)
		go func() {
			_, err := cmd.CombinedOutput()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}
	return times
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("reportboard_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "rows", "cmd", "avg", "max"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		record := []string{result.Dataset, strconv.Itoa(result.Rows), result.Command, result.AvgTime, result.MaxTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range commands {
		fmt.Printf("%s:\n", command.Name)
		for _, result := range results {
			if result.Command == command.Name {
				fmt.Printf("  %-8s (%7d rows): Average: %s, Slowest: %s\n", result.Dataset, result.Rows, result.AvgTime, result.MaxTime)
			}
		}
	}
}
