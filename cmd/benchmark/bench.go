package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	mockPort = 9091
	appPort  = 8081
)

var (
	geminiResp = []byte(`{"candidates":[{"content":{"parts":[{"text":"Benchmark answer"}],"role":"model"}}]}`)
	groqResp   = []byte(`{"choices":[{"message":{"role":"assistant","content":"Benchmark answer"}}]}`)
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rate := flag.Int("rate", 50, "Requests per second")
	provider := flag.String("provider", "gemini", "Upstream to exercise (gemini or llama)")
	flag.Parse()

	go startMockUpstream()

	fmt.Println("Building application...")
	buildCmd := exec.Command("go", "build", "-o", "bin/server", "./cmd/server")
	buildCmd.Stdout = os.Stdout
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	configFile := "bench_config.yaml"
	if err := os.WriteFile(configFile, []byte(benchConfig), 0644); err != nil {
		log.Fatalf("Failed to write config: %v", err)
	}
	defer os.Remove(configFile)

	fmt.Println("Starting application...")
	cmd := exec.Command("./bin/server")
	cmd.Env = append(os.Environ(), fmt.Sprintf("CONFIG_FILE=%s", configFile))
	cmd.Env = append(cmd.Env, "LOG_LEVEL=error")

	logFile, _ := os.Create("bench_server.log")
	defer logFile.Close()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}()

	waitForApp(fmt.Sprintf("http://localhost:%d/health", appPort))

	fmt.Printf("Running benchmark against %q: %s duration, %d req/s\n", *provider, *duration, *rate)

	body := fmt.Sprintf(
		`{"study_content": "Photosynthesis basics", "prompt": "Summarize in 2 sentences", "api_choice": %q}`,
		*provider,
	)

	targeter := func(t *vegeta.Target) error {
		t.Method = "POST"
		t.URL = fmt.Sprintf("http://localhost:%d/process_homework", appPort)
		t.Body = []byte(body)
		t.Header = http.Header{
			"Content-Type":      []string{"application/json"},
			"X-Benchmark-Start": []string{strconv.FormatInt(time.Now().UnixNano(), 10)},
		}
		return nil
	}

	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true))
	var metrics vegeta.Metrics

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "Benchmark") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("--------------------------------------------------")
	fmt.Println("99th percentile: ", metrics.Latencies.P99)
	fmt.Println("Mean:            ", metrics.Latencies.Mean)
	fmt.Println("Max:             ", metrics.Latencies.Max)
	fmt.Printf("Success:         %.2f%%\n", metrics.Success*100)
	fmt.Printf("Throughput:      %.2f req/s\n", metrics.Throughput)
	fmt.Println("--------------------------------------------------")

	if len(metrics.Errors) > 0 {
		fmt.Println("Error Set (first 5 unique):")

		uniqueErrors := make(map[string]bool)
		count := 0
		for _, msg := range metrics.Errors {
			if !uniqueErrors[msg] && count < 5 {
				fmt.Println(msg)

				uniqueErrors[msg] = true
				count++
			}
		}
	}

	os.Remove("bench.db")
}

// startMockUpstream stands in for both Gemini and Groq so the benchmark
// measures gateway overhead, not network or model latency.
func startMockUpstream() {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1beta/models/", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write(geminiResp)
	})

	mux.HandleFunc("/openai/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&req)

		time.Sleep(10 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write(groqResp)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	_ = http.ListenAndServe(fmt.Sprintf(":%d", mockPort), mux)
}

func waitForApp(url string) {
	for i := 0; i < 20; i++ {
		resp, err := http.Get(url)
		if err == nil && resp.StatusCode == 200 {
			return
		}
		time.Sleep(500 * time.Millisecond)
	}
	log.Fatal("App timed out")
}

var benchConfig = fmt.Sprintf(`
server:
  port: %d
  env: development
auth:
  required: false
store:
  enabled: true
  dsn: "file:bench.db?cache=shared&mode=rwc&_journal_mode=WAL&_busy_timeout=5000"
providers:
  - id: gemini-bench
    type: gemini
    name: Gemini (mock)
    api_key: "bench-key"
    base_url: "http://localhost:%d/v1beta"
  - id: llama-bench
    type: llama
    name: Llama (mock)
    api_key: "bench-key"
    base_url: "http://localhost:%d/openai/v1"
`, appPort, mockPort, mockPort)
