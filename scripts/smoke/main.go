// Command smoke probes a running instance of the API and reports status and
// latency for a configurable list of endpoints. Intended for post-deploy
// checks; exits non-zero when any critical endpoint fails.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Expect   int    `json:"expect"`
	Critical bool   `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type probe struct {
	Target   target
	Status   int
	Duration time.Duration
	Error    error
}

func main() {
	var (
		base        string
		token       string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&token, "token", "", "Bearer token for authenticated endpoints")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "smoke", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		probes  []probe
		failing int
	)

	for _, t := range targets {
		p := probeTarget(client, base, token, t)
		if t.Critical && (p.Error != nil || !matches(p)) {
			failing++
		}
		probes = append(probes, p)
	}

	printReport(probes)

	fmt.Printf("Critical failures: %d\n", failing)
	if failing > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func probeTarget(client *http.Client, base, token string, tgt target) probe {
	p := probe{Target: tgt}

	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		p.Error = err
		return p
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	p.Duration = time.Since(start)
	if err != nil {
		p.Error = err
		return p
	}
	defer resp.Body.Close()

	p.Status = resp.StatusCode
	return p
}

func matches(p probe) bool {
	expect := p.Target.Expect
	if expect == 0 {
		expect = http.StatusOK
	}
	return p.Status == expect
}

func printReport(probes []probe) {
	fmt.Println("Smoke Report")
	fmt.Println("============")
	for _, p := range probes {
		status := "OK"
		if p.Error != nil {
			status = "ERROR"
		} else if !matches(p) {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s\n", status, p.Target.Method, p.Target.Path)
		if p.Error != nil {
			fmt.Printf("  Error: %v\n", p.Error)
			continue
		}
		fmt.Printf("  Status: %d (%s) | Critical: %t\n", p.Status, p.Duration, p.Target.Critical)
	}
}
