// Command smoke drives a running agentflow server through a run, history and chat round trip.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("AGENTFLOW_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	jar, _ := cookiejar.New(nil)
	c := &client{base: baseURL, http: &http.Client{Jar: jar, Timeout: 3 * time.Minute}}

	fmt.Println("Starting smoke test against", baseURL)

	step("Health", func() error { return c.do(http.MethodGet, "/healthz", nil, nil) })

	var agents struct {
		Agents []map[string]any `json:"agents"`
	}
	step("List agents", func() error {
		if err := c.do(http.MethodGet, "/api/agents", nil, &agents); err != nil {
			return err
		}
		if len(agents.Agents) != 9 {
			return fmt.Errorf("expected 9 agents, got %d", len(agents.Agents))
		}
		return nil
	})

	step("Select Supervisor", func() error {
		return c.do(http.MethodPut, "/api/session/mode", map[string]string{"mode": "Supervisor"}, nil)
	})

	var run struct {
		Record struct {
			Output     string `json:"output"`
			Confidence *int   `json:"confidence"`
		} `json:"record"`
		Applied bool `json:"applied"`
	}
	step("Run task", func() error {
		err := c.do(http.MethodPost, "/api/run", map[string]string{"input": "func add(a, b int) int { return a - b }"}, &run)
		if err != nil {
			return err
		}
		if !run.Applied || run.Record.Confidence == nil {
			return fmt.Errorf("unexpected run result: %+v", run)
		}
		fmt.Printf("   confidence %d%%\n", *run.Record.Confidence)
		return nil
	})

	step("History", func() error {
		var hist struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := c.do(http.MethodGet, "/api/history", nil, &hist); err != nil {
			return err
		}
		if len(hist.Items) == 0 {
			return fmt.Errorf("history is empty after a run")
		}
		return nil
	})

	step("Chat", func() error {
		var resp struct {
			Reply struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"reply"`
		}
		if err := c.do(http.MethodPost, "/api/chat", map[string]string{"message": "What should I test first?"}, &resp); err != nil {
			return err
		}
		fmt.Printf("   %s: %.60s\n", resp.Reply.Role, resp.Reply.Content)
		return nil
	})

	step("Clear history", func() error {
		return c.do(http.MethodDelete, "/api/history", map[string]bool{"confirm": true}, nil)
	})
}

func step(name string, fn func() error) {
	fmt.Printf("%s...\n", name)
	if err := fn(); err != nil {
		fmt.Printf("FAILED: %s: %v\n", name, err)
		os.Exit(1)
	}
	fmt.Printf("PASSED: %s\n", name)
}

type client struct {
	base string
	http *http.Client
}

func (c *client) do(method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, data)
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
