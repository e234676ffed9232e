// Command pushgen submits synthetic push messages to a running engine,
// exercising the /push ingestion path with autofill patches and status
// updates.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/candidesk/candidesk/internal/domain/model"
)

const (
	defaultCount    = 100
	defaultInterval = 50 * time.Millisecond
	defaultTimeout  = 10 * time.Second
)

var names = []string{
	"priya sharma", "james o'neil", "wei chen", "amara okafor",
	"lucas silva", "fatima khan", "elena petrova", "daniel kim",
}

var technologies = []string{"react", "java", "python", "golang", "node.js", "dotnet"}

var statuses = []string{"Scheduled", "Completed", "Cancelled", "Pending"}

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9090", "Base URL of the service")
		count    = flag.Int("count", defaultCount, "Number of push messages to submit")
		interval = flag.Duration("interval", defaultInterval, "Delay between messages")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	client := &http.Client{Timeout: *timeout}
	ctx := context.Background()

	var accepted, rejected int
	for i := 0; i < *count; i++ {
		msg := randomMessage(rng)
		if err := post(ctx, client, *baseURL+"/push", msg); err != nil {
			rejected++
			fmt.Fprintln(os.Stderr, "push rejected:", err)
		} else {
			accepted++
		}
		time.Sleep(*interval)
	}

	fmt.Printf("done: %d accepted, %d rejected\n", accepted, rejected)
}

func randomMessage(rng *rand.Rand) model.PushMessage {
	if rng.Intn(2) == 0 {
		return model.PushMessage{
			Kind: model.PushAutofill,
			Autofill: &model.AutofillPatch{
				Name:       names[rng.Intn(len(names))],
				Technology: technologies[rng.Intn(len(technologies))],
				Email:      fmt.Sprintf("candidate%d@example.com", rng.Intn(10000)),
				Phone:      fmt.Sprintf("%d", 2000000000+rng.Int63n(8000000000)),
			},
		}
	}
	return model.PushMessage{
		Kind: model.PushStatus,
		Status: &model.StatusUpdate{
			// Subjects rarely match a stored record; the unmatched
			// counter is part of what this tool exercises.
			Subject: fmt.Sprintf("Interview Support - Candidate %d - React - Jan 2, 2026 at 3:04 PM", rng.Intn(1000)),
			Status:  statuses[rng.Intn(len(statuses))],
		},
	}
}

func post(ctx context.Context, client *http.Client, url string, msg model.PushMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
