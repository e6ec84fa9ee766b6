package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

var observeCmd = &cobra.Command{
	Use:   "observe FILE",
	Short: "Watch a document and stream traversal changes as JSONL",
	Long: `Poll a view tree document and re-parse it whenever its content changes,
emitting one JSON object per changed marker (added, removed, changed) to
stdout. Nothing is emitted while the document is unchanged.

Useful while a capture tool rewrites the document as the app under test
changes screen.

Output is always JSONL regardless of the --format flag.

Use Ctrl+C or --duration to stop observing.`,
	Args: cobra.ExactArgs(1),
	RunE: runObserve,
}

func init() {
	rootCmd.AddCommand(observeCmd)
	observeCmd.Flags().Int("interval", 1000, "Polling interval in milliseconds")
	observeCmd.Flags().Int("duration", 0, "Max seconds to observe (0 = until Ctrl+C)")
	observeCmd.Flags().Bool("ignore-shape", false, "Ignore shape and activation point changes")
}

// observeConfig controls one observation.
type observeConfig struct {
	interval    time.Duration
	duration    time.Duration
	ignoreShape bool
}

func runObserve(cmd *cobra.Command, args []string) error {
	intervalMs, _ := cmd.Flags().GetInt("interval")
	durationSec, _ := cmd.Flags().GetInt("duration")
	ignoreShape, _ := cmd.Flags().GetBool("ignore-shape")
	if intervalMs <= 0 {
		return fmt.Errorf("--interval must be positive")
	}

	p, err := newParser(cmd)
	if err != nil {
		return err
	}
	opts, err := callOptions(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	var last []byte
	var lastMarkers []model.Marker
	// read re-parses only when the file content changed since the last poll.
	read := func() ([]model.Marker, bool, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, false, err
		}
		if last != nil && bytes.Equal(data, last) {
			return lastMarkers, false, nil
		}
		f, err := parseFile(p, path, opts)
		if err != nil {
			return nil, false, err
		}
		last, lastMarkers = data, f.markers
		return f.markers, true, nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return observe(ctx, os.Stdout, read, observeConfig{
		interval:    time.Duration(intervalMs) * time.Millisecond,
		duration:    time.Duration(durationSec) * time.Second,
		ignoreShape: ignoreShape,
	})
}

// observe emits a snapshot event, then one event per marker change on every
// poll where read reports new content, then a done event.
func observe(ctx context.Context, w io.Writer, read func() ([]model.Marker, bool, error), cfg observeConfig) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if cfg.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.duration)
		defer cancel()
	}
	start := time.Now()

	prev, _, err := read()
	if err != nil {
		return fmt.Errorf("initial parse failed: %w", err)
	}
	if err := enc.Encode(map[string]interface{}{
		"type":  "snapshot",
		"ts":    time.Now().Unix(),
		"count": len(prev),
	}); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.interval)
	defer ticker.Stop()
	eventCount := 0

poll:
	for {
		select {
		case <-ctx.Done():
			break poll
		case <-ticker.C:
		}

		curr, changed, err := read()
		if err != nil {
			_ = enc.Encode(map[string]interface{}{
				"type":  "error",
				"ts":    time.Now().Unix(),
				"error": err.Error(),
			})
			continue
		}
		if !changed {
			continue
		}
		for _, change := range model.DiffMarkers(prev, curr) {
			if change.Type == model.ChangeChanged && cfg.ignoreShape {
				delete(change.Changes, "shape")
				delete(change.Changes, "activation_point")
				if len(change.Changes) == 0 {
					continue
				}
			}
			if err := enc.Encode(change); err != nil {
				return err
			}
			eventCount++
		}
		prev = curr
	}

	return enc.Encode(map[string]interface{}{
		"type":    "done",
		"ts":      time.Now().Unix(),
		"elapsed": fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
		"events":  eventCount,
	})
}
