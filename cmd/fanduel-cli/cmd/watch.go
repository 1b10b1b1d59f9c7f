package cmd

import (
	"context"
	"fanduel-client/cmd/fanduel-cli/globals"
	"fanduel-client/internal/components/chrono"
	"fanduel-client/internal/fanduel"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
)

const report_watch_poll = "watch.poll"

func init() {
	rootCmd.AddCommand(watchCmd)
}

// slateWatcher prints every slate it has not seen before.
type slateWatcher struct {
	client *fanduel.Client
	value  *globals.Value

	mu   sync.Mutex
	seen map[string]bool
}

func (w *slateWatcher) poll(ctx context.Context) {
	slates, err := w.client.ListSlates(ctx)
	if err != nil {
		w.value.Tel.ReportBroken(report_watch_poll, err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	fresh := []fanduel.Slate{}
	for _, s := range slates {
		if w.seen[s.Id] {
			continue
		}
		w.seen[s.Id] = true
		fresh = append(fresh, s)
	}
	if len(fresh) > 0 {
		renderSlates(fresh)
	}
	w.value.Tel.ReportCount(report_watch_poll, int64(len(slates)))
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the slates on the configured schedule and print the ones that were not seen before.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value := globals.Get(ctx)

		client, err := value.Client(ctx)
		if err != nil {
			return err
		}
		watcher := &slateWatcher{
			client: client,
			value:  value,
			seen:   map[string]bool{},
		}
		watcher.poll(ctx)

		cron := chrono.NewStandardCron(value.Tel)
		defer cron.Stop()

		err = cron.Cron(value.Config.WatchSchedule, func() {
			watcher.poll(ctx)
		})
		if err != nil {
			return fmt.Errorf("invalid watch_schedule %q: %w", value.Config.WatchSchedule, err)
		}

		<-ctx.Done()
		return nil
	},
}
