// Package scheduler keeps the plan-context caches warm for a configured set
// of cities so interactive requests skip the slowest upstream calls.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/fms-faisal/DayMate/internal/cache"
)

// Warmer refreshes the plan context for one city; *plan.Service implements it.
type Warmer interface {
	Warm(ctx context.Context, city string) error
}

// Scheduler periodically warms caches and sweeps expired entries.
type Scheduler struct {
	scheduler *gocron.Scheduler
	warmer    Warmer
	cities    []string
	interval  time.Duration
	caches    []*cache.TTLCache
}

// New creates a Scheduler. caches are swept after each warm pass.
func New(cities []string, interval time.Duration, warmer Warmer, caches ...*cache.TTLCache) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		warmer:    warmer,
		cities:    cities,
		interval:  interval,
		caches:    caches,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("scheduler: no warm cities configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running warm-cache job")

		var wg sync.WaitGroup
		for _, city := range s.cities {
			city := city
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := s.warmer.Warm(ctx, city); err != nil {
					log.Printf("scheduler: warm failed for %s: %v", city, err)
				}
			}()
		}
		wg.Wait()

		for _, c := range s.caches {
			c.Sweep()
		}
		log.Println("scheduler: completed warm-cache job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
