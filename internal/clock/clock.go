package clock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/beevik/ntp"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultInterval = time.Hour
	queryTimeout    = 5 * time.Second
)

// Zone returns a fixed zone for the given offset from UTC.
func Zone(utcOffset time.Duration) *time.Location {
	hours := utcOffset.Hours()
	return time.FixedZone(fmt.Sprintf("UTC%+g", hours), int(utcOffset.Seconds()))
}

// SystemClock trusts the local clock.
type SystemClock struct {
	Location *time.Location
}

func (s SystemClock) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// NTPClock corrects the local clock with the offset reported by an NTP server.
type NTPClock struct {
	server   string
	location *time.Location
	interval time.Duration

	query func(server string) (time.Duration, error)
	now   func() time.Time

	lock   sync.RWMutex
	offset time.Duration
	synced bool
}

func NewNTPClock(server string, utcOffset, interval time.Duration) *NTPClock {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &NTPClock{
		server:   server,
		location: Zone(utcOffset),
		interval: interval,
		query:    queryOffset,
		now:      time.Now,
	}
}

func queryOffset(server string) (time.Duration, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: queryTimeout})
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// Sync queries the server once. On failure the previous offset is kept.
func (c *NTPClock) Sync() error {
	offset, err := c.query(c.server)
	if err != nil {
		return fmt.Errorf("unable to query %s: %w", c.server, err)
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	c.offset = offset
	c.synced = true
	log.Debugf("Clock offset from %s is %v", c.server, offset)
	return nil
}

// Run keeps the offset up to date until the context is cancelled.
func (c *NTPClock) Run(ctx context.Context) {
	log.Infof("Syncing time with %s every %v", c.server, c.interval)
	if err := c.Sync(); err != nil {
		log.Warn(err)
	}

	t := time.NewTicker(c.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := c.Sync(); err != nil {
				log.Warn(err)
			}
		}
	}
}

func (c *NTPClock) Synced() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.synced
}

func (c *NTPClock) Now() time.Time {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.now().Add(c.offset).In(c.location)
}
