package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/callebjorkell/ledstrip/internal/button"
	"github.com/callebjorkell/ledstrip/internal/clock"
	"github.com/callebjorkell/ledstrip/internal/command"
	"github.com/callebjorkell/ledstrip/internal/config"
	"github.com/callebjorkell/ledstrip/internal/control"
	"github.com/callebjorkell/ledstrip/internal/lcd"
	"github.com/callebjorkell/ledstrip/internal/mqtt"
	"github.com/callebjorkell/ledstrip/internal/neopixel"
	"github.com/callebjorkell/ledstrip/internal/ota"
)

const statusInterval = 500 * time.Millisecond

func newClock(ctx context.Context, conf *config.Config, wg *sync.WaitGroup) control.Clock {
	if conf.Ntp.Server == "" {
		if conf.Ntp.UtcOffset == 0 {
			return clock.SystemClock{}
		}
		return clock.SystemClock{Location: clock.Zone(conf.Ntp.UtcOffset)}
	}

	c := clock.NewNTPClock(conf.Ntp.Server, conf.Ntp.UtcOffset, conf.Ntp.Interval)
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Run(ctx)
	}()
	return c
}

func startServer(conf *config.Config) error {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	led, err := neopixel.NewLedController(neopixel.Options{
		LedCount:   conf.Strip.Leds,
		Brightness: conf.Strip.Brightness,
		GpioPin:    conf.Strip.Gpio,
		StripType:  conf.Strip.Type,
	})
	if err != nil {
		return fmt.Errorf("unable to set up the strip: %w", err)
	}
	defer led.Close()

	mailbox := command.NewMailbox()
	transport := mqtt.New(mqtt.Config{
		Broker:       conf.Mqtt.Broker,
		User:         conf.Mqtt.User,
		Password:     conf.Mqtt.Password,
		BaseTopic:    conf.Mqtt.BaseTopic,
		DebugTopic:   conf.Mqtt.DebugTopic,
		ClientPrefix: conf.Mqtt.ClientPrefix,
		Name:         conf.Name,
		Timeout:      conf.Mqtt.Timeout,
	}, command.NewIntake(mailbox))
	defer transport.Close()

	opts := control.Options{
		LedCount:         conf.Strip.Leds,
		Period:           conf.Loop.Period,
		FadeDuration:     conf.Loop.FadeDuration,
		ProportionalFade: conf.Loop.ProportionalFade,
	}
	if conf.QuietHoursEnabled() {
		log.Infof("Quiet hours from %d:00 to %d:00", conf.QuietHours.Off, conf.QuietHours.On)
		opts.QuietHours = &control.QuietHours{
			Off:   conf.QuietHours.Off,
			On:    conf.QuietHours.On,
			Clock: newClock(ctx, conf, &wg),
		}
	}
	controller := control.NewController(opts, mailbox, led, transport)

	wg.Add(1)
	go func() {
		defer wg.Done()
		controller.Run(ctx)
	}()

	if err := transport.Connect(ctx); err != nil {
		log.Warn("Unable to connect to the broker: ", err)
	}

	fatal := make(chan error, 1)
	go func() {
		if err := transport.Watchdog(ctx); err != nil {
			fatal <- err
		}
	}()

	var restart <-chan string
	if conf.OtaEnabled() {
		updates := ota.NewServer(ota.Config{
			Listen:   conf.Ota.Listen,
			Password: conf.Ota.Password,
			Target:   conf.Ota.Target,
		}, led)
		restart = updates.Restarts()
		go func() {
			if err := updates.Listen(); err != nil {
				log.Warn("Update server stopped: ", err)
			}
		}()
		defer updates.Close()
	}

	if conf.Lcd {
		if err := lcd.InitLCD(); err != nil {
			log.Warn("Status display disabled: ", err)
		} else {
			go lcd.Follow(ctx, statusInterval, func() (string, string) {
				return controller.State().Lines()
			})
		}
	}

	if conf.Button.Enabled {
		events, err := button.InitButton(conf.Button.Pin)
		if err != nil {
			log.Warn("Button disabled: ", err)
		} else {
			go button.ToggleOnPress(ctx, events, mailbox)
		}
	}

	var result error
	var newBinary string
	select {
	case <-signalChan:
		log.Info("Shutting down...")
	case err := <-fatal:
		result = err
	case newBinary = <-restart:
		log.Infof("Restarting into %s", newBinary)
	}

	cancel()
	// closing the strip first releases a control loop waiting behind a finished update.
	led.Close()
	wg.Wait()

	if conf.Lcd {
		if newBinary != "" {
			lcd.Print("Updated", "Restarting...")
		} else {
			lcd.ClearAll()
		}
	}

	if newBinary != "" {
		transport.Close()
		return syscall.Exec(newBinary, os.Args, os.Environ())
	}

	log.Info("Done...")
	return result
}
