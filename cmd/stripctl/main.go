package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/callebjorkell/ledstrip/internal/command"
	"github.com/callebjorkell/ledstrip/internal/config"
	"github.com/callebjorkell/ledstrip/internal/mqtt"
)

// Sends commands to a running strip controller through the broker it listens on.

var (
	app        = kingpin.New("stripctl", "Remote control for the LED strip")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configFile = app.Flag("config", "Configuration file of the strip.").Short('c').Default("config.yaml").String()

	on      = app.Command("on", "Fade the strip on")
	off     = app.Command("off", "Fade the strip off")
	rainbow = app.Command("rainbow", "Switch to the rotating rainbow")

	brightness      = app.Command("brightness", "Set the brightness, 0-100. Anything above 0 also turns the strip on")
	brightnessValue = brightness.Arg("value", "Brightness in percent").Required().Float64()

	color           = app.Command("color", "Set a solid color")
	colorHue        = color.Arg("hue", "Hue in degrees, 0-360").Required().Float64()
	colorSaturation = color.Arg("saturation", "Saturation in percent, 0-100").Default("100").Float64()
)

type message struct {
	channel command.Channel
	payload string
}

func messages(cmd string) []message {
	switch cmd {
	case on.FullCommand():
		return []message{{command.Power, command.PowerOn}}
	case off.FullCommand():
		return []message{{command.Power, "false"}}
	case rainbow.FullCommand():
		return []message{{command.Power, command.PowerRainbow}}
	case brightness.FullCommand():
		return []message{{command.Brightness, formatNumber(*brightnessValue)}}
	case color.FullCommand():
		return []message{
			{command.Hue, formatNumber(*colorHue)},
			{command.Saturation, formatNumber(*colorSaturation)},
		}
	}
	return nil
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf, err := config.Read(*configFile)
	if err != nil {
		log.Fatalf("Unable to read %s: %v", *configFile, err)
	}

	msgs := messages(cmd)
	if len(msgs) == 0 {
		kingpin.FatalUsage("Unrecognized command")
	}

	transport := mqtt.New(mqtt.Config{
		Broker:       conf.Mqtt.Broker,
		User:         conf.Mqtt.User,
		Password:     conf.Mqtt.Password,
		BaseTopic:    conf.Mqtt.BaseTopic,
		ClientPrefix: "stripctl",
		Name:         "stripctl",
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := transport.Connect(ctx); err != nil {
		log.Fatalf("Unable to connect to %s: %v", conf.Mqtt.Broker, err)
	}
	defer transport.Close()

	for _, m := range msgs {
		if err := transport.Send(m.channel, m.payload); err != nil {
			log.Fatalf("Unable to send %s: %v", m.channel, err)
		}
		log.Infof("Sent %s=%s", m.channel, m.payload)
	}
}
