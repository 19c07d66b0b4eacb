package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/callebjorkell/ledstrip/internal/config"
)

var (
	app        = kingpin.New("ledstrip", "Addressable LED strip controller")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	colors     = app.Flag("color", "Colorize the log output.").Bool()
	configFile = app.Flag("config", "Configuration file to use.").Short('c').Default("config.yaml").String()
	start      = app.Command("start", "Start the controller")
	check      = app.Command("check-config", "Validate the configuration file and exit")
	version    = app.Command("version", "Show current version.")
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	if *colors {
		log.SetFormatter(&colorFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}

	switch cmd {
	case start.FullCommand():
		conf, err := config.Read(*configFile)
		if err != nil {
			log.Fatalf("Unable to read %s: %v", *configFile, err)
		}
		if err := startServer(conf); err != nil {
			log.Fatal(err)
		}
	case check.FullCommand():
		if _, err := config.Read(*configFile); err != nil {
			log.Fatalf("Invalid configuration in %s: %v", *configFile, err)
		}
		fmt.Printf("%s is valid\n", *configFile)
	case version.FullCommand():
		showVersion()
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
}
