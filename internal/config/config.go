package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultName         = "ledstrip"
	defaultPeriod       = 50 * time.Millisecond
	defaultFadeDuration = 2 * time.Second
	defaultMqttTimeout  = 120 * time.Second
	defaultNtpInterval  = time.Hour
	defaultOtaListen    = ":8266"
	defaultButtonPin    = "GPIO20"
)

type Config struct {
	Name  string `yaml:"name"`
	Strip struct {
		Leds       int    `yaml:"leds"`
		Brightness int    `yaml:"brightness"`
		Gpio       int    `yaml:"gpio"`
		Type       string `yaml:"type"`
	} `yaml:"strip"`
	Loop struct {
		Period           time.Duration `yaml:"period"`
		FadeDuration     time.Duration `yaml:"fadeDuration"`
		ProportionalFade bool          `yaml:"proportionalFade"`
	} `yaml:"loop"`
	Mqtt struct {
		Broker       string        `yaml:"broker"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		BaseTopic    string        `yaml:"baseTopic"`
		DebugTopic   string        `yaml:"debugTopic"`
		ClientPrefix string        `yaml:"clientPrefix"`
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"mqtt"`
	Ntp struct {
		Server    string        `yaml:"server"`
		UtcOffset time.Duration `yaml:"utcOffset"`
		Interval  time.Duration `yaml:"interval"`
	} `yaml:"ntp"`
	QuietHours struct {
		Off int `yaml:"off"`
		On  int `yaml:"on"`
	} `yaml:"quietHours"`
	Ota struct {
		Listen   string `yaml:"listen"`
		Password string `yaml:"password"`
		Target   string `yaml:"target"`
	} `yaml:"ota"`
	Lcd    bool `yaml:"lcd"`
	Button struct {
		Enabled bool   `yaml:"enabled"`
		Pin     string `yaml:"pin"`
	} `yaml:"button"`
}

// QuietHoursEnabled reports if the strip should be forced off for part of the day.
func (c Config) QuietHoursEnabled() bool {
	return c.QuietHours.Off != c.QuietHours.On
}

func (c Config) OtaEnabled() bool {
	return c.Ota.Target != ""
}

func Read(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

func Parse(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if c.Strip.Leds <= 0 {
		return nil, fmt.Errorf("number of leds is missing")
	}
	if c.Mqtt.Broker == "" {
		return nil, fmt.Errorf("mqtt broker is missing")
	}
	if c.Mqtt.BaseTopic == "" {
		return nil, fmt.Errorf("mqtt base topic is missing")
	}
	if !validHour(c.QuietHours.Off) || !validHour(c.QuietHours.On) {
		return nil, fmt.Errorf("quiet hours must be between 0 and 23, got %d-%d", c.QuietHours.Off, c.QuietHours.On)
	}

	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Loop.Period <= 0 {
		c.Loop.Period = defaultPeriod
	}
	if c.Loop.FadeDuration <= 0 {
		c.Loop.FadeDuration = defaultFadeDuration
	}
	if c.Mqtt.Timeout <= 0 {
		c.Mqtt.Timeout = defaultMqttTimeout
	}
	if c.Ntp.Interval <= 0 {
		c.Ntp.Interval = defaultNtpInterval
	}
	if c.Ota.Listen == "" {
		c.Ota.Listen = defaultOtaListen
	}
	if c.Button.Pin == "" {
		c.Button.Pin = defaultButtonPin
	}

	return c, nil
}

func validHour(h int) bool {
	return h >= 0 && h < 24
}
