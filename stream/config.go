package stream

import (
	"fmt"
	"os"

	"github.com/matt-g-everett/cssanim/scheduler"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topics   struct {
			Frames  string `yaml:"frames"`
			Events  string `yaml:"events"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Player struct {
		FPS    string `yaml:"fps"`
		Scene  string `yaml:"scene"`
		Listen string `yaml:"listen"`
	} `yaml:"player"`
}

// DefaultConfig returns the values used for anything config.yaml leaves out.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.URL = "tcp://localhost:1883"
	c.Mqtt.ClientID = "cssanim"
	c.Mqtt.Topics.Frames = "cssanim/frames"
	c.Mqtt.Topics.Events = "cssanim/events"
	c.Mqtt.Topics.Control = "cssanim/control"
	c.Player.FPS = "auto"
	c.Player.Scene = "scene.yaml"
	c.Player.Listen = ":3000"
	return c
}

// ReadConfig reads a YAML config file over the defaults.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil {
		return c, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return c, nil
}

// PreferredFPS maps player.fps to the scheduler setting.
func (c Config) PreferredFPS() (scheduler.FPS, error) {
	switch c.Player.FPS {
	case "", "auto", "high":
		return scheduler.FPSHigh, nil
	case "low":
		return scheduler.FPSLow, nil
	}
	return scheduler.FPSHigh, fmt.Errorf("invalid fps %q, want auto, high or low", c.Player.FPS)
}
