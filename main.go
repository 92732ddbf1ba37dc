package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tractive2mqtt/dispatch"
	"tractive2mqtt/entity"
	"tractive2mqtt/hass"
	"tractive2mqtt/sensor"
	"tractive2mqtt/tractive"
	"tractive2mqtt/util"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

func main() {
	configFlag := flag.String("config", "tractive2mqtt.toml", "path to the configuration file")
	flag.Parse()

	// Secrets can live in a .env file next to the binary.
	if ok, _ := util.FileExists(".env"); ok {
		if err := godotenv.Load(); err != nil {
			log.Printf("failed to load .env file: %s", err)
		}
	}

	configPath, err := util.NewHomePath(*configFlag)
	if err != nil {
		log.Fatalf("failed to resolve config path: %s", err)
	}
	b, err := os.ReadFile(configPath.Path)
	if err != nil {
		log.Fatalf("failed to read config file: %s", err)
	}
	var config Config
	if _, err = toml.Decode(string(b), &config); err != nil {
		log.Fatalf("failed to parse config file: %s", err)
	}
	config.applyEnvOverrides()

	trackables, err := config.trackables()
	if err != nil {
		log.Fatalf("invalid config: %s", err)
	}
	if len(trackables) == 0 {
		log.Fatalf("no trackables configured")
	}

	events, err := openEvents(config.Bridge.EventsFile.Path)
	if err != nil {
		log.Fatalf("failed to open event feed: %s", err)
	}

	dispatcher := dispatch.New()
	feed := tractive.NewFeed(events, dispatcher, trackables)

	bridge, err := hass.Connect(hass.Config{
		Host:            config.MQTT.Host,
		Username:        config.MQTT.Username,
		Password:        config.MQTT.Password,
		ClientID:        config.MQTT.ClientID,
		DiscoveryPrefix: config.MQTT.DiscoveryPrefix,
		TopicPrefix:     config.MQTT.TopicPrefix,
	})
	if err != nil {
		log.Fatalf("failed to connect to mqtt broker: %s", err)
	}

	status := NewStatusServer()

	sensor.Setup(feed, func(entities []*entity.Sensor) {
		for _, s := range entities {
			s.OnChange(bridge.PublishState)
			status.Track(s)
			s.Subscribe(dispatcher)
		}
		if err := bridge.RegisterSensors(entities); err != nil {
			log.Fatalf("failed to register sensors: %s", err)
		}
		log.Printf("registered %d sensors for %d trackables", len(entities), len(trackables))
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if config.Bridge.StatusAddress != "" {
		go func() {
			if err := status.Run(ctx, config.Bridge.StatusAddress); err != nil {
				log.Printf("status server stopped: %s", err)
			}
		}()
	}

	go func() {
		if err := feed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("event feed stopped: %s", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	bridge.Close()
}

// openEvents returns the event feed source; "-" or an empty path means
// stdin.
func openEvents(path string) (io.Reader, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}
