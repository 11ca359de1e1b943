package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/cssanim/api"
	"github.com/matt-g-everett/cssanim/scene"
	"github.com/matt-g-everett/cssanim/scheduler"
	"github.com/matt-g-everett/cssanim/stream"
	"golang.org/x/sync/errgroup"
)

type app struct {
	Config    stream.Config
	Client    mqtt.Client
	VSync     *scheduler.TickerVSync
	Scheduler *scheduler.Scheduler
	Scene     *scene.Scene
	Publisher *stream.Publisher
	Control   *stream.Control
	Api       *api.Api
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Control.Subscribe(); err != nil {
		log.Printf("Subscribing to %s: %v", a.Config.Mqtt.Topics.Control, err)
	}
}

func (a *app) readConfig(configPath string) {
	config, err := stream.ReadConfig(configPath)
	if err != nil {
		panic(err)
	}
	a.Config = config
}

func (a *app) build(hz int) {
	fps, err := a.Config.PreferredFPS()
	if err != nil {
		panic(err)
	}

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	a.VSync = scheduler.NewTickerVSync(hz)
	a.Publisher = stream.NewPublisher(a.Config, a.Client)
	a.Scheduler = scheduler.New(a.VSync, a.Publisher)
	a.Scheduler.SetPreferredFPS(fps)
	a.Scene = scene.New(a.Scheduler, a.Publisher)
	a.Control = stream.NewControl(a.Config, a.Client, a.Scene, a.VSync.Post)
	a.Api = api.NewApi(a.Config.Player.Listen, a.Scene, a.VSync.Post)
}

func (a *app) loadScene() {
	doc, err := scene.ReadDocument(a.Config.Player.Scene)
	if err != nil {
		panic(err)
	}
	if err := a.Scene.Load(doc); err != nil {
		panic(err)
	}
	log.Printf("Loaded %d elements from %s", len(a.Scene.Elements()), a.Config.Player.Scene)
}

func (a *app) run(ctx context.Context) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer a.Client.Disconnect(250)

	// The engine loop is not running yet, so loading can touch the scene
	// from here.
	a.loadScene()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.VSync.Run(ctx) })
	g.Go(func() error { return a.Api.Serve(ctx) })
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Println(err)
	}
	log.Printf("Stopped after %d frames, %d events", a.Publisher.Frames(), a.Publisher.Events())
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	scenePath := flag.String("scene", "", "YAML scene file, overrides player.scene.")
	listen := flag.String("listen", "", "HTTP listen address, overrides player.listen.")
	hz := flag.Int("hz", 60, "Display refresh rate.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	if *scenePath != "" {
		a.Config.Player.Scene = *scenePath
	}
	if *listen != "" {
		a.Config.Player.Listen = *listen
	}
	log.Printf("Config: %+v", a.Config.Player)

	a.build(*hz)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.run(ctx)
}
