package stream

import (
	"fmt"
	"log"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/cssanim/css"
	"github.com/matt-g-everett/cssanim/scene"
	"gopkg.in/yaml.v2"
)

// ControlMessage is a command received on the control topic. Payloads are
// JSON, decoded with the YAML decoder so they share the scene document's
// field types, e.g. durations written as "300ms".
type ControlMessage struct {
	Type        string                `yaml:"type"`
	Element     int                   `yaml:"element"`
	Styles      map[string]string     `yaml:"styles"`
	Animations  []scene.AnimationDoc  `yaml:"animations"`
	Transitions []scene.TransitionDoc `yaml:"transitions"`
	Name        string                `yaml:"name"`
	Keyframes   []scene.KeyframeDoc   `yaml:"keyframes"`
}

// Control applies control messages to a scene.
type Control struct {
	config Config
	client mqtt.Client
	scene  *scene.Scene
	post   func(func()) bool
}

// NewControl creates an instance of Control. post runs a function on the
// engine goroutine.
func NewControl(config Config, client mqtt.Client, sc *scene.Scene, post func(func()) bool) *Control {
	c := new(Control)
	c.config = config
	c.client = client
	c.scene = sc
	c.post = post
	return c
}

// Subscribe listens on the control topic.
func (c *Control) Subscribe() error {
	token := c.client.Subscribe(c.config.Mqtt.Topics.Control, 1, c.handleMessage)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (c *Control) handleMessage(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s", msg.MessageID(), msg.Topic(), msg.Payload())

	var message ControlMessage
	if err := yaml.Unmarshal(msg.Payload(), &message); err != nil {
		log.Printf("Bad control message: %v", err)
		return
	}
	if !c.post(func() {
		if err := c.Apply(message); err != nil {
			log.Printf("Control %s: %v", message.Type, err)
		}
	}) {
		log.Printf("Dropped control %s: engine stopped", message.Type)
	}
}

// Apply runs a control message. It must be called on the engine goroutine.
func (c *Control) Apply(m ControlMessage) error {
	switch m.Type {
	case "pause":
		c.scene.Pause()
		return nil
	case "resume":
		c.scene.Resume()
		return nil
	case "keyframes":
		k, err := scene.ParseKeyframes(m.Keyframes)
		if err != nil {
			return err
		}
		if m.Element == 0 {
			c.scene.SetKeyframes(m.Name, k)
			return nil
		}
		e, err := c.element(m.Element)
		if err != nil {
			return err
		}
		e.SetKeyframes(m.Name, k)
		return nil
	}

	e, err := c.element(m.Element)
	if err != nil {
		return err
	}
	switch m.Type {
	case "style":
		styles, err := scene.ParseStyles(m.Styles)
		if err != nil {
			return err
		}
		for _, id := range styles.SortedIDs() {
			e.SetStyle(id, styles[id])
		}
	case "animations":
		data := make([]css.AnimationData, 0, len(m.Animations))
		for _, ad := range m.Animations {
			d, err := ad.Data()
			if err != nil {
				return fmt.Errorf("animation %q: %w", ad.Name, err)
			}
			data = append(data, d)
		}
		e.SetAnimations(data)
	case "transitions":
		data := make([]css.TransitionData, 0, len(m.Transitions))
		for _, td := range m.Transitions {
			d, err := td.Data()
			if err != nil {
				return fmt.Errorf("transition %q: %w", td.Property, err)
			}
			data = append(data, d)
		}
		e.SetTransitions(data)
	case "destroy":
		e.Destroy()
	default:
		return fmt.Errorf("unknown control message type %q", m.Type)
	}
	return nil
}

func (c *Control) element(id int) (*scene.Element, error) {
	e := c.scene.Element(id)
	if e == nil {
		return nil, fmt.Errorf("no element %d", id)
	}
	return e, nil
}
