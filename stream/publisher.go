package stream

import (
	"encoding/json"
	"log"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/cssanim/anim"
	"github.com/matt-g-everett/cssanim/css"
	"github.com/matt-g-everett/cssanim/scheduler"
)

const (
	frameQos = 0
	eventQos = 1
)

// MqttPublisher is the part of mqtt.Client a Publisher needs.
type MqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// DeltaSource is an element whose style changes can be collected.
type DeltaSource interface {
	ID() int
	TakeDelta() css.StyleMap
	LastFrame() anim.TimePoint
}

// Event is the JSON body published on the events topic.
type Event struct {
	Element int               `json:"element"`
	Name    string            `json:"name"`
	Payload anim.EventPayload `json:"payload"`
}

// Publisher streams style frames and animation events over MQTT. It is the
// scheduler's pipeline and the scene's sink.
type Publisher struct {
	client   MqttPublisher
	config   Config
	sequence uint64
	events   uint64
}

// NewPublisher creates an instance of a Publisher.
func NewPublisher(config Config, client MqttPublisher) *Publisher {
	p := new(Publisher)
	p.config = config
	p.client = client
	return p
}

// Frames returns the number of frames sent.
func (p *Publisher) Frames() uint64 { return p.sequence }

// Events returns the number of events sent.
func (p *Publisher) Events() uint64 { return p.events }

func (p *Publisher) FlushPaint(elements []scheduler.Element) {
	p.sendFrame(elements, false)
}

func (p *Publisher) OnPatchFinish(elements []scheduler.Element, root scheduler.Element) {
	p.sendFrame(elements, true)
}

func (p *Publisher) sendFrame(elements []scheduler.Element, layout bool) {
	var f *Frame
	for _, e := range elements {
		src, ok := e.(DeltaSource)
		if !ok {
			continue
		}
		if f == nil {
			f = NewFrame(p.sequence+1, src.LastFrame(), layout)
		}
		f.Add(src.ID(), src.TakeDelta())
	}
	if f == nil || f.Empty() {
		return
	}
	p.SendFrame(f)
}

// FlushStyles sends a delta committed outside of a frame.
func (p *Publisher) FlushStyles(elementID int, delta css.StyleMap) {
	f := NewFrame(p.sequence+1, anim.Now(), false)
	f.Add(elementID, delta)
	if f.Empty() {
		return
	}
	p.SendFrame(f)
}

// SendFrame publishes a frame on the frames topic.
func (p *Publisher) SendFrame(f *Frame) {
	b, err := f.MarshalBinary()
	if err != nil {
		log.Printf("Encoding frame %d: %v", f.Sequence, err)
		return
	}
	p.sequence = f.Sequence
	p.publish(p.config.Mqtt.Topics.Frames, frameQos, b)
}

func (p *Publisher) SendEvent(elementID int, name string, payload anim.EventPayload) {
	b, err := json.Marshal(Event{Element: elementID, Name: name, Payload: payload})
	if err != nil {
		log.Printf("Encoding %s event: %v", name, err)
		return
	}
	p.events++
	p.publish(p.config.Mqtt.Topics.Events, eventQos, b)
}

func (p *Publisher) publish(topic string, qos byte, b []byte) {
	token := p.client.Publish(topic, qos, false, b)
	if token.Wait() && token.Error() != nil {
		log.Printf("Publishing to %s: %v", topic, token.Error())
	}
}
