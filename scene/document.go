package scene

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/matt-g-everett/cssanim/css"
	"gopkg.in/yaml.v2"
)

// Document is the YAML form of a scene.
type Document struct {
	Keyframes map[string][]KeyframeDoc `yaml:"keyframes"`
	Elements  []ElementDoc             `yaml:"elements"`
}

// KeyframeDoc is one stop of a keyframes rule. Offset is "from", "to", a
// percentage or a fraction.
type KeyframeDoc struct {
	Offset string            `yaml:"offset"`
	Styles map[string]string `yaml:"styles"`
}

type ElementDoc struct {
	ID                 int                      `yaml:"id"`
	Parent             int                      `yaml:"parent"`
	Width              float64                  `yaml:"width"`
	Height             float64                  `yaml:"height"`
	ColorInterpolation string                   `yaml:"colorInterpolation"`
	Listeners          []string                 `yaml:"listeners"`
	Styles             map[string]string        `yaml:"styles"`
	Keyframes          map[string][]KeyframeDoc `yaml:"keyframes"`
	Animations         []AnimationDoc           `yaml:"animations"`
	Transitions        []TransitionDoc          `yaml:"transitions"`
}

type AnimationDoc struct {
	Name           string        `yaml:"name"`
	Duration       time.Duration `yaml:"duration"`
	Delay          time.Duration `yaml:"delay"`
	IterationCount string        `yaml:"iterationCount"`
	Direction      string        `yaml:"direction"`
	FillMode       string        `yaml:"fillMode"`
	TimingFunction string        `yaml:"timingFunction"`
	PlayState      string        `yaml:"playState"`
}

type TransitionDoc struct {
	Property       string        `yaml:"property"`
	Duration       time.Duration `yaml:"duration"`
	Delay          time.Duration `yaml:"delay"`
	TimingFunction string        `yaml:"timingFunction"`
}

// ReadDocument reads a YAML scene file.
func ReadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	defer f.Close()
	return DecodeDocument(f)
}

// DecodeDocument decodes a YAML scene. Unknown keys are errors.
func DecodeDocument(r io.Reader) (*Document, error) {
	d := new(Document)
	decoder := yaml.NewDecoder(r)
	decoder.SetStrict(true)
	if err := decoder.Decode(d); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return d, nil
}

// Load builds the document into s. Parents must be listed before their
// children. Styles are applied before transitions so that the initial
// values do not animate.
func (s *Scene) Load(d *Document) error {
	for _, name := range sortedKeys(d.Keyframes) {
		k, err := ParseKeyframes(d.Keyframes[name])
		if err != nil {
			return fmt.Errorf("keyframes %q: %w", name, err)
		}
		s.SetKeyframes(name, k)
	}

	for _, ed := range d.Elements {
		if err := s.loadElement(ed); err != nil {
			return fmt.Errorf("element %d: %w", ed.ID, err)
		}
	}
	return nil
}

func (s *Scene) loadElement(ed ElementDoc) error {
	var parent *Element
	if ed.Parent != 0 {
		parent = s.Element(ed.Parent)
		if parent == nil {
			return fmt.Errorf("unknown parent %d", ed.Parent)
		}
	}
	interpolation, err := css.ParseColorInterpolation(ed.ColorInterpolation)
	if err != nil {
		return err
	}

	styles, err := ParseStyles(ed.Styles)
	if err != nil {
		return err
	}
	var animations []css.AnimationData
	for _, ad := range ed.Animations {
		data, err := ad.Data()
		if err != nil {
			return fmt.Errorf("animation %q: %w", ad.Name, err)
		}
		animations = append(animations, data)
	}
	var transitions []css.TransitionData
	for _, td := range ed.Transitions {
		data, err := td.Data()
		if err != nil {
			return fmt.Errorf("transition %q: %w", td.Property, err)
		}
		transitions = append(transitions, data)
	}
	inline := make(map[string]css.Keyframes, len(ed.Keyframes))
	for name, docs := range ed.Keyframes {
		k, err := ParseKeyframes(docs)
		if err != nil {
			return fmt.Errorf("keyframes %q: %w", name, err)
		}
		inline[name] = k
	}

	e, err := s.NewElement(ed.ID, parent)
	if err != nil {
		return err
	}
	e.SetSize(ed.Width, ed.Height)
	e.SetColorInterpolation(interpolation)
	for _, name := range ed.Listeners {
		e.AddEventListener(name)
	}
	for name, k := range inline {
		e.keyframes[name] = k
	}
	for _, id := range styles.SortedIDs() {
		e.SetStyle(id, styles[id])
	}
	e.SetTransitions(transitions)
	e.SetAnimations(animations)
	return nil
}

// ParseStyles parses a property name to CSS text map.
func ParseStyles(in map[string]string) (css.StyleMap, error) {
	out := make(css.StyleMap, len(in))
	for _, name := range sortedKeys(in) {
		id, ok := css.ParseProperty(name)
		if !ok {
			return nil, fmt.Errorf("unknown property %q", name)
		}
		v, err := css.ParseValue(id, in[name])
		if err != nil {
			return nil, err
		}
		out[id] = v
	}
	return out, nil
}

// ParseKeyframes converts the stops of a keyframes rule.
func ParseKeyframes(docs []KeyframeDoc) (css.Keyframes, error) {
	k := make(css.Keyframes, 0, len(docs))
	for _, doc := range docs {
		offset, err := ParseOffset(doc.Offset)
		if err != nil {
			return nil, err
		}
		styles, err := ParseStyles(doc.Styles)
		if err != nil {
			return nil, fmt.Errorf("offset %s: %w", doc.Offset, err)
		}
		k = append(k, css.KeyframeStop{Offset: offset, Styles: styles})
	}
	k.Sort()
	return k, nil
}

// ParseOffset parses a keyframe selector.
func ParseOffset(text string) (float64, error) {
	text = strings.TrimSpace(text)
	switch text {
	case "from":
		return 0, nil
	case "to":
		return 1, nil
	}
	scale := 1.0
	if strings.HasSuffix(text, "%") {
		text = strings.TrimSuffix(text, "%")
		scale = 100
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid keyframe offset %q", text)
	}
	return f / scale, nil
}

// Data converts the document form to AnimationData. Unset fields take the
// CSS initial values.
func (d AnimationDoc) Data() (css.AnimationData, error) {
	data := css.DefaultAnimationData(d.Name)
	data.Duration = d.Duration
	data.Delay = d.Delay

	var err error
	if data.IterationCount, err = css.ParseIterationCount(d.IterationCount); err != nil {
		return data, err
	}
	if data.Direction, err = css.ParseDirection(d.Direction); err != nil {
		return data, err
	}
	if data.FillMode, err = css.ParseFillMode(d.FillMode); err != nil {
		return data, err
	}
	if data.PlayState, err = css.ParsePlayState(d.PlayState); err != nil {
		return data, err
	}
	if d.TimingFunction != "" {
		if data.TimingFunction, err = css.ParseTimingFunction(d.TimingFunction); err != nil {
			return data, err
		}
	}
	return data, nil
}

func (d TransitionDoc) Data() (css.TransitionData, error) {
	id, ok := css.ParseProperty(d.Property)
	if !ok {
		return css.TransitionData{}, fmt.Errorf("unknown property %q", d.Property)
	}
	data := css.TransitionData{Property: id, Duration: d.Duration, Delay: d.Delay, TimingFunction: css.TimingEase}
	if d.TimingFunction != "" {
		t, err := css.ParseTimingFunction(d.TimingFunction)
		if err != nil {
			return data, err
		}
		data.TimingFunction = t
	}
	return data, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
