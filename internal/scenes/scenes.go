// ABOUTME: Registry of the demo scenes shipped with the termgfx command
// ABOUTME: Every scene quits on 'q' or Ctrl-D through the stop hook handed to Attach

package scenes

import (
	"fmt"
	"slices"

	"github.com/mauromedda/termgfx/pkg/gfx"
)

// Options carries command-line input some scenes need.
type Options struct {
	ImagePath string
}

type factory func(Options) (gfx.Scene, error)

var registry = map[string]factory{
	"sandbox": func(Options) (gfx.Scene, error) { return NewSandbox(), nil },
	"life":    func(Options) (gfx.Scene, error) { return NewLife(), nil },
	"image": func(o Options) (gfx.Scene, error) {
		if o.ImagePath == "" {
			return nil, fmt.Errorf("image scene needs an image path")
		}
		fb, err := gfx.NewImage(o.ImagePath)
		if err != nil {
			return nil, err
		}
		return NewImage(fb), nil
	},
}

// Names lists the registered scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the scene registered under name.
func New(name string, opts Options) (gfx.Scene, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	return f(opts)
}

// quitter handles the quit keys shared by all scenes.
type quitter struct {
	stop func()
}

func (q *quitter) attach(ctx gfx.Context) {
	q.stop = ctx.Stop
}

// handleQuit stops the app on 'q' or Ctrl-D and reports whether it did.
func (q *quitter) handleQuit(ev gfx.Event) bool {
	ci, ok := ev.(gfx.CharacterInput)
	if !ok || (ci.Rune != 'q' && ci.Rune != 0x04) {
		return false
	}
	if q.stop != nil {
		q.stop()
	}
	return true
}
