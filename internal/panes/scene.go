// Package panes holds the stock pane types: an outliner listing the scene's
// items, a properties view of the selection and a viewport drawing the scene.
// All three share one Scene through the workspace model map.
package panes

import (
	"fmt"
	"image/color"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/workspace"
)

// SceneModel is the model key the panes read their scene from.
const SceneModel = "scene"

// Pane type keys.
const (
	KeyOutliner   = "outliner"
	KeyProperties = "properties"
	KeyViewport   = "viewport"
)

// Item is one object in the scene. Rect is in scene coordinates.
type Item struct {
	Name  string
	Rect  geom.Rect
	Color color.RGBA
}

// Scene is the document the panes edit. It belongs to the frame thread.
type Scene struct {
	items    []Item
	selected int
}

// NewScene returns a scene holding items and no selection.
func NewScene(items ...Item) *Scene {
	return &Scene{items: items, selected: -1}
}

// DemoScene returns a small scene to start from.
func DemoScene() *Scene {
	return NewScene(
		Item{Name: "Backdrop", Rect: geom.R(0, 0, 320, 200), Color: color.RGBA{R: 52, G: 73, B: 94, A: 255}},
		Item{Name: "Sun", Rect: geom.R(230, 20, 50, 50), Color: color.RGBA{R: 241, G: 196, B: 15, A: 255}},
		Item{Name: "Hill", Rect: geom.R(20, 120, 180, 80), Color: color.RGBA{R: 39, G: 174, B: 96, A: 255}},
		Item{Name: "House", Rect: geom.R(200, 110, 70, 70), Color: color.RGBA{R: 192, G: 57, B: 43, A: 255}},
	)
}

// Len is the number of items.
func (s *Scene) Len() int { return len(s.items) }

// Item returns item i.
func (s *Scene) Item(i int) (Item, bool) {
	if i < 0 || i >= len(s.items) {
		return Item{}, false
	}
	return s.items[i], true
}

// Add appends it and returns its index.
func (s *Scene) Add(it Item) int {
	if it.Name == "" {
		it.Name = fmt.Sprintf("Item %d", len(s.items)+1)
	}
	s.items = append(s.items, it)
	return len(s.items) - 1
}

// Move offsets item i by d.
func (s *Scene) Move(i int, d geom.Point) {
	if i < 0 || i >= len(s.items) {
		return
	}
	s.items[i].Rect.X += d.X
	s.items[i].Rect.Y += d.Y
}

// Select makes item i the selection. Any index out of range clears it.
func (s *Scene) Select(i int) {
	if i < 0 || i >= len(s.items) {
		i = -1
	}
	s.selected = i
}

// Selected returns the selected index.
func (s *Scene) Selected() (int, bool) { return s.selected, s.selected >= 0 }

// HitTest returns the topmost item containing p, scanning from the last
// added.
func (s *Scene) HitTest(p geom.Point) (int, bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Rect.Contains(p, 0) {
			return i, true
		}
	}
	return -1, false
}

// Register adds the stock pane types to r.
func Register(r *workspace.PaneRegistry) error {
	types := []struct {
		key, name string
		factory   workspace.Factory
	}{
		{KeyOutliner, "Outliner", NewOutliner},
		{KeyProperties, "Properties", NewProperties},
		{KeyViewport, "Viewport", NewViewport},
	}
	for _, t := range types {
		if err := r.Register(t.key, t.name, t.factory); err != nil {
			return fmt.Errorf("failed to register %s pane: %w", t.key, err)
		}
	}
	return nil
}

// Models returns the model map the stock panes expect.
func Models(scene *Scene) workspace.Models {
	return workspace.Models{SceneModel: scene}
}

func sceneFrom(env workspace.PaneEnv) (*Scene, error) {
	return workspace.Model[*Scene](env.Models, SceneModel)
}
