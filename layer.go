package panzoom

// DefaultLayerID is the id of the layer every Controller starts with.
const DefaultLayerID = "default"

// PlacedObject references an asset by id and positions it in world space.
type PlacedObject struct {
	AssetID string
	X, Y    float64
	// Scale is a uniform scale factor applied before the camera zoom.
	Scale float64
}

// Layer is a named, ordered list of placed objects. Layers draw in the order
// they were added; objects within a layer draw in insertion order.
type Layer struct {
	ID   string
	Name string
	// Hidden layers are skipped by Render.
	Hidden bool

	objects []PlacedObject
}

func newLayer(id, name string) *Layer {
	return &Layer{ID: id, Name: name}
}

// AddObject places assetID at world (x, y). A scale of zero means 1.
func (l *Layer) AddObject(assetID string, x, y, scale float64) {
	if scale == 0 {
		scale = 1
	}
	l.objects = append(l.objects, PlacedObject{AssetID: assetID, X: x, Y: y, Scale: scale})
}

// Objects returns the layer's objects. The returned slice MUST NOT be mutated.
func (l *Layer) Objects() []PlacedObject {
	return l.objects
}

// Len returns the number of objects on the layer.
func (l *Layer) Len() int {
	return len(l.objects)
}

// Clear removes every object from the layer. Slices returned earlier by
// Objects keep their contents.
func (l *Layer) Clear() {
	l.objects = nil
}
