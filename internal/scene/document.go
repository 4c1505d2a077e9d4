package scene

// Document is an ordered stack of layers, back to front.
type Document struct {
	layers []*Layer
	active int
}

// NewDocument creates a document with a single default layer.
func NewDocument() *Document {
	return &Document{
		layers: []*Layer{NewLayer("Layer 1")},
	}
}

// Layers returns the document's layers ordered back to front.
func (d *Document) Layers() []*Layer { return d.layers }

// ActiveLayer returns the layer new objects are added to.
// Returns nil for a document with no layers.
func (d *Document) ActiveLayer() *Layer {
	if len(d.layers) == 0 {
		return nil
	}
	if d.active < 0 || d.active >= len(d.layers) {
		return d.layers[len(d.layers)-1]
	}
	return d.layers[d.active]
}

// AddLayer appends a layer on top of the stack and makes it active.
func (d *Document) AddLayer(l *Layer) {
	d.layers = append(d.layers, l)
	d.active = len(d.layers) - 1
}

// RemoveLayer removes a layer from the document.
// Returns false if the layer is not present.
func (d *Document) RemoveLayer(l *Layer) bool {
	for i, layer := range d.layers {
		if layer == l {
			d.layers = append(d.layers[:i], d.layers[i+1:]...)
			if d.active >= len(d.layers) {
				d.active = len(d.layers) - 1
			}
			return true
		}
	}
	return false
}

// SetActiveLayer marks the given layer as the target for new objects.
// Unknown layers are ignored.
func (d *Document) SetActiveLayer(l *Layer) {
	for i, layer := range d.layers {
		if layer == l {
			d.active = i
			return
		}
	}
}
