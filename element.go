package nexovera

import "fmt"

// Property names an animatable numeric channel on a Target.
type Property string

// Well-known channels. Any other name is treated as an arbitrary numeric
// style channel.
const (
	PropOpacity     Property = "opacity"
	PropX           Property = "x"
	PropY           Property = "y"
	PropScale       Property = "scale"
	PropScaleX      Property = "scaleX"
	PropScaleY      Property = "scaleY"
	PropRotation    Property = "rotation"
	PropStopOpacity Property = "stopOpacity"
	PropBackgroundX Property = "backgroundX"
	PropBackgroundY Property = "backgroundY"
)

// PropertyMap holds one value per animated channel.
type PropertyMap map[Property]float64

// Clone returns a copy of m. A nil map clones to nil.
func (m PropertyMap) Clone() PropertyMap {
	if m == nil {
		return nil
	}
	c := make(PropertyMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// sameKeys reports whether a and b animate exactly the same channels.
func sameKeys(a, b PropertyMap) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// Target is an opaque handle to a visual element owned by the host markup.
// The core only reads and writes its properties.
type Target interface {
	// Get returns the current value of p and whether the target has it.
	Get(p Property) (float64, bool)
	// Set writes v to p.
	Set(p Property, v float64)
	// Valid reports whether the target can still be animated. Animations
	// stop silently once it returns false.
	Valid() bool
}

// Bounded is implemented by targets that can report their document-space
// bounding box. The Viewport uses it to measure trigger elements.
type Bounded interface {
	Bounds() Rect
}

// Role is the logical part a host element plays on the page.
type Role string

const (
	RoleSection         Role = "section"
	RoleHeadline        Role = "headline"
	RoleBody            Role = "body"
	RoleContent         Role = "content"
	RoleForm            Role = "form"
	RoleCardGroup       Role = "cardGroup"
	RoleCard            Role = "card"
	RoleDecorativePath  Role = "decorativePath"
	RoleDecorativeNode  Role = "decorativeNode"
	RoleDecorativeWave  Role = "decorativeWave"
	RoleBackground      Role = "background"
	RoleHeroPath        Role = "heroPath"
	RoleHeroHeadline    Role = "heroHeadline"
	RoleHeroSubheadline Role = "heroSubheadline"
	RoleHeroCta         Role = "heroCta"
	RoleNav             Role = "nav"
)

// elementIDCounter is a plain counter without atomics; the core is single-threaded.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is the host-markup model: a tree of named elements with a role,
// a document-space bounding box and a set of animatable channels. It
// implements Target and Bounded.
type Element struct {
	ID   uint32
	Name string
	Role Role

	Parent   *Element
	children []*Element

	bounds   Rect
	props    PropertyMap
	disposed bool
}

// NewElement creates an element with default channels: opacity 1, scale 1,
// and zero offsets.
func NewElement(name string, role Role) *Element {
	return &Element{
		ID:   nextElementID(),
		Name: name,
		Role: role,
		props: PropertyMap{
			PropOpacity: 1,
			PropX:       0,
			PropY:       0,
			PropScale:   1,
		},
	}
}

// Get implements Target.
func (e *Element) Get(p Property) (float64, bool) {
	if e.disposed {
		return 0, false
	}
	v, ok := e.props[p]
	return v, ok
}

// Set implements Target. Writes to a disposed element are dropped.
func (e *Element) Set(p Property, v float64) {
	if e.disposed {
		return
	}
	e.props[p] = v
}

// Valid implements Target.
func (e *Element) Valid() bool {
	return e != nil && !e.disposed
}

// Bounds returns the document-space bounding box set by the host layout.
func (e *Element) Bounds() Rect {
	return e.bounds
}

// SetBounds records the element's layout box in document coordinates.
func (e *Element) SetBounds(r Rect) {
	e.bounds = r
}

// Opacity is a shorthand for Get(PropOpacity).
func (e *Element) Opacity() float64 {
	v, _ := e.Get(PropOpacity)
	return v
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	if child == nil {
		panic("nexovera: cannot add nil child")
	}
	if isAncestor(child, e) {
		panic("nexovera: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if child.Parent != e {
		panic("nexovera: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this element from its parent.
// No-op if it has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (e *Element) Children() []*Element {
	return e.children
}

// Find returns every descendant (not e itself) with the given role, in
// document order.
func (e *Element) Find(role Role) []*Element {
	var out []*Element
	e.walk(func(el *Element) {
		if el != e && el.Role == role {
			out = append(out, el)
		}
	})
	return out
}

// FindFirst returns the first descendant with the given role, or nil.
func (e *Element) FindFirst(role Role) *Element {
	if found := e.Find(role); len(found) > 0 {
		return found[0]
	}
	return nil
}

// FindByName returns the first descendant named name, or nil.
func (e *Element) FindByName(name string) *Element {
	var out *Element
	e.walk(func(el *Element) {
		if out == nil && el != e && el.Name == name {
			out = el
		}
	})
	return out
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.walk(fn)
	}
}

// String implements fmt.Stringer.
func (e *Element) String() string {
	return fmt.Sprintf("%s(%s#%d)", e.Role, e.Name, e.ID)
}

// --- Disposal ---

// Dispose removes this element from its parent, marks it as disposed, and
// recursively disposes all descendants. Animations targeting a disposed
// element stop on their next frame.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.disposed = true
	e.ID = 0
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.children = nil
	e.Parent = nil
}

// IsDisposed returns true if this element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// isAncestor reports whether candidate is an ancestor of el (or el itself).
func isAncestor(candidate, el *Element) bool {
	for p := el; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing
// child.Parent.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

// targetsOf converts elements to Targets, keeping nil entries as nil Targets
// so the caller can skip them without shifting indices.
func targetsOf(els []*Element) []Target {
	out := make([]Target, len(els))
	for i, el := range els {
		if el != nil {
			out[i] = el
		}
	}
	return out
}
