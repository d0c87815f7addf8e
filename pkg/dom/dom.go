package dom

// Node is any node of the render target.
type Node interface {
	// NodeName returns the upper-cased tag name for elements and "#text"
	// for text nodes.
	NodeName() string

	// ParentElement returns the parent element, or nil when detached.
	ParentElement() Element
}

// Text is a render-target text node.
type Text interface {
	Node
	Data() string
	SetData(data string)
}

// Style is the inline style declaration block of an element.
type Style interface {
	SetProperty(name, value string)
	GetPropertyValue(name string) string
	RemoveProperty(name string)
	Len() int
}

// Element is a render-target element node.
type Element interface {
	Node

	// TagName returns the lower-cased tag name.
	TagName() string

	// ChildNodes returns a snapshot of the child list.
	ChildNodes() []Node
	ChildAt(i int) Node
	ChildCount() int

	// AppendChild moves child to the end of the child list, detaching it
	// from its previous parent first.
	AppendChild(child Node)

	// InsertBefore moves child before ref. A nil ref appends.
	InsertBefore(child, ref Node)

	// ReplaceChild puts newChild at oldChild's position and detaches oldChild.
	ReplaceChild(newChild, oldChild Node)

	RemoveChild(child Node)

	// ReplaceChildren detaches every child and appends nodes in order.
	ReplaceChildren(nodes ...Node)

	SetAttribute(name, value string)
	GetAttribute(name string) (string, bool)
	RemoveAttribute(name string)

	Style() Style

	// SetProperty writes a live property such as value or checked.
	SetProperty(name string, value any)
	Property(name string) any

	// AddEventListener binds l to the event type until lt is invalidated.
	// Binding under an already invalidated lifetime is a no-op.
	AddEventListener(eventType string, l Listener, lt *Lifetime)

	Focus()

	// OwnerDocument returns the document that created the element.
	OwnerDocument() Document
}

// Document creates render-target nodes and exposes focus state.
type Document interface {
	CreateElement(tag string) Element
	CreateTextNode(data string) Text

	// ActiveElement returns the focused element, or nil when no connected
	// element has focus.
	ActiveElement() Element

	// GetElementByID returns the connected element with the given id, or nil.
	GetElementByID(id string) Element
}
